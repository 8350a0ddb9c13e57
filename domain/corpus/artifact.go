// Package corpus holds the scraped-content domain model: the generated text
// artifact, listing items, operational notices, and the pure text transforms
// applied to them.
package corpus

import (
	"time"
)

// Artifact is the generated text document for one refresh cycle. Its logical
// filename is stable across refreshes so the remote index can be cleaned of
// prior copies by name.
type Artifact struct {
	logicalName string
	source      string
	generatedAt time.Time
	content     []byte
}

// NewArtifact creates an Artifact for the given marker token and source site.
func NewArtifact(marker, source string, generatedAt time.Time, content []byte) Artifact {
	return Artifact{
		logicalName: LiveFilename(marker),
		source:      source,
		generatedAt: generatedAt.UTC(),
		content:     content,
	}
}

// LiveFilename derives the stable logical filename from a marker token.
func LiveFilename(marker string) string {
	return marker + ".txt"
}

// LogicalName returns the stable logical filename.
func (a Artifact) LogicalName() string { return a.logicalName }

// Source returns the source site identifier.
func (a Artifact) Source() string { return a.source }

// GeneratedAt returns the generation timestamp (UTC).
func (a Artifact) GeneratedAt() time.Time { return a.generatedAt }

// Content returns a copy of the normalized UTF-8 content.
func (a Artifact) Content() []byte {
	out := make([]byte, len(a.content))
	copy(out, a.content)
	return out
}

// Len returns the content size in bytes.
func (a Artifact) Len() int { return len(a.content) }
