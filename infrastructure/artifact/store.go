// Package artifact resolves where the generated text artifact lives on disk
// and guarantees it exists before upload.
package artifact

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/brightlabs/sitesync/domain/corpus"
)

// ErrArtifactGeneration is returned when the artifact is still missing or
// empty after a regeneration attempt.
var ErrArtifactGeneration = errors.New("artifact generation failed")

// Generator produces the artifact content for one refresh cycle. The scrape
// package provides the production implementation.
type Generator interface {
	Generate(ctx context.Context) (corpus.Artifact, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context) (corpus.Artifact, error)

// Generate calls f.
func (f GeneratorFunc) Generate(ctx context.Context) (corpus.Artifact, error) {
	return f(ctx)
}

// Store resolves the artifact path and regenerates the artifact on demand.
type Store struct {
	pathOverride string
	ephemeral    bool
	dataDir      string
	marker       string
	generator    Generator
	logger       *slog.Logger
}

// NewStore creates a Store. pathOverride wins over all other locations;
// ephemeral selects a scratch directory for read-only or sandboxed runs.
func NewStore(pathOverride string, ephemeral bool, dataDir, marker string, generator Generator, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		pathOverride: pathOverride,
		ephemeral:    ephemeral,
		dataDir:      dataDir,
		marker:       marker,
		generator:    generator,
		logger:       logger,
	}
}

// ResolvePath returns the canonical artifact location. Precedence: explicit
// override, then a per-boot scratch directory for ephemeral filesystems,
// then the persistent data directory.
func (s *Store) ResolvePath() string {
	filename := corpus.LiveFilename(s.marker)
	switch {
	case s.pathOverride != "":
		return s.pathOverride
	case s.ephemeral:
		return filepath.Join(os.TempDir(), "sitesync", filename)
	default:
		return filepath.Join(s.dataDir, filename)
	}
}

// EnsureExists checks that a non-empty artifact exists at path, regenerating
// it in place when missing. The regenerated artifact is written to exactly
// the resolved path so later pipeline stages read what this run produced.
func (s *Store) EnsureExists(ctx context.Context, path string) error {
	if present(path) {
		return nil
	}

	s.logger.Info("artifact missing, regenerating", "path", path)
	if err := s.Refresh(ctx, path); err != nil {
		return err
	}

	if !present(path) {
		return fmt.Errorf("%w: artifact still missing at %s", ErrArtifactGeneration, path)
	}
	return nil
}

// Refresh regenerates the artifact and writes it to path unconditionally.
func (s *Store) Refresh(ctx context.Context, path string) error {
	art, err := s.generator.Generate(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrArtifactGeneration, err)
	}
	if err := s.Write(art, path); err != nil {
		return fmt.Errorf("%w: %v", ErrArtifactGeneration, err)
	}
	return nil
}

// Write persists the artifact to path, creating parent directories.
func (s *Store) Write(art corpus.Artifact, path string) error {
	if art.Len() == 0 {
		return errors.New("empty artifact content")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create artifact dir: %w", err)
	}
	if err := os.WriteFile(path, art.Content(), 0o644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	s.logger.Info("artifact written", "path", path, "bytes", art.Len())
	return nil
}

// Read loads the artifact bytes from path.
func (s *Store) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read artifact: %w", err)
	}
	return data, nil
}

// present reports whether a non-empty regular file exists at path.
func present(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular() && info.Size() > 0
}
