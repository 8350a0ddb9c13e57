// Package index holds the remote vector index domain model: indexed file
// references, batch states, stale-copy classification, and the cleanup
// summary accumulator.
package index

// FileRef links an uploaded file to its membership in a vector index. The
// membership id addresses the index record; the file id addresses the
// underlying upload. The filename is resolved lazily and may stay empty.
type FileRef struct {
	membershipID string
	fileID       string
	filename     string
}

// NewFileRef creates a FileRef.
func NewFileRef(membershipID, fileID string) FileRef {
	return FileRef{membershipID: membershipID, fileID: fileID}
}

// MembershipID returns the index-membership identifier.
func (r FileRef) MembershipID() string { return r.membershipID }

// FileID returns the underlying file identifier.
func (r FileRef) FileID() string { return r.fileID }

// Filename returns the resolved filename, or empty if unresolved.
func (r FileRef) Filename() string { return r.filename }

// WithFilename returns a copy carrying the resolved filename.
func (r FileRef) WithFilename(name string) FileRef {
	r.filename = name
	return r
}
