package index

// DeleteFailure records one stale copy whose deletion failed.
type DeleteFailure struct {
	Ref FileRef
	Err error
}

// CleanupSummary accumulates the result of the stale-copy delete pass. The
// pass is a fold: every stale ref lands in exactly one of the two buckets.
type CleanupSummary struct {
	deleted []FileRef
	failed  []DeleteFailure
}

// RecordDeleted adds a successfully deleted ref.
func (s *CleanupSummary) RecordDeleted(ref FileRef) {
	s.deleted = append(s.deleted, ref)
}

// RecordFailed adds a ref whose deletion failed.
func (s *CleanupSummary) RecordFailed(ref FileRef, err error) {
	s.failed = append(s.failed, DeleteFailure{Ref: ref, Err: err})
}

// Deleted returns the successfully deleted refs.
func (s *CleanupSummary) Deleted() []FileRef { return s.deleted }

// Failed returns the failed deletions.
func (s *CleanupSummary) Failed() []DeleteFailure { return s.failed }

// DeletedCount returns the number of successful deletions.
func (s *CleanupSummary) DeletedCount() int { return len(s.deleted) }

// FailedCount returns the number of failed deletions.
func (s *CleanupSummary) FailedCount() int { return len(s.failed) }
