package index

// BatchState is the remote indexing batch status.
type BatchState string

// BatchState values. Terminal states are final; the pipeline never retries
// past them automatically.
const (
	BatchQueued     BatchState = "queued"
	BatchInProgress BatchState = "in_progress"
	BatchCompleted  BatchState = "completed"
	BatchFailed     BatchState = "failed"
	BatchCancelled  BatchState = "cancelled"
)

// IsTerminal reports whether the state is final.
func (s BatchState) IsTerminal() bool {
	return s == BatchCompleted || s == BatchFailed || s == BatchCancelled
}
