// Package run holds the sync run state vocabulary and the report returned to
// callers and persisted to the run history.
package run

import "time"

// Step names, in pipeline order.
const (
	StepLinkAssistant  = "link_assistant"
	StepEnsureArtifact = "ensure_artifact"
	StepCleanup        = "cleanup"
	StepUpload         = "upload"
	StepAttach         = "attach"
)

// StepState is the outcome of one pipeline step.
type StepState string

// StepState values.
const (
	StepOK      StepState = "ok"
	StepFailed  StepState = "failed"
	StepSkipped StepState = "skipped"
)

// StepStatus records one step's outcome with human-readable detail.
type StepStatus struct {
	Step   string    `json:"step"`
	State  StepState `json:"state"`
	Detail string    `json:"detail,omitempty"`
}

// State is the terminal state of a run.
type State string

// Run terminal states.
const (
	StateIndexed State = "indexed"
	StateFailed  State = "failed"
)

// Report summarizes one sync run. Steps appear in execution order; a fatal
// step is the last entry.
type Report struct {
	State      State        `json:"state"`
	OK         bool         `json:"ok"`
	Error      string       `json:"error,omitempty"`
	Steps      []StepStatus `json:"steps"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`

	ArtifactName string `json:"artifact_name,omitempty"`
	FileID       string `json:"file_id,omitempty"`
	BatchID      string `json:"batch_id,omitempty"`

	StaleDeleted      int `json:"stale_deleted"`
	StaleDeleteFailed int `json:"stale_delete_failed"`
}

// NewReport starts a report at the given time.
func NewReport(startedAt time.Time) *Report {
	return &Report{StartedAt: startedAt.UTC()}
}

// Record appends a step outcome.
func (r *Report) Record(step string, state StepState, detail string) {
	r.Steps = append(r.Steps, StepStatus{Step: step, State: state, Detail: detail})
}

// Complete marks the run indexed and stamps the finish time.
func (r *Report) Complete(finishedAt time.Time) {
	r.State = StateIndexed
	r.OK = true
	r.FinishedAt = finishedAt.UTC()
}

// Fail marks the run failed with the fatal step's error.
func (r *Report) Fail(step string, err error, finishedAt time.Time) {
	r.Record(step, StepFailed, err.Error())
	r.State = StateFailed
	r.OK = false
	r.Error = step + ": " + err.Error()
	r.FinishedAt = finishedAt.UTC()
}

// Duration returns the wall-clock run duration.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
