package vectorstore

import (
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// ErrIndexingTimeout is returned when a batch fails to reach a terminal
// state before the polling deadline.
var ErrIndexingTimeout = errors.New("indexing batch timed out")

// UploadError reports a failed or malformed file upload.
type UploadError struct {
	Status  int
	Message string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload failed: status %d: %s", e.Status, e.Message)
}

// BatchCreateError reports a failed or id-less batch creation.
type BatchCreateError struct {
	Status  int
	Message string
}

func (e *BatchCreateError) Error() string {
	return fmt.Sprintf("batch create failed: status %d: %s", e.Status, e.Message)
}

// DeleteError reports a failed index membership deletion. Callers treat it
// as per-item and non-fatal.
type DeleteError struct {
	MembershipID string
	Status       int
	Message      string
}

func (e *DeleteError) Error() string {
	return fmt.Sprintf("delete %s failed: status %d: %s", e.MembershipID, e.Status, e.Message)
}

// IndexingError reports a batch that reached a terminal failure state.
type IndexingError struct {
	Status string
}

func (e *IndexingError) Error() string {
	return fmt.Sprintf("indexing batch ended %s", e.Status)
}

// remoteStatus extracts the HTTP status and message from a go-openai error.
func remoteStatus(err error) (int, string) {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode, apiErr.Message
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode, reqErr.Error()
	}
	return 0, err.Error()
}
