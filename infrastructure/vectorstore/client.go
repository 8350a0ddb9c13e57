// Package vectorstore is a typed client over the remote vector index API:
// file uploads, index membership, attach batches, and assistant linking.
package vectorstore

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/brightlabs/sitesync/domain/index"
	"github.com/brightlabs/sitesync/internal/poll"
)

// DefaultListLimit bounds the single membership listing page.
const DefaultListLimit = 100

// defaultPollInterval is the batch status polling cadence.
const defaultPollInterval = 2 * time.Second

// Client wraps the remote API for one vector store.
type Client struct {
	api          *openai.Client
	storeID      string
	pollInterval time.Duration
	logger       *slog.Logger
}

// New creates a Client for the given vector store. baseURL overrides the
// API endpoint when non-empty.
func New(apiKey, baseURL, storeID string, logger *slog.Logger) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return NewWithClient(openai.NewClientWithConfig(cfg), storeID, logger)
}

// NewWithClient creates a Client around an existing API client.
func NewWithClient(api *openai.Client, storeID string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		api:          api,
		storeID:      storeID,
		pollInterval: defaultPollInterval,
		logger:       logger,
	}
}

// StoreID returns the vector store identifier this client addresses.
func (c *Client) StoreID() string { return c.storeID }

// UploadFile uploads content under filename and returns the remote file id.
func (c *Client) UploadFile(ctx context.Context, content []byte, filename string) (string, error) {
	file, err := c.api.CreateFileBytes(ctx, openai.FileBytesRequest{
		Name:    filename,
		Bytes:   content,
		Purpose: openai.PurposeAssistants,
	})
	if err != nil {
		status, msg := remoteStatus(err)
		return "", &UploadError{Status: status, Message: msg}
	}
	if file.ID == "" {
		return "", &UploadError{Status: 200, Message: "response missing file id"}
	}
	c.logger.Info("file uploaded", "file_id", file.ID, "filename", filename, "bytes", len(content))
	return file.ID, nil
}

// ListIndexFiles returns one bounded page of index memberships. The corpus
// is expected to stay well under a single page; growth past the limit is an
// accepted blind spot of the cleanup pass.
func (c *Client) ListIndexFiles(ctx context.Context, limit int) ([]index.FileRef, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	page, err := c.api.ListVectorStoreFiles(ctx, c.storeID, openai.Pagination{Limit: &limit})
	if err != nil {
		return nil, fmt.Errorf("list index files: %w", err)
	}

	// This backend addresses a membership by the underlying file id.
	refs := make([]index.FileRef, 0, len(page.VectorStoreFiles))
	for _, f := range page.VectorStoreFiles {
		refs = append(refs, index.NewFileRef(f.ID, f.ID))
	}
	return refs, nil
}

// ResolveFilename resolves the filename for a ref, best effort: the
// ref-embedded name first, then a file metadata fetch. Returns empty on any
// failure; the name is used only for heuristic matching.
func (c *Client) ResolveFilename(ctx context.Context, ref index.FileRef) string {
	if ref.Filename() != "" {
		return ref.Filename()
	}
	file, err := c.api.GetFile(ctx, ref.FileID())
	if err != nil {
		c.logger.Debug("filename resolution failed", "file_id", ref.FileID(), "error", err)
		return ""
	}
	return file.FileName
}

// DeleteIndexMembership removes one file from the vector store.
func (c *Client) DeleteIndexMembership(ctx context.Context, ref index.FileRef) error {
	if err := c.api.DeleteVectorStoreFile(ctx, c.storeID, ref.MembershipID()); err != nil {
		status, msg := remoteStatus(err)
		return &DeleteError{MembershipID: ref.MembershipID(), Status: status, Message: msg}
	}
	c.logger.Info("stale index file deleted", "membership_id", ref.MembershipID(), "filename", ref.Filename())
	return nil
}

// CreateIndexBatch attaches files to the vector store and returns the batch id.
func (c *Client) CreateIndexBatch(ctx context.Context, fileIDs []string) (string, error) {
	batch, err := c.api.CreateVectorStoreFileBatch(ctx, c.storeID, openai.VectorStoreFileBatchRequest{
		FileIDs: fileIDs,
	})
	if err != nil {
		status, msg := remoteStatus(err)
		return "", &BatchCreateError{Status: status, Message: msg}
	}
	if batch.ID == "" {
		return "", &BatchCreateError{Status: 200, Message: "response missing batch id"}
	}
	return batch.ID, nil
}

// PollBatch polls the batch until it reaches a terminal state or timeout
// elapses. It returns nil on completion, IndexingError on a terminal
// failure, and ErrIndexingTimeout at the deadline.
func (c *Client) PollBatch(ctx context.Context, batchID string, timeout time.Duration) error {
	result, err := poll.Until(ctx, c.pollInterval, timeout, func(ctx context.Context) (string, bool, error) {
		batch, err := c.api.RetrieveVectorStoreFileBatch(ctx, c.storeID, batchID)
		if err != nil {
			return "", false, fmt.Errorf("retrieve batch %s: %w", batchID, err)
		}
		state := index.BatchState(batch.Status)
		c.logger.Debug("batch status", "batch_id", batchID, "status", batch.Status)
		return batch.Status, state.IsTerminal(), nil
	})
	if err != nil {
		return err
	}

	switch result.Outcome {
	case poll.Completed:
		return nil
	case poll.TimedOut:
		return fmt.Errorf("%w after %s (last status %q)", ErrIndexingTimeout, timeout, result.Status)
	default:
		return &IndexingError{Status: result.Status}
	}
}

// LinkAssistant points the assistant's file-search tool at this vector store.
func (c *Client) LinkAssistant(ctx context.Context, assistantID string) error {
	_, err := c.api.ModifyAssistant(ctx, assistantID, openai.AssistantRequest{
		ToolResources: &openai.AssistantToolResource{
			FileSearch: &openai.AssistantToolFileSearch{
				VectorStoreIDs: []string{c.storeID},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("link assistant %s: %w", assistantID, err)
	}
	c.logger.Info("assistant linked", "assistant_id", assistantID, "vector_store_id", c.storeID)
	return nil
}
