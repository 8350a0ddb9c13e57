package vectorstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightlabs/sitesync/domain/index"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL
	client := NewWithClient(openai.NewClientWithConfig(cfg), "vs_test", nil)
	client.pollInterval = 5 * time.Millisecond
	return client
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]any{"message": message, "type": "invalid_request_error"},
	})
}

func TestUploadFile(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /files", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "assistants", r.FormValue("purpose"))
		writeJSON(w, map[string]any{"id": "file-123", "object": "file", "filename": "site-latest.txt"})
	})

	client := newTestClient(t, mux)
	fileID, err := client.UploadFile(context.Background(), []byte("artifact body"), "site-latest.txt")
	require.NoError(t, err)
	assert.Equal(t, "file-123", fileID)
}

func TestUploadFileRemoteError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /files", func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusBadRequest, "unsupported file")
	})

	client := newTestClient(t, mux)
	_, err := client.UploadFile(context.Background(), []byte("x"), "a.txt")

	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Equal(t, http.StatusBadRequest, uploadErr.Status)
	assert.Equal(t, "unsupported file", uploadErr.Message)
}

func TestUploadFileMissingID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /files", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"object": "file"})
	})

	client := newTestClient(t, mux)
	_, err := client.UploadFile(context.Background(), []byte("x"), "a.txt")

	var uploadErr *UploadError
	require.ErrorAs(t, err, &uploadErr)
	assert.Contains(t, uploadErr.Message, "missing file id")
}

func TestListIndexFiles(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /vector_stores/vs_test/files", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		writeJSON(w, map[string]any{
			"object": "list",
			"data": []map[string]any{
				{"id": "file-1", "object": "vector_store.file", "status": "completed"},
				{"id": "file-2", "object": "vector_store.file", "status": "completed"},
			},
		})
	})

	client := newTestClient(t, mux)
	refs, err := client.ListIndexFiles(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "file-1", refs[0].FileID())
	assert.Equal(t, "file-1", refs[0].MembershipID())
	assert.Empty(t, refs[0].Filename())
}

func TestResolveFilename(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /files/file-1", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"id": "file-1", "object": "file", "filename": "site-latest.txt"})
	})
	mux.HandleFunc("GET /files/file-2", func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusNotFound, "no such file")
	})

	client := newTestClient(t, mux)

	// Embedded name wins without a fetch.
	embedded := index.NewFileRef("m-1", "file-9").WithFilename("known.txt")
	assert.Equal(t, "known.txt", client.ResolveFilename(context.Background(), embedded))

	assert.Equal(t, "site-latest.txt", client.ResolveFilename(context.Background(), index.NewFileRef("file-1", "file-1")))
	assert.Empty(t, client.ResolveFilename(context.Background(), index.NewFileRef("file-2", "file-2")))
}

func TestDeleteIndexMembership(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /vector_stores/vs_test/files/file-1", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"id": "file-1", "deleted": true})
	})
	mux.HandleFunc("DELETE /vector_stores/vs_test/files/file-2", func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusConflict, "file is busy")
	})

	client := newTestClient(t, mux)
	require.NoError(t, client.DeleteIndexMembership(context.Background(), index.NewFileRef("file-1", "file-1")))

	err := client.DeleteIndexMembership(context.Background(), index.NewFileRef("file-2", "file-2"))
	var delErr *DeleteError
	require.ErrorAs(t, err, &delErr)
	assert.Equal(t, "file-2", delErr.MembershipID)
	assert.Equal(t, http.StatusConflict, delErr.Status)
}

func TestCreateIndexBatch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /vector_stores/vs_test/file_batches", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			FileIDs []string `json:"file_ids"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"file-1"}, req.FileIDs)
		writeJSON(w, map[string]any{"id": "batch-1", "object": "vector_store.file_batch", "status": "in_progress"})
	})

	client := newTestClient(t, mux)
	batchID, err := client.CreateIndexBatch(context.Background(), []string{"file-1"})
	require.NoError(t, err)
	assert.Equal(t, "batch-1", batchID)
}

func TestCreateIndexBatchMissingID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /vector_stores/vs_test/file_batches", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, map[string]any{"object": "vector_store.file_batch", "status": "in_progress"})
	})

	client := newTestClient(t, mux)
	_, err := client.CreateIndexBatch(context.Background(), []string{"file-1"})

	var batchErr *BatchCreateError
	require.ErrorAs(t, err, &batchErr)
}

func batchStatusHandler(statuses ...string) http.Handler {
	var calls atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("GET /vector_stores/vs_test/file_batches/batch-1", func(w http.ResponseWriter, _ *http.Request) {
		n := calls.Add(1)
		status := statuses[len(statuses)-1]
		if int(n) <= len(statuses) {
			status = statuses[n-1]
		}
		writeJSON(w, map[string]any{"id": "batch-1", "object": "vector_store.file_batch", "status": status})
	})
	return mux
}

func TestPollBatchCompletes(t *testing.T) {
	client := newTestClient(t, batchStatusHandler("in_progress", "in_progress", "completed"))
	err := client.PollBatch(context.Background(), "batch-1", time.Second)
	require.NoError(t, err)
}

func TestPollBatchFailed(t *testing.T) {
	client := newTestClient(t, batchStatusHandler("in_progress", "failed"))
	err := client.PollBatch(context.Background(), "batch-1", time.Second)

	var idxErr *IndexingError
	require.ErrorAs(t, err, &idxErr)
	assert.Equal(t, "failed", idxErr.Status)
}

func TestPollBatchCancelled(t *testing.T) {
	client := newTestClient(t, batchStatusHandler("cancelled"))
	err := client.PollBatch(context.Background(), "batch-1", time.Second)

	var idxErr *IndexingError
	require.ErrorAs(t, err, &idxErr)
	assert.Equal(t, "cancelled", idxErr.Status)
}

func TestPollBatchTimeout(t *testing.T) {
	client := newTestClient(t, batchStatusHandler("in_progress"))
	err := client.PollBatch(context.Background(), "batch-1", 25*time.Millisecond)
	require.ErrorIs(t, err, ErrIndexingTimeout)
	assert.Contains(t, err.Error(), "in_progress")
}

func TestPollBatchProbeError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /vector_stores/vs_test/file_batches/batch-1", func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusInternalServerError, "backend exploded")
	})

	client := newTestClient(t, mux)
	err := client.PollBatch(context.Background(), "batch-1", time.Second)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrIndexingTimeout))
}

func TestLinkAssistant(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /assistants/asst_1", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ToolResources struct {
				FileSearch struct {
					VectorStoreIDs []string `json:"vector_store_ids"`
				} `json:"file_search"`
			} `json:"tool_resources"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, []string{"vs_test"}, req.ToolResources.FileSearch.VectorStoreIDs)
		writeJSON(w, map[string]any{"id": "asst_1", "object": "assistant"})
	})

	client := newTestClient(t, mux)
	require.NoError(t, client.LinkAssistant(context.Background(), "asst_1"))
}

func TestLinkAssistantFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /assistants/asst_1", func(w http.ResponseWriter, _ *http.Request) {
		writeAPIError(w, http.StatusNotFound, "no such assistant")
	})

	client := newTestClient(t, mux)
	err := client.LinkAssistant(context.Background(), "asst_1")
	require.Error(t, err)
}
