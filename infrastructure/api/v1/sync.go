// Package v1 contains the versioned HTTP API routes.
package v1

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/brightlabs/sitesync/application/service"
	"github.com/brightlabs/sitesync/domain/run"
)

// maxRunsPage bounds GET /runs responses.
const maxRunsPage = 100

// SyncRunner executes one sync run.
type SyncRunner interface {
	Run(ctx context.Context) (*run.Report, error)
}

// RunLister reads the persisted run history.
type RunLister interface {
	Recent(ctx context.Context, limit int) ([]*run.Report, error)
}

// SyncRouter handles sync trigger and run history endpoints.
type SyncRouter struct {
	runner  SyncRunner
	history RunLister
	logger  *slog.Logger
}

// NewSyncRouter creates a new SyncRouter. history may be nil when run
// persistence is disabled; GET /runs then returns an empty list.
func NewSyncRouter(runner SyncRunner, history RunLister, logger *slog.Logger) *SyncRouter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncRouter{runner: runner, history: history, logger: logger}
}

// Routes returns the chi router for sync endpoints.
func (r *SyncRouter) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/sync", r.Sync)
	router.Get("/runs", r.Runs)

	return router
}

// Sync handles POST /api/v1/sync. It runs the pipeline synchronously and
// returns the run report: 200 when indexed, 409 when a run is already in
// flight, 500 otherwise.
func (r *SyncRouter) Sync(w http.ResponseWriter, req *http.Request) {
	report, err := r.runner.Run(req.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, report)
	case errors.Is(err, service.ErrSyncInProgress):
		writeError(w, http.StatusConflict, err)
	case report != nil:
		// Failed runs still carry a report with the fatal step.
		writeJSON(w, http.StatusInternalServerError, report)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

// Runs handles GET /api/v1/runs. The optional limit query parameter bounds
// the page size.
func (r *SyncRouter) Runs(w http.ResponseWriter, req *http.Request) {
	if r.history == nil {
		writeJSON(w, http.StatusOK, map[string]any{"runs": []*run.Report{}})
		return
	}

	limit := 20
	if raw := req.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 || parsed > maxRunsPage {
			writeError(w, http.StatusBadRequest, errors.New("limit must be between 1 and 100"))
			return
		}
		limit = parsed
	}

	reports, err := r.history.Recent(req.Context(), limit)
	if err != nil {
		r.logger.Error("run history read failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if reports == nil {
		reports = []*run.Report{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": reports})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
