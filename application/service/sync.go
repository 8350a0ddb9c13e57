// Package service contains the sync pipeline control logic: the orchestrator
// state machine, the stale-copy cleanup pass, and the periodic scheduler.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/brightlabs/sitesync/domain/corpus"
	"github.com/brightlabs/sitesync/domain/index"
	"github.com/brightlabs/sitesync/domain/run"
	"github.com/brightlabs/sitesync/internal/config"
)

// ArtifactStore resolves and materializes the on-disk artifact.
type ArtifactStore interface {
	ResolvePath() string
	EnsureExists(ctx context.Context, path string) error
	Read(path string) ([]byte, error)
}

// IndexClient is the remote vector index surface the pipeline drives.
type IndexClient interface {
	UploadFile(ctx context.Context, content []byte, filename string) (string, error)
	ListIndexFiles(ctx context.Context, limit int) ([]index.FileRef, error)
	ResolveFilename(ctx context.Context, ref index.FileRef) string
	DeleteIndexMembership(ctx context.Context, ref index.FileRef) error
	CreateIndexBatch(ctx context.Context, fileIDs []string) (string, error)
	PollBatch(ctx context.Context, batchID string, timeout time.Duration) error
	LinkAssistant(ctx context.Context, assistantID string) error
}

// RunHistory persists completed run reports.
type RunHistory interface {
	Save(ctx context.Context, report *run.Report) error
}

// Orchestrator drives one sync run through its stages in order: optional
// assistant link, artifact readiness, stale-copy cleanup, upload, attach,
// and batch poll. Stages after a fatal failure do not execute.
type Orchestrator struct {
	artifacts ArtifactStore
	client    IndexClient
	history   RunHistory
	logger    *slog.Logger

	apiKey         string
	storeID        string
	assistantID    string
	marker         string
	listLimit      int
	pollTimeout    time.Duration
	cleanupEnabled bool
	lockPath       string

	mu  sync.Mutex
	now func() time.Time
}

// NewOrchestrator creates an Orchestrator from config and dependencies.
// history may be nil when run persistence is not wanted.
func NewOrchestrator(
	cfg config.AppConfig,
	artifacts ArtifactStore,
	client IndexClient,
	history RunHistory,
	logger *slog.Logger,
) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		artifacts:      artifacts,
		client:         client,
		history:        history,
		logger:         logger,
		apiKey:         cfg.APIKey(),
		storeID:        cfg.VectorStoreID(),
		assistantID:    cfg.AssistantID(),
		marker:         cfg.LiveDocMarker(),
		listLimit:      cfg.ListLimit(),
		pollTimeout:    cfg.PollTimeout(),
		cleanupEnabled: cfg.CleanupEnabled(),
		lockPath:       filepath.Join(os.TempDir(), "sitesync-"+cfg.LiveDocMarker()+".lock"),
		now:            time.Now,
	}
}

// Run executes one sync run and returns its report. On a fatal stage failure
// the report carries the failed step and the error is returned alongside it.
// A second concurrent entrant gets ErrSyncInProgress without a report.
func (o *Orchestrator) Run(ctx context.Context) (*run.Report, error) {
	if o.apiKey == "" || o.storeID == "" {
		return nil, ErrMissingConfig
	}

	if !o.mu.TryLock() {
		return nil, ErrSyncInProgress
	}
	defer o.mu.Unlock()

	release, err := acquireLockFile(o.lockPath)
	if err != nil {
		return nil, err
	}
	defer release()

	report := run.NewReport(o.now())
	o.logger.Info("sync run started", "vector_store_id", o.storeID)

	if o.assistantID != "" {
		if err := o.client.LinkAssistant(ctx, o.assistantID); err != nil {
			return o.fail(ctx, report, run.StepLinkAssistant, err)
		}
		report.Record(run.StepLinkAssistant, run.StepOK, o.assistantID)
	} else {
		report.Record(run.StepLinkAssistant, run.StepSkipped, "no assistant configured")
	}

	path := o.artifacts.ResolvePath()
	if err := o.artifacts.EnsureExists(ctx, path); err != nil {
		return o.fail(ctx, report, run.StepEnsureArtifact, err)
	}
	content, err := o.artifacts.Read(path)
	if err != nil {
		return o.fail(ctx, report, run.StepEnsureArtifact, err)
	}
	filename := corpus.LiveFilename(o.marker)
	report.ArtifactName = filename
	report.Record(run.StepEnsureArtifact, run.StepOK, path)

	if o.cleanupEnabled {
		summary := o.cleanupStale(ctx)
		report.StaleDeleted = summary.DeletedCount()
		report.StaleDeleteFailed = summary.FailedCount()
		report.Record(run.StepCleanup, run.StepOK,
			fmt.Sprintf("deleted %d stale, %d failed", summary.DeletedCount(), summary.FailedCount()))
	} else {
		report.Record(run.StepCleanup, run.StepSkipped, "cleanup disabled")
	}

	fileID, err := o.client.UploadFile(ctx, content, filename)
	if err != nil {
		return o.fail(ctx, report, run.StepUpload, err)
	}
	report.FileID = fileID
	report.Record(run.StepUpload, run.StepOK, fileID)

	batchID, err := o.client.CreateIndexBatch(ctx, []string{fileID})
	if err != nil {
		return o.fail(ctx, report, run.StepAttach, err)
	}
	report.BatchID = batchID
	if err := o.client.PollBatch(ctx, batchID, o.pollTimeout); err != nil {
		return o.fail(ctx, report, run.StepAttach, err)
	}
	report.Record(run.StepAttach, run.StepOK, batchID)

	report.Complete(o.now())
	o.persist(ctx, report)
	o.logger.Info("sync run indexed",
		"file_id", report.FileID,
		"batch_id", report.BatchID,
		"stale_deleted", report.StaleDeleted,
		"duration", report.Duration().String())
	return report, nil
}

// fail finalizes the report with the fatal step, persists it, and surfaces
// the error with the stage name attached.
func (o *Orchestrator) fail(ctx context.Context, report *run.Report, step string, err error) (*run.Report, error) {
	report.Fail(step, err, o.now())
	o.persist(ctx, report)
	o.logger.Error("sync run failed", "step", step, "error", err.Error())
	return report, fmt.Errorf("%s: %w", step, err)
}

// persist saves the report to the run history. Persistence failure is
// logged; it never changes the run outcome.
func (o *Orchestrator) persist(ctx context.Context, report *run.Report) {
	if o.history == nil {
		return
	}
	if err := o.history.Save(ctx, report); err != nil {
		o.logger.Warn("run history save failed", "error", err.Error())
	}
}

// acquireLockFile takes the cross-process single-flight lock for the logical
// document. The lock file carries the owner PID; a lock left behind by a
// crashed run is reclaimed once its owner is gone. The returned release
// removes the lock.
func acquireLockFile(path string) (func(), error) {
	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			_, _ = fmt.Fprintf(f, "%d", os.Getpid())
			_ = f.Close()
			return func() { _ = os.Remove(path) }, nil
		}
		if !errors.Is(err, os.ErrExist) {
			return nil, fmt.Errorf("acquire sync lock: %w", err)
		}
		if attempt == 0 && !lockOwnerAlive(path) {
			_ = os.Remove(path)
			continue
		}
		return nil, ErrSyncInProgress
	}
	return nil, ErrSyncInProgress
}

// lockOwnerAlive reports whether the process recorded in the lock file still
// exists. A lock without a readable live owner is stale.
func lockOwnerAlive(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || errors.Is(err, syscall.EPERM)
}
