// Package persistence stores sync run history in the local database.
package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brightlabs/sitesync/domain/run"
	"github.com/brightlabs/sitesync/internal/database"
)

// runRecord is the database row for one sync run.
type runRecord struct {
	ID                uint   `gorm:"primarykey"`
	State             string `gorm:"index"`
	OK                bool
	Error             string
	Steps             string `gorm:"type:text"`
	StartedAt         time.Time
	FinishedAt        time.Time
	ArtifactName      string
	FileID            string
	BatchID           string
	StaleDeleted      int
	StaleDeleteFailed int
	CreatedAt         time.Time
}

func (runRecord) TableName() string { return "sync_runs" }

// RunStore persists run reports.
type RunStore struct {
	db database.Database
}

// NewRunStore creates a RunStore and migrates its schema.
func NewRunStore(ctx context.Context, db database.Database) (*RunStore, error) {
	if err := db.Session(ctx).AutoMigrate(&runRecord{}); err != nil {
		return nil, fmt.Errorf("migrate run history: %w", err)
	}
	return &RunStore{db: db}, nil
}

// Save appends one run report to the history.
func (s *RunStore) Save(ctx context.Context, report *run.Report) error {
	record, err := toRecord(report)
	if err != nil {
		return err
	}
	if err := s.db.Session(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("save run report: %w", err)
	}
	return nil
}

// Recent returns up to limit reports, newest first.
func (s *RunStore) Recent(ctx context.Context, limit int) ([]*run.Report, error) {
	if limit <= 0 {
		limit = 20
	}
	var records []runRecord
	err := s.db.Session(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("list run reports: %w", err)
	}

	reports := make([]*run.Report, 0, len(records))
	for _, record := range records {
		report, err := fromRecord(record)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// Latest returns the most recent report, or nil when the history is empty.
func (s *RunStore) Latest(ctx context.Context) (*run.Report, error) {
	reports, err := s.Recent(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, nil
	}
	return reports[0], nil
}

func toRecord(report *run.Report) (runRecord, error) {
	steps, err := json.Marshal(report.Steps)
	if err != nil {
		return runRecord{}, fmt.Errorf("encode run steps: %w", err)
	}
	return runRecord{
		State:             string(report.State),
		OK:                report.OK,
		Error:             report.Error,
		Steps:             string(steps),
		StartedAt:         report.StartedAt,
		FinishedAt:        report.FinishedAt,
		ArtifactName:      report.ArtifactName,
		FileID:            report.FileID,
		BatchID:           report.BatchID,
		StaleDeleted:      report.StaleDeleted,
		StaleDeleteFailed: report.StaleDeleteFailed,
	}, nil
}

func fromRecord(record runRecord) (*run.Report, error) {
	var steps []run.StepStatus
	if record.Steps != "" {
		if err := json.Unmarshal([]byte(record.Steps), &steps); err != nil {
			return nil, fmt.Errorf("decode run steps: %w", err)
		}
	}
	return &run.Report{
		State:             run.State(record.State),
		OK:                record.OK,
		Error:             record.Error,
		Steps:             steps,
		StartedAt:         record.StartedAt.UTC(),
		FinishedAt:        record.FinishedAt.UTC(),
		ArtifactName:      record.ArtifactName,
		FileID:            record.FileID,
		BatchID:           record.BatchID,
		StaleDeleted:      record.StaleDeleted,
		StaleDeleteFailed: record.StaleDeleteFailed,
	}, nil
}
