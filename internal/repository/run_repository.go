package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Run struct {
	Id          string
	Command     string
	TargetRepo  string
	Status      string
	TotalRows   int
	Updated     int
	Skipped     int
	Failed      int
	StartedAt   time.Time
	CompletedAt *time.Time
}

type RunRepository struct {
	db *sql.DB
}

func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create records the start of a batch and returns its run id.
func (r *RunRepository) Create(command, targetRepo string, totalRows int) (string, error) {
	id := uuid.NewString()
	query := `
	INSERT INTO runs (id, command, target_repo, status, total_rows)
	VALUES (?, ?, ?, 'running', ?)
	`
	if _, err := r.db.Exec(query, id, command, targetRepo, totalRows); err != nil {
		return "", fmt.Errorf("create run: %w", err)
	}
	return id, nil
}

func (r *RunRepository) UpdateProgress(id string, updated, skipped, failed int) error {
	query := `UPDATE runs SET updated = ?, skipped = ?, failed = ? WHERE id = ?`
	if _, err := r.db.Exec(query, updated, skipped, failed, id); err != nil {
		return fmt.Errorf("update run progress: %w", err)
	}
	return nil
}

func (r *RunRepository) Complete(id, status string) error {
	query := `UPDATE runs SET status = ?, completed_at = CURRENT_TIMESTAMP WHERE id = ?`
	if _, err := r.db.Exec(query, status, id); err != nil {
		return fmt.Errorf("complete run: %w", err)
	}
	return nil
}

func (r *RunRepository) Get(id string) (Run, error) {
	query := `
	SELECT id, command, target_repo, status, total_rows, updated, skipped, failed, started_at, completed_at
	FROM runs WHERE id = ?
	`
	var run Run
	err := r.db.QueryRow(query, id).Scan(
		&run.Id,
		&run.Command,
		&run.TargetRepo,
		&run.Status,
		&run.TotalRows,
		&run.Updated,
		&run.Skipped,
		&run.Failed,
		&run.StartedAt,
		&run.CompletedAt,
	)
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	return run, nil
}
