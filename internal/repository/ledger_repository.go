package repository

import (
	"database/sql"
	"fmt"
	"strings"
)

// LedgerRepository remembers which mutations have already landed. Retried
// or re-run batches consult it before mutating, which keeps the
// at-least-once delivery of the retry executor from duplicating effects:
// an update whose fingerprint is present is simply skipped.
type LedgerRepository struct {
	db *sql.DB
}

func NewLedgerRepository(db *sql.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// Fingerprint builds a stable identity for one mutation from its scope
// parts (item, field, serialized value).
func Fingerprint(parts ...string) string {
	return strings.Join(parts, "\x1f")
}

func (r *LedgerRepository) IsApplied(scope, fingerprint string) (bool, error) {
	var count int
	query := `SELECT COUNT(1) FROM applied_updates WHERE scope = ? AND fingerprint = ?`
	if err := r.db.QueryRow(query, scope, fingerprint).Scan(&count); err != nil {
		return false, fmt.Errorf("check applied update: %w", err)
	}
	return count > 0, nil
}

func (r *LedgerRepository) MarkApplied(scope, fingerprint, runId string) error {
	query := `INSERT OR IGNORE INTO applied_updates (scope, fingerprint, run_id) VALUES (?, ?, ?)`
	if _, err := r.db.Exec(query, scope, fingerprint, runId); err != nil {
		return fmt.Errorf("mark update applied: %w", err)
	}
	return nil
}
