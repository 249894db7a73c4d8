package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLifecycle(t *testing.T) {
	db, err := InitDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	runs := NewRunRepository(db)

	id, err := runs.Create("fields", "my-repo", 12)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, runs.UpdateProgress(id, 5, 2, 1))
	require.NoError(t, runs.Complete(id, "completed_with_errors"))

	run, err := runs.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "fields", run.Command)
	assert.Equal(t, "my-repo", run.TargetRepo)
	assert.Equal(t, 12, run.TotalRows)
	assert.Equal(t, 5, run.Updated)
	assert.Equal(t, 2, run.Skipped)
	assert.Equal(t, 1, run.Failed)
	assert.Equal(t, "completed_with_errors", run.Status)
	assert.NotNil(t, run.CompletedAt)
}

func TestLedgerDeduplicates(t *testing.T) {
	db, err := InitDB(":memory:")
	require.NoError(t, err)
	defer db.Close()

	ledger := NewLedgerRepository(db)

	fp := Fingerprint("item-1", "field-2", "2024-02-09")
	applied, err := ledger.IsApplied("acme/my-repo", fp)
	require.NoError(t, err)
	assert.False(t, applied)

	require.NoError(t, ledger.MarkApplied("acme/my-repo", fp, "run-1"))
	// Re-marking the same mutation is a no-op, not an error.
	require.NoError(t, ledger.MarkApplied("acme/my-repo", fp, "run-2"))

	applied, err = ledger.IsApplied("acme/my-repo", fp)
	require.NoError(t, err)
	assert.True(t, applied)

	// Other scopes are unaffected.
	applied, err = ledger.IsApplied("acme/other", fp)
	require.NoError(t, err)
	assert.False(t, applied)
}

func TestFingerprintDistinguishesParts(t *testing.T) {
	assert.NotEqual(t, Fingerprint("ab", "c"), Fingerprint("a", "bc"))
}
