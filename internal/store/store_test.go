package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestStore creates a store backed by a temp database, closed with the
// test.
func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "evsim.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func TestOpen_CreatesSchema(t *testing.T) {
	st := openTestStore(t)

	// Both tables must exist and be queryable.
	var n int
	require.NoError(t, st.DB().QueryRow("SELECT COUNT(*) FROM runs").Scan(&n))
	assert.Equal(t, 0, n)
	require.NoError(t, st.DB().QueryRow("SELECT COUNT(*) FROM results").Scan(&n))
	assert.Equal(t, 0, n)
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "evsim.db")

	st1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st1.Close())

	st2, err := Open(path)
	require.NoError(t, err)
	defer st2.Close()

	var version int
	require.NoError(t, st2.DB().QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestOpen_Pragmas(t *testing.T) {
	st := openTestStore(t)

	assert.NoError(t, st.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, st.verifyPragma("foreign_keys", "1"))
}

func TestNewRunID_UniqueAndOrdered(t *testing.T) {
	a := NewRunID()
	b := NewRunID()

	assert.NotEqual(t, a, b)
	// UUIDv7 is time-ordered; two IDs from the same process sort in
	// generation order.
	assert.Less(t, a, b)
}

func TestClose_NilSafe(t *testing.T) {
	var s Store
	assert.NoError(t, s.Close())
}

func TestForeignKeys_CascadeDelete(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	run, table := fixtureRun(t)
	require.NoError(t, st.WriteRunAtomic(ctx, run, table))

	_, err := st.DB().ExecContext(ctx, "DELETE FROM runs WHERE id = ?", run.ID)
	require.NoError(t, err)

	var n int
	require.NoError(t, st.DB().QueryRow("SELECT COUNT(*) FROM results WHERE run_id = ?", run.ID).Scan(&n))
	assert.Equal(t, 0, n, "result rows must be deleted with their run")
}
