package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/evsim/internal/store"
)

func TestReplayCommand_Deterministic(t *testing.T) {
	dbPath, runID, _ := seedDatabase(t)

	buf := &bytes.Buffer{}
	cmd := NewReplayCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), runID)
	assert.Contains(t, buf.String(), "deterministic")
	assert.NotContains(t, buf.String(), "DIVERGED")
}

func TestReplayCommand_SingleRun(t *testing.T) {
	dbPath, runID, _ := seedDatabase(t)

	buf := &bytes.Buffer{}
	cmd := NewReplayCommand(&RootOptions{Format: "json"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, "--run", runID})

	require.NoError(t, cmd.Execute())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.Equal(t, "ok", resp.Status)

	data, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var result ReplayResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.True(t, result.AllDeterministic)
	assert.Equal(t, 1, result.TotalRuns)
	require.Len(t, result.Runs, 1)
	assert.Equal(t, runID, result.Runs[0].RunID)
	assert.True(t, result.Runs[0].Deterministic)
}

func TestReplayCommand_DetectsTampering(t *testing.T) {
	dbPath, runID, _ := seedDatabase(t)

	// Corrupt one stored float; the replay must notice.
	st, err := store.Open(dbPath)
	require.NoError(t, err)
	_, err = st.DB().Exec("UPDATE results SET bias = bias + 1e-9 WHERE run_id = ? AND ord = 0", runID)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	buf := &bytes.Buffer{}
	cmd := NewReplayCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath})

	err = cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "determinism verification failed")
	assert.Contains(t, buf.String(), "DIVERGED")
}

func TestReplayCommand_UnknownRun(t *testing.T) {
	dbPath, _, _ := seedDatabase(t)

	cmd := NewReplayCommand(&RootOptions{Format: "text"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath, "--run", "missing"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestReplayCommand_EmptyDatabase(t *testing.T) {
	dbPath := t.TempDir() + "/empty.db"

	buf := &bytes.Buffer{}
	cmd := NewReplayCommand(&RootOptions{Format: "text"})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db", dbPath})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "No runs found")
}
