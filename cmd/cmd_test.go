package cmd

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mindupgrade/internal/client"
	"github.com/abhisek/mindupgrade/internal/progress"
	"github.com/abhisek/mindupgrade/internal/server"
	"github.com/abhisek/mindupgrade/internal/session"
	"github.com/abhisek/mindupgrade/internal/store"
	"github.com/abhisek/mindupgrade/internal/task"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// isolate keeps config, state and env lookups inside a temp directory.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	for _, k := range []string{
		"MINDUP_CONFIG", "MINDUP_API_URL", "MINDUP_API_TIMEOUT", "MINDUP_LLM_PROVIDER",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
	return dir
}

func startService(t *testing.T) string {
	t.Helper()
	repo, err := store.OpenBadger(store.InMemoryBadgerConfig())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	ts := httptest.NewServer(server.New(server.DefaultConfig(), repo, nil).Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return out.String(), err
}

func all() map[task.ID]bool {
	m := map[task.ID]bool{}
	for _, id := range task.All() {
		m[id] = true
	}
	return m
}

func TestStats(t *testing.T) {
	isolate(t)
	url := startService(t)

	today := time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC)
	now = func() time.Time { return today }
	t.Cleanup(func() { now = time.Now })

	api, err := client.New(url)
	require.NoError(t, err)
	ctx := context.Background()
	_, err = api.Login(ctx, "ada@example.com")
	require.NoError(t, err)
	require.NoError(t, api.SaveHistory(ctx, "ada@example.com", progress.History{
		"2024-06-10": progress.NewDayRecord(map[task.ID]bool{task.Memory: true, task.Focus: true}),
		"2024-06-09": progress.NewDayRecord(all()),
		"2024-06-08": progress.NewDayRecord(all()),
	}))

	out, err := run(t, "stats", "--api", url, "--days", "2", "ada@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "ada@example.com")
	assert.Contains(t, out, "Today:        33/100")
	assert.Contains(t, out, "Streak:       2 (next milestone 3)")
	assert.Contains(t, out, "Perfect days: 2 of 3")
	assert.Contains(t, out, "Memory, Focus")
	assert.Contains(t, out, "2024-06-09")
	assert.NotContains(t, out, "2024-06-08", "--days limits the listing")
}

func TestStatsUnknownUser(t *testing.T) {
	isolate(t)
	url := startService(t)

	_, err := run(t, "stats", "--api", url, "--days", "14", "nobody@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no record for nobody@example.com")
}

func TestLogout(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Not logged in.")

	path := filepath.Join(dir, "state", "mindupgrade", "session")
	require.NoError(t, session.NewFileMarker(path).Save("ada@example.com"))

	out, err = run(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out ada@example.com.")
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "marker should be removed")
}

func TestVersionWithServer(t *testing.T) {
	isolate(t)
	url := startService(t)

	out, err := run(t, "version", "--server", "--api", url)
	require.NoError(t, err)
	assert.Contains(t, out, "mindupgrade (devel)")
	assert.Contains(t, out, "record service v1")
}

func TestPromptsNeedsProvider(t *testing.T) {
	isolate(t)
	_, err := run(t, "prompts", "--provider", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no LLM provider configured")
}
