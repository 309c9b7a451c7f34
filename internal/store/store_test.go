package store

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) Repo {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func openBadger(t *testing.T) Repo {
	t.Helper()
	b, err := OpenBadger(InMemoryBadgerConfig())
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

// eachBackend runs fn against every Repo implementation.
func eachBackend(t *testing.T, fn func(t *testing.T, r Repo)) {
	backends := []struct {
		name string
		open func(*testing.T) Repo
	}{
		{BackendSQLite, openSQLite},
		{BackendBadger, openBadger},
	}
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			fn(t, b.open(t))
		})
	}
}

func raw(s string) json.RawMessage { return json.RawMessage(s) }

// canonical re-encodes a record so values compare independent of spacing.
func canonical(t *testing.T, r Record) map[string]any {
	t.Helper()
	b, err := json.Marshal(r)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(b, &out))
	return out
}

func TestGetUnknown(t *testing.T) {
	eachBackend(t, func(t *testing.T, r Repo) {
		_, err := r.Get(context.Background(), "nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCreateIsIdempotent(t *testing.T) {
	eachBackend(t, func(t *testing.T, r Repo) {
		ctx := context.Background()
		rec, created, err := r.Create(ctx, "a@b.com")
		require.NoError(t, err)
		assert.True(t, created)
		want := map[string]any{"history": map[string]any{}}
		if diff := cmp.Diff(want, canonical(t, rec)); diff != "" {
			t.Errorf("new record mismatch (-want +got):\n%s", diff)
		}

		require.NoError(t, r.Put(ctx, "a@b.com", Record{"history": raw(`{"2024-06-10":{"completed":{"memory":true},"score":17}}`)}))

		rec, created, err = r.Create(ctx, "a@b.com")
		require.NoError(t, err)
		assert.False(t, created)
		got := canonical(t, rec)
		assert.Contains(t, got["history"], "2024-06-10", "second login must not reset history")
	})
}

func TestPutMergesShallow(t *testing.T) {
	eachBackend(t, func(t *testing.T, r Repo) {
		ctx := context.Background()
		_, _, err := r.Create(ctx, "a@b.com")
		require.NoError(t, err)

		require.NoError(t, r.Put(ctx, "a@b.com", Record{
			"history": raw(`{"2024-06-09":{"completed":{},"score":0}}`),
			"theme":   raw(`"dark"`),
		}))
		require.NoError(t, r.Put(ctx, "a@b.com", Record{
			"history": raw(`{"2024-06-10":{"completed":{"focus":true},"score":17}}`),
		}))

		rec, err := r.Get(ctx, "a@b.com")
		require.NoError(t, err)
		want := map[string]any{
			"theme": "dark",
			// history is replaced wholesale, not merged per day
			"history": map[string]any{
				"2024-06-10": map[string]any{"completed": map[string]any{"focus": true}, "score": float64(17)},
			},
		}
		if diff := cmp.Diff(want, canonical(t, rec)); diff != "" {
			t.Errorf("merged record mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestPutCreatesAbsent(t *testing.T) {
	eachBackend(t, func(t *testing.T, r Repo) {
		ctx := context.Background()
		require.NoError(t, r.Put(ctx, "new@b.com", Record{"history": raw(`{}`)}))
		rec, err := r.Get(ctx, "new@b.com")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"history": map[string]any{}}, canonical(t, rec))
	})
}

func TestEmails(t *testing.T) {
	eachBackend(t, func(t *testing.T, r Repo) {
		ctx := context.Background()
		for _, e := range []string{"c@x.com", "a@x.com", "b@x.com"} {
			_, _, err := r.Create(ctx, e)
			require.NoError(t, err)
		}
		got, err := r.Emails(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"a@x.com", "b@x.com", "c@x.com"}, got)
	})
}

func TestConcurrentPutsLastWriteWins(t *testing.T) {
	eachBackend(t, func(t *testing.T, r Repo) {
		ctx := context.Background()
		var wg sync.WaitGroup
		errs := make(chan error, 10)
		for i := range 10 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs <- r.Put(ctx, "a@b.com", Record{fmt.Sprintf("k%d", i): raw(`true`)})
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			require.NoError(t, err)
		}
		rec, err := r.Get(ctx, "a@b.com")
		require.NoError(t, err)
		assert.Len(t, rec, 10, "every distinct key survives the merges")
	})
}

func TestPragmasApplied(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "pragma.db"))
	require.NoError(t, err)
	defer s.Close()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}
	for _, tt := range tests {
		var got string
		require.NoError(t, s.DB().QueryRow("PRAGMA "+tt.pragma).Scan(&got))
		assert.Equal(t, tt.want, got, "PRAGMA %s", tt.pragma)
	}
}

func TestOpenBackends(t *testing.T) {
	dir := t.TempDir()

	r, err := Open(Config{Backend: BackendSQLite, Path: filepath.Join(dir, "x.db")}, nil)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	r, err = Open(Config{Backend: BackendBadger, Path: filepath.Join(dir, "kv")}, nil)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	_, err = Open(Config{Backend: "postgres"}, nil)
	assert.Error(t, err)

	_, err = OpenBadger(BadgerConfig{})
	assert.Error(t, err, "persistent badger needs a path")
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("MINDUP_DB", filepath.Join(dir, "env", "m.db"))
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "env", "m.db"), p)

	t.Setenv("MINDUP_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "mindupgrade", "mindupgrade.db"), p)
}

func TestMergeDoesNotAlias(t *testing.T) {
	base := Record{"a": raw(`1`)}
	out := Merge(base, Record{"b": raw(`2`)})
	out["c"] = raw(`3`)
	if len(base) != 1 {
		t.Errorf("Merge mutated base: %v", base)
	}
}
