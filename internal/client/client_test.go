package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/mindupgrade/internal/apperr"
	"github.com/abhisek/mindupgrade/internal/progress"
	"github.com/abhisek/mindupgrade/internal/server"
	"github.com/abhisek/mindupgrade/internal/store"
	"github.com/abhisek/mindupgrade/internal/task"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newServiceClient(t *testing.T) *Client {
	t.Helper()
	repo, err := store.OpenBadger(store.InMemoryBadgerConfig())
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	ts := httptest.NewServer(server.New(server.DefaultConfig(), repo, nil).Handler())
	t.Cleanup(ts.Close)

	c, err := New(ts.URL)
	require.NoError(t, err)
	return c
}

func TestRoundTrip(t *testing.T) {
	c := newServiceClient(t)
	ctx := context.Background()

	_, err := c.Fetch(ctx, "a+b@c.com")
	var nf *apperr.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "a+b@c.com", nf.Email)

	rec, err := c.Login(ctx, "a+b@c.com")
	require.NoError(t, err)
	assert.Equal(t, "a+b@c.com", rec.Email)
	assert.Empty(t, rec.History)

	h := progress.History{
		"2024-06-10": progress.NewDayRecord(map[task.ID]bool{task.Memory: true, task.Writing: true}),
	}
	require.NoError(t, c.SaveHistory(ctx, "a+b@c.com", h))

	rec, err = c.Fetch(ctx, "a+b@c.com")
	require.NoError(t, err)
	assert.Equal(t, h, rec.History)
	assert.Equal(t, 33, rec.History["2024-06-10"].Score)
}

func TestEmailIsEscaped(t *testing.T) {
	c := newServiceClient(t)
	ctx := context.Background()
	email := "odd/name?x@b.com"
	_, err := c.Login(ctx, email)
	require.NoError(t, err)
	rec, err := c.Fetch(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, email, rec.Email)
}

func TestPing(t *testing.T) {
	c := newServiceClient(t)
	v, err := c.Ping(context.Background())
	require.NoError(t, err)
	assert.Equal(t, server.APIVersion, v)
}

func TestPingIncompatible(t *testing.T) {
	for _, version := range []string{"v2.0.0", "1.0", ""} {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"status":"healthy","version":"` + version + `"}`))
		}))
		c, err := New(ts.URL)
		require.NoError(t, err)
		_, err = c.Ping(context.Background())
		assert.ErrorIs(t, err, ErrIncompatible, version)
		ts.Close()
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"server error", http.StatusInternalServerError, `{"error":"Internal error"}`, apperr.ErrUnavailable},
		{"bad request", http.StatusBadRequest, `{"error":"Email required"}`, apperr.ErrValidation},
		{"not found", http.StatusNotFound, `{"error":"User not found"}`, apperr.ErrNotFound},
		{"garbage body", http.StatusOK, `<html>`, apperr.ErrUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer ts.Close()
			c, err := New(ts.URL)
			require.NoError(t, err)
			_, err = c.Fetch(context.Background(), "a@b.com")
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c, err := New(url)
	require.NoError(t, err)
	_, err = c.Login(context.Background(), "a@b.com")
	var ue *apperr.UnavailableError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "login", ue.Op)
	assert.Error(t, errors.Unwrap(err))
}

func TestNewValidatesURL(t *testing.T) {
	_, err := New("ftp://example.com")
	assert.Error(t, err)
	c, err := New("")
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL())
}
