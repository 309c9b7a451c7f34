// Package client talks to the record service over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/mod/semver"

	"github.com/abhisek/mindupgrade/internal/apperr"
	"github.com/abhisek/mindupgrade/internal/progress"
	"github.com/abhisek/mindupgrade/internal/session"
)

// DefaultBaseURL is where the record service listens by default.
const DefaultBaseURL = "http://localhost:3001"

// SupportedAPI is the service API major version this client speaks.
const SupportedAPI = "v1"

// ErrIncompatible is returned by Ping when the service speaks another
// major API version.
var ErrIncompatible = errors.New("incompatible service version")

// Client implements session.Remote. It never retries: every failure is
// returned to the caller.
type Client struct {
	base *url.URL
	http *http.Client
}

var _ session.Remote = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New returns a client for the service at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url %q: scheme must be http or https", baseURL)
	}
	c := &Client{base: u, http: &http.Client{Timeout: 10 * time.Second}}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the service address.
func (c *Client) BaseURL() string { return c.base.String() }

type loginRequest struct {
	Email string `json:"email"`
}

type saveRequest struct {
	History progress.History `json:"history"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Login implements session.Remote with POST /login.
func (c *Client) Login(ctx context.Context, email string) (progress.UserRecord, error) {
	var rec progress.UserRecord
	if err := c.do(ctx, "login", http.MethodPost, "/login", loginRequest{Email: email}, email, &rec); err != nil {
		return progress.UserRecord{}, err
	}
	rec.Email = email
	return rec, nil
}

// Fetch implements session.Remote with GET /data/{email}.
func (c *Client) Fetch(ctx context.Context, email string) (progress.UserRecord, error) {
	var rec progress.UserRecord
	if err := c.do(ctx, "fetch", http.MethodGet, dataPath(email), nil, email, &rec); err != nil {
		return progress.UserRecord{}, err
	}
	rec.Email = email
	return rec, nil
}

// SaveHistory implements session.Remote with PUT /data/{email}.
func (c *Client) SaveHistory(ctx context.Context, email string, h progress.History) error {
	if h == nil {
		h = progress.History{}
	}
	return c.do(ctx, "save", http.MethodPut, dataPath(email), saveRequest{History: h}, email, nil)
}

// Ping checks that the service is up and speaks SupportedAPI. It returns
// the reported version.
func (c *Client) Ping(ctx context.Context) (string, error) {
	var h healthResponse
	if err := c.do(ctx, "ping", http.MethodGet, "/healthz", nil, "", &h); err != nil {
		return "", err
	}
	if !semver.IsValid(h.Version) {
		return h.Version, fmt.Errorf("%w: invalid version %q", ErrIncompatible, h.Version)
	}
	if semver.Major(h.Version) != SupportedAPI {
		return h.Version, fmt.Errorf("%w: service %s, client %s", ErrIncompatible, h.Version, SupportedAPI)
	}
	return h.Version, nil
}

// dataPath escapes email as a single path segment.
func dataPath(email string) string {
	return "/data/" + url.PathEscape(email)
}

func (c *Client) do(ctx context.Context, op, method, path string, body any, email string, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, rd)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &apperr.UnavailableError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return &apperr.UnavailableError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusNotFound && email != "":
		return &apperr.NotFoundError{Email: email}
	case resp.StatusCode == http.StatusBadRequest:
		return apperr.Invalid("email", serverMessage(data, "rejected by server"))
	case resp.StatusCode >= 300:
		return &apperr.UnavailableError{Op: op, Err: fmt.Errorf("HTTP %d: %s", resp.StatusCode, serverMessage(data, http.StatusText(resp.StatusCode)))}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &apperr.UnavailableError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func serverMessage(data []byte, fallback string) string {
	var e errorResponse
	if json.Unmarshal(data, &e) == nil && e.Error != "" {
		return e.Error
	}
	return fallback
}
