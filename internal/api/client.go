// Package api is the HTTP client for the action item tracker backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/colonyops/minutes/internal/core/logging"
	"github.com/colonyops/minutes/internal/core/tracker"
)

// RequestIDHeader carries a per-request id that also appears in the client log.
const RequestIDHeader = "X-Request-ID"

// DefaultTimeout bounds a single request when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// StatusError is returned for any non-2xx response. The response body is
// not parsed.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.StatusCode)
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration // 0 disables the per-request timeout
	HTTPClient *http.Client  // defaults to a client without its own timeout
}

// Client talks to the backend contract:
//
//	POST   /api/transcripts
//	GET    /api/transcripts
//	GET    /api/transcripts/{id}[?status=]
//	POST   /api/action-items
//	PUT    /api/action-items/{id}
//	DELETE /api/action-items/{id}
//	GET    /status
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
	log     zerolog.Logger
}

// New creates a client for the backend at opts.BaseURL.
func New(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("base url is required")
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q must use http or https", base)
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}

	return &Client{
		baseURL: base,
		timeout: opts.Timeout,
		http:    hc,
		log:     logging.Component("api"),
	}, nil
}

// BaseURL returns the normalized backend address.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SubmitTranscript sends transcript text for extraction.
func (c *Client) SubmitTranscript(ctx context.Context, text string) (tracker.Submission, error) {
	var out tracker.Submission
	err := c.do(ctx, http.MethodPost, "/api/transcripts", nil, map[string]string{"text": text}, &out)
	if err != nil {
		return tracker.Submission{}, fmt.Errorf("submit transcript: %w", err)
	}
	return out, nil
}

// ListTranscripts returns the transcript history, newest first as ordered by
// the backend.
func (c *Client) ListTranscripts(ctx context.Context) ([]tracker.Transcript, error) {
	var out []tracker.Transcript
	if err := c.do(ctx, http.MethodGet, "/api/transcripts", nil, nil, &out); err != nil {
		return nil, fmt.Errorf("list transcripts: %w", err)
	}
	return out, nil
}

// ListItems returns the items of a transcript, restricted by filter.
func (c *Client) ListItems(ctx context.Context, transcriptID int64, filter tracker.Filter) ([]tracker.ActionItem, error) {
	var query url.Values
	if v := filter.QueryValue(); v != "" {
		query = url.Values{"status": []string{v}}
	}

	var out []tracker.ActionItem
	path := "/api/transcripts/" + strconv.FormatInt(transcriptID, 10)
	if err := c.do(ctx, http.MethodGet, path, query, nil, &out); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return out, nil
}

// CreateItem adds an action item to a transcript.
func (c *Client) CreateItem(ctx context.Context, item tracker.NewItem) error {
	if err := c.do(ctx, http.MethodPost, "/api/action-items", nil, item, nil); err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// UpdateItem applies a partial update to an action item.
func (c *Client) UpdateItem(ctx context.Context, id int64, update tracker.ItemUpdate) error {
	path := "/api/action-items/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodPut, path, nil, update, nil); err != nil {
		return fmt.Errorf("update item %d: %w", id, err)
	}
	return nil
}

// DeleteItem removes an action item.
func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	path := "/api/action-items/" + strconv.FormatInt(id, 10)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, nil); err != nil {
		return fmt.Errorf("delete item %d: %w", id, err)
	}
	return nil
}

// Status fetches the backend health report.
func (c *Client) Status(ctx context.Context) (tracker.BackendStatus, error) {
	var out tracker.BackendStatus
	if err := c.do(ctx, http.MethodGet, "/status", nil, nil, &out); err != nil {
		return tracker.BackendStatus{}, fmt.Errorf("status: %w", err)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().
			Ctx(ctx).
			Err(err).
			Str("method", method).
			Str("path", path).
			Str("request_id", requestID).
			Msg("request failed")
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Ctx(ctx).
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Str("request_id", requestID).
		Msg("request complete")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
