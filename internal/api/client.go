// Package api implements the HTTP client for the Outboundly backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/outboundly/outboundly/internal/model"
)

// Error is a non-success backend envelope. Detail carries the server-provided
// message when one was present in the response body.
type Error struct {
	StatusCode int
	Detail     string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// Client talks to the Outboundly backend. All methods are safe for concurrent
// use; request bounds come from the shared http.Client timeout plus the
// caller's context.
type Client struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// NewClient creates a Client for the given base URL (including the /api/v1
// prefix).
func NewClient(baseURL string, timeout time.Duration, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Generate submits the serialized draft payload and returns the structured
// copy the pipeline produced.
func (c *Client) Generate(ctx context.Context, contextText string) (*model.GeneratedContent, error) {
	var out model.GeneratedContent
	if err := c.post(ctx, "/content/generate", GenerateRequest{Context: contextText}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportLinkedIn queues a LinkedIn post through the export backend.
func (c *Client) ExportLinkedIn(ctx context.Context, req LinkedInExportRequest) (*LinkedInExportResponse, error) {
	var out LinkedInExportResponse
	if err := c.post(ctx, "/export/linkedin", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportEmail sends the copy as an email through the export backend.
func (c *Client) ExportEmail(ctx context.Context, req EmailExportRequest) (*EmailExportResponse, error) {
	var out EmailExportResponse
	if err := c.post(ctx, "/export/email", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ExportCall enqueues a call-queue entry through the export backend.
func (c *Client) ExportCall(ctx context.Context, req CallExportRequest) (*CallExportResponse, error) {
	var out CallExportResponse
	if err := c.post(ctx, "/export/call", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------- Dashboard & Settings (read/update collaborators) ----------

// Stats fetches the dashboard aggregates.
func (c *Client) Stats(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	if err := c.get(ctx, "/dashboard/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Pipelines fetches recent generation runs.
func (c *Client) Pipelines(ctx context.Context, limit int) (*PipelineHistoryResponse, error) {
	var out PipelineHistoryResponse
	q := url.Values{"limit": {fmt.Sprint(limit)}}
	if err := c.get(ctx, "/dashboard/pipelines", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Activity fetches the export log, optionally filtered by channel.
func (c *Client) Activity(ctx context.Context, channel string, limit int) (*ActivityResponse, error) {
	var out ActivityResponse
	q := url.Values{"limit": {fmt.Sprint(limit)}}
	if channel != "" {
		q.Set("channel", channel)
	}
	if err := c.get(ctx, "/dashboard/activity", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CallQueue fetches pending call-queue entries.
func (c *Client) CallQueue(ctx context.Context) ([]CallQueueItem, error) {
	var out []CallQueueItem
	if err := c.get(ctx, "/dashboard/call-queue", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateCallStatus marks a call-queue entry done or skipped.
func (c *Client) UpdateCallStatus(ctx context.Context, id int64, status string) error {
	path := fmt.Sprintf("/dashboard/call-queue/%d", id)
	q := url.Values{"status": {status}}
	return c.do(ctx, http.MethodPatch, path, q, nil, nil)
}

// GetSettings fetches the backend settings.
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var out Settings
	if err := c.get(ctx, "/settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSettings patches the backend settings.
func (c *Client) UpdateSettings(ctx context.Context, req SettingsUpdate) (*Settings, error) {
	var out Settings
	if err := c.do(ctx, http.MethodPatch, "/settings", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ---------- Transport ----------

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, in, out)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Warn("request failed", zap.String("path", path), zap.Error(err))
		return err
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= 400 {
		return c.decodeError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeError extracts the {"detail": ...} envelope the backend uses for
// error responses. Bodies that don't parse yield an Error with no detail.
func (c *Client) decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}
	var envelope struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Detail = strings.TrimSpace(envelope.Detail)
	}
	c.log.Warn("backend error",
		zap.Int("status", apiErr.StatusCode),
		zap.String("detail", apiErr.Detail))
	return apiErr
}
