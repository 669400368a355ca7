// Package glean is a small client for the Glean indexing REST API, covering
// the datasource configuration endpoints this tool needs.
package glean

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds each indexing API call.
const DefaultTimeout = 30 * time.Second

// maxErrorBody caps how much of an error response is echoed into messages.
const maxErrorBody = 200

// TransportError reports a failed indexing API call: either the request
// never completed, or the service answered with a non-2xx status.
type TransportError struct {
	Operation  string
	StatusCode int // 0 when no response was received
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("indexing API %s failed (status %d): %s", e.Operation, e.StatusCode, e.Message)
	}

	return fmt.Sprintf("indexing API %s failed: %v", e.Operation, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client calls the indexing API of one Glean instance with bearer-token
// authentication.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithBaseURL overrides the instance-derived API base URL.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(base, "/") }
}

// NewClient returns a client for the given instance, talking to
// https://<instance>-be.glean.com/api/index/v1.
func NewClient(instance, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: fmt.Sprintf("https://%s-be.glean.com/api/index/v1", instance),
		token:   token,
		http:    &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// BaseURL returns the resolved API base URL.
func (c *Client) BaseURL() string { return c.baseURL }

type getDatasourceConfigRequest struct {
	Datasource string `json:"datasource"`
}

// GetDatasourceConfig fetches the current remote configuration of the
// datasource with the given ID.
func (c *Client) GetDatasourceConfig(ctx context.Context, datasource string) (*CustomDatasourceConfig, error) {
	var cfg CustomDatasourceConfig

	req := getDatasourceConfigRequest{Datasource: datasource}
	if err := c.post(ctx, "getdatasourceconfig", req, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// AddDatasource creates or updates a datasource configuration. The API
// treats create and update as one idempotent operation keyed on cfg.Name.
func (c *Client) AddDatasource(ctx context.Context, cfg *CustomDatasourceConfig) error {
	return c.post(ctx, "adddatasource", cfg, nil)
}

func (c *Client) post(ctx context.Context, op string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &TransportError{Operation: op, Err: fmt.Errorf("encoding request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/"+op, bytes.NewReader(payload))
	if err != nil {
		return &TransportError{Operation: op, Err: fmt.Errorf("building request: %w", err)}
	}

	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Operation: op, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Operation: op, Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{Operation: op, StatusCode: resp.StatusCode, Message: bodyExcerpt(data)}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &TransportError{Operation: op, Err: fmt.Errorf("decoding response: %w", err)}
		}
	}

	return nil
}

func bodyExcerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if s == "" {
		return "no response body"
	}

	if len(s) > maxErrorBody {
		s = s[:maxErrorBody] + "..."
	}

	return s
}

// AdminURL returns the Glean admin console page for a custom datasource.
func AdminURL(id string) string {
	return "https://app.glean.com/admin/setup/apps/custom/" + id
}
