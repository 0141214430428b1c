// Package httpapi speaks the analysis backend's HTTP contract: a client
// for the TUI and a development server implementing the same endpoints.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"archeologist/internal/application"
	"archeologist/internal/domain"
	"archeologist/internal/ports"
)

// Compile-time interface check
var _ ports.Backend = (*Client)(nil)

// RequestIDHeader correlates client and server log lines
const RequestIDHeader = "X-Request-ID"

// QueryResponse is the body of POST /query
type QueryResponse struct {
	Response      string   `json:"response"`
	RelevantNodes []string `json:"relevant_nodes"`
}

// Client implements ports.Backend over HTTP. It sets no timeout of its
// own; callers bound requests through the context.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// WithClientLogger sets the request logger
func WithClientLogger(logger *zap.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a client for the backend at baseURL
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchGraph retrieves the graph payload
func (c *Client) FetchGraph(ctx context.Context) (*domain.Graph, error) {
	body, err := c.do(ctx, http.MethodGet, "/graph")
	if err != nil {
		return nil, err
	}
	g, err := domain.ParseGraph(body)
	if err != nil {
		return nil, &application.BackendError{Endpoint: "/graph", Err: err}
	}
	return g, nil
}

// FetchClusters retrieves the cluster listing
func (c *Client) FetchClusters(ctx context.Context) ([]domain.ClusterSummary, error) {
	body, err := c.do(ctx, http.MethodGet, "/clusters")
	if err != nil {
		return nil, err
	}
	var clusters []domain.ClusterSummary
	if err := json.Unmarshal(body, &clusters); err != nil {
		return nil, &application.BackendError{Endpoint: "/clusters", Err: err}
	}
	return clusters, nil
}

// Query sends a natural-language question and returns the answer text
func (c *Client) Query(ctx context.Context, text string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/query?q="+url.QueryEscape(text))
	if err != nil {
		return "", err
	}
	var resp QueryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", &application.BackendError{Endpoint: "/query", Err: err}
	}
	return resp.Response, nil
}

// Health reports whether the backend answers GET /health
func (c *Client) Health(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/health")
	return err
}

func (c *Client) do(ctx context.Context, method, path string) ([]byte, error) {
	endpoint := path
	if i := strings.IndexByte(endpoint, '?'); i >= 0 {
		endpoint = endpoint[:i]
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return nil, &application.BackendError{Endpoint: endpoint, Err: err}
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("backend request failed",
			zap.String("endpoint", endpoint),
			zap.String("request_id", reqID),
			zap.Error(err))
		return nil, &application.BackendError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &application.BackendError{Endpoint: endpoint, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &application.BackendError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Err:      errors.New(strings.TrimSpace(string(body))),
		}
	}

	c.logger.Debug("backend request",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.String("request_id", reqID),
		zap.Int("bytes", len(body)))
	return body, nil
}
