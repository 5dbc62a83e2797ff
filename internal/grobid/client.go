// Package grobid is a client for the GROBID processFulltextDocument endpoint.
package grobid

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is where a local GROBID container listens.
	DefaultBaseURL = "http://localhost:8070"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 15 * time.Second

	// DefaultRateLimit is requests per second. GROBID queues work per
	// thread and answers 503 when the queue is full.
	DefaultRateLimit = 2.0

	fulltextPath = "/api/processFulltextDocument"
	isAlivePath  = "/api/isalive"
)

// Client is a rate-limited HTTP client for a GROBID server.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL sets the server URL.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithTimeout sets the request timeout of the default HTTP client.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the maximum requests per second. Zero or less disables
// limiting.
func WithRateLimit(perSecond float64) ClientOption {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithLogger sets the logger for request tracing.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a new GROBID client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
		baseURL:    DefaultBaseURL,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server URL the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ProcessFulltextDocument sends a PDF and returns GROBID's response. The
// status is already checked: a documented error status yields *APIError.
func (c *Client) ProcessFulltextDocument(ctx context.Context, form Form) (*Response, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := form.Write(mw); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing form: %w", err)
	}

	url := c.baseURL + fulltextPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/xml")

	resp, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := resp.CheckStatus(); err != nil {
		return nil, err
	}
	return resp, nil
}

// IsAlive reports whether the server answers its health endpoint.
func (c *Client) IsAlive(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+isAlivePath, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	resp, err := c.do(ctx, req)
	if err != nil {
		return false, err
	}
	return resp.StatusCode == http.StatusOK && strings.TrimSpace(string(resp.Content)) == "true", nil
}

func (c *Client) do(ctx context.Context, req *http.Request) (*Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: an error occurred while requesting %q: %v", ErrNetworkError, req.URL.String(), err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrNetworkError, err)
	}

	c.logger.Debug("grobid request",
		"method", req.Method,
		"url", req.URL.String(),
		"status", resp.StatusCode,
		"bytes", len(content),
		"elapsed", time.Since(start))

	return &Response{
		StatusCode: resp.StatusCode,
		Content:    content,
		Header:     resp.Header,
	}, nil
}
