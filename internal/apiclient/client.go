// Package apiclient is the transport layer for the task backend. It issues
// the HTTP calls of the /api/tasks resource family and normalizes every
// failure into one of TransportUnreachableError, HTTPError,
// RequestSetupError or ResponseDecodeError. It never retries.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/task-tracker/internal/config"
	"github.com/yukikurage/task-tracker/internal/constants"
)

const maxResponseSize = 10 << 20 // 10MB

// Options configures a Client. BaseURL includes the /api prefix.
// Timeout bounds each call. With a caller-supplied HTTPClient it is applied
// per request through the context, on top of the client's own timeout.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
}

type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	maxBody int64
	logger  *slog.Logger
}

// New creates a Client. A nil HTTPClient gets one with Timeout (or the
// default request timeout when zero).
func New(opts Options) *Client {
	var perRequest time.Duration
	httpClient := opts.HTTPClient
	if httpClient != nil {
		perRequest = opts.Timeout
	} else {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = constants.RequestTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: opts.BaseURL,
		http:    httpClient,
		timeout: perRequest,
		maxBody: maxResponseSize,
		logger:  logger.With("component", "apiclient"),
	}
}

// NewFromConfig creates a Client pointed at cfg's backend
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Client {
	return New(Options{
		BaseURL: cfg.APIBaseURL(),
		Timeout: cfg.RequestTimeout,
		Logger:  logger,
	})
}

// do sends one request and decodes a 2xx JSON body into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := c.newRequest(ctx, method, path, query, payload)
	if err != nil {
		c.logger.ErrorContext(ctx, "API error: error setting up request", "method", method, "path", path, "error", err)
		return &RequestSetupError{Method: method, Path: path, Err: err}
	}

	c.logger.DebugContext(ctx, "API request",
		"method", method,
		"url", req.URL.String(),
		"request_id", req.Header.Get(constants.HeaderRequestID),
		"payload", payload,
	)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "API error: no response received from server", "method", method, "path", path, "error", err)
		return &TransportUnreachableError{Method: method, Path: path, Err: err}
	}
	defer resp.Body.Close()

	// One byte past the limit tells a body that was cut short from one that fits exactly.
	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		c.logger.ErrorContext(ctx, "API error: response body interrupted", "method", method, "path", path, "error", err)
		return &TransportUnreachableError{Method: method, Path: path, Err: err}
	}
	truncated := int64(len(body)) > c.maxBody
	if truncated {
		body = body[:c.maxBody]
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{Method: method, Path: path, Status: resp.StatusCode, Body: body, Truncated: truncated}
		attrs := []any{"method", method, "path", path, "status", resp.StatusCode, "body", httpErr.Message()}
		if hint := statusHint(resp.StatusCode); hint != "" {
			attrs = append(attrs, "hint", hint)
		}
		c.logger.ErrorContext(ctx, "API error", attrs...)
		return httpErr
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.logger.ErrorContext(ctx, "API error: malformed response body", "method", method, "path", path, "status", resp.StatusCode, "error", err)
		return &ResponseDecodeError{Method: method, Path: path, Status: resp.StatusCode, Body: body, Err: err}
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, query url.Values, payload any) (*http.Request, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("base URL is not configured")
	}

	target, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("invalid request URL: %w", err)
	}
	if target.Scheme != "http" && target.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme %q", target.Scheme)
	}
	if target.Host == "" {
		return nil, fmt.Errorf("request URL %q has no host", target.String())
	}
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(constants.HeaderRequestID, uuid.NewString())

	return req, nil
}
