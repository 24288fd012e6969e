// Package http provides the HTTP transport core for the Defined
// Networking API: URL building, default headers, body serialization, and
// status-code classification into the defined error model.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/rrajpuro/defined-go/internal/constants"
	"github.com/rrajpuro/defined-go/pkg/defined"
)

// Request represents an API request.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string

	// Timeout overrides the client's default per-request timeout.
	Timeout time.Duration
}

// Response represents an API response with its body fully read.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is the low-level HTTP client shared by every resource client.
// It is safe for concurrent use; Close is terminal.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
	logger     defined.Logger
	debug      bool
	closed     atomic.Bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for debug output.
func WithLogger(logger defined.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the default per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// NewClient creates a new transport client. apiKey may be empty for
// unauthenticated use.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	client := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: cleanhttp.DefaultPooledClient(),
		userAgent:  "defined-go/" + defined.Version,
		timeout:    constants.DefaultHTTPTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Do executes a request and classifies the result. On a non-2xx status the
// returned error is always a *defined.APIError; the response is returned
// alongside it for inspection.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if c.closed.Load() {
		return nil, &defined.APIError{
			Kind:    defined.ErrorKindTransport,
			Message: "request aborted",
			Err:     defined.ErrClientClosed,
		}
	}

	httpReq, err := c.buildHTTPRequest(ctx, req)
	if err != nil {
		return nil, err
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = c.timeout
	}

	ctx, cancel := context.WithTimeout(httpReq.Context(), timeout)
	defer cancel()

	httpReq = httpReq.WithContext(ctx)

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
		})
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &defined.APIError{
			Kind:    defined.ErrorKindTransport,
			Message: "network error",
			Err:     err,
		}
	}

	defer func() { _ = httpResp.Body.Close() }()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &defined.APIError{
			Kind:       defined.ErrorKindTransport,
			Message:    "reading response body",
			StatusCode: httpResp.StatusCode,
			Response:   httpResp,
			Err:        err,
		}
	}

	if c.debug && c.logger != nil {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"method": req.Method,
			"url":    httpReq.URL.String(),
			"status": httpResp.StatusCode,
			"bytes":  len(body),
		})
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       body,
	}

	return resp, classify(httpResp, body)
}

// buildHTTPRequest assembles the full URL, serialized body, and default
// headers for a request.
func (c *Client) buildHTTPRequest(ctx context.Context, req *Request) (*http.Request, error) {
	fullURL := c.baseURL + "/" + strings.TrimPrefix(req.Path, "/")
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	body := req.Body
	// POST/PUT/PATCH must carry a JSON body even when the caller supplied
	// none; the server rejects Content-Type: application/json with an
	// empty payload.
	if body == nil && (req.Method == http.MethodPost || req.Method == http.MethodPut || req.Method == http.MethodPatch) {
		body = struct{}{}
	}

	var bodyReader io.Reader

	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, &defined.APIError{
				Kind:    defined.ErrorKindTransport,
				Message: "encoding request body",
				Err:     err,
			}
		}

		bodyReader = bytes.NewReader(data)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, bodyReader)
	if err != nil {
		return nil, &defined.APIError{
			Kind:    defined.ErrorKindTransport,
			Message: "creating request",
			Err:     err,
		}
	}

	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("User-Agent", c.userAgent)

	if bodyReader != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	return httpReq, nil
}

// classify maps an HTTP response to the error model. 2xx responses with a
// non-empty body must be valid JSON; non-2xx responses are mapped strictly
// by status code.
func classify(httpResp *http.Response, body []byte) error {
	status := httpResp.StatusCode

	if status >= 200 && status < 300 {
		if status == http.StatusNoContent || len(body) == 0 {
			return nil
		}

		if !json.Valid(body) {
			return &defined.APIError{
				Kind:       defined.ErrorKindClient,
				Message:    "invalid JSON response",
				StatusCode: status,
				Errors:     []defined.ErrorDetail{},
				Response:   httpResp,
				Body:       body,
			}
		}

		return nil
	}

	// Best-effort extraction of the machine-readable errors array; a body
	// that fails to parse is treated as carrying no details.
	var payload struct {
		Errors []defined.ErrorDetail `json:"errors"`
	}

	_ = json.Unmarshal(body, &payload)

	details := payload.Errors
	if details == nil {
		details = []defined.ErrorDetail{}
	}

	apiErr := &defined.APIError{
		StatusCode: status,
		Errors:     details,
		Response:   httpResp,
		Body:       body,
	}

	switch {
	case status == http.StatusBadRequest:
		apiErr.Kind = defined.ErrorKindValidation
		apiErr.Message = "Validation error"
	case status == http.StatusUnauthorized:
		apiErr.Kind = defined.ErrorKindAuthentication
		apiErr.Message = "Authentication failed"
	case status == http.StatusForbidden:
		apiErr.Kind = defined.ErrorKindPermissionDenied
		apiErr.Message = "Permission denied"
	case status == http.StatusNotFound:
		apiErr.Kind = defined.ErrorKindNotFound
		apiErr.Message = "Resource not found"
	case status >= 500 && status < 600:
		apiErr.Kind = defined.ErrorKindServer
		apiErr.Message = "Server error"
	default:
		apiErr.Kind = defined.ErrorKindClient
		apiErr.Message = fmt.Sprintf("Unexpected API error (%d)", status)
	}

	return apiErr
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put performs a PUT request.
func (c *Client) Put(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// Close marks the client closed and releases idle connections. Close is
// idempotent and terminal: subsequent requests fail with
// defined.ErrClientClosed.
func (c *Client) Close() {
	c.closed.Store(true)
	c.httpClient.CloseIdleConnections()
}
