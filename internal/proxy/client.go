// Package proxy implements the generic upstream call every endpoint
// handler builds on. It attaches bearer auth and JSON content negotiation
// to outbound requests and normalizes upstream responses into a uniform
// Result regardless of success or failure shape.
package proxy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Client issues HTTP calls against the upstream REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new upstream client. The base URL's trailing slash is
// stripped once here so request paths can be concatenated directly.
//
// There is deliberately no timeout, retry or circuit breaker: each call is
// a single best-effort attempt on behalf of a synchronous page load.
func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
	}
}

// SetHTTPClient sets a custom HTTP client
func (c *Client) SetHTTPClient(httpClient *http.Client) {
	c.httpClient = httpClient
}

// BaseURL returns the configured upstream base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Options configures a single upstream call
type Options struct {
	Method string // defaults to GET
	Body   any    // JSON-serialized when non-nil
	Token  string // bearer token; the call is unauthenticated when empty
}

// Result is the normalized outcome of an upstream call. Exactly one of
// Data and Error is populated: Data is non-nil iff the call succeeded with
// a JSON body, Error is non-empty iff the upstream answered non-2xx.
// Status mirrors the upstream HTTP status code; it is zero when the call
// never reached the upstream.
type Result[T any] struct {
	Data   *T
	Error  string
	Status int
}

// errEnvelope probes the one load-bearing field of upstream failure bodies
type errEnvelope struct {
	Error string `json:"error"`
}

// Do performs an upstream call and normalizes the response.
//
// A transport-level failure (connection refused, DNS) is returned as a Go
// error and left to the caller to surface as a generic failure; there is
// no retry policy at this layer. A 2xx response without a JSON body yields
// a Result with nil Data and empty Error - success with an empty payload
// is valid, e.g. logout-style actions.
func Do[T any](ctx context.Context, c *Client, path string, opts Options) (Result[T], error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var reqBody io.Reader
	if opts.Body != nil {
		jsonData, err := json.Marshal(opts.Body)
		if err != nil {
			return Result[T]{}, fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return Result[T]{}, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if opts.Token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", opts.Token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result[T]{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result[T]{}, fmt.Errorf("failed to read response: %w", err)
	}

	isJSON := strings.Contains(resp.Header.Get("Content-Type"), "application/json")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("Request failed (%d)", resp.StatusCode)
		if isJSON {
			var envelope errEnvelope
			if jsonErr := json.Unmarshal(body, &envelope); jsonErr == nil && envelope.Error != "" {
				msg = envelope.Error
			}
		}
		return Result[T]{Error: msg, Status: resp.StatusCode}, nil
	}

	if !isJSON || len(body) == 0 {
		return Result[T]{Status: resp.StatusCode}, nil
	}

	var payload T
	if err := json.Unmarshal(body, &payload); err != nil {
		return Result[T]{}, fmt.Errorf("failed to decode response: %w", err)
	}

	return Result[T]{Data: &payload, Status: resp.StatusCode}, nil
}

// Relay forwards a request body to the upstream unmodified except for
// re-attaching the bearer token, preserving the caller's content type.
// Used for multipart upload passthrough. The upstream body is returned as
// JSON, substituting an empty object when it does not decode.
func (c *Client) Relay(ctx context.Context, method, path, token, contentType string, body io.Reader) (int, json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if !json.Valid(respBody) {
		respBody = []byte("{}")
	}

	return resp.StatusCode, json.RawMessage(respBody), nil
}
