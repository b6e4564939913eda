package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/yozora-app/yozora/internal/log"
)

// TokenSource returns the session token to attach to an outbound request, or the
// empty string when no session exists.  It is consulted on every call so the token
// is always read from durable storage at request time.
type TokenSource func() string

// Client is the single HTTP access point for the Yozora catalog/session API.  It is
// the only component in the application permitted to perform network I/O.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

// NewClient creates a catalog client for the API at baseURL.  tokens may be nil for
// a client that never authenticates.
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	if tokens == nil {
		tokens = func() string { return "" }
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		tokens: tokens,
	}
}

// APIError is a failure reported by the catalog service, carrying a best-effort
// human-readable message extracted from the response body.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// MalformedResponseError indicates a success-status response whose body could not be
// decoded into the expected shape.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response from catalog service: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}

// get issues a GET request against path with the given query parameters, decoding a
// successful response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, out)
}

// post issues a POST request against path with body marshalled as JSON, decoding a
// successful response into out.
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return c.do(req, out)
}

// do executes the request with the standard headers attached and normalizes the
// response.  A non-success status becomes an *APIError; a success status with an
// undecodable body becomes a *MalformedResponseError.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log.Trace("Catalog API request", "method", req.Method, "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	log.Trace("Catalog API response", "status", resp.StatusCode, "bytes", len(body))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Debug("Catalog API returned error status", "status", resp.StatusCode, "path", req.URL.Path)
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(body, resp.StatusCode),
		}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &MalformedResponseError{Err: err}
	}

	return nil
}

// errorMessage extracts a human-readable message from an error response body,
// falling back to a generic message when the body is absent or unparseable.
func errorMessage(body []byte, statusCode int) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return fmt.Sprintf("request failed with status %d", statusCode)
}
