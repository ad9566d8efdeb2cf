// Package recordclient is a thin generic REST client over a collection/
// record API: list, get, create, update, delete against paths like
// "/products" or "/orders/3". Related records are joined into responses
// with the _expand and _embed query options, and a default bearer token
// can be installed on the client for authenticated calls.
package recordclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client

	mu        sync.RWMutex
	authToken string
}

// APIError is a non-2xx response decoded into the server's error payload.
type APIError struct {
	StatusCode int    `json:"-"`
	Code       string `json:"error"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetAuthToken installs token as the default Authorization bearer header
// for every subsequent request.
func (c *Client) SetAuthToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authToken = token
}

// ClearAuthToken removes the default Authorization header.
func (c *Client) ClearAuthToken() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.authToken = ""
}

// AuthToken returns the currently installed bearer token, if any.
func (c *Client) AuthToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.authToken
}

// QueryOption adds a query parameter to a request URL.
type QueryOption func(url.Values)

// WithExpand joins the named parent record into each response record,
// e.g. WithExpand("category") on /products.
func WithExpand(relation string) QueryOption {
	return func(v url.Values) {
		v.Add("_expand", relation)
	}
}

// WithEmbed joins the named child collection into each response record,
// e.g. WithEmbed("products") on /categories.
func WithEmbed(relation string) QueryOption {
	return func(v url.Values) {
		v.Add("_embed", relation)
	}
}

// WithQuery adds an arbitrary query parameter.
func WithQuery(key, value string) QueryOption {
	return func(v url.Values) {
		v.Add(key, value)
	}
}

// List fetches a collection into out (a pointer to a slice).
func (c *Client) List(ctx context.Context, path string, out interface{}, opts ...QueryOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts)
}

// Get fetches a single record into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}, opts ...QueryOption) error {
	return c.do(ctx, http.MethodGet, path, nil, out, opts)
}

// Create POSTs body and decodes the created record into out (may be nil).
func (c *Client) Create(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out, nil)
}

// Update PUTs body and decodes the updated record into out (may be nil).
func (c *Client) Update(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out, nil)
}

// Delete removes a record.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, opts []QueryOption) error {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(opts) > 0 {
		values := url.Values{}
		for _, opt := range opts {
			opt(values)
		}
		u += "?" + values.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.AuthToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		// Best effort: the server's error payload is JSON, but proxies may
		// return anything.
		_ = json.Unmarshal(respBody, apiErr)
		return apiErr
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return nil
}
