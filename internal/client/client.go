// Package client talks to the audioscribe HTTP API. It mirrors the browser
// upload widget: pre-check a file, upload it, then transcribe it.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	apierrors "audioscribe/internal/api/errors"
	"audioscribe/internal/api/v1/dto"
)

// Error is a non-2xx API response
type Error struct {
	StatusCode int
	apierrors.APIError
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("request failed with status %d: %s", e.StatusCode, e.Message)
}

// Client calls the v1 API on behalf of one user
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	progress   io.Writer
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithProgress renders upload progress bars to w
func WithProgress(w io.Writer) Option {
	return func(c *Client) { c.progress = w }
}

// New creates a client for the API at baseURL (e.g. http://localhost:8080)
// authenticating with the session token.
func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/api/v1",
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Profile returns the caller's profile
func (c *Client) Profile(ctx context.Context) (*dto.ProfileResponse, error) {
	var out dto.ProfileResponse
	if err := c.get(ctx, "/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Plans returns the public plan table
func (c *Client) Plans(ctx context.Context) (*dto.PlansResponse, error) {
	var out dto.PlansResponse
	if err := c.get(ctx, "/plans", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns one page of the caller's jobs
func (c *Client) List(ctx context.Context, query dto.ListTranscriptionsQuery) (*dto.PaginatedTranscriptionsResponse, error) {
	params := url.Values{}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.Limit > 0 {
		params.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.Status != "" {
		params.Set("status", query.Status)
	}

	var out dto.PaginatedTranscriptionsResponse
	if err := c.get(ctx, "/upload", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get returns one of the caller's jobs
func (c *Client) Get(ctx context.Context, id string) (*dto.TranscriptionResponse, error) {
	var out dto.TranscriptionResponse
	if err := c.get(ctx, "/transcriptions/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	target := c.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{StatusCode: resp.StatusCode}
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if json.Unmarshal(body, &apiErr.APIError) != nil {
			apiErr.Message = strings.TrimSpace(string(body))
		}
		return apiErr
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
