// Package client is a thin HTTP wrapper over the staffing API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// DefaultBaseURL is used when Options.BaseURL is empty.
const DefaultBaseURL = "http://localhost:3000"

const (
	defaultPage  = 1
	defaultLimit = 20
)

// StaffAPI is the set of operations offered by the staffing API.
type StaffAPI interface {
	CreateStaff(ctx context.Context, req CreateStaffRequest, opts ...RequestOption) (*StaffMember, error)
	ListStaff(ctx context.Context, list ListOptions, opts ...RequestOption) (*StaffList, error)
	GetStaff(ctx context.Context, id string, opts ...RequestOption) (*StaffMember, error)
	UpdateStaff(ctx context.Context, id string, req UpdateStaffRequest, opts ...RequestOption) (*StaffMember, error)
	DeleteStaff(ctx context.Context, id string, opts ...RequestOption) error
}

var _ StaffAPI = (*Client)(nil)

// RetryConfig controls retries of idempotent GET requests.
// MaxAttempts <= 1 disables retries.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Headers    map[string]string
	HTTPClient *http.Client
	Retry      RetryConfig
}

// Client calls the staffing API over HTTP.
type Client struct {
	baseURL    string
	headers    http.Header
	httpClient *http.Client
	retry      RetryConfig
}

// RequestOption adjusts a single outgoing request.
type RequestOption func(*http.Request)

// WithHeader sets a header on one request, overriding the client defaults.
func WithHeader(key, value string) RequestOption {
	return func(r *http.Request) {
		r.Header.Set(key, value)
	}
}

// New builds a Client.
func New(opts Options) *Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	for k, v := range opts.Headers {
		headers.Set(k, v)
	}

	retry := opts.Retry
	if retry.BaseDelay <= 0 {
		retry.BaseDelay = 200 * time.Millisecond
	}
	if retry.MaxDelay <= 0 {
		retry.MaxDelay = 5 * time.Second
	}

	return &Client{
		baseURL:    baseURL,
		headers:    headers,
		httpClient: httpClient,
		retry:      retry,
	}
}

// CreateStaff creates a staff member.
func (c *Client) CreateStaff(ctx context.Context, req CreateStaffRequest, opts ...RequestOption) (*StaffMember, error) {
	var out StaffMember
	if err := c.do(ctx, http.MethodPost, "/staff", req, &out, opts); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListStaff fetches one page of staff members.
func (c *Client) ListStaff(ctx context.Context, list ListOptions, opts ...RequestOption) (*StaffList, error) {
	page := list.Page
	if page <= 0 {
		page = defaultPage
	}
	limit := list.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var out StaffList
	if err := c.do(ctx, http.MethodGet, "/staff?"+query.Encode(), nil, &out, opts); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetStaff fetches a staff member by id.
func (c *Client) GetStaff(ctx context.Context, id string, opts ...RequestOption) (*StaffMember, error) {
	var out StaffMember
	if err := c.do(ctx, http.MethodGet, "/staff/"+url.PathEscape(id), nil, &out, opts); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateStaff applies a partial update.
func (c *Client) UpdateStaff(ctx context.Context, id string, req UpdateStaffRequest, opts ...RequestOption) (*StaffMember, error) {
	var out StaffMember
	if err := c.do(ctx, http.MethodPut, "/staff/"+url.PathEscape(id), req, &out, opts); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteStaff removes a staff member. The API returns no body.
func (c *Client) DeleteStaff(ctx context.Context, id string, opts ...RequestOption) error {
	return c.do(ctx, http.MethodDelete, "/staff/"+url.PathEscape(id), nil, nil, opts)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body, out any, opts []RequestOption) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	attempts := 1
	if method == http.MethodGet && c.retry.MaxAttempts > 1 {
		attempts = c.retry.MaxAttempts
	}

	var (
		status   int
		respBody []byte
		err      error
	)
	for attempt := 1; attempt <= attempts; attempt++ {
		status, respBody, err = c.roundTrip(ctx, method, endpoint, payload, opts)
		retryable := (err != nil && isRetryableNetErr(err)) || (err == nil && isRetryableStatus(status))
		if !retryable || attempt == attempts {
			break
		}
		if sleepErr := sleepBackoff(ctx, attempt, c.retry.BaseDelay, c.retry.MaxDelay); sleepErr != nil {
			return sleepErr
		}
	}
	if err != nil {
		return err
	}

	if status < 200 || status > 299 {
		return newAPIError(status, respBody)
	}
	if method == http.MethodDelete || out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) roundTrip(ctx context.Context, method, endpoint string, payload []byte, opts []RequestOption) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header = c.headers.Clone()
	for _, opt := range opts {
		opt(req)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	// Drain the body so the connection can be reused.
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

func isRetryableStatus(status int) bool {
	switch status {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

func isRetryableNetErr(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF)
}

func sleepBackoff(ctx context.Context, attempt int, base, max time.Duration) error {
	delay := base << (attempt - 1)
	if delay > max || delay <= 0 {
		delay = max
	}
	jitter := time.Duration(rand.Int63n(int64(delay)/2 + 1))
	timer := time.NewTimer(delay/2 + jitter)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
