// Package apiclient is the JSON transport to the order API. Every call carries a fresh
// correlation id and the current bearer token; every failure comes back as one of the
// typed errors in apierror.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"order-console/internal/core/apierror"
	"order-console/internal/core/events"
	"order-console/internal/core/httpclient"
	"order-console/internal/core/proxy"

	"github.com/google/uuid"
)

const (
	HeaderCorrelationID = httpclient.HeaderCorrelationID
	HeaderAuthorization = "Authorization"

	maxErrorBody   = 64 << 10
	maxSuccessBody = 8 << 20
)

// Credentials supplies the bearer token and is told when the server rejects it.
type Credentials interface {
	// AccessToken returns the token to send, or "" for anonymous calls.
	AccessToken(ctx context.Context) (string, error)
	// Invalidate clears the credentials after a 401.
	Invalidate(ctx context.Context) error
}

// Config is the process-wide transport configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Proxy   proxy.Settings
}

// Client calls the order API. It is safe for concurrent use.
type Client struct {
	baseURL     *url.URL
	http        *http.Client
	credentials Credentials
	emitter     events.Emitter
	newID       func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default event-emitting client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithCredentials attaches a credential holder.
func WithCredentials(creds Credentials) Option {
	return func(c *Client) { c.credentials = creds }
}

// WithEmitter sets the sink for request and session events.
func WithEmitter(e events.Emitter) Option {
	return func(c *Client) { c.emitter = e }
}

// WithIDGenerator overrides the correlation id source.
func WithIDGenerator(fn func() string) Option {
	return func(c *Client) { c.newID = fn }
}

// New creates a Client for cfg.BaseURL, which must be an absolute http(s) URL.
func New(cfg Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: must be an absolute http(s) URL", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	c := &Client{
		baseURL: base,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.emitter = events.OrNop(c.emitter)
	if c.http == nil {
		c.http = httpclient.NewClient(timeout, cfg.Proxy, c.emitter)
	}

	return c, nil
}

type requestOptions struct {
	query   url.Values
	headers http.Header
	timeout time.Duration
}

// RequestOption overrides settings for a single call.
type RequestOption func(*requestOptions)

// WithQuery sets the query string.
func WithQuery(q url.Values) RequestOption {
	return func(o *requestOptions) { o.query = q }
}

// WithHeader adds a request header.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if o.headers == nil {
			o.headers = http.Header{}
		}
		o.headers.Add(key, value)
	}
}

// WithTimeout bounds this call, on top of the client timeout.
func WithTimeout(d time.Duration) RequestOption {
	return func(o *requestOptions) { o.timeout = d }
}

type validatable interface {
	Validate() error
}

type fieldErrorer interface {
	FieldErrors() []apierror.FieldError
}

// Do sends body as JSON to path and decodes a 2xx response into out (nil to discard).
//
// Errors are *apierror.RequestError when nothing was sent, *apierror.NetworkError when
// no response arrived, *apierror.StructuredError or *apierror.ResponseError for >=400
// responses, and a plain error when a 2xx body cannot be decoded. A 401 invalidates the
// credentials; the call is not retried.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, opts ...RequestOption) error {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}
	if ro.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, ro.timeout)
		defer cancel()
	}

	id := c.newID()

	req, err := c.newRequest(ctx, id, method, path, body, ro)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &apierror.NetworkError{Err: err, CorrelationID: id}
	}
	defer resp.Body.Close()

	correlationID := resp.Header.Get(HeaderCorrelationID)
	if correlationID == "" {
		correlationID = id
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidate(ctx, req, correlationID)
	}

	if resp.StatusCode >= 400 {
		return errorFromResponse(resp, correlationID)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxSuccessBody))
		return nil
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxSuccessBody)).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, id, method, path string, body any, ro requestOptions) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		if v, ok := body.(validatable); ok {
			if err := v.Validate(); err != nil {
				rerr := &apierror.RequestError{Err: err, CorrelationID: id}
				var fe fieldErrorer
				if errors.As(err, &fe) {
					rerr.FieldErrors = fe.FieldErrors()
				}
				return nil, rerr
			}
		}

		data, err := json.Marshal(body)
		if err != nil {
			return nil, &apierror.RequestError{
				Err:           fmt.Errorf("failed to marshal request body: %w", err),
				CorrelationID: id,
			}
		}
		reader = bytes.NewReader(data)
	}

	u := c.resolve(path, ro.query)
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return nil, &apierror.RequestError{
			Err:           fmt.Errorf("failed to create request: %w", err),
			CorrelationID: id,
		}
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range ro.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set(HeaderCorrelationID, id)

	if c.credentials != nil {
		token, err := c.credentials.AccessToken(ctx)
		if err != nil {
			return nil, &apierror.RequestError{
				Err:           fmt.Errorf("failed to read credentials: %w", err),
				CorrelationID: id,
			}
		}
		if token != "" {
			req.Header.Set(HeaderAuthorization, "Bearer "+token)
		}
	}

	return req, nil
}

func (c *Client) resolve(path string, query url.Values) string {
	u := c.baseURL.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) invalidate(ctx context.Context, req *http.Request, correlationID string) {
	e := events.Event{
		Name:          events.SessionInvalidated,
		Level:         events.LevelWarn,
		Method:        req.Method,
		URL:           req.URL.String(),
		StatusCode:    http.StatusUnauthorized,
		CorrelationID: correlationID,
	}
	if c.credentials != nil {
		// Clear even when the caller's ctx is already done.
		e.Err = c.credentials.Invalidate(context.WithoutCancel(ctx))
	}
	c.emitter.Emit(ctx, e)
}

func errorFromResponse(resp *http.Response, correlationID string) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return &apierror.ResponseError{StatusCode: resp.StatusCode, CorrelationID: correlationID}
	}

	if c, ok := apierror.ParseCanonical(body); ok {
		if c.CorrelationID == "" {
			c.CorrelationID = correlationID
		}
		if c.Status == 0 {
			c.Status = resp.StatusCode
		}
		return &apierror.StructuredError{StatusCode: resp.StatusCode, Body: c}
	}

	return &apierror.ResponseError{
		StatusCode:    resp.StatusCode,
		Body:          body,
		CorrelationID: correlationID,
	}
}
