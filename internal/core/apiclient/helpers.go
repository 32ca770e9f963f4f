package apiclient

import (
	"context"
	"net/http"
)

// Get issues a GET and decodes the response as T.
func Get[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodGet, path, nil, &out, opts...)
	return out, err
}

// Post issues a POST with body and decodes the response as T.
func Post[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodPost, path, body, &out, opts...)
	return out, err
}

// Put issues a PUT with body and decodes the response as T.
func Put[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodPut, path, body, &out, opts...)
	return out, err
}

// Patch issues a PATCH with body and decodes the response as T.
func Patch[T any](ctx context.Context, c *Client, path string, body any, opts ...RequestOption) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodPatch, path, body, &out, opts...)
	return out, err
}

// Delete issues a DELETE and decodes the response as T.
func Delete[T any](ctx context.Context, c *Client, path string, opts ...RequestOption) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodDelete, path, nil, &out, opts...)
	return out, err
}
