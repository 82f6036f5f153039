package zammad

import (
	"context"
	"encoding/json"
	"net/url"
)

// API is the transport every codec operation runs on. *Client implements it.
type API interface {
	// Get performs a GET on path
	Get(ctx context.Context, path string) (json.RawMessage, error)

	// GetWithParams performs a GET on path with the given query parameters
	GetWithParams(ctx context.Context, path string, params url.Values) (json.RawMessage, error)

	// Post sends body as JSON to path
	Post(ctx context.Context, path string, body any) (json.RawMessage, error)

	// Put sends body as JSON to path
	Put(ctx context.Context, path string, body any) (json.RawMessage, error)

	// Delete performs a DELETE on path
	Delete(ctx context.Context, path string) (json.RawMessage, error)
}

var _ API = (*Client)(nil)
