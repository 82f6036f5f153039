package zammad

import (
	"net/http"
	"time"
)

// DefaultTimeout is applied when neither WithTimeout nor WithHTTPClient is given
const DefaultTimeout = 30 * time.Second

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds configuration options for the Client.
type clientOptions struct {
	timeout    time.Duration
	timeoutSet bool
	httpClient *http.Client
	userAgent  string
	debug      bool
}

// WithTimeout sets the HTTP client timeout. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		if timeout >= 0 {
			o.timeout = timeout
			o.timeoutSet = true
		}
	}
}

// WithHTTPClient makes the client send requests through hc.
// The timeout of hc is kept unless WithTimeout is also given.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = hc
	}
}

// WithUserAgent overrides the User-Agent header sent on every request.
func WithUserAgent(userAgent string) Option {
	return func(o *clientOptions) {
		if userAgent != "" {
			o.userAgent = userAgent
		}
	}
}

// WithDebug dumps requests and responses to the client's logger.
// Use with caution: request dumps include the Authorization header.
func WithDebug(debug bool) Option {
	return func(o *clientOptions) {
		o.debug = debug
	}
}
