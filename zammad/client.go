package zammad

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// UserAgent identifies this client to the Zammad instance
const UserAgent = "zammadctl/1.0"

// Client is the transport for the Zammad REST API. It only holds configuration,
// so one Client can serve concurrent calls.
type Client struct {
	host      string
	username  string
	userAgent string
	http      *resty.Client
	logger    zerolog.Logger
}

// NewClient creates a new Zammad client. host is scheme, hostname and optional port;
// it is used verbatim. An empty username disables basic auth.
func NewClient(host, username, password string, logger zerolog.Logger, opts ...Option) *Client {
	o := clientOptions{userAgent: UserAgent}
	for _, opt := range opts {
		opt(&o)
	}

	var rc *resty.Client
	if o.httpClient != nil {
		rc = resty.NewWithClient(o.httpClient)
	} else {
		rc = resty.New()
	}

	switch {
	case o.timeoutSet:
		rc.SetTimeout(o.timeout)
	case o.httpClient == nil:
		rc.SetTimeout(DefaultTimeout)
	}

	rc.SetRetryCount(0).
		SetLogger(restyLogger{logger: logger}).
		SetDebug(o.debug).
		SetHeader("User-Agent", o.userAgent).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json")

	if username != "" {
		rc.SetBasicAuth(username, password)
	}

	return &Client{
		host:      host,
		username:  username,
		userAgent: o.userAgent,
		http:      rc,
		logger:    logger,
	}
}

// Host returns the host the client was created with
func (c *Client) Host() string {
	return c.host
}

// URL returns the full request URL for an endpoint path
func (c *Client) URL(path string) string {
	return c.host + Prefix + path
}

// TestConnection checks that the instance is reachable and the credentials are accepted
func (c *Client) TestConnection(ctx context.Context) error {
	_, err := c.Get(ctx, UserMePath)
	return err
}

// Get performs a GET request
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, nil, nil)
}

// GetWithParams performs a GET request with query parameters
func (c *Client) GetWithParams(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, params, nil)
}

// Post performs a POST request with a JSON body
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Put performs a PUT request with a JSON body
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// Delete performs a DELETE request
func (c *Client) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// do performs one request and validates the body shape and the status code.
// Errors from the HTTP layer are returned as they are.
func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any) (json.RawMessage, error) {
	requestURL := c.URL(path)

	req := c.http.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParamsFromValues(params)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, requestURL)
	if err != nil {
		c.logger.Debug().
			Err(err).
			Str("method", method).
			Str("url", requestURL).
			Msg("Zammad API request failed")
		return nil, err
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Int("status", resp.StatusCode()).
		Dur("duration", resp.Time()).
		Msg("Zammad API request")

	raw := resp.Body()
	if !isStructured(raw) {
		return nil, unexpectedResponse("Type of checked data is not object!", "object", jsonKind(raw))
	}

	if status := resp.StatusCode(); status != http.StatusOK && status != http.StatusCreated {
		return nil, unexpectedResponse("Unexpected response code", "200/201", strconv.Itoa(status))
	}

	return json.RawMessage(raw), nil
}

// restyLogger forwards resty's internal messages to zerolog
type restyLogger struct {
	logger zerolog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error().Msgf(format, v...)
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn().Msgf(format, v...)
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug().Msgf(format, v...)
}
