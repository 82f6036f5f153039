// Package zammadtest provides a fake Zammad instance for tests.
//
// Endpoints are registered with a fixed response and record every request they
// receive, so tests can check both what the client decoded and what it sent.
//
//	srv := zammadtest.NewServer(t)
//	ep := srv.Handle(http.MethodGet, "/users/me", zammadtest.RandomUser())
//	client := srv.Client()
//	user, err := zammad.GetAuthenticatedUser(ctx, client)
//	assert.Equal(t, 1, ep.Hits())
package zammadtest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/s0up4200/zammadctl/zammad"
)

// Credentials used by Server.Client
const (
	Username = "agent@example.com"
	Password = "passw0rd="
)

// Request is a request received by an Endpoint
type Request struct {
	Method    string
	Path      string
	Query     url.Values
	Body      []byte
	Username  string
	Password  string
	HasAuth   bool
	UserAgent string
}

// JSON decodes the request body into a generic map
func (r Request) JSON() map[string]any {
	var m map[string]any
	_ = json.Unmarshal(r.Body, &m)
	return m
}

// Endpoint is a registered route with a canned response
type Endpoint struct {
	Method string
	Path   string

	status int
	body   []byte

	mu       sync.Mutex
	requests []Request
}

// Hits returns how many requests the endpoint received
func (e *Endpoint) Hits() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.requests)
}

// Requests returns a copy of the received requests
func (e *Endpoint) Requests() []Request {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Request, len(e.requests))
	copy(out, e.requests)
	return out
}

// Last returns the most recent request, or the zero Request if there was none
func (e *Endpoint) Last() Request {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.requests) == 0 {
		return Request{}
	}
	return e.requests[len(e.requests)-1]
}

func (e *Endpoint) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	username, password, hasAuth := r.BasicAuth()

	e.mu.Lock()
	e.requests = append(e.requests, Request{
		Method:    r.Method,
		Path:      r.URL.Path,
		Query:     r.URL.Query(),
		Body:      body,
		Username:  username,
		Password:  password,
		HasAuth:   hasAuth,
		UserAgent: r.UserAgent(),
	})
	e.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.status)
	_, _ = w.Write(e.body)
}

// Server is a fake Zammad instance serving registered endpoints under /api/v1
type Server struct {
	srv   *httptest.Server
	api   *mux.Router
	total atomic.Int64
}

// NewServer starts a server that is closed when the test ends.
// Requests to unregistered routes get a 404 with a JSON error body.
func NewServer(t testing.TB) *Server {
	t.Helper()

	s := &Server{}
	router := mux.NewRouter()
	router.NotFoundHandler = http.HandlerFunc(notFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(notFound)

	s.api = router.PathPrefix(zammad.Prefix).Subrouter()
	s.api.NotFoundHandler = http.HandlerFunc(notFound)

	s.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.total.Add(1)
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(s.srv.Close)

	return s
}

func notFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte(`{"error":"No route matches [` + r.Method + `] ` + r.URL.Path + `"}`))
}

// URL returns the host URL to pass to zammad.NewClient
func (s *Server) URL() string {
	return s.srv.URL
}

// TotalRequests counts every request the server received, matched or not
func (s *Server) TotalRequests() int {
	return int(s.total.Load())
}

// Client returns a zammad.Client pointed at the server with the test credentials
func (s *Server) Client(opts ...zammad.Option) *zammad.Client {
	return zammad.NewClient(s.URL(), Username, Password, zerolog.Nop(), opts...)
}

// Handle registers path (without the /api/v1 prefix) to answer with 200 and body
func (s *Server) Handle(method, path string, body any) *Endpoint {
	return s.HandleStatus(method, path, http.StatusOK, body)
}

// HandleStatus registers path to answer with status and body. A []byte or
// json.RawMessage body is sent as is, a string is sent as plain text and
// anything else is JSON encoded.
func (s *Server) HandleStatus(method, path string, status int, body any) *Endpoint {
	ep := &Endpoint{
		Method: method,
		Path:   path,
		status: status,
		body:   encode(body),
	}
	s.api.Handle(path, ep).Methods(method)
	return ep
}

func encode(body any) []byte {
	switch b := body.(type) {
	case nil:
		return nil
	case []byte:
		return b
	case json.RawMessage:
		return b
	case string:
		return []byte(b)
	default:
		data, err := json.Marshal(b)
		if err != nil {
			panic("zammadtest: cannot encode response body: " + err.Error())
		}
		return data
	}
}
