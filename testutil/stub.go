package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// APIBasePath is the versioned prefix the stub serves, mirroring the vendor API.
const APIBasePath = "/v1/"

type RecordedRequest struct {
	Method        string
	Path          string
	RawPath       string
	Body          string
	ContentType   string
	Authorization string
	RequestID     string
	Header        http.Header
}

// APIStub is an httptest server standing in for the vendor lighting API. It
// records every request and tracks how many were being served at once.
type APIStub struct {
	server  *httptest.Server
	status  int
	body    []byte
	delay   time.Duration
	handler http.HandlerFunc

	mu       sync.Mutex
	requests []RecordedRequest

	inFlight    atomic.Int32
	maxInFlight atomic.Int32
}

type StubOption func(*APIStub)

// WithJSONResponse makes the stub answer every request with status and body
// encoded as JSON.
func WithJSONResponse(status int, body any) StubOption {
	return func(s *APIStub) {
		encoded, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}

		s.status = status
		s.body = encoded
	}
}

func WithRawResponse(status int, body string) StubOption {
	return func(s *APIStub) {
		s.status = status
		s.body = []byte(body)
	}
}

// WithDelay holds every response for d before writing it.
func WithDelay(d time.Duration) StubOption {
	return func(s *APIStub) {
		s.delay = d
	}
}

// WithHandler replaces the canned response. Requests are still recorded.
func WithHandler(handler http.HandlerFunc) StubOption {
	return func(s *APIStub) {
		s.handler = handler
	}
}

func NewAPIStub(t *testing.T, opts ...StubOption) *APIStub {
	t.Helper()

	stub := &APIStub{ //nolint:exhaustruct
		status:   http.StatusOK,
		body:     []byte(`{"results":[{"id":"d073d5000001","status":"ok"}]}`),
		requests: make([]RecordedRequest, 0),
	}

	for _, opt := range opts {
		opt(stub)
	}

	stub.server = httptest.NewServer(http.HandlerFunc(stub.serve))
	t.Cleanup(stub.server.Close)

	return stub
}

// URL is the base URL a client should be configured with, including the
// trailing version segment.
func (s *APIStub) URL() string {
	return s.server.URL + APIBasePath
}

func (s *APIStub) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]RecordedRequest, len(s.requests))
	copy(out, s.requests)

	return out
}

func (s *APIStub) RequestCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.requests)
}

func (s *APIStub) LastRequest(t *testing.T) RecordedRequest {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.requests) == 0 {
		t.Fatal("APIStub received no requests")
	}

	return s.requests[len(s.requests)-1]
}

// MaxInFlight is the highest number of requests the stub was serving at the
// same moment.
func (s *APIStub) MaxInFlight() int {
	return int(s.maxInFlight.Load())
}

func (s *APIStub) serve(w http.ResponseWriter, r *http.Request) {
	current := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)

	for {
		peak := s.maxInFlight.Load()
		if current <= peak || s.maxInFlight.CompareAndSwap(peak, current) {
			break
		}
	}

	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		RawPath:       r.URL.EscapedPath(),
		Body:          string(body),
		ContentType:   r.Header.Get("Content-Type"),
		Authorization: r.Header.Get("Authorization"),
		RequestID:     r.Header.Get("X-Request-ID"),
		Header:        r.Header.Clone(),
	})
	s.mu.Unlock()

	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	if s.handler != nil {
		s.handler(w, r)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(s.status)
	_, _ = w.Write(s.body)
}
