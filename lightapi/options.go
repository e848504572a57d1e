package lightapi

import (
	"maps"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	DefaultBaseURL = "https://api.example.com/v1/"

	// MaxConcurrentRequests caps in-flight requests of a concurrent client.
	// The vendor rate-limits accounts that exceed it.
	MaxConcurrentRequests = 10

	HeaderContentType         = "Content-Type"
	HeaderAccept              = "Accept"
	HeaderXRequestID          = "X-Request-ID"
	HeaderAuthorization       = "Authorization"
	ContentTypeJSON           = "application/json"
	ContentTypeFormURLEncoded = "application/x-www-form-urlencoded"
)

// Config holds the inputs a Client needs. Only APIKey is required.
type Config struct {
	APIKey     string `json:"api_key"  validate:"required,printascii"`
	BaseURL    string `json:"base_url" validate:"omitempty,http_url"`
	Concurrent bool   `json:"concurrent"`
}

type Option func(*options)

type options struct {
	httpClient *http.Client
	timeout    time.Duration
	headers    map[string]string
	registerer prometheus.Registerer
}

func defaultOptions() *options {
	return &options{
		httpClient: nil,
		timeout:    0,
		headers:    map[string]string{HeaderAccept: ContentTypeJSON},
		registerer: nil,
	}
}

// WithHTTPClient makes the session send through httpClient, for custom
// transports, proxies or tests. The client is copied, so WithTimeout never
// changes the caller's value.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

// WithTimeout bounds each exchange. Without it the transport defaults apply.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

// WithDefaultHeaders adds headers to every request. The Authorization header
// derived from the API key always wins.
func WithDefaultHeaders(headers map[string]string) Option {
	return func(o *options) {
		maps.Copy(o.headers, headers)
	}
}

// WithMetrics registers request metrics with registerer.
func WithMetrics(registerer prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = registerer
	}
}
