package lightapi

import (
	"context"
	"encoding/json"
	"fmt"
	"maps"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/andyle182810/lightcloud/validator"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

// Client talks to the lighting API on behalf of one account. It is safe for
// concurrent use; its headers are fixed at construction.
type Client struct {
	baseURL  string
	headers  map[string]string
	session  *resty.Client
	executor RequestExecutor
	metrics  *metrics
	closed   atomic.Bool
}

// New validates cfg and builds a client. Concurrent clients start their
// request pool here; call Close to stop it.
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := validator.Default().Validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	headers := make(map[string]string, len(o.headers)+1)
	maps.Copy(headers, o.headers)
	maps.Copy(headers, GenerateAuthHeader(cfg.APIKey))

	client := &Client{ //nolint:exhaustruct
		baseURL: baseURL,
		headers: headers,
		session: newSession(o),
	}

	if cfg.Concurrent {
		executor, err := newConcurrentExecutor(client.exchange)
		if err != nil {
			return nil, err
		}

		client.executor = executor
	} else {
		client.executor = newBlockingExecutor(client.exchange)
	}

	if o.registerer != nil {
		m, err := newMetrics(o.registerer)
		if err != nil {
			_ = client.executor.Close()

			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}

		client.metrics = m
	}

	log.Debug().
		Str("base_url", baseURL).
		Bool("concurrent", cfg.Concurrent).
		Msg("Light API client created.")

	return client, nil
}

func newSession(o *options) *resty.Client {
	var session *resty.Client
	if o.httpClient != nil {
		httpClient := *o.httpClient
		session = resty.NewWithClient(&httpClient)
	} else {
		session = resty.New()
	}

	if o.timeout > 0 {
		session.SetTimeout(o.timeout)
	}

	return session
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// PerformRequest sends one request and waits for its value. In concurrent
// mode the request still takes one of the pool's worker slots.
func (c *Client) PerformRequest(
	ctx context.Context,
	method string,
	endpoint string,
	pathArgs []string,
	opts ...RequestOption,
) (any, error) {
	return c.Submit(ctx, method, endpoint, pathArgs, opts...).Wait(ctx)
}

// Submit starts a request and returns its handle. A blocking client has
// already finished the request when Submit returns.
func (c *Client) Submit(
	ctx context.Context,
	method string,
	endpoint string,
	pathArgs []string,
	opts ...RequestOption,
) *Pending {
	req := NewRequest(method, endpoint, pathArgs, opts...)

	if c.closed.Load() {
		pending := newPending(req.RequestID)
		pending.resolve(nil, nil, ErrClientClosed)

		return pending
	}

	return c.executor.Execute(ctx, req)
}

func (c *Client) Get(ctx context.Context, endpoint string, pathArgs []string, opts ...RequestOption) (any, error) {
	return c.PerformRequest(ctx, http.MethodGet, endpoint, pathArgs, opts...)
}

// Put sends a PUT. Endpoints that answer with an empty body need
// WithoutUnwrap, otherwise the call fails with ErrShape.
func (c *Client) Put(ctx context.Context, endpoint string, pathArgs []string, opts ...RequestOption) (any, error) {
	return c.PerformRequest(ctx, http.MethodPut, endpoint, pathArgs, opts...)
}

// Post sends a POST. As with Put, pass WithoutUnwrap for endpoints that
// answer with an empty body.
func (c *Client) Post(ctx context.Context, endpoint string, pathArgs []string, opts ...RequestOption) (any, error) {
	return c.PerformRequest(ctx, http.MethodPost, endpoint, pathArgs, opts...)
}

func (c *Client) Delete(ctx context.Context, endpoint string, pathArgs []string, opts ...RequestOption) (any, error) {
	return c.PerformRequest(ctx, http.MethodDelete, endpoint, pathArgs, opts...)
}

// Close waits for queued requests to finish and releases idle connections.
// Requests made afterwards fail with ErrClientClosed.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	err := c.executor.Close()

	c.session.GetClient().CloseIdleConnections()

	return err
}

func (c *Client) exchange(ctx context.Context, req *Request) (any, *Response, error) {
	path, err := FormatEndpoint(req.Endpoint, req.PathArgs)
	if err != nil {
		return nil, nil, err
	}

	url := joinURL(c.baseURL, path)

	restyReq := c.session.R().
		SetContext(ctx).
		SetHeaders(c.headers).
		SetHeader(HeaderXRequestID, req.RequestID)

	if err := setBody(restyReq, req); err != nil {
		return nil, nil, err
	}

	start := time.Now()

	c.metrics.begin()

	resp, err := restyReq.Execute(req.Method, url)
	elapsed := time.Since(start)

	if err != nil {
		c.metrics.end(req.Method, 0, elapsed)

		log.Debug().
			Err(err).
			Str("method", req.Method).
			Str("url", url).
			Str("request_id", req.RequestID).
			Dur("duration", elapsed).
			Msg("Light API request failed.")

		return nil, nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	c.metrics.end(req.Method, resp.StatusCode(), elapsed)

	log.Debug().
		Str("method", req.Method).
		Str("url", url).
		Int("status", resp.StatusCode()).
		Str("request_id", req.RequestID).
		Dur("duration", elapsed).
		Msg("Light API request completed.")

	return process(resp.StatusCode(), resp.Body(), req)
}

// setBody attaches exactly one kind of body: JSON when given, otherwise the
// form-encoded args, otherwise none.
func setBody(restyReq *resty.Request, req *Request) error {
	if req.JSONBody != nil {
		encoded, err := json.Marshal(req.JSONBody)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrEncodeBody, err)
		}

		restyReq.SetHeader(HeaderContentType, ContentTypeJSON).SetBody(encoded)

		return nil
	}

	if len(req.Args) > 0 {
		restyReq.SetHeader(HeaderContentType, ContentTypeFormURLEncoded).SetBody(encodeForm(req.Args))
	}

	return nil
}

// process turns a raw answer into the caller's value. The status is checked
// before unwrapping because error bodies carry no "results".
func process(statusCode int, raw []byte, req *Request) (any, *Response, error) {
	body, parseErr := ParseResponseText(raw)

	response := &Response{
		StatusCode: statusCode,
		Body:       body,
		RequestID:  req.RequestID,
	}

	if parseErr != nil && (statusCode < 200 || statusCode >= 300) {
		body = map[string]any{"error": strings.TrimSpace(string(raw))}
	}

	if err := RaiseForStatus(statusCode, body); err != nil {
		if apiErr, ok := IsAPIError(err); ok {
			apiErr.RequestID = req.RequestID
		}

		return nil, response, err
	}

	if parseErr != nil {
		return nil, response, parseErr
	}

	if !req.Unwrap {
		return body, response, nil
	}

	value, err := UnwrapResults(body)
	if err != nil {
		return nil, response, err
	}

	return value, response, nil
}
