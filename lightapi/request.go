package lightapi

import (
	"slices"

	"github.com/google/uuid"
)

// Request describes one call. Build it with NewRequest; it is consumed by a
// single exchange and never shared between calls.
type Request struct {
	Method    string
	Endpoint  string
	PathArgs  []string
	Args      []Arg
	JSONBody  any
	Unwrap    bool
	RequestID string
}

type RequestOption func(*Request)

// NewRequest copies pathArgs so later changes by the caller cannot leak into
// an in-flight request. Results unwrapping is on unless WithoutUnwrap is given.
func NewRequest(method, endpoint string, pathArgs []string, opts ...RequestOption) *Request {
	req := &Request{
		Method:    method,
		Endpoint:  endpoint,
		PathArgs:  slices.Clone(pathArgs),
		Args:      nil,
		JSONBody:  nil,
		Unwrap:    true,
		RequestID: "",
	}

	for _, opt := range opts {
		opt(req)
	}

	if req.RequestID == "" {
		req.RequestID = uuid.New().String()
	}

	return req
}

// WithArgs sets a form-encoded body. It is ignored when a JSON body is set.
func WithArgs(args ...Arg) RequestOption {
	return func(r *Request) {
		r.Args = append(r.Args, args...)
	}
}

// WithJSONBody sends body encoded as JSON. It takes precedence over WithArgs.
func WithJSONBody(body any) RequestOption {
	return func(r *Request) {
		r.JSONBody = body
	}
}

// WithoutUnwrap returns the whole parsed body instead of the first entry of
// its "results" list.
func WithoutUnwrap() RequestOption {
	return func(r *Request) {
		r.Unwrap = false
	}
}

func WithRequestID(requestID string) RequestOption {
	return func(r *Request) {
		r.RequestID = requestID
	}
}
