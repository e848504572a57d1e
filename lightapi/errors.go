package lightapi

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrConfiguration = errors.New("lightapi: invalid configuration")
	ErrTransport     = errors.New("lightapi: transport failure")
	ErrParse         = errors.New("lightapi: failed to parse response body")
	ErrShape         = errors.New("lightapi: unexpected response shape")
	ErrAPI           = errors.New("lightapi: api error")
	ErrEndpoint      = errors.New("lightapi: invalid endpoint")
	ErrEncodeBody    = errors.New("lightapi: failed to encode request body")
	ErrClientClosed  = errors.New("lightapi: client is closed")
)

// FieldError is one entry of the "errors" list the API sends with a
// validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError reports a non-2xx response.
type APIError struct {
	StatusCode int
	Message    string
	Errors     []FieldError
	RequestID  string
}

func (e *APIError) Error() string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "lightapi: api returned status %d", e.StatusCode)

	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}

	if len(e.Errors) > 0 {
		parts := make([]string, 0, len(e.Errors))
		for _, fieldErr := range e.Errors {
			parts = append(parts, fieldErr.Field+": "+fieldErr.Message)
		}

		sb.WriteString(" (")
		sb.WriteString(strings.Join(parts, "; "))
		sb.WriteString(")")
	}

	return sb.String()
}

func (e *APIError) Is(target error) bool {
	return errors.Is(target, ErrAPI)
}

func (e *APIError) Unwrap() error {
	return ErrAPI
}

func IsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}

	return nil, false
}

// RaiseForStatus returns nil for 2xx status codes and an *APIError otherwise.
// The error picks up the body's "error" message and "errors" field list when
// the body has that shape.
func RaiseForStatus(statusCode int, body any) error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}

	apiErr := &APIError{
		StatusCode: statusCode,
		Message:    "",
		Errors:     nil,
		RequestID:  "",
	}

	obj, ok := body.(map[string]any)
	if !ok {
		return apiErr
	}

	if msg, ok := obj["error"].(string); ok {
		apiErr.Message = msg
	}

	list, ok := obj["errors"].([]any)
	if !ok {
		return apiErr
	}

	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}

		field, _ := entry["field"].(string)
		apiErr.Errors = append(apiErr.Errors, FieldError{
			Field:   field,
			Message: fieldMessage(entry["message"]),
		})
	}

	return apiErr
}

// fieldMessage accepts both a plain string and the list of strings the API
// uses when a field fails more than one check.
func fieldMessage(raw any) string {
	switch msg := raw.(type) {
	case string:
		return msg
	case []any:
		parts := make([]string, 0, len(msg))
		for _, part := range msg {
			if s, ok := part.(string); ok {
				parts = append(parts, s)
			}
		}

		return strings.Join(parts, "; ")
	default:
		return ""
	}
}
