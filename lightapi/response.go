package lightapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const resultsKey = "results"

// Response is the parsed outcome of one exchange.
type Response struct {
	StatusCode int
	Body       any
	RequestID  string
}

// ParseResponseText decodes a JSON response body. An empty or blank body is a
// valid empty success and decodes to an empty object.
func ParseResponseText(text []byte) (any, error) {
	if len(bytes.TrimSpace(text)) == 0 {
		return map[string]any{}, nil
	}

	var data any
	if err := json.Unmarshal(text, &data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return data, nil
}

// UnwrapResults returns the first element of the "results" list in data.
func UnwrapResults(data any) (any, error) {
	obj, ok := data.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: expected an object holding %q, got %T", ErrShape, resultsKey, data)
	}

	raw, ok := obj[resultsKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q is missing", ErrShape, resultsKey)
	}

	results, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%w: %q is %T, not a list", ErrShape, resultsKey, raw)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("%w: %q is empty", ErrShape, resultsKey)
	}

	return results[0], nil
}
