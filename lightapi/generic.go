//nolint:ireturn
package lightapi

import (
	"context"
	"encoding/json"
	"fmt"
)

// DoJSON performs a request and decodes its value into T. Use it with typed
// views of the API's objects instead of walking maps.
func DoJSON[T any](
	ctx context.Context,
	c *Client,
	method string,
	endpoint string,
	pathArgs []string,
	opts ...RequestOption,
) (T, error) {
	var result T

	value, err := c.PerformRequest(ctx, method, endpoint, pathArgs, opts...)
	if err != nil {
		return result, err
	}

	return Decode[T](value)
}

// Decode converts a value returned by the client, or by a Pending, into T.
func Decode[T any](value any) (T, error) {
	var result T

	encoded, err := json.Marshal(value)
	if err != nil {
		return result, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if err := json.Unmarshal(encoded, &result); err != nil {
		return result, fmt.Errorf("%w: %w", ErrParse, err)
	}

	return result, nil
}
