package testutil

import (
	"context"
	"testing"
	"time"
)

const defaultTimeout = 10 * time.Second

func ContextWithTimeout(t *testing.T) context.Context {
	t.Helper()

	return ContextWithCustomTimeout(t, defaultTimeout)
}

func ContextWithCustomTimeout(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()

	ctx, cancel := context.WithTimeout(t.Context(), timeout)
	t.Cleanup(cancel)

	return ctx
}
