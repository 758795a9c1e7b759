package testutil

import (
	"context"
	"testing"
	"time"
)

// Context returns a context canceled when the test ends, bounded by timeout
// when timeout is positive.
func Context(t *testing.T, timeout time.Duration) context.Context {
	t.Helper()

	if timeout <= 0 {
		ctx, cancel := context.WithCancel(context.Background())
		t.Cleanup(cancel)
		return ctx
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	t.Cleanup(cancel)

	return ctx
}
