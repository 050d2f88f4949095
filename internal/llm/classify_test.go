package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestClassifyTransportError(t *testing.T) {
	for _, tc := range []struct {
		name string
		err  error
		want failureClass
	}{
		{name: "deadline", err: fmt.Errorf("call: %w", context.DeadlineExceeded), want: failureTimeout},
		{name: "rate limit", err: errors.New("error, status code: 429, message: quota"), want: failureRateLimit},
		{name: "bad key", err: errors.New("error, status code: 401, message: invalid api key"), want: failureAuth},
		{name: "server", err: errors.New("error, status code: 500, message: overloaded"), want: failureServer},
		{name: "client", err: errors.New("error, status code: 400, message: bad request"), want: failureClient},
		{name: "unknown defaults to server", err: errors.New("connection reset by peer"), want: failureServer},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if got := classifyTransportError(tc.err); got != tc.want {
				t.Fatalf("classify = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestFailureClassString(t *testing.T) {
	if failureTimeout.String() != "timeout" || failureAuth.String() != "auth" {
		t.Fatal("unexpected class names")
	}
}
