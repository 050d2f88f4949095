package llm

import (
	"context"
	"errors"
	"net"
	"strings"
)

// failureClass annotates generation failures so operators can tell "provider
// down" apart from credential or quota problems. Classification feeds error
// messages only; no retry decisions are made here.
type failureClass int

const (
	failureTimeout failureClass = iota
	failureRateLimit
	failureAuth
	failureServer
	failureClient
)

func (c failureClass) String() string {
	switch c {
	case failureTimeout:
		return "timeout"
	case failureRateLimit:
		return "rate_limited"
	case failureAuth:
		return "auth"
	case failureClient:
		return "client_error"
	default:
		return "server_error"
	}
}

func classifyTransportError(err error) failureClass {
	if errors.Is(err, context.DeadlineExceeded) {
		return failureTimeout
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return failureTimeout
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429"):
		return failureRateLimit
	case strings.Contains(msg, "401") || strings.Contains(msg, "403") ||
		strings.Contains(msg, "api key") || strings.Contains(msg, "unauthorized"):
		return failureAuth
	case strings.Contains(msg, "status code: 5") || strings.Contains(msg, "server error"):
		return failureServer
	case strings.Contains(msg, "status code: 4"):
		return failureClient
	default:
		return failureServer
	}
}
