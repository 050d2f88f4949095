package evaluation

import (
	"errors"
	"fmt"
)

const (
	CodeGenerationUnavailable = "generation_unavailable"
	CodeMalformedResponse     = "malformed_response"
	CodeUnexpectedShape       = "unexpected_shape"
	CodeRenderFailure         = "render_failure"
)

// Stage names the orchestrator state in which a request failed.
type Stage string

const (
	StageBuilding           Stage = "building"
	StageAwaitingGeneration Stage = "awaiting_generation"
	StageNormalizing        Stage = "normalizing"
	StageRendered           Stage = "rendered"
)

// Error is a terminal evaluation failure. It carries the failed stage and a
// stable code so a layer above can decide whether to retry; this package
// itself never retries.
type Error struct {
	Stage     Stage
	Code      string
	Message   string
	Transient bool
	Status    int
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Code, e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("%s (%s): %s", e.Code, e.Stage, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func statusForCode(code string) int {
	switch code {
	case CodeGenerationUnavailable, CodeMalformedResponse, CodeUnexpectedShape:
		return 502
	default:
		return 500
	}
}

func newError(stage Stage, code, message string, transient bool, err error) *Error {
	return &Error{
		Stage:     stage,
		Code:      code,
		Message:   message,
		Transient: transient,
		Status:    statusForCode(code),
		Err:       err,
	}
}

// ErrorCode returns the evaluation error code, or "internal" for any other
// error.
func ErrorCode(err error) string {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Code
	}
	return "internal"
}

// StageFromError returns the stage a failed evaluation terminated in.
func StageFromError(err error) Stage {
	var ee *Error
	if errors.As(err, &ee) {
		return ee.Stage
	}
	return ""
}
