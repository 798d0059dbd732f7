package conformance

import (
	"errors"
	"fmt"
)

var (
	ErrTransport        = errors.New("transport error")
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrInvalidBody      = errors.New("invalid response body")
	ErrMissingField     = errors.New("missing field")
	ErrEmptyQueue       = errors.New("no actions found")
	ErrParamMismatch    = errors.New("param mismatch")
	ErrQueueNotDrained  = errors.New("action still in queue")
)

// CheckError reports which step failed and why. Err is always one of the
// package sentinels.
type CheckError struct {
	Step   string
	Err    error
	Detail string
}

func (e *CheckError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Step, e.Err, e.Detail)
}

func (e *CheckError) Unwrap() error {
	return e.Err
}

func newCheckError(step string, err error, format string, args ...any) *CheckError {
	return &CheckError{Step: step, Err: err, Detail: fmt.Sprintf(format, args...)}
}
