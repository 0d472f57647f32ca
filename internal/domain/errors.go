package domain

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrNotReady            = errors.New("checkout not ready")
	ErrCommitFailed        = errors.New("checkout commit failed")
	ErrGuestNotFound       = errors.New("guest not found")
	ErrRoomNotFound        = errors.New("room not found")
	ErrTransactionNotFound = errors.New("checkout transaction not found")
)

// ValidationError reports malformed operator input; state is left unchanged.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotReadyError reports an unmet checkout precondition.
type NotReadyError struct {
	State  CheckoutState
	Reason string
}

func (e *NotReadyError) Error() string {
	if e.State == "" {
		return "not ready: " + e.Reason
	}
	return fmt.Sprintf("not ready (state %s): %s", e.State, e.Reason)
}

func (e *NotReadyError) Is(target error) bool { return target == ErrNotReady }

// CommitFailedError is retryable; the checkout keeps all captured data.
type CommitFailedError struct {
	Err error
}

func (e *CommitFailedError) Error() string {
	return "commit failed: " + e.Err.Error()
}

func (e *CommitFailedError) Unwrap() error { return e.Err }

func (e *CommitFailedError) Is(target error) bool { return target == ErrCommitFailed }

func quote(s string) string { return strconv.Quote(s) }
