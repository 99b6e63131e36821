// Package apperrors defines the error kinds the HTTP layer maps to status
// codes. Database and blob-store errors are never returned to clients
// verbatim; services wrap them into one of these kinds.
package apperrors

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound covers both "does not exist" and "exists but not yours",
	// so responses never reveal whether a foreign id is real.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means authenticated but not entitled, e.g. tagging with
	// another user's tag id.
	ErrForbidden = errors.New("forbidden")

	// ErrConflict means the operation is blocked by current state.
	ErrConflict = errors.New("conflict")

	// ErrValidation means malformed input, e.g. an empty id list.
	ErrValidation = errors.New("validation failed")

	// ErrUpstream means the blob store failed in a way that is not
	// "object already missing".
	ErrUpstream = errors.New("upstream storage error")

	// ErrTransaction means begin/commit/rollback failed; always fatal to
	// the request.
	ErrTransaction = errors.New("transaction error")
)

func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

func Forbiddenf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrForbidden}, args...)...)
}

func Validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

// UpstreamError aggregates per-object blob-store failures from one request.
// The DB side may already be committed when this is returned; callers must
// treat it as "some objects may be orphaned", not "nothing happened".
type UpstreamError struct {
	Keys []string
	Errs []error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%v: %d object(s) failed: %s", ErrUpstream, len(e.Keys), strings.Join(e.Keys, ", "))
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}

// Add records one failed object deletion.
func (e *UpstreamError) Add(key string, err error) {
	e.Keys = append(e.Keys, key)
	e.Errs = append(e.Errs, err)
}

// OrNil returns the aggregate error, or nil when nothing failed.
func (e *UpstreamError) OrNil() error {
	if len(e.Keys) == 0 {
		return nil
	}
	return e
}
