package domain

import "errors"

// Error kinds. Every error returned by a core service matches exactly one of
// these through errors.Is.
var (
	ErrValidation     = errors.New("validation failed")
	ErrConflict       = errors.New("conflict")
	ErrAuthentication = errors.New("authentication failed")
	ErrNotFound       = errors.New("not found")
	ErrForbidden      = errors.New("access forbidden")
	ErrStore          = errors.New("store failure")
)

// Store-level signals. Repositories return these instead of failing on an
// absent record or a unique-key collision; services translate them.
var (
	ErrNoRecord  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Error is a core error: a kind, a stable user-facing message and, for store
// failures, the underlying cause.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

func newError(kind error, msg string) *Error {
	return &Error{Kind: kind, Message: msg}
}

func Validation(msg string) error     { return newError(ErrValidation, msg) }
func Conflict(msg string) error       { return newError(ErrConflict, msg) }
func Authentication(msg string) error { return newError(ErrAuthentication, msg) }
func NotFound(msg string) error       { return newError(ErrNotFound, msg) }
func Forbidden(msg string) error      { return newError(ErrForbidden, msg) }

// StoreFailure wraps a collaborator failure. The message is deliberately
// opaque; the cause is kept for logging.
func StoreFailure(cause error) error {
	return &Error{Kind: ErrStore, Message: "store failure", Cause: cause}
}

// Message returns the stable message of a core error, or "" for foreign errors.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return ""
}
