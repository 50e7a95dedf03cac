package apperror

import "errors"

// Kind classifies an AppError independently of any transport.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidRequest
	KindNotPermitted
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidRequest:
		return "invalid_request"
	case KindNotPermitted:
		return "not_permitted"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// AppError is a business error carrying a kind and a user-facing message.
type AppError struct {
	Kind    Kind   // Classification used by the transport layer
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a kind and message.
func New(kind Kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, kind Kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func NotFound(message string) *AppError       { return New(KindNotFound, message) }
func InvalidRequest(message string) *AppError { return New(KindInvalidRequest, message) }
func NotPermitted(message string) *AppError   { return New(KindNotPermitted, message) }
func Conflict(message string) *AppError       { return New(KindConflict, message) }

// KindOf reports the kind of the first AppError in err's chain.
// Errors that are not AppErrors are KindInternal.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
