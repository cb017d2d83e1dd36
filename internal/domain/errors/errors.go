package errors

import (
	"net/http"

	"storeapi/internal/errors"
)

// Kind is the closed set of failure categories surfaced by the auth gateway
// and the resource use cases. Storage drivers never leak their own error types
// past the repository layer; they are translated into one of these.
type Kind int

const (
	KindInternal Kind = iota
	KindConflict
	KindInvalidCredentials
	KindEmailNotConfirmed
	KindTokenExpired
	KindTokenInvalid
	KindTokenWrongPurpose
	KindTokenMissingSubject
	KindNotFound
	KindForbidden
	KindAlreadyLiked
	KindValidation
)

// String returns the stable name of the kind.
func (k Kind) String() string {
	switch k {
	case KindConflict:
		return "Conflict"
	case KindInvalidCredentials:
		return "InvalidCredentials"
	case KindEmailNotConfirmed:
		return "EmailNotConfirmed"
	case KindTokenExpired:
		return "TokenExpired"
	case KindTokenInvalid:
		return "TokenInvalid"
	case KindTokenWrongPurpose:
		return "TokenWrongPurpose"
	case KindTokenMissingSubject:
		return "TokenMissingSubject"
	case KindNotFound:
		return "NotFound"
	case KindForbidden:
		return "Forbidden"
	case KindAlreadyLiked:
		return "AlreadyLiked"
	case KindValidation:
		return "Validation"
	default:
		return "Internal"
	}
}

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Failure category
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// Is matches any BaseError carrying the same error code, so a copy produced by
// WithMessage or WithDetails still satisfies errors.Is against its template.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return e.errorCode == t.errorCode
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Kind returns the failure category
func (e *BaseError) Kind() Kind {
	return e.kind
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithMessage returns a copy with a different user-facing message.
func (e *BaseError) WithMessage(message string) *BaseError {
	cloned := *e
	cloned.message = message

	return &cloned
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	cloned := *e
	cloned.details = details

	return &cloned
}

// Predefined error types
var (
	// Registration
	ErrConflict = NewBaseError(
		KindConflict,
		http.StatusBadRequest,
		"CONFLICT",
		"A user with that email or username already exists",
	)

	ErrEmailTaken = ErrConflict.WithMessage("A user with that email already exists")

	ErrUsernameTaken = ErrConflict.WithMessage("A user with that username already exists")

	// Authentication
	ErrInvalidCredentials = NewBaseError(
		KindInvalidCredentials,
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"invalid email or password",
	)

	ErrEmailNotConfirmed = NewBaseError(
		KindEmailNotConfirmed,
		http.StatusUnauthorized,
		"EMAIL_NOT_CONFIRMED",
		"User has not confirmed email",
	)

	// Tokens
	ErrTokenExpired = NewBaseError(
		KindTokenExpired,
		http.StatusUnauthorized,
		"TOKEN_EXPIRED",
		"token has expired",
	)

	ErrTokenInvalid = NewBaseError(
		KindTokenInvalid,
		http.StatusUnauthorized,
		"TOKEN_INVALID",
		"invalid token",
	)

	ErrTokenWrongPurpose = NewBaseError(
		KindTokenWrongPurpose,
		http.StatusUnauthorized,
		"TOKEN_WRONG_PURPOSE",
		"token has incorrect type",
	)

	ErrTokenMissingSubject = NewBaseError(
		KindTokenMissingSubject,
		http.StatusUnauthorized,
		"TOKEN_MISSING_SUBJECT",
		"token is missing the sub field",
	)

	// Resources
	ErrNotFound = NewBaseError(
		KindNotFound,
		http.StatusNotFound,
		"NOT_FOUND",
		"resource not found",
	)

	ErrPostNotFound = ErrNotFound.WithMessage("post not found")

	ErrForbidden = NewBaseError(
		KindForbidden,
		http.StatusForbidden,
		"FORBIDDEN",
		"not authorized to modify this post",
	)

	ErrAlreadyLiked = NewBaseError(
		KindAlreadyLiked,
		http.StatusConflict,
		"ALREADY_LIKED",
		"post already liked by this user",
	)

	// Validation
	ErrValidationFailed = NewBaseError(
		KindValidation,
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"invalid input",
	)

	// General
	ErrInternalError = NewBaseError(
		KindInternal,
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"internal server error",
	)
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// Unwrap exposes the driver error for logging.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

// Kind returns the failure category
func (e *DatabaseExecuteError) Kind() Kind {
	return KindInternal
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "internal server error"
}

// Details returns detailed error information
func (e *DatabaseExecuteError) Details() string {
	return e.details
}
