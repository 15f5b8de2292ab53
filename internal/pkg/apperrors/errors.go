package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNoActiveSession    = errors.New("no active session")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")
	ErrBadRequest       = errors.New("bad request")

	// Account errors
	ErrAccountNotFound    = errors.New("account not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Registration errors
var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrPaidEventFreePath    = errors.New("paid events must use the paid registration path")
)

// Team errors
var (
	ErrTeamNotFound = errors.New("team not found")
)

// AppError represents application-specific errors with additional context
type AppError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements the errors.Unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates an AppError wrapping a sentinel error with a message
func New(err error, message string) *AppError {
	return &AppError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// NewValidationError creates an error for a precondition failure
func NewValidationError(message string) error {
	return &AppError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewAuthenticationError creates an error for a rejected credential or session
func NewAuthenticationError(message string) error {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: message,
	}
}

// NewNotFoundError creates an error for a missing resource
func NewNotFoundError(message string) error {
	return &AppError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates an error for conflict situations
func NewConflictError(message string) error {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// Is reports whether err matches target or any error in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
