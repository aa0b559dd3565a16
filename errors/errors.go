package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an AppError with the same code, so
// errors.Is(err, &AppError{Code: ErrCodeNoProvider}) matches any no-provider error.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Retryable: IsRetryableCode(code),
	}
}

// --- Resolution Error Constructors ---

// NoProvider creates an AppError for a resolve against a key with no registered factory.
func NoProvider(serviceType, label string) *AppError {
	details := map[string]any{"service_type": serviceType}
	if label != "" {
		details["label"] = label
	}
	return &AppError{
		Code: ErrCodeNoProvider, Message: fmt.Sprintf("No provider registered for %s.", describe(serviceType, label)),
		Retryable: true, Details: details,
	}
}

// TypeMismatch creates an AppError for a factory whose product is not of the requested type.
func TypeMismatch(want, got, label string) *AppError {
	details := map[string]any{"service_type": want, "produced_type": got}
	if label != "" {
		details["label"] = label
	}
	return &AppError{
		Code: ErrCodeTypeMismatch, Message: fmt.Sprintf("Factory for %s produced %s.", describe(want, label), got),
		Retryable: false, Details: details,
	}
}

// InjectionFailed creates an AppError for an injection accessor that could not resolve its value.
func InjectionFailed(serviceType string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeInjectionFailed, Message: fmt.Sprintf("Unable to inject %s.", serviceType),
		Retryable: false, Details: map[string]any{"service_type": serviceType}, Cause: cause,
	}
}

// ScopeNotFound creates an AppError for a scope name that no registration refers to.
func ScopeNotFound(name string) *AppError {
	return &AppError{
		Code: ErrCodeScopeNotFound, Message: fmt.Sprintf("No scope named %q is known.", name),
		Retryable: false, Details: map[string]any{"scope": name},
	}
}

// --- Validation Error Constructors ---

// InvalidConfig creates an AppError for an invalid configuration value.
func InvalidConfig(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidConfig, Message: fmt.Sprintf("Invalid configuration: %s", reason),
		Retryable: false, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		Retryable: false,
	}
}

// Internal creates a new AppError for an unexpected internal failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		Retryable: false, Cause: cause,
	}
}

// Wrap converts any error into an AppError. AppErrors found anywhere in the
// chain are returned as-is; other errors become INTERNAL_ERROR.
func Wrap(err error) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

// HasCode reports whether err carries an AppError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

func describe(serviceType, label string) string {
	if label == "" {
		return serviceType
	}
	return fmt.Sprintf("%s (label %q)", serviceType, label)
}
