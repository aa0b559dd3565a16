package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Resolution errors
const (
	// ErrCodeNoProvider indicates no factory is registered for the requested key.
	ErrCodeNoProvider ErrorCode = "NO_PROVIDER"
	// ErrCodeTypeMismatch indicates a factory produced a value of the wrong type.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
	// ErrCodeInjectionFailed indicates an injection accessor could not obtain its value.
	ErrCodeInjectionFailed ErrorCode = "INJECTION_FAILED"
	// ErrCodeScopeNotFound indicates no known scope carries the requested name.
	ErrCodeScopeNotFound ErrorCode = "SCOPE_NOT_FOUND"
)

// Validation errors
const (
	// ErrCodeInvalidConfig indicates a configuration value is invalid.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Registration can change between two resolves, so a failed resolve may
// succeed when retried after the caller registers a provider.
var retryableCodes = map[ErrorCode]bool{
	ErrCodeNoProvider:      true,
	ErrCodeTypeMismatch:    false,
	ErrCodeInjectionFailed: false,
	ErrCodeScopeNotFound:   false,
	ErrCodeInvalidConfig:   false,
	ErrCodeInvalidInput:    false,
	ErrCodeInternal:        false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
