package types

import "fmt"

// ErrorCode categorizes provider errors
type ErrorCode string

const (
	ErrCodeUnknown         ErrorCode = "unknown"
	ErrCodeUnknownProvider ErrorCode = "unknown_provider"
	ErrCodeAuthentication  ErrorCode = "authentication"
	ErrCodeRateLimit       ErrorCode = "rate_limit"
	ErrCodeInvalidRequest  ErrorCode = "invalid_request"
	ErrCodeServerError     ErrorCode = "server_error"
	ErrCodeTimeout         ErrorCode = "timeout"
	ErrCodeNetwork         ErrorCode = "network"
)

// ProviderError represents a standardized error from a provider or the
// factory layer.
type ProviderError struct {
	Code        ErrorCode    // Categorized error code
	Message     string       // Human-readable message
	StatusCode  int          // HTTP status code (0 if not applicable)
	Provider    ProviderType // Which provider generated this error
	Operation   string       // What operation failed (e.g., "search", "create_embedding")
	OriginalErr error        // Wrapped original error
	RequestID   string       // Request ID attached to the failing call, if any
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s] %s (status=%d, code=%s)", e.Provider, e.Message, e.StatusCode, e.Code)
	}
	return fmt.Sprintf("[%s] %s (code=%s)", e.Provider, e.Message, e.Code)
}

// Unwrap returns the original error for errors.Is/As
func (e *ProviderError) Unwrap() error {
	return e.OriginalErr
}

// IsRetryable returns true if the error is potentially recoverable with retry
func (e *ProviderError) IsRetryable() bool {
	switch e.Code {
	case ErrCodeRateLimit, ErrCodeServerError, ErrCodeTimeout, ErrCodeNetwork:
		return true
	}
	return false
}

// WithOperation sets the operation field and returns the error for chaining
func (e *ProviderError) WithOperation(operation string) *ProviderError {
	e.Operation = operation
	return e
}

// WithStatusCode sets the status code field and returns the error for chaining
func (e *ProviderError) WithStatusCode(statusCode int) *ProviderError {
	e.StatusCode = statusCode
	return e
}

// WithOriginalErr sets the original error field and returns the error for chaining
func (e *ProviderError) WithOriginalErr(err error) *ProviderError {
	e.OriginalErr = err
	return e
}

// WithRequestID sets the request ID field and returns the error for chaining
func (e *ProviderError) WithRequestID(requestID string) *ProviderError {
	e.RequestID = requestID
	return e
}

// NewProviderError creates a new ProviderError
func NewProviderError(provider ProviderType, code ErrorCode, message string) *ProviderError {
	return &ProviderError{
		Code:     code,
		Message:  message,
		Provider: provider,
	}
}

// NewUnknownProviderError creates the error returned when a provider type
// label has no registered constructor.
func NewUnknownProviderError(providerType ProviderType) *ProviderError {
	return &ProviderError{
		Code:    ErrCodeUnknownProvider,
		Message: fmt.Sprintf("unknown provider type: %s", providerType),
	}
}

// NewAuthError creates a new authentication error
func NewAuthError(provider ProviderType, message string) *ProviderError {
	return &ProviderError{
		Code:     ErrCodeAuthentication,
		Message:  message,
		Provider: provider,
	}
}

// NewInvalidRequestError creates a new invalid request error
func NewInvalidRequestError(provider ProviderType, message string) *ProviderError {
	return &ProviderError{
		Code:     ErrCodeInvalidRequest,
		Message:  message,
		Provider: provider,
	}
}

// NewServerError creates a new server-side error
func NewServerError(provider ProviderType, statusCode int, message string) *ProviderError {
	return &ProviderError{
		Code:       ErrCodeServerError,
		Message:    message,
		StatusCode: statusCode,
		Provider:   provider,
	}
}

// NewNetworkError creates a new network error wrapping the transport failure
func NewNetworkError(provider ProviderType, err error) *ProviderError {
	return &ProviderError{
		Code:        ErrCodeNetwork,
		Message:     "network error",
		Provider:    provider,
		OriginalErr: err,
	}
}
