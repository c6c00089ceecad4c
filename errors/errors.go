package errors

import "fmt"

// SDK error types organized by category so the caching layer can decide
// swallow-vs-propagate by type instead of by catch structure

type ErrorType int

// Caller Errors - the caller supplied bad input
const (
	ErrorTypeUnknown ErrorType = iota
	ErrorTypeValidation

	// External Errors - failures of the upstream weather API
	ErrorTypeFetch
	ErrorTypeMalformedData

	// Lifecycle/Configuration Errors
	ErrorTypeClosed
	ErrorTypeConfiguration
)

// String returns the string representation of error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeValidation:
		return "VALIDATION_ERROR"
	case ErrorTypeFetch:
		return "FETCH_ERROR"
	case ErrorTypeMalformedData:
		return "MALFORMED_DATA_ERROR"
	case ErrorTypeClosed:
		return "CLOSED_ERROR"
	case ErrorTypeConfiguration:
		return "CONFIGURATION_ERROR"
	default:
		return "UNKNOWN_ERROR"
	}
}

type SDKError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *SDKError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type.String(), e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type.String(), e.Message)
}

func (e *SDKError) Unwrap() error {
	return e.Cause
}

func New(errorType ErrorType, message string) *SDKError {
	return &SDKError{
		Type:    errorType,
		Message: message,
	}
}

func Wrap(errorType ErrorType, message string, cause error) *SDKError {
	return &SDKError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
	}
}

// Caller Error Constructors
func NewValidationError(message string) *SDKError {
	return New(ErrorTypeValidation, message)
}

// External Error Constructors
func NewFetchError(message string, cause error) *SDKError {
	return Wrap(ErrorTypeFetch, message, cause)
}

func NewMalformedDataError(message string) *SDKError {
	return New(ErrorTypeMalformedData, message)
}

// Lifecycle/Configuration Error Constructors
func NewClosedError(message string) *SDKError {
	return New(ErrorTypeClosed, message)
}

func NewConfigurationError(message string, cause error) *SDKError {
	return Wrap(ErrorTypeConfiguration, message, cause)
}

// Helper functions for error type checking
func IsValidationError(err error) bool {
	if sdkErr, ok := err.(*SDKError); ok {
		return sdkErr.Type == ErrorTypeValidation
	}
	return false
}

func IsFetchError(err error) bool {
	if sdkErr, ok := err.(*SDKError); ok {
		return sdkErr.Type == ErrorTypeFetch
	}
	return false
}

func IsMalformedDataError(err error) bool {
	if sdkErr, ok := err.(*SDKError); ok {
		return sdkErr.Type == ErrorTypeMalformedData
	}
	return false
}

func IsClosedError(err error) bool {
	if sdkErr, ok := err.(*SDKError); ok {
		return sdkErr.Type == ErrorTypeClosed
	}
	return false
}

func IsConfigurationError(err error) bool {
	if sdkErr, ok := err.(*SDKError); ok {
		return sdkErr.Type == ErrorTypeConfiguration
	}
	return false
}
