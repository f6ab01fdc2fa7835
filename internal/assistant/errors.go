package assistant

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"develevate/internal/core"
)

// LLMError represents a failed generation request.
type LLMError struct {
	// Type categorizes the error
	Type string

	// Message is a human-readable error message
	Message string

	// Code is the HTTP status code (if applicable)
	Code int

	// Err is the underlying error
	Err error
}

// Error types.
const (
	ErrorTypeNetwork = "network"
	ErrorTypeAPI     = "api"
	ErrorTypeTimeout = "timeout"
	ErrorTypeParse   = "parse"
)

func (e *LLMError) Error() string {
	if e.Code > 0 {
		return fmt.Sprintf("LLM %s error (code %d): %s", e.Type, e.Code, e.Message)
	}
	return fmt.Sprintf("LLM %s error: %s", e.Type, e.Message)
}

func (e *LLMError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a network error.
func NewNetworkError(err error) *LLMError {
	return &LLMError{
		Type:    ErrorTypeNetwork,
		Message: "failed to reach the Gemini API",
		Err:     err,
	}
}

// NewAPIError creates an API error with status code.
func NewAPIError(code int, message string, err error) *LLMError {
	return &LLMError{
		Type:    ErrorTypeAPI,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *LLMError {
	return &LLMError{
		Type:    ErrorTypeTimeout,
		Message: "request timed out, the model may be under heavy load",
		Err:     err,
	}
}

// NewParseError creates a parse error.
func NewParseError(message string, err error) *LLMError {
	return &LLMError{
		Type:    ErrorTypeParse,
		Message: message,
		Err:     err,
	}
}

// classify maps a genai failure against endpoint onto an LLMError.
// Cancellation is returned unchanged so callers can compare it with ctx.Err().
func classify(err error, endpoint string) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewTimeoutError(err)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return NewAPIError(apiErr.Code, apiErr.Message, err)
	}

	return NewNetworkError(&core.NetworkError{
		Operation: "generateContent",
		URL:       endpoint,
		Message:   err.Error(),
		Err:       err,
	})
}
