package apierror

import (
	"fmt"
)

// StructuredError is a >=400 response whose body honors the canonical contract.
type StructuredError struct {
	StatusCode int
	Body       CanonicalError
}

func (e *StructuredError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Body.Code, FormatForDisplay(e.Body))
}

// NetworkError is a request that was sent but got no response.
type NetworkError struct {
	Err           error
	CorrelationID string
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RequestError is a request that could not be built or was rejected before sending.
type RequestError struct {
	Err           error
	CorrelationID string
	FieldErrors   []FieldError
}

func (e *RequestError) Error() string {
	if e.Err == nil {
		return "Failed to make request"
	}
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ResponseError is a >=400 response whose body does not honor the contract.
type ResponseError struct {
	StatusCode    int
	Body          []byte
	CorrelationID string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("unexpected response status %d", e.StatusCode)
}

// Error is a normalized failure as returned by the stores. It displays as the
// canonical error and unwraps to the raw failure.
type Error struct {
	Canonical CanonicalError
	Cause     error
}

func (e *Error) Error() string {
	return FormatForDisplay(e.Canonical)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}
