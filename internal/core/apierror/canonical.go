// Package apierror defines the canonical error contract shared with the order API,
// the typed failures the client produces, and the normalizer that maps any failure
// onto the contract.
package apierror

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// Codes produced on the client side. Server codes pass through untouched.
const (
	CodeNetwork = "NETWORK_ERROR"
	CodeRequest = "REQUEST_ERROR"
	CodeUnknown = "UNKNOWN"
)

// TimestampLayout is the format of CanonicalError.Timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// FieldError describes one rejected input field.
type FieldError struct {
	Field         string `json:"field"`
	Message       string `json:"message"`
	RejectedValue any    `json:"rejectedValue,omitempty"`
}

// CanonicalError is the uniform error shape returned by the API and produced by Normalize.
type CanonicalError struct {
	// Timestamp is when the error was produced (server or client clock).
	Timestamp string `json:"timestamp"`
	// Status is the HTTP status, 0 when no response was received.
	Status int `json:"status"`
	// Label is the short human label, e.g. "Not Found" or "Network Error".
	Label string `json:"error"`
	// Code is the machine-readable error code.
	Code string `json:"code"`
	// Message is the human-readable description.
	Message string `json:"message"`
	// Path is the request path (server) or UI location (client).
	Path string `json:"path"`
	// CorrelationID ties the error to the request that caused it.
	CorrelationID string `json:"correlationId,omitempty"`
	// FieldErrors lists validation failures, if any.
	FieldErrors []FieldError `json:"fieldErrors,omitempty"`
}

// ParseCanonical decodes body when it honors the contract: a JSON object carrying
// string "code" and "message" members.
func ParseCanonical(body []byte) (CanonicalError, bool) {
	if !gjson.ValidBytes(body) {
		return CanonicalError{}, false
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return CanonicalError{}, false
	}
	if doc.Get("code").Type != gjson.String || doc.Get("message").Type != gjson.String {
		return CanonicalError{}, false
	}

	var c CanonicalError
	if err := json.Unmarshal(body, &c); err != nil {
		return CanonicalError{}, false
	}
	return c, true
}

// FormatForDisplay renders the error for a user: the field errors as "field: message"
// joined by ", ", or the message when there are none.
func FormatForDisplay(c CanonicalError) string {
	if len(c.FieldErrors) == 0 {
		return c.Message
	}
	parts := make([]string, 0, len(c.FieldErrors))
	for _, fe := range c.FieldErrors {
		parts = append(parts, fe.Field+": "+fe.Message)
	}
	return strings.Join(parts, ", ")
}
