// Package events defines the structured, leveled events the API client and stores emit.
// Sinks (logging, metrics) implement Emitter; the core never talks to a sink directly.
package events

import (
	"context"
	"time"
)

// Level is the severity of an event.
type Level int8

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the lowercase level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// Event names emitted by the client layer.
const (
	RequestStarted         = "http.request.started"
	RequestCompleted       = "http.request.completed"
	RequestFailed          = "http.request.failed"
	SessionInvalidated     = "session.invalidated"
	OperationFailed        = "store.operation.failed"
	StaleResponseDiscarded = "store.response.discarded"
)

// Event is a single observation. Only the fields relevant to Name are set.
type Event struct {
	// Name identifies what happened (see the constants above).
	Name string
	// Level is the severity.
	Level Level
	// Method is the HTTP method of the request, if any.
	Method string
	// URL is the absolute request URL, if any.
	URL string
	// StatusCode is the HTTP status received, zero when no response arrived.
	StatusCode int
	// CorrelationID is the id sent with (or echoed for) the request.
	CorrelationID string
	// Duration is the elapsed time of the request or operation.
	Duration time.Duration
	// Store and Operation identify the store call that produced the event.
	Store     string
	Operation string
	// Code is the canonical error code for failures.
	Code string
	// Err is the underlying error, if any.
	Err error
}

// Emitter receives events. Implementations must be safe for concurrent use and must not block.
type Emitter interface {
	Emit(ctx context.Context, e Event)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(ctx context.Context, e Event)

// Emit calls f(ctx, e).
func (f EmitterFunc) Emit(ctx context.Context, e Event) {
	f(ctx, e)
}

// Multi fans an event out to every emitter in order.
type Multi []Emitter

// Emit forwards e to all emitters.
func (m Multi) Emit(ctx context.Context, e Event) {
	for _, em := range m {
		if em != nil {
			em.Emit(ctx, e)
		}
	}
}

// Nop discards every event.
type Nop struct{}

// Emit does nothing.
func (Nop) Emit(context.Context, Event) {}

// OrNop returns e, or Nop when e is nil.
func OrNop(e Emitter) Emitter {
	if e == nil {
		return Nop{}
	}
	return e
}
