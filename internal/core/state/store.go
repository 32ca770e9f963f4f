// Package state holds observable resource state for the UI layer and runs API calls
// against it: loading on entry, payload or canonical error on settle.
package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"order-console/internal/core/apierror"
	"order-console/internal/core/events"
)

// Phase is the lifecycle position of a Resource.
type Phase string

const (
	PhaseIdle    Phase = "IDLE"
	PhaseLoading Phase = "LOADING"
	PhaseSuccess Phase = "SUCCESS"
	PhaseFailed  Phase = "FAILED"
)

// Resource is the observable state of one kind of API resource.
type Resource[T any] struct {
	Items   []T                      `json:"items"`
	Current *T                       `json:"current"`
	Loading bool                     `json:"loading"`
	Error   *apierror.CanonicalError `json:"error"`
	Phase   Phase                    `json:"phase"`
}

func (r Resource[T]) clone() Resource[T] {
	out := r
	out.Items = make([]T, len(r.Items))
	copy(out.Items, r.Items)
	if r.Current != nil {
		cur := *r.Current
		out.Current = &cur
	}
	if r.Error != nil {
		e := *r.Error
		e.FieldErrors = append([]apierror.FieldError(nil), r.Error.FieldErrors...)
		out.Error = &e
	}
	return out
}

// Operation names a store call. Calls sharing a non-empty Key supersede each other:
// only the most recently started one may commit.
type Operation struct {
	Name string
	Key  string
}

type options struct {
	normalizer apierror.Normalizer
	emitter    events.Emitter
}

// Option configures a Store.
type Option func(*options)

// WithNormalizer sets the normalizer used for failures.
func WithNormalizer(n apierror.Normalizer) Option {
	return func(o *options) { o.normalizer = n }
}

// WithEmitter sets the sink for failure and discard events.
func WithEmitter(e events.Emitter) Option {
	return func(o *options) { o.emitter = e }
}

// Store owns a Resource and serializes every transition on it.
type Store[T any] struct {
	name       string
	normalizer apierror.Normalizer
	emitter    events.Emitter

	mu      sync.Mutex
	state   Resource[T]
	seq     uint64
	latest  map[string]uint64
	subs    map[uint64]chan Resource[T]
	nextSub uint64
}

// New creates an idle Store with no items.
func New[T any](name string, opts ...Option) *Store[T] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[T]{
		name:       name,
		normalizer: o.normalizer,
		emitter:    events.OrNop(o.emitter),
		state:      Resource[T]{Items: []T{}, Phase: PhaseIdle},
		latest:     map[string]uint64{},
		subs:       map[uint64]chan Resource[T]{},
	}
}

// Name returns the store name used in events.
func (s *Store[T]) Name() string {
	return s.name
}

// Snapshot returns a copy of the current state.
func (s *Store[T]) Snapshot() Resource[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe returns a channel that always holds the latest state. Intermediate states
// are dropped when the reader falls behind. The returned func unsubscribes and closes the channel.
func (s *Store[T]) Subscribe() (<-chan Resource[T], func()) {
	ch := make(chan Resource[T], 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.state.clone()
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			close(ch)
			s.mu.Unlock()
		})
	}
}

// Update applies fn to the state in one transition.
func (s *Store[T]) Update(fn func(*Resource[T])) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.state)
	s.publishLocked()
}

// ClearError drops the recorded error. A failed store returns to idle.
func (s *Store[T]) ClearError() {
	s.Update(func(r *Resource[T]) {
		r.Error = nil
		if r.Phase == PhaseFailed {
			r.Phase = PhaseIdle
		}
	})
}

func (s *Store[T]) publishLocked() {
	snap := s.state.clone()
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- snap:
		default:
		}
	}
}

type ticket struct {
	seq        uint64
	prior      Phase
	priorError *apierror.CanonicalError
	start      time.Time
}

func (s *Store[T]) begin(op Operation) ticket {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := ticket{seq: s.seq, prior: s.state.Phase, priorError: s.state.Error, start: time.Now()}
	if op.Key != "" {
		s.latest[op.Key] = t.seq
	}
	s.state.Loading = true
	s.state.Error = nil
	s.state.Phase = PhaseLoading
	s.publishLocked()
	return t
}

// restoreLocked puts back the phase and error seen when t began. A call that began
// while another was loading settles to IDLE.
func (s *Store[T]) restoreLocked(t ticket) {
	switch {
	case t.prior == PhaseFailed && t.priorError != nil:
		s.state.Phase = PhaseFailed
		s.state.Error = t.priorError
	case t.prior == PhaseSuccess:
		s.state.Phase = PhaseSuccess
	default:
		s.state.Phase = PhaseIdle
	}
}

// Execute runs call against s.
//
// On success merge folds the payload into the state. On failure the error is normalized,
// recorded, and returned as *apierror.Error; items and current are left untouched.
// A call superseded by a newer one with the same key, or whose ctx was canceled, commits
// nothing but still returns its own result to the caller. A ctx deadline is a failure
// like any other and is recorded.
func Execute[T, R any](
	ctx context.Context,
	s *Store[T],
	op Operation,
	call func(context.Context) (R, error),
	merge func(*Resource[T], R),
) (R, error) {
	t := s.begin(op)

	res, err := call(ctx)

	var canonical *apierror.CanonicalError
	if err != nil {
		c := s.normalizer.Normalize(ctx, err)
		canonical = &c
		err = &apierror.Error{Canonical: c, Cause: err}
	}

	e := events.Event{
		Store:     s.name,
		Operation: op.Name,
		Duration:  time.Since(t.start),
	}

	s.mu.Lock()
	latest := op.Key == "" || s.latest[op.Key] == t.seq
	if latest && op.Key != "" {
		delete(s.latest, op.Key)
	}
	switch {
	case !latest:
		e.Name = events.StaleResponseDiscarded
		e.Level = events.LevelDebug
	case errors.Is(ctx.Err(), context.Canceled):
		s.state.Loading = false
		if s.state.Phase == PhaseLoading {
			s.restoreLocked(t)
		}
		s.publishLocked()
	case canonical != nil:
		s.state.Error = canonical
		s.state.Loading = false
		s.state.Phase = PhaseFailed
		s.publishLocked()

		e.Name = events.OperationFailed
		e.Level = events.LevelWarn
		e.Code = canonical.Code
		e.CorrelationID = canonical.CorrelationID
		e.Err = err
	default:
		if merge != nil {
			merge(&s.state, res)
		}
		s.state.Error = nil
		s.state.Loading = false
		s.state.Phase = PhaseSuccess
		s.publishLocked()
	}
	s.mu.Unlock()

	if e.Name != "" {
		s.emitter.Emit(ctx, e)
	}
	return res, err
}
