package httpclient

import (
	"net/http"
	"time"

	"order-console/internal/core/events"
	"order-console/internal/core/proxy"
)

// HeaderCorrelationID is read from outgoing requests to tag wire events.
const HeaderCorrelationID = "X-Correlation-ID"

// EventRoundTripper reports every request it executes to an events.Emitter.
type EventRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
	// Emitter receives the started, completed and failed events.
	Emitter events.Emitter
}

// RoundTrip executes the request and emits its lifecycle events.
func (rt *EventRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	em := events.OrNop(rt.Emitter)
	ctx := req.Context()
	base := events.Event{
		Method:        req.Method,
		URL:           req.URL.String(),
		CorrelationID: req.Header.Get(HeaderCorrelationID),
	}

	start := time.Now()

	started := base
	started.Name = events.RequestStarted
	started.Level = events.LevelDebug
	em.Emit(ctx, started)

	resp, err := rt.Proxied.RoundTrip(req)

	done := base
	done.Duration = time.Since(start)

	if err != nil {
		done.Name = events.RequestFailed
		done.Level = events.LevelError
		done.Err = err
		em.Emit(ctx, done)
		return nil, err
	}

	done.Name = events.RequestCompleted
	done.Level = events.LevelDebug
	done.StatusCode = resp.StatusCode
	em.Emit(ctx, done)

	return resp, nil
}

// NewClient returns an http.Client that routes through the configured proxy
// and reports each request to emitter.
func NewClient(timeout time.Duration, settings proxy.Settings, emitter events.Emitter) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = settings.ProxyFunc()

	return &http.Client{
		Transport: &EventRoundTripper{
			Proxied: transport,
			Emitter: emitter,
		},
		Timeout: timeout,
	}
}
