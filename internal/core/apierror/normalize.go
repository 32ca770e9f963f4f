package apierror

import (
	"context"
	"errors"
	"time"
)

type locationKey struct{}

// WithLocation attaches the UI location that Normalize reports as Path.
func WithLocation(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, locationKey{}, path)
}

// LocationFrom returns the UI location attached by WithLocation.
func LocationFrom(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	path, _ := ctx.Value(locationKey{}).(string)
	return path
}

// Normalizer maps failures onto CanonicalError.
type Normalizer struct {
	// Now stamps client-side errors. Defaults to time.Now.
	Now func() time.Time
}

var defaultNormalizer = Normalizer{}

// Normalize maps err with the default Normalizer.
func Normalize(ctx context.Context, err error) CanonicalError {
	return defaultNormalizer.Normalize(ctx, err)
}

// Normalize maps any error, including nil, onto the canonical contract. It never panics.
//
// Already-canonical failures (*Error, *StructuredError) are returned verbatim. Network
// failures become NETWORK_ERROR with status 0, request failures REQUEST_ERROR, and
// everything else UNKNOWN.
func (n Normalizer) Normalize(ctx context.Context, err error) CanonicalError {
	var normalized *Error
	if errors.As(err, &normalized) && normalized != nil {
		return normalized.Canonical
	}

	var structured *StructuredError
	if errors.As(err, &structured) && structured != nil {
		return structured.Body
	}

	c := CanonicalError{
		Timestamp: n.timestamp(),
		Path:      LocationFrom(ctx),
	}

	var network *NetworkError
	var request *RequestError
	var response *ResponseError
	switch {
	case errors.As(err, &network) && network != nil:
		c.Status = 0
		c.Label = "Network Error"
		c.Code = CodeNetwork
		c.Message = "Unable to connect to the server"
		c.CorrelationID = network.CorrelationID
	case errors.As(err, &request) && request != nil:
		c.Status = 500
		c.Label = "Request Error"
		c.Code = CodeRequest
		c.Message = messageOr(request, "Failed to make request")
		c.CorrelationID = request.CorrelationID
		if len(request.FieldErrors) > 0 {
			c.FieldErrors = append([]FieldError(nil), request.FieldErrors...)
		}
	default:
		c.Status = 500
		c.Label = "Internal Error"
		c.Code = CodeUnknown
		c.Message = messageOr(err, "An unknown error occurred")
		if errors.As(err, &response) && response != nil {
			c.CorrelationID = response.CorrelationID
		}
	}
	return c
}

func (n Normalizer) timestamp() string {
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	return now().UTC().Format(TimestampLayout)
}

// messageOr returns err.Error(), or fallback when err is nil, panics or has no text.
func messageOr(err error, fallback string) (msg string) {
	if err == nil {
		return fallback
	}
	defer func() {
		if recover() != nil {
			msg = fallback
		}
	}()
	if msg = err.Error(); msg == "" {
		return fallback
	}
	return msg
}
