package domain

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// localLayout is the zone-less form the order API uses for dates.
const localLayout = "2006-01-02T15:04:05.999999999"

// Timestamp accepts the API's zone-less date form as well as RFC 3339.
// A zone-less value is read as UTC.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON parses "2006-01-02T15:04:05[.fff]", RFC 3339 or null.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	s := strings.Trim(string(b), `"`)
	if s == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := time.Parse(localLayout, s)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339Nano, s)
	}
	if err != nil {
		return fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	t.Time = parsed
	return nil
}

// MarshalJSON writes RFC 3339, or null for the zero time.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(time.RFC3339) + `"`), nil
}
