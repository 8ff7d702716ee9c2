package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Layout is the zone-less timestamp format used on the wire
// ("2006-01-02T15:04:05", seconds precision, no offset).
const Layout = "2006-01-02T15:04:05"

// LocalTime is a timestamp serialized without a zone offset. The extraction
// model and the HTTP clients both speak this format; RFC3339 input is
// tolerated on the way in.
type LocalTime struct {
	time.Time
}

// NewLocalTime wraps a time.Time truncated to seconds precision
func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{t.Truncate(time.Second)}
}

// ParseLocalTime parses a wire timestamp, accepting the zone-less layout
// first and RFC3339 as a fallback
func ParseLocalTime(s string) (LocalTime, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(Layout, s); err == nil {
		return LocalTime{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return LocalTime{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return LocalTime{t}, nil
}

// String returns the wire representation
func (lt LocalTime) String() string {
	return lt.Format(Layout)
}

// MarshalJSON implements json.Marshaler
func (lt LocalTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + lt.Format(Layout) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (lt *LocalTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := ParseLocalTime(s)
	if err != nil {
		return err
	}
	*lt = parsed
	return nil
}

// Value implements driver.Valuer
func (lt LocalTime) Value() (driver.Value, error) {
	return lt.Time, nil
}

// Scan implements sql.Scanner
func (lt *LocalTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case time.Time:
		lt.Time = v
		return nil
	case string:
		parsed, err := ParseLocalTime(v)
		if err != nil {
			return err
		}
		*lt = parsed
		return nil
	case []byte:
		parsed, err := ParseLocalTime(string(v))
		if err != nil {
			return err
		}
		*lt = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into LocalTime", value)
	}
}

// Hours returns the span between two timestamps in fractional hours,
// computed at whole-minute granularity
func Hours(start, end LocalTime) float64 {
	minutes := end.Sub(start.Time) / time.Minute
	return float64(minutes) / 60.0
}
