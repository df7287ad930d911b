package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// timeLayouts are the serializations the backend actually emits: RFC3339,
// timezone-less ISO-8601 with optional fractional seconds, and bare dates.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

// Time normalizes record timestamps. The backend serializes naive datetimes
// ("2026-08-30T12:34:56.789012") and bare dates ("2026-08-30") alongside
// RFC3339, so parsing must accept all three forms. Zone-less values are read
// as UTC.
type Time struct {
	time.Time
}

// NewTime wraps a time.Time.
func NewTime(t time.Time) Time {
	return Time{Time: t}
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(time.RFC3339Nano))
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}

	for _, layout := range timeLayouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unsupported timestamp %q", s)
}
