package task

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

var (
	// layouts carrying an explicit zone ("Z" or an offset)
	zonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05Z0700",
		"2006-01-02 15:04:05Z07:00",
	}
	// zone-less layouts, interpreted in local time
	localLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04",
		"2006-01-02",
	}
)

// Timestamp is a backend date as received (Raw) and as understood (Time).
// A Timestamp whose Raw value could not be parsed is an unknown date: Valid() is false.
type Timestamp struct {
	Time time.Time
	Raw  string
}

// ParseTimestamp never fails. Values without an explicit zone are local time.
func ParseTimestamp(raw string) Timestamp {
	raw = strings.TrimSpace(raw)
	ts := Timestamp{Raw: raw}
	if raw == "" {
		return ts
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			ts.Time = t
			return ts
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			ts.Time = t
			return ts
		}
	}
	return ts
}

func TimestampFrom(t time.Time) Timestamp {
	if t.IsZero() {
		return Timestamp{}
	}
	return Timestamp{Time: t, Raw: t.Format(time.RFC3339)}
}

func (ts Timestamp) Valid() bool  { return !ts.Time.IsZero() }
func (ts Timestamp) IsNull() bool { return ts.Raw == "" }

func (ts Timestamp) Before(other Timestamp) bool {
	return ts.Valid() && other.Valid() && ts.Time.Before(other.Time)
}

func (ts Timestamp) After(other Timestamp) bool {
	return ts.Valid() && other.Valid() && ts.Time.After(other.Time)
}

func (ts Timestamp) String() string { return ts.Raw }

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsNull() {
		return []byte("null"), nil
	}
	return json.Marshal(ts.Raw)
}

// UnmarshalJSON tolerates null, strings and any other scalar; it never returns an error so a
// single bad date cannot fail decoding of a whole task list.
func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*ts = Timestamp{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		*ts = Timestamp{Raw: string(b)}
		return nil
	}
	*ts = ParseTimestamp(raw)
	return nil
}
