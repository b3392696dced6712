package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil
	}

	if len(data) == 0 || string(data) == "null" {
		*s = nil
		return nil
	}

	return json.Unmarshal(data, s)
}

// ISOTimeLayout is the storage format for every timestamp column. Fixed width
// UTC text keeps lexical order equal to chronological order.
const ISOTimeLayout = "2006-01-02T15:04:05.000Z"

// ISOTime is a time.Time persisted as ISO-8601 UTC text with millisecond
// precision.
type ISOTime struct {
	time.Time
}

// NewISOTime truncates t to milliseconds in UTC.
func NewISOTime(t time.Time) ISOTime {
	return ISOTime{Time: t.UTC().Truncate(time.Millisecond)}
}

// Now returns the current time as an ISOTime.
func Now() ISOTime {
	return NewISOTime(time.Now())
}

// ParseISOTime accepts the storage layout and any RFC 3339 variant the
// content server sends.
func ParseISOTime(s string) (ISOTime, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{ISOTimeLayout, time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NewISOTime(t), nil
		}
	}
	return ISOTime{}, fmt.Errorf("invalid timestamp %q", s)
}

func (t ISOTime) String() string {
	return t.UTC().Format(ISOTimeLayout)
}

func (t ISOTime) Value() (driver.Value, error) {
	return t.String(), nil
}

func (t *ISOTime) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ISOTime{}
		return nil
	case time.Time:
		*t = NewISOTime(v)
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into ISOTime", value)
	}
}

func (t *ISOTime) parse(s string) error {
	if s == "" {
		*t = ISOTime{}
		return nil
	}
	parsed, err := ParseISOTime(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t ISOTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.String())
}

func (t *ISOTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ISOTime{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return t.parse(s)
}
