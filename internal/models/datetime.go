package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DateTimeLayout is the wire format for posting timestamps, both in API JSON
// bodies and in web form submissions.
const DateTimeLayout = "2006-01-02 15:04:05"

// DateTime is a timestamp serialized as "YYYY-MM-DD HH:MM:SS" with no zone
// marker. Values are interpreted in the server's local time.
type DateTime struct {
	time.Time
}

func NewDateTime(t time.Time) DateTime {
	return DateTime{Time: t.Truncate(time.Second)}
}

// ParseDateTime accepts the canonical layout and, as a convenience for web
// form input, the HTML datetime-local format.
func ParseDateTime(value string) (DateTime, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(DateTimeLayout, value, time.Local); err == nil {
		return DateTime{Time: t}, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.Local); err == nil {
		return DateTime{Time: t}, nil
	}
	if t, err := time.ParseInLocation("2006-01-02T15:04", value, time.Local); err == nil {
		return DateTime{Time: t}, nil
	}
	return DateTime{}, fmt.Errorf("invalid datetime %q, expected %s", value, DateTimeLayout)
}

func (d DateTime) String() string {
	return d.Format(DateTimeLayout)
}

func (d DateTime) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateTimeLayout) + `"`), nil
}

func (d *DateTime) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" || s == "" {
		*d = DateTime{}
		return nil
	}
	parsed, err := ParseDateTime(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DateTime) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *DateTime) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*d = DateTime{}
	case time.Time:
		*d = DateTime{Time: v}
	case string:
		parsed, err := ParseDateTime(v)
		if err != nil {
			return err
		}
		*d = parsed
	case []byte:
		parsed, err := ParseDateTime(string(v))
		if err != nil {
			return err
		}
		*d = parsed
	default:
		return fmt.Errorf("cannot scan %T into DateTime", value)
	}
	return nil
}
