// Package timex provides a time.Time alias with a stable JSON wire format.
package timex

import (
	"database/sql/driver"
	"time"
)

// Time marshals to RFC3339 with millisecond precision, matching the
// timestamps the web client writes into the remote backup file.
type Time time.Time

const layout = "2006-01-02T15:04:05.000Z07:00"

func Now() Time {
	return Time(time.Now())
}

func (t Time) MarshalJSON() ([]byte, error) {
	b := make([]byte, 0, len(layout)+2)
	b = append(b, '"')
	b = time.Time(t).AppendFormat(b, layout)
	b = append(b, '"')
	return b, nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	if len(data) == 2 || string(data) == "null" {
		*t = Time(time.Time{})
		return nil
	}
	parsed, err := time.Parse(`"`+time.RFC3339+`"`, string(data))
	if err != nil {
		// Millisecond form written by the web client.
		parsed, err = time.Parse(`"`+layout+`"`, string(data))
		if err != nil {
			return err
		}
	}
	*t = Time(parsed)
	return nil
}

func (t Time) Value() (driver.Value, error) {
	return time.Time(t), nil
}

func (t *Time) Scan(v interface{}) error {
	if value, ok := v.(time.Time); ok {
		*t = Time(value)
	}
	return nil
}

func (t Time) Time() time.Time {
	return time.Time(t)
}

func (t Time) String() string {
	return time.Time(t).Format(layout)
}
