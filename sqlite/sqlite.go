package sqlite

import (
	"fmt"
	"time"
)

// timestampLayout matches sqlite's datetime('now', 'localtime').
const timestampLayout = "2006-01-02 15:04:05"

type scannable interface {
	Scan(...any) error
}

func formatTimestamp(t time.Time) string {
	return t.Local().Format(timestampLayout)
}

// datetime scans a nullable DATETIME column holding local wall clock text.
// The driver hands DATETIME text back parsed as UTC, so a UTC value is
// re-read in the local zone.
type datetime struct {
	Time  time.Time
	Valid bool
}

func (d *datetime) Scan(v any) error {
	switch v := v.(type) {
	case nil:
		d.Time, d.Valid = time.Time{}, false
		return nil
	case time.Time:
		if v.Location() == time.UTC {
			v = time.Date(v.Year(), v.Month(), v.Day(), v.Hour(), v.Minute(), v.Second(), v.Nanosecond(), time.Local)
		}
		d.Time, d.Valid = v.Local(), true
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	default:
		return fmt.Errorf("unsupported datetime value %T", v)
	}
}

func (d *datetime) parse(s string) error {
	t, err := time.ParseInLocation(timestampLayout, s, time.Local)
	if err != nil {
		return fmt.Errorf("failed to parse datetime %q: %w", s, err)
	}
	d.Time, d.Valid = t, true
	return nil
}
