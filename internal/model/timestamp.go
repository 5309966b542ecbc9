package model

import (
    "database/sql/driver"
    "fmt"
    "strings"
    "time"
)

// TimestampLayout is the second-precision layout used for reservation
// timestamps.  A literal "Z" is appended on output.
const TimestampLayout = "2006-01-02T15:04:05"

// Timestamp is a UTC instant rendered as YYYY-MM-DDTHH:MM:SSZ.  It
// never carries a numeric offset or fractional seconds.
type Timestamp struct {
    time.Time
}

// NewTimestamp converts t to UTC and drops sub-second precision.
func NewTimestamp(t time.Time) Timestamp {
    return Timestamp{Time: t.UTC().Truncate(time.Second)}
}

// String formats the timestamp exactly as it is serialized.
func (t Timestamp) String() string {
    return t.Time.UTC().Format(TimestampLayout) + "Z"
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
    return []byte(`"` + t.String() + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
    s := strings.Trim(string(b), `"`)
    if s == "" || s == "null" {
        t.Time = time.Time{}
        return nil
    }
    parsed, err := time.Parse(TimestampLayout, strings.TrimSuffix(s, "Z"))
    if err != nil {
        return fmt.Errorf("timestamp %q: %w", s, err)
    }
    t.Time = parsed.UTC()
    return nil
}

// Scan implements sql.Scanner for DATETIME columns read with parseTime=true.
func (t *Timestamp) Scan(src any) error {
    switch v := src.(type) {
    case time.Time:
        *t = NewTimestamp(v)
        return nil
    case nil:
        t.Time = time.Time{}
        return nil
    }
    return fmt.Errorf("timestamp: cannot scan %T", src)
}

// Value implements driver.Valuer.
func (t Timestamp) Value() (driver.Value, error) {
    return t.Time.UTC(), nil
}
