package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Month is a value object representing a calendar month (year + month).
// It is the resolution at which rent is tracked: every reference date in
// the ledger is normalized to the first day of its month.
type Month struct {
	year  int
	month time.Month
}

// NewMonth creates a Month from a year and month number
func NewMonth(year int, month time.Month) (Month, error) {
	if month < time.January || month > time.December {
		return Month{}, fmt.Errorf("invalid month number: %d", month)
	}
	if year < 1 {
		return Month{}, fmt.Errorf("invalid year: %d", year)
	}
	return Month{year: year, month: month}, nil
}

// MonthOf returns the Month containing the given time
func MonthOf(t time.Time) Month {
	return Month{year: t.Year(), month: t.Month()}
}

// ParseMonth parses a "YYYY-MM" or "YYYY-MM-DD" string into a Month.
// Full dates are normalized to their month.
func ParseMonth(s string) (Month, error) {
	if t, err := time.Parse("2006-01", s); err == nil {
		return MonthOf(t), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return MonthOf(t), nil
	}
	return Month{}, fmt.Errorf("invalid month format %q, expected YYYY-MM or YYYY-MM-DD", s)
}

// Year returns the calendar year
func (m Month) Year() int {
	return m.year
}

// Month returns the month number
func (m Month) Month() time.Month {
	return m.month
}

// IsZero returns true for the zero-value Month
func (m Month) IsZero() bool {
	return m.year == 0 && m.month == 0
}

// Date returns the first day of the month in UTC
func (m Month) Date() time.Time {
	return time.Date(m.year, m.month, 1, 0, 0, 0, 0, time.UTC)
}

// Next returns the following month, rolling over the year after December
func (m Month) Next() Month {
	if m.month == time.December {
		return Month{year: m.year + 1, month: time.January}
	}
	return Month{year: m.year, month: m.month + 1}
}

// Prev returns the preceding month
func (m Month) Prev() Month {
	if m.month == time.January {
		return Month{year: m.year - 1, month: time.December}
	}
	return Month{year: m.year, month: m.month - 1}
}

// Before reports whether m is strictly earlier than other
func (m Month) Before(other Month) bool {
	if m.year != other.year {
		return m.year < other.year
	}
	return m.month < other.month
}

// After reports whether m is strictly later than other
func (m Month) After(other Month) bool {
	return other.Before(m)
}

// Equals reports whether both values denote the same month
func (m Month) Equals(other Month) bool {
	return m.year == other.year && m.month == other.month
}

// String returns the canonical "YYYY-MM" form
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.year, int(m.month))
}

// MonthsBetween returns every month from first to last inclusive, in
// ascending order. Returns nil when last is before first.
func MonthsBetween(first, last Month) []Month {
	if last.Before(first) {
		return nil
	}
	months := make([]Month, 0, 12)
	for m := first; !m.After(last); m = m.Next() {
		months = append(months, m)
	}
	return months
}

// MarshalJSON implements json.Marshaler using the "YYYY-MM" form
func (m Month) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON implements json.Unmarshaler
func (m *Month) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*m = Month{}
		return nil
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value implements driver.Valuer, storing the first day of the month
func (m Month) Value() (driver.Value, error) {
	if m.IsZero() {
		return nil, nil
	}
	return m.Date(), nil
}

// Scan implements sql.Scanner
func (m *Month) Scan(value any) error {
	if value == nil {
		*m = Month{}
		return nil
	}
	switch v := value.(type) {
	case time.Time:
		*m = MonthOf(v)
		return nil
	case string:
		return m.scanString(v)
	case []byte:
		return m.scanString(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Month", value)
	}
}

func (m *Month) scanString(s string) error {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05-07:00", "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			*m = MonthOf(t)
			return nil
		}
	}
	parsed, err := ParseMonth(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
