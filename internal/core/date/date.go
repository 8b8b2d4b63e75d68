// Package date parses free-form date text and renders PHP-style date formats.
//
// This package is part of the functional core. Nothing here reads the
// system clock: callers pass "now" in, so every function is pure.
//
// # Functions
//
//   - Parse: strtotime-like parsing of date text
//   - Format: date()-compatible rendering of format characters
//   - Date: a time value that carries its location and renders itself
//
// # Usage
//
//	t, err := date.Parse("2024-01-15 10:30:00", time.Now(), time.UTC)
//	s := date.Format(t, "D, d M Y")  // "Mon, 15 Jan 2024"
package date

import "time"

// =============================================================================
// Date Value
// =============================================================================

// Date is a point in time in a fixed location, formatted with PHP tokens.
type Date struct {
	t time.Time
}

// New wraps t.
func New(t time.Time) Date {
	return Date{t: t}
}

// ParseDate parses text into a Date. Empty text and "0" are unset and
// yield now.
func ParseDate(text string, now time.Time, loc *time.Location) (Date, error) {
	if text == "" || text == "0" {
		if loc != nil {
			now = now.In(loc)
		}
		return New(now), nil
	}
	t, err := Parse(text, now, loc)
	if err != nil {
		return Date{}, err
	}
	return New(t), nil
}

// Time returns the underlying time.
func (d Date) Time() time.Time {
	return d.t
}

// Location returns the timezone of the date.
func (d Date) Location() *time.Location {
	return d.t.Location()
}

// In returns the same instant in loc.
func (d Date) In(loc *time.Location) Date {
	return Date{t: d.t.In(loc)}
}

// Timestamp returns Unix seconds.
func (d Date) Timestamp() int64 {
	return d.t.Unix()
}

// Format renders the date with PHP format characters. See Format.
func (d Date) Format(format string) string {
	return Format(d.t, format)
}

// ToDateString renders "Y-m-d".
func (d Date) ToDateString() string {
	return d.Format("Y-m-d")
}

// ToDateTimeString renders "Y-m-d H:i:s".
func (d Date) ToDateTimeString() string {
	return d.Format(DefaultFormat)
}

// ToISO8601String renders "c", e.g. "2024-01-15T10:30:00+00:00".
func (d Date) ToISO8601String() string {
	return d.Format("c")
}

// String implements fmt.Stringer using DefaultFormat.
func (d Date) String() string {
	return d.ToDateTimeString()
}
