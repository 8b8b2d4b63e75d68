package date

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/cockroachdb/errors"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrUnparseable is returned when date text matches no known form.
	ErrUnparseable = errors.New("unparseable date text")
)

// =============================================================================
// Parsing
// =============================================================================

// Parse converts free-form date text to a time.
//
// Recognized forms:
//   - relative text resolved against now: "now", "today", "noon",
//     "tomorrow 10:00", "+1 day", "3 weeks ago", "next monday", "last year"
//   - "@1700000000" (Unix seconds, always UTC)
//   - any layout dateparse understands: ISO 8601, RFC 1123/2822,
//     "2006-01-02 15:04:05", "01/02/2006", "Jan 2, 2006", Unix timestamps
//
// Text without an explicit offset is interpreted in loc. A nil loc uses
// the location of now. The now argument keeps Parse pure.
func Parse(text string, now time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = now.Location()
	}
	now = now.In(loc)

	s := strings.TrimSpace(text)
	if s == "" {
		return time.Time{}, errors.Mark(errors.New("empty date text"), ErrUnparseable)
	}

	if t, ok := parseRelative(s, now); ok {
		return t, nil
	}

	if strings.HasPrefix(s, "@") {
		sec, err := strconv.ParseInt(s[1:], 10, 64)
		if err != nil {
			return time.Time{}, errors.Mark(errors.Wrapf(err, "parse timestamp %q", text), ErrUnparseable)
		}
		return time.Unix(sec, 0).UTC(), nil
	}

	t, err := dateparse.ParseIn(s, loc)
	if err != nil {
		return time.Time{}, errors.Mark(errors.Wrapf(err, "parse date %q", text), ErrUnparseable)
	}
	return t, nil
}
