package date

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// PHP-style Format Tokens
// =============================================================================

// DefaultFormat renders a date as "2006-01-02 15:04:05".
const DefaultFormat = "Y-m-d H:i:s"

// Format renders t using PHP date() format characters.
//
// Supported tokens:
//
//	Day:      d D j l N S w z
//	Week:     W
//	Month:    F m M n t
//	Year:     L o X x Y y
//	Time:     a A B g G h H i s u v
//	Timezone: e I O P p T Z
//	Full:     c r U
//
// A backslash makes the next character literal. Any other character is
// copied as-is.
//
// Example:
//
//	Format(t, "Y-m-d H:i:s")  // "2024-01-15 10:30:00"
//	Format(t, "l jS \\of F")  // "Monday 15th of January"
func Format(t time.Time, format string) string {
	var b strings.Builder
	b.Grow(len(format) * 2)

	escaped := false
	for _, r := range format {
		if escaped {
			b.WriteRune(r)
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		if !writeToken(&b, t, r) {
			b.WriteRune(r)
		}
	}
	if escaped {
		b.WriteByte('\\')
	}
	return b.String()
}

// writeToken renders a single format character and reports whether it was a token.
func writeToken(b *strings.Builder, t time.Time, r rune) bool {
	switch r {
	// Day
	case 'd':
		fmt.Fprintf(b, "%02d", t.Day())
	case 'D':
		b.WriteString(t.Weekday().String()[:3])
	case 'j':
		b.WriteString(strconv.Itoa(t.Day()))
	case 'l':
		b.WriteString(t.Weekday().String())
	case 'N':
		b.WriteString(strconv.Itoa(isoWeekday(t)))
	case 'S':
		b.WriteString(ordinalSuffix(t.Day()))
	case 'w':
		b.WriteString(strconv.Itoa(int(t.Weekday())))
	case 'z':
		b.WriteString(strconv.Itoa(t.YearDay() - 1))

	// Week
	case 'W':
		_, week := t.ISOWeek()
		fmt.Fprintf(b, "%02d", week)

	// Month
	case 'F':
		b.WriteString(t.Month().String())
	case 'm':
		fmt.Fprintf(b, "%02d", int(t.Month()))
	case 'M':
		b.WriteString(t.Month().String()[:3])
	case 'n':
		b.WriteString(strconv.Itoa(int(t.Month())))
	case 't':
		b.WriteString(strconv.Itoa(daysInMonth(t)))

	// Year
	case 'L':
		if isLeap(t.Year()) {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	case 'o':
		year, _ := t.ISOWeek()
		b.WriteString(strconv.Itoa(year))
	case 'X':
		fmt.Fprintf(b, "%+05d", t.Year())
	case 'x':
		if y := t.Year(); y < 0 || y >= 10000 {
			fmt.Fprintf(b, "%+05d", y)
		} else {
			fmt.Fprintf(b, "%04d", y)
		}
	case 'Y':
		if y := t.Year(); y < 0 {
			fmt.Fprintf(b, "-%04d", -y)
		} else {
			fmt.Fprintf(b, "%04d", y)
		}
	case 'y':
		y := t.Year() % 100
		if y < 0 {
			y = -y
		}
		fmt.Fprintf(b, "%02d", y)

	// Time
	case 'a':
		if t.Hour() < 12 {
			b.WriteString("am")
		} else {
			b.WriteString("pm")
		}
	case 'A':
		if t.Hour() < 12 {
			b.WriteString("AM")
		} else {
			b.WriteString("PM")
		}
	case 'B':
		fmt.Fprintf(b, "%03d", swatchBeat(t))
	case 'g':
		b.WriteString(strconv.Itoa(hour12(t)))
	case 'G':
		b.WriteString(strconv.Itoa(t.Hour()))
	case 'h':
		fmt.Fprintf(b, "%02d", hour12(t))
	case 'H':
		fmt.Fprintf(b, "%02d", t.Hour())
	case 'i':
		fmt.Fprintf(b, "%02d", t.Minute())
	case 's':
		fmt.Fprintf(b, "%02d", t.Second())
	case 'u':
		fmt.Fprintf(b, "%06d", t.Nanosecond()/int(time.Microsecond))
	case 'v':
		fmt.Fprintf(b, "%03d", t.Nanosecond()/int(time.Millisecond))

	// Timezone
	case 'e':
		b.WriteString(t.Location().String())
	case 'I':
		if t.IsDST() {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	case 'O':
		b.WriteString(offset(t, false))
	case 'P':
		b.WriteString(offset(t, true))
	case 'p':
		if _, off := t.Zone(); off == 0 {
			b.WriteByte('Z')
		} else {
			b.WriteString(offset(t, true))
		}
	case 'T':
		name, _ := t.Zone()
		if name == "" || name[0] == '+' || name[0] == '-' {
			name = offset(t, true)
		}
		b.WriteString(name)
	case 'Z':
		_, off := t.Zone()
		b.WriteString(strconv.Itoa(off))

	// Full date/time
	case 'c':
		b.WriteString(Format(t, `Y-m-d\TH:i:sP`))
	case 'r':
		b.WriteString(Format(t, "D, d M Y H:i:s O"))
	case 'U':
		b.WriteString(strconv.FormatInt(t.Unix(), 10))

	default:
		return false
	}
	return true
}

// =============================================================================
// Calendar Helpers
// =============================================================================

func isoWeekday(t time.Time) int {
	if wd := int(t.Weekday()); wd != 0 {
		return wd
	}
	return 7
}

func ordinalSuffix(day int) string {
	if day >= 11 && day <= 13 {
		return "th"
	}
	switch day % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	}
	return "th"
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func hour12(t time.Time) int {
	if h := t.Hour() % 12; h != 0 {
		return h
	}
	return 12
}

// swatchBeat returns Swatch Internet Time, which counts thousandths of a day in UTC+1.
func swatchBeat(t time.Time) int {
	sec := (t.Unix() + 3600) % 86400
	if sec < 0 {
		sec += 86400
	}
	return int(sec*10/864) % 1000
}

// offset renders the UTC offset as +0200, or +02:00 when colon is set.
func offset(t time.Time, colon bool) string {
	_, off := t.Zone()
	sign := '+'
	if off < 0 {
		sign = '-'
		off = -off
	}
	hours, minutes := off/3600, (off%3600)/60
	if colon {
		return fmt.Sprintf("%c%02d:%02d", sign, hours, minutes)
	}
	return fmt.Sprintf("%c%02d%02d", sign, hours, minutes)
}
