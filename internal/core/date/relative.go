package date

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// Relative Date Text
// =============================================================================

type unit int

const (
	unitSecond unit = iota
	unitMinute
	unitHour
	unitDay
	unitWeek
	unitFortnight
	unitMonth
	unitYear
)

var units = map[string]unit{
	"sec": unitSecond, "secs": unitSecond, "second": unitSecond, "seconds": unitSecond,
	"min": unitMinute, "mins": unitMinute, "minute": unitMinute, "minutes": unitMinute,
	"hour": unitHour, "hours": unitHour,
	"day": unitDay, "days": unitDay,
	"week": unitWeek, "weeks": unitWeek,
	"fortnight": unitFortnight, "fortnights": unitFortnight,
	"month": unitMonth, "months": unitMonth,
	"year": unitYear, "years": unitYear,
}

var weekdays = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday,
	"mon": time.Monday, "monday": time.Monday,
	"tue": time.Tuesday, "tues": time.Tuesday, "tuesday": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday,
	"thu": time.Thursday, "thur": time.Thursday, "thurs": time.Thursday, "thursday": time.Thursday,
	"fri": time.Friday, "friday": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday,
}

var (
	// "+1day" is split into "+1" and "day".
	numberWithUnit = regexp.MustCompile(`^([+-]?\d+)([a-z]+)$`)
	clockTime      = regexp.MustCompile(`^(\d{1,2}):(\d{2})(?::(\d{2}))?(am|pm)?$`)
	clockHour      = regexp.MustCompile(`^(\d{1,2})(am|pm)$`)
)

// relative accumulates the parts of a relative expression.
type relative struct {
	years, months, days int
	offset              time.Duration

	resetTime bool
	clock     *[3]int

	weekday    *time.Weekday
	weekdayDir int // 0 this, 1 next, -1 last
}

// parseRelative resolves strtotime-style relative text against now:
//
//	now, today, midnight, noon, tomorrow, yesterday
//	+1 day, -2 hours, 3 weeks, 1 week ago, +1 week 2 days
//	next monday, last friday, monday, next month, last year
//	tomorrow 10:00, yesterday 3pm, next monday 9:30am, today noon
//
// It reports false when text is not entirely relative.
func parseRelative(text string, now time.Time) (time.Time, bool) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return time.Time{}, false
	}

	var rel relative
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		switch tok {
		case "now":
			continue
		case "today", "midnight":
			rel.resetTime = true
			continue
		case "noon":
			rel.clock = &[3]int{12, 0, 0}
			continue
		case "tomorrow":
			rel.resetTime = true
			rel.days++
			continue
		case "yesterday":
			rel.resetTime = true
			rel.days--
			continue
		case "ago":
			rel.negate()
			continue
		case "next", "last", "this":
			if i+1 >= len(tokens) {
				return time.Time{}, false
			}
			dir := map[string]int{"next": 1, "last": -1, "this": 0}[tok]
			i++
			if wd, ok := weekdays[tokens[i]]; ok {
				rel.setWeekday(wd, dir)
				continue
			}
			if u, ok := units[tokens[i]]; ok {
				rel.add(dir, u)
				continue
			}
			return time.Time{}, false
		}

		if wd, ok := weekdays[tok]; ok {
			rel.setWeekday(wd, 0)
			continue
		}
		if clock, ok := parseClock(tok); ok {
			rel.clock = &clock
			continue
		}
		if n, err := strconv.Atoi(tok); err == nil {
			if i+1 >= len(tokens) {
				return time.Time{}, false
			}
			u, ok := units[tokens[i+1]]
			if !ok {
				return time.Time{}, false
			}
			i++
			rel.add(n, u)
			continue
		}
		return time.Time{}, false
	}

	return rel.resolve(now), true
}

func tokenize(text string) []string {
	var tokens []string
	for _, f := range strings.Fields(strings.ToLower(text)) {
		if m := numberWithUnit.FindStringSubmatch(f); m != nil {
			if _, ok := units[m[2]]; ok {
				tokens = append(tokens, m[1], m[2])
				continue
			}
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// parseClock reads "10:00", "10:00:30", "3:30pm" and "3pm".
func parseClock(tok string) ([3]int, bool) {
	var hour, minute, second int
	var meridiem string

	if m := clockTime.FindStringSubmatch(tok); m != nil {
		hour, _ = strconv.Atoi(m[1])
		minute, _ = strconv.Atoi(m[2])
		if m[3] != "" {
			second, _ = strconv.Atoi(m[3])
		}
		meridiem = m[4]
	} else if m := clockHour.FindStringSubmatch(tok); m != nil {
		hour, _ = strconv.Atoi(m[1])
		meridiem = m[2]
	} else {
		return [3]int{}, false
	}

	if meridiem != "" {
		if hour < 1 || hour > 12 {
			return [3]int{}, false
		}
		hour %= 12
		if meridiem == "pm" {
			hour += 12
		}
	}
	if hour > 23 || minute > 59 || second > 59 {
		return [3]int{}, false
	}
	return [3]int{hour, minute, second}, true
}

func (r *relative) add(n int, u unit) {
	switch u {
	case unitSecond:
		r.offset += time.Duration(n) * time.Second
	case unitMinute:
		r.offset += time.Duration(n) * time.Minute
	case unitHour:
		r.offset += time.Duration(n) * time.Hour
	case unitDay:
		r.days += n
	case unitWeek:
		r.days += 7 * n
	case unitFortnight:
		r.days += 14 * n
	case unitMonth:
		r.months += n
	case unitYear:
		r.years += n
	}
}

// negate flips every offset read so far, as "ago" does.
func (r *relative) negate() {
	r.years, r.months, r.days = -r.years, -r.months, -r.days
	r.offset = -r.offset
}

func (r *relative) setWeekday(wd time.Weekday, dir int) {
	r.weekday = &wd
	r.weekdayDir = dir
	r.resetTime = true
}

func (r *relative) resolve(now time.Time) time.Time {
	t := now
	if r.resetTime || r.clock != nil {
		var clock [3]int
		if r.clock != nil {
			clock = *r.clock
		}
		y, m, d := t.Date()
		t = time.Date(y, m, d, clock[0], clock[1], clock[2], 0, t.Location())
	}

	if r.weekday != nil {
		current := t.Weekday()
		switch r.weekdayDir {
		case 1:
			ahead := (int(*r.weekday) - int(current) + 7) % 7
			if ahead == 0 {
				ahead = 7
			}
			t = t.AddDate(0, 0, ahead)
		case -1:
			back := (int(current) - int(*r.weekday) + 7) % 7
			if back == 0 {
				back = 7
			}
			t = t.AddDate(0, 0, -back)
		default:
			t = t.AddDate(0, 0, (int(*r.weekday)-int(current)+7)%7)
		}
	}

	return t.AddDate(r.years, r.months, r.days).Add(r.offset)
}
