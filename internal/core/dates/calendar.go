package dates

import (
	"strconv"
	"strings"
	"time"
)

// validDate reports whether y/m/d names a real calendar date. time.Date
// normalizes overflow, so a field mismatch after construction means the
// input date does not exist (e.g. Feb 30)
func validDate(y, m, d int) bool {
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return t.Day() == d && int(t.Month()) == m && t.Year() == y
}

// expandYear turns a year capture into four digits. Two-digit years expand
// into the current century, or the previous one when pastReferenced is set
// and the value is numerically ahead of the current two-digit year
// (birthday-style dates)
func expandYear(raw string, now time.Time, pastReferenced bool) int {
	raw = strings.TrimSpace(raw)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return now.Year()
	}
	if len(raw) > 2 {
		return n
	}
	century := now.Year() / 100
	if pastReferenced && n > now.Year()%100 {
		century--
	}
	return century*100 + n
}

// daysUntilWeekday returns the day count from now to the next occurrence of
// wd within the coming 7-day window; zero means today matches
func daysUntilWeekday(now time.Time, wd time.Weekday) int {
	d := int(wd) - int(now.Weekday())
	if d < 0 {
		d += 7
	}
	return d
}

// daysUntilNextWeek returns the day count from now to wd in the following
// calendar week (weeks start Monday). "next X" lands there even when today
// is X
func daysUntilNextWeek(now time.Time, wd time.Weekday) int {
	sinceMonday := int(now.Weekday()) - int(time.Monday)
	if sinceMonday < 0 {
		sinceMonday += 7
	}
	fromMonday := int(wd) - int(time.Monday)
	if fromMonday < 0 {
		fromMonday += 7
	}
	return 7 - sinceMonday + fromMonday
}

// dateOn builds a DetectedDate from a time value
func dateOn(t time.Time, typ DateType) DetectedDate {
	return DetectedDate{Dd: t.Day(), Mm: int(t.Month()), Yy: t.Year(), Type: typ}
}

// rollForwardDay places a bare day number in the current month, rolling one
// month forward (and into January of next year from December) when that day
// has already passed
func rollForwardDay(now time.Time, day int) DetectedDate {
	y, m := now.Year(), int(now.Month())
	if day < now.Day() {
		m++
		if m > 12 {
			m = 1
			y++
		}
	}
	return DetectedDate{Dd: day, Mm: m, Yy: y, Type: PossibleDay}
}

// monthOffset resolves now's month shifted by off, normalizing the year
func monthOffset(now time.Time, off int) (mm, yy int) {
	m := int(now.Month()) + off
	y := now.Year()
	for m > 12 {
		m -= 12
		y++
	}
	for m < 1 {
		m += 12
		y--
	}
	return m, y
}
