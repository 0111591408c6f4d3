// Package datemath holds the calendar arithmetic shared by the dashboard and
// report aggregations. Every function works on UTC calendar dates.
package datemath

import (
	"strconv"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// Stored dates outside [MinYear, MaxYear] are treated as unusable.
const (
	MinYear = 1970
	MaxYear = 2100
)

// Plausible reports whether t is a usable stored date.
func Plausible(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	y := t.UTC().Year()
	return y >= MinYear && y <= MaxYear
}

// DateOf truncates t to midnight UTC of its UTC calendar date.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysSince is the whole number of elapsed 24h periods from start to end,
// floored, so an instant a few hours in the future yields -1. It works on
// Unix seconds and never saturates like time.Duration does.
func DaysSince(start, end time.Time) int {
	return int(floorDiv(end.Unix()-start.Unix(), secondsPerDay))
}

// DaysBetweenDates counts calendar days from the date of a to the date of b.
func DaysBetweenDates(a, b time.Time) int {
	return int((DateOf(b).Unix() - DateOf(a).Unix()) / secondsPerDay)
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// BusinessDaysBetween counts the dates in [start.date, end.date], both ends
// included, that fall on Monday through Friday. Whole weeks count five each;
// the remaining days are walked one by one.
func BusinessDaysBetween(start, end time.Time) int {
	cur, last := DateOf(start), DateOf(end)
	total := DaysBetweenDates(cur, last) + 1
	if total <= 0 {
		return 0
	}
	weeks := total / 7
	n := weeks * 5
	cur = cur.AddDate(0, 0, weeks*7)
	for !cur.After(last) {
		if wd := cur.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return n
}

// WeekStart returns midnight UTC of the Monday of t's week.
func WeekStart(t time.Time) time.Time {
	d := DateOf(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// MonthStart returns midnight UTC of the first day of t's month.
func MonthStart(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// ParseLooseDate accepts MM/DD/YYYY, MM-DD-YYYY and MM-DD-YY. Two digit years
// land in the 2000s. Anything that is not a real calendar date yields false.
func ParseLooseDate(s string) (time.Time, bool) {
	parts := strings.Split(strings.ReplaceAll(strings.TrimSpace(s), "/", "-"), "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return time.Time{}, false
		}
		nums[i] = n
	}
	month, dd, year := nums[0], nums[1], nums[2]
	if year < 100 {
		year += 2000
	}
	if year < MinYear || year > MaxYear || month < 1 || month > 12 || dd < 1 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), dd, 0, 0, 0, 0, time.UTC)
	// time.Date normalises overflow (Feb 30 -> Mar 2); reject those.
	if t.Day() != dd || int(t.Month()) != month {
		return time.Time{}, false
	}
	return t, true
}
