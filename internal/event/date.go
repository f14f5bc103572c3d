package event

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// months maps the Dutch month names used on the program page to time.Month
var months = map[string]time.Month{
	"januari":   time.January,
	"februari":  time.February,
	"maart":     time.March,
	"april":     time.April,
	"mei":       time.May,
	"juni":      time.June,
	"juli":      time.July,
	"augustus":  time.August,
	"september": time.September,
	"oktober":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// UnknownMonthError is returned when the month name is not a Dutch month
type UnknownMonthError struct {
	Month string
}

func (e *UnknownMonthError) Error() string {
	return fmt.Sprintf("unknown month %q", e.Month)
}

// MalformedTimeError is returned when the day or clock text is not numeric or out of range
type MalformedTimeError struct {
	Input string
	Err   error
}

func (e *MalformedTimeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed date/time %q: %v", e.Input, e.Err)
	}
	return fmt.Sprintf("malformed date/time %q", e.Input)
}

func (e *MalformedTimeError) Unwrap() error {
	return e.Err
}

// LookupMonth returns the month for a Dutch month name, ignoring case
func LookupMonth(name string) (time.Month, bool) {
	// Casers are stateful, so one per call
	m, ok := months[cases.Lower(language.Dutch).String(strings.TrimSpace(name))]
	return m, ok
}

// ParseDate converts listing text such as "za 12 oktober" and "20:30" into a
// timestamp in now's location. The weekday is ignored. The year is inferred
// from now: a (month, day) strictly before today's rolls over to next year,
// today itself stays in the current year.
func ParseDate(day, clock string, now time.Time) (time.Time, error) {
	parts := strings.Fields(day)
	if len(parts) < 3 {
		return time.Time{}, &MalformedTimeError{Input: day}
	}

	month, ok := LookupMonth(parts[2])
	if !ok {
		return time.Time{}, &UnknownMonthError{Month: parts[2]}
	}

	dom, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, &MalformedTimeError{Input: day, Err: err}
	}
	if dom < 1 || dom > 31 {
		return time.Time{}, &MalformedTimeError{Input: day}
	}

	hour, minute, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}

	year := now.Year()
	if month < now.Month() || (month == now.Month() && dom < now.Day()) {
		year++
	}

	t := time.Date(year, month, dom, hour, minute, 0, 0, now.Location())
	// time.Date normalises "31 februari" into March
	if t.Day() != dom {
		return time.Time{}, &MalformedTimeError{Input: day}
	}
	return t, nil
}

// parseClock parses "HH:MM"
func parseClock(clock string) (int, int, error) {
	h, m, found := strings.Cut(strings.TrimSpace(clock), ":")
	if !found {
		return 0, 0, &MalformedTimeError{Input: clock}
	}

	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, 0, &MalformedTimeError{Input: clock, Err: err}
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return 0, 0, &MalformedTimeError{Input: clock, Err: err}
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, &MalformedTimeError{Input: clock}
	}
	return hour, minute, nil
}
