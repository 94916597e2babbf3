package slot

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// DateLayout is the wire format for calendar days.
const DateLayout = "2006-01-02"

// ParseDate parses a "YYYY-MM-DD" day in the given location.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, loc)
}

// Key returns the canonical slot key for a (date, time) pair.
func Key(date time.Time, t string) string {
	return date.Format(DateLayout) + "|" + t
}

// Grid is the bookable time grid for a service day: slot starts from
// Open (inclusive) up to Close (exclusive), stepping by Interval.
// With the defaults (10:30, 22:00, 15m) the last bookable start is 21:45.
type Grid struct {
	open     int // minutes from midnight
	close    int
	interval int
}

func NewGrid(open, close string, intervalMinutes int) (Grid, error) {
	o, err := ParseClock(open)
	if err != nil {
		return Grid{}, fmt.Errorf("invalid open time %q: %w", open, err)
	}
	c, err := ParseClock(close)
	if err != nil {
		return Grid{}, fmt.Errorf("invalid close time %q: %w", close, err)
	}
	if intervalMinutes < 1 {
		return Grid{}, fmt.Errorf("invalid slot interval %d", intervalMinutes)
	}
	if c <= o {
		return Grid{}, fmt.Errorf("close time %q must be after open time %q", close, open)
	}
	return Grid{open: o, close: c, interval: intervalMinutes}, nil
}

// ParseClock parses an "HH:MM" string into minutes from midnight.
func ParseClock(s string) (int, error) {
	t, err := time.Parse(clockLayout, s)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Contains reports whether t is a bookable slot start: aligned to the
// interval and within [open, close).
func (g Grid) Contains(t string) bool {
	m, err := ParseClock(t)
	if err != nil {
		return false
	}
	if m < g.open || m >= g.close {
		return false
	}
	return (m-g.open)%g.interval == 0
}

// Times enumerates every bookable slot start in order.
func (g Grid) Times() []string {
	var times []string
	for m := g.open; m < g.close; m += g.interval {
		times = append(times, fmt.Sprintf("%02d:%02d", m/60, m%60))
	}
	return times
}

// StartOn returns the slot start t as an instant on the given calendar
// day in day's location. t must be a valid clock string.
func (g Grid) StartOn(day time.Time, t string) (time.Time, error) {
	m, err := ParseClock(t)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), m/60, m%60, 0, 0, day.Location()), nil
}
