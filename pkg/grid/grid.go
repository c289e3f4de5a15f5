package grid

import (
	"fmt"
	"time"
)

// MonthGridSize is the number of cells in a month view: six full weeks, so the
// layout does not change between months.
const MonthGridSize = 42

const daysInWeek = 7

type Grid struct {
	weekStart time.Weekday
}

// New returns a Grid whose weeks begin on weekStart. Values outside
// Sunday..Saturday fall back to Sunday.
func New(weekStart time.Weekday) Grid {
	if weekStart < time.Sunday || weekStart > time.Saturday {
		weekStart = time.Sunday
	}
	return Grid{weekStart: weekStart}
}

func (g Grid) WeekStart() time.Weekday {
	return g.weekStart
}

// StartOfWeek returns midnight of the first day of the week containing t.
func (g Grid) StartOfWeek(t time.Time) time.Time {
	delta := (int(t.Weekday()) - int(g.weekStart) + daysInWeek) % daysInWeek
	return AddDays(StartOfDay(t), -delta)
}

// MonthDays returns the 42 dates shown for the month of anchor, starting on
// the week start day on or before the first of the month.
func (g Grid) MonthDays(anchor time.Time) []time.Time {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	return daysFrom(g.StartOfWeek(first), MonthGridSize)
}

// WeekDays returns the 7 dates of the week containing anchor.
func (g Grid) WeekDays(anchor time.Time) []time.Time {
	return daysFrom(g.StartOfWeek(anchor), daysInWeek)
}

// WeekdayNames returns short weekday labels in grid column order.
func (g Grid) WeekdayNames() []string {
	names := make([]string, 0, daysInWeek)
	for i := 0; i < daysInWeek; i++ {
		day := time.Weekday((int(g.weekStart) + i) % daysInWeek)
		names = append(names, day.String()[:3])
	}
	return names
}

func daysFrom(start time.Time, count int) []time.Time {
	days := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		days = append(days, AddDays(start, i))
	}
	return days
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// AddDays moves t by n calendar days keeping the wall-clock time.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+n, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// AddMonths moves t by n calendar months. The day of month is clamped to the
// length of the target month, so Jan 31 + 1 month is the last day of February.
func AddMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	if last := DaysIn(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DaysIn returns the number of days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func NextMonth(t time.Time) time.Time { return AddMonths(t, 1) }
func PrevMonth(t time.Time) time.Time { return AddMonths(t, -1) }
func NextWeek(t time.Time) time.Time  { return AddDays(t, daysInWeek) }
func PrevWeek(t time.Time) time.Time  { return AddDays(t, -daysInWeek) }

// SameDay reports whether a and b fall on the same calendar day. b is
// compared in a's location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

func IsSameMonth(a, b time.Time) bool {
	b = b.In(a.Location())
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// IsToday reports whether t is on the same calendar day as now.
func IsToday(t, now time.Time) bool {
	return SameDay(t, now)
}

// TimeSlots returns the 24 hourly labels of the week view.
func TimeSlots() []string {
	slots := make([]string, 0, 24)
	for hour := 0; hour < 24; hour++ {
		slots = append(slots, fmt.Sprintf("%02d:00", hour))
	}
	return slots
}
