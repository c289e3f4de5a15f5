package grid

import (
	"fmt"
	"time"
)

type WeekNumber struct {
	Week int
	Year int
}

// WeekNumber returns the ISO week of the grid week containing t. A week start
// earlier than Monday can shift the result into the previous ISO week.
func (g Grid) WeekNumber(t time.Time) WeekNumber {
	year, week := g.StartOfWeek(t).ISOWeek()
	return WeekNumber{Year: year, Week: week}
}

// String formats w as ISO 8601, e.g. "2025-W03".
func (w WeekNumber) String() string {
	return fmt.Sprintf("%d-W%02d", w.Year, w.Week)
}
