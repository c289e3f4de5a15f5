package event

import (
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/klokku/calview/pkg/grid"
)

// Overlaps reports whether the event interval intersects [from, to]. Both
// ends are inclusive.
func (e Event) Overlaps(from, to time.Time) bool {
	return !e.StartDate.After(to) && !e.EndDate.Before(from)
}

// EventsForDay returns the events overlapping any part of day, in input order.
// A multi-day event is returned for every day it spans.
func EventsForDay(events []Event, day time.Time) []Event {
	dayStart := grid.StartOfDay(day)
	dayEnd := grid.EndOfDay(day)

	result := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Overlaps(dayStart, dayEnd) {
			result = append(result, e)
		}
	}
	return result
}

// SortByStart returns a copy of events ordered by start date. Events starting
// at the same instant keep their relative order.
func SortByStart(events []Event) []Event {
	sorted := slices.Clone(events)
	slices.SortStableFunc(sorted, func(a, b Event) int {
		return a.StartDate.Compare(b.StartDate)
	})
	return sorted
}

type IdGenerator interface {
	NewId() string
}

// UUIDGenerator issues random (version 4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) NewId() string {
	return uuid.NewString()
}

// SequenceGenerator issues "<prefix>-1", "<prefix>-2", ... and is safe for
// concurrent use.
type SequenceGenerator struct {
	Prefix string
	next   atomic.Uint64
}

func NewSequenceGenerator(prefix string) *SequenceGenerator {
	return &SequenceGenerator{Prefix: prefix}
}

func (g *SequenceGenerator) NewId() string {
	return fmt.Sprintf("%s-%d", g.Prefix, g.next.Add(1))
}
