package event

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(day, hour int) time.Time {
	return time.Date(2024, time.January, day, hour, 0, 0, 0, time.UTC)
}

func ids(events []Event) []string {
	result := make([]string, 0, len(events))
	for _, e := range events {
		result = append(result, e.Id)
	}
	return result
}

func TestEventsForDay_SingleDayEvent(t *testing.T) {
	events := []Event{{Id: "1", Title: "Meeting", StartDate: at(15, 10), EndDate: at(15, 11)}}

	assert.Equal(t, []string{"1"}, ids(EventsForDay(events, at(15, 0))))
	assert.Empty(t, EventsForDay(events, at(16, 0)))
	assert.Empty(t, EventsForDay(events, at(14, 0)))
}

func TestEventsForDay_MultiDayEvent(t *testing.T) {
	events := []Event{{Id: "trip", Title: "Trip", StartDate: at(15, 22), EndDate: at(17, 1)}}

	for _, day := range []int{15, 16, 17} {
		assert.Equal(t, []string{"trip"}, ids(EventsForDay(events, at(day, 12))), "day %d", day)
	}
	assert.Empty(t, EventsForDay(events, at(14, 12)))
	assert.Empty(t, EventsForDay(events, at(18, 12)))
}

func TestEventsForDay_BoundariesAreInclusive(t *testing.T) {
	events := []Event{
		{Id: "ends-at-midnight", StartDate: at(14, 22), EndDate: at(15, 0)},
		{Id: "starts-last-instant", StartDate: time.Date(2024, 1, 15, 23, 59, 59, 999999999, time.UTC), EndDate: at(16, 1)},
	}

	assert.Equal(t, []string{"ends-at-midnight", "starts-last-instant"}, ids(EventsForDay(events, at(15, 0))))
}

func TestEventsForDay_PreservesInputOrder(t *testing.T) {
	events := []Event{
		{Id: "late", StartDate: at(15, 18), EndDate: at(15, 19)},
		{Id: "outside", StartDate: at(10, 18), EndDate: at(10, 19)},
		{Id: "early", StartDate: at(15, 8), EndDate: at(15, 9)},
	}

	assert.Equal(t, []string{"late", "early"}, ids(EventsForDay(events, at(15, 0))))
}

func TestEventsForDay_MatchesOverlapDefinition(t *testing.T) {
	var events []Event
	for start := 0; start < 24*5; start += 7 {
		for length := 0; length < 60; length += 11 {
			s := at(13, 0).Add(time.Duration(start) * time.Hour)
			events = append(events, Event{Id: s.String(), StartDate: s, EndDate: s.Add(time.Duration(length) * time.Hour)})
		}
	}

	for day := 10; day < 22; day++ {
		dayStart := at(day, 0)
		dayEnd := at(day+1, 0).Add(-time.Nanosecond)
		got := EventsForDay(events, at(day, 13))
		var want []Event
		for _, e := range events {
			if !e.StartDate.After(dayEnd) && !e.EndDate.Before(dayStart) {
				want = append(want, e)
			}
		}
		assert.Equal(t, ids(want), ids(got), "day %d", day)
	}
}

func TestEventsForDay_DoesNotAliasInput(t *testing.T) {
	events := []Event{{Id: "1", StartDate: at(15, 10), EndDate: at(15, 11)}}

	result := EventsForDay(events, at(15, 0))
	result[0].Title = "changed"

	assert.Equal(t, "", events[0].Title)
}

func TestSortByStart(t *testing.T) {
	events := []Event{
		{Id: "c", StartDate: at(16, 9)},
		{Id: "a1", StartDate: at(15, 9)},
		{Id: "b", StartDate: at(15, 12)},
		{Id: "a2", StartDate: at(15, 9)},
	}

	sorted := SortByStart(events)

	assert.Equal(t, []string{"a1", "a2", "b", "c"}, ids(sorted))
	assert.Equal(t, []string{"c", "a1", "b", "a2"}, ids(events), "input must stay untouched")
}

func TestColorFor(t *testing.T) {
	assert.Equal(t, "#3b82f6", ColorFor(Blue))
	assert.Equal(t, "#ef4444", ColorFor(Red))
	assert.Equal(t, ColorFor(Blue), ColorFor(""))
	assert.Equal(t, ColorFor(Blue), ColorFor("magenta"))
	for _, c := range []Color{Blue, Green, Purple, Orange, Red} {
		assert.True(t, c.Valid(), string(c))
	}
}

func TestUUIDGenerator_Unique(t *testing.T) {
	gen := UUIDGenerator{}
	seen := make(map[string]struct{}, 1000)
	for i := 0; i < 1000; i++ {
		id := gen.NewId()
		_, dup := seen[id]
		require.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}

func TestSequenceGenerator_ConcurrentUnique(t *testing.T) {
	gen := NewSequenceGenerator("event")

	var mu sync.Mutex
	seen := make(map[string]struct{})
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				id := gen.NewId()
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, 800)
	assert.Equal(t, "event-801", gen.NewId())
}
