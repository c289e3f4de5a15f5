package event_filter

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/klokku/calview/pkg/event"
	"github.com/klokku/calview/pkg/grid"
)

// Query holds search criteria. A zero From or To means that side of the
// range is open.
type Query struct {
	Text string
	From time.Time
	To   time.Time
}

// IsActive reports whether the query narrows the event list at all.
func (q Query) IsActive() bool {
	return strings.TrimSpace(q.Text) != "" || !q.From.IsZero() || !q.To.IsZero()
}

func (q Query) Cleared() Query {
	return Query{}
}

// Filter returns the events matching both the text and the date range of q,
// in input order. The returned slice is always a new allocation.
func Filter(events []event.Event, q Query) []event.Event {
	text := strings.ToLower(strings.TrimSpace(q.Text))
	if text == "" && q.From.IsZero() && q.To.IsZero() {
		return slices.Clone(events)
	}

	result := make([]event.Event, 0, len(events))
	for _, e := range events {
		if text != "" && !matchesText(e, text) {
			continue
		}
		if !matchesRange(e, q.From, q.To) {
			continue
		}
		result = append(result, e)
	}
	return result
}

func matchesText(e event.Event, lowerText string) bool {
	return strings.Contains(strings.ToLower(e.Title), lowerText) ||
		strings.Contains(strings.ToLower(e.Description), lowerText)
}

// matchesRange compares whole days: the event covers the days from its start
// to its end, the query covers the days from From to To. Days are taken in the
// location of the query bounds.
func matchesRange(e event.Event, from, to time.Time) bool {
	loc := from.Location()
	if from.IsZero() {
		loc = to.Location()
	}
	eventStart := grid.StartOfDay(e.StartDate.In(loc))
	eventEnd := grid.EndOfDay(e.EndDate.In(loc))

	switch {
	case !from.IsZero() && !to.IsZero():
		rangeStart := grid.StartOfDay(from)
		rangeEnd := grid.EndOfDay(to)
		return within(eventStart, rangeStart, rangeEnd) ||
			within(eventEnd, rangeStart, rangeEnd) ||
			(eventStart.Before(rangeStart) && eventEnd.After(rangeEnd))
	case !from.IsZero():
		return !eventEnd.Before(grid.StartOfDay(from))
	case !to.IsZero():
		return !eventStart.After(grid.EndOfDay(to))
	}
	return true
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

const queryDateLayout = "2006-01-02"

// ParseQuery reads text, from and to from URL parameters. Dates may be given
// as 2006-01-02 (interpreted in loc) or RFC3339.
func ParseQuery(values url.Values, loc *time.Location) (Query, error) {
	from, err := parseQueryDate(values.Get("from"), loc)
	if err != nil {
		return Query{}, fmt.Errorf("invalid from: %w", err)
	}
	to, err := parseQueryDate(values.Get("to"), loc)
	if err != nil {
		return Query{}, fmt.Errorf("invalid to: %w", err)
	}
	return Query{Text: values.Get("text"), From: from, To: to}, nil
}

func parseQueryDate(s string, loc *time.Location) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.ParseInLocation(queryDateLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is neither %s nor RFC3339", s, queryDateLayout)
	}
	return t.In(loc), nil
}
