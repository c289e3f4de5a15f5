package calendar_view

import (
	"fmt"
	"time"

	"github.com/klokku/calview/pkg/event"
	"github.com/klokku/calview/pkg/grid"
	"github.com/klokku/calview/pkg/navigator"
	log "github.com/sirupsen/logrus"
)

// MaxVisibleEvents is the number of events a month cell lists before the
// rest is collapsed into a "+N more" marker.
const MaxVisibleEvents = 3

const minEventHeight = 0.5

type MonthView struct {
	Title    string
	Weekdays []string
	Cells    []Cell
}

type Cell struct {
	Date           time.Time
	Events         []event.Event
	Visible        []event.Event
	More           int
	IsCurrentMonth bool
	IsToday        bool
	IsFocused      bool
	Label          string
}

type WeekView struct {
	Title      string
	WeekNumber grid.WeekNumber
	Days       []Day
	TimeSlots  []string
	Focused    *Slot
}

type Day struct {
	Date    time.Time
	Header  string
	Events  []Placed
	IsToday bool
}

// Placed is an event positioned on a day column. Top and Height are measured
// in hours from the start of the day.
type Placed struct {
	Event  event.Event
	Top    float64
	Height float64
}

type Slot struct {
	Date  time.Time
	Hour  int
	Label string
}

type Builder struct {
	grid grid.Grid
}

func NewBuilder(g grid.Grid) *Builder {
	return &Builder{grid: g}
}

func (b *Builder) Grid() grid.Grid {
	return b.grid
}

// Month lays out events on the 42-day grid around the anchor of state.
// events are expected to be filtered already.
func (b *Builder) Month(events []event.Event, state navigator.State, now time.Time) MonthView {
	days := b.grid.MonthDays(state.AnchorDate)
	cells := make([]Cell, 0, len(days))
	for _, day := range days {
		dayEvents := event.EventsForDay(events, day)
		visible := dayEvents
		more := 0
		if len(dayEvents) > MaxVisibleEvents {
			visible = dayEvents[:MaxVisibleEvents]
			more = len(dayEvents) - MaxVisibleEvents
		}
		cells = append(cells, Cell{
			Date:           day,
			Events:         dayEvents,
			Visible:        visible,
			More:           more,
			IsCurrentMonth: grid.IsSameMonth(day, state.AnchorDate),
			IsToday:        grid.IsToday(day, now),
			IsFocused:      state.FocusedCell != nil && grid.SameDay(day, *state.FocusedCell),
			Label:          cellLabel(day, len(dayEvents)),
		})
	}
	log.Tracef("month view for %s built with %d events", state.AnchorDate.Format("2006-01"), len(events))
	return MonthView{
		Title:    navigator.Title(state),
		Weekdays: b.grid.WeekdayNames(),
		Cells:    cells,
	}
}

// Week lays out events on the seven days around the anchor of state. Events
// spanning midnight are clipped to the part that falls on each day.
func (b *Builder) Week(events []event.Event, state navigator.State, now time.Time) WeekView {
	days := b.grid.WeekDays(state.AnchorDate)
	columns := make([]Day, 0, len(days))
	for _, day := range days {
		dayEvents := event.EventsForDay(events, day)
		placed := make([]Placed, 0, len(dayEvents))
		for _, e := range dayEvents {
			placed = append(placed, place(e, day))
		}
		columns = append(columns, Day{
			Date:    day,
			Header:  day.Format("Mon 2"),
			Events:  placed,
			IsToday: grid.IsToday(day, now),
		})
	}

	view := WeekView{
		Title:      navigator.Title(state),
		WeekNumber: b.grid.WeekNumber(state.AnchorDate),
		Days:       columns,
		TimeSlots:  grid.TimeSlots(),
	}
	if state.FocusedCell != nil {
		if hour := state.EffectiveFocusedHour(); hour != nil {
			view.Focused = &Slot{
				Date:  grid.StartOfDay(*state.FocusedCell),
				Hour:  *hour,
				Label: slotLabel(*state.FocusedCell, *hour),
			}
		}
	}
	return view
}

// place positions e on day. The result is at least half an hour tall.
func place(e event.Event, day time.Time) Placed {
	dayStart := grid.StartOfDay(day)
	nextDay := grid.AddDays(dayStart, 1)
	start := e.StartDate.In(day.Location())
	end := e.EndDate.In(day.Location())
	if start.Before(dayStart) {
		start = dayStart
	}
	if end.After(nextDay) {
		end = nextDay
	}
	return Placed{
		Event:  e,
		Top:    start.Sub(dayStart).Hours(),
		Height: max(end.Sub(start).Hours(), minEventHeight),
	}
}

func cellLabel(day time.Time, count int) string {
	label := day.Format("January 2, 2006")
	switch {
	case count == 1:
		return label + ", 1 event"
	case count > 1:
		return fmt.Sprintf("%s, %d events", label, count)
	}
	return label
}

func slotLabel(day time.Time, hour int) string {
	return fmt.Sprintf("%s at %02d:00", day.Format("Monday, January 2"), hour)
}
