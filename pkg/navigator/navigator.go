package navigator

import (
	"fmt"
	"sync"
	"time"

	"github.com/klokku/calview/pkg/grid"
	log "github.com/sirupsen/logrus"
)

type ViewMode string

const (
	MonthView ViewMode = "month"
	WeekView  ViewMode = "week"
)

func ParseViewMode(s string) (ViewMode, error) {
	switch ViewMode(s) {
	case MonthView, WeekView:
		return ViewMode(s), nil
	}
	return "", fmt.Errorf("invalid view mode: %q", s)
}

const (
	minHour = 0
	maxHour = 23
)

// State is a snapshot of the navigator. FocusedCell and FocusedHour are nil
// when nothing is focused.
type State struct {
	AnchorDate  time.Time
	ViewMode    ViewMode
	FocusedCell *time.Time
	FocusedHour *int
}

// EffectiveFocusedHour returns the focused hour, which only exists in week view.
func (s State) EffectiveFocusedHour() *int {
	if s.ViewMode != WeekView {
		return nil
	}
	return s.FocusedHour
}

// Navigator holds the anchor date, view mode and keyboard focus of a calendar.
// All methods are safe for concurrent use and each one is applied atomically.
type Navigator struct {
	mu    sync.Mutex
	state State
}

func New(initialDate time.Time, mode ViewMode) *Navigator {
	if mode != WeekView {
		mode = MonthView
	}
	return &Navigator{state: State{AnchorDate: initialDate, ViewMode: mode}}
}

func (n *Navigator) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state.copy()
}

func (n *Navigator) SetViewMode(mode ViewMode) State {
	return n.update(func(s *State) {
		s.ViewMode = mode
	})
}

// GoNext moves the anchor one month or one week forward depending on the view.
func (n *Navigator) GoNext() State {
	return n.update(func(s *State) {
		if s.ViewMode == WeekView {
			s.AnchorDate = grid.NextWeek(s.AnchorDate)
		} else {
			s.AnchorDate = grid.NextMonth(s.AnchorDate)
		}
	})
}

func (n *Navigator) GoPrevious() State {
	return n.update(func(s *State) {
		if s.ViewMode == WeekView {
			s.AnchorDate = grid.PrevWeek(s.AnchorDate)
		} else {
			s.AnchorDate = grid.PrevMonth(s.AnchorDate)
		}
	})
}

// GoToday moves both the anchor and the focused cell to now.
func (n *Navigator) GoToday(now time.Time) State {
	return n.update(func(s *State) {
		s.AnchorDate = now
		s.FocusedCell = &now
	})
}

// SetFocusedCell accepts any date, including ones outside the rendered grid.
func (n *Navigator) SetFocusedCell(date time.Time) State {
	return n.update(func(s *State) {
		s.FocusedCell = &date
	})
}

// SetFocusedHour clamps hour to 0..23.
func (n *Navigator) SetFocusedHour(hour int) State {
	return n.update(func(s *State) {
		h := clampHour(hour)
		s.FocusedHour = &h
	})
}

// SetFocus focuses a week view time slot.
func (n *Navigator) SetFocus(date time.Time, hour int) State {
	return n.update(func(s *State) {
		h := clampHour(hour)
		s.FocusedCell = &date
		s.FocusedHour = &h
	})
}

func (n *Navigator) update(fn func(s *State)) State {
	n.mu.Lock()
	defer n.mu.Unlock()
	fn(&n.state)
	log.Tracef("navigator state: anchor=%s view=%s", n.state.AnchorDate.Format(time.DateOnly), n.state.ViewMode)
	return n.state.copy()
}

func (s State) copy() State {
	c := s
	if s.FocusedCell != nil {
		cell := *s.FocusedCell
		c.FocusedCell = &cell
	}
	if s.FocusedHour != nil {
		hour := *s.FocusedHour
		c.FocusedHour = &hour
	}
	return c
}

func clampHour(hour int) int {
	return min(max(hour, minHour), maxHour)
}

// Title is the calendar header text: "January 2024" in month view and
// "Jan 15, 2024" in week view.
func Title(s State) string {
	if s.ViewMode == WeekView {
		return s.AnchorDate.Format("Jan 2, 2006")
	}
	return s.AnchorDate.Format("January 2006")
}
