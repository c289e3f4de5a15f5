package navigator

import (
	"fmt"
	"time"

	"github.com/klokku/calview/pkg/grid"
)

type Key string

// Key names follow the DOM KeyboardEvent.key values.
const (
	ArrowLeft  Key = "ArrowLeft"
	ArrowRight Key = "ArrowRight"
	ArrowUp    Key = "ArrowUp"
	ArrowDown  Key = "ArrowDown"
	Enter      Key = "Enter"
	Space      Key = " "
)

func ParseKey(s string) (Key, error) {
	switch Key(s) {
	case ArrowLeft, ArrowRight, ArrowUp, ArrowDown, Enter, Space:
		return Key(s), nil
	}
	if s == "Space" || s == "Spacebar" {
		return Space, nil
	}
	return "", fmt.Errorf("unsupported key: %q", s)
}

// Activation is returned when the user presses Enter or Space on a focused
// cell. Hour is nil in month view.
type Activation struct {
	Date time.Time
	Hour *int
}

// HandleKey applies a key press to the focused cell. Month view arrows move by
// one day (left/right) or one week (up/down). Week view left/right move by one
// day at the same hour and up/down move the hour within 0..23. The anchor date
// is never changed, so focus can leave the visible grid. Without a focused
// cell (and, in week view, a focused hour) the key is ignored.
func (n *Navigator) HandleKey(key Key) (State, *Activation) {
	n.mu.Lock()
	defer n.mu.Unlock()

	s := &n.state
	if s.FocusedCell == nil || (s.ViewMode == WeekView && s.FocusedHour == nil) {
		return s.copy(), nil
	}
	cell := *s.FocusedCell

	if key == Enter || key == Space {
		activation := &Activation{Date: cell}
		if s.ViewMode == WeekView {
			hour := *s.FocusedHour
			activation.Hour = &hour
		}
		return s.copy(), activation
	}

	if s.ViewMode == WeekView {
		hour := *s.FocusedHour
		switch key {
		case ArrowLeft:
			cell = grid.AddDays(cell, -1)
		case ArrowRight:
			cell = grid.AddDays(cell, 1)
		case ArrowUp:
			hour = clampHour(hour - 1)
		case ArrowDown:
			hour = clampHour(hour + 1)
		}
		s.FocusedHour = &hour
	} else {
		switch key {
		case ArrowLeft:
			cell = grid.AddDays(cell, -1)
		case ArrowRight:
			cell = grid.AddDays(cell, 1)
		case ArrowUp:
			cell = grid.PrevWeek(cell)
		case ArrowDown:
			cell = grid.NextWeek(cell)
		}
	}
	s.FocusedCell = &cell
	return s.copy(), nil
}
