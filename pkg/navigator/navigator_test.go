package navigator

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestNew_DefaultsToMonthView(t *testing.T) {
	n := New(date(2024, time.January, 15), "")

	s := n.State()
	assert.Equal(t, MonthView, s.ViewMode)
	assert.Equal(t, date(2024, time.January, 15), s.AnchorDate)
	assert.Nil(t, s.FocusedCell)
	assert.Nil(t, s.FocusedHour)
}

func TestGoNext_MonthClampsToLastDay(t *testing.T) {
	n := New(date(2024, time.January, 31), MonthView)

	s := n.GoNext()

	assert.Equal(t, date(2024, time.February, 29), s.AnchorDate)
}

func TestGoNextGoPrevious(t *testing.T) {
	tests := []struct {
		name     string
		mode     ViewMode
		anchor   time.Time
		next     time.Time
		previous time.Time
	}{
		{"month", MonthView, date(2024, time.January, 15), date(2024, time.February, 15), date(2023, time.December, 15)},
		{"month at year end", MonthView, date(2024, time.December, 31), date(2025, time.January, 31), date(2024, time.November, 30)},
		{"week", WeekView, date(2024, time.January, 15), date(2024, time.January, 22), date(2024, time.January, 8)},
		{"week across year", WeekView, date(2024, time.December, 28), date(2025, time.January, 4), date(2024, time.December, 21)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.next, New(tt.anchor, tt.mode).GoNext().AnchorDate)
			assert.Equal(t, tt.previous, New(tt.anchor, tt.mode).GoPrevious().AnchorDate)
		})
	}
}

func TestSetViewMode_KeepsAnchorAndFocus(t *testing.T) {
	n := New(date(2024, time.January, 15), MonthView)
	n.SetFocus(date(2024, time.January, 16), 10)

	s := n.SetViewMode(WeekView)

	assert.Equal(t, WeekView, s.ViewMode)
	assert.Equal(t, date(2024, time.January, 15), s.AnchorDate)
	require.NotNil(t, s.FocusedCell)
	assert.Equal(t, date(2024, time.January, 16), *s.FocusedCell)
	require.NotNil(t, s.FocusedHour)
	assert.Equal(t, 10, *s.FocusedHour)
}

func TestGoToday(t *testing.T) {
	n := New(date(2020, time.May, 5), WeekView)
	now := time.Date(2024, time.January, 15, 13, 45, 0, 0, time.UTC)

	s := n.GoToday(now)

	assert.Equal(t, now, s.AnchorDate)
	require.NotNil(t, s.FocusedCell)
	assert.Equal(t, now, *s.FocusedCell)
}

func TestSetFocusedCell_AcceptsAnyDate(t *testing.T) {
	n := New(date(2024, time.January, 15), MonthView)

	s := n.SetFocusedCell(date(1999, time.July, 1))

	require.NotNil(t, s.FocusedCell)
	assert.Equal(t, date(1999, time.July, 1), *s.FocusedCell)
	assert.Equal(t, date(2024, time.January, 15), s.AnchorDate)
}

func TestSetFocusedHour_Clamps(t *testing.T) {
	n := New(date(2024, time.January, 15), WeekView)

	assert.Equal(t, 0, *n.SetFocusedHour(-3).FocusedHour)
	assert.Equal(t, 23, *n.SetFocusedHour(40).FocusedHour)
	assert.Equal(t, 7, *n.SetFocusedHour(7).FocusedHour)
}

func TestState_IsACopy(t *testing.T) {
	n := New(date(2024, time.January, 15), WeekView)
	n.SetFocus(date(2024, time.January, 16), 10)

	s := n.State()
	*s.FocusedCell = date(2000, time.January, 1)
	*s.FocusedHour = 3

	again := n.State()
	assert.Equal(t, date(2024, time.January, 16), *again.FocusedCell)
	assert.Equal(t, 10, *again.FocusedHour)
}

func TestEffectiveFocusedHour(t *testing.T) {
	n := New(date(2024, time.January, 15), MonthView)
	n.SetFocusedHour(5)

	assert.Nil(t, n.State().EffectiveFocusedHour())
	n.SetViewMode(WeekView)
	require.NotNil(t, n.State().EffectiveFocusedHour())
	assert.Equal(t, 5, *n.State().EffectiveFocusedHour())
}

func TestTitle(t *testing.T) {
	anchor := date(2024, time.January, 15)

	assert.Equal(t, "January 2024", Title(State{AnchorDate: anchor, ViewMode: MonthView}))
	assert.Equal(t, "Jan 15, 2024", Title(State{AnchorDate: anchor, ViewMode: WeekView}))
}

func TestParseViewMode(t *testing.T) {
	mode, err := ParseViewMode("week")
	assert.NoError(t, err)
	assert.Equal(t, WeekView, mode)

	_, err = ParseViewMode("day")
	assert.Error(t, err)
}

func TestNavigator_ConcurrentUse(t *testing.T) {
	n := New(date(2024, time.January, 1), WeekView)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			n.GoNext()
		}()
		go func() {
			defer wg.Done()
			n.GoPrevious()
		}()
	}
	wg.Wait()

	assert.Equal(t, date(2024, time.January, 1), n.State().AnchorDate)
}
