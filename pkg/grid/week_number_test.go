package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekNumber(t *testing.T) {
	sundayYear, sundayWeek := date(2024, time.December, 29).ISOWeek()

	tests := []struct {
		name      string
		date      time.Time
		weekStart time.Weekday
		want      WeekNumber
	}{
		{
			name:      "monday week start follows ISO weeks",
			date:      date(2025, time.January, 1),
			weekStart: time.Monday,
			want:      WeekNumber{Year: 2025, Week: 1},
		},
		{
			name:      "sunday week start includes the previous Sunday",
			date:      date(2025, time.January, 1),
			weekStart: time.Sunday,
			want:      WeekNumber{Year: sundayYear, Week: sundayWeek},
		},
		{
			name:      "invalid week start falls back to Sunday",
			date:      date(2025, time.February, 1),
			weekStart: time.Weekday(42),
			want:      WeekNumber{Year: 2025, Week: 4},
		},
		{
			name:      "first week of the year is the week containing January 4th",
			date:      time.Date(2025, time.December, 29, 0, 0, 0, 0, location),
			weekStart: time.Monday,
			want:      WeekNumber{Year: 2026, Week: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.weekStart).WeekNumber(tt.date))
		})
	}
}

func TestWeekNumber_String(t *testing.T) {
	assert.Equal(t, "2025-W03", WeekNumber{Year: 2025, Week: 3}.String())
	assert.Equal(t, "2026-W52", WeekNumber{Year: 2026, Week: 52}.String())
}
