package grid

import (
	"fmt"
	"strings"
	"time"
)

// ParseWeekday accepts full or three-letter English weekday names, in any case.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for day := time.Sunday; day <= time.Saturday; day++ {
		full := strings.ToLower(day.String())
		if name == full || name == full[:3] {
			return day, nil
		}
	}
	return time.Sunday, fmt.Errorf("invalid weekday: %q", s)
}
