package utils

import "time"

type Clock interface {
	Now() time.Time
	Location() *time.Location
}

// SystemClock reads the wall clock in Loc, or in the local zone when Loc is nil.
type SystemClock struct {
	Loc *time.Location
}

func (s SystemClock) Now() time.Time {
	return time.Now().In(s.Location())
}

func (s SystemClock) Location() *time.Location {
	if s.Loc == nil {
		return time.Local
	}
	return s.Loc
}

type MockClock struct {
	FixedNow time.Time
}

func (m *MockClock) Now() time.Time {
	return m.FixedNow
}

func (m *MockClock) Location() *time.Location {
	return m.FixedNow.Location()
}

func (m *MockClock) SetNow(now time.Time) {
	m.FixedNow = now
}
