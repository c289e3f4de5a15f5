package event

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxTitleLength is the longest title, in characters, accepted for an event.
const MaxTitleLength = 100

type Color string

const (
	Blue   Color = "blue"
	Green  Color = "green"
	Purple Color = "purple"
	Orange Color = "orange"
	Red    Color = "red"
)

var colorTokens = map[Color]string{
	Blue:   "#3b82f6",
	Green:  "#10b981",
	Purple: "#8b5cf6",
	Orange: "#f97316",
	Red:    "#ef4444",
}

// ColorFor returns the display colour for a tag. Missing or unknown tags get
// the blue colour.
func ColorFor(c Color) string {
	if token, ok := colorTokens[c]; ok {
		return token
	}
	return colorTokens[Blue]
}

func (c Color) Valid() bool {
	_, ok := colorTokens[c]
	return ok
}

type Event struct {
	Id          string
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Color       Color
	Category    string
}

// Draft is an event that has not been stored yet and so has no id.
type Draft struct {
	Title       string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Color       Color
	Category    string
}

// WithId builds the stored event. An empty colour becomes Blue.
func (d Draft) WithId(id string) Event {
	color := d.Color
	if color == "" {
		color = Blue
	}
	return Event{
		Id:          id,
		Title:       d.Title,
		Description: d.Description,
		StartDate:   d.StartDate,
		EndDate:     d.EndDate,
		Color:       color,
		Category:    d.Category,
	}
}

func (d Draft) Validate() error {
	return validate(d.Title, d.StartDate, d.EndDate, d.Color)
}

func (e Event) Validate() error {
	return validate(e.Title, e.StartDate, e.EndDate, e.Color)
}

// Changes is a partial update. Nil fields keep their current value.
type Changes struct {
	Title       *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Color       *Color
	Category    *string
}

// Apply returns e with the set fields replaced. The id is never changed.
func (c Changes) Apply(e Event) Event {
	if c.Title != nil {
		e.Title = *c.Title
	}
	if c.Description != nil {
		e.Description = *c.Description
	}
	if c.StartDate != nil {
		e.StartDate = *c.StartDate
	}
	if c.EndDate != nil {
		e.EndDate = *c.EndDate
	}
	if c.Color != nil {
		e.Color = *c.Color
	}
	if c.Category != nil {
		e.Category = *c.Category
	}
	return e
}

func (c Changes) IsEmpty() bool {
	return c.Title == nil && c.Description == nil && c.StartDate == nil &&
		c.EndDate == nil && c.Color == nil && c.Category == nil
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func validate(title string, start, end time.Time, color Color) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return &ValidationError{Field: "title", Message: fmt.Sprintf("title must be at most %d characters", MaxTitleLength)}
	}
	if start.IsZero() {
		return &ValidationError{Field: "startDate", Message: "start date is required"}
	}
	if end.IsZero() {
		return &ValidationError{Field: "endDate", Message: "end date is required"}
	}
	if end.Before(start) {
		return &ValidationError{Field: "endDate", Message: "end date must not be before start date"}
	}
	if color != "" && !color.Valid() {
		return &ValidationError{Field: "color", Message: fmt.Sprintf("unknown color %q", color)}
	}
	return nil
}
