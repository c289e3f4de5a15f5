package event

import (
	"fmt"
	"time"
)

const (
	formDateLayout = "2006-01-02"
	formTimeLayout = "15:04"

	defaultStartHour = 9
)

// Form holds the values of the create/edit event form as the user sees them.
type Form struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	StartDate   string `json:"startDate"`
	StartTime   string `json:"startTime"`
	EndDate     string `json:"endDate"`
	EndTime     string `json:"endTime"`
	Color       Color  `json:"color"`
}

// NewForm prefills a form for a new event on day. Without an hour the event
// runs 09:00-10:00; otherwise it takes the hour slot, ending on the next day
// when the slot is 23:00.
func NewForm(day time.Time, hour *int) Form {
	h := defaultStartHour
	if hour != nil {
		h = min(max(*hour, 0), 23)
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), h, 0, 0, 0, day.Location())
	end := time.Date(day.Year(), day.Month(), day.Day(), h+1, 0, 0, 0, day.Location())
	return Form{
		StartDate: start.Format(formDateLayout),
		StartTime: start.Format(formTimeLayout),
		EndDate:   end.Format(formDateLayout),
		EndTime:   end.Format(formTimeLayout),
		Color:     Blue,
	}
}

// FormFromEvent fills the form for editing e, showing its times in loc so that
// submitting the form back with Changes(loc) leaves them unchanged.
func FormFromEvent(e Event, loc *time.Location) Form {
	color := e.Color
	if color == "" {
		color = Blue
	}
	start := e.StartDate.In(loc)
	end := e.EndDate.In(loc)
	return Form{
		Title:       e.Title,
		Description: e.Description,
		StartDate:   start.Format(formDateLayout),
		StartTime:   start.Format(formTimeLayout),
		EndDate:     end.Format(formDateLayout),
		EndTime:     end.Format(formTimeLayout),
		Color:       color,
	}
}

// Draft parses the form in loc and validates the result.
func (f Form) Draft(loc *time.Location) (Draft, error) {
	start, err := parseFormDateTime(f.StartDate, f.StartTime, loc)
	if err != nil {
		return Draft{}, &ValidationError{Field: "startDate", Message: err.Error()}
	}
	end, err := parseFormDateTime(f.EndDate, f.EndTime, loc)
	if err != nil {
		return Draft{}, &ValidationError{Field: "endDate", Message: err.Error()}
	}
	d := Draft{
		Title:       f.Title,
		Description: f.Description,
		StartDate:   start,
		EndDate:     end,
		Color:       f.Color,
	}
	if err := d.Validate(); err != nil {
		return Draft{}, err
	}
	return d, nil
}

// Changes turns the form into a full replacement of the editable fields. An
// empty color falls back to Blue. Category is not part of the form and is left
// untouched.
func (f Form) Changes(loc *time.Location) (Changes, error) {
	d, err := f.Draft(loc)
	if err != nil {
		return Changes{}, err
	}
	if d.Color == "" {
		d.Color = Blue
	}
	return Changes{
		Title:       &d.Title,
		Description: &d.Description,
		StartDate:   &d.StartDate,
		EndDate:     &d.EndDate,
		Color:       &d.Color,
	}, nil
}

func parseFormDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(formDateLayout+" "+formTimeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected %s and %s, got %q %q", formDateLayout, formTimeLayout, date, clock)
	}
	return t, nil
}
