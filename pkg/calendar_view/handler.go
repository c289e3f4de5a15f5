package calendar_view

import (
	"net/http"
	"time"

	"github.com/klokku/calview/internal/rest"
	"github.com/klokku/calview/internal/utils"
	"github.com/klokku/calview/pkg/event"
	"github.com/klokku/calview/pkg/event_filter"
	"github.com/klokku/calview/pkg/event_store"
	"github.com/klokku/calview/pkg/navigator"
	log "github.com/sirupsen/logrus"
)

type EventSource interface {
	Snapshot() []event.Event
}

type AgendaRenderer interface {
	RenderAgenda(days []time.Time, events []event.Event) (string, error)
}

type CellDTO struct {
	Date           time.Time              `json:"date"`
	Events         []event_store.EventDTO `json:"events"`
	More           int                    `json:"more"`
	IsCurrentMonth bool                   `json:"isCurrentMonth"`
	IsToday        bool                   `json:"isToday"`
	IsFocused      bool                   `json:"isFocused"`
	Label          string                 `json:"label"`
}

type PlacedDTO struct {
	Event  event_store.EventDTO `json:"event"`
	Top    float64              `json:"top"`
	Height float64              `json:"height"`
}

type DayDTO struct {
	Date    time.Time   `json:"date"`
	Header  string      `json:"header"`
	Events  []PlacedDTO `json:"events"`
	IsToday bool        `json:"isToday"`
}

type SlotDTO struct {
	Date  time.Time `json:"date"`
	Hour  int       `json:"hour"`
	Label string    `json:"label"`
}

type ViewDTO struct {
	ViewMode     string    `json:"viewMode"`
	Title        string    `json:"title"`
	WeekNumber   string    `json:"weekNumber,omitempty"`
	FilterActive bool      `json:"filterActive"`
	Weekdays     []string  `json:"weekdays,omitempty"`
	Cells        []CellDTO `json:"cells,omitempty"`
	Days         []DayDTO  `json:"days,omitempty"`
	TimeSlots    []string  `json:"timeSlots,omitempty"`
	FocusedSlot  *SlotDTO  `json:"focusedSlot,omitempty"`
}

type Handler struct {
	builder   *Builder
	navigator *navigator.Navigator
	events    EventSource
	renderer  AgendaRenderer
	clock     utils.Clock
}

func NewHandler(builder *Builder, nav *navigator.Navigator, events EventSource, renderer AgendaRenderer, clock utils.Clock) *Handler {
	return &Handler{builder: builder, navigator: nav, events: events, renderer: renderer, clock: clock}
}

// GetView godoc
// @Summary Get the calendar view
// @Description Render the current navigator state with the filtered events. With "Accept: text/csv" the visible days are exported as an agenda instead
// @Tags View
// @Produce json
// @Produce text/csv
// @Param text query string false "Text to search in title and description"
// @Param from query string false "Range start date (2006-01-02)"
// @Param to query string false "Range end date (2006-01-02)"
// @Success 200 {object} ViewDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid filter"
// @Router /api/view [get]
func (h *Handler) GetView(w http.ResponseWriter, r *http.Request) {
	q, err := event_filter.ParseQuery(r.URL.Query(), h.clock.Location())
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}
	state := h.navigator.State()
	events := event_filter.Filter(h.events.Snapshot(), q)
	log.Debugf("Rendering %s view with %d events", state.ViewMode, len(events))

	if r.Header.Get("Accept") == "text/csv" {
		days := h.builder.Grid().MonthDays(state.AnchorDate)
		if state.ViewMode == navigator.WeekView {
			days = h.builder.Grid().WeekDays(state.AnchorDate)
		}
		csv, err := h.renderer.RenderAgenda(days, events)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("failed to write agenda: %v", err)
		}
		return
	}

	now := h.clock.Now()
	var dto ViewDTO
	if state.ViewMode == navigator.WeekView {
		dto = weekToDTO(h.builder.Week(events, state, now))
	} else {
		dto = monthToDTO(h.builder.Month(events, state, now))
	}
	dto.ViewMode = string(state.ViewMode)
	dto.FilterActive = q.IsActive()
	rest.WriteJSON(w, http.StatusOK, dto)
}

func monthToDTO(view MonthView) ViewDTO {
	cells := make([]CellDTO, 0, len(view.Cells))
	for _, c := range view.Cells {
		cells = append(cells, CellDTO{
			Date:           c.Date,
			Events:         event_store.EventsToDTOs(c.Visible),
			More:           c.More,
			IsCurrentMonth: c.IsCurrentMonth,
			IsToday:        c.IsToday,
			IsFocused:      c.IsFocused,
			Label:          c.Label,
		})
	}
	return ViewDTO{Title: view.Title, Weekdays: view.Weekdays, Cells: cells}
}

func weekToDTO(view WeekView) ViewDTO {
	days := make([]DayDTO, 0, len(view.Days))
	for _, d := range view.Days {
		placed := make([]PlacedDTO, 0, len(d.Events))
		for _, p := range d.Events {
			placed = append(placed, PlacedDTO{Event: event_store.EventToDTO(p.Event), Top: p.Top, Height: p.Height})
		}
		days = append(days, DayDTO{Date: d.Date, Header: d.Header, Events: placed, IsToday: d.IsToday})
	}
	dto := ViewDTO{Title: view.Title, WeekNumber: view.WeekNumber.String(), Days: days, TimeSlots: view.TimeSlots}
	if view.Focused != nil {
		dto.FocusedSlot = &SlotDTO{Date: view.Focused.Date, Hour: view.Focused.Hour, Label: view.Focused.Label}
	}
	return dto
}
