package event_store

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/klokku/calview/internal/rest"
	"github.com/klokku/calview/internal/utils"
	"github.com/klokku/calview/pkg/event"
	"github.com/klokku/calview/pkg/event_filter"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	store *Store
	clock utils.Clock
}

type EventDTO struct {
	Id           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	Color        string    `json:"color"`
	DisplayColor string    `json:"displayColor"`
	Category     string    `json:"category,omitempty"`
}

type DraftDTO struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
	Color       string    `json:"color"`
	Category    string    `json:"category"`
}

// ChangesDTO is a partial update: absent fields are left unchanged.
type ChangesDTO struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Color       *string    `json:"color"`
	Category    *string    `json:"category"`
}

func NewHandler(store *Store, clock utils.Clock) *Handler {
	return &Handler{store: store, clock: clock}
}

// GetEvents godoc
// @Summary List events
// @Description Get all events matching the optional filter
// @Tags Event
// @Produce json
// @Param text query string false "Text to search in title and description"
// @Param from query string false "Range start date (2006-01-02)"
// @Param to query string false "Range end date (2006-01-02)"
// @Success 200 {array} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid filter"
// @Router /api/events [get]
func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	q, err := event_filter.ParseQuery(r.URL.Query(), h.clock.Location())
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	events := event_filter.Filter(h.store.Snapshot(), q)
	log.Tracef("Events matching filter: %d", len(events))
	rest.WriteJSON(w, http.StatusOK, EventsToDTOs(events))
}

// GetDayEvents godoc
// @Summary List events of a day
// @Description Get the filtered events overlapping the given day
// @Tags Event
// @Produce json
// @Param date query string true "Day (2006-01-02)"
// @Param text query string false "Text to search in title and description"
// @Param sorted query bool false "Sort by start time"
// @Success 200 {array} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid date or filter"
// @Router /api/events/day [get]
func (h *Handler) GetDayEvents(w http.ResponseWriter, r *http.Request) {
	day, err := time.ParseInLocation(time.DateOnly, r.URL.Query().Get("date"), h.clock.Location())
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in 2006-01-02 format")
		return
	}
	q, err := event_filter.ParseQuery(r.URL.Query(), h.clock.Location())
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid filter", err.Error())
		return
	}

	events := event.EventsForDay(event_filter.Filter(h.store.Snapshot(), q), day)
	if r.URL.Query().Get("sorted") == "true" {
		events = event.SortByStart(events)
	}
	rest.WriteJSON(w, http.StatusOK, EventsToDTOs(events))
}

// CreateEvent godoc
// @Summary Create an event
// @Tags Event
// @Accept json
// @Produce json
// @Param event body DraftDTO true "Event"
// @Success 201 {object} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/events [post]
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var dto DraftDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	created, err := h.store.Create(r.Context(), dtoToDraft(dto, h.clock.Location()))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, EventToDTO(created))
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Change only the provided fields of an event
// @Tags Event
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param changes body ChangesDTO true "Changed fields"
// @Success 200 {object} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Router /api/events/{eventId} [put]
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var dto ChangesDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	changes := dtoToChanges(dto, h.clock.Location())
	if changes.IsEmpty() {
		rest.WriteError(w, http.StatusBadRequest, "No changes", "at least one field must be provided")
		return
	}

	updated, err := h.store.Update(r.Context(), mux.Vars(r)["eventId"], changes)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, EventToDTO(updated))
}

// DeleteEvent godoc
// @Summary Delete an event
// @Tags Event
// @Param eventId path string true "Event ID"
// @Success 204 "No Content"
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Router /api/events/{eventId} [delete]
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Delete(r.Context(), mux.Vars(r)["eventId"]); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetNewEventForm godoc
// @Summary Get a new event form
// @Description Get the prefilled form for a new event on date, at the optional hour
// @Tags Event
// @Produce json
// @Param date query string true "Day (2006-01-02)"
// @Param hour query int false "Hour slot (0-23)"
// @Success 200 {object} event.Form
// @Failure 400 {object} rest.ErrorResponse "Invalid date or hour"
// @Router /api/events/form [get]
func (h *Handler) GetNewEventForm(w http.ResponseWriter, r *http.Request) {
	day, err := time.ParseInLocation(time.DateOnly, r.URL.Query().Get("date"), h.clock.Location())
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in 2006-01-02 format")
		return
	}
	var hour *int
	if hourString := r.URL.Query().Get("hour"); hourString != "" {
		parsed, err := strconv.Atoi(hourString)
		if err != nil || parsed < 0 || parsed > 23 {
			rest.WriteError(w, http.StatusBadRequest, "Invalid hour", "'hour' must be a number between 0 and 23")
			return
		}
		hour = &parsed
	}
	rest.WriteJSON(w, http.StatusOK, event.NewForm(day, hour))
}

// GetEventForm godoc
// @Summary Get an edit form
// @Description Get the form for editing an event, with times in the calendar timezone
// @Tags Event
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} event.Form
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Router /api/events/{eventId}/form [get]
func (h *Handler) GetEventForm(w http.ResponseWriter, r *http.Request) {
	e, err := h.store.Get(mux.Vars(r)["eventId"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, event.FormFromEvent(e, h.clock.Location()))
}

// SubmitNewEventForm godoc
// @Summary Submit a new event form
// @Tags Event
// @Accept json
// @Produce json
// @Param form body event.Form true "Form"
// @Success 201 {object} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid form"
// @Router /api/events/form [post]
func (h *Handler) SubmitNewEventForm(w http.ResponseWriter, r *http.Request) {
	var form event.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	draft, err := form.Draft(h.clock.Location())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	created, err := h.store.Create(r.Context(), draft)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusCreated, EventToDTO(created))
}

// SubmitEventForm godoc
// @Summary Submit an edit form
// @Tags Event
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param form body event.Form true "Form"
// @Success 200 {object} EventDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid form"
// @Failure 404 {object} rest.ErrorResponse "Event not found"
// @Router /api/events/{eventId}/form [put]
func (h *Handler) SubmitEventForm(w http.ResponseWriter, r *http.Request) {
	var form event.Form
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	changes, err := form.Changes(h.clock.Location())
	if err != nil {
		writeStoreError(w, err)
		return
	}
	updated, err := h.store.Update(r.Context(), mux.Vars(r)["eventId"], changes)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	rest.WriteJSON(w, http.StatusOK, EventToDTO(updated))
}

func writeStoreError(w http.ResponseWriter, err error) {
	var validationErr *event.ValidationError
	switch {
	case errors.As(err, &validationErr):
		rest.WriteError(w, http.StatusBadRequest, "Invalid event", validationErr.Error())
	case errors.Is(err, ErrEventNotFound):
		rest.WriteError(w, http.StatusNotFound, "Event not found", err.Error())
	default:
		log.Errorf("event store failure: %v", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func EventToDTO(e event.Event) EventDTO {
	return EventDTO{
		Id:           e.Id,
		Title:        e.Title,
		Description:  e.Description,
		StartDate:    e.StartDate,
		EndDate:      e.EndDate,
		Color:        string(e.Color),
		DisplayColor: event.ColorFor(e.Color),
		Category:     e.Category,
	}
}

func EventsToDTOs(events []event.Event) []EventDTO {
	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, EventToDTO(e))
	}
	return dtos
}

// dtoToDraft keeps the instants of the request but moves them to loc, the
// calendar timezone every stored event is kept in.
func dtoToDraft(dto DraftDTO, loc *time.Location) event.Draft {
	return event.Draft{
		Title:       dto.Title,
		Description: dto.Description,
		StartDate:   dto.StartDate.In(loc),
		EndDate:     dto.EndDate.In(loc),
		Color:       event.Color(dto.Color),
		Category:    dto.Category,
	}
}

func dtoToChanges(dto ChangesDTO, loc *time.Location) event.Changes {
	c := event.Changes{
		Title:       dto.Title,
		Description: dto.Description,
		Category:    dto.Category,
	}
	if dto.StartDate != nil {
		start := dto.StartDate.In(loc)
		c.StartDate = &start
	}
	if dto.EndDate != nil {
		end := dto.EndDate.In(loc)
		c.EndDate = &end
	}
	if dto.Color != nil {
		color := event.Color(*dto.Color)
		c.Color = &color
	}
	return c
}
