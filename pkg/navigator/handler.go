package navigator

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/klokku/calview/internal/rest"
	"github.com/klokku/calview/internal/utils"
	"github.com/klokku/calview/pkg/event"
	log "github.com/sirupsen/logrus"
)

type StateDTO struct {
	AnchorDate  time.Time  `json:"anchorDate"`
	ViewMode    string     `json:"viewMode"`
	Title       string     `json:"title"`
	FocusedCell *time.Time `json:"focusedCell,omitempty"`
	FocusedHour *int       `json:"focusedHour,omitempty"`
}

type ViewModeDTO struct {
	ViewMode string `json:"viewMode"`
}

type FocusDTO struct {
	Date string `json:"date"`
	Hour *int   `json:"hour"`
}

type KeyDTO struct {
	Key string `json:"key"`
}

type ActivationDTO struct {
	Date time.Time  `json:"date"`
	Hour *int       `json:"hour,omitempty"`
	Form event.Form `json:"form"`
}

type KeyResponseDTO struct {
	State      StateDTO       `json:"state"`
	Activation *ActivationDTO `json:"activation,omitempty"`
}

type Handler struct {
	navigator *Navigator
	clock     utils.Clock
}

func NewHandler(navigator *Navigator, clock utils.Clock) *Handler {
	return &Handler{navigator: navigator, clock: clock}
}

// GetState godoc
// @Summary Get navigator state
// @Tags Navigator
// @Produce json
// @Success 200 {object} StateDTO
// @Router /api/navigator [get]
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, StateToDTO(h.navigator.State()))
}

// GoNext godoc
// @Summary Go to the next period
// @Description Move the anchor one month or one week forward, depending on the view mode
// @Tags Navigator
// @Produce json
// @Success 200 {object} StateDTO
// @Router /api/navigator/next [post]
func (h *Handler) GoNext(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, StateToDTO(h.navigator.GoNext()))
}

// GoPrevious godoc
// @Summary Go to the previous period
// @Tags Navigator
// @Produce json
// @Success 200 {object} StateDTO
// @Router /api/navigator/previous [post]
func (h *Handler) GoPrevious(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, StateToDTO(h.navigator.GoPrevious()))
}

// GoToday godoc
// @Summary Go to today
// @Tags Navigator
// @Produce json
// @Success 200 {object} StateDTO
// @Router /api/navigator/today [post]
func (h *Handler) GoToday(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, StateToDTO(h.navigator.GoToday(h.clock.Now())))
}

// SetViewMode godoc
// @Summary Switch view mode
// @Tags Navigator
// @Accept json
// @Produce json
// @Param viewMode body ViewModeDTO true "View mode (month or week)"
// @Success 200 {object} StateDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid view mode"
// @Router /api/navigator/view [put]
func (h *Handler) SetViewMode(w http.ResponseWriter, r *http.Request) {
	var dto ViewModeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	mode, err := ParseViewMode(dto.ViewMode)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid view mode", err.Error())
		return
	}
	rest.WriteJSON(w, http.StatusOK, StateToDTO(h.navigator.SetViewMode(mode)))
}

// SetFocus godoc
// @Summary Focus a cell
// @Description Focus a month cell, or a week view slot when hour is present
// @Tags Navigator
// @Accept json
// @Produce json
// @Param focus body FocusDTO true "Focused date and optional hour"
// @Success 200 {object} StateDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Router /api/navigator/focus [put]
func (h *Handler) SetFocus(w http.ResponseWriter, r *http.Request) {
	var dto FocusDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	date, err := time.ParseInLocation(time.DateOnly, dto.Date, h.clock.Location())
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid date format", "'date' must be in 2006-01-02 format")
		return
	}

	var state State
	if dto.Hour != nil {
		state = h.navigator.SetFocus(date, *dto.Hour)
	} else {
		state = h.navigator.SetFocusedCell(date)
	}
	rest.WriteJSON(w, http.StatusOK, StateToDTO(state))
}

// HandleKey godoc
// @Summary Apply a key press
// @Description Move the focus with arrow keys. Activating a cell returns the prefilled form for a new event at the focused date and hour
// @Tags Navigator
// @Accept json
// @Produce json
// @Param key body KeyDTO true "Key"
// @Success 200 {object} KeyResponseDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid key"
// @Router /api/navigator/key [post]
func (h *Handler) HandleKey(w http.ResponseWriter, r *http.Request) {
	var dto KeyDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	key, err := ParseKey(dto.Key)
	if err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid key", err.Error())
		return
	}

	state, activation := h.navigator.HandleKey(key)
	response := KeyResponseDTO{State: StateToDTO(state)}
	if activation != nil {
		log.Debugf("Cell activated: %s", activation.Date.Format(time.DateOnly))
		response.Activation = &ActivationDTO{
			Date: activation.Date,
			Hour: activation.Hour,
			Form: event.NewForm(activation.Date, activation.Hour),
		}
	}
	rest.WriteJSON(w, http.StatusOK, response)
}

func StateToDTO(s State) StateDTO {
	return StateDTO{
		AnchorDate:  s.AnchorDate,
		ViewMode:    string(s.ViewMode),
		Title:       Title(s),
		FocusedCell: s.FocusedCell,
		FocusedHour: s.EffectiveFocusedHour(),
	}
}
