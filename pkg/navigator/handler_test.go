package navigator

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/klokku/calview/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var location, _ = time.LoadLocation("Europe/Warsaw")

func setupHandlerTest(mode ViewMode) (*Handler, *Navigator) {
	clock := &utils.MockClock{FixedNow: time.Date(2024, time.March, 5, 14, 30, 0, 0, location)}
	nav := New(time.Date(2024, time.January, 31, 0, 0, 0, 0, location), mode)
	return NewHandler(nav, clock), nav
}

func decodeState(t *testing.T, w *httptest.ResponseRecorder) StateDTO {
	require.Equal(t, http.StatusOK, w.Code)
	var dto StateDTO
	require.NoError(t, json.NewDecoder(w.Body).Decode(&dto))
	return dto
}

func TestHandler_Navigation(t *testing.T) {
	handler, _ := setupHandlerTest(MonthView)

	w := httptest.NewRecorder()
	handler.GetState(w, httptest.NewRequest(http.MethodGet, "/api/navigator", nil))
	state := decodeState(t, w)
	assert.Equal(t, "month", state.ViewMode)
	assert.Equal(t, "January 2024", state.Title)
	assert.Nil(t, state.FocusedCell)

	w = httptest.NewRecorder()
	handler.GoNext(w, httptest.NewRequest(http.MethodPost, "/api/navigator/next", nil))
	state = decodeState(t, w)
	assert.Equal(t, "February 2024", state.Title)
	assert.Equal(t, 29, state.AnchorDate.Day())

	w = httptest.NewRecorder()
	handler.GoPrevious(w, httptest.NewRequest(http.MethodPost, "/api/navigator/previous", nil))
	state = decodeState(t, w)
	assert.Equal(t, "January 2024", state.Title)

	w = httptest.NewRecorder()
	handler.GoToday(w, httptest.NewRequest(http.MethodPost, "/api/navigator/today", nil))
	state = decodeState(t, w)
	assert.Equal(t, "March 2024", state.Title)
	require.NotNil(t, state.FocusedCell)
	assert.Equal(t, 5, state.FocusedCell.Day())
}

func TestHandler_SetViewMode(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantMode   ViewMode
	}{
		{name: "week", body: `{"viewMode":"week"}`, wantStatus: http.StatusOK, wantMode: WeekView},
		{name: "month", body: `{"viewMode":"month"}`, wantStatus: http.StatusOK, wantMode: MonthView},
		{name: "unknown mode", body: `{"viewMode":"day"}`, wantStatus: http.StatusBadRequest, wantMode: MonthView},
		{name: "malformed body", body: `{`, wantStatus: http.StatusBadRequest, wantMode: MonthView},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler, nav := setupHandlerTest(MonthView)
			w := httptest.NewRecorder()

			handler.SetViewMode(w, httptest.NewRequest(http.MethodPut, "/api/navigator/view", bytes.NewBufferString(tt.body)))

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantMode, nav.State().ViewMode)
		})
	}
}

func TestHandler_SetFocus(t *testing.T) {
	handler, nav := setupHandlerTest(WeekView)

	w := httptest.NewRecorder()
	handler.SetFocus(w, httptest.NewRequest(http.MethodPut, "/api/navigator/focus", bytes.NewBufferString(`{"date":"2024-01-15","hour":30}`)))
	state := decodeState(t, w)
	require.NotNil(t, state.FocusedHour)
	assert.Equal(t, 23, *state.FocusedHour)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, location), nav.State().FocusedCell.In(location))

	w = httptest.NewRecorder()
	handler.SetFocus(w, httptest.NewRequest(http.MethodPut, "/api/navigator/focus", bytes.NewBufferString(`{"date":"15.01.2024"}`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_HandleKey(t *testing.T) {
	handler, nav := setupHandlerTest(WeekView)
	nav.SetFocus(time.Date(2024, time.January, 15, 0, 0, 0, 0, location), 23)

	press := func(key string) (int, KeyResponseDTO) {
		body, _ := json.Marshal(KeyDTO{Key: key})
		w := httptest.NewRecorder()
		handler.HandleKey(w, httptest.NewRequest(http.MethodPost, "/api/navigator/key", bytes.NewBuffer(body)))
		var response KeyResponseDTO
		if w.Code == http.StatusOK {
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		}
		return w.Code, response
	}

	status, response := press("ArrowRight")
	assert.Equal(t, http.StatusOK, status)
	assert.Nil(t, response.Activation)
	assert.Equal(t, 16, response.State.FocusedCell.In(location).Day())

	status, response = press("Enter")
	assert.Equal(t, http.StatusOK, status)
	require.NotNil(t, response.Activation)
	require.NotNil(t, response.Activation.Hour)
	assert.Equal(t, 23, *response.Activation.Hour)
	assert.Equal(t, "2024-01-16", response.Activation.Form.StartDate)
	assert.Equal(t, "23:00", response.Activation.Form.StartTime)
	assert.Equal(t, "2024-01-17", response.Activation.Form.EndDate)
	assert.Equal(t, "00:00", response.Activation.Form.EndTime)

	status, _ = press("Escape")
	assert.Equal(t, http.StatusBadRequest, status)
}
