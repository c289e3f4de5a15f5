package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/calview/internal/config"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Events
	r.HandleFunc("/api/events", deps.EventStoreHandler.GetEvents).Methods("GET")
	r.HandleFunc("/api/events", deps.EventStoreHandler.CreateEvent).Methods("POST")
	r.HandleFunc("/api/events/day", deps.EventStoreHandler.GetDayEvents).Queries("date", "{date}").Methods("GET")
	r.HandleFunc("/api/events/form", deps.EventStoreHandler.GetNewEventForm).Queries("date", "{date}").Methods("GET")
	r.HandleFunc("/api/events/form", deps.EventStoreHandler.SubmitNewEventForm).Methods("POST")
	r.HandleFunc("/api/events/{eventId}", deps.EventStoreHandler.UpdateEvent).Methods("PUT")
	r.HandleFunc("/api/events/{eventId}", deps.EventStoreHandler.DeleteEvent).Methods("DELETE")
	r.HandleFunc("/api/events/{eventId}/form", deps.EventStoreHandler.GetEventForm).Methods("GET")
	r.HandleFunc("/api/events/{eventId}/form", deps.EventStoreHandler.SubmitEventForm).Methods("PUT")

	// Navigator
	r.HandleFunc("/api/navigator", deps.NavigatorHandler.GetState).Methods("GET")
	r.HandleFunc("/api/navigator/next", deps.NavigatorHandler.GoNext).Methods("POST")
	r.HandleFunc("/api/navigator/previous", deps.NavigatorHandler.GoPrevious).Methods("POST")
	r.HandleFunc("/api/navigator/today", deps.NavigatorHandler.GoToday).Methods("POST")
	r.HandleFunc("/api/navigator/view", deps.NavigatorHandler.SetViewMode).Methods("PUT")
	r.HandleFunc("/api/navigator/focus", deps.NavigatorHandler.SetFocus).Methods("PUT")
	r.HandleFunc("/api/navigator/key", deps.NavigatorHandler.HandleKey).Methods("POST")

	// Rendered view
	r.HandleFunc("/api/view", deps.ViewHandler.GetView).Methods("GET")

	// CORS preflight, answered by the middleware
	r.PathPrefix("/api/").Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}
