package app

import (
	"fmt"
	"time"

	"github.com/klokku/calview/internal/config"
	"github.com/klokku/calview/internal/event_bus"
	"github.com/klokku/calview/internal/utils"
	"github.com/klokku/calview/pkg/calendar_view"
	"github.com/klokku/calview/pkg/event"
	"github.com/klokku/calview/pkg/event_store"
	"github.com/klokku/calview/pkg/grid"
	"github.com/klokku/calview/pkg/navigator"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Clock    utils.Clock
	Grid     grid.Grid
	EventBus *event_bus.EventBus

	EventStore        *event_store.Store
	EventStoreHandler *event_store.Handler

	Navigator        *navigator.Navigator
	NavigatorHandler *navigator.Handler

	ViewBuilder       *calendar_view.Builder
	CsvAgendaRenderer *calendar_view.CsvAgendaRenderer
	ViewHandler       *calendar_view.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	loc, err := cfg.Calendar.Location()
	if err != nil {
		return nil, err
	}
	weekStart, err := grid.ParseWeekday(cfg.Calendar.WeekStart)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar week start: %w", err)
	}
	initialView, err := navigator.ParseViewMode(cfg.Calendar.InitialView)
	if err != nil {
		return nil, err
	}
	seed, err := seedEvents(cfg.Calendar.Events, loc)
	if err != nil {
		return nil, err
	}

	deps.Clock = &utils.SystemClock{Loc: loc}
	deps.Grid = grid.New(weekStart)
	deps.EventBus = event_bus.NewEventBus()
	subscribeEventLogging(deps.EventBus)

	deps.EventStore, err = event_store.NewStore(event.UUIDGenerator{}, deps.EventBus, deps.Clock, seed)
	if err != nil {
		return nil, err
	}
	deps.EventStoreHandler = event_store.NewHandler(deps.EventStore, deps.Clock)

	deps.Navigator = navigator.New(deps.Clock.Now(), initialView)
	deps.NavigatorHandler = navigator.NewHandler(deps.Navigator, deps.Clock)

	deps.ViewBuilder = calendar_view.NewBuilder(deps.Grid)
	deps.CsvAgendaRenderer = calendar_view.NewCsvAgendaRenderer()
	deps.ViewHandler = calendar_view.NewHandler(deps.ViewBuilder, deps.Navigator, deps.EventStore, deps.CsvAgendaRenderer, deps.Clock)

	log.Infof("Calendar ready: week starts on %s, timezone %s, %d seed events", weekStart, loc, len(seed))
	return deps, nil
}

func seedEvents(seeds []config.SeedEvent, loc *time.Location) ([]event.Event, error) {
	events := make([]event.Event, 0, len(seeds))
	for _, s := range seeds {
		start, end, err := s.Times(loc)
		if err != nil {
			return nil, err
		}
		e := event.Event{
			Id:          s.Id,
			Title:       s.Title,
			Description: s.Description,
			StartDate:   start,
			EndDate:     end,
			Color:       event.Color(s.Color),
			Category:    s.Category,
		}
		if err := e.Validate(); err != nil {
			return nil, fmt.Errorf("seed event %q: %w", s.Title, err)
		}
		events = append(events, e)
	}
	return events, nil
}

func subscribeEventLogging(bus *event_bus.EventBus) {
	event_bus.SubscribeTyped(bus, event_bus.CalendarEventCreatedType, func(e event_bus.EventT[event_bus.CalendarEventCreated]) error {
		log.Infof("Event created: %s %q", e.Data.Event.Id, e.Data.Event.Title)
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.CalendarEventUpdatedType, func(e event_bus.EventT[event_bus.CalendarEventUpdated]) error {
		log.Infof("Event updated: %s %q", e.Data.Id, e.Data.Event.Title)
		return nil
	})
	event_bus.SubscribeTyped(bus, event_bus.CalendarEventDeletedType, func(e event_bus.EventT[event_bus.CalendarEventDeleted]) error {
		log.Infof("Event deleted: %s", e.Data.Id)
		return nil
	})
}
