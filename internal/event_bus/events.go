package event_bus

import "github.com/klokku/calview/pkg/event"

const (
	CalendarEventCreatedType EventType = "calendar.event.created"
	CalendarEventUpdatedType EventType = "calendar.event.updated"
	CalendarEventDeletedType EventType = "calendar.event.deleted"
)

// CalendarEventCreated carries the event returned by the store.
type CalendarEventCreated struct {
	Event event.Event
}

// CalendarEventUpdated carries the accepted changes and the resulting event.
type CalendarEventUpdated struct {
	Id      string
	Changes event.Changes
	Event   event.Event
}

type CalendarEventDeleted struct {
	Id string
}
