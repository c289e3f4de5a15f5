package event_store

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/klokku/calview/internal/event_bus"
	"github.com/klokku/calview/internal/utils"
	"github.com/klokku/calview/pkg/event"
	log "github.com/sirupsen/logrus"
)

// ErrEventNotFound is returned by Update, Delete and Get for an unknown id.
var ErrEventNotFound = errors.New("event not found")

var ErrDuplicateId = errors.New("duplicate event id")

// Store owns the list of calendar events. Every mutation installs a new
// slice, so a snapshot taken earlier never changes. Mutations are serialised.
type Store struct {
	mu     sync.Mutex
	events []event.Event
	ids    event.IdGenerator
	bus    *event_bus.EventBus
	clock  utils.Clock
}

// NewStore creates a store holding initial, in order. Initial events without
// an id get one from ids.
func NewStore(ids event.IdGenerator, bus *event_bus.EventBus, clock utils.Clock, initial []event.Event) (*Store, error) {
	s := &Store{
		events: make([]event.Event, 0, len(initial)),
		ids:    ids,
		bus:    bus,
		clock:  clock,
	}
	for _, e := range initial {
		if e.Id == "" {
			e.Id = s.newId()
		} else if s.indexOf(e.Id) >= 0 {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateId, e.Id)
		}
		if e.Color == "" {
			e.Color = event.Blue
		}
		s.events = append(s.events, e)
	}
	log.Debugf("event store created with %d events", len(s.events))
	return s, nil
}

// Snapshot returns the events in insertion order.
func (s *Store) Snapshot() []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.events)
}

func (s *Store) Get(id string) (event.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return event.Event{}, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	return s.events[idx], nil
}

// Create validates draft, stores it under a fresh id at the end of the list
// and fires the created hook.
func (s *Store) Create(ctx context.Context, draft event.Draft) (event.Event, error) {
	if err := draft.Validate(); err != nil {
		return event.Event{}, err
	}

	s.mu.Lock()
	created := draft.WithId(s.newId())
	next := make([]event.Event, 0, len(s.events)+1)
	next = append(next, s.events...)
	s.events = append(next, created)
	s.mu.Unlock()

	log.Debugf("created event %s", created.Id)
	s.publish(ctx, event_bus.CalendarEventCreatedType, event_bus.CalendarEventCreated{Event: created})
	return created, nil
}

// Update applies changes to the event with the given id. The merged event
// must be valid; otherwise nothing changes.
func (s *Store) Update(ctx context.Context, id string, changes event.Changes) (event.Event, error) {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		log.Debugf("update of unknown event %s", id)
		return event.Event{}, fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	updated := changes.Apply(s.events[idx])
	if err := updated.Validate(); err != nil {
		s.mu.Unlock()
		return event.Event{}, err
	}
	next := slices.Clone(s.events)
	next[idx] = updated
	s.events = next
	s.mu.Unlock()

	log.Debugf("updated event %s", id)
	s.publish(ctx, event_bus.CalendarEventUpdatedType, event_bus.CalendarEventUpdated{Id: id, Changes: changes, Event: updated})
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx < 0 {
		s.mu.Unlock()
		log.Debugf("delete of unknown event %s", id)
		return fmt.Errorf("%w: %s", ErrEventNotFound, id)
	}
	next := make([]event.Event, 0, len(s.events)-1)
	next = append(next, s.events[:idx]...)
	s.events = append(next, s.events[idx+1:]...)
	s.mu.Unlock()

	log.Debugf("deleted event %s", id)
	s.publish(ctx, event_bus.CalendarEventDeletedType, event_bus.CalendarEventDeleted{Id: id})
	return nil
}

// newId must be called with mu held.
func (s *Store) newId() string {
	id := s.ids.NewId()
	for s.indexOf(id) >= 0 {
		id = s.ids.NewId()
	}
	return id
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.events, func(e event.Event) bool {
		return e.Id == id
	})
}

// publish runs after the mutation is visible. Hook failures are logged and
// do not undo the mutation. Hooks fire even when ctx is already cancelled.
func (s *Store) publish(ctx context.Context, eventType event_bus.EventType, payload any) {
	if s.bus == nil {
		return
	}
	busEvent := event_bus.NewEvent(context.WithoutCancel(ctx), eventType, s.clock.Now(), payload)
	if err := s.bus.Publish(busEvent); err != nil {
		log.Errorf("failed to publish %s: %v", eventType, err)
	}
}
