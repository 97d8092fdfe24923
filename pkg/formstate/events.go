package formstate

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// EventType identifies a field or form lifecycle event.
type EventType string

const (
	EventFieldChange        EventType = "field_change"
	EventFieldBlur          EventType = "field_blur"
	EventValidationComplete EventType = "validation_complete"
	EventFormSubmit         EventType = "form_submit"
)

// Event is the payload delivered to registered listeners.
type Event struct {
	ID        uuid.UUID
	Type      EventType
	FormID    string
	Field     string
	Value     any
	Result    *Result
	Timestamp time.Time
}

// Listener receives store events. Listeners run synchronously in
// registration order; a panicking listener is isolated and logged without
// affecting the others.
type Listener func(Event)

// Subscription is the handle returned by Subscribe, used to remove exactly
// the listener it was issued for.
type Subscription struct {
	id uuid.UUID
}

type listenerEntry struct {
	id       uuid.UUID
	listener Listener
}

// Subscribe registers a listener for all store events.
func (s *Store) Subscribe(l Listener) Subscription {
	sub := Subscription{id: uuid.New()}
	if l == nil {
		return sub
	}

	s.mu.Lock()
	s.listeners = append(s.listeners, listenerEntry{id: sub.id, listener: l})
	s.mu.Unlock()
	return sub
}

// Unsubscribe removes the listener identified by the subscription. Unknown
// subscriptions are ignored.
func (s *Store) Unsubscribe(sub Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, entry := range s.listeners {
		if entry.id == sub.id {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

// newEvent stamps an event with identity and time.
func (s *Store) newEvent(t EventType, formID, field string, value any, result *Result) Event {
	return Event{
		ID:        uuid.New(),
		Type:      t,
		FormID:    formID,
		Field:     field,
		Value:     value,
		Result:    result,
		Timestamp: s.now(),
	}
}

// emit delivers the event to every listener in registration order. Must be
// called without holding the store mutex so listeners can call back into the
// store.
func (s *Store) emit(event Event) {
	s.mu.RLock()
	entries := make([]listenerEntry, len(s.listeners))
	copy(entries, s.listeners)
	s.mu.RUnlock()

	for _, entry := range entries {
		s.deliver(entry, event)
	}
}

func (s *Store) deliver(entry listenerEntry, event Event) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("event listener panicked",
				slog.String("listener_id", entry.id.String()),
				slog.String("event_type", string(event.Type)),
				slog.String("form_id", event.FormID),
				slog.Any("panic", r))
		}
	}()
	entry.listener(event)
}
