package events

import (
	"fmt"
	"sync"
)

// InMemoryEventStore keeps production events in memory. Subscribers are
// notified synchronously, in append order, after the store lock is released.
type InMemoryEventStore struct {
	streams     map[string][]Event
	subscribers map[string][]EventHandler
	mutex       sync.RWMutex
	position    int
	allEvents   []Event
	retention   int
}

// StoreOption configures an InMemoryEventStore
type StoreOption func(*InMemoryEventStore)

// WithRetention keeps only the most recent n events. Subscribers still see
// every event. Once all events of a stream are evicted its versions start
// over at 1. n <= 0 keeps everything.
func WithRetention(n int) StoreOption {
	return func(s *InMemoryEventStore) {
		s.retention = n
	}
}

// NewInMemoryEventStore creates an empty store. Without options it retains
// every event.
func NewInMemoryEventStore(opts ...StoreOption) *InMemoryEventStore {
	s := &InMemoryEventStore{
		streams:     make(map[string][]Event),
		subscribers: make(map[string][]EventHandler),
		allEvents:   make([]Event, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Verify interface compliance
var _ EventStore = (*InMemoryEventStore)(nil)

// AppendEvent versions the event within its stream, stores it and notifies
// the subscribers of its type.
func (s *InMemoryEventStore) AppendEvent(streamID string, event Event) error {
	s.mutex.Lock()

	version := 1
	if stream := s.streams[streamID]; len(stream) > 0 {
		version = stream[len(stream)-1].Version() + 1
	}
	eventWithVersion := BaseEvent{
		EventID:      event.ID(),
		EventType:    event.Type(),
		Stream:       streamID,
		EventData:    event.Data(),
		EventTime:    event.Timestamp(),
		EventVersion: version,
	}

	s.streams[streamID] = append(s.streams[streamID], eventWithVersion)
	s.allEvents = append(s.allEvents, eventWithVersion)
	s.position++
	if s.retention > 0 && len(s.allEvents) > s.retention {
		s.evictOldest()
	}
	handlers := append([]EventHandler(nil), s.subscribers[event.Type()]...)

	s.mutex.Unlock()

	return s.notifySubscribers(eventWithVersion, handlers)
}

// evictOldest drops the oldest retained event. Global order preserves stream
// order, so it is also the head of its own stream.
func (s *InMemoryEventStore) evictOldest() {
	oldest := s.allEvents[0]
	s.allEvents[0] = nil
	s.allEvents = s.allEvents[1:]

	stream := s.streams[oldest.StreamID()]
	if len(stream) <= 1 {
		delete(s.streams, oldest.StreamID())
		return
	}
	stream[0] = nil
	s.streams[oldest.StreamID()] = stream[1:]
}

// ReadEvents returns the retained events of one stream from a version on
func (s *InMemoryEventStore) ReadEvents(streamID string, fromVersion int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	events, exists := s.streams[streamID]
	if !exists {
		return []Event{}, nil
	}

	first := events[0].Version()
	if fromVersion < first {
		fromVersion = first
	}

	if fromVersion-first >= len(events) {
		return []Event{}, nil
	}

	return append([]Event(nil), events[fromVersion-first:]...), nil
}

// ReadAllEvents returns the retained events from a global position on.
// Positions count every appended event, evicted ones included.
func (s *InMemoryEventStore) ReadAllEvents(fromPosition int) ([]Event, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	base := s.position - len(s.allEvents)
	if fromPosition < base {
		fromPosition = base
	}

	if fromPosition >= s.position {
		return []Event{}, nil
	}

	return append([]Event(nil), s.allEvents[fromPosition-base:]...), nil
}

// Position returns the number of events appended so far
func (s *InMemoryEventStore) Position() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.position
}

// Subscribe registers handler for the given event types
func (s *InMemoryEventStore) Subscribe(eventTypes []string, handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, eventType := range eventTypes {
		s.subscribers[eventType] = append(s.subscribers[eventType], handler)
	}

	return nil
}

// Unsubscribe removes handler from every event type
func (s *InMemoryEventStore) Unsubscribe(handler EventHandler) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for eventType, handlers := range s.subscribers {
		newHandlers := make([]EventHandler, 0, len(handlers))
		for _, h := range handlers {
			if h != handler {
				newHandlers = append(newHandlers, h)
			}
		}
		s.subscribers[eventType] = newHandlers
	}

	return nil
}

func (s *InMemoryEventStore) notifySubscribers(event Event, handlers []EventHandler) error {
	var firstErr error
	for _, handler := range handlers {
		if !handler.CanHandle(event.Type()) {
			continue
		}
		if err := handler.Handle(event); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("handling event %s: %w", event.Type(), err)
		}
	}
	return firstErr
}
