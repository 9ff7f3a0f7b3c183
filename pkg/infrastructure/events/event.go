// Package events records what happens to the material ledger, the product
// catalog and the backlog. Each material, product and order has its own
// stream; drain results go to QueueStream.
package events

import (
	"time"

	"github.com/google/uuid"
)

// Event is one immutable record. Data holds one of the payload structs from
// production_events.go.
type Event interface {
	ID() uuid.UUID
	Type() string
	StreamID() string
	Data() interface{}
	Timestamp() time.Time
	Version() int
}

// EventHandler consumes events of the types it accepts. Handlers run while
// the Instance lock is held and must not call back into it.
type EventHandler interface {
	Handle(event Event) error
	CanHandle(eventType string) bool
}

// EventStore appends versioned events and dispatches them to subscribers
type EventStore interface {
	AppendEvent(streamID string, event Event) error
	ReadEvents(streamID string, fromVersion int) ([]Event, error)
	ReadAllEvents(fromPosition int) ([]Event, error)
	Subscribe(eventTypes []string, handler EventHandler) error
	Unsubscribe(handler EventHandler) error
}

// BaseEvent is the concrete Event. EventVersion counts within Stream.
type BaseEvent struct {
	EventID      uuid.UUID
	EventType    string
	Stream       string
	EventData    interface{}
	EventTime    time.Time
	EventVersion int
}

func (e BaseEvent) ID() uuid.UUID {
	return e.EventID
}

func (e BaseEvent) Type() string {
	return e.EventType
}

func (e BaseEvent) StreamID() string {
	return e.Stream
}

func (e BaseEvent) Data() interface{} {
	return e.EventData
}

func (e BaseEvent) Timestamp() time.Time {
	return e.EventTime
}

func (e BaseEvent) Version() int {
	return e.EventVersion
}

// NewEvent stamps a payload with a fresh id and the current time. The store
// assigns the real stream version on append.
func NewEvent(eventType, streamID string, data interface{}) Event {
	return BaseEvent{
		EventID:      uuid.New(),
		EventType:    eventType,
		Stream:       streamID,
		EventData:    data,
		EventTime:    time.Now(),
		EventVersion: 1,
	}
}
