// Package events provides the synchronous publish/subscribe bus the
// engine components report into, and the auditor that bridges stack
// resolution outcomes onto it. The bus is a pure sink: nothing a
// listener does feeds back into the engine.
package events

import (
	"sync"
	"time"
)

// EventType categorizes an engine event.
type EventType string

const (
	EventSpellResolved   EventType = "SPELL_RESOLVED"
	EventSpellFizzled    EventType = "SPELL_FIZZLED"
	EventSpellDeclined   EventType = "SPELL_DECLINED"
	EventTriggerQueued   EventType = "TRIGGER_QUEUED"
	EventZoneChange      EventType = "ZONE_CHANGE"
	EventCombatDamage    EventType = "COMBAT_DAMAGE"
	EventPhaseChanged    EventType = "PHASE_CHANGED"
	EventStateBasedSweep EventType = "STATE_BASED_ACTION"
	EventPlayerLost      EventType = "PLAYER_LOST"
)

// Event is one state change other subsystems may react to.
type Event struct {
	Type        EventType
	SourceID    string
	TargetID    string
	Controller  string
	Amount      int
	Zone        string
	Description string
	Timestamp   time.Time
	Metadata    map[string]string
}

// NewEvent builds an event stamped with the current time.
func NewEvent(eventType EventType, description string) Event {
	return Event{Type: eventType, Description: description, Timestamp: time.Now()}
}

// Listener reacts to incoming events.
type Listener func(Event)

type typedListener struct {
	handle   int
	callback func(Event)
}

// Bus is a synchronous publish/subscribe hub with optional type
// filtering.
type Bus struct {
	mu             sync.RWMutex
	listeners      map[int]Listener
	typedListeners map[EventType][]typedListener
	nextHandle     int
}

func NewBus() *Bus {
	return &Bus{
		listeners:      make(map[int]Listener),
		typedListeners: make(map[EventType][]typedListener),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (b *Bus) Subscribe(listener Listener) int {
	if listener == nil {
		return -1
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	handle := b.nextHandle
	b.nextHandle++
	b.listeners[handle] = listener
	return handle
}

// SubscribeTyped registers a listener for one event type.
func (b *Bus) SubscribeTyped(eventType EventType, callback func(Event)) int {
	if callback == nil {
		return -1
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	handle := b.nextHandle
	b.nextHandle++
	b.typedListeners[eventType] = append(b.typedListeners[eventType], typedListener{
		handle:   handle,
		callback: callback,
	})
	return handle
}

// Unsubscribe removes the listener identified by the handle.
func (b *Bus) Unsubscribe(handle int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.listeners, handle)
	for eventType, listeners := range b.typedListeners {
		for i := len(listeners) - 1; i >= 0; i-- {
			if listeners[i].handle == handle {
				b.typedListeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers the event to every registered listener
// synchronously, untyped listeners first.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, listener := range b.listeners {
		listener(event)
	}
	for _, listener := range b.typedListeners[event.Type] {
		listener.callback(event)
	}
}

// PublishBatch publishes events in order.
func (b *Bus) PublishBatch(events []Event) {
	for _, event := range events {
		b.Publish(event)
	}
}
