package rules

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType indicates the category of a game event.
type EventType string

const (
	// Card movement events, one per primitive mutation
	EventDraw      EventType = "DRAW"
	EventReveal    EventType = "REVEAL"
	EventMeld      EventType = "MELD"
	EventTuck      EventType = "TUCK"
	EventScore     EventType = "SCORE"
	EventReturn    EventType = "RETURN"
	EventTransfer  EventType = "TRANSFER"
	EventAchieve   EventType = "ACHIEVE"
	EventSplay     EventType = "SPLAY"
	EventSetAside  EventType = "SET_ASIDE"
	EventEmptyDraw EventType = "EMPTY_DRAW"

	// Decision events
	EventOptionChosen EventType = "OPTION_CHOSEN"

	// Dogma events
	EventDogmaStarted    EventType = "DOGMA_STARTED"
	EventEffectResolving EventType = "EFFECT_RESOLVING"
	EventShareDetected   EventType = "SHARE_DETECTED"
	EventShareBonus      EventType = "SHARE_BONUS"
	EventDogmaFinished   EventType = "DOGMA_FINISHED"

	// Turn events
	EventTurnStarted EventType = "TURN_STARTED"
	EventActionTaken EventType = "ACTION_TAKEN"
	EventTurnEnded   EventType = "TURN_ENDED"
	EventGameOver    EventType = "GAME_OVER"
)

// IsMutation reports whether the event describes a change to pile contents or splay.
func (et EventType) IsMutation() bool {
	switch et {
	case EventDraw, EventMeld, EventTuck, EventScore, EventReturn,
		EventTransfer, EventAchieve, EventSplay, EventSetAside:
		return true
	default:
		return false
	}
}

// Event represents something that happened during play.
type Event struct {
	Type        EventType
	ID          string            // Unique event ID
	PlayerID    string            // Player the event happened to
	CardID      string            // Card that moved or triggered
	SourceID    string            // Dogma card whose effect caused the event, if any
	From        string            // Pile the card left
	To          string            // Pile the card entered
	Amount      int               // Age, count, or icon total depending on the event
	Data        string            // Additional string data
	Timestamp   time.Time         // When the event occurred
	Metadata    map[string]string // Additional metadata
	Description string            // Human-readable description
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

type subscription struct {
	handle    int
	eventType EventType // empty for all events
	callback  Listener
}

// EventBus provides a synchronous publish/subscribe implementation with type filtering.
// Listeners are invoked in subscription order.
type EventBus struct {
	mu         sync.RWMutex
	subs       []subscription
	nextHandle int
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{
		subs: make([]subscription, 0, 4),
	}
}

// Subscribe registers a listener for all events and returns a handle.
func (bus *EventBus) Subscribe(listener Listener) int {
	return bus.add("", listener)
}

// SubscribeTyped registers a listener for a specific event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, listener Listener) int {
	return bus.add(eventType, listener)
}

func (bus *EventBus) add(eventType EventType, listener Listener) int {
	if listener == nil {
		return -1
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	handle := bus.nextHandle
	bus.nextHandle++
	bus.subs = append(bus.subs, subscription{handle: handle, eventType: eventType, callback: listener})
	return handle
}

// Unsubscribe removes the listener identified by the provided handle.
func (bus *EventBus) Unsubscribe(handle int) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	for i, sub := range bus.subs {
		if sub.handle == handle {
			bus.subs = append(bus.subs[:i], bus.subs[i+1:]...)
			return
		}
	}
}

// Publish delivers the event to all registered listeners synchronously.
func (bus *EventBus) Publish(event Event) {
	bus.mu.RLock()
	subs := make([]subscription, len(bus.subs))
	copy(subs, bus.subs)
	bus.mu.RUnlock()

	for _, sub := range subs {
		if sub.eventType != "" && sub.eventType != event.Type {
			continue
		}
		sub.callback(event)
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, playerID, cardID string) Event {
	return Event{
		Type:      eventType,
		ID:        uuid.NewString(),
		PlayerID:  playerID,
		CardID:    cardID,
		Timestamp: time.Now(),
		Metadata:  make(map[string]string),
	}
}

// NewMoveEvent creates an event for a card moving between two piles.
func NewMoveEvent(eventType EventType, playerID, cardID, from, to string) Event {
	evt := NewEvent(eventType, playerID, cardID)
	evt.From = from
	evt.To = to
	return evt
}

// NewEventWithAmount creates a new event with an amount value.
func NewEventWithAmount(eventType EventType, playerID, cardID string, amount int) Event {
	evt := NewEvent(eventType, playerID, cardID)
	evt.Amount = amount
	return evt
}
