package blackjack

import (
	"time"

	"github.com/lox/blackjack/internal/deck"
)

// EventType identifies a round event
type EventType string

const (
	EventTypeRoundStart   EventType = "round_start"
	EventTypeCardsDealt   EventType = "cards_dealt"
	EventTypePlayerAction EventType = "player_action"
	EventTypeDealerTurn   EventType = "dealer_turn"
	EventTypeRoundEnd     EventType = "round_end"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent is anything the engine publishes while running a round
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
}

// RoundStartEvent is published once every seat has placed its bet
type RoundStartEvent struct {
	RoundID string
	Bets    []int
	At      time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.At }

// CardsDealtEvent carries the opening deal. ShuffleAt is the index of the
// card that brought out the cut card, or -1.
type CardsDealtEvent struct {
	Cards     []deck.Card
	ShuffleAt int
	At        time.Time
}

func (e CardsDealtEvent) EventType() EventType { return EventTypeCardsDealt }
func (e CardsDealtEvent) Timestamp() time.Time { return e.At }

// PlayerActionEvent is published after a seat's action is applied
type PlayerActionEvent struct {
	Seat      int
	Hand      int
	Action    Action
	Drawn     []deck.Card
	ShuffleAt int
	Score     int
	At        time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.At }

// DealerTurnEvent is published once the dealer stands
type DealerTurnEvent struct {
	Drawn     []deck.Card
	ShuffleAt int
	Score     int
	At        time.Time
}

func (e DealerTurnEvent) EventType() EventType { return EventTypeDealerTurn }
func (e DealerTurnEvent) Timestamp() time.Time { return e.At }

// RoundEndEvent summarises a settled round
type RoundEndEvent struct {
	Result *RoundResult
	At     time.Time
}

func (e RoundEndEvent) EventType() EventType { return EventTypeRoundEnd }
func (e RoundEndEvent) Timestamp() time.Time { return e.At }

// EventSubscriber can subscribe to round events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus manages event publishing and subscription
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously, in subscription order
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{}
}

// Subscribe adds a subscriber to receive events
func (bus *SimpleEventBus) Subscribe(subscriber EventSubscriber) {
	bus.subscribers = append(bus.subscribers, subscriber)
}

// Unsubscribe removes a subscriber from receiving events
func (bus *SimpleEventBus) Unsubscribe(subscriber EventSubscriber) {
	for i, sub := range bus.subscribers {
		if sub == subscriber {
			bus.subscribers = append(bus.subscribers[:i], bus.subscribers[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribers
func (bus *SimpleEventBus) Publish(event GameEvent) {
	for _, subscriber := range bus.subscribers {
		subscriber.OnEvent(event)
	}
}

// SubscriberFunc adapts a function to EventSubscriber. Func values are not
// comparable, so a SubscriberFunc cannot be unsubscribed.
type SubscriberFunc func(GameEvent)

// OnEvent calls f(event)
func (f SubscriberFunc) OnEvent(event GameEvent) {
	f(event)
}
