package game

import (
	"time"

	"github.com/lox/liarsbar/internal/deck"
)

// EventType represents a game event type with type safety
type EventType string

// EventType constants for game domain events
const (
	EventTypeRoundStart        EventType = "round_start"
	EventTypePlayerAction      EventType = "player_action"
	EventTypeChallengeResolved EventType = "challenge_resolved"
	EventTypeGameOver          EventType = "game_over"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// GameEvent represents anything that happens during a game. Every event
// carries a View taken right after the change it describes.
type GameEvent interface {
	EventType() EventType
	Timestamp() time.Time
	Snapshot() View
}

// RoundStartEvent is published after a fresh deal
type RoundStartEvent struct {
	Round     int
	Target    deck.Card
	FirstSeat int
	View      View
	timestamp time.Time
}

func (e RoundStartEvent) EventType() EventType { return EventTypeRoundStart }
func (e RoundStartEvent) Timestamp() time.Time { return e.timestamp }
func (e RoundStartEvent) Snapshot() View       { return e.View }

// NewRoundStartEvent creates a new round start event
func NewRoundStartEvent(round int, target deck.Card, firstSeat int, view View) RoundStartEvent {
	return RoundStartEvent{
		Round:     round,
		Target:    target,
		FirstSeat: firstSeat,
		View:      view,
		timestamp: time.Now(),
	}
}

// PlayerActionEvent is published when a trust or challenge is recorded
type PlayerActionEvent struct {
	Entry     LogEntry
	View      View
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }
func (e PlayerActionEvent) Snapshot() View       { return e.View }

// NewPlayerActionEvent creates a new player action event
func NewPlayerActionEvent(entry LogEntry, view View) PlayerActionEvent {
	entry.Cards = entry.Cards.Clone()
	return PlayerActionEvent{
		Entry:     entry,
		View:      view,
		timestamp: time.Now(),
	}
}

// ChallengeResolvedEvent is published once a challenge has been resolved,
// before the next round is dealt.
type ChallengeResolvedEvent struct {
	Resolution Resolution
	Narrative  []string
	View       View
	timestamp  time.Time
}

func (e ChallengeResolvedEvent) EventType() EventType { return EventTypeChallengeResolved }
func (e ChallengeResolvedEvent) Timestamp() time.Time { return e.timestamp }
func (e ChallengeResolvedEvent) Snapshot() View       { return e.View }

// NewChallengeResolvedEvent creates a new challenge resolved event
func NewChallengeResolvedEvent(res Resolution, narrative []string, view View) ChallengeResolvedEvent {
	return ChallengeResolvedEvent{
		Resolution: res,
		Narrative:  narrative,
		View:       view,
		timestamp:  time.Now(),
	}
}

// GameOverEvent is published when the game reaches a terminal state.
// WinnerSeat is -1 when the human was eliminated with several players left.
type GameOverEvent struct {
	WinnerSeat      int
	HumanEliminated bool
	View            View
	timestamp       time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }
func (e GameOverEvent) Snapshot() View       { return e.View }

func (g *Game) newGameOverEvent() GameOverEvent {
	e := GameOverEvent{
		WinnerSeat:      -1,
		HumanEliminated: g.humanSeat >= 0 && !g.players[g.humanSeat].Alive,
		View:            g.snapshot(),
		timestamp:       time.Now(),
	}
	if winner, err := g.Winner(); err == nil {
		e.WinnerSeat = winner.Seat
	}
	return e
}

// EventSubscriber receives game events
type EventSubscriber interface {
	OnEvent(event GameEvent)
}

// EventBus delivers game events to subscribers
type EventBus interface {
	Subscribe(subscriber EventSubscriber)
	Unsubscribe(subscriber EventSubscriber)
	Publish(event GameEvent)
}

// SimpleEventBus delivers events synchronously in subscription order
type SimpleEventBus struct {
	subscribers []EventSubscriber
}

// NewEventBus creates a new event bus
func NewEventBus() EventBus {
	return &SimpleEventBus{
		subscribers: make([]EventSubscriber, 0),
	}
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
