package game

import (
	"sync"
	"testing"

	"github.com/lox/liarsbar/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventRecorder captures events for testing
type eventRecorder struct {
	mu     sync.Mutex
	events []GameEvent
}

func (r *eventRecorder) OnEvent(event GameEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) types() []EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventType, len(r.events))
	for i, e := range r.events {
		out[i] = e.EventType()
	}
	return out
}

func (r *eventRecorder) last() GameEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return nil
	}
	return r.events[len(r.events)-1]
}

func TestEventSequence(t *testing.T) {
	bus := NewEventBus()
	rec := &eventRecorder{}
	bus.Subscribe(rec)

	g := NewTestGame(WithSource(NewScriptedSource(pickQueen, 1, pickQueen)), WithEventBus(bus))
	require.NoError(t, g.Start())
	require.NoError(t, g.Trust(deck.MustParseCards("A"), "", "a queen"))
	_, err := g.Challenge("", "")
	require.NoError(t, err)

	assert.Equal(t, []EventType{
		EventTypeRoundStart,
		EventTypePlayerAction,
		EventTypePlayerAction,
		EventTypeChallengeResolved,
		EventTypeRoundStart,
	}, rec.types())

	start := rec.events[0].(RoundStartEvent)
	assert.Equal(t, 1, start.Round)
	assert.Equal(t, deck.Queen, start.Target)
	assert.Equal(t, 0, start.FirstSeat)
	assert.False(t, start.Timestamp().IsZero())

	play := rec.events[1].(PlayerActionEvent)
	assert.Equal(t, Trust, play.Entry.Action)
	assert.Equal(t, "a queen", play.Entry.Statement)
	assert.Equal(t, 1, play.Snapshot().Current)

	challenge := rec.events[2].(PlayerActionEvent)
	assert.Equal(t, Challenge, challenge.Entry.Action)
	assert.Equal(t, PhaseResolving, challenge.View.Phase)

	resolved := rec.events[3].(ChallengeResolvedEvent)
	assert.Equal(t, 0, resolved.Resolution.Punished)
	assert.Equal(t, g.Narrative(), resolved.Narrative)
	assert.Equal(t, PhaseRoundClosed, resolved.View.Phase)
	require.NotNil(t, resolved.View.Resolution)

	next := rec.events[4].(RoundStartEvent)
	assert.Equal(t, 2, next.Round)
	assert.Equal(t, 0, next.FirstSeat)
}

func TestEventsRevealRationaleOnlyWhenAsked(t *testing.T) {
	for _, reveal := range []bool{false, true} {
		bus := NewEventBus()
		rec := &eventRecorder{}
		bus.Subscribe(rec)

		opts := []TestGameOption{WithSource(NewScriptedSource(pickQueen)), WithEventBus(bus)}
		if reveal {
			opts = append(opts, WithRevealedRationale())
		}
		g := NewTestGame(opts...)
		require.NoError(t, g.Start())
		require.NoError(t, g.Trust(deck.MustParseCards("A"), "pure bluff", ""))

		play, ok := rec.last().(PlayerActionEvent)
		require.True(t, ok)
		require.Len(t, play.View.GameLog, 1)

		want := ""
		if reveal {
			want = "pure bluff"
		}
		assert.Equal(t, want, play.Entry.Rationale, "reveal=%v", reveal)
		assert.Equal(t, want, play.View.GameLog[0].Rationale, "reveal=%v", reveal)

		// The ledger always keeps it
		assert.Equal(t, "pure bluff", g.Ledger().Log()[0].Rationale)
	}
}

func TestEventViewsAreSnapshots(t *testing.T) {
	bus := NewEventBus()
	rec := &eventRecorder{}
	bus.Subscribe(rec)

	g := NewTestGame(WithSource(NewScriptedSource(pickQueen)), WithEventBus(bus))
	require.NoError(t, g.Start())
	require.NoError(t, g.Trust(deck.MustParseCards("A A"), "", ""))

	start := rec.events[0].(RoundStartEvent)
	assert.Len(t, start.View.Players[0].Hand, HandSize, "later plays do not leak into earlier views")
	assert.Empty(t, start.View.CurrentRound)
}

func TestEventBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()
	first := &eventRecorder{}
	second := &eventRecorder{}
	bus.Subscribe(first)
	bus.Subscribe(second)

	bus.Publish(NewRoundStartEvent(1, deck.Ace, 0, View{}))
	bus.Unsubscribe(first)
	bus.Publish(NewRoundStartEvent(2, deck.King, 1, View{}))

	assert.Len(t, first.types(), 1)
	assert.Len(t, second.types(), 2)
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "challenge_resolved", EventTypeChallengeResolved.String())
	assert.Equal(t, "game_over", GameOverEvent{}.EventType().String())
}
