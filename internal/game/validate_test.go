package game

import (
	"testing"

	"github.com/lox/liarsbar/internal/deck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLegal(t *testing.T) {
	hand := deck.MustParseCards("A A K")

	tests := []struct {
		name     string
		proposed deck.Cards
		action   Action
		want     bool
	}{
		{"pair of aces", deck.MustParseCards("A A"), Trust, true},
		{"order does not matter", deck.MustParseCards("K A"), Trust, true},
		{"whole hand", deck.MustParseCards("A K A"), Trust, true},
		{"too many aces", deck.MustParseCards("A A A"), Trust, false},
		{"card not held", deck.MustParseCards("Q"), Trust, false},
		{"empty trust", deck.Cards{}, Trust, false},
		{"empty challenge", deck.Cards{}, Challenge, true},
		{"challenge with held cards", deck.MustParseCards("K"), Challenge, true},
		{"challenge with foreign cards", deck.MustParseCards("Q"), Challenge, false},
		{"unknown action", deck.MustParseCards("A"), ActionUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLegal(hand, tt.proposed, tt.action))
		})
	}
}

func TestValidateDecisionBeforeStart(t *testing.T) {
	g := NewTestGame()

	err := g.ValidateDecision(Decision{Action: Trust, Cards: deck.MustParseCards("A")})
	require.ErrorIs(t, err, ErrProtocolMisuse)
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestValidateDecision(t *testing.T) {
	// Target Q with an identity shuffle: player1 holds A A A A A
	g := NewTestGame(WithSource(NewScriptedSource(12)))
	require.NoError(t, g.Start())
	require.Equal(t, deck.MustParseCards("A A A A A"), g.Player(0).Hand)

	tests := []struct {
		name     string
		decision Decision
		wantErr  []error
	}{
		{"play one ace", Decision{Action: Trust, Cards: deck.MustParseCards("A")}, nil},
		{"play every ace", Decision{Action: Trust, Cards: deck.MustParseCards("A A A A A")}, nil},
		{"empty trust", Decision{Action: Trust}, []error{ErrInvalidDecision, ErrIllegalCards}},
		{"card not held", Decision{Action: Trust, Cards: deck.MustParseCards("K")}, []error{ErrInvalidDecision, ErrIllegalCards}},
		{"challenge opening play", Decision{Action: Challenge}, []error{ErrInvalidDecision, ErrNothingToChallenge}},
		{"unknown action", Decision{Action: ActionUnknown}, []error{ErrInvalidDecision, ErrInvalidAction}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.ValidateDecision(tt.decision)
			if len(tt.wantErr) == 0 {
				assert.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.ErrorIs(t, err, want)
			}
		})
	}

	// Validation never mutates state
	assert.Len(t, g.Player(0).Hand, HandSize)
	assert.Zero(t, g.Ledger().Len())
}

func TestValidateChallengeCards(t *testing.T) {
	g := NewTestGame(WithSource(NewScriptedSource(12)))
	require.NoError(t, g.Start())
	require.NoError(t, g.Trust(deck.MustParseCards("A"), "", ""))

	// player2 holds A K K K K
	assert.NoError(t, g.ValidateDecision(Decision{Action: Challenge}))
	assert.NoError(t, g.ValidateDecision(Decision{Action: Challenge, Cards: deck.MustParseCards("K")}))
	assert.ErrorIs(t, g.ValidateDecision(Decision{Action: Challenge, Cards: deck.MustParseCards("Q")}), ErrIllegalCards)
}

func TestSafeDefault(t *testing.T) {
	g := NewTestGame(WithSource(NewScriptedSource(12)))
	require.NoError(t, g.Start())

	d := g.SafeDefault("retries exhausted")
	assert.Equal(t, Trust, d.Action)
	assert.Equal(t, deck.Cards{deck.Ace}, d.Cards)
	assert.Equal(t, "retries exhausted", d.Rationale)
	assert.NoError(t, g.ValidateDecision(d))

	require.NoError(t, g.Trust(g.Player(0).Hand, "", ""))
	require.NoError(t, g.Trust(deck.MustParseCards("A K K K K"), "", ""))
	require.NoError(t, g.Trust(deck.MustParseCards("K K Q Q Q"), "", ""))
	require.NoError(t, g.Trust(deck.MustParseCards("Q Q Q Q Q"), "", ""))

	// Back at player1 with an empty hand
	require.Equal(t, 0, g.CurrentSeat())
	d = g.SafeDefault("timed out")
	assert.Equal(t, Challenge, d.Action)
	assert.NoError(t, g.ValidateDecision(d))
	assert.True(t, g.Prompt().MustChallenge)
}
