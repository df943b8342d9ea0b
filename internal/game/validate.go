package game

import (
	"fmt"

	"github.com/lox/liarsbar/internal/deck"
)

// IsLegal reports whether proposed can be played from hand for action.
// Proposed cards must be removable from the hand one-for-one; order does not
// matter. An empty proposal is only legal for a challenge.
func IsLegal(hand, proposed deck.Cards, action Action) bool {
	switch action {
	case Trust:
		return len(proposed) > 0 && hand.Contains(proposed)
	case Challenge:
		return hand.Contains(proposed)
	default:
		return false
	}
}

// ValidateDecision checks a decision for the current player without applying
// it. Every error wraps ErrInvalidDecision.
func (g *Game) ValidateDecision(d Decision) error {
	if err := g.checkActing(); err != nil {
		return err
	}
	player := g.players[g.current]

	switch d.Action {
	case Trust:
		if len(d.Cards) == 0 {
			return fmt.Errorf("%w: %w: trust must play at least one card", ErrInvalidDecision, ErrIllegalCards)
		}
		if !IsLegal(player.Hand, d.Cards, Trust) {
			return fmt.Errorf("%w: %w: %s not in hand [%s]", ErrInvalidDecision, ErrIllegalCards, d.Cards, player.Hand)
		}
	case Challenge:
		if g.ledger.Len() == 0 {
			return fmt.Errorf("%w: %w", ErrInvalidDecision, ErrNothingToChallenge)
		}
		if !IsLegal(player.Hand, d.Cards, Challenge) {
			return fmt.Errorf("%w: %w: %s not in hand [%s]", ErrInvalidDecision, ErrIllegalCards, d.Cards, player.Hand)
		}
	default:
		return fmt.Errorf("%w: %w: got %q", ErrInvalidDecision, ErrInvalidAction, d.Action)
	}
	return nil
}

// SafeDefault is the move applied when an automated player cannot produce a
// valid decision: trust with the first card in hand, or challenge when the
// hand is empty.
func (g *Game) SafeDefault(reason string) Decision {
	player := g.players[g.current]
	if len(player.Hand) == 0 {
		return Decision{Action: Challenge, Rationale: reason}
	}
	return Decision{
		Action:    Trust,
		Cards:     deck.Cards{player.Hand[0]},
		Rationale: reason,
	}
}
