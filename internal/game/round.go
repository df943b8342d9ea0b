package game

import (
	"fmt"

	"github.com/lox/liarsbar/internal/deck"
)

// StartRound rebuilds the deck, picks the target uniformly from the base deck,
// adds the bonus target copies, shuffles and deals every seat a fresh hand.
// The current seat is left as the previous resolution set it.
func (g *Game) StartRound() error {
	if g.phase != PhaseIdle && g.phase != PhaseRoundClosed {
		return fmt.Errorf("%w: cannot start a round while %s", ErrProtocolMisuse, g.phase)
	}
	if !g.players[g.current].Alive {
		return fmt.Errorf("%w: %w: %s", ErrInvariant, ErrDeadCurrent, SeatName(g.current))
	}

	g.deck.Reset()
	target, err := g.deck.ChooseTarget()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvariant, err)
	}
	g.deck.Augment(target, deck.TargetBonus)
	if size, want := g.deck.CardsRemaining(), NumPlayers*HandSize; size != want {
		return fmt.Errorf("%w: %w: deck has %d cards, need %d", ErrInvariant, ErrDeckSize, size, want)
	}
	g.deck.Shuffle()

	for _, p := range g.players {
		p.Hand = g.deck.Deal(HandSize)
	}

	g.target = target
	g.pile = nil
	g.round++
	g.phase = PhaseAwaitingDecision

	if err := g.ValidateConservation(); err != nil {
		return err
	}

	g.logger.Debug("Round started", "round", g.round, "target", target, "first", SeatName(g.current))
	g.eventBus.Publish(NewRoundStartEvent(g.round, target, g.current, g.snapshot()))
	return nil
}
