package game

import (
	"fmt"

	"github.com/lox/liarsbar/internal/deck"
)

// Resolution is the structured outcome of a challenge
type Resolution struct {
	Round        int        `json:"round"`
	Challenger   int        `json:"challenger"`
	Accused      int        `json:"accused"`
	AccusedCards deck.Cards `json:"accused_cards"`
	Target       deck.Card  `json:"target"`
	WasTruthful  bool       `json:"was_truthful"`
	Punished     int        `json:"punished"`
	Eliminated   bool       `json:"eliminated"`
	FactorBefore int        `json:"factor_before"`
	Draw         int        `json:"draw"`         // 0 when the trial was skipped
	DrawSkipped  bool       `json:"draw_skipped"` // factor had already reached 0
}

func (r Resolution) clone() Resolution {
	r.AccusedCards = r.AccusedCards.Clone()
	return r
}

// Apply applies a decision for the current player. Only a challenge returns a
// Resolution.
func (g *Game) Apply(d Decision) (*Resolution, error) {
	switch d.Action {
	case Trust:
		return nil, g.Trust(d.Cards, d.Rationale, d.Statement)
	case Challenge:
		return g.Challenge(d.Rationale, d.Statement)
	default:
		if err := g.checkActing(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w: got %q", ErrInvalidDecision, ErrInvalidAction, d.Action)
	}
}

// Trust moves cards from the current player's hand onto the pile, records the
// claim and passes the turn to the next living player.
func (g *Game) Trust(cards deck.Cards, rationale, statement string) error {
	if err := g.ValidateDecision(Decision{Action: Trust, Cards: cards}); err != nil {
		return err
	}

	player := g.players[g.current]
	rest, _ := player.Hand.Remove(cards)
	player.Hand = rest
	g.pile = append(g.pile, cards...)

	entry := RoundEntry{Seat: player.Seat, Action: Trust, Cards: cards}
	g.ledger.Record(g.round, entry, rationale, statement)

	next, err := g.NextAlive(g.current)
	if err != nil {
		return err
	}
	g.current = next

	g.logger.Debug("Player played", "player", player.Name, "count", len(cards), "next", SeatName(next))
	g.eventBus.Publish(NewPlayerActionEvent(g.publicEntry(), g.snapshot()))
	return nil
}

// Challenge disputes the previous play and resolves the round. Calling it
// when the round has no prior play is protocol misuse.
func (g *Game) Challenge(rationale, statement string) (*Resolution, error) {
	if err := g.checkActing(); err != nil {
		return nil, err
	}
	accused, ok := g.ledger.Last()
	if !ok {
		return nil, fmt.Errorf("%w: %w", ErrProtocolMisuse, ErrNothingToChallenge)
	}

	g.phase = PhaseResolving
	challenger := g.players[g.current]
	g.ledger.Record(g.round, RoundEntry{Seat: challenger.Seat, Action: Challenge}, rationale, statement)
	g.eventBus.Publish(NewPlayerActionEvent(g.publicEntry(), g.snapshot()))

	res := Resolution{
		Round:        g.round,
		Challenger:   challenger.Seat,
		Accused:      accused.Seat,
		AccusedCards: accused.Cards.Clone(),
		Target:       g.target,
		WasTruthful:  accused.Cards.All(g.target),
	}

	// A truthful claim means the accusation backfires
	res.Punished = accused.Seat
	if res.WasTruthful {
		res.Punished = challenger.Seat
	}
	punished := g.players[res.Punished]
	res.FactorBefore = punished.EliminationFactor
	res.Eliminated, res.Draw, res.DrawSkipped = g.eliminationTrial(punished)

	// A survivor keeps the hot seat; otherwise play passes on. The current
	// seat is always alive, game over included.
	g.current = res.Punished
	if res.Eliminated {
		punished.Alive = false
		next, err := g.NextAlive(res.Punished)
		if err != nil {
			return nil, err
		}
		g.current = next
	} else {
		punished.EliminationFactor = max(punished.EliminationFactor-1, 0)
	}

	g.ledger.CloseRound()
	g.pile = nil
	g.narrative = narrate(res)
	g.last = &res
	g.phase = PhaseRoundClosed

	g.logger.Info("Challenge resolved",
		"challenger", challenger.Name,
		"accused", SeatName(res.Accused),
		"truthful", res.WasTruthful,
		"punished", punished.Name,
		"draw", res.Draw,
		"eliminated", res.Eliminated)
	g.eventBus.Publish(NewChallengeResolvedEvent(res.clone(), g.Narrative(), g.snapshot()))

	if g.IsTerminal() {
		g.phase = PhaseGameOver
		g.logger.Info("Game over", "round", g.round, "alive", g.AliveCount())
		g.eventBus.Publish(g.newGameOverEvent())
		return &res, nil
	}

	if err := g.StartRound(); err != nil {
		return &res, err
	}
	return &res, nil
}

// eliminationTrial draws uniformly from [1, factor]; a draw of 1 eliminates.
// A factor of 0 means the chambers are exhausted and elimination is certain,
// so no draw is taken.
func (g *Game) eliminationTrial(p *Player) (eliminated bool, draw int, skipped bool) {
	if p.EliminationFactor <= 0 {
		g.logger.Warn("Elimination factor exhausted, skipping draw", "player", p.Name)
		return true, 0, true
	}
	draw = 1 + g.rng.IntN(p.EliminationFactor)
	return draw == 1, draw, false
}

func (g *Game) lastLogEntry() LogEntry {
	entries := g.ledger.log
	return entries[len(entries)-1]
}

func narrate(res Resolution) []string {
	challenger := SeatName(res.Challenger)
	accused := SeatName(res.Accused)
	punished := SeatName(res.Punished)

	lines := []string{
		fmt.Sprintf("%s challenges %s", challenger, accused),
		fmt.Sprintf("%s played [%s], the target is %s", accused, res.AccusedCards, res.Target),
	}
	if res.WasTruthful {
		lines = append(lines, fmt.Sprintf("the challenge fails, %s takes the shot", punished))
	} else {
		lines = append(lines, fmt.Sprintf("the challenge succeeds, %s takes the shot", punished))
	}

	switch {
	case res.Eliminated && res.DrawSkipped:
		lines = append(lines, fmt.Sprintf("%s had no empty chambers left and is eliminated", punished))
	case res.Eliminated:
		lines = append(lines, fmt.Sprintf("%s is eliminated", punished))
	default:
		lines = append(lines,
			fmt.Sprintf("%s survives with %d chamber(s) left", punished, res.FactorBefore-1),
			fmt.Sprintf("%s plays next", punished))
	}
	return lines
}
