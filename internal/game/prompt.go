package game

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/lox/liarsbar/internal/deck"
)

// OpponentView is the public information about another seat
type OpponentView struct {
	Seat              int    `json:"seat"`
	Player            string `json:"player"`
	Alive             bool   `json:"alive"`
	EliminationFactor int    `json:"elimination_factor"`
	CardsInHand       int    `json:"cards_in_hand"`
}

// Prompt is the payload an Agent decides from. It only carries what the
// acting seat is allowed to know.
type Prompt struct {
	Round             int            `json:"round"`
	Seat              int            `json:"seat"`
	Player            string         `json:"player"`
	Style             Style          `json:"style"`
	Target            deck.Card      `json:"target"`
	Hand              deck.Cards     `json:"hand"`
	EliminationFactor int            `json:"elimination_factor"`
	History           []PlaySummary  `json:"history"`
	LastPlayCount     int            `json:"last_play_count"`
	CanChallenge      bool           `json:"can_challenge"`
	MustChallenge     bool           `json:"must_challenge"`
	Opponents         []OpponentView `json:"opponents"`
	Statements        []Statement    `json:"statements,omitempty"`
}

// Prompt builds the decision payload for the current player
func (g *Game) Prompt() Prompt {
	player := g.players[g.current]
	p := Prompt{
		Round:             g.round,
		Seat:              player.Seat,
		Player:            player.Name,
		Style:             player.Style,
		Target:            g.target,
		Hand:              player.Hand.Clone(),
		EliminationFactor: player.EliminationFactor,
		History:           g.ledger.Summary(),
		CanChallenge:      g.ledger.Len() > 0,
		Statements:        g.ledger.Statements(),
	}
	if last, ok := g.ledger.Last(); ok {
		p.LastPlayCount = len(last.Cards)
	}
	p.MustChallenge = p.CanChallenge && len(player.Hand) == 0

	for _, other := range g.players {
		if other.Seat == player.Seat {
			continue
		}
		p.Opponents = append(p.Opponents, OpponentView{
			Seat:              other.Seat,
			Player:            other.Name,
			Alive:             other.Alive,
			EliminationFactor: other.EliminationFactor,
			CardsInHand:       len(other.Hand),
		})
	}
	return p
}

// ClaimedCount returns the total number of cards claimed as the target this
// round.
func (p Prompt) ClaimedCount() int {
	n := 0
	for _, h := range p.History {
		n += h.Count
	}
	return n
}

// LastPlayer returns the seat of the most recent play, or -1
func (p Prompt) LastPlayer() int {
	if len(p.History) == 0 {
		return -1
	}
	return p.History[len(p.History)-1].Seat
}

// JSON serializes the prompt for machine consumers
func (p Prompt) JSON() ([]byte, error) {
	return json.Marshal(p)
}

// String renders the prompt as plain text for text-based providers
func (p Prompt) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are %s. Round %d. The target card is %s.\n", p.Player, p.Round, p.Target)
	fmt.Fprintf(&b, "Your hand: [%s]\n", p.Hand)
	fmt.Fprintf(&b, "Your revolver has %d chamber(s); if punished you are eliminated with probability 1/%d.\n",
		p.EliminationFactor, max(p.EliminationFactor, 1))

	if len(p.History) == 0 {
		b.WriteString("You open the round. You must play at least one card and claim it is the target.\n")
	} else {
		b.WriteString("This round so far:\n")
		for _, h := range p.History {
			fmt.Fprintf(&b, "- %s played %d card(s) claiming %s\n", h.Player, h.Count, p.Target)
		}
		fmt.Fprintf(&b, "The previous player claimed %d card(s) were %s.\n", p.LastPlayCount, p.Target)
	}

	b.WriteString("Opponents:\n")
	for _, o := range p.Opponents {
		if !o.Alive {
			fmt.Fprintf(&b, "- %s is eliminated\n", o.Player)
			continue
		}
		fmt.Fprintf(&b, "- %s holds %d card(s), %d chamber(s) left\n", o.Player, o.CardsInHand, o.EliminationFactor)
	}

	if len(p.Statements) > 0 {
		b.WriteString("Table talk:\n")
		for _, s := range p.Statements {
			fmt.Fprintf(&b, "- %s: %s\n", s.Player, s.Text)
		}
	}

	switch {
	case p.MustChallenge:
		b.WriteString("Your hand is empty, so you must challenge.")
	case p.CanChallenge:
		b.WriteString("Choose: trust (play cards from your hand) or challenge the previous play.")
	default:
		b.WriteString("Choose which cards to play.")
	}
	return b.String()
}
