// Package bot provides rule-based agents for each automated playing style.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/liarsbar/internal/deck"
	"github.com/lox/liarsbar/internal/game"
)

// New returns the rule-based agent for style. Each bot should get its own rng
// so its choices never disturb the game's draws.
func New(style game.Style, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	switch style {
	case game.Coward:
		return NewCoward(rng, logger), nil
	case game.Augur:
		return NewAugur(rng, logger), nil
	case game.BoldGambler:
		return NewBoldGambler(rng, logger), nil
	case game.CoolAnalyzer:
		return NewCoolAnalyzer(rng, logger), nil
	case game.CunningLiar:
		return NewCunningLiar(rng, logger), nil
	default:
		return nil, fmt.Errorf("no bot for style %s", style)
	}
}

// ThinkingContext accumulates thoughts during decision making
type ThinkingContext struct {
	thoughts []string
}

// AddThought adds a thought to the thinking process
func (tc *ThinkingContext) AddThought(format string, args ...any) {
	tc.thoughts = append(tc.thoughts, fmt.Sprintf(format, args...))
}

// GetThoughts returns the complete stream of thoughts
func (tc *ThinkingContext) GetThoughts() string {
	if len(tc.thoughts) == 0 {
		return "No clear reasoning available"
	}
	return strings.Join(tc.thoughts, ". ")
}

// splitHand separates the cards matching target from the rest, keeping hand
// order.
func splitHand(hand deck.Cards, target deck.Card) (truth, bluff deck.Cards) {
	for _, c := range hand {
		if c == target {
			truth = append(truth, c)
		} else {
			bluff = append(bluff, c)
		}
	}
	return truth, bluff
}

func takeUpTo(cards deck.Cards, n int) deck.Cards {
	if n > len(cards) {
		n = len(cards)
	}
	return cards[:n].Clone()
}

// truthProbability estimates how likely the previous claim is honest from
// what the acting seat can see: its own hand and the claimed counts.
func truthProbability(p game.Prompt) float64 {
	if p.LastPlayCount == 0 {
		return 1
	}

	total := deck.CopiesPerRank + deck.TargetBonus
	held := p.Hand.Count(p.Target)
	if p.ClaimedCount()+held > total {
		// More targets claimed than exist, somebody is lying and the last
		// claim is the one on the hook.
		return 0
	}

	available := total - held - (p.ClaimedCount() - p.LastPlayCount)
	unseen := game.NumPlayers*game.HandSize - len(p.Hand)
	prob := 1.0
	for i := range p.LastPlayCount {
		if available-i <= 0 || unseen-i <= 0 {
			return 0
		}
		prob *= float64(available-i) / float64(unseen-i)
	}
	return prob
}

// risk is the chance of elimination if this seat is punished
func risk(p game.Prompt) float64 {
	if p.EliminationFactor <= 0 {
		return 1
	}
	return 1 / float64(p.EliminationFactor)
}

func challengeDecision(thinking *ThinkingContext, statement string) game.Decision {
	return game.Decision{
		Action:    game.Challenge,
		Rationale: thinking.GetThoughts(),
		Statement: statement,
	}
}

func playDecision(cards deck.Cards, thinking *ThinkingContext, statement string) game.Decision {
	return game.Decision{
		Action:    game.Trust,
		Cards:     cards,
		Rationale: thinking.GetThoughts(),
		Statement: statement,
	}
}

// forced handles the turns where there is no real choice
func forced(p game.Prompt, thinking *ThinkingContext) (game.Decision, bool) {
	if p.MustChallenge || len(p.Hand) == 0 {
		thinking.AddThought("My hand is empty, so I have to challenge")
		return challengeDecision(thinking, ""), true
	}
	return game.Decision{}, false
}

func logDecision(logger *log.Logger, p game.Prompt, d game.Decision) {
	logger.Debug("Bot decision made",
		"player", p.Player,
		"style", p.Style,
		"action", d.Action,
		"cards", d.Cards,
		"reasoning", d.Rationale)
}
