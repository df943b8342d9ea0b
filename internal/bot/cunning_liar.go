package bot

import (
	"context"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/liarsbar/internal/deck"
	"github.com/lox/liarsbar/internal/game"
)

// CunningLiar saves its honest cards, mixes bluffs with the truth and talks
// the table into wrong conclusions.
type CunningLiar struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewCunningLiar creates a new CunningLiar instance
func NewCunningLiar(rng *rand.Rand, logger *log.Logger) *CunningLiar {
	return &CunningLiar{rng: rng, logger: logger.WithPrefix("liar")}
}

func (c *CunningLiar) Decide(ctx context.Context, p game.Prompt) (game.Decision, error) {
	if err := ctx.Err(); err != nil {
		return game.Decision{}, err
	}

	thinking := &ThinkingContext{}
	if d, ok := forced(p, thinking); ok {
		logDecision(c.logger, p, d)
		return d, nil
	}

	if p.CanChallenge {
		prob := truthProbability(p)
		thinking.AddThought("I would believe %d card(s) with %.0f%% confidence", p.LastPlayCount, prob*100)
		if prob < 0.35 {
			statement := fmt.Sprintf("%s, I saw that hand shake.", game.SeatName(p.LastPlayer()))
			d := challengeDecision(thinking, statement)
			logDecision(c.logger, p, d)
			return d, nil
		}
	}

	truth, bluff := splitHand(p.Hand, p.Target)
	var cards deck.Cards
	switch {
	case len(bluff) == 0:
		thinking.AddThought("Only honest cards left")
		cards = takeUpTo(truth, 1+c.rng.IntN(min(2, len(truth))))
	case len(truth) > 0 && c.rng.IntN(3) == 0:
		thinking.AddThought("Wrapping a bluff around a real %s", p.Target)
		cards = append(takeUpTo(truth, 1), takeUpTo(bluff, 1)...)
	default:
		thinking.AddThought("Saving my %d real card(s) for later", len(truth))
		cards = takeUpTo(bluff, 1+c.rng.IntN(min(2, len(bluff))))
	}

	d := playDecision(cards, thinking, c.mislead(p, len(cards)))
	logDecision(c.logger, p, d)
	return d, nil
}

// mislead invents table talk about the liar's own hand
func (c *CunningLiar) mislead(p game.Prompt, played int) string {
	left := len(p.Hand) - played
	switch c.rng.IntN(3) {
	case 0:
		return fmt.Sprintf("That was my last %s, I'm out of them.", p.Target)
	case 1:
		return fmt.Sprintf("Still holding %d more %s. Challenge me and lose.", left, p.Target)
	default:
		return fmt.Sprintf("Honest cards, all %d of them.", played)
	}
}
