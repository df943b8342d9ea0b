package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/liarsbar/internal/game"
)

var gamblerTaunts = []string{
	"Call me if you dare.",
	"I never bluff. Well, rarely.",
	"Go on, pull the trigger.",
}

// BoldGambler challenges freely and dumps several cards at once, honest or not
type BoldGambler struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewBoldGambler creates a new BoldGambler instance
func NewBoldGambler(rng *rand.Rand, logger *log.Logger) *BoldGambler {
	return &BoldGambler{rng: rng, logger: logger.WithPrefix("gambler")}
}

func (b *BoldGambler) Decide(ctx context.Context, p game.Prompt) (game.Decision, error) {
	if err := ctx.Err(); err != nil {
		return game.Decision{}, err
	}

	thinking := &ThinkingContext{}
	if d, ok := forced(p, thinking); ok {
		logDecision(b.logger, p, d)
		return d, nil
	}

	if p.CanChallenge {
		prob := truthProbability(p)
		thinking.AddThought("%d card(s) claimed, I give it %.0f%%", p.LastPlayCount, prob*100)
		if prob < 0.6 || b.rng.Float64() < 0.3 {
			thinking.AddThought("Feeling lucky, calling it")
			d := challengeDecision(thinking, "Show me.")
			logDecision(b.logger, p, d)
			return d, nil
		}
	}

	truth, bluff := splitHand(p.Hand, p.Target)
	count := 2 + b.rng.IntN(2)
	cards := takeUpTo(truth, count)
	if len(cards) < count {
		cards = append(cards, takeUpTo(bluff, count-len(cards))...)
	}
	thinking.AddThought("Pushing %d card(s), %d of them real", len(cards), cards.Count(p.Target))

	var statement string
	if b.rng.IntN(2) == 0 {
		statement = gamblerTaunts[b.rng.IntN(len(gamblerTaunts))]
	}
	d := playDecision(cards, thinking, statement)
	logDecision(b.logger, p, d)
	return d, nil
}
