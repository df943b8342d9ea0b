package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/liarsbar/internal/game"
)

// CoolAnalyzer weighs the odds of the last claim against its own risk of
// elimination and plays the smallest honest set it can.
type CoolAnalyzer struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewCoolAnalyzer creates a new CoolAnalyzer instance
func NewCoolAnalyzer(rng *rand.Rand, logger *log.Logger) *CoolAnalyzer {
	return &CoolAnalyzer{rng: rng, logger: logger.WithPrefix("analyzer")}
}

func (c *CoolAnalyzer) Decide(ctx context.Context, p game.Prompt) (game.Decision, error) {
	if err := ctx.Err(); err != nil {
		return game.Decision{}, err
	}

	thinking := &ThinkingContext{}
	if d, ok := forced(p, thinking); ok {
		logDecision(c.logger, p, d)
		return d, nil
	}

	truth, bluff := splitHand(p.Hand, p.Target)

	if p.CanChallenge {
		prob := truthProbability(p)
		thinking.AddThought("Claim of %d with %d %s in my hand: %.0f%% honest", p.LastPlayCount, len(truth), p.Target, prob*100)

		// The worse my own odds, the surer I need to be before calling
		threshold := 0.5 - 0.25*risk(p)
		if len(truth) == 0 {
			// Continuing means bluffing, which carries its own risk
			threshold += 0.15
		}
		thinking.AddThought("Challenge threshold %.2f", threshold)
		if prob < threshold {
			d := challengeDecision(thinking, "")
			logDecision(c.logger, p, d)
			return d, nil
		}
	}

	var d game.Decision
	switch {
	case len(truth) >= 2 && len(bluff) == 0:
		thinking.AddThought("All honest cards, unloading two")
		d = playDecision(takeUpTo(truth, 2), thinking, "")
	case len(truth) > 0:
		thinking.AddThought("Playing one honest %s and keeping the rest", p.Target)
		d = playDecision(takeUpTo(truth, 1), thinking, "")
	default:
		thinking.AddThought("No honest cards, a single bluff is the least exposed play")
		d = playDecision(takeUpTo(bluff, 1), thinking, "")
	}
	logDecision(c.logger, p, d)
	return d, nil
}
