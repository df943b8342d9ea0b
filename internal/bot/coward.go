package bot

import (
	"context"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/liarsbar/internal/game"
)

// Coward plays honest cards one at a time and only challenges claims it is
// nearly sure are lies.
type Coward struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewCoward creates a new Coward instance
func NewCoward(rng *rand.Rand, logger *log.Logger) *Coward {
	return &Coward{rng: rng, logger: logger.WithPrefix("coward")}
}

func (c *Coward) Decide(ctx context.Context, p game.Prompt) (game.Decision, error) {
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
		thinking.AddThought("The last claim of %d card(s) looks %.0f%% honest", p.LastPlayCount, prob*100)
		if prob < 0.1 {
			thinking.AddThought("Even I can call that one")
			d := challengeDecision(thinking, "")
			logDecision(c.logger, p, d)
			return d, nil
		}
	}

	truth, bluff := splitHand(p.Hand, p.Target)
	var d game.Decision
	if len(truth) > 0 {
		thinking.AddThought("I hold %d %s, playing one honestly", len(truth), p.Target)
		d = playDecision(takeUpTo(truth, 1), thinking, "")
	} else {
		thinking.AddThought("No %s in hand, I have to sneak one card through", p.Target)
		d = playDecision(takeUpTo(bluff, 1), thinking, "")
	}
	logDecision(c.logger, p, d)
	return d, nil
}
