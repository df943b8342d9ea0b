package bot

import (
	"context"
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/liarsbar/internal/deck"
	"github.com/lox/liarsbar/internal/game"
)

// Divination is the augur's omen for a turn
type Divination struct {
	Play     bool // false means challenge
	Truthful bool // play matching cards
	Count    int  // how many cards to play
}

// String renders the omen as a line that can be appended to a prompt
func (d Divination) String() string {
	if !d.Play {
		return "Divination for this turn: challenge."
	}
	kind := "false"
	if d.Truthful {
		kind = "true"
	}
	return fmt.Sprintf("Divination for this turn: play %d %s card(s).", d.Count, kind)
}

// Divine draws an omen for hand. Play or challenge is a coin flip; a play is
// truthful or not at random when both kinds of card are held, and plays
// between one and three cards of the chosen kind.
func Divine(hand deck.Cards, target deck.Card, rng *rand.Rand) Divination {
	truth, bluff := splitHand(hand, target)

	if len(hand) == 0 || rng.IntN(2) == 1 {
		return Divination{}
	}

	d := Divination{Play: true}
	switch {
	case len(truth) > 0 && len(bluff) > 0:
		d.Truthful = rng.IntN(2) == 0
	case len(truth) > 0:
		d.Truthful = true
	}

	n := len(bluff)
	if d.Truthful {
		n = len(truth)
	}
	d.Count = 1 + rng.IntN(min(3, n))
	return d
}

// Augur follows whatever the divination says, as far as the rules allow
type Augur struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewAugur creates a new Augur instance
func NewAugur(rng *rand.Rand, logger *log.Logger) *Augur {
	return &Augur{rng: rng, logger: logger.WithPrefix("augur")}
}

func (a *Augur) Decide(ctx context.Context, p game.Prompt) (game.Decision, error) {
	if err := ctx.Err(); err != nil {
		return game.Decision{}, err
	}

	thinking := &ThinkingContext{}
	if d, ok := forced(p, thinking); ok {
		logDecision(a.logger, p, d)
		return d, nil
	}

	truth, bluff := splitHand(p.Hand, p.Target)
	omen := Divine(p.Hand, p.Target, a.rng)
	thinking.AddThought("%s", omen)

	if !omen.Play {
		if p.CanChallenge {
			thinking.AddThought("The spirits say the last claim is false")
			d := challengeDecision(thinking, "The cards have spoken.")
			logDecision(a.logger, p, d)
			return d, nil
		}
		omen = Divination{Play: true, Truthful: len(truth) > 0, Count: 1}
		thinking.AddThought("Nobody has played yet, so I lead with one card")
	}

	cards := takeUpTo(bluff, omen.Count)
	if omen.Truthful {
		cards = takeUpTo(truth, omen.Count)
	}
	d := playDecision(cards, thinking, "")
	logDecision(a.logger, p, d)
	return d, nil
}
