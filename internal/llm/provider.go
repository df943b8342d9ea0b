// Package llm lets a language model play a seat.
package llm

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/lox/liarsbar/internal/bot"
	"github.com/lox/liarsbar/internal/game"
)

// Provider is a game.Agent that asks a Generator for each decision. Failures
// are returned as errors; the engine owns retries and fallback.
type Provider struct {
	gen    Generator
	style  game.Style
	rng    *rand.Rand
	logger *log.Logger
}

// NewProvider creates a provider that plays style. rng drives the augur's
// divination and may be nil for other styles.
func NewProvider(gen Generator, style game.Style, rng *rand.Rand, logger *log.Logger) (*Provider, error) {
	if style.IsHuman() {
		return nil, fmt.Errorf("a model cannot play the %s seat", style)
	}
	if style == game.Augur && rng == nil {
		return nil, fmt.Errorf("the augur needs a random source")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Provider{
		gen:    gen,
		style:  style,
		rng:    rng,
		logger: logger.WithPrefix("llm"),
	}, nil
}

// Decide renders the prompt, asks the model and parses its reply
func (p *Provider) Decide(ctx context.Context, prompt game.Prompt) (game.Decision, error) {
	text := prompt.String()
	if p.style == game.Augur && len(prompt.Hand) > 0 {
		text += "\n" + bot.Divine(prompt.Hand, prompt.Target, p.rng).String()
	}

	p.logger.Debug("Asking model", "player", prompt.Player, "style", p.style)
	reply, err := p.gen.Generate(ctx, SystemInstruction(p.style), text)
	if err != nil {
		return game.Decision{}, fmt.Errorf("%s: %w", prompt.Player, err)
	}

	d, err := ParseResponse(reply)
	if err != nil {
		p.logger.Warn("Unusable model reply", "player", prompt.Player, "error", err)
		return game.Decision{}, err
	}
	p.logger.Debug("Model decided", "player", prompt.Player, "action", d.Action, "cards", d.Cards)
	return d, nil
}
