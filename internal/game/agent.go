package game

import (
	"context"

	"github.com/lox/liarsbar/internal/deck"
)

// Decision is what a seat wants to do on its turn
type Decision struct {
	Action    Action
	Cards     deck.Cards // cards to place face down; ignored for a challenge
	Rationale string     // private reasoning, shown only in debug views
	Statement string     // public table talk, possibly misleading
}

// Agent represents anything that can decide for a seat: the human input
// channel, a rule-based persona or a language model. Agents receive an
// immutable prompt and never touch the Game.
type Agent interface {
	Decide(ctx context.Context, prompt Prompt) (Decision, error)
}

// AgentFunc adapts a function to the Agent interface
type AgentFunc func(ctx context.Context, prompt Prompt) (Decision, error)

// Decide calls f
func (f AgentFunc) Decide(ctx context.Context, prompt Prompt) (Decision, error) {
	return f(ctx, prompt)
}

// Rejecter is implemented by agents that want to hear why their decision was
// refused, so a human can correct their input without losing the turn.
type Rejecter interface {
	Reject(err error)
}
