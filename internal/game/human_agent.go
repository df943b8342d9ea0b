package game

import (
	"context"
	"fmt"
	"strings"

	"github.com/lox/liarsbar/internal/deck"
)

// LineReader supplies lines of human input
type LineReader interface {
	ReadLine(ctx context.Context) (string, error)
}

// HumanAgent turns typed commands into decisions. It does no validation
// against the hand; the engine does that and reports back through Reject.
type HumanAgent struct {
	input    LineReader
	feedback func(error)
	display  func(Prompt)
}

// HumanOption configures a HumanAgent
type HumanOption func(*HumanAgent)

// WithFeedback sets the function that shows why input was refused
func WithFeedback(fn func(error)) HumanOption {
	return func(h *HumanAgent) { h.feedback = fn }
}

// WithPromptDisplay sets the function that shows the prompt before reading
func WithPromptDisplay(fn func(Prompt)) HumanOption {
	return func(h *HumanAgent) { h.display = fn }
}

// NewHumanAgent creates a new human agent reading from input
func NewHumanAgent(input LineReader, opts ...HumanOption) *HumanAgent {
	h := &HumanAgent{input: input}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Decide shows the prompt and reads one command
func (h *HumanAgent) Decide(ctx context.Context, prompt Prompt) (Decision, error) {
	if h.display != nil {
		h.display(prompt)
	}
	line, err := h.input.ReadLine(ctx)
	if err != nil {
		return Decision{}, err
	}
	return ParseCommand(line)
}

// Reject reports a refused decision to the human
func (h *HumanAgent) Reject(err error) {
	if h.feedback != nil {
		h.feedback(err)
	}
}

// ParseCommand parses a line of human input. Accepted forms:
//
//	A K            play cards (also "play A K" or "AK")
//	challenge      challenge the previous play (also "c")
//	quit           leave the game (also "exit")
//
// Anything after " -- " is kept as a public statement, e.g. "A A -- two aces".
func ParseCommand(line string) (Decision, error) {
	var statement string
	if before, after, found := strings.Cut(line, "--"); found {
		line, statement = before, strings.TrimSpace(after)
	}

	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return Decision{}, fmt.Errorf("%w: %w", ErrInvalidDecision, ErrEmptyCommand)
	}

	switch fields[0] {
	case "quit", "exit":
		return Decision{}, ErrQuit
	case "challenge", "c":
		if len(fields) > 1 {
			return Decision{}, fmt.Errorf("%w: challenge takes no cards", ErrInvalidDecision)
		}
		return Decision{Action: Challenge, Statement: statement}, nil
	case "play", "p", "trust", "t":
		fields = fields[1:]
	}

	cards, err := deck.ParseCards(strings.Join(fields, " "))
	if err != nil {
		return Decision{}, fmt.Errorf("%w: %w", ErrInvalidDecision, err)
	}
	if len(cards) == 0 {
		return Decision{}, fmt.Errorf("%w: %w: name the cards to play", ErrInvalidDecision, ErrIllegalCards)
	}
	return Decision{Action: Trust, Cards: cards, Statement: statement}, nil
}
