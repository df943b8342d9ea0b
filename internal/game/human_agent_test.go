package game

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/lox/liarsbar/internal/deck"
)

type lineQueue struct {
	lines []string
}

func (q *lineQueue) ReadLine(ctx context.Context) (string, error) {
	if len(q.lines) == 0 {
		return "", io.EOF
	}
	line := q.lines[0]
	q.lines = q.lines[1:]
	return line, nil
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input     string
		action    Action
		cards     string
		statement string
		wantErr   error
	}{
		{input: "A K", action: Trust, cards: "A K"},
		{input: "a,k", action: Trust, cards: "A K"},
		{input: "AAK", action: Trust, cards: "A A K"},
		{input: "play q q", action: Trust, cards: "Q Q"},
		{input: "q", action: Trust, cards: "Q"},
		{input: "challenge", action: Challenge},
		{input: "  C ", action: Challenge},
		{input: "c -- you're lying", action: Challenge, statement: "you're lying"},
		{input: "A A -- two queens, honest", action: Trust, cards: "A A", statement: "two queens, honest"},
		{input: "quit", wantErr: ErrQuit},
		{input: "exit", wantErr: ErrQuit},
		{input: "", wantErr: ErrEmptyCommand},
		{input: "   ", wantErr: ErrEmptyCommand},
		{input: "-- hello", wantErr: ErrEmptyCommand},
		{input: "play", wantErr: ErrIllegalCards},
		{input: "A J", wantErr: ErrInvalidDecision},
		{input: "challenge A", wantErr: ErrInvalidDecision},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseCommand(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseCommand(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCommand(%q) unexpected error: %v", tt.input, err)
			}
			if d.Action != tt.action {
				t.Errorf("action = %s, want %s", d.Action, tt.action)
			}
			if d.Cards.String() != tt.cards {
				t.Errorf("cards = %q, want %q", d.Cards.String(), tt.cards)
			}
			if d.Statement != tt.statement {
				t.Errorf("statement = %q, want %q", d.Statement, tt.statement)
			}
		})
	}
}

func TestParseCommandErrorsAreInvalidDecisions(t *testing.T) {
	for _, input := range []string{"", "xyz", "play"} {
		if _, err := ParseCommand(input); !errors.Is(err, ErrInvalidDecision) {
			t.Errorf("ParseCommand(%q) = %v, want ErrInvalidDecision", input, err)
		}
	}
	if _, err := ParseCommand("quit"); errors.Is(err, ErrInvalidDecision) {
		t.Error("quit must not be treated as a retryable mistake")
	}
}

func TestHumanAgentDecide(t *testing.T) {
	var shown []Prompt
	var feedback []error
	input := &lineQueue{lines: []string{"A A", "c"}}
	h := NewHumanAgent(input,
		WithPromptDisplay(func(p Prompt) { shown = append(shown, p) }),
		WithFeedback(func(err error) { feedback = append(feedback, err) }),
	)

	prompt := Prompt{Player: "player1", Hand: deck.MustParseCards("A A K")}
	d, err := h.Decide(context.Background(), prompt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Action != Trust || d.Cards.String() != "A A" {
		t.Errorf("unexpected decision %+v", d)
	}
	if len(shown) != 1 || shown[0].Player != "player1" {
		t.Errorf("prompt was not displayed: %+v", shown)
	}

	h.Reject(ErrIllegalCards)
	if len(feedback) != 1 || !errors.Is(feedback[0], ErrIllegalCards) {
		t.Errorf("feedback not delivered: %v", feedback)
	}

	if d, err = h.Decide(context.Background(), prompt); err != nil || d.Action != Challenge {
		t.Errorf("expected challenge, got %+v, %v", d, err)
	}
	if _, err = h.Decide(context.Background(), prompt); !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF once input is exhausted, got %v", err)
	}
}

func TestHumanAgentThroughEngine(t *testing.T) {
	g := NewTestGame(
		WithStyles(Human, Coward, Augur, BoldGambler),
		WithSource(NewScriptedSource(pickQueen)),
	)
	var feedback []error
	input := &lineQueue{lines: []string{"K", "nonsense", "A A -- two queens"}}
	human := NewHumanAgent(input, WithFeedback(func(err error) { feedback = append(feedback, err) }))

	engine, err := NewEngine(g, []Agent{human, NewScriptedAgent(), NewScriptedAgent(), NewScriptedAgent()}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := engine.Step(context.Background()); err != nil {
		t.Fatalf("step failed: %v", err)
	}

	if len(feedback) != 2 {
		t.Fatalf("expected 2 rejections, got %v", feedback)
	}
	log := g.Ledger().Log()
	if len(log) != 1 || log[0].Statement != "two queens" || log[0].Cards.String() != "A A" {
		t.Errorf("unexpected log %+v", log)
	}
}
