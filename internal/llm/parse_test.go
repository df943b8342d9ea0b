package llm

import (
	"testing"

	"github.com/lox/liarsbar/internal/deck"
	"github.com/lox/liarsbar/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		action    game.Action
		cards     deck.Cards
		thought   string
		statement string
	}{
		{
			name:      "plain object",
			input:     `{"thought":"safe","action":"trust","cards":["A","K"],"misleading_statements":"two aces"}`,
			action:    game.Trust,
			cards:     deck.MustParseCards("A K"),
			thought:   "safe",
			statement: "two aces",
		},
		{
			name:   "markdown fence",
			input:  "```json\n{\"thought\":\"liar\",\"action\":\"challenge\",\"cards\":[]}\n```",
			action: game.Challenge,
			cards:  deck.Cards{},
		},
		{
			name:   "cards as string",
			input:  `Sure! {"action":"Trust","cards":"q q"}`,
			action: game.Trust,
			cards:  deck.MustParseCards("Q Q"),
		},
		{
			name:      "statements as list",
			input:     `{"action":"trust","cards":["A"],"misleading_statements":["one", "ace"]}`,
			action:    game.Trust,
			cards:     deck.MustParseCards("A"),
			statement: "one ace",
		},
		{
			name:   "unknown action",
			input:  `{"action":"fold","cards":["A"]}`,
			action: game.ActionUnknown,
			cards:  deck.MustParseCards("A"),
		},
		{
			name:   "missing cards",
			input:  `{"action":"challenge"}`,
			action: game.Challenge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseResponse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.action, d.Action)
			assert.Equal(t, tt.cards, d.Cards)
			assert.Equal(t, tt.thought, d.Rationale)
			assert.Equal(t, tt.statement, d.Statement)
		})
	}
}

func TestParseResponseErrors(t *testing.T) {
	inputs := []string{
		"",
		"I will trust",
		`{"action": "trust", "cards": ["A", "J"]}`,
		`{"action": "trust", "cards": 3}`,
		`{"action": "trust" "cards": []}`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := ParseResponse(input)
			require.ErrorIs(t, err, ErrMalformedResponse)
			assert.ErrorIs(t, err, game.ErrInvalidDecision)
		})
	}
}
