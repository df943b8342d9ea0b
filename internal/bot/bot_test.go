package bot

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/lox/liarsbar/internal/deck"
	"github.com/lox/liarsbar/internal/game"
	"github.com/lox/liarsbar/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewForEveryAutomatedStyle(t *testing.T) {
	logger := log.New(io.Discard)
	for _, style := range game.AutomatedStyles {
		agent, err := New(style, randutil.Derive(1, 0), logger)
		require.NoError(t, err, style.String())
		assert.NotNil(t, agent)
	}

	_, err := New(game.Human, randutil.Derive(1, 0), logger)
	assert.Error(t, err)
}

func TestBotsAlwaysDecideLegally(t *testing.T) {
	logger := log.New(io.Discard)

	for seed := int64(1); seed <= 20; seed++ {
		g := game.NewTestGame(
			game.WithSeed(seed),
			game.WithStyles(game.Coward, game.Augur, game.BoldGambler, game.CunningLiar),
		)

		agents := make([]game.Agent, game.NumPlayers)
		for seat, p := range g.Players() {
			bot, err := New(p.Style, randutil.Derive(seed, uint64(seat)), logger)
			require.NoError(t, err)
			agents[seat] = game.AgentFunc(func(ctx context.Context, prompt game.Prompt) (game.Decision, error) {
				d, err := bot.Decide(ctx, prompt)
				require.NoError(t, err)
				require.NoError(t, g.ValidateDecision(d), "%s (%s) chose %s [%s]", prompt.Player, prompt.Style, d.Action, d.Cards)
				assert.NotEmpty(t, d.Rationale)
				return d, nil
			})
		}

		engine, err := game.NewEngine(g, agents, logger, game.WithDecisionTimeout(0), game.WithMaxRetries(1))
		require.NoError(t, err)
		outcome, err := engine.Run(context.Background())
		require.NoError(t, err)
		require.NotNil(t, outcome.Winner)
	}
}

func TestCoolAnalyzerSeatIsLegalToo(t *testing.T) {
	g := game.NewTestGame(game.WithStyles(game.CoolAnalyzer, game.CoolAnalyzer, game.CoolAnalyzer, game.CoolAnalyzer))
	logger := log.New(io.Discard)

	agents := make([]game.Agent, game.NumPlayers)
	for seat := range agents {
		agents[seat] = NewCoolAnalyzer(randutil.Derive(9, uint64(seat)), logger)
	}
	engine, err := game.NewEngine(g, agents, logger, game.WithDecisionTimeout(0), game.WithMaxRetries(1))
	require.NoError(t, err)

	for g.Phase() != game.PhaseGameOver {
		if g.Phase() == game.PhaseAwaitingDecision {
			d, err := agents[g.CurrentSeat()].Decide(context.Background(), g.Prompt())
			require.NoError(t, err)
			require.NoError(t, g.ValidateDecision(d))
		}
		_, err := engine.Step(context.Background())
		require.NoError(t, err)
	}
}

func TestBotsChallengeWhenHandEmpty(t *testing.T) {
	prompt := game.Prompt{
		Target:            deck.King,
		EliminationFactor: 3,
		History:           []game.PlaySummary{{Seat: 0, Count: 2}},
		LastPlayCount:     2,
		CanChallenge:      true,
		MustChallenge:     true,
	}

	logger := log.New(io.Discard)
	for _, style := range game.AutomatedStyles {
		bot, err := New(style, randutil.Derive(3, 0), logger)
		require.NoError(t, err)
		d, err := bot.Decide(context.Background(), prompt)
		require.NoError(t, err)
		assert.Equal(t, game.Challenge, d.Action, style.String())
	}
}

func TestBotsNeverChallengeOpeningPlay(t *testing.T) {
	prompt := game.Prompt{
		Target:            deck.Queen,
		Hand:              deck.MustParseCards("A K K A K"),
		EliminationFactor: 1,
	}

	logger := log.New(io.Discard)
	for _, style := range game.AutomatedStyles {
		for stream := range uint64(25) {
			bot, err := New(style, randutil.Derive(5, stream), logger)
			require.NoError(t, err)
			d, err := bot.Decide(context.Background(), prompt)
			require.NoError(t, err)
			require.Equal(t, game.Trust, d.Action, style.String())
			assert.True(t, game.IsLegal(prompt.Hand, d.Cards, game.Trust))
		}
	}
}

func TestBotsRespectCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, style := range game.AutomatedStyles {
		bot, err := New(style, randutil.Derive(1, 1), log.New(io.Discard))
		require.NoError(t, err)
		_, err = bot.Decide(ctx, game.Prompt{Hand: deck.MustParseCards("A")})
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestTruthProbability(t *testing.T) {
	tests := []struct {
		name   string
		prompt game.Prompt
		want   func(float64) bool
	}{
		{
			name:   "nothing claimed",
			prompt: game.Prompt{Target: deck.Ace, Hand: deck.MustParseCards("A K Q")},
			want:   func(p float64) bool { return p == 1 },
		},
		{
			name: "more claimed than exist",
			prompt: game.Prompt{
				Target:        deck.Ace,
				Hand:          deck.MustParseCards("A A A A A"),
				History:       []game.PlaySummary{{Count: 3}, {Count: 1}},
				LastPlayCount: 1,
			},
			want: func(p float64) bool { return p == 0 },
		},
		{
			name: "single card claim is plausible",
			prompt: game.Prompt{
				Target:        deck.Ace,
				Hand:          deck.MustParseCards("K Q K Q K"),
				History:       []game.PlaySummary{{Count: 1}},
				LastPlayCount: 1,
			},
			want: func(p float64) bool { return p > 0.4 && p < 0.6 },
		},
		{
			name: "big claim is less plausible than small",
			prompt: game.Prompt{
				Target:        deck.Ace,
				Hand:          deck.MustParseCards("K Q K Q K"),
				History:       []game.PlaySummary{{Count: 3}},
				LastPlayCount: 3,
			},
			want: func(p float64) bool { return p < 0.15 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truthProbability(tt.prompt)
			assert.True(t, tt.want(got), "got %.3f", got)
		})
	}
}

func TestThinkingContext(t *testing.T) {
	tc := &ThinkingContext{}
	assert.Equal(t, "No clear reasoning available", tc.GetThoughts())
	tc.AddThought("I hold %d %s", 2, deck.Ace)
	tc.AddThought("playing one")
	assert.Equal(t, "I hold 2 A. playing one", tc.GetThoughts())
}
