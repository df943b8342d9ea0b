package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
)

const (
	// DefaultMaxRetries is how many extra attempts an automated agent gets
	// after its first failed decision before the safe default is applied.
	DefaultMaxRetries = 3

	// DefaultDecisionTimeout bounds a single automated decision
	DefaultDecisionTimeout = 30 * time.Second
)

// Engine drives a Game by asking each seat's Agent for decisions. It owns the
// retry, timeout and fallback policy so the Game only ever sees valid moves.
type Engine struct {
	game            *Game
	agents          [NumPlayers]Agent
	logger          *log.Logger
	clock           quartz.Clock
	decisionTimeout time.Duration
	maxRetries      int
	fallbacks       int
}

// EngineOption configures an Engine
type EngineOption func(*Engine)

// WithClock sets the clock used for decision timeouts
func WithClock(clock quartz.Clock) EngineOption {
	return func(e *Engine) { e.clock = clock }
}

// WithDecisionTimeout sets the automated decision timeout. Zero disables it.
func WithDecisionTimeout(d time.Duration) EngineOption {
	return func(e *Engine) { e.decisionTimeout = d }
}

// WithMaxRetries sets how many extra attempts an automated agent gets after
// a failed decision. Zero means a single attempt.
func WithMaxRetries(n int) EngineOption {
	return func(e *Engine) { e.maxRetries = n }
}

// NewEngine creates an engine with one agent per seat
func NewEngine(g *Game, agents []Agent, logger *log.Logger, opts ...EngineOption) (*Engine, error) {
	if g == nil {
		return nil, fmt.Errorf("game is required")
	}
	if len(agents) != NumPlayers {
		return nil, fmt.Errorf("need %d agents, got %d", NumPlayers, len(agents))
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	e := &Engine{
		game:            g,
		logger:          logger.WithPrefix("engine"),
		clock:           quartz.NewReal(),
		decisionTimeout: DefaultDecisionTimeout,
		maxRetries:      DefaultMaxRetries,
	}
	for seat, agent := range agents {
		if agent == nil {
			return nil, fmt.Errorf("seat %d has no agent", seat)
		}
		e.agents[seat] = agent
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.maxRetries < 0 {
		e.maxRetries = 0
	}
	return e, nil
}

// Game returns the game being driven
func (e *Engine) Game() *Game {
	return e.game
}

// Outcome summarises a finished game
type Outcome struct {
	Winner          *Player // nil when the human was eliminated with several players left
	HumanEliminated bool
	Rounds          int
	Resolutions     []Resolution
	Fallbacks       int // automated decisions replaced by the safe default
}

// Run plays until the game is over. It stops early when ctx is cancelled or
// the human quits, returning the error that stopped it.
func (e *Engine) Run(ctx context.Context) (*Outcome, error) {
	outcome := &Outcome{}

	for e.game.Phase() != PhaseGameOver {
		res, err := e.Step(ctx)
		if err != nil {
			return nil, err
		}
		if res != nil {
			outcome.Resolutions = append(outcome.Resolutions, *res)
		}
	}

	outcome.Rounds = e.game.Round()
	outcome.Fallbacks = e.fallbacks
	if hs := e.game.HumanSeat(); hs >= 0 {
		outcome.HumanEliminated = !e.game.Player(hs).Alive
	}
	if winner, err := e.game.Winner(); err == nil {
		outcome.Winner = &winner
	} else if !errors.Is(err, ErrAmbiguousWinner) {
		return nil, err
	}

	e.logger.Info("Game complete", "rounds", outcome.Rounds, "human_eliminated", outcome.HumanEliminated)
	return outcome, nil
}

// Step obtains one decision for the current seat and applies it, starting the
// game first if needed. It returns the resolution when the move was a
// challenge.
func (e *Engine) Step(ctx context.Context) (*Resolution, error) {
	if e.game.Phase() == PhaseIdle {
		if err := e.game.Start(); err != nil {
			return nil, err
		}
	}
	if e.game.Phase() == PhaseGameOver {
		return nil, fmt.Errorf("%w: %w", ErrProtocolMisuse, ErrGameOver)
	}

	seat := e.game.CurrentSeat()
	player := e.game.players[seat]
	prompt := e.game.Prompt()

	var decision Decision
	var err error
	if player.Style.IsHuman() {
		decision, err = e.decideHuman(ctx, e.agents[seat], prompt)
	} else {
		decision, err = e.decideAutomated(ctx, e.agents[seat], prompt)
	}
	if err != nil {
		return nil, err
	}

	return e.game.Apply(decision)
}

// decideHuman asks until the human produces a valid decision. Refusals are
// fed back through Reject and never consume the turn.
func (e *Engine) decideHuman(ctx context.Context, agent Agent, prompt Prompt) (Decision, error) {
	rejecter, _ := agent.(Rejecter)

	for {
		if err := ctx.Err(); err != nil {
			return Decision{}, err
		}

		d, err := agent.Decide(ctx, prompt)
		if err == nil {
			err = e.game.ValidateDecision(d)
		}
		if err == nil {
			return d, nil
		}
		if !errors.Is(err, ErrInvalidDecision) {
			return Decision{}, err
		}

		e.logger.Debug("Rejected human decision", "player", prompt.Player, "error", err)
		if rejecter != nil {
			rejecter.Reject(err)
		}
	}
}

// decideAutomated gives the agent one attempt plus maxRetries retries. A
// timeout skips straight to the safe default.
func (e *Engine) decideAutomated(ctx context.Context, agent Agent, prompt Prompt) (Decision, error) {
	for attempt := 1; attempt <= e.maxRetries+1; attempt++ {
		d, err := e.decideWithTimeout(ctx, agent, prompt)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Decision{}, ctxErr
		}
		if errors.Is(err, ErrDecisionTimeout) {
			e.logger.Warn("Decision timed out, applying safe default",
				"player", prompt.Player, "timeout", e.decisionTimeout)
			e.fallbacks++
			return e.game.SafeDefault("timed out"), nil
		}
		if err == nil {
			err = e.game.ValidateDecision(d)
		}
		if err == nil {
			return d, nil
		}
		e.logger.Warn("Agent decision failed",
			"player", prompt.Player, "attempt", attempt, "retries", e.maxRetries, "error", err)
	}

	e.logger.Warn("Retries exhausted, applying safe default", "player", prompt.Player)
	e.fallbacks++
	return e.game.SafeDefault("retries exhausted"), nil
}

func (e *Engine) decideWithTimeout(ctx context.Context, agent Agent, prompt Prompt) (Decision, error) {
	if e.decisionTimeout <= 0 {
		return agent.Decide(ctx, prompt)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	timeoutFired := make(chan struct{})
	timer := e.clock.AfterFunc(e.decisionTimeout, func() {
		close(timeoutFired)
	})
	defer timer.Stop()

	type result struct {
		decision Decision
		err      error
	}
	done := make(chan result, 1)
	go func() {
		d, err := agent.Decide(ctx, prompt)
		done <- result{d, err}
	}()

	select {
	case r := <-done:
		return r.decision, r.err
	case <-timeoutFired:
		cancel()
		return Decision{}, fmt.Errorf("%w after %s", ErrDecisionTimeout, e.decisionTimeout)
	case <-ctx.Done():
		return Decision{}, ctx.Err()
	}
}
