package game

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/lox/liarsbar/internal/randutil"
)

// TestGameOption configures test game creation
type TestGameOption func(*testGameBuilder)

type testGameBuilder struct {
	seed     int64
	source   randutil.Source
	styles   []Style
	eventBus EventBus
	reveal   bool
}

// Test game options
func WithSeed(seed int64) TestGameOption {
	return func(b *testGameBuilder) { b.seed = seed }
}

func WithSource(source randutil.Source) TestGameOption {
	return func(b *testGameBuilder) { b.source = source }
}

func WithStyles(styles ...Style) TestGameOption {
	return func(b *testGameBuilder) { b.styles = styles }
}

func WithEventBus(eventBus EventBus) TestGameOption {
	return func(b *testGameBuilder) { b.eventBus = eventBus }
}

func WithRevealedRationale() TestGameOption {
	return func(b *testGameBuilder) { b.reveal = true }
}

// NewTestGame creates an unstarted game with sensible defaults: seed 42 and
// four automated seats.
func NewTestGame(opts ...TestGameOption) *Game {
	builder := &testGameBuilder{
		seed:     42,
		styles:   []Style{Coward, Augur, BoldGambler, CoolAnalyzer},
		eventBus: NewEventBus(),
	}

	for _, opt := range opts {
		opt(builder)
	}

	rng := builder.source
	if rng == nil {
		rng = randutil.New(builder.seed)
	}
	g, err := NewGame(rng, Config{
		Styles:   builder.styles,
		EventBus: builder.eventBus,
		Logger:   log.New(io.Discard),

		RevealRationale: builder.reveal,
	})
	if err != nil {
		panic(err)
	}
	return g
}

// ScriptedSource is a randutil.Source that returns queued values from IntN
// and leaves shuffles as the identity, so a reset deck is dealt in rank
// order. Once the queue is empty IntN returns 0.
type ScriptedSource struct {
	mu     sync.Mutex
	values []int
}

// NewScriptedSource creates a source that will return values in order
func NewScriptedSource(values ...int) *ScriptedSource {
	return &ScriptedSource{values: values}
}

// Push queues more values
func (s *ScriptedSource) Push(values ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = append(s.values, values...)
}

// IntN returns the next queued value modulo n
func (s *ScriptedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[0]
	s.values = s.values[1:]
	return v % n
}

// Shuffle does nothing
func (s *ScriptedSource) Shuffle(n int, swap func(i, j int)) {}

// ScriptedAgent replays decisions in order and records every prompt it saw.
// When the script runs out it returns the safe default for the prompt.
type ScriptedAgent struct {
	mu        sync.Mutex
	decisions []Decision
	errs      []error
	Prompts   []Prompt
	Rejected  []error
}

// NewScriptedAgent creates an agent that replays decisions
func NewScriptedAgent(decisions ...Decision) *ScriptedAgent {
	return &ScriptedAgent{decisions: decisions}
}

// FailWith queues errors returned before any scripted decision
func (a *ScriptedAgent) FailWith(errs ...error) *ScriptedAgent {
	a.errs = append(a.errs, errs...)
	return a
}

// Decide returns the next queued error or decision
func (a *ScriptedAgent) Decide(ctx context.Context, prompt Prompt) (Decision, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Prompts = append(a.Prompts, prompt)

	if len(a.errs) > 0 {
		err := a.errs[0]
		a.errs = a.errs[1:]
		return Decision{}, err
	}
	if len(a.decisions) > 0 {
		d := a.decisions[0]
		a.decisions = a.decisions[1:]
		return d, nil
	}
	if prompt.MustChallenge || len(prompt.Hand) == 0 {
		return Decision{Action: Challenge}, nil
	}
	return Decision{Action: Trust, Cards: prompt.Hand[:1].Clone()}, nil
}

// Reject records the refusal
func (a *ScriptedAgent) Reject(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.Rejected = append(a.Rejected, err)
}

// Calls returns how many times Decide was called
func (a *ScriptedAgent) Calls() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.Prompts)
}
