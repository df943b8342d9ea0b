package game

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/lox/liarsbar/internal/deck"
	"github.com/lox/liarsbar/internal/randutil"
)

// Phase is the challenge resolver's state
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingDecision
	PhaseResolving
	PhaseRoundClosed
	PhaseGameOver
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingDecision:
		return "awaiting_decision"
	case PhaseResolving:
		return "resolving"
	case PhaseRoundClosed:
		return "round_closed"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Config configures a new game
type Config struct {
	Styles   []Style     // one per seat, at most one Human
	EventBus EventBus    // optional; a private bus is created when nil
	Logger   *log.Logger // optional; discards when nil
	Deck     *deck.Deck  // optional; the standard deck over the game's RNG when nil

	// RevealRationale publishes private reasoning in events. Debug only.
	RevealRationale bool
}

// Game is the single owned aggregate for one session
type Game struct {
	players   [NumPlayers]*Player
	humanSeat int // -1 when every seat is automated

	rng    randutil.Source
	deck   *deck.Deck
	target deck.Card
	pile   deck.Cards

	ledger    *Ledger
	narrative []string
	last      *Resolution

	current int
	phase   Phase
	round   int

	eventBus        EventBus
	revealRationale bool
	logger          *log.Logger
}

// NewGame creates a game in PhaseIdle. Every random draw the game makes comes
// from rng.
func NewGame(rng randutil.Source, config Config) (*Game, error) {
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}
	if len(config.Styles) != NumPlayers {
		return nil, fmt.Errorf("need %d seat styles, got %d", NumPlayers, len(config.Styles))
	}

	g := &Game{
		humanSeat: -1,
		rng:       rng,
		deck:      config.Deck,
		ledger:    NewLedger(),
		eventBus:  config.EventBus,
		logger:    config.Logger,

		revealRationale: config.RevealRationale,
	}
	for seat, style := range config.Styles {
		if style.IsHuman() {
			if g.humanSeat >= 0 {
				return nil, fmt.Errorf("seats %d and %d are both human", g.humanSeat, seat)
			}
			g.humanSeat = seat
		}
		g.players[seat] = NewPlayer(seat, style)
	}
	if g.deck == nil {
		g.deck = deck.NewDeck(rng)
	}
	if g.eventBus == nil {
		g.eventBus = NewEventBus()
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	g.logger = g.logger.WithPrefix("game")
	return g, nil
}

// Start opens the first round with seat 0 to act
func (g *Game) Start() error {
	if g.phase != PhaseIdle {
		return fmt.Errorf("%w: game already started", ErrProtocolMisuse)
	}
	g.current = 0
	return g.StartRound()
}

// EventBus returns the bus the game publishes on
func (g *Game) EventBus() EventBus {
	return g.eventBus
}

// Phase returns the resolver state
func (g *Game) Phase() Phase {
	return g.phase
}

// Round returns the 1-based number of the current round (0 before Start)
func (g *Game) Round() int {
	return g.round
}

// Target returns the current round's target card
func (g *Game) Target() deck.Card {
	return g.target
}

// CurrentSeat returns the seat whose turn it is
func (g *Game) CurrentSeat() int {
	return g.current
}

// HumanSeat returns the human's seat, or -1 when there is none
func (g *Game) HumanSeat() int {
	return g.humanSeat
}

// Player returns a copy of the player in seat
func (g *Game) Player(seat int) Player {
	return g.players[seat].clone()
}

// Players returns copies of all players in seat order
func (g *Game) Players() []Player {
	out := make([]Player, NumPlayers)
	for i, p := range g.players {
		out[i] = p.clone()
	}
	return out
}

// Ledger exposes read-only projections of the turn ledger
func (g *Game) Ledger() LedgerReader {
	return g.ledger
}

// LedgerReader is the read side of the Ledger
type LedgerReader interface {
	Len() int
	Current() []RoundEntry
	History() [][]RoundEntry
	Log() []LogEntry
	Summary() []PlaySummary
	Statements() []Statement
	HistoryText() string
}

// LastResolution returns the most recent challenge resolution, if any
func (g *Game) LastResolution() (Resolution, bool) {
	if g.last == nil {
		return Resolution{}, false
	}
	return g.last.clone(), true
}

// Narrative returns the story of the latest challenge for display
func (g *Game) Narrative() []string {
	return append([]string(nil), g.narrative...)
}

// AliveCount returns the number of living players
func (g *Game) AliveCount() int {
	n := 0
	for _, p := range g.players {
		if p.Alive {
			n++
		}
	}
	return n
}

// NextAlive returns the next living seat after the given seat in cyclic
// order. It searches at most one lap, so it always terminates.
func (g *Game) NextAlive(after int) (int, error) {
	for step := 1; step <= NumPlayers; step++ {
		seat := (after + step) % NumPlayers
		if g.players[seat].Alive {
			return seat, nil
		}
	}
	return -1, fmt.Errorf("%w: %w", ErrInvariant, ErrNoAlivePlayers)
}

// IsTerminal reports whether the game has ended: the human has been
// eliminated or only one player is left.
func (g *Game) IsTerminal() bool {
	if g.humanSeat >= 0 && !g.players[g.humanSeat].Alive {
		return true
	}
	return g.AliveCount() == 1
}

// Winner returns the sole surviving player. It fails when the game is still
// running, and when the human was eliminated while several automated players
// remain, since there is no single winner to report.
func (g *Game) Winner() (Player, error) {
	if !g.IsTerminal() {
		return Player{}, fmt.Errorf("%w: %w: %d players alive", ErrProtocolMisuse, ErrGameNotOver, g.AliveCount())
	}
	if alive := g.AliveCount(); alive != 1 {
		return Player{}, fmt.Errorf("%w: %w: %d players alive", ErrProtocolMisuse, ErrAmbiguousWinner, alive)
	}
	for _, p := range g.players {
		if p.Alive {
			return p.clone(), nil
		}
	}
	return Player{}, fmt.Errorf("%w: %w", ErrInvariant, ErrNoAlivePlayers)
}

// ValidateConservation checks that hands, the undealt deck and the pile still
// add up to the dealt total.
func (g *Game) ValidateConservation() error {
	total := g.deck.CardsRemaining() + len(g.pile)
	for _, p := range g.players {
		total += len(p.Hand)
	}
	if want := NumPlayers * HandSize; total != want {
		return fmt.Errorf("%w: %w: have %d cards, want %d", ErrInvariant, ErrCardConservation, total, want)
	}
	return nil
}

func (g *Game) checkActing() error {
	switch g.phase {
	case PhaseIdle:
		return fmt.Errorf("%w: %w", ErrProtocolMisuse, ErrNotStarted)
	case PhaseGameOver:
		return fmt.Errorf("%w: %w", ErrProtocolMisuse, ErrGameOver)
	case PhaseAwaitingDecision:
		return nil
	default:
		return fmt.Errorf("%w: cannot act while %s", ErrProtocolMisuse, g.phase)
	}
}
