package simulator

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/liarsbar/internal/bot"
	"github.com/lox/liarsbar/internal/game"
	"github.com/lox/liarsbar/internal/gameid"
	"github.com/lox/liarsbar/internal/randutil"
	"github.com/lox/liarsbar/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for running simulations
type Config struct {
	Games       int
	Styles      []game.Style // one automated style per seat
	Seed        int64
	Parallel    int           // games run at once; 1 when zero
	Timeout     time.Duration // per game; zero disables it
	RotateSeats bool          // rotate styles each game to cancel seat bias
	Logger      *log.Logger
}

// Simulator runs bot-only games
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) (*Simulator, error) {
	if config.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", config.Games)
	}
	if len(config.Styles) != game.NumPlayers {
		return nil, fmt.Errorf("need %d styles, got %d", game.NumPlayers, len(config.Styles))
	}
	for _, style := range config.Styles {
		if style.IsHuman() {
			return nil, fmt.Errorf("simulations cannot seat a human")
		}
	}
	if config.Parallel <= 0 {
		config.Parallel = 1
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{config: config}, nil
}

// Run plays every game and returns the aggregated statistics along with
// each game's result in game order. Games are
// independent: game i is seeded with Seed+i, so results do not depend on
// Parallel.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, []statistics.GameResult, error) {
	results := make([]statistics.GameResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Parallel)
	for i := range s.config.Games {
		g.Go(func() error {
			result, err := s.playGame(ctx, i)
			if err != nil {
				return fmt.Errorf("game %d (seed %d): %w", i+1, s.config.Seed+int64(i), err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, results, nil
}

func (s *Simulator) seatStyles(index int) [game.NumPlayers]game.Style {
	var styles [game.NumPlayers]game.Style
	shift := 0
	if s.config.RotateSeats {
		shift = index % game.NumPlayers
	}
	for seat := range styles {
		styles[seat] = s.config.Styles[(seat+shift)%game.NumPlayers]
	}
	return styles
}

// playGame plays a single game with its own seed
func (s *Simulator) playGame(ctx context.Context, index int) (statistics.GameResult, error) {
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}

	seed := s.config.Seed + int64(index)
	styles := s.seatStyles(index)
	id := gameid.Generate()
	logger := s.config.Logger.With("game", id)

	g, err := game.NewGame(randutil.New(seed), game.Config{Styles: styles[:], Logger: logger})
	if err != nil {
		return statistics.GameResult{}, err
	}

	agents := make([]game.Agent, game.NumPlayers)
	for seat, style := range styles {
		agents[seat], err = bot.New(style, randutil.Derive(seed, uint64(seat)), logger)
		if err != nil {
			return statistics.GameResult{}, err
		}
	}

	// Bots decide synchronously, so no decision timer is armed.
	engine, err := game.NewEngine(g, agents, logger, game.WithDecisionTimeout(0))
	if err != nil {
		return statistics.GameResult{}, err
	}
	outcome, err := engine.Run(ctx)
	if err != nil {
		return statistics.GameResult{}, err
	}

	result := statistics.GameResult{
		ID:         id,
		Seed:       seed,
		Styles:     styles,
		WinnerSeat: -1,
		Rounds:     outcome.Rounds,
		Challenges: len(outcome.Resolutions),
		Fallbacks:  outcome.Fallbacks,
	}
	if outcome.Winner != nil {
		result.WinnerSeat = outcome.Winner.Seat
	}
	for _, res := range outcome.Resolutions {
		if !res.WasTruthful {
			result.Successful++
		}
		if res.Eliminated {
			result.Eliminated = append(result.Eliminated, styles[res.Punished])
		}
	}

	logger.Debug("Game finished", "seed", seed, "winner", result.WinnerSeat, "rounds", result.Rounds)
	return result, nil
}

// PrintSummary writes a summary of simulation results
func PrintSummary(w io.Writer, stats *statistics.Statistics) {
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== RESULTS ===\n")
	fmt.Fprintf(w, "Games played: %d\n", stats.Games)
	fmt.Fprintf(w, "Rounds per game: mean %.2f, median %.1f, 95%% CI [%.2f, %.2f]\n",
		stats.Mean(), stats.Median(), low, high)
	fmt.Fprintf(w, "Challenges: %d, %.1f%% caught a lie\n", stats.Challenges, stats.ChallengeSuccessRate()*100)
	if stats.Fallbacks > 0 {
		fmt.Fprintf(w, "Safe-default fallbacks: %d\n", stats.Fallbacks)
	}

	fmt.Fprintf(w, "\n=== STYLES ===\n")
	for _, style := range stats.StylesByWinRate() {
		st := stats.Styles[style]
		fmt.Fprintf(w, "%-14s %5d wins / %5d seats (%5.1f%%), eliminated %d\n",
			style, st.Wins, st.Seats, st.WinRate()*100, st.Eliminations)
	}

	fmt.Fprintf(w, "\n=== SEATS ===\n")
	parts := make([]string, game.NumPlayers)
	for seat, wins := range stats.Seats {
		parts[seat] = fmt.Sprintf("%s %d", game.SeatName(seat), wins)
	}
	fmt.Fprintln(w, strings.Join(parts, ", "))
}

// RunSimulation is a convenience wrapper that runs games sequentially with
// seat rotation enabled.
func RunSimulation(ctx context.Context, games int, styles []game.Style, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	sim, err := New(Config{
		Games:       games,
		Styles:      styles,
		Seed:        seed,
		Parallel:    1,
		RotateSeats: true,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}
	stats, _, err := sim.Run(ctx)
	return stats, err
}
