package simulator

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lox/liarsbar/internal/game"
)

var testStyles = []game.Style{game.Coward, game.BoldGambler, game.CoolAnalyzer, game.CunningLiar}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

func TestNew(t *testing.T) {
	config := Config{
		Games:  10,
		Styles: testStyles,
		Seed:   12345,
		Logger: quietLogger(),
	}

	simulator, err := New(config)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if simulator.config.Games != 10 {
		t.Errorf("Expected 10 games, got %d", simulator.config.Games)
	}
	if simulator.config.Parallel != 1 {
		t.Errorf("Expected parallel to default to 1, got %d", simulator.config.Parallel)
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		config Config
	}{
		{"no games", Config{Games: 0, Styles: testStyles}},
		{"too few styles", Config{Games: 1, Styles: testStyles[:3]}},
		{"human seat", Config{Games: 1, Styles: []game.Style{game.Human, game.Coward, game.Augur, game.CunningLiar}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.config); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSimulator_Run(t *testing.T) {
	simulator, err := New(Config{
		Games:    8,
		Styles:   testStyles,
		Seed:     7,
		Parallel: 4,
		Timeout:  5 * time.Second,
		Logger:   quietLogger(),
	})
	if err != nil {
		t.Fatal(err)
	}

	stats, results, err := simulator.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if len(results) != 8 {
		t.Fatalf("Expected 8 results, got %d", len(results))
	}
	for i, r := range results {
		if r.Seed != 7+int64(i) {
			t.Errorf("result %d has seed %d", i, r.Seed)
		}
		if r.Challenges != r.Rounds {
			t.Errorf("result %d: %d challenges in %d rounds", i, r.Challenges, r.Rounds)
		}
	}
	if stats.Games != 8 {
		t.Errorf("Expected 8 games, got %d", stats.Games)
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("statistics invalid: %v", err)
	}
	if stats.Mean() < 1 {
		t.Errorf("every game lasts at least one round, mean %.2f", stats.Mean())
	}
	// One challenge closes every round.
	if float64(stats.Challenges) != stats.SumRounds {
		t.Errorf("challenges %d != rounds %.0f", stats.Challenges, stats.SumRounds)
	}
	if stats.Fallbacks != 0 {
		t.Errorf("bots should never need the safe default, got %d", stats.Fallbacks)
	}
}

func TestSimulator_Reproducible(t *testing.T) {
	run := func(parallel int) []float64 {
		simulator, err := New(Config{
			Games:    6,
			Styles:   testStyles,
			Seed:     99,
			Parallel: parallel,
			Logger:   quietLogger(),
		})
		if err != nil {
			t.Fatal(err)
		}
		stats, _, err := simulator.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		return stats.Values
	}

	sequential := run(1)
	parallel := run(3)
	if len(sequential) != len(parallel) {
		t.Fatalf("length mismatch %d vs %d", len(sequential), len(parallel))
	}
	for i := range sequential {
		if sequential[i] != parallel[i] {
			t.Errorf("game %d: %v rounds sequentially, %v in parallel", i, sequential[i], parallel[i])
		}
	}
}

func TestSimulator_RotateSeats(t *testing.T) {
	simulator, err := New(Config{Games: 4, Styles: testStyles, RotateSeats: true})
	if err != nil {
		t.Fatal(err)
	}

	seen := map[game.Style]map[int]bool{}
	for i := range 4 {
		styles := simulator.seatStyles(i)
		for seat, style := range styles {
			if seen[style] == nil {
				seen[style] = map[int]bool{}
			}
			seen[style][seat] = true
		}
	}
	for _, style := range testStyles {
		if len(seen[style]) != game.NumPlayers {
			t.Errorf("%s sat in %d seats, want %d", style, len(seen[style]), game.NumPlayers)
		}
	}

	fixed, _ := New(Config{Games: 4, Styles: testStyles})
	if fixed.seatStyles(3) != fixed.seatStyles(0) {
		t.Error("seats should not rotate unless asked")
	}
}

func TestSimulator_Cancelled(t *testing.T) {
	simulator, err := New(Config{Games: 3, Styles: testStyles, Logger: quietLogger()})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := simulator.Run(ctx); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestRunSimulation_Convenience(t *testing.T) {
	stats, err := RunSimulation(context.Background(), 4, testStyles, 12345, quietLogger())
	if err != nil {
		t.Fatalf("RunSimulation failed: %v", err)
	}
	if stats.Games != 4 {
		t.Errorf("Expected 4 games, got %d", stats.Games)
	}
	for _, style := range testStyles {
		if stats.Styles[style].Seats != 4 {
			t.Errorf("%s played %d seats, want 4", style, stats.Styles[style].Seats)
		}
	}
}

func TestPrintSummary(t *testing.T) {
	stats, err := RunSimulation(context.Background(), 2, testStyles, 1, quietLogger())
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	PrintSummary(&buf, stats)
	out := buf.String()
	for _, want := range []string{"Games played: 2", "=== STYLES ===", "=== SEATS ==="} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
}
