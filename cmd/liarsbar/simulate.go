package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/liarsbar/cmd/liarsbar/shared"
	"github.com/lox/liarsbar/internal/config"
	"github.com/lox/liarsbar/internal/fileutil"
	"github.com/lox/liarsbar/internal/game"
	"github.com/lox/liarsbar/internal/randutil"
	"github.com/lox/liarsbar/internal/simulator"
)

type SimulateCmd struct {
	Games    int           `short:"n" default:"1000" help:"Number of games to simulate"`
	Styles   []string      `help:"Four automated styles, one per seat (defaults to the config, human seat replaced)"`
	Config   string        `short:"c" default:"liarsbar.hcl" help:"HCL config file"`
	Seed     int64         `default:"0" help:"Base RNG seed (0 for random)"`
	Parallel int           `short:"p" default:"4" help:"Games to run at once"`
	Timeout  time.Duration `default:"30s" help:"Per-game timeout"`
	Rotate   bool          `default:"true" negatable:"" help:"Rotate styles through the seats"`
	Output   string        `short:"o" help:"Write per-game results as JSON to this file"`
	Verbose  bool          `short:"V" help:"Verbose logging"`
}

func (c *SimulateCmd) Run() error {
	logger := shared.SetupConsoleLogger(c.Verbose)

	styles, err := c.resolveStyles()
	if err != nil {
		return err
	}

	seed := randutil.Seed(c.Seed)
	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	sim, err := simulator.New(simulator.Config{
		Games:       c.Games,
		Styles:      styles,
		Seed:        seed,
		Parallel:    c.Parallel,
		Timeout:     c.Timeout,
		RotateSeats: c.Rotate,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Simulating %d games, seed %d, styles %v\n", c.Games, seed, styles)
	start := time.Now()
	stats, results, err := sim.Run(ctx)
	if err != nil {
		return err
	}
	if c.Output != "" {
		if err := fileutil.WriteJSON(c.Output, results); err != nil {
			return err
		}
		logger.Info("Wrote results", "file", c.Output, "games", len(results))
	}

	simulator.PrintSummary(os.Stdout, stats)
	fmt.Printf("\nCompleted in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}

func (c *SimulateCmd) resolveStyles() ([]game.Style, error) {
	if len(c.Styles) > 0 {
		styles := make([]game.Style, len(c.Styles))
		for i, name := range c.Styles {
			style, err := game.ParseStyle(name)
			if err != nil {
				return nil, err
			}
			styles[i] = style
		}
		return styles, nil
	}

	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	return cfg.WithoutHuman(game.CoolAnalyzer).Styles()
}
