package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/lox/liarsbar/cmd/liarsbar/shared"
	"github.com/lox/liarsbar/internal/bot"
	"github.com/lox/liarsbar/internal/config"
	"github.com/lox/liarsbar/internal/game"
	"github.com/lox/liarsbar/internal/gameid"
	"github.com/lox/liarsbar/internal/llm"
	"github.com/lox/liarsbar/internal/randutil"
	"github.com/lox/liarsbar/internal/tui"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type PlayCmd struct {
	Config  string `short:"c" default:"liarsbar.hcl" help:"HCL config file (defaults apply when missing)"`
	Seed    int64  `help:"RNG seed, overrides the config (0 for random)"`
	Plain   bool   `help:"Line-based output instead of the full-screen UI"`
	Debug   bool   `help:"Debug logging, reveal every hand and every rationale"`
	LogFile string `help:"Log file, overrides the config"`
	Timeout string `help:"Per-decision timeout for automated seats, overrides the config"`
	EnvFile string `default:".env" help:"Dotenv file holding provider API keys"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if c.Timeout != "" {
		cfg.Game.DecisionTimeout = c.Timeout
	}
	if c.LogFile != "" {
		cfg.Game.LogFile = c.LogFile
	}
	if c.Debug {
		cfg.Game.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger, closer, err := shared.SetupLogger(cfg.Game.LogLevel, cfg.Game.LogFile)
	if err != nil {
		return err
	}
	defer closer.Close()

	seed := c.Seed
	if seed == 0 {
		seed = cfg.Game.Seed
	}
	seed = randutil.Seed(seed)
	sessionID := gameid.Generate()
	logger = logger.With("session", sessionID)
	logger.Info("Starting session", "seed", seed, "config", c.Config)

	styles, err := cfg.Styles()
	if err != nil {
		return err
	}
	timeout, err := cfg.Timeout()
	if err != nil {
		return err
	}

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	bus := game.NewEventBus()
	g, err := game.NewGame(randutil.New(seed), game.Config{
		Styles:   styles,
		EventBus: bus,
		Logger:   logger,

		RevealRationale: c.Debug,
	})
	if err != nil {
		return err
	}

	formatting := game.FormattingOptions{Perspective: g.HumanSeat()}
	if c.Debug {
		formatting.ShowHands = true
		formatting.ShowRationale = true
	}

	var human game.Agent
	var ui *tui.TUIAgent
	if c.Plain {
		fmt.Print(titleStyle.Render(" Liar's Bar "))
		fmt.Printf(" session %s, seed %d\n", sessionID, seed)
		bus.Subscribe(&plainSink{out: os.Stdout, formatter: game.NewEventFormatter(formatting)})
		human = plainHuman(os.Stdin, os.Stdout)
	} else {
		ui = tui.NewTUIAgent(logger, formatting)
		ui.Model().SetSessionID(sessionID)
		bus.Subscribe(ui)
		human = ui.Human()
		ui.Start(cancel)
		defer ui.Close()
	}

	agents, closeAgents, err := c.buildAgents(ctx, cfg, styles, seed, human, logger)
	if err != nil {
		return err
	}
	defer closeAgents()

	engine, err := game.NewEngine(g, agents, logger,
		game.WithDecisionTimeout(timeout),
		game.WithMaxRetries(cfg.Retries()))
	if err != nil {
		return err
	}

	outcome, err := engine.Run(ctx)
	switch {
	case errors.Is(err, game.ErrQuit), errors.Is(err, context.Canceled), errors.Is(err, io.EOF):
		logger.Info("Session ended early", "reason", err)
		if c.Plain {
			fmt.Println("\nYou leave the bar.")
		}
		return nil
	case err != nil:
		return err
	}

	logger.Info("Session complete", "rounds", outcome.Rounds, "fallbacks", outcome.Fallbacks)
	if ui != nil {
		ui.Wait(ctx)
	}
	return nil
}

// buildAgents creates one agent per seat. LLM seats share a single client.
func (c *PlayCmd) buildAgents(ctx context.Context, cfg *config.Config, styles []game.Style, seed int64, human game.Agent, logger *log.Logger) ([]game.Agent, func(), error) {
	var gemini *llm.Gemini
	closeAll := func() {
		if gemini != nil {
			if err := gemini.Close(); err != nil {
				logger.Warn("Failed to close LLM client", "error", err)
			}
		}
	}

	if cfg.UsesLLM() {
		if err := godotenv.Load(c.EnvFile); err != nil && !os.IsNotExist(err) {
			logger.Warn("Failed to load env file", "file", c.EnvFile, "error", err)
		}
		apiKey := os.Getenv(cfg.LLM.APIKeyEnv)
		if apiKey == "" {
			return nil, nil, fmt.Errorf("%s is not set; it is required for llm seats", cfg.LLM.APIKeyEnv)
		}
		var err error
		gemini, err = llm.NewGemini(ctx, apiKey, cfg.LLM.Model, float32(cfg.LLM.Temperature))
		if err != nil {
			return nil, nil, err
		}
	}

	agents := make([]game.Agent, len(styles))
	for seat, style := range styles {
		rng := randutil.Derive(seed, uint64(seat))
		var err error
		switch {
		case style.IsHuman():
			agents[seat] = human
		case cfg.Players[seat].Provider == config.ProviderLLM:
			agents[seat], err = llm.NewProvider(gemini, style, rng, logger)
		default:
			agents[seat], err = bot.New(style, rng, logger)
		}
		if err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("seat %s: %w", game.SeatName(seat), err)
		}
		logger.Debug("Seat ready", "seat", game.SeatName(seat), "style", style, "provider", cfg.Players[seat].Provider)
	}
	return agents, closeAll, nil
}
