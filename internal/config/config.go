// Package config loads liarsbar.hcl.
package config

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/liarsbar/internal/game"
)

// Provider names for player blocks
const (
	ProviderBot = "bot"
	ProviderLLM = "llm"
)

// Config represents the complete configuration
type Config struct {
	Game    *GameSettings  `hcl:"game,block"`
	Players []PlayerConfig `hcl:"player,block"`
	LLM     *LLMSettings   `hcl:"llm,block"`
}

// GameSettings contains session-level configuration
type GameSettings struct {
	Seed            int64  `hcl:"seed,optional"`
	DecisionTimeout string `hcl:"decision_timeout,optional"`
	MaxRetries      *int   `hcl:"max_retries,optional"` // nil means the default; 0 means a single attempt
	LogLevel        string `hcl:"log_level,optional"`
	LogFile         string `hcl:"log_file,optional"`
}

// PlayerConfig configures one seat. The label is the seat name
// (player1..player4); blocks may be declared in any order.
type PlayerConfig struct {
	Name     string `hcl:"name,label"`
	Style    string `hcl:"style"`
	Provider string `hcl:"provider,optional"`
}

// LLMSettings configures the language-model provider
type LLMSettings struct {
	Model       string  `hcl:"model,optional"`
	APIKeyEnv   string  `hcl:"api_key_env,optional"`
	Temperature float64 `hcl:"temperature,optional"`
}

// Default returns the default configuration: a human in the first seat
// against three rule-based bots.
func Default() *Config {
	c := &Config{
		Players: []PlayerConfig{
			{Name: game.SeatName(0), Style: game.Human.String()},
			{Name: game.SeatName(1), Style: game.Coward.String()},
			{Name: game.SeatName(2), Style: game.BoldGambler.String()},
			{Name: game.SeatName(3), Style: game.CunningLiar.String()},
		},
	}
	c.applyDefaults()
	return c
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	if len(config.Players) == 0 {
		config.Players = Default().Players
	}
	slices.SortStableFunc(config.Players, func(a, b PlayerConfig) int {
		return cmp.Compare(seatOrder(a.Name), seatOrder(b.Name))
	})

	config.applyDefaults()
	return &config, nil
}

// seatOrder sorts unknown labels after the seats so Validate reports them
func seatOrder(name string) int {
	if seat, ok := game.SeatIndex(name); ok {
		return seat
	}
	return game.NumPlayers
}

func (c *Config) applyDefaults() {
	if c.Game == nil {
		c.Game = &GameSettings{}
	}
	if c.Game.DecisionTimeout == "" {
		c.Game.DecisionTimeout = game.DefaultDecisionTimeout.String()
	}
	if c.Game.MaxRetries == nil {
		retries := game.DefaultMaxRetries
		c.Game.MaxRetries = &retries
	}
	if c.Game.LogLevel == "" {
		c.Game.LogLevel = "info"
	}
	if c.Game.LogFile == "" {
		c.Game.LogFile = "liarsbar.log"
	}

	for i := range c.Players {
		if c.Players[i].Provider == "" {
			c.Players[i].Provider = ProviderBot
		}
	}

	if c.LLM == nil {
		c.LLM = &LLMSettings{}
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "gemini-2.0-flash"
	}
	if c.LLM.APIKeyEnv == "" {
		c.LLM.APIKeyEnv = "GEMINI_API_KEY"
	}
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.7
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Players) != game.NumPlayers {
		return fmt.Errorf("exactly %d player blocks are required, got %d", game.NumPlayers, len(c.Players))
	}

	seen := map[string]bool{}
	humans := 0
	for i, p := range c.Players {
		if seen[p.Name] {
			return fmt.Errorf("player %s: declared twice", p.Name)
		}
		seen[p.Name] = true
		if seat, ok := game.SeatIndex(p.Name); !ok || seat != i {
			return fmt.Errorf("player %q: label must be a seat name, player1 to player%d", p.Name, game.NumPlayers)
		}

		style, err := game.ParseStyle(p.Style)
		if err != nil {
			return fmt.Errorf("player %s: %w", p.Name, err)
		}
		if style.IsHuman() {
			humans++
		}
		switch p.Provider {
		case ProviderBot, ProviderLLM:
		default:
			return fmt.Errorf("player %s: invalid provider %q", p.Name, p.Provider)
		}
	}
	if humans > 1 {
		return fmt.Errorf("at most one human player is allowed, got %d", humans)
	}

	timeout, err := c.Timeout()
	if err != nil {
		return err
	}
	if timeout < 0 {
		return fmt.Errorf("decision timeout must not be negative")
	}
	if c.Retries() < 0 {
		return fmt.Errorf("max retries must not be negative")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("llm temperature must be between 0 and 2")
	}
	return nil
}

// Styles returns one style per seat in declaration order
func (c *Config) Styles() ([]game.Style, error) {
	styles := make([]game.Style, len(c.Players))
	for i, p := range c.Players {
		style, err := game.ParseStyle(p.Style)
		if err != nil {
			return nil, fmt.Errorf("player %s: %w", p.Name, err)
		}
		styles[i] = style
	}
	return styles, nil
}

// Retries returns how many extra attempts an automated seat gets
func (c *Config) Retries() int {
	if c.Game.MaxRetries == nil {
		return game.DefaultMaxRetries
	}
	return *c.Game.MaxRetries
}

// Timeout returns the parsed decision timeout
func (c *Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Game.DecisionTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid decision timeout %q: %w", c.Game.DecisionTimeout, err)
	}
	return d, nil
}

// UsesLLM reports whether any seat is played by the language model
func (c *Config) UsesLLM() bool {
	for _, p := range c.Players {
		if p.Provider == ProviderLLM {
			return true
		}
	}
	return false
}

// WithoutHuman returns a copy with the human seat handed to a bot, for
// simulations.
func (c *Config) WithoutHuman(replacement game.Style) *Config {
	out := *c
	out.Players = append([]PlayerConfig(nil), c.Players...)
	for i, p := range out.Players {
		if style, err := game.ParseStyle(p.Style); err == nil && style.IsHuman() {
			out.Players[i].Style = replacement.String()
			out.Players[i].Provider = ProviderBot
		}
	}
	return &out
}
