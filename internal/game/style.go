package game

import (
	"fmt"
	"strings"
)

// Style is the behavior style driving a seat. It is a closed set: a seat is
// either the human or one of the automated personas.
type Style int

const (
	Human Style = iota
	Coward
	Augur
	BoldGambler
	CoolAnalyzer
	CunningLiar
)

// AutomatedStyles lists the personas available to non-human seats
var AutomatedStyles = []Style{Coward, Augur, BoldGambler, CoolAnalyzer, CunningLiar}

// String returns the config name of the style
func (s Style) String() string {
	switch s {
	case Human:
		return "human"
	case Coward:
		return "coward"
	case Augur:
		return "augur"
	case BoldGambler:
		return "bold_gambler"
	case CoolAnalyzer:
		return "cool_analyzer"
	case CunningLiar:
		return "cunning_liar"
	default:
		return fmt.Sprintf("style(%d)", int(s))
	}
}

// IsHuman reports whether the seat is controlled through human input
func (s Style) IsHuman() bool {
	return s == Human
}

// ParseStyle parses a style name. "user" is accepted for the human seat and
// dashes may replace underscores.
func ParseStyle(name string) (Style, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "-", "_") {
	case "human", "user":
		return Human, nil
	case "coward":
		return Coward, nil
	case "augur":
		return Augur, nil
	case "bold_gambler", "gambler":
		return BoldGambler, nil
	case "cool_analyzer", "analyzer":
		return CoolAnalyzer, nil
	case "cunning_liar", "liar":
		return CunningLiar, nil
	default:
		return 0, fmt.Errorf("unknown style %q", name)
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Style) UnmarshalText(text []byte) error {
	parsed, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
