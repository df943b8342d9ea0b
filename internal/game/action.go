package game

import "strings"

// Action is what a player does on their turn
type Action int

const (
	ActionUnknown Action = iota
	Trust
	Challenge
)

// String returns the wire name of the action
func (a Action) String() string {
	switch a {
	case Trust:
		return "trust"
	case Challenge:
		return "challenge"
	default:
		return "unknown"
	}
}

// ParseAction maps a wire name to an Action. Unrecognised names map to
// ActionUnknown so that validation, not parsing, rejects them.
func ParseAction(s string) Action {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trust":
		return Trust
	case "challenge":
		return Challenge
	default:
		return ActionUnknown
	}
}

// MarshalText implements encoding.TextMarshaler
func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (a *Action) UnmarshalText(text []byte) error {
	*a = ParseAction(string(text))
	return nil
}
