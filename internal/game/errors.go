package game

import "errors"

// Error families
var (
	ErrInvalidDecision = errors.New("invalid decision")
	ErrProtocolMisuse  = errors.New("protocol misuse")
	ErrInvariant       = errors.New("invariant violation")
)

// Invalid decisions
var (
	ErrInvalidAction = errors.New("action must be trust or challenge")
	ErrIllegalCards  = errors.New("cards are not in hand")
	ErrEmptyCommand  = errors.New("empty command")
)

// ErrNothingToChallenge is wrapped by ErrInvalidDecision when it comes from
// validation and by ErrProtocolMisuse when Challenge is called directly.
var ErrNothingToChallenge = errors.New("no prior play to challenge")

// Protocol misuse
var (
	ErrNotStarted      = errors.New("game has not started")
	ErrGameOver        = errors.New("game is over")
	ErrGameNotOver     = errors.New("game is not over")
	ErrAmbiguousWinner = errors.New("winner is ambiguous while several players remain alive")
)

// Invariant violations
var (
	ErrDeckSize         = errors.New("deck size does not match players times hand size")
	ErrNoAlivePlayers   = errors.New("no alive players")
	ErrCardConservation = errors.New("card conservation violated")
	ErrDeadCurrent      = errors.New("current player is not alive")
)

// ErrQuit is returned by human input when the player asks to leave.
var ErrQuit = errors.New("player quit")

// ErrDecisionTimeout is returned when an automated agent does not answer
// within the decision timeout.
var ErrDecisionTimeout = errors.New("decision timed out")
