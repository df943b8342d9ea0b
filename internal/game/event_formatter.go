package game

import (
	"fmt"
	"strings"
)

// FormattingOptions controls how events are formatted for different contexts
type FormattingOptions struct {
	ShowRationale bool // Include private reasoning when the game reveals it
	ShowHands     bool // Reveal every hand, not just the perspective seat's
	Perspective   int  // Seat whose hand and plays are shown; -1 for none
}

// EventFormatter provides centralized formatting for all game events
type EventFormatter struct {
	opts FormattingOptions
}

// NewEventFormatter creates a new event formatter with the given options
func NewEventFormatter(opts FormattingOptions) *EventFormatter {
	return &EventFormatter{opts: opts}
}

// Format renders any event as display lines
func (ef *EventFormatter) Format(event GameEvent) []string {
	switch e := event.(type) {
	case RoundStartEvent:
		return ef.FormatRoundStart(e)
	case PlayerActionEvent:
		return ef.FormatPlayerAction(e)
	case ChallengeResolvedEvent:
		return ef.FormatChallengeResolved(e)
	case GameOverEvent:
		return ef.FormatGameOver(e)
	default:
		return []string{fmt.Sprintf("[%s]", event.EventType())}
	}
}

// FormatRoundStart formats the deal, including the hands the options allow
func (ef *EventFormatter) FormatRoundStart(event RoundStartEvent) []string {
	lines := []string{fmt.Sprintf("*** ROUND %d *** target %s • %s opens",
		event.Round, event.Target, SeatName(event.FirstSeat))}

	for _, p := range event.View.Players {
		if !p.Alive || !ef.canSee(p.Seat) {
			continue
		}
		lines = append(lines, fmt.Sprintf("Dealt to %s: [%s]", p.Name, p.Hand))
	}
	return lines
}

// FormatPlayerAction formats a trust or challenge. Cards played by other
// seats stay face down unless ShowHands is set.
func (ef *EventFormatter) FormatPlayerAction(event PlayerActionEvent) []string {
	entry := event.Entry
	target := event.View.Target

	var line string
	switch entry.Action {
	case Trust:
		line = fmt.Sprintf("%s: plays %d card(s) as %s", entry.Player, len(entry.Cards), target)
		if ef.canSee(entry.Seat) {
			line += fmt.Sprintf(" [%s]", entry.Cards)
		}
	case Challenge:
		line = fmt.Sprintf("%s: challenges!", entry.Player)
		if accused, ok := accusedSeat(event.View.CurrentRound); ok {
			line = fmt.Sprintf("%s: challenges %s!", entry.Player, SeatName(accused))
		}
	default:
		line = fmt.Sprintf("%s: %s", entry.Player, entry.Action)
	}

	if ef.opts.ShowRationale && entry.Rationale != "" {
		line += fmt.Sprintf(" (%s)", entry.Rationale)
	}

	lines := []string{line}
	if entry.Statement != "" {
		lines = append(lines, fmt.Sprintf("%s says: %q", entry.Player, entry.Statement))
	}
	return lines
}

// FormatChallengeResolved formats the reveal and the elimination trial
func (ef *EventFormatter) FormatChallengeResolved(event ChallengeResolvedEvent) []string {
	lines := make([]string, 0, len(event.Narrative)+1)
	for _, n := range event.Narrative {
		lines = append(lines, "  "+n)
	}
	if event.Resolution.Draw > 0 {
		lines = append(lines, fmt.Sprintf("  (drew %d of %d)", event.Resolution.Draw, event.Resolution.FactorBefore))
	}
	return lines
}

// FormatGameOver formats the final standings
func (ef *EventFormatter) FormatGameOver(event GameOverEvent) []string {
	lines := []string{"=== GAME OVER ==="}
	switch {
	case event.WinnerSeat >= 0:
		winner := event.View.Players[event.WinnerSeat]
		lines = append(lines, fmt.Sprintf("Winner: %s (%s) after %d round(s)", winner.Name, winner.Style, event.View.Round))
	case event.HumanEliminated:
		lines = append(lines, "You were eliminated.")
	}

	var survivors []string
	for _, p := range event.View.Players {
		if p.Alive {
			survivors = append(survivors, p.Name)
		}
	}
	if len(survivors) > 1 {
		lines = append(lines, "Still standing: "+strings.Join(survivors, ", "))
	}
	return lines
}

func (ef *EventFormatter) canSee(seat int) bool {
	return ef.opts.ShowHands || seat == ef.opts.Perspective
}

// accusedSeat finds the play immediately before the trailing challenge
func accusedSeat(entries []RoundEntry) (int, bool) {
	if len(entries) < 2 {
		return 0, false
	}
	prev := entries[len(entries)-2]
	if prev.Action != Trust {
		return 0, false
	}
	return prev.Seat, true
}
