package game

import (
	"fmt"
	"strings"

	"github.com/lox/liarsbar/internal/deck"
)

// RoundEntry is one action inside the current round. Cards is empty for a
// challenge.
type RoundEntry struct {
	Seat   int        `json:"seat"`
	Action Action     `json:"action"`
	Cards  deck.Cards `json:"cards,omitempty"`
}

// LogEntry is a RoundEntry kept for the full-game audit trail together with
// the player's private rationale and public table talk.
type LogEntry struct {
	Round     int        `json:"round"`
	Seat      int        `json:"seat"`
	Player    string     `json:"player"`
	Action    Action     `json:"action"`
	Cards     deck.Cards `json:"cards,omitempty"`
	Rationale string     `json:"rationale,omitempty"`
	Statement string     `json:"statement,omitempty"`
}

// PlaySummary is what other players are allowed to know about an entry: who
// acted and how many cards they put down, never which cards.
type PlaySummary struct {
	Seat   int    `json:"seat"`
	Player string `json:"player"`
	Action Action `json:"action"`
	Count  int    `json:"count"`
}

// Statement is a line of table talk
type Statement struct {
	Round  int    `json:"round"`
	Player string `json:"player"`
	Text   string `json:"text"`
}

// Ledger records plays within the active round and across completed rounds
type Ledger struct {
	current    []RoundEntry
	rounds     [][]RoundEntry
	log        []LogEntry
	statements []Statement
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{}
}

// Record appends entry to the current round and the game log
func (l *Ledger) Record(round int, entry RoundEntry, rationale, statement string) {
	entry.Cards = entry.Cards.Clone()
	l.current = append(l.current, entry)

	name := SeatName(entry.Seat)
	l.log = append(l.log, LogEntry{
		Round:     round,
		Seat:      entry.Seat,
		Player:    name,
		Action:    entry.Action,
		Cards:     entry.Cards.Clone(),
		Rationale: rationale,
		Statement: statement,
	})
	if statement != "" {
		l.statements = append(l.statements, Statement{Round: round, Player: name, Text: statement})
	}
}

// Len returns the number of entries in the current round
func (l *Ledger) Len() int {
	return len(l.current)
}

// Last returns the most recent entry of the current round
func (l *Ledger) Last() (RoundEntry, bool) {
	if len(l.current) == 0 {
		return RoundEntry{}, false
	}
	return l.current[len(l.current)-1], true
}

// CloseRound archives the current round into the history and clears it
func (l *Ledger) CloseRound() {
	l.rounds = append(l.rounds, l.current)
	l.current = nil
}

// Current returns a copy of the current round's entries
func (l *Ledger) Current() []RoundEntry {
	return cloneEntries(l.current)
}

// History returns a copy of every archived round
func (l *Ledger) History() [][]RoundEntry {
	out := make([][]RoundEntry, len(l.rounds))
	for i, round := range l.rounds {
		out[i] = cloneEntries(round)
	}
	return out
}

// Log returns a copy of the full game log
func (l *Ledger) Log() []LogEntry {
	out := make([]LogEntry, len(l.log))
	for i, e := range l.log {
		out[i] = e
		out[i].Cards = e.Cards.Clone()
	}
	return out
}

// Summary returns the current round with card faces hidden
func (l *Ledger) Summary() []PlaySummary {
	out := make([]PlaySummary, len(l.current))
	for i, e := range l.current {
		out[i] = PlaySummary{
			Seat:   e.Seat,
			Player: SeatName(e.Seat),
			Action: e.Action,
			Count:  len(e.Cards),
		}
	}
	return out
}

// Statements returns all table talk so far
func (l *Ledger) Statements() []Statement {
	return append([]Statement(nil), l.statements...)
}

// HistoryText renders archived rounds as plain text, one line per entry, for
// prompts and debugging.
func (l *Ledger) HistoryText() string {
	var b strings.Builder
	for i, round := range l.rounds {
		fmt.Fprintf(&b, "Round %d:\n", i+1)
		for _, e := range round {
			if e.Action == Challenge {
				fmt.Fprintf(&b, "  %s challenges\n", SeatName(e.Seat))
				continue
			}
			fmt.Fprintf(&b, "  %s claims %d target card(s)\n", SeatName(e.Seat), len(e.Cards))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func cloneEntries(entries []RoundEntry) []RoundEntry {
	out := make([]RoundEntry, len(entries))
	for i, e := range entries {
		out[i] = e
		out[i].Cards = e.Cards.Clone()
	}
	return out
}
