package game

import (
	"strings"
	"testing"

	"github.com/lox/liarsbar/internal/deck"
)

func TestLedgerRecordAndClose(t *testing.T) {
	l := NewLedger()

	if _, ok := l.Last(); ok {
		t.Fatal("empty ledger should have no last entry")
	}

	l.Record(1, RoundEntry{Seat: 0, Action: Trust, Cards: deck.MustParseCards("A K")}, "", "")
	l.Record(1, RoundEntry{Seat: 1, Action: Trust, Cards: deck.MustParseCards("Q")}, "", "only one")

	if l.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", l.Len())
	}
	last, ok := l.Last()
	if !ok || last.Seat != 1 {
		t.Errorf("expected last entry from seat 1, got %+v", last)
	}

	summary := l.Summary()
	if summary[0].Count != 2 || summary[1].Count != 1 {
		t.Errorf("unexpected summary counts: %+v", summary)
	}

	l.Record(1, RoundEntry{Seat: 2, Action: Challenge}, "", "")
	l.CloseRound()

	if l.Len() != 0 {
		t.Errorf("current round should be empty after close, got %d", l.Len())
	}
	history := l.History()
	if len(history) != 1 || len(history[0]) != 3 {
		t.Fatalf("expected one archived round of 3 entries, got %+v", history)
	}
	if got := len(l.Log()); got != 3 {
		t.Errorf("expected 3 log entries, got %d", got)
	}
	if got := l.Statements(); len(got) != 1 || got[0].Player != "player2" {
		t.Errorf("unexpected statements: %+v", got)
	}
}

func TestLedgerCopiesAreIndependent(t *testing.T) {
	l := NewLedger()
	cards := deck.MustParseCards("A A")
	l.Record(1, RoundEntry{Seat: 0, Action: Trust, Cards: cards}, "", "")

	cards[0] = deck.Queen
	current := l.Current()
	current[0].Cards[1] = deck.King
	l.Log()[0].Cards[0] = deck.King

	got := l.Current()[0].Cards
	if got.String() != "A A" {
		t.Errorf("ledger entry was mutated through a copy: %s", got)
	}
}

func TestLedgerHistoryText(t *testing.T) {
	l := NewLedger()
	l.Record(1, RoundEntry{Seat: 0, Action: Trust, Cards: deck.MustParseCards("A K")}, "", "")
	l.Record(1, RoundEntry{Seat: 1, Action: Challenge}, "", "")
	l.CloseRound()

	text := l.HistoryText()
	for _, want := range []string{"Round 1:", "player1 claims 2 target card(s)", "player2 challenges"} {
		if !strings.Contains(text, want) {
			t.Errorf("history text missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, "A K") {
		t.Error("history text must not reveal card faces")
	}
}
