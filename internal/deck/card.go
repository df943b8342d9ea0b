package deck

import (
	"fmt"
	"strings"
)

// Card is a rank in the liar's deck. Suits carry no meaning in this game so a
// card is identified by its rank alone.
type Card uint8

const (
	Ace Card = iota + 1
	King
	Queen
)

// Ranks lists every rank in the deck, in deck-building order.
var Ranks = []Card{Ace, King, Queen}

// String returns the single-letter token for the card
func (c Card) String() string {
	switch c {
	case Ace:
		return "A"
	case King:
		return "K"
	case Queen:
		return "Q"
	default:
		return "?"
	}
}

// Valid reports whether c is one of the deck's ranks
func (c Card) Valid() bool {
	return c >= Ace && c <= Queen
}

// MarshalText encodes the card as its token so prompts and logs stay readable.
func (c Card) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid card %d", uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText parses a card token.
func (c *Card) UnmarshalText(text []byte) error {
	parsed, err := ParseCard(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCard parses a single card token (A, K or Q), case-insensitively.
func ParseCard(s string) (Card, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return Ace, nil
	case "K":
		return King, nil
	case "Q":
		return Queen, nil
	default:
		return 0, fmt.Errorf("invalid card %q: must be one of A, K, Q", s)
	}
}

// ParseCards parses whitespace or comma separated tokens ("A K Q", "A,K").
// Tokens written together ("AAK") are split into single cards.
func ParseCards(s string) (Cards, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t'
	})

	cards := Cards{}
	for _, field := range fields {
		for _, r := range field {
			card, err := ParseCard(string(r))
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
		}
	}
	return cards, nil
}

// MustParseCards is ParseCards for tests and fixtures; it panics on bad input.
func MustParseCards(s string) Cards {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}

// Cards is an ordered collection of cards that is treated as a multiset by the
// helpers below.
type Cards []Card

// String renders the cards as space separated tokens
func (cs Cards) String() string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

// Count returns how many copies of card are present
func (cs Cards) Count(card Card) int {
	n := 0
	for _, c := range cs {
		if c == card {
			n++
		}
	}
	return n
}

// Counts returns per-rank totals.
func (cs Cards) Counts() map[Card]int {
	counts := make(map[Card]int, len(Ranks))
	for _, c := range cs {
		counts[c]++
	}
	return counts
}

// All reports whether every card equals card. It is true for an empty set.
func (cs Cards) All(card Card) bool {
	for _, c := range cs {
		if c != card {
			return false
		}
	}
	return true
}

// Clone returns an independent copy
func (cs Cards) Clone() Cards {
	if cs == nil {
		return nil
	}
	out := make(Cards, len(cs))
	copy(out, cs)
	return out
}

// Contains reports whether sub can be removed from cs one-for-one.
func (cs Cards) Contains(sub Cards) bool {
	_, ok := cs.Remove(sub)
	return ok
}

// Remove returns a copy of cs with sub removed one-for-one, taking the first
// matching copy each time. ok is false when sub is not contained in cs.
func (cs Cards) Remove(sub Cards) (rest Cards, ok bool) {
	rest = cs.Clone()
	for _, want := range sub {
		idx := -1
		for i, c := range rest {
			if c == want {
				idx = i
				break
			}
		}
		if idx < 0 {
			return cs, false
		}
		rest = append(rest[:idx], rest[idx+1:]...)
	}
	return rest, true
}
