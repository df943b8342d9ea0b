package deck

import (
	"fmt"

	"github.com/lox/liarsbar/internal/randutil"
)

const (
	// CopiesPerRank is how many of each rank the base deck holds.
	CopiesPerRank = 6
	// TargetBonus is how many extra copies of the target join the deck each round.
	TargetBonus = 2
)

// Deck is the liar's deck. It is rebuilt from the base ranks every round,
// augmented with extra copies of the round's target and then shuffled.
type Deck struct {
	ranks  []Card
	copies int
	cards  Cards
	next   int
	rng    randutil.Source
}

// NewDeck creates the standard deck (A, K, Q six times each) with explicit RNG
func NewDeck(rng randutil.Source) *Deck {
	return NewDeckWithRanks(rng, Ranks, CopiesPerRank)
}

// NewDeckWithRanks creates a deck over arbitrary ranks and copy counts.
func NewDeckWithRanks(rng randutil.Source, ranks []Card, copies int) *Deck {
	d := &Deck{
		ranks:  append([]Card(nil), ranks...),
		copies: copies,
		rng:    rng,
	}
	d.Reset()
	return d
}

// Reset restores the unshuffled base deck
func (d *Deck) Reset() {
	d.cards = d.cards[:0]
	for _, rank := range d.ranks {
		for range d.copies {
			d.cards = append(d.cards, rank)
		}
	}
	d.next = 0
}

// BaseSize is the number of cards before target augmentation
func (d *Deck) BaseSize() int {
	return len(d.ranks) * d.copies
}

// ChooseTarget picks a card uniformly from the cards currently in the deck.
// Called on a freshly reset deck this is uniform over the base deck.
func (d *Deck) ChooseTarget() (Card, error) {
	if len(d.cards) == 0 {
		return 0, fmt.Errorf("cannot choose target from empty deck")
	}
	return d.cards[d.rng.IntN(len(d.cards))], nil
}

// Augment appends n extra copies of target
func (d *Deck) Augment(target Card, n int) {
	for range n {
		d.cards = append(d.cards, target)
	}
}

// Shuffle randomizes the remaining cards in place
func (d *Deck) Shuffle() {
	rest := d.cards[d.next:]
	d.rng.Shuffle(len(rest), func(i, j int) {
		rest[i], rest[j] = rest[j], rest[i]
	})
}

// Deal deals n cards from the top of the deck. It returns nil when fewer than
// n cards remain.
func (d *Deck) Deal(n int) Cards {
	if d.next+n > len(d.cards) {
		return nil
	}
	hand := d.cards[d.next : d.next+n].Clone()
	d.next += n
	return hand
}

// CardsRemaining returns the number of undealt cards
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}

// Remaining returns a copy of the undealt cards in deck order
func (d *Deck) Remaining() Cards {
	return d.cards[d.next:].Clone()
}
