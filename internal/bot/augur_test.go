package bot

import (
	"testing"

	"github.com/lox/liarsbar/internal/deck"
	"github.com/lox/liarsbar/internal/randutil"
	"github.com/stretchr/testify/assert"
)

func TestDivine(t *testing.T) {
	tests := []struct {
		name     string
		hand     string
		target   deck.Card
		truthful func(Divination) bool
		maxCount int
	}{
		{"only matching cards", "A A", deck.Ace, func(d Divination) bool { return d.Truthful }, 2},
		{"no matching cards", "K K K Q Q", deck.Ace, func(d Divination) bool { return !d.Truthful }, 3},
		{"mixed hand", "A K Q Q Q", deck.Queen, func(Divination) bool { return true }, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hand := deck.MustParseCards(tt.hand)
			truth, bluff := splitHand(hand, tt.target)
			rng := randutil.Derive(11, 0)

			plays, challenges := 0, 0
			for range 200 {
				d := Divine(hand, tt.target, rng)
				if !d.Play {
					challenges++
					assert.Zero(t, d.Count)
					continue
				}
				plays++
				assert.True(t, tt.truthful(d))
				assert.GreaterOrEqual(t, d.Count, 1)
				assert.LessOrEqual(t, d.Count, tt.maxCount)
				if d.Truthful {
					assert.LessOrEqual(t, d.Count, len(truth))
				} else {
					assert.LessOrEqual(t, d.Count, len(bluff))
				}
			}
			assert.NotZero(t, plays)
			assert.NotZero(t, challenges)
		})
	}
}

func TestDivineEmptyHand(t *testing.T) {
	d := Divine(nil, deck.King, randutil.Derive(1, 0))
	assert.False(t, d.Play)
}

func TestDivinationString(t *testing.T) {
	assert.Equal(t, "Divination for this turn: challenge.", Divination{}.String())
	assert.Equal(t, "Divination for this turn: play 2 true card(s).", Divination{Play: true, Truthful: true, Count: 2}.String())
	assert.Equal(t, "Divination for this turn: play 1 false card(s).", Divination{Play: true, Count: 1}.String())
}
