package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Cards
		wantErr  bool
	}{
		{name: "space separated", input: "A K Q", expected: Cards{Ace, King, Queen}},
		{name: "packed", input: "AAK", expected: Cards{Ace, Ace, King}},
		{name: "commas", input: "q,q", expected: Cards{Queen, Queen}},
		{name: "case insensitive", input: "a k", expected: Cards{Ace, King}},
		{name: "empty string", input: "", expected: Cards{}},
		{name: "invalid rank", input: "A J", wantErr: true},
		{name: "joker", input: "Joker", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMustParseCardsPanics(t *testing.T) {
	assert.Equal(t, Cards{Ace, King}, MustParseCards("A K"))
	assert.Panics(t, func() { MustParseCards("invalid") })
}

func TestCardsRemove(t *testing.T) {
	hand := MustParseCards("A A K")

	t.Run("subset is removed one for one", func(t *testing.T) {
		rest, ok := hand.Remove(MustParseCards("K A"))
		require.True(t, ok)
		assert.Equal(t, Cards{Ace}, rest)
		assert.Equal(t, MustParseCards("A A K"), hand, "original must not change")
	})

	t.Run("too many copies", func(t *testing.T) {
		_, ok := hand.Remove(MustParseCards("A A A"))
		assert.False(t, ok)
	})

	t.Run("missing rank", func(t *testing.T) {
		assert.False(t, hand.Contains(Cards{Queen}))
	})

	t.Run("empty", func(t *testing.T) {
		assert.True(t, hand.Contains(nil))
	})
}

func TestCardsHelpers(t *testing.T) {
	cards := MustParseCards("Q Q K")
	assert.Equal(t, 2, cards.Count(Queen))
	assert.Equal(t, map[Card]int{Queen: 2, King: 1}, cards.Counts())
	assert.False(t, cards.All(Queen))
	assert.True(t, MustParseCards("Q Q").All(Queen))
	assert.Equal(t, "Q Q K", cards.String())
}

func TestCardText(t *testing.T) {
	text, err := King.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "K", string(text))

	var c Card
	require.NoError(t, c.UnmarshalText([]byte("q")))
	assert.Equal(t, Queen, c)

	_, err = Card(9).MarshalText()
	assert.Error(t, err)
}
