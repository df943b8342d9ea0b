package game

import (
	"fmt"

	"github.com/lox/liarsbar/internal/deck"
)

const (
	// NumPlayers is the fixed number of seats
	NumPlayers = 4
	// HandSize is how many cards each seat is dealt per round
	HandSize = 5
	// MaxEliminationFactor is the starting number of chambers
	MaxEliminationFactor = 5
)

// Player represents one seat at the table
type Player struct {
	Seat              int
	Name              string
	Style             Style
	Alive             bool
	EliminationFactor int // chambers left; elimination odds are 1/EliminationFactor
	Hand              deck.Cards
}

// NewPlayer creates a living player with a full elimination factor
func NewPlayer(seat int, style Style) *Player {
	return &Player{
		Seat:              seat,
		Name:              SeatName(seat),
		Style:             style,
		Alive:             true,
		EliminationFactor: MaxEliminationFactor,
	}
}

// SeatName returns the display name for a seat ("player1".."player4")
func SeatName(seat int) string {
	return fmt.Sprintf("player%d", seat+1)
}

// SeatIndex is the inverse of SeatName
func SeatIndex(name string) (int, bool) {
	for seat := range NumPlayers {
		if SeatName(seat) == name {
			return seat, true
		}
	}
	return -1, false
}

func (p *Player) clone() Player {
	c := *p
	c.Hand = p.Hand.Clone()
	return c
}
