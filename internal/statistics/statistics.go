package statistics

import (
	"fmt"
	"math"
	"sort"

	"github.com/lox/liarsbar/internal/game"
)

// GameResult represents the outcome of a single simulated game
type GameResult struct {
	ID         string                      `json:"id"`
	Seed       int64                       `json:"seed"` // RNG seed for this game (for replay)
	Styles     [game.NumPlayers]game.Style `json:"styles"`
	WinnerSeat int                         `json:"winner_seat"`
	Rounds     int                         `json:"rounds"`
	Challenges int                         `json:"challenges"` // one per round
	Successful int                         `json:"successful"` // challenges that caught a lie
	Eliminated []game.Style                `json:"eliminated,omitempty"`
	Fallbacks  int                         `json:"fallbacks"` // decisions replaced by the safe default
}

// StyleStats tracks statistics for one playing style
type StyleStats struct {
	Seats        int // seats played across all games
	Wins         int
	Eliminations int
}

// WinRate returns wins per seat played
func (s StyleStats) WinRate() float64 {
	if s.Seats == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Seats)
}

// Statistics tracks simulation statistics
type Statistics struct {
	Games      int
	SumRounds  float64
	SumRounds2 float64   // Sum of squares for variance calculation
	Values     []float64 // rounds per game, for median/percentile calculation

	Challenges int
	Successful int
	Fallbacks  int

	Styles map[game.Style]*StyleStats
	Seats  [game.NumPlayers]int // wins by seat
}

// Add incorporates a new game result into the statistics
func (s *Statistics) Add(result GameResult) {
	if s.Styles == nil {
		s.Styles = make(map[game.Style]*StyleStats)
	}

	rounds := float64(result.Rounds)
	s.Games++
	s.SumRounds += rounds
	s.SumRounds2 += rounds * rounds
	s.Values = append(s.Values, rounds)

	s.Challenges += result.Challenges
	s.Successful += result.Successful
	s.Fallbacks += result.Fallbacks

	for _, style := range result.Styles {
		s.style(style).Seats++
	}
	for _, style := range result.Eliminated {
		s.style(style).Eliminations++
	}
	if result.WinnerSeat >= 0 && result.WinnerSeat < game.NumPlayers {
		s.Seats[result.WinnerSeat]++
		s.style(result.Styles[result.WinnerSeat]).Wins++
	}
}

func (s *Statistics) style(style game.Style) *StyleStats {
	st, ok := s.Styles[style]
	if !ok {
		st = &StyleStats{}
		s.Styles[style] = st
	}
	return st
}

// Mean returns the mean number of rounds per game
func (s *Statistics) Mean() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.SumRounds / float64(s.Games)
}

// Variance returns the sample variance of rounds per game
func (s *Statistics) Variance() float64 {
	if s.Games < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumRounds2 - float64(s.Games)*mean*mean) / float64(s.Games-1)
}

// StdDev returns the sample standard deviation of rounds per game
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Games == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Games))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median number of rounds
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// ChallengeSuccessRate returns the share of challenges that caught a lie
func (s *Statistics) ChallengeSuccessRate() float64 {
	if s.Challenges == 0 {
		return 0
	}
	return float64(s.Successful) / float64(s.Challenges)
}

// StylesByWinRate returns the styles seen, best win rate first
func (s *Statistics) StylesByWinRate() []game.Style {
	styles := make([]game.Style, 0, len(s.Styles))
	for style := range s.Styles {
		styles = append(styles, style)
	}
	sort.Slice(styles, func(i, j int) bool {
		ri, rj := s.Styles[styles[i]].WinRate(), s.Styles[styles[j]].WinRate()
		if ri != rj {
			return ri > rj
		}
		return styles[i] < styles[j]
	})
	return styles
}

// Validate performs consistency checks on the collected data
func (s *Statistics) Validate() error {
	if s.Games <= 0 {
		return fmt.Errorf("invalid games count: %d", s.Games)
	}
	if len(s.Values) != s.Games {
		return fmt.Errorf("values array length (%d) does not match games count (%d)", len(s.Values), s.Games)
	}
	if s.Successful > s.Challenges {
		return fmt.Errorf("successful challenges (%d) exceed challenges (%d)", s.Successful, s.Challenges)
	}

	seatWins, styleWins, seats := 0, 0, 0
	for _, n := range s.Seats {
		seatWins += n
	}
	for _, st := range s.Styles {
		styleWins += st.Wins
		seats += st.Seats
	}
	if seatWins != styleWins {
		return fmt.Errorf("wins by seat (%d) do not match wins by style (%d)", seatWins, styleWins)
	}
	if seatWins > s.Games {
		return fmt.Errorf("total wins (%d) exceeds total games (%d)", seatWins, s.Games)
	}
	if seats != s.Games*game.NumPlayers {
		return fmt.Errorf("seats played (%d) does not match %d games", seats, s.Games)
	}
	return nil
}
