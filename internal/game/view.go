package game

import "github.com/lox/liarsbar/internal/deck"

// PlayerView is a read-only snapshot of a seat
type PlayerView struct {
	Seat              int        `json:"seat"`
	Name              string     `json:"name"`
	Style             Style      `json:"style"`
	Alive             bool       `json:"alive"`
	EliminationFactor int        `json:"elimination_factor"`
	Hand              deck.Cards `json:"hand"`
}

// View is everything a presentation layer may read. All slices are copies;
// holding on to a View never aliases game state.
type View struct {
	Round        int          `json:"round"`
	Phase        Phase        `json:"phase"`
	Target       deck.Card    `json:"target"`
	Current      int          `json:"current"`
	HumanSeat    int          `json:"human_seat"`
	Players      []PlayerView `json:"players"`
	GameLog      []LogEntry   `json:"game_log"`
	CurrentRound []RoundEntry `json:"current_round"`
	Resolution   *Resolution  `json:"resolution,omitempty"`
	Narrative    []string     `json:"narrative,omitempty"`
}

// ViewOption configures a View snapshot
type ViewOption func(*viewOptions)

type viewOptions struct {
	rationale bool
}

// WithRationale keeps each player's private reasoning in the game log. It is
// meant for debug displays only.
func WithRationale() ViewOption {
	return func(o *viewOptions) { o.rationale = true }
}

// View snapshots the game for presentation. Rationales are stripped from the
// game log unless WithRationale is given.
func (g *Game) View(opts ...ViewOption) View {
	var o viewOptions
	for _, opt := range opts {
		opt(&o)
	}

	v := View{
		Round:        g.round,
		Phase:        g.phase,
		Target:       g.target,
		Current:      g.current,
		HumanSeat:    g.humanSeat,
		Players:      make([]PlayerView, NumPlayers),
		GameLog:      g.ledger.Log(),
		CurrentRound: g.ledger.Current(),
		Narrative:    g.Narrative(),
	}
	for i, p := range g.players {
		v.Players[i] = PlayerView{
			Seat:              p.Seat,
			Name:              p.Name,
			Style:             p.Style,
			Alive:             p.Alive,
			EliminationFactor: p.EliminationFactor,
			Hand:              p.Hand.Clone(),
		}
	}
	if !o.rationale {
		for i := range v.GameLog {
			v.GameLog[i].Rationale = ""
		}
	}
	if g.last != nil {
		res := g.last.clone()
		v.Resolution = &res
	}
	return v
}

// snapshot is the View attached to published events
func (g *Game) snapshot() View {
	if g.revealRationale {
		return g.View(WithRationale())
	}
	return g.View()
}

// publicEntry is the log entry attached to a PlayerActionEvent
func (g *Game) publicEntry() LogEntry {
	entry := g.lastLogEntry()
	if !g.revealRationale {
		entry.Rationale = ""
	}
	return entry
}
