package game

import (
	"sort"

	"github.com/Imadiyiz/nomination-advisor/internal/shared"
)

// Standing is one row of a scoreboard view.
type Standing struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Scoreboard tracks per-round trick counts and cumulative totals keyed by
// player name.
type Scoreboard struct {
	Round map[string]int
	Total map[string]int
}

// NewScoreboard creates an empty scoreboard for the given players.
func NewScoreboard(players []*shared.Player) *Scoreboard {
	sb := &Scoreboard{
		Round: make(map[string]int, len(players)),
		Total: make(map[string]int, len(players)),
	}
	for _, p := range players {
		sb.Round[p.Name] = 0
		sb.Total[p.Name] = 0
	}
	return sb
}

// RecordTrickWin credits the player with one won trick this round.
func (sb *Scoreboard) RecordTrickWin(p *shared.Player) {
	p.RoundScore++
	sb.Round[p.Name] = p.RoundScore
}

// FinalizeRound folds the round results into the cumulative totals. An exact
// bid earns (bid+10), doubled when the bid was the whole hand; a missed bid
// earns only the raw tricks won.
func (sb *Scoreboard) FinalizeRound(players []*shared.Player, handSize int) {
	for _, p := range players {
		bid, placed := p.Bid()
		won := p.RoundScore
		if placed && bid == won {
			multiplier := 1
			if bid == handSize {
				multiplier = 2
			}
			p.TotalScore += (bid + 10) * multiplier
		} else {
			p.TotalScore += won
		}
		sb.Total[p.Name] = p.TotalScore
	}
}

// ResetRoundScores zeroes every player's trick count at round start. Totals
// persist across rounds, round counts do not.
func (sb *Scoreboard) ResetRoundScores(players []*shared.Player) {
	for _, p := range players {
		p.RoundScore = 0
		sb.Round[p.Name] = 0
	}
}

// RoundStandings returns the round scoreboard sorted by score descending.
func (sb *Scoreboard) RoundStandings() []Standing {
	return standings(sb.Round)
}

// TotalStandings returns the cumulative scoreboard sorted by score descending.
func (sb *Scoreboard) TotalStandings() []Standing {
	return standings(sb.Total)
}

func standings(scores map[string]int) []Standing {
	rows := make([]Standing, 0, len(scores))
	for name, score := range scores {
		rows = append(rows, Standing{Name: name, Score: score})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Score != rows[j].Score {
			return rows[i].Score > rows[j].Score
		}
		return rows[i].Name < rows[j].Name
	})
	return rows
}
