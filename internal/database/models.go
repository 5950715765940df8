package database

import (
	"time"

	"github.com/Imadiyiz/nomination-advisor/internal/shared"
)

// GameResult is one finished game's match-history row. Seats beyond the
// player count stay empty; a game always has 3-6 of the 6 columns filled.
type GameResult struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
	Winner    string `json:"winner"`
	Player1   string `json:"player1"`
	Player2   string `json:"player2"`
	Player3   string `json:"player3"`
	Player4   string `json:"player4"`
	Player5   string `json:"player5"`
	Player6   string `json:"player6"`
	Score1    int    `json:"score1"`
	Score2    int    `json:"score2"`
	Score3    int    `json:"score3"`
	Score4    int    `json:"score4"`
	Score5    int    `json:"score5"`
	Score6    int    `json:"score6"`
}

// NewGameResult flattens final standings into a result row.
func NewGameResult(gameID string, players []*shared.Player, winner string) GameResult {
	result := GameResult{
		ID:        gameID,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Winner:    winner,
	}
	names := [6]*string{&result.Player1, &result.Player2, &result.Player3, &result.Player4, &result.Player5, &result.Player6}
	scores := [6]*int{&result.Score1, &result.Score2, &result.Score3, &result.Score4, &result.Score5, &result.Score6}
	for i, p := range players {
		if i >= len(names) {
			break
		}
		*names[i] = p.Name
		*scores[i] = p.TotalScore
	}
	return result
}
