package game

import (
	"testing"

	"github.com/Imadiyiz/nomination-advisor/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinalizeRound(t *testing.T) {
	cases := []struct {
		name     string
		bid      int
		won      int
		handSize int
		points   int
	}{
		{"exact bid", 2, 2, 5, 12},
		{"exact zero bid", 0, 0, 5, 10},
		{"whole hand doubles", 5, 5, 5, 30},
		{"missed bid scores raw tricks", 3, 1, 5, 1},
		{"overshot bid scores raw tricks", 1, 4, 5, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := shared.NewPlayer("1", "Ana", false)
			sb := NewScoreboard([]*shared.Player{p})
			p.PlaceBid(tc.bid)
			for i := 0; i < tc.won; i++ {
				sb.RecordTrickWin(p)
			}

			sb.FinalizeRound([]*shared.Player{p}, tc.handSize)
			assert.Equal(t, tc.points, p.TotalScore)
			assert.Equal(t, tc.points, sb.Total["Ana"])
		})
	}
}

func TestFinalizeRoundAccumulates(t *testing.T) {
	p := shared.NewPlayer("1", "Ana", false)
	sb := NewScoreboard([]*shared.Player{p})

	p.PlaceBid(2)
	sb.RecordTrickWin(p)
	sb.RecordTrickWin(p)
	sb.FinalizeRound([]*shared.Player{p}, 8)
	require.Equal(t, 12, p.TotalScore)

	sb.ResetRoundScores([]*shared.Player{p})
	p.ClearBid()
	p.PlaceBid(0)
	sb.FinalizeRound([]*shared.Player{p}, 7)
	assert.Equal(t, 22, p.TotalScore, "totals persist across rounds")
	assert.Equal(t, 0, sb.Round["Ana"], "round counts do not")
}

func TestStandingsOrder(t *testing.T) {
	ana := shared.NewPlayer("1", "Ana", false)
	ben := shared.NewPlayer("2", "Ben", false)
	cid := shared.NewPlayer("3", "Cid", false)
	sb := NewScoreboard([]*shared.Player{ana, ben, cid})

	ana.TotalScore = 10
	ben.TotalScore = 30
	cid.TotalScore = 10
	sb.Total["Ana"] = 10
	sb.Total["Ben"] = 30
	sb.Total["Cid"] = 10

	rows := sb.TotalStandings()
	require.Len(t, rows, 3)
	assert.Equal(t, Standing{Name: "Ben", Score: 30}, rows[0])
	assert.Equal(t, Standing{Name: "Ana", Score: 10}, rows[1], "ties break by name")
	assert.Equal(t, Standing{Name: "Cid", Score: 10}, rows[2])
}
