package game

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/Imadiyiz/nomination-advisor/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// scriptIO drives manual seats from canned inputs: bids pop off a queue (auto
// strategy takes over when it runs dry), plays take the first legal card, and
// trump choices are fixed. Notifications are recorded for inspection.
type scriptIO struct {
	bids     []int
	trump    shared.Suit
	bidCalls int
	notes    []string
}

func (s *scriptIO) RequestBid(p *shared.Player, forbidden int, hasForbidden bool) (int, error) {
	s.bidCalls++
	if len(s.bids) == 0 {
		return AutoStrategy{}.RequestBid(p, forbidden, hasForbidden)
	}
	bid := s.bids[0]
	s.bids = s.bids[1:]
	return bid, nil
}

func (s *scriptIO) RequestPlay(p *shared.Player, legal []shared.Card) (shared.Card, error) {
	return legal[0], nil
}

func (s *scriptIO) RequestTrumpChoice(p *shared.Player, candidates []shared.Suit) (shared.Suit, error) {
	return s.trump, nil
}

func (s *scriptIO) Notify(message string) {
	s.notes = append(s.notes, message)
}

func (s *scriptIO) noted(substr string) bool {
	for _, note := range s.notes {
		if strings.Contains(note, substr) {
			return true
		}
	}
	return false
}

func TestAddPlayerSuffixesDuplicateNames(t *testing.T) {
	g := New(&scriptIO{}, testRand(1))

	for _, want := range []string{"Sam", "Sam2", "Sam3"} {
		p, err := g.AddPlayer("Sam", false)
		require.NoError(t, err)
		assert.Equal(t, want, p.Name)
	}
}

func TestAddPlayerRejectsOverflowAndLateJoins(t *testing.T) {
	g := New(&scriptIO{}, testRand(1))
	for i := 0; i < MaxPlayers; i++ {
		_, err := g.AddPlayer("Sam", false)
		require.NoError(t, err)
	}
	_, err := g.AddPlayer("Late", false)
	assert.Error(t, err)

	g.Phase = Bidding
	_, err = g.AddPlayer("Later", false)
	assert.Error(t, err)
}

func TestRunRequiresEnoughPlayers(t *testing.T) {
	g := New(&scriptIO{}, testRand(1))
	_, err := g.AddPlayer("Ana", false)
	require.NoError(t, err)
	_, err = g.AddPlayer("Ben", false)
	require.NoError(t, err)

	assert.Error(t, g.Run())
}

func TestHandSizeSchedule(t *testing.T) {
	want := []int{8, 7, 6, 6, 7, 8}
	for round := 1; round <= Rounds; round++ {
		assert.Equal(t, want[round-1], HandSize(round), "round %d", round)
	}
}

func TestFullGameWithAutomaticPlayers(t *testing.T) {
	io := &scriptIO{}
	g := New(io, testRand(42))
	for _, name := range []string{"Ana", "Ben", "Cid", "Dea"} {
		_, err := g.AddPlayer(name, false)
		require.NoError(t, err)
	}

	require.NoError(t, g.Run())

	assert.Equal(t, GameOver, g.Phase)
	assert.Equal(t, Rounds, g.Round)
	assert.Zero(t, io.bidCalls, "automatic seats never hit the prompt layer")

	tricks := 0
	for _, p := range g.Players() {
		assert.Empty(t, p.Hand, "all cards must be played out")
		tricks += p.RoundScore
	}
	assert.Equal(t, HandSize(Rounds), tricks, "last round's tricks all land somewhere")

	for _, s := range g.Scores.TotalStandings() {
		assert.GreaterOrEqual(t, s.Score, 0)
	}
}

func TestFullGameIsDeterministicPerSeed(t *testing.T) {
	run := func() []Standing {
		g := New(&scriptIO{}, testRand(7))
		for _, name := range []string{"Ana", "Ben", "Cid"} {
			_, err := g.AddPlayer(name, false)
			require.NoError(t, err)
		}
		require.NoError(t, g.Run())
		return g.Scores.TotalStandings()
	}

	assert.Equal(t, run(), run())
}

func TestManualSeatChoosesTrumpAndGetsRepromptedOnBadBid(t *testing.T) {
	io := &scriptIO{trump: shared.Hearts, bids: []int{99, 0}}
	g := New(io, testRand(3))
	_, err := g.AddPlayer("Ana", true)
	require.NoError(t, err)
	for _, name := range []string{"Ben", "Cid"} {
		_, err := g.AddPlayer(name, false)
		require.NoError(t, err)
	}

	require.NoError(t, g.Run())

	assert.Equal(t, shared.Hearts, g.Trump, "the scripted chooser always answers hearts")
	assert.True(t, io.noted("invalid bid"), "the out-of-range bid is announced and re-requested")
	assert.GreaterOrEqual(t, io.bidCalls, Rounds+1, "one bid per round plus the re-request")
}

func TestLegalPlaysFollowsLeadingSuit(t *testing.T) {
	g := New(&scriptIO{}, testRand(1))
	leader := shared.NewPlayer("1", "Ana", false)
	follower := shared.NewPlayer("2", "Ben", false)
	follower.CollectHand([]shared.Card{
		{Suit: shared.Hearts, Rank: 2},
		{Suit: shared.Hearts, Rank: shared.King},
		{Suit: shared.Spades, Rank: 3},
	})

	legal := g.LegalPlays(follower)
	assert.Len(t, legal, 3, "any card leads an empty trick")

	lead := shared.Card{Suit: shared.Hearts, Rank: 10}
	require.NoError(t, g.Trick.Play(lead, leader, nil))

	legal = g.LegalPlays(follower)
	require.Len(t, legal, 2)
	for _, c := range legal {
		assert.Equal(t, shared.Hearts, c.Suit)
	}

	void := shared.NewPlayer("3", "Cid", false)
	void.CollectHand([]shared.Card{{Suit: shared.Clubs, Rank: 4}})
	assert.Len(t, g.LegalPlays(void), 1, "a void hand may discard anything")
}

func TestTrumpCandidatesPutCurrentTrumpFirst(t *testing.T) {
	g := New(&scriptIO{}, testRand(1))
	g.Trump = shared.Spades

	candidates := g.trumpCandidates()
	require.Len(t, candidates, 4)
	assert.Equal(t, shared.Spades, candidates[0])
}

func TestAutoStrategyDodgesZeroForbiddenTotal(t *testing.T) {
	p := shared.NewPlayer("1", "Ana", false)

	bid, err := AutoStrategy{}.RequestBid(p, 0, true)
	require.NoError(t, err)
	assert.Equal(t, 1, bid)

	bid, err = AutoStrategy{}.RequestBid(p, 3, true)
	require.NoError(t, err)
	assert.Equal(t, 0, bid)

	bid, err = AutoStrategy{}.RequestBid(p, 0, false)
	require.NoError(t, err)
	assert.Equal(t, 0, bid)
}
