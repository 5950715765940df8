package shared

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestNewDeckHas52DistinctCards(t *testing.T) {
	deck := NewDeck()
	require.Len(t, deck.Cards, 52)

	seen := make(map[Card]bool, 52)
	for _, c := range deck.Cards {
		assert.False(t, seen[c], "duplicate card %s", c.Code())
		seen[c] = true
	}
}

func TestShuffleIsDeterministicPerSeed(t *testing.T) {
	a := NewDeck()
	a.Shuffle(testRand(7))
	b := NewDeck()
	b.Shuffle(testRand(7))
	assert.Equal(t, a.Cards, b.Cards)

	c := NewDeck()
	c.Shuffle(testRand(8))
	assert.NotEqual(t, a.Cards, c.Cards)
}

func TestDealConservesCards(t *testing.T) {
	deck := NewDeck()
	deck.Shuffle(testRand(1))

	hands := deck.Deal(6, 8)
	require.NotNil(t, hands)
	require.Len(t, hands, 6)

	total := len(deck.Cards)
	seen := make(map[Card]bool, 52)
	for _, c := range deck.Cards {
		seen[c] = true
	}
	for _, hand := range hands {
		require.Len(t, hand, 8)
		total += len(hand)
		for _, c := range hand {
			assert.False(t, seen[c], "card %s dealt twice", c.Code())
			seen[c] = true
		}
	}
	assert.Equal(t, 52, total)
}

func TestDealFailsWhenShort(t *testing.T) {
	deck := NewDeck()
	assert.Nil(t, deck.Deal(7, 8))
	assert.Len(t, deck.Cards, 52, "failed deal must not consume cards")
}

func TestDrawAndPeek(t *testing.T) {
	deck := NewDeck()
	top, ok := deck.Peek()
	require.True(t, ok)
	assert.Len(t, deck.Cards, 52, "peek must not consume")

	drawn, ok := deck.Draw()
	require.True(t, ok)
	assert.Equal(t, top, drawn)
	assert.Len(t, deck.Cards, 51)
}

func TestDrawCode(t *testing.T) {
	deck := NewDeck()

	card, err := deck.DrawCode("KS")
	require.NoError(t, err)
	assert.Equal(t, Card{Suit: Spades, Rank: King}, card)
	assert.Len(t, deck.Cards, 51)

	_, err = deck.DrawCode("KS")
	assert.ErrorIs(t, err, ErrUnknownCardCode, "drawing a removed card must fail")

	_, err = deck.DrawCode("banana")
	assert.ErrorIs(t, err, ErrUnknownCardCode)
}
