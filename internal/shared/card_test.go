package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardCodeRoundTrip(t *testing.T) {
	for _, suit := range Suits() {
		for _, rank := range Ranks() {
			card := Card{Suit: suit, Rank: rank}
			parsed, err := ParseCard(card.Code())
			require.NoError(t, err, "code %s", card.Code())
			assert.Equal(t, card, parsed)
		}
	}
}

func TestParseCardUppercases(t *testing.T) {
	parsed, err := ParseCard("10d")
	require.NoError(t, err)
	assert.Equal(t, "10D", parsed.Code())

	parsed, err = ParseCard("ks")
	require.NoError(t, err)
	assert.Equal(t, Card{Suit: Spades, Rank: King}, parsed)
}

func TestParseCardRejectsInvalidCodes(t *testing.T) {
	cases := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"too short", "D"},
		{"too long", "10DX"},
		{"unknown rank", "1D"},
		{"unknown rank token", "ZD"},
		{"unknown suit", "10X"},
		{"rank only", "10"},
		{"zero rank", "0H"},
		{"eleven is not a token", "11H"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCard(tc.code)
			assert.ErrorIs(t, err, ErrUnknownCardCode, "code %q", tc.code)
		})
	}
}

func TestCardEqualityIsStructural(t *testing.T) {
	a := Card{Suit: Hearts, Rank: 10}
	b := Card{Suit: Hearts, Rank: 10}
	assert.True(t, a == b)
	assert.NotEqual(t, a, Card{Suit: Diamonds, Rank: 10})
	assert.NotEqual(t, a, Card{Suit: Hearts, Rank: Jack})
}

func TestRankTokens(t *testing.T) {
	assert.Equal(t, "2", Rank(2).Token())
	assert.Equal(t, "10", Rank(10).Token())
	assert.Equal(t, "J", Jack.Token())
	assert.Equal(t, "Q", Queen.Token())
	assert.Equal(t, "K", King.Token())
	assert.Equal(t, "A", Ace.Token())
}
