package game

import (
	"testing"

	"github.com/Imadiyiz/nomination-advisor/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seats(count int) []*shared.Player {
	order := make([]*shared.Player, count)
	for i := range order {
		order[i] = shared.NewPlayer(string(rune('a'+i)), "P"+string(rune('1'+i)), false)
	}
	return order
}

func TestForbiddenTotal(t *testing.T) {
	cases := []struct {
		name      string
		bids      []int
		handSize  int
		forbidden int
		ok        bool
	}{
		{"under the hand size", []int{1, 1, 2, 2}, 8, 2, true},
		{"exactly the hand size", []int{1, 1, 2, 2}, 6, 0, true},
		{"over the hand size", []int{1, 1, 2, 2}, 5, 0, false},
		{"no bids yet", nil, 8, 8, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			order := seats(5)
			for i, bid := range tc.bids {
				order[i].PlaceBid(bid)
			}
			forbidden, ok := ForbiddenTotal(order, tc.handSize)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.forbidden, forbidden)
			}
		})
	}
}

func TestSubmitBidRange(t *testing.T) {
	order := seats(3)

	assert.ErrorIs(t, SubmitBid(order, order[0], -1, 8), ErrInvalidBid)
	assert.ErrorIs(t, SubmitBid(order, order[0], 9, 8), ErrInvalidBid)

	require.NoError(t, SubmitBid(order, order[0], 0, 8))
	bid, placed := order[0].Bid()
	assert.True(t, placed)
	assert.Equal(t, 0, bid)
}

func TestSubmitBidForbiddenTotalOnlyBindsLastBidder(t *testing.T) {
	order := seats(4)
	order[0].PlaceBid(1)
	order[1].PlaceBid(1)
	order[2].PlaceBid(2)
	last := order[3]
	last.LastToBid = true

	// Hand size 6, placed total 4: the last bidder may not make it come out even.
	err := SubmitBid(order, last, 2, 6)
	assert.ErrorIs(t, err, ErrInvalidBid)
	_, placed := last.Bid()
	assert.False(t, placed, "rejected bid must not stick")

	require.NoError(t, SubmitBid(order, last, 3, 6))

	// The same bid from a non-handicapped seat is fine.
	free := seats(1)[0]
	require.NoError(t, SubmitBid(order, free, 2, 6))
}

func TestSubmitBidNoForbiddenTotalWhenOverbid(t *testing.T) {
	order := seats(4)
	order[0].PlaceBid(3)
	order[1].PlaceBid(3)
	order[2].PlaceBid(2)
	last := order[3]
	last.LastToBid = true

	// Placed total 8 already exceeds the hand of 5; every in-range bid is open.
	for amount := 0; amount <= 5; amount++ {
		last.ClearBid()
		assert.NoError(t, SubmitBid(order, last, amount, 5), "bid %d", amount)
	}
}

func TestResetBids(t *testing.T) {
	order := seats(3)
	for _, p := range order {
		p.PlaceBid(2)
	}
	ResetBids(order)
	for _, p := range order {
		_, placed := p.Bid()
		assert.False(t, placed)
	}
}

func TestBidsViewMarksUnresolvedSeats(t *testing.T) {
	order := seats(3)
	order[0].PlaceBid(0)
	order[1].PlaceBid(4)

	view := BidsView(order)
	require.Len(t, view, 3)
	assert.Equal(t, PlayerBid{Name: "P1", Bid: 0, Placed: true}, view[0])
	assert.Equal(t, PlayerBid{Name: "P2", Bid: 4, Placed: true}, view[1])
	assert.False(t, view[2].Placed)
}

func TestBidDifference(t *testing.T) {
	order := seats(3)
	order[0].PlaceBid(3)
	order[1].PlaceBid(3)
	order[2].PlaceBid(1)

	assert.Equal(t, 1, BidDifference(order, 6))
	assert.Equal(t, -1, BidDifference(order, 8))
}
