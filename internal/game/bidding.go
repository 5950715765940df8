package game

import (
	"errors"
	"fmt"

	"github.com/Imadiyiz/nomination-advisor/internal/shared"
)

// ErrInvalidBid is returned for out-of-range bids and forbidden-total
// violations. Recoverable: the I/O layer re-prompts the same player.
var ErrInvalidBid = errors.New("invalid bid")

// PlayerBid is one seat's entry in the running bids view. Unresolved seats
// are shown with Placed == false.
type PlayerBid struct {
	Name   string `json:"name"`
	Bid    int    `json:"bid"`
	Placed bool   `json:"placed"`
}

// ForbiddenTotal computes the bid amount the last bidder may not choose:
// the hand size minus the sum of bids already placed this round. When that
// value is negative no total is forbidden and ok is false.
func ForbiddenTotal(order []*shared.Player, handSize int) (int, bool) {
	total := 0
	for _, p := range order {
		if bid, placed := p.Bid(); placed {
			total += bid
		}
	}
	forbidden := handSize - total
	if forbidden < 0 {
		return 0, false
	}
	return forbidden, true
}

// SubmitBid validates and records a bid for the current round. Bids must lie
// in [0, handSize], and the handicapped (last-to-bid) seat may not bid the
// forbidden total.
func SubmitBid(order []*shared.Player, p *shared.Player, amount, handSize int) error {
	if amount < 0 || amount > handSize {
		return fmt.Errorf("%w: %d is outside 0-%d", ErrInvalidBid, amount, handSize)
	}
	if p.LastToBid {
		if forbidden, ok := ForbiddenTotal(order, handSize); ok && amount == forbidden {
			return fmt.Errorf("%w: %d is the forbidden total for the last bidder", ErrInvalidBid, amount)
		}
	}
	p.PlaceBid(amount)
	return nil
}

// ResetBids clears every player's bid to the unset state. Called once per
// round before bidding starts.
func ResetBids(order []*shared.Player) {
	for _, p := range order {
		p.ClearBid()
	}
}

// BidsView returns the running bids view in seating order, with unresolved
// seats marked unset.
func BidsView(order []*shared.Player) []PlayerBid {
	view := make([]PlayerBid, len(order))
	for i, p := range order {
		bid, placed := p.Bid()
		view[i] = PlayerBid{Name: p.Name, Bid: bid, Placed: placed}
	}
	return view
}

// BidDifference reports the over/under line for the round: the total of all
// placed bids minus the hand size. Positive means the round is overbid.
func BidDifference(order []*shared.Player, handSize int) int {
	total := 0
	for _, p := range order {
		if bid, placed := p.Bid(); placed {
			total += bid
		}
	}
	return total - handSize
}
