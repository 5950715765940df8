package game

import (
	"github.com/Imadiyiz/nomination-advisor/internal/shared"
)

// PlayerIO is the synchronous contract between the engine and the prompt
// layer. Every request blocks until the layer supplies a domain value; the
// engine validates it and re-requests on recoverable rule violations, so the
// core never sees raw text. An error from any request aborts the game (e.g.
// a remote seat disconnecting).
type PlayerIO interface {
	// RequestBid asks the player for a bid. hasForbidden is true only when
	// the player is the handicapped last bidder and a forbidden total exists.
	RequestBid(p *shared.Player, forbidden int, hasForbidden bool) (int, error)

	// RequestPlay asks the player for a card, offering the legal subset of
	// their hand as a view.
	RequestPlay(p *shared.Player, legal []shared.Card) (shared.Card, error)

	// RequestTrumpChoice asks the player to pick a trump suit. The current
	// trump, when one is set, is the first candidate.
	RequestTrumpChoice(p *shared.Player, candidates []shared.Suit) (shared.Suit, error)

	// Notify displays a message. Fire-and-forget.
	Notify(message string)
}

// AutoStrategy drives non-manual seats: it bids the lowest legal amount,
// plays the first legal card, and keeps the current trump. No lookahead.
type AutoStrategy struct{}

func (AutoStrategy) RequestBid(p *shared.Player, forbidden int, hasForbidden bool) (int, error) {
	if hasForbidden && forbidden == 0 {
		return 1, nil
	}
	return 0, nil
}

func (AutoStrategy) RequestPlay(p *shared.Player, legal []shared.Card) (shared.Card, error) {
	return legal[0], nil
}

func (AutoStrategy) RequestTrumpChoice(p *shared.Player, candidates []shared.Suit) (shared.Suit, error) {
	return candidates[0], nil
}

func (AutoStrategy) Notify(message string) {}
