package shared

// Player represents one seat in a Nomination game. Players are created once
// at game start and mutated every round; identity is the (deduplicated) name.
type Player struct {
	ID         string // Unique identifier for the player
	Name       string // Display name, unique within a game
	Hand       []Card // Cards currently held by the player
	RoundScore int    // Tricks won in the current round
	TotalScore int    // Cumulative bonus-weighted score across rounds
	LastToBid  bool   // Handicap flag; the last bidder may not bid the forbidden total
	Manual     bool   // Driven by a human (local prompt or remote client) rather than the auto strategy

	bid       int
	bidPlaced bool
}

// NewPlayer creates a new player with the given ID and name.
func NewPlayer(id, name string, manual bool) *Player {
	return &Player{
		ID:     id,
		Name:   name,
		Hand:   []Card{},
		Manual: manual,
	}
}

// CollectHand replaces the player's hand with a freshly dealt one.
func (p *Player) CollectHand(hand []Card) {
	p.Hand = hand
}

// RemoveCard removes a card from the player's hand. Returns false if the card
// is not held.
func (p *Player) RemoveCard(card Card) bool {
	for i, c := range p.Hand {
		if c == card {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// HasCard reports whether the player currently holds the card.
func (p *Player) HasCard(card Card) bool {
	for _, c := range p.Hand {
		if c == card {
			return true
		}
	}
	return false
}

// HasSuit reports whether the player holds at least one card of the suit.
func (p *Player) HasSuit(suit Suit) bool {
	for _, c := range p.Hand {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

// PlaceBid records the player's bid for the current round.
func (p *Player) PlaceBid(amount int) {
	p.bid = amount
	p.bidPlaced = true
}

// Bid returns the player's bid and whether one has been placed this round.
// The zero bid is legal, so absence is reported explicitly rather than with
// a sentinel value.
func (p *Player) Bid() (int, bool) {
	return p.bid, p.bidPlaced
}

// ClearBid resets the player's bid to the unset state.
func (p *Player) ClearBid() {
	p.bid = 0
	p.bidPlaced = false
}

// HandCodes returns the player's hand as ordered short codes for display.
func (p *Player) HandCodes() []string {
	codes := make([]string, len(p.Hand))
	for i, c := range p.Hand {
		codes[i] = c.Code()
	}
	return codes
}

func (p *Player) String() string {
	return p.Name
}
