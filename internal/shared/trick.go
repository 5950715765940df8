package shared

import (
	"errors"
	"fmt"
)

// ErrIllegalPlay is returned when a play violates the must-follow-suit rule.
var ErrIllegalPlay = errors.New("illegal play")

// ErrEmptyTrick is returned when a winner is requested from an empty stack.
var ErrEmptyTrick = errors.New("cannot resolve winner of an empty trick")

// PlayedCard stores a card along with the player who played it.
type PlayedCard struct {
	Card   Card
	Player *Player
}

// Trick is the play stack for the current trick. The first entry's suit is
// the leading suit. The trick owns stack state and play legality only; it
// never mutates a player's hand — removing the played card is the caller's
// responsibility after a confirmed legal play.
type Trick struct {
	Plays []PlayedCard
}

// NewTrick creates an empty trick.
func NewTrick() *Trick {
	return &Trick{Plays: []PlayedCard{}}
}

// LeadingSuit returns the suit of the first played card, if any.
func (t *Trick) LeadingSuit() (Suit, bool) {
	if len(t.Plays) == 0 {
		return 0, false
	}
	return t.Plays[0].Card.Suit, true
}

// Play validates the card against the suit-following rule and appends it to
// the stack. An empty stack accepts any card. A card off the leading suit is
// only legal when the given hand is void in that suit. Illegal plays leave
// the stack untouched.
func (t *Trick) Play(card Card, player *Player, hand []Card) error {
	if lead, ok := t.LeadingSuit(); ok && card.Suit != lead {
		for _, held := range hand {
			if held.Suit == lead {
				return fmt.Errorf("%w: %s does not follow the leading suit %s", ErrIllegalPlay, card.Code(), lead)
			}
		}
	}
	t.Plays = append(t.Plays, PlayedCard{Card: card, Player: player})
	return nil
}

// ResolveWinner determines the winning play of the stack. If any trump was
// played the highest trump wins, otherwise the highest card of the leading
// suit wins. Ranks within a suit are unique, so the order is total.
func (t *Trick) ResolveWinner(trump Suit) (PlayedCard, error) {
	if len(t.Plays) == 0 {
		return PlayedCard{}, ErrEmptyTrick
	}

	winningSuit := t.Plays[0].Card.Suit
	for _, play := range t.Plays {
		if play.Card.Suit == trump {
			winningSuit = trump
			break
		}
	}

	var winner PlayedCard
	found := false
	for _, play := range t.Plays {
		if play.Card.Suit != winningSuit {
			continue
		}
		if !found || play.Card.Rank > winner.Card.Rank {
			winner = play
			found = true
		}
	}
	return winner, nil
}

// Cards returns the stack as an ordered card list for display.
func (t *Trick) Cards() []Card {
	cards := make([]Card, len(t.Plays))
	for i, play := range t.Plays {
		cards[i] = play.Card
	}
	return cards
}

// Reset clears the stack at a trick boundary.
func (t *Trick) Reset() {
	t.Plays = t.Plays[:0]
}
