package shared

import (
	"fmt"
	"log"
	"math/rand/v2"
)

// Deck represents a collection of cards.
type Deck struct {
	Cards []Card
}

// NewDeck creates the full 52-card deck, one card per (suit, rank) pair,
// in canonical order. Shuffle before dealing.
func NewDeck() *Deck {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits() {
		for _, rank := range Ranks() {
			cards = append(cards, Card{Suit: suit, Rank: rank})
		}
	}
	return &Deck{Cards: cards}
}

// Shuffle randomizes the order of cards in the deck. The source is injected
// so tests can deal deterministic hands.
func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// Deal distributes cards from the top of the deck. Returns nil if not enough
// cards remain for the requested hands.
func (d *Deck) Deal(numPlayers, cardsPerPlayer int) [][]Card {
	totalCardsNeeded := numPlayers * cardsPerPlayer
	if len(d.Cards) < totalCardsNeeded {
		log.Printf("Error: Not enough cards in deck (%d) to deal %d cards to %d players.", len(d.Cards), cardsPerPlayer, numPlayers)
		return nil
	}

	dealt := make([][]Card, numPlayers)
	start := 0
	for i := 0; i < numPlayers; i++ {
		end := start + cardsPerPlayer
		hand := make([]Card, cardsPerPlayer)
		copy(hand, d.Cards[start:end])
		dealt[i] = hand
		start = end
	}

	d.Cards = d.Cards[start:]
	return dealt
}

// Draw removes and returns the top card of the deck.
func (d *Deck) Draw() (Card, bool) {
	if len(d.Cards) == 0 {
		return Card{}, false
	}
	card := d.Cards[0]
	d.Cards = d.Cards[1:]
	return card, true
}

// Peek returns the top card without removing it.
func (d *Deck) Peek() (Card, bool) {
	if len(d.Cards) == 0 {
		return Card{}, false
	}
	return d.Cards[0], true
}

// DrawCode removes and returns the card named by a short code, e.g. "10D".
// Used when mirroring a physical deal where the trump card is read off the table.
func (d *Deck) DrawCode(code string) (Card, error) {
	want, err := ParseCard(code)
	if err != nil {
		return Card{}, err
	}
	for i, c := range d.Cards {
		if c == want {
			d.Cards = append(d.Cards[:i], d.Cards[i+1:]...)
			return c, nil
		}
	}
	return Card{}, fmt.Errorf("%w: %s is not in the deck", ErrUnknownCardCode, want.Code())
}
