package shared

import (
	"errors"
	"fmt"
	"strings"
)

// Suit represents the suit of a card.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Rank is the ordinal strength of a card within a suit, 2 through 14.
// Picture cards keep numeric ordinals so comparison stays a plain integer order.
type Rank int

const (
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

// ErrUnknownCardCode is returned when a short code does not name a card.
var ErrUnknownCardCode = errors.New("unknown card code")

// Suits lists the four suits in canonical order.
func Suits() []Suit {
	return []Suit{Clubs, Diamonds, Hearts, Spades}
}

// Ranks lists the thirteen ranks in ascending order of strength.
func Ranks() []Rank {
	ranks := make([]Rank, 0, 13)
	for r := Rank(2); r <= Ace; r++ {
		ranks = append(ranks, r)
	}
	return ranks
}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "Clubs"
	case Diamonds:
		return "Diamonds"
	case Hearts:
		return "Hearts"
	case Spades:
		return "Spades"
	default:
		return "?"
	}
}

// Letter returns the single-letter suit code used in card short codes.
func (s Suit) Letter() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Hearts:
		return "H"
	case Spades:
		return "S"
	default:
		return "?"
	}
}

// ParseSuit resolves a one-letter suit code ("C", "D", "H", "S").
func ParseSuit(letter string) (Suit, error) {
	switch strings.ToUpper(letter) {
	case "C":
		return Clubs, nil
	case "D":
		return Diamonds, nil
	case "H":
		return Hearts, nil
	case "S":
		return Spades, nil
	default:
		return 0, fmt.Errorf("%w: suit letter %q", ErrUnknownCardCode, letter)
	}
}

// Token returns the rank part of a card short code ("2".."10", "J", "Q", "K", "A").
func (r Rank) Token() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	default:
		if r >= 2 && r <= 10 {
			return fmt.Sprintf("%d", int(r))
		}
		return "?"
	}
}

// ParseRank resolves a rank token back to its ordinal.
func ParseRank(token string) (Rank, error) {
	switch strings.ToUpper(token) {
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A":
		return Ace, nil
	}
	for r := Rank(2); r <= 10; r++ {
		if token == r.Token() {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: rank token %q", ErrUnknownCardCode, token)
}

// Card is an immutable (suit, rank) value. Two cards with the same suit and
// rank are interchangeable; equality is structural.
type Card struct {
	Suit Suit `json:"suit"`
	Rank Rank `json:"rank"`
}

// Code returns the canonical short code of the card, e.g. "10D" or "KS".
func (c Card) Code() string {
	return c.Rank.Token() + c.Suit.Letter()
}

func (c Card) String() string {
	return c.Code()
}

// ParseCard is the exact inverse of Code. Input is case-insensitive; codes of
// the wrong length or with unknown tokens are rejected with ErrUnknownCardCode.
func ParseCard(code string) (Card, error) {
	if len(code) < 2 || len(code) > 3 {
		return Card{}, fmt.Errorf("%w: %q must be 2-3 characters", ErrUnknownCardCode, code)
	}
	rank, err := ParseRank(strings.ToUpper(code[:len(code)-1]))
	if err != nil {
		return Card{}, err
	}
	suit, err := ParseSuit(code[len(code)-1:])
	if err != nil {
		return Card{}, err
	}
	return Card{Suit: suit, Rank: rank}, nil
}
