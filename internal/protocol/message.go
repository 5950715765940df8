package protocol

import (
	"encoding/json"

	"github.com/Imadiyiz/nomination-advisor/internal/game"
	"github.com/Imadiyiz/nomination-advisor/internal/shared"
)

// Message represents a generic WebSocket message structure.
type Message struct {
	Type    string          `json:"type"`              // Type of the message (e.g., "join_game", "bid_response")
	Payload json.RawMessage `json:"payload,omitempty"` // Raw JSON payload, allows flexible structures
}

// --- Client -> Server Payload Structs ---

type CreateGamePayload struct {
	Name string `json:"name"`
}

type JoinGamePayload struct {
	Name     string `json:"name"`
	GameCode string `json:"game_code"`
}

// StartGamePayload is sent by the lobby creator once 3-6 seats are filled.
// Empty seats up to the requested count are filled with automatic players.
type StartGamePayload struct {
	AutoPlayers int `json:"auto_players"`
}

type BidResponsePayload struct {
	Amount int `json:"amount"`
}

// PlayResponsePayload names the played card by its short code, e.g. "10D".
type PlayResponsePayload struct {
	Card string `json:"card"`
}

// TrumpResponsePayload names the chosen suit by its letter, e.g. "H".
type TrumpResponsePayload struct {
	Suit string `json:"suit"`
}

// --- Server -> Client Payload Structs ---

type GameCreatedPayload struct {
	GameCode string `json:"game_code"`
}

type LobbyUpdatePayload struct {
	Players []PlayerInfo `json:"players"`
}

type JoinErrorPayload struct {
	Message string `json:"message"`
}

type PlayerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type GameStartPayload struct {
	GameID  string       `json:"game_id"`
	Players []PlayerInfo `json:"players"`
}

// DealHandPayload carries a hand as ordered short codes.
type DealHandPayload struct {
	Round    int      `json:"round"`
	HandSize int      `json:"hand_size"`
	Hand     []string `json:"hand"`
}

// BidRequestPayload prompts a seat for its bid. Forbidden is meaningful only
// when HasForbidden is set (the handicapped last bidder).
type BidRequestPayload struct {
	Forbidden    int              `json:"forbidden"`
	HasForbidden bool             `json:"has_forbidden"`
	HandSize     int              `json:"hand_size"`
	Bids         []game.PlayerBid `json:"bids"`
}

// PlayRequestPayload prompts a seat for a card, offering the legal subset of
// its hand plus the current table stack.
type PlayRequestPayload struct {
	Legal []string `json:"legal"`
	Stack []string `json:"stack"`
	Trump string   `json:"trump"`
}

// TrumpRequestPayload prompts the trump decider with the candidate suits,
// current trump first.
type TrumpRequestPayload struct {
	Candidates []string `json:"candidates"`
}

// GameStatePayload is the render view broadcast after every state change.
// Hands are not included; each seat sees only its own hand via deal_hand,
// other hands render as counts.
type GameStatePayload struct {
	Phase      string           `json:"phase"`
	Round      int              `json:"round"`
	Trump      string           `json:"trump"`
	Bids       []game.PlayerBid `json:"bids"`
	Stack      []string         `json:"stack"`
	HandCounts map[string]int   `json:"hand_counts"`
	Rounds     []game.Standing  `json:"round_standings"`
	Totals     []game.Standing  `json:"total_standings"`
}

type NotifyPayload struct {
	Message string `json:"message"`
}

type GameOverPayload struct {
	Winner string          `json:"winner"`
	Totals []game.Standing `json:"totals"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

type PlayerLeftPayload struct {
	PlayerID string `json:"player_id"`
}

// CardCodes converts a card list to its wire representation. Short codes are
// the only bit-exact external card format.
func CardCodes(cards []shared.Card) []string {
	codes := make([]string, len(cards))
	for i, c := range cards {
		codes[i] = c.Code()
	}
	return codes
}

// SuitLetters converts a suit list to one-letter codes.
func SuitLetters(suits []shared.Suit) []string {
	letters := make([]string, len(suits))
	for i, s := range suits {
		letters[i] = s.Letter()
	}
	return letters
}

// NewMessage builds a JSON message envelope around a payload.
func NewMessage(msgType string, payload interface{}) ([]byte, error) {
	if payload == nil {
		msg := Message{
			Type:    msgType,
			Payload: nil,
		}
		return json.Marshal(msg)
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	msg := Message{
		Type:    msgType,
		Payload: payloadBytes,
	}
	return json.Marshal(msg)
}
