package server

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/Imadiyiz/nomination-advisor/internal/game"
	"github.com/Imadiyiz/nomination-advisor/internal/protocol"
	"github.com/Imadiyiz/nomination-advisor/internal/shared"
)

// remoteIO satisfies the engine's blocking PlayerIO contract over the hub.
// Each request sends a prompt message to the owning client and parks on a
// response channel until the client answers or drops. The engine re-requests
// on rule violations, so this layer only handles transport and parsing.
type remoteIO struct {
	hub      *Hub
	gameCode string
	game     *game.Game

	mu        sync.Mutex
	clientFor map[string]string // player ID -> client ID
	pending   map[string]chan protocol.Message
	gone      map[string]bool
}

func newRemoteIO(hub *Hub, gameCode string) *remoteIO {
	return &remoteIO{
		hub:       hub,
		gameCode:  gameCode,
		clientFor: make(map[string]string),
		pending:   make(map[string]chan protocol.Message),
		gone:      make(map[string]bool),
	}
}

// bind associates a seated player with the client driving it.
func (r *remoteIO) bind(playerID, clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clientFor[playerID] = clientID
}

// dropClient poisons the seat of a disconnected client so any in-flight or
// future request for it fails instead of blocking forever.
func (r *remoteIO) dropClient(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gone[clientID] = true
	if ch, ok := r.pending[clientID]; ok {
		close(ch)
		delete(r.pending, clientID)
	}
}

// deliver routes a response message from the hub to the waiting request.
// Responses with nobody waiting are dropped.
func (r *remoteIO) deliver(clientID string, msg protocol.Message) {
	r.mu.Lock()
	ch, ok := r.pending[clientID]
	if ok {
		delete(r.pending, clientID)
	}
	r.mu.Unlock()
	if ok {
		ch <- msg
	} else {
		log.Printf("Game %s: discarding unsolicited %s from client %s", r.gameCode, msg.Type, clientID)
	}
}

// request sends a prompt to the player's client and blocks for the answer.
func (r *remoteIO) request(p *shared.Player, msgType string, payload interface{}) (protocol.Message, error) {
	r.mu.Lock()
	clientID, bound := r.clientFor[p.ID]
	if !bound || r.gone[clientID] {
		r.mu.Unlock()
		return protocol.Message{}, fmt.Errorf("player %s has no connected client", p.Name)
	}
	ch := make(chan protocol.Message, 1)
	r.pending[clientID] = ch
	r.mu.Unlock()

	msgBytes, err := protocol.NewMessage(msgType, payload)
	if err != nil {
		return protocol.Message{}, err
	}
	r.hub.sendMessageToClient(clientID, msgBytes)

	resp, ok := <-ch
	if !ok {
		return protocol.Message{}, fmt.Errorf("player %s disconnected", p.Name)
	}
	return resp, nil
}

func (r *remoteIO) RequestBid(p *shared.Player, forbidden int, hasForbidden bool) (int, error) {
	payload := protocol.BidRequestPayload{
		Forbidden:    forbidden,
		HasForbidden: hasForbidden,
		HandSize:     game.HandSize(r.game.Round),
		Bids:         r.game.Bids(),
	}
	for {
		resp, err := r.request(p, "bid_request", payload)
		if err != nil {
			return 0, err
		}
		var bid protocol.BidResponsePayload
		if err := json.Unmarshal(resp.Payload, &bid); err != nil || resp.Type != "bid_response" {
			r.notifyPlayer(p, "Expected a bid_response with an integer amount.")
			continue
		}
		return bid.Amount, nil
	}
}

func (r *remoteIO) RequestPlay(p *shared.Player, legal []shared.Card) (shared.Card, error) {
	payload := protocol.PlayRequestPayload{
		Legal: protocol.CardCodes(legal),
		Stack: protocol.CardCodes(r.game.Stack()),
		Trump: r.game.Trump.Letter(),
	}
	for {
		resp, err := r.request(p, "play_request", payload)
		if err != nil {
			return shared.Card{}, err
		}
		var play protocol.PlayResponsePayload
		if err := json.Unmarshal(resp.Payload, &play); err != nil || resp.Type != "play_response" {
			r.notifyPlayer(p, "Expected a play_response naming a card code.")
			continue
		}
		card, err := shared.ParseCard(play.Card)
		if err != nil {
			// Malformed codes re-prompt the same seat without advancing state.
			r.notifyPlayer(p, err.Error())
			continue
		}
		return card, nil
	}
}

func (r *remoteIO) RequestTrumpChoice(p *shared.Player, candidates []shared.Suit) (shared.Suit, error) {
	payload := protocol.TrumpRequestPayload{Candidates: protocol.SuitLetters(candidates)}
	for {
		resp, err := r.request(p, "trump_request", payload)
		if err != nil {
			return 0, err
		}
		var choice protocol.TrumpResponsePayload
		if err := json.Unmarshal(resp.Payload, &choice); err != nil || resp.Type != "trump_response" {
			r.notifyPlayer(p, "Expected a trump_response naming a suit letter.")
			continue
		}
		suit, err := shared.ParseSuit(choice.Suit)
		if err != nil {
			r.notifyPlayer(p, err.Error())
			continue
		}
		return suit, nil
	}
}

// Notify broadcasts the message plus a fresh state snapshot and per-seat
// hand views. The engine notifies after each accepted action, which keeps
// clients current without a separate push path.
func (r *remoteIO) Notify(message string) {
	if msgBytes, err := protocol.NewMessage("notify", protocol.NotifyPayload{Message: message}); err == nil {
		r.broadcast(msgBytes)
	}
	r.broadcastState()
	r.sendHands()
}

func (r *remoteIO) notifyPlayer(p *shared.Player, message string) {
	r.mu.Lock()
	clientID, bound := r.clientFor[p.ID]
	r.mu.Unlock()
	if !bound {
		return
	}
	msgBytes, err := protocol.NewMessage("error", protocol.ErrorPayload{Message: message})
	if err != nil {
		return
	}
	r.hub.sendMessageToClient(clientID, msgBytes)
}

func (r *remoteIO) broadcast(message []byte) {
	r.mu.Lock()
	clientIDs := make([]string, 0, len(r.clientFor))
	for _, clientID := range r.clientFor {
		if !r.gone[clientID] {
			clientIDs = append(clientIDs, clientID)
		}
	}
	r.mu.Unlock()
	for _, clientID := range clientIDs {
		r.hub.sendMessageToClient(clientID, message)
	}
}

// broadcastState sends the shared render view: bids, stack, standings, and
// hand counts. Hands themselves go only to their owners via deal_hand.
func (r *remoteIO) broadcastState() {
	counts := make(map[string]int, len(r.game.Players()))
	for _, p := range r.game.Players() {
		counts[p.Name] = len(p.Hand)
	}
	payload := protocol.GameStatePayload{
		Phase:      r.game.Phase.String(),
		Round:      r.game.Round,
		Trump:      r.game.Trump.Letter(),
		Bids:       r.game.Bids(),
		Stack:      protocol.CardCodes(r.game.Stack()),
		HandCounts: counts,
		Rounds:     r.game.Scores.RoundStandings(),
		Totals:     r.game.Scores.TotalStandings(),
	}
	if msgBytes, err := protocol.NewMessage("game_state", payload); err == nil {
		r.broadcast(msgBytes)
	}
}

// sendHands deals each seat its private hand view.
func (r *remoteIO) sendHands() {
	for _, p := range r.game.Players() {
		r.mu.Lock()
		clientID, bound := r.clientFor[p.ID]
		r.mu.Unlock()
		if !bound {
			continue
		}
		payload := protocol.DealHandPayload{
			Round:    r.game.Round,
			HandSize: game.HandSize(r.game.Round),
			Hand:     p.HandCodes(),
		}
		if msgBytes, err := protocol.NewMessage("deal_hand", payload); err == nil {
			r.hub.sendMessageToClient(clientID, msgBytes)
		}
	}
}
