package server

import (
	"encoding/json"
	"fmt"
	"log"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/Imadiyiz/nomination-advisor/internal/database"
	"github.com/Imadiyiz/nomination-advisor/internal/game"
	"github.com/Imadiyiz/nomination-advisor/internal/protocol"

	"github.com/google/uuid"
)

// clientMessage is a helper struct to pass messages along with the client reference.
type clientMessage struct {
	client  *Client
	message protocol.Message
}

const gameCodeLength = 5 // Length of the unique game code

// session ties a running game to its transport bridge and seated clients.
type session struct {
	game    *game.Game
	io      *remoteIO
	clients []*Client
}

// Hub manages active WebSocket connections, lobbies, and game rooms.
type Hub struct {
	clients        map[*Client]bool
	lobbies        map[string][]*Client // Map game code to list of clients in the lobby
	sessions       map[string]*session  // Map game code to running game session
	clientToGame   map[*Client]string   // Map client to game code (lobby or active game)
	processMessage chan clientMessage
	register       chan *Client
	unregister     chan *Client
	clientMu       sync.RWMutex
	lobbyMu        sync.RWMutex
	gameMu         sync.RWMutex
	rng            *rand.Rand
	db             *database.Service
}

// NewHub creates a new Hub instance.
func NewHub(db *database.Service) *Hub {
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), uint64(time.Now().UnixNano())>>32))

	return &Hub{
		clients:        make(map[*Client]bool),
		lobbies:        make(map[string][]*Client),
		sessions:       make(map[string]*session),
		clientToGame:   make(map[*Client]string),
		processMessage: make(chan clientMessage),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		rng:            rng,
		db:             db,
	}
}

// generateGameCode creates a unique alphanumeric game code.
func (h *Hub) generateGameCode() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	for {
		var sb strings.Builder
		for i := 0; i < gameCodeLength; i++ {
			sb.WriteByte(letters[h.rng.IntN(len(letters))])
		}
		code := sb.String()

		h.lobbyMu.RLock()
		_, lobbyExists := h.lobbies[code]
		h.lobbyMu.RUnlock()

		h.gameMu.RLock()
		_, gameExists := h.sessions[code]
		h.gameMu.RUnlock()

		if !lobbyExists && !gameExists {
			return code
		}
		log.Printf("Generated game code %s collided, retrying...", code)
	}
}

// Run starts the Hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			client.ID = uuid.NewString() // Assign a unique ID upon registration
			log.Printf("Client %s (%s) connected", client.ID, client.conn.RemoteAddr())
			h.clientMu.Lock()
			h.clients[client] = true
			h.clientMu.Unlock()

		case client := <-h.unregister:
			h.handleUnregister(client)

		case clientMsg := <-h.processMessage:
			h.handleMessage(clientMsg.client, clientMsg.message)
		}
	}
}

func (h *Hub) handleUnregister(client *Client) {
	h.clientMu.Lock()
	gameCode, inGameOrLobby := h.clientToGame[client]
	_, clientExists := h.clients[client]

	if clientExists {
		delete(h.clients, client)
		delete(h.clientToGame, client)
		close(client.send)
		log.Printf("Client %s (%s) disconnected", client.ID, client.Name)
	}
	h.clientMu.Unlock()

	if !inGameOrLobby {
		return
	}

	h.lobbyMu.Lock()
	lobby, lobbyExists := h.lobbies[gameCode]
	if lobbyExists {
		newLobby := []*Client{}
		for _, c := range lobby {
			if c != client {
				newLobby = append(newLobby, c)
			}
		}
		if len(newLobby) > 0 {
			h.lobbies[gameCode] = newLobby
			h.broadcastLobbyUpdate(gameCode, newLobby)
		} else {
			delete(h.lobbies, gameCode)
			log.Printf("Client %s left lobby %s. Lobby deleted.", client.ID, gameCode)
		}
		h.lobbyMu.Unlock()
		return
	}
	h.lobbyMu.Unlock()

	h.gameMu.RLock()
	sess, gameExists := h.sessions[gameCode]
	h.gameMu.RUnlock()

	if gameExists {
		// Poison the seat so the engine's in-flight request fails and
		// the game aborts instead of waiting forever.
		log.Printf("Client %s was in game %s. Dropping seat.", client.ID, gameCode)
		sess.io.dropClient(client.ID)
		if msgBytes, err := protocol.NewMessage("player_left", protocol.PlayerLeftPayload{PlayerID: client.ID}); err == nil {
			sess.io.broadcast(msgBytes)
		}
	}
}

// handleMessage processes a message received from a client.
func (h *Hub) handleMessage(client *Client, msg protocol.Message) {
	switch msg.Type {
	case "create_game":
		h.handleCreateGame(client, msg)
	case "join_game":
		h.handleJoinGame(client, msg)
	case "start_game":
		h.handleStartGame(client, msg)
	case "bid_response", "play_response", "trump_response":
		h.handleGameResponse(client, msg)
	case "ping":
		pongMsg, _ := protocol.NewMessage("pong", nil)
		client.send <- pongMsg
	default:
		log.Printf("Received unknown message type '%s' from client %s (%s)", msg.Type, client.ID, client.Name)
		h.sendErrorToClient(client, "Unknown message type.")
	}
}

// handleCreateGame handles a request to create a new game lobby.
func (h *Hub) handleCreateGame(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	_, alreadyInGame := h.clientToGame[client]
	h.clientMu.RUnlock()
	if alreadyInGame {
		h.sendErrorToClient(client, "Already in a game or lobby.")
		return
	}

	var payload protocol.CreateGamePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendErrorToClient(client, "Invalid create_game message format.")
		return
	}
	if payload.Name == "" {
		h.sendErrorToClient(client, "Name cannot be empty.")
		return
	}

	gameCode := h.generateGameCode()

	h.clientMu.Lock()
	client.Name = payload.Name
	h.clientToGame[client] = gameCode
	h.clientMu.Unlock()

	h.lobbyMu.Lock()
	h.lobbies[gameCode] = []*Client{client}
	h.lobbyMu.Unlock()

	log.Printf("Client %s (%s) created lobby %s", client.ID, client.Name, gameCode)

	createdPayload := protocol.GameCreatedPayload{GameCode: gameCode}
	createdMsg, _ := protocol.NewMessage("game_created", createdPayload)
	h.sendMessageToClient(client.ID, createdMsg)

	h.broadcastLobbyUpdate(gameCode, []*Client{client})
}

// handleJoinGame handles a request to join an existing game lobby.
func (h *Hub) handleJoinGame(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	_, alreadyInGame := h.clientToGame[client]
	h.clientMu.RUnlock()
	if alreadyInGame {
		h.sendJoinError(client, "Already in a game or lobby.")
		return
	}

	var payload protocol.JoinGamePayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		h.sendJoinError(client, "Invalid join_game message format.")
		return
	}
	if payload.Name == "" {
		h.sendJoinError(client, "Name cannot be empty.")
		return
	}
	if payload.GameCode == "" {
		h.sendJoinError(client, "Game code cannot be empty.")
		return
	}
	gameCode := strings.ToUpper(payload.GameCode) // Normalize game code

	h.lobbyMu.Lock()
	lobby, lobbyExists := h.lobbies[gameCode]
	if !lobbyExists {
		h.lobbyMu.Unlock()
		h.sendJoinError(client, "Game code not found.")
		return
	}

	if len(lobby) >= game.MaxPlayers {
		h.lobbyMu.Unlock()
		h.sendJoinError(client, "Game lobby is full.")
		return
	}

	// Duplicate names get auto-suffixed by the engine at start; joining with
	// one is allowed, unlike a lobby that blocks. Keeps the flow simple.
	client.Name = payload.Name
	newLobby := append(lobby, client)
	h.lobbies[gameCode] = newLobby
	h.lobbyMu.Unlock()

	h.clientMu.Lock()
	h.clientToGame[client] = gameCode
	h.clientMu.Unlock()

	log.Printf("Client %s (%s) joined lobby %s. Lobby size: %d", client.ID, client.Name, gameCode, len(newLobby))

	h.broadcastLobbyUpdate(gameCode, newLobby)
}

// handleStartGame launches the game once the lobby creator is satisfied with
// the seat count. Requested automatic seats fill up to the 3-6 player range.
func (h *Hub) handleStartGame(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	gameCode, inLobby := h.clientToGame[client]
	h.clientMu.RUnlock()
	if !inLobby {
		h.sendErrorToClient(client, "You are not in a lobby.")
		return
	}

	var payload protocol.StartGamePayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			h.sendErrorToClient(client, "Invalid start_game message format.")
			return
		}
	}

	h.lobbyMu.Lock()
	lobby, lobbyExists := h.lobbies[gameCode]
	if !lobbyExists {
		h.lobbyMu.Unlock()
		h.sendErrorToClient(client, "Lobby not found (game may already be running).")
		return
	}
	if lobby[0] != client {
		h.lobbyMu.Unlock()
		h.sendErrorToClient(client, "Only the lobby creator can start the game.")
		return
	}
	seats := len(lobby) + payload.AutoPlayers
	if seats < game.MinPlayers || seats > game.MaxPlayers {
		h.lobbyMu.Unlock()
		h.sendErrorToClient(client, fmt.Sprintf("Need %d-%d seats, have %d.", game.MinPlayers, game.MaxPlayers, seats))
		return
	}
	delete(h.lobbies, gameCode)
	h.lobbyMu.Unlock()

	io := newRemoteIO(h, gameCode)
	g := game.New(io, rand.New(rand.NewPCG(h.rng.Uint64(), h.rng.Uint64())))
	io.game = g

	for _, c := range lobby {
		p, err := g.AddPlayer(c.Name, true)
		if err != nil {
			h.sendErrorToClient(client, err.Error())
			return
		}
		io.bind(p.ID, c.ID)
	}
	for i := 0; i < payload.AutoPlayers; i++ {
		if _, err := g.AddPlayer(fmt.Sprintf("CPU %d", i+1), false); err != nil {
			h.sendErrorToClient(client, err.Error())
			return
		}
	}

	sess := &session{game: g, io: io, clients: lobby}
	h.gameMu.Lock()
	h.sessions[gameCode] = sess
	h.gameMu.Unlock()

	playerInfos := make([]protocol.PlayerInfo, 0, len(g.Players()))
	for _, p := range g.Players() {
		playerInfos = append(playerInfos, protocol.PlayerInfo{ID: p.ID, Name: p.Name})
	}
	startMsg, _ := protocol.NewMessage("game_start", protocol.GameStartPayload{GameID: g.ID, Players: playerInfos})
	io.broadcast(startMsg)

	log.Printf("Game instance created for code %s with ID %s.", gameCode, g.ID)
	go h.runGame(gameCode, sess)
}

// runGame drives one game to completion and records the result.
func (h *Hub) runGame(gameCode string, sess *session) {
	err := sess.game.Run()
	if err != nil {
		log.Printf("Game %s aborted: %v", sess.game.ID, err)
		if msgBytes, mErr := protocol.NewMessage("error", protocol.ErrorPayload{Message: "Game aborted: " + err.Error()}); mErr == nil {
			sess.io.broadcast(msgBytes)
		}
	} else {
		totals := sess.game.Scores.TotalStandings()
		winner := ""
		if len(totals) > 0 {
			winner = totals[0].Name
		}
		if msgBytes, mErr := protocol.NewMessage("game_over", protocol.GameOverPayload{Winner: winner, Totals: totals}); mErr == nil {
			sess.io.broadcast(msgBytes)
		}
		if h.db != nil {
			if dbErr := h.db.Insert(database.NewGameResult(sess.game.ID, sess.game.Players(), winner)); dbErr != nil {
				log.Printf("Game %s: failed to record result: %v", sess.game.ID, dbErr)
			}
		}
	}

	h.gameMu.Lock()
	delete(h.sessions, gameCode)
	h.gameMu.Unlock()

	h.clientMu.Lock()
	for _, c := range sess.clients {
		if h.clientToGame[c] == gameCode {
			delete(h.clientToGame, c)
		}
	}
	h.clientMu.Unlock()
}

// handleGameResponse routes bid/play/trump answers to the waiting request.
func (h *Hub) handleGameResponse(client *Client, msg protocol.Message) {
	h.clientMu.RLock()
	gameCode, inGame := h.clientToGame[client]
	h.clientMu.RUnlock()

	if !inGame {
		h.sendErrorToClient(client, "You are not in an active game.")
		return
	}

	h.gameMu.RLock()
	sess, gameExists := h.sessions[gameCode]
	h.gameMu.RUnlock()

	if !gameExists {
		h.sendErrorToClient(client, "Game not found or not active.")
		return
	}

	sess.io.deliver(client.ID, msg)
}

// sendMessageToClient allows the game logic to send messages back via the hub/client.
func (h *Hub) sendMessageToClient(clientID string, message []byte) {
	h.clientMu.RLock()
	var targetClient *Client
	for client := range h.clients {
		if client.ID == clientID {
			targetClient = client
			break
		}
	}
	h.clientMu.RUnlock()

	if targetClient == nil {
		log.Printf("Could not find client %s to send message (already disconnected?).", clientID)
		return
	}

	select {
	case targetClient.send <- message:
	default:
		// Channel is blocked or closed, assume client disconnected
		log.Printf("Failed to send message to client %s (channel full or closed), initiating cleanup.", clientID)
		go func() {
			h.clientMu.RLock()
			_, stillConnected := h.clients[targetClient]
			h.clientMu.RUnlock()
			if stillConnected {
				h.unregister <- targetClient
			}
		}()
	}
}

// broadcastToLobby sends a message to all clients currently in a specific lobby.
func (h *Hub) broadcastToLobby(gameCode string, message []byte) {
	h.lobbyMu.RLock()
	lobby, exists := h.lobbies[gameCode]
	if !exists {
		h.lobbyMu.RUnlock()
		log.Printf("Warning: Tried to broadcast to non-existent lobby %s", gameCode)
		return
	}
	clientsToSend := make([]*Client, len(lobby))
	copy(clientsToSend, lobby)
	h.lobbyMu.RUnlock()

	for _, client := range clientsToSend {
		if client != nil {
			h.sendMessageToClient(client.ID, message)
		}
	}
}

// broadcastLobbyUpdate sends the current list of players in the lobby.
func (h *Hub) broadcastLobbyUpdate(gameCode string, lobby []*Client) {
	playerInfos := make([]protocol.PlayerInfo, len(lobby))
	for i, c := range lobby {
		if c != nil {
			playerInfos[i] = protocol.PlayerInfo{ID: c.ID, Name: c.Name}
		}
	}
	payload := protocol.LobbyUpdatePayload{Players: playerInfos}
	msgBytes, err := protocol.NewMessage("lobby_update", payload)
	if err != nil {
		log.Printf("Error creating lobby_update message for lobby %s: %v", gameCode, err)
		return
	}
	h.broadcastToLobby(gameCode, msgBytes)
}

// sendErrorToClient sends a generic error message to a specific client.
func (h *Hub) sendErrorToClient(client *Client, errorMsg string) {
	payload := protocol.ErrorPayload{Message: errorMsg}
	msgBytes, err := protocol.NewMessage("error", payload)
	if err != nil {
		log.Printf("Error creating error message for client %s: %v", client.ID, err)
		return
	}
	h.sendMessageToClient(client.ID, msgBytes)
}

// sendJoinError sends a specific join error message to a client.
func (h *Hub) sendJoinError(client *Client, errorMsg string) {
	payload := protocol.JoinErrorPayload{Message: errorMsg}
	msgBytes, err := protocol.NewMessage("join_error", payload)
	if err != nil {
		log.Printf("Error creating join_error message for client %s: %v", client.ID, err)
		return
	}
	h.sendMessageToClient(client.ID, msgBytes)
}
