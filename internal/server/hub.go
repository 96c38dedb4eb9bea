package server

import (
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"sueca-game/internal/database"
	"sueca-game/internal/protocol"

	"github.com/google/uuid"
)

// clientMessage pairs a parsed command with the client it came from.
type clientMessage struct {
	client *Client
	cmd    protocol.Command
}

const gameCodeLength = 5

// Hub manages the WebSocket connections, the pre-game lobbies and the
// running sessions. All registration and command dispatch goes through the
// Run loop's channels; the maps are additionally guarded by mutexes because
// sessions report back (sends, teardown) from their own goroutines.
type Hub struct {
	db *database.Service

	clients      map[*Client]bool
	lobbies      map[string][]*Client // game code -> clients waiting, creator first
	sessions     map[string]*Session  // game code -> running game
	clientToGame map[*Client]string   // client -> game code (lobby or session)

	processMessage chan clientMessage
	register       chan *Client
	unregister     chan *Client

	clientMu  sync.RWMutex
	lobbyMu   sync.RWMutex
	sessionMu sync.RWMutex
	rng       *rand.Rand
}

// NewHub creates a hub backed by the given results store.
func NewHub(db *database.Service) *Hub {
	return &Hub{
		db:             db,
		clients:        make(map[*Client]bool),
		lobbies:        make(map[string][]*Client),
		sessions:       make(map[string]*Session),
		clientToGame:   make(map[*Client]string),
		processMessage: make(chan clientMessage),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// generateGameCode creates a unique alphanumeric game code.
func (h *Hub) generateGameCode() string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	for {
		var sb strings.Builder
		for i := 0; i < gameCodeLength; i++ {
			sb.WriteByte(letters[h.rng.Intn(len(letters))])
		}
		code := sb.String()

		h.lobbyMu.RLock()
		_, lobbyExists := h.lobbies[code]
		h.lobbyMu.RUnlock()

		h.sessionMu.RLock()
		_, sessionExists := h.sessions[code]
		h.sessionMu.RUnlock()

		if !lobbyExists && !sessionExists {
			return code
		}
		log.Printf("Generated game code %s collided, retrying...", code)
	}
}

// Run is the hub's main loop; it owns client registration and dispatches
// every parsed command.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			client.ID = uuid.NewString()
			log.Printf("Client %s (%s) connected", client.ID, client.conn.RemoteAddr())
			h.clientMu.Lock()
			h.clients[client] = true
			h.clientMu.Unlock()

		case client := <-h.unregister:
			h.dropClient(client)

		case msg := <-h.processMessage:
			h.handleMessage(msg.client, msg.cmd)
		}
	}
}

// dropClient removes a disconnected client from every structure it is part
// of: the client set, its lobby (dissolving an emptied one) or its running
// session, where a bot takes over the seat.
func (h *Hub) dropClient(client *Client) {
	h.clientMu.Lock()
	gameCode, wasInGame := h.clientToGame[client]
	if _, known := h.clients[client]; !known {
		h.clientMu.Unlock()
		return
	}
	delete(h.clients, client)
	delete(h.clientToGame, client)
	close(client.send)
	log.Printf("Client %s (%s) disconnected", client.ID, client.Name)
	h.clientMu.Unlock()

	if !wasInGame {
		return
	}

	h.lobbyMu.Lock()
	if lobby, ok := h.lobbies[gameCode]; ok {
		remaining := make([]*Client, 0, len(lobby))
		for _, c := range lobby {
			if c != client {
				remaining = append(remaining, c)
			}
		}
		if len(remaining) > 0 {
			h.lobbies[gameCode] = remaining
			h.lobbyMu.Unlock()
			h.broadcastLobbyUpdate(gameCode, remaining)
		} else {
			delete(h.lobbies, gameCode)
			h.lobbyMu.Unlock()
			log.Printf("Lobby %s emptied, deleted", gameCode)
		}
		return
	}
	h.lobbyMu.Unlock()

	h.sessionMu.RLock()
	session, ok := h.sessions[gameCode]
	h.sessionMu.RUnlock()
	if ok {
		// Off the hub goroutine: the session takes its own lock and may
		// broadcast through the hub again.
		go session.HandleDisconnect(client.ID)
	} else {
		log.Printf("Client %s mapped to unknown game code %s", client.ID, gameCode)
	}
}

func (h *Hub) handleMessage(client *Client, cmd protocol.Command) {
	switch cmd.Name {
	case protocol.CmdCreate:
		h.handleCreate(client, cmd)
	case protocol.CmdJoin:
		h.handleJoin(client, cmd)
	case protocol.CmdStart:
		h.handleStart(client)
	case protocol.CmdPlay, protocol.CmdName, protocol.CmdSay:
		h.handleGameAction(client, cmd)
	case protocol.CmdPing:
		h.sendLine(client.ID, protocol.CmdPong)
	default:
		log.Printf("Unknown command %q from client %s (%s)", cmd.Name, client.ID, client.Name)
		h.sendInvalid(client, "unknown command")
	}
}

// handleCreate opens a new lobby with the client as its creator.
func (h *Hub) handleCreate(client *Client, cmd protocol.Command) {
	name, ok := protocol.ValidName(cmd.Arg(0))
	if !ok {
		h.sendInvalid(client, "bad name")
		return
	}

	h.clientMu.Lock()
	if _, inGame := h.clientToGame[client]; inGame {
		h.clientMu.Unlock()
		h.sendInvalid(client, "already in a game")
		return
	}
	gameCode := h.generateGameCode()
	client.Name = name
	h.clientToGame[client] = gameCode
	h.clientMu.Unlock()

	h.lobbyMu.Lock()
	h.lobbies[gameCode] = []*Client{client}
	h.lobbyMu.Unlock()

	log.Printf("Client %s (%s) created lobby %s", client.ID, name, gameCode)
	h.sendLine(client.ID, protocol.New(protocol.CmdCreated, gameCode).String())
	h.broadcastLobbyUpdate(gameCode, []*Client{client})
}

// handleJoin adds the client to an existing lobby; a fourth player starts
// the game immediately.
func (h *Hub) handleJoin(client *Client, cmd protocol.Command) {
	gameCode := strings.ToUpper(cmd.Arg(0))
	name, ok := protocol.ValidName(cmd.Arg(1))
	if !ok {
		h.sendInvalid(client, "bad name")
		return
	}
	if gameCode == "" {
		h.sendInvalid(client, "missing game code")
		return
	}

	h.clientMu.RLock()
	_, inGame := h.clientToGame[client]
	h.clientMu.RUnlock()
	if inGame {
		h.sendInvalid(client, "already in a game")
		return
	}

	h.lobbyMu.Lock()
	lobby, exists := h.lobbies[gameCode]
	if !exists {
		h.lobbyMu.Unlock()
		h.sendInvalid(client, "unknown game code")
		return
	}
	if len(lobby) >= 4 {
		h.lobbyMu.Unlock()
		h.sendLine(client.ID, protocol.CmdFull)
		return
	}
	for _, c := range lobby {
		if c.Name == name {
			h.lobbyMu.Unlock()
			h.sendInvalid(client, "name taken")
			return
		}
	}
	client.Name = name
	lobby = append(lobby, client)
	h.lobbies[gameCode] = lobby
	h.lobbyMu.Unlock()

	h.clientMu.Lock()
	h.clientToGame[client] = gameCode
	h.clientMu.Unlock()

	log.Printf("Client %s (%s) joined lobby %s (%d/4)", client.ID, name, gameCode, len(lobby))
	h.broadcastLobbyUpdate(gameCode, lobby)

	if len(lobby) == 4 {
		h.startGame(gameCode)
	}
}

// handleStart starts the lobby's game early; empty seats are filled with
// bots. Only the lobby creator may start.
func (h *Hub) handleStart(client *Client) {
	h.clientMu.RLock()
	gameCode, inGame := h.clientToGame[client]
	h.clientMu.RUnlock()
	if !inGame {
		h.sendInvalid(client, "not in a lobby")
		return
	}

	h.lobbyMu.RLock()
	lobby, exists := h.lobbies[gameCode]
	creator := exists && len(lobby) > 0 && lobby[0] == client
	h.lobbyMu.RUnlock()
	if !exists {
		h.sendInvalid(client, "game already started")
		return
	}
	if !creator {
		h.sendInvalid(client, "only the creator can start")
		return
	}
	h.startGame(gameCode)
}

// startGame promotes a lobby to a running session.
func (h *Hub) startGame(gameCode string) {
	h.sessionMu.Lock()
	h.lobbyMu.Lock()
	lobby, exists := h.lobbies[gameCode]
	if !exists || len(lobby) == 0 || len(lobby) > 4 {
		h.lobbyMu.Unlock()
		h.sessionMu.Unlock()
		log.Printf("Lobby %s changed before game start, aborting", gameCode)
		return
	}
	clients := make([]*Client, len(lobby))
	copy(clients, lobby)
	delete(h.lobbies, gameCode)

	session := NewSession(h, h.db, gameCode, clients)
	h.sessions[gameCode] = session
	h.lobbyMu.Unlock()
	h.sessionMu.Unlock()

	log.Printf("Game %s started with players %v", gameCode, clientNames(clients))
	go session.Start()
}

// handleGameAction forwards play, name and say commands to the client's
// session.
func (h *Hub) handleGameAction(client *Client, cmd protocol.Command) {
	h.clientMu.RLock()
	gameCode, inGame := h.clientToGame[client]
	h.clientMu.RUnlock()
	if !inGame {
		h.sendInvalid(client, "not in a game")
		return
	}

	h.sessionMu.RLock()
	session, exists := h.sessions[gameCode]
	h.sessionMu.RUnlock()
	if !exists {
		h.sendInvalid(client, "game not started")
		return
	}
	session.HandleCommand(client.ID, cmd)
}

// removeSession forgets a finished session and unmaps its clients so they
// can create or join again.
func (h *Hub) removeSession(gameCode string) {
	h.sessionMu.Lock()
	delete(h.sessions, gameCode)
	h.sessionMu.Unlock()

	h.clientMu.Lock()
	for client, code := range h.clientToGame {
		if code == gameCode {
			delete(h.clientToGame, client)
		}
	}
	h.clientMu.Unlock()
	log.Printf("Session %s removed", gameCode)
}

func clientNames(clients []*Client) []string {
	names := make([]string, len(clients))
	for i, c := range clients {
		names[i] = c.Name
	}
	return names
}

// sendLine delivers one protocol line to a client by ID, without blocking
// the caller. A client whose send buffer is stuck is scheduled for cleanup.
func (h *Hub) sendLine(clientID string, line string) {
	h.clientMu.RLock()
	var target *Client
	for client := range h.clients {
		if client.ID == clientID {
			target = client
			break
		}
	}
	h.clientMu.RUnlock()

	if target == nil {
		log.Printf("Could not find client %s to send to (already disconnected?)", clientID)
		return
	}
	select {
	case target.send <- []byte(line):
	default:
		log.Printf("Send buffer full for client %s, dropping connection", clientID)
		go func() {
			h.clientMu.RLock()
			_, stillConnected := h.clients[target]
			h.clientMu.RUnlock()
			if stillConnected {
				h.unregister <- target
			}
		}()
	}
}

// broadcastLobbyUpdate sends the lobby roster to everyone waiting in it.
func (h *Hub) broadcastLobbyUpdate(gameCode string, lobby []*Client) {
	line := protocol.New(protocol.CmdLobby, clientNames(lobby)...).String()
	for _, client := range lobby {
		h.sendLine(client.ID, line)
	}
}

func (h *Hub) sendInvalid(client *Client, reason string) {
	h.sendLine(client.ID, protocol.New(protocol.CmdInvalid, reason).String())
}
