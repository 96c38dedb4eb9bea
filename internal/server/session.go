package server

import (
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"sueca-game/internal/bot"
	"sueca-game/internal/database"
	"sueca-game/internal/game"
	"sueca-game/internal/protocol"

	"github.com/google/uuid"
)

// Session owns one running game and serializes all access to it: client
// commands, disconnects and deferred engine tasks all take the session mutex
// before touching the engine, so the engine itself stays single-threaded.
// Humans occupy the first seats in lobby order; bots fill the rest.
type Session struct {
	code string
	hub  *Hub
	db   *database.Service

	mu      sync.Mutex
	game    *game.Game
	players map[string]*NetPlayer // client ID -> seated player
	bots    []*bot.SmartPlayer
	closed  bool
}

// NewSession seats the lobby's clients, fills the remaining seats with bots
// and creates the game. Play starts when Start is called.
func NewSession(hub *Hub, db *database.Service, code string, clients []*Client) *Session {
	s := &Session{
		code:    code,
		hub:     hub,
		db:      db,
		players: make(map[string]*NetPlayer, len(clients)),
	}

	var seats [4]game.Player
	for i, c := range clients {
		clientID := c.ID
		p := NewNetPlayer(c.Name, func(line string) {
			hub.sendLine(clientID, line)
		})
		s.players[clientID] = p
		seats[i] = p
	}
	for i := len(clients); i < 4; i++ {
		b := bot.NewSmart()
		s.bots = append(s.bots, b)
		seats[i] = b
	}

	s.game = game.New(seats[0], seats[1], seats[2], seats[3], game.Config{
		Scheduler:   s,
		TargetGames: game.DefaultTargetGames,
		Events: game.Events{
			RoundEnded: s.roundEnded,
			MatchEnded: s.matchEnded,
		},
	})

	for _, p := range s.players {
		p.sendCmd(protocol.CmdPosition, p.Seat().String())
	}
	return s
}

// Start deals the first round. Run it in its own goroutine: with bot seats it
// plays through until a human's turn (or, all-bot, until the match ends).
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	log.Printf("Session %s starting with %d human(s)", s.code, len(s.players))
	s.game.NewRound()
}

// After implements game.Scheduler. The deferred task reacquires the session
// lock, so it is serialized with client commands like everything else.
func (s *Session) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed {
			return
		}
		fn()
	})
}

// HandleCommand processes an in-game command from a seated client.
func (s *Session) HandleCommand(clientID string, cmd protocol.Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	p, ok := s.players[clientID]
	if !ok {
		s.hub.sendLine(clientID, protocol.New(protocol.CmdInvalid, "not seated").String())
		return
	}

	switch cmd.Name {
	case protocol.CmdPlay:
		card, ok := s.game.Deck().ByCode(cmd.Arg(0))
		if !ok {
			p.sendCmd(protocol.CmdInvalid, "unknown card")
			return
		}
		if status := s.game.PlayMove(p, card); status != game.MoveOK {
			p.sendCmd(protocol.CmdInvalid, status.String())
		}

	case protocol.CmdName:
		name, ok := protocol.ValidName(cmd.Arg(0))
		if !ok {
			p.sendCmd(protocol.CmdInvalid, "bad name")
			return
		}
		s.game.SetPlayerName(p, name)
		s.broadcast(protocol.New(protocol.CmdName, p.Seat().String(), name))

	case protocol.CmdSay:
		text := strings.Join(cmd.Args, ":")
		if text == "" {
			return
		}
		s.broadcast(protocol.New(protocol.CmdSay, p.Name(), text))

	default:
		p.sendCmd(protocol.CmdInvalid, "unknown command")
	}
}

// HandleDisconnect replaces the departed human with a bot that takes over
// the hand mid-play. When the last human leaves the session is torn down.
func (s *Session) HandleDisconnect(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	p, ok := s.players[clientID]
	if !ok {
		return
	}
	delete(s.players, clientID)

	replacement := bot.NewSmart()
	s.bots = append(s.bots, replacement)
	if !s.game.ReplacePlayer(p, replacement) {
		log.Printf("Session %s: could not replace departed player %q", s.code, p.Name())
	}
	log.Printf("Session %s: %q left, bot %q takes seat %s", s.code, p.Name(), replacement.Name(), replacement.Seat())
	s.broadcast(protocol.New(protocol.CmdName, replacement.Seat().String(), replacement.Name()))

	if len(s.players) == 0 {
		log.Printf("Session %s abandoned, closing", s.code)
		s.teardownLocked()
	}
}

// roundEnded mirrors the round score to the clients. It runs inside the
// engine with the session lock already held.
func (s *Session) roundEnded(winner *game.Team, victories int) {
	t1, t2 := s.game.Teams()
	s.broadcast(protocol.New(protocol.CmdScore,
		strconv.Itoa(t1.RoundPoints()),
		strconv.Itoa(t2.RoundPoints()),
		strconv.Itoa(t1.Won()),
		strconv.Itoa(t2.Won())))
	if winner == nil {
		s.broadcast(protocol.New(protocol.CmdResult, "tied"))
		return
	}
	p1, p2 := winner.Players()
	s.broadcast(protocol.New(protocol.CmdResult,
		p1.Seat().String(), p2.Seat().String(), strconv.Itoa(victories)))
}

// matchEnded persists the result, announces the winners and tears the
// session down. Runs inside the engine with the session lock held.
func (s *Session) matchEnded(winner *game.Team) {
	p1, p2 := winner.Players()
	s.broadcast(protocol.New(protocol.CmdOver, p1.Seat().String(), p2.Seat().String()))

	ring := s.game.Players()
	ring.SetCurrentSeat(0)
	t1, t2 := s.game.Teams()
	result := database.MatchResult{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Player1:     ring.At(0).Name(),
		Player2:     ring.At(1).Name(),
		Player3:     ring.At(2).Name(),
		Player4:     ring.At(3).Name(),
		Team1Points: t1.RoundPoints(),
		Team2Points: t2.RoundPoints(),
		Team1Games:  t1.Won(),
		Team2Games:  t2.Won(),
		Rounds:      s.game.Rounds(),
	}
	if err := s.db.Insert(result); err != nil {
		log.Printf("Session %s: failed to store result: %v", s.code, err)
	}

	log.Printf("Session %s: match over, %s and %s win %d:%d",
		s.code, p1.Name(), p2.Name(), t1.Won(), t2.Won())
	s.teardownLocked()
}

func (s *Session) teardownLocked() {
	if s.closed {
		return
	}
	s.closed = true
	s.game.Close()
	for _, b := range s.bots {
		b.Release()
	}
	go s.hub.removeSession(s.code)
}

// broadcast sends one line to every connected human in the session.
func (s *Session) broadcast(cmd protocol.Command) {
	line := cmd.String()
	for clientID := range s.players {
		s.hub.sendLine(clientID, line)
	}
}
