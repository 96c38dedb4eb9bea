package game

import (
	"fmt"
	"log"
	"time"

	"sueca-game/internal/shared"
)

// State represents where the engine is in its round lifecycle.
type State string

const (
	AwaitingDeal State = "AwaitingDeal" // created, no cards dealt yet
	Playing      State = "Playing"      // a round's tricks are being played
	RoundOver    State = "RoundOver"    // ten tricks done, scoring in progress
	MatchOver    State = "MatchOver"    // a team reached the target, or the game was torn down
)

// MoveStatus is the outcome of a move submission. Rule violations are
// expected results handled by the caller, not errors.
type MoveStatus int

const (
	MoveOK      MoveStatus = iota // move committed
	MoveTurn                      // not this player's turn
	MoveInvalid                   // breaks the follow-suit rule
	MoveDelayed                   // resolved asynchronously by a remote authority
)

func (s MoveStatus) String() string {
	switch s {
	case MoveOK:
		return "ok"
	case MoveTurn:
		return "turn"
	case MoveInvalid:
		return "invalid"
	case MoveDelayed:
		return "delayed"
	default:
		return "?"
	}
}

// Events are optional observer hooks the session layer uses to mirror
// outcomes to clients and persistence.
type Events struct {
	// RoundEnded fires after each round is scored. winner is nil on a tie.
	RoundEnded func(winner *Team, victories int)
	// MatchEnded fires when a team reaches the target match points.
	MatchEnded func(winner *Team)
}

// Config carries the engine's collaborators; zero values get sensible
// defaults (fresh deck, headless table, inline scheduler).
type Config struct {
	Deck         *shared.Deck
	Canvas       Canvas
	Scheduler    Scheduler
	CollectDelay time.Duration // pause before collecting a full trick
	TargetGames  int           // match-victory points to win the match; <=0 plays forever
	Events       Events
}

const defaultCollectDelay = 750 * time.Millisecond

// DefaultTargetGames is the usual length of a Sueca match ("a partida").
const DefaultTargetGames = 4

// Game is the engine and turn-taking state machine: it orchestrates
// dealing, turn progression, move validation, trick resolution, scoring and
// match-over detection. All mutation is single-writer; the session layer
// serializes access.
type Game struct {
	deck   *shared.Deck
	canvas Canvas
	sched  Scheduler

	players  *Ring // trick rotation cursor
	roundPos *Ring // who leads each new round
	team1    *Team
	team2    *Team

	played      *shared.Trick
	trickLeader Player
	trump       *shared.Card
	trumpOwner  Player

	cardsToCollect int
	turnsLeft      int
	playtime       bool
	collecting     bool

	tieMultiplier int
	targetGames   int
	collectDelay  time.Duration
	rounds        int
	state         State
	events        Events

	gen    uint64 // invalidates deferred tasks from earlier deals
	closed bool
}

// New seats the four players in order, forms the teams (seats 0+2 vs 1+3),
// picks a random seat to own the first trump, and notifies everyone that a
// new game started. The caller starts play with NewRound.
func New(p1, p2, p3, p4 Player, cfg Config) *Game {
	if cfg.Deck == nil {
		cfg.Deck = shared.NewDeck()
	}
	if cfg.Canvas == nil {
		cfg.Canvas = Table{}
	}
	if cfg.Scheduler == nil {
		cfg.Scheduler = immediateScheduler{}
	}
	if cfg.CollectDelay == 0 {
		cfg.CollectDelay = defaultCollectDelay
	}

	g := &Game{
		deck:          cfg.Deck,
		canvas:        cfg.Canvas,
		sched:         cfg.Scheduler,
		players:       NewRing(p1, p2, p3, p4),
		played:        shared.NewTrick(),
		tieMultiplier: 1,
		targetGames:   cfg.TargetGames,
		collectDelay:  cfg.CollectDelay,
		events:        cfg.Events,
		state:         AwaitingDeal,
	}
	g.roundPos = g.players.Clone()
	g.team1 = NewTeam(p1, p3)
	g.team2 = NewTeam(p2, p4)

	for i, p := range [4]Player{p1, p2, p3, p4} {
		p.SetSeat(Seat(i))
		g.canvas.SetNameLabel(Seat(i), p.Name())
	}

	// The player owning the first trump is random; the first to play is the
	// one after them.
	g.roundPos.SetCurrentSeat(g.deck.IntN(4))

	for i := 0; i < 4; i++ {
		g.players.Advance().NewGame(g)
	}
	return g
}

// Deck returns the deck owning this game's cards.
func (g *Game) Deck() *shared.Deck { return g.deck }

// Players returns an independent copy of the seating ring.
func (g *Game) Players() *Ring { return g.players.Clone() }

// Teams returns the two teams in seating order (seats 0+2, then 1+3).
func (g *Game) Teams() (*Team, *Team) { return g.team1, g.team2 }

// Played returns the cards of the current trick.
func (g *Game) Played() *shared.Trick { return g.played }

// Trump returns the current round's trump card, nil before the first deal.
func (g *Game) Trump() *shared.Card { return g.trump }

// TrumpOwner returns the player dealt the trump card this round.
func (g *Game) TrumpOwner() Player { return g.trumpOwner }

// Current returns the player the turn cursor points at.
func (g *Game) Current() Player { return g.players.Current() }

// State returns the engine state.
func (g *Game) State() State { return g.state }

// Rounds returns how many rounds have been dealt.
func (g *Game) Rounds() int { return g.rounds }

// Playtime reports whether the player-to-move may currently act.
func (g *Game) Playtime() bool { return g.playtime }

// NewRound shuffles and deals ten cards to each seat in seating order
// starting from the round-leader cursor, exposes the last card dealt as
// trump, rotates round leadership by one seat, and opens the first trick
// with the player after the trump owner.
func (g *Game) NewRound() {
	if g.closed || g.state == MatchOver {
		return
	}
	g.gen++ // stale collection timers from the previous deal are void
	g.collecting = false
	g.turnsLeft = 10
	g.rounds++
	g.state = Playing

	g.deck.Shuffle()
	n := 0
	for p := 0; p < 4; p++ {
		pl := g.roundPos.Advance()
		pl.Hand().Clear()
		for i := 0; i < 10; i++ {
			card := g.deck.Cards[n]
			pl.AddToHand(card)
			g.canvas.Add(card, pl.Seat(), pl.HiddenCards())
			n++
		}
	}
	g.trump = g.deck.Cards[39]
	g.trumpOwner = g.roundPos.Current()

	// Each team tells its players a new round is starting.
	g.team1.NewRound(g.trump, g.trumpOwner)
	g.team2.NewRound(g.trump, g.trumpOwner)
	g.canvas.SetTrumpLabel(g.trumpOwner.Name(), g.trump)

	first := g.roundPos.Advance()
	g.PassTurn(first)
}

// PassTurn advances play: ends the round when no tricks remain, arms the
// collection pause when the trick is full, and otherwise grants the turn to
// the given player (or the cursor's player when nil).
func (g *Game) PassTurn(player Player) {
	if g.closed {
		return
	}
	if g.turnsLeft == 0 {
		g.state = RoundOver
		winner, victories := g.CalcWonGames()
		if g.events.RoundEnded != nil {
			g.events.RoundEnded(winner, victories)
		}
		if winner != nil && g.targetGames > 0 && winner.Won() >= g.targetGames {
			g.state = MatchOver
			if g.events.MatchEnded != nil {
				g.events.MatchEnded(winner)
			}
			return
		}
		g.NewRound()
		return
	}
	if g.played.Len() == 4 {
		if g.collecting {
			return // collection already pending, no new moves until it runs
		}
		g.collecting = true
		gen := g.gen
		g.sched.After(g.collectDelay, func() {
			if g.closed || gen != g.gen {
				return
			}
			g.EndTurn()
		})
		return
	}
	if player != nil {
		if !g.players.SetCurrent(player) {
			log.Panicf("pass turn: player %q is not seated in this game", player.Name())
		}
	} else {
		player = g.players.Current()
	}
	g.playtime = true
	if g.played.Len() == 0 {
		g.trickLeader = player
		for i := 0; i < 4; i++ {
			g.players.Advance().NewTurn(player)
		}
	}
	player.OnMyTurn(g, g.played)
}

// PlayMove is the single mutating entry point for committing a move.
func (g *Game) PlayMove(player Player, card *shared.Card) MoveStatus {
	if g.closed || !g.playtime || player != g.players.Current() {
		return MoveTurn
	}
	if !player.Hand().IsValidMove(card, g.played) {
		return MoveInvalid
	}
	// Tell all four seats which card was played, including the mover for
	// confirmation (mainly for network games).
	for i := 0; i < 4; i++ {
		g.players.Advance().Turn(player, card)
	}
	g.played.Add(card)
	player.Hand().Remove(card)
	g.playtime = false
	g.players.Advance()
	g.canvas.MoveCardTo(card, Destination{Seat: player.Seat(), Kind: DestPlay}, g.CardMoved)
	return MoveOK
}

// TurnWinner determines which of the cards played this trick is biggest and
// returns the player who played it. The turn-order cursor is left exactly
// as found, so the query is safe to call speculatively, e.g. from bot
// heuristics.
func (g *Game) TurnWinner() Player {
	cards := g.played.Cards()
	if len(cards) == 0 {
		log.Panicf("turn winner requested on an empty trick")
	}
	saved := g.players.Current()
	g.players.SetCurrent(g.trickLeader)
	biggest := cards[0]
	winner := g.trickLeader
	for i := 1; i < len(cards); i++ {
		p := g.players.Advance()
		if cards[i].Beats(biggest, g.trump.Suit) {
			biggest = cards[i]
			winner = p
		}
	}
	g.players.SetCurrent(saved)
	return winner
}

// EndTurn resolves a full trick: the winner's team captures the four cards,
// every seat is told the outcome, the cards are collected to the winner's
// area, and the winner leads the next trick.
func (g *Game) EndTurn() {
	if g.closed {
		return
	}
	g.collecting = false
	winner := g.TurnWinner()
	winner.Team().AddToCapt(g.played.Cards())
	for i := 0; i < 4; i++ {
		g.players.Advance().TurnEnd(winner, g.played.Cards())
	}

	cards := g.played.Cards()
	g.cardsToCollect = len(cards)
	g.played = shared.NewTrick()
	g.turnsLeft--
	g.players.SetCurrent(winner)
	dest := Destination{Seat: winner.Seat(), Kind: DestCollect}
	for _, card := range cards {
		g.canvas.MoveCardTo(card, dest, g.CardMoved)
	}
}

// CardMoved is the canvas's move-completion callback. During trick
// collection it counts the cards down; once no collection is outstanding it
// resumes play.
func (g *Game) CardMoved(card *shared.Card) {
	if g.closed {
		return
	}
	if g.cardsToCollect > 0 {
		g.cardsToCollect--
		g.canvas.Remove(card)
	}
	if g.cardsToCollect == 0 {
		g.PassTurn(nil)
	}
}

// CalcWonGames scores the finished round. A zero point difference is a tied
// round: nobody is awarded, both teams show the tied indicator, and the tie
// multiplier doubles for the next decisive round. A decisive round awards 4
// match points for capturing all 40 cards, 2 for a margin over 60 points,
// otherwise 1 — times the outstanding multiplier, which then resets.
func (g *Game) CalcWonGames() (*Team, int) {
	diff := g.team1.RoundPoints() - g.team2.RoundPoints()
	if diff == 0 {
		g.tieMultiplier *= 2
		g.team1.SetResult("(T)")
		g.team2.SetResult("(T)")
		return nil, 0
	}
	winner, loser := g.team1, g.team2
	if diff < 0 {
		winner, loser = g.team2, g.team1
		diff = -diff
	}
	victories := 1
	switch {
	case len(winner.Captured()) == 40:
		victories = 4
	case diff > 60:
		victories = 2
	}
	victories *= g.tieMultiplier
	g.tieMultiplier = 1
	winner.AddToWon(victories)
	winner.SetResult(fmt.Sprintf("(%d)", victories))
	loser.SetResult("")
	return winner, victories
}

// ReplacePlayer substitutes a player in both rings and their team slot,
// hands the old hand over by reference in its exact order, replays the
// new-game and new-round notifications so the newcomer can rebuild its
// bookkeeping, and re-grants the move if the seat holds it. Used when a
// disconnected human is taken over by a bot, or vice versa.
func (g *Game) ReplacePlayer(oldPlayer, newPlayer Player) bool {
	if !g.players.Replace(oldPlayer, newPlayer) {
		return false
	}
	g.roundPos.Replace(oldPlayer, newPlayer)
	if g.trickLeader == oldPlayer {
		g.trickLeader = newPlayer
	}
	oldPlayer.Team().Replace(oldPlayer, newPlayer)
	newPlayer.SetSeat(oldPlayer.Seat())
	newPlayer.NewGame(g)
	// Transfer verbatim: same card references, same order, bypassing any
	// sorted insertion the new player would otherwise do.
	for _, card := range oldPlayer.Hand().Cards() {
		newPlayer.Hand().Add(card)
	}
	if g.trump != nil {
		newPlayer.NewRound(g.trump, g.trumpOwner)
	}
	g.canvas.SetNameLabel(newPlayer.Seat(), newPlayer.Name())
	if g.playtime && g.players.Current() == newPlayer {
		newPlayer.OnMyTurn(g, g.played)
	}
	return true
}

// SetPlayerName renames a seated player and refreshes the table label.
func (g *Game) SetPlayerName(player Player, name string) {
	player.SetName(name)
	g.canvas.SetNameLabel(player.Seat(), name)
}

// Close tears the engine down: pending deferred tasks are invalidated via
// the generation token, the canvas is cleared, and no further mutation is
// accepted. Safe to call once per game.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.gen++
	g.playtime = false
	g.state = MatchOver
	g.canvas.ClearCards()
}
