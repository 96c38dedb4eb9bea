package game

import "sueca-game/internal/shared"

// Player is the capability set the engine needs from a seated participant:
// receive a hand, be notified of game events, and be asked to move. Human
// players ignore OnMyTurn (their moves arrive externally through PlayMove),
// bots decide synchronously inside it, and network players forward the
// prompt to a remote client.
type Player interface {
	Name() string
	SetName(name string)
	Seat() Seat
	SetSeat(seat Seat)
	Hand() *shared.Hand
	Team() *Team
	SetTeam(team *Team)
	// AddToHand places a dealt card into the hand; implementations choose
	// insertion or sorted order.
	AddToHand(card *shared.Card)
	// HiddenCards reports whether the canvas should place this player's
	// cards face down.
	HiddenCards() bool

	// Notifications. BasePlayer provides no-op bodies for all of them.
	NewGame(g *Game)
	NewRound(trump *shared.Card, owner Player)
	NewTurn(starter Player)
	Turn(player Player, card *shared.Card)
	TurnEnd(winner Player, played []*shared.Card)
	OnMyTurn(g *Game, trick *shared.Trick)
}

// BasePlayer carries the state every player variant shares and supplies
// explicit no-op notification bodies for the events a variant does not care
// about.
type BasePlayer struct {
	name   string
	seat   Seat
	hand   shared.Hand
	team   *Team
	hidden bool
}

func (p *BasePlayer) Name() string            { return p.name }
func (p *BasePlayer) SetName(name string)     { p.name = name }
func (p *BasePlayer) Seat() Seat              { return p.seat }
func (p *BasePlayer) SetSeat(seat Seat)       { p.seat = seat }
func (p *BasePlayer) Hand() *shared.Hand      { return &p.hand }
func (p *BasePlayer) Team() *Team             { return p.team }
func (p *BasePlayer) SetTeam(team *Team)      { p.team = team }
func (p *BasePlayer) HiddenCards() bool       { return p.hidden }
func (p *BasePlayer) SetHiddenCards(h bool)   { p.hidden = h }
func (p *BasePlayer) AddToHand(c *shared.Card) { p.hand.Add(c) }

func (p *BasePlayer) NewGame(g *Game)                                {}
func (p *BasePlayer) NewRound(trump *shared.Card, owner Player)      {}
func (p *BasePlayer) NewTurn(starter Player)                         {}
func (p *BasePlayer) Turn(player Player, card *shared.Card)          {}
func (p *BasePlayer) TurnEnd(winner Player, played []*shared.Card)   {}
func (p *BasePlayer) OnMyTurn(g *Game, trick *shared.Trick)          {}

// HumanPlayer is a player whose moves are driven externally through
// Game.PlayMove; it never acts on its own turn.
type HumanPlayer struct {
	BasePlayer
}

// NewHumanPlayer creates a human player with hidden cards (a seat mirrored
// for other participants).
func NewHumanPlayer(name string) *HumanPlayer {
	p := &HumanPlayer{}
	p.SetName(name)
	p.SetHiddenCards(true)
	return p
}

// LocalPlayer is the human at this end of the table: cards face up and the
// hand kept sorted by suit then rank strength for display.
type LocalPlayer struct {
	HumanPlayer
}

// NewLocalPlayer creates the local human player.
func NewLocalPlayer(name string) *LocalPlayer {
	p := &LocalPlayer{}
	p.SetName(name)
	p.SetHiddenCards(false)
	return p
}

// AddToHand inserts sorted; the order is cosmetic only and is bypassed when
// a hand is transferred verbatim between players.
func (p *LocalPlayer) AddToHand(card *shared.Card) {
	p.Hand().AddSorted(card)
}
