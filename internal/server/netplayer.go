package server

import (
	"sueca-game/internal/game"
	"sueca-game/internal/protocol"
	"sueca-game/internal/shared"
)

// NetPlayer is the server-side shadow of a remote human: every engine
// notification becomes a protocol line on the client's connection, and its
// turn prompt asks the remote side to choose a card. Moves come back through
// the session, which calls Game.PlayMove directly; the engine-level contract
// (turn gating, legal-move checking) is identical to a local player's.
type NetPlayer struct {
	game.BasePlayer

	send func(line string)
}

// NewNetPlayer creates a network-backed player whose notifications are
// written with send.
func NewNetPlayer(name string, send func(line string)) *NetPlayer {
	p := &NetPlayer{send: send}
	p.SetName(name)
	p.SetHiddenCards(true)
	return p
}

func (p *NetPlayer) sendCmd(name string, args ...string) {
	p.send(protocol.New(name, args...).String())
}

// NewGame tells the client its own position and who sits where, in ring
// order: game:<ownpos>:<name>:<pos>...
func (p *NetPlayer) NewGame(g *game.Game) {
	ring := g.Players()
	ring.SetCurrent(p)
	args := []string{p.Seat().String()}
	for i := 1; i < 4; i++ {
		other := ring.At(i)
		args = append(args, other.Name(), other.Seat().String())
	}
	p.sendCmd(protocol.CmdGame, args...)
}

// NewRound sends the dealt hand, the trump card and its owner's position:
// round:<card1>:...:<card10>:<trump>:<ownerpos>
func (p *NetPlayer) NewRound(trump *shared.Card, owner game.Player) {
	cards := p.Hand().Cards()
	args := make([]string, 0, len(cards)+2)
	for _, card := range cards {
		args = append(args, card.Code())
	}
	args = append(args, trump.Code(), owner.Seat().String())
	p.sendCmd(protocol.CmdRound, args...)
}

// NewTurn announces who leads the trick: turn:<pos>
func (p *NetPlayer) NewTurn(starter game.Player) {
	p.sendCmd(protocol.CmdTurn, starter.Seat().String())
}

// Turn mirrors a committed move: play:<pos>:<cardcode>
func (p *NetPlayer) Turn(player game.Player, card *shared.Card) {
	p.sendCmd(protocol.CmdPlay, player.Seat().String(), card.Code())
}

// TurnEnd announces the trick outcome: winner:<pos>
func (p *NetPlayer) TurnEnd(winner game.Player, played []*shared.Card) {
	p.sendCmd(protocol.CmdWinner, winner.Seat().String())
}

// OnMyTurn prompts the remote client for a card; the move arrives
// asynchronously as a play command.
func (p *NetPlayer) OnMyTurn(g *game.Game, trick *shared.Trick) {
	p.send(protocol.CmdPlay)
}
