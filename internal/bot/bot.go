// Package bot implements the computer-controlled players: Dumb plays the
// first legal card, Smart tracks what the table has shown to pick better
// ones. Both decide synchronously on their turn and never block on I/O.
package bot

import (
	"log"

	"sueca-game/internal/game"
	"sueca-game/internal/shared"
)

// Strategy picks a card to try given the cards already played this trick.
// Given a non-empty, rule-consistent hand it must return a legal card: a
// card of the led suit when one is held, otherwise any card. That guarantee
// is what terminates the submission loop.
type Strategy func(trick *shared.Trick) *shared.Card

// BotPlayer drives a Strategy on its turn, resubmitting until the engine
// accepts the move.
type BotPlayer struct {
	game.BasePlayer

	// self is the concrete player registered with the engine; the engine
	// compares seat occupants by identity.
	self     game.Player
	strategy Strategy
}

func (b *BotPlayer) init(self game.Player, strategy Strategy) {
	b.self = self
	b.strategy = strategy
	b.SetName(takeName())
	b.SetHiddenCards(true)
}

// Release returns the bot's name to the shared pool.
func (b *BotPlayer) Release() {
	releaseName(b.Name())
}

// OnMyTurn loops the strategy until a move is accepted. The loop terminates
// because a Strategy always produces a legal card from a non-empty hand.
func (b *BotPlayer) OnMyTurn(g *game.Game, trick *shared.Trick) {
	for {
		if g.PlayMove(b.self, b.strategy(trick)) == game.MoveOK {
			return
		}
	}
}

// firstLegal returns the first card in hand order satisfying the legal-move
// rule.
func firstLegal(hand *shared.Hand, trick *shared.Trick) *shared.Card {
	for _, card := range hand.Cards() {
		if hand.IsValidMove(card, trick) {
			return card
		}
	}
	log.Panicf("no legal card in a %d-card hand", hand.Len())
	return nil
}

// DumbPlayer plays the first legal card it holds.
type DumbPlayer struct {
	BotPlayer
}

// NewDumb creates a simple bot.
func NewDumb() *DumbPlayer {
	p := &DumbPlayer{}
	p.init(p, func(trick *shared.Trick) *shared.Card {
		return firstLegal(p.Hand(), trick)
	})
	return p
}
