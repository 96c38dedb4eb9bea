package bot

import (
	"sueca-game/internal/game"
	"sueca-game/internal/shared"
)

// Relative positions of the other three players, in ring order from this
// bot's seat.
const (
	opRight   = 0
	opPartner = 1
	opLeft    = 2
)

// SmartPlayer biases its card selection with information inferred from
// observed play: which cards are out, and which suits each opponent is
// known not to hold (revealed whenever they play off-suit). The state is
// reset every round and updated exactly once per card, on the trick-end
// notification. Cards are attributed to seats, not player objects, so the
// bookkeeping survives a mid-match player replacement at any seat.
type SmartPlayer struct {
	BotPlayer

	starter    game.Player // leader of the trick in progress
	trump      *shared.Card
	trumpOwner game.Player

	out      map[shared.Card]bool // every card seen on the table this round
	nOut     [4]int               // cards out, per suit
	hasNot   [3][4]bool           // [relative player][suit]: known void
	released [3][4]int            // [relative player][suit]: cards shown
	bySuit   [4][]*shared.Card    // own hand grouped by suit, ascending strength
}

// NewSmart creates a heuristic bot.
func NewSmart() *SmartPlayer {
	p := &SmartPlayer{}
	p.init(p, p.playCard)
	return p
}

// NewRound resets all inferred state and regroups the fresh hand by suit.
func (p *SmartPlayer) NewRound(trump *shared.Card, owner game.Player) {
	p.trump = trump
	p.trumpOwner = owner
	p.starter = nil
	p.out = make(map[shared.Card]bool, 40)
	p.nOut = [4]int{}
	p.hasNot = [3][4]bool{}
	p.released = [3][4]int{}
	p.bySuit = [4][]*shared.Card{}
	for _, card := range p.Hand().Cards() {
		p.insertBySuit(card)
	}
}

// NewTurn remembers who leads, so TurnEnd can attribute each card.
func (p *SmartPlayer) NewTurn(starter game.Player) {
	p.starter = starter
}

// TurnEnd memorizes the trick's cards and what they reveal about each
// opponent's suits. The i-th card belongs to the seat i places after the
// trick leader's.
func (p *SmartPlayer) TurnEnd(winner game.Player, played []*shared.Card) {
	if len(played) == 0 {
		return
	}
	ledSuit := played[0].Suit
	for i, card := range played {
		p.out[*card] = true
		p.nOut[card.Suit]++
		if p.starter == nil {
			continue // joined mid-trick, cannot attribute
		}
		seat := game.Seat((int(p.starter.Seat()) + i) % 4)
		rel, other := p.relIndex(seat)
		if !other {
			p.removeBySuit(card)
			continue
		}
		p.released[rel][card.Suit]++
		if card.Suit != ledSuit {
			// Off-suit play reveals a void in the led suit.
			p.hasNot[rel][ledSuit] = true
		}
	}
}

// relIndex maps a seat to its position relative to this bot. The second
// return is false for the bot's own seat.
func (p *SmartPlayer) relIndex(seat game.Seat) (int, bool) {
	offset := (int(seat) - int(p.Seat()) + 4) % 4
	if offset == 0 {
		return 0, false
	}
	return offset - 1, true
}

func (p *SmartPlayer) insertBySuit(card *shared.Card) {
	suit := card.Suit
	cards := p.bySuit[suit]
	i := 0
	for i < len(cards) && card.Rank > cards[i].Rank {
		i++
	}
	cards = append(cards, nil)
	copy(cards[i+1:], cards[i:])
	cards[i] = card
	p.bySuit[suit] = cards
}

func (p *SmartPlayer) removeBySuit(card *shared.Card) {
	cards := p.bySuit[card.Suit]
	for i, c := range cards {
		if c == card {
			p.bySuit[card.Suit] = append(cards[:i], cards[i+1:]...)
			return
		}
	}
}

func (p *SmartPlayer) isOut(rank shared.Rank, suit shared.Suit) bool {
	return p.out[shared.Card{Rank: rank, Suit: suit}]
}

// masterCard reports whether no stronger card of the suit remains in the
// opponents' or partner's hands: everything above it is already out or in
// our own hand.
func (p *SmartPlayer) masterCard(card *shared.Card) bool {
	for rank := card.Rank + 1; rank <= shared.Ace; rank++ {
		if p.isOut(rank, card.Suit) {
			continue
		}
		held := false
		for _, own := range p.bySuit[card.Suit] {
			if own.Rank == rank {
				held = true
				break
			}
		}
		if !held {
			return false
		}
	}
	return true
}

// playCard is the decision policy. Leading: cash a master Ace or Seven in a
// suit the opponents can still follow, otherwise lead low from the longest
// plain suit, otherwise low trump. Following: feed points when the partner
// holds the trick, win it as cheaply as possible when we can, shed the
// cheapest card when we cannot.
func (p *SmartPlayer) playCard(trick *shared.Trick) *shared.Card {
	if trick.Len() == 0 {
		return p.lead(trick)
	}
	return p.follow(trick)
}

func (p *SmartPlayer) lead(trick *shared.Trick) *shared.Card {
	trumpSuit := p.trump.Suit
	for _, suit := range shared.Suits {
		if suit == trumpSuit {
			continue
		}
		if p.hasNot[opLeft][suit] || p.hasNot[opRight][suit] {
			continue // an opponent would trump it
		}
		if p.released[opLeft][suit] > 1 || p.released[opRight][suit] > 1 || p.nOut[suit] > 4 {
			continue // suit is running dry, the ruff risk is too high
		}
		cards := p.bySuit[suit]
		if len(cards) == 0 {
			continue
		}
		top := cards[len(cards)-1]
		if top.Rank == shared.Ace && p.masterCard(top) {
			return top
		}
		if top.Rank == shared.Seven && p.isOut(shared.Ace, suit) && p.masterCard(top) {
			return top
		}
	}

	// No master to cash: lead low from the longest plain suit.
	longest := -1
	for _, suit := range shared.Suits {
		if suit == trumpSuit || len(p.bySuit[suit]) == 0 {
			continue
		}
		if longest < 0 || len(p.bySuit[suit]) > len(p.bySuit[longest]) {
			longest = int(suit)
		}
	}
	if longest >= 0 {
		return p.bySuit[longest][0]
	}
	if cards := p.bySuit[trumpSuit]; len(cards) > 0 {
		return cards[0]
	}
	return firstLegal(p.Hand(), trick)
}

func (p *SmartPlayer) follow(trick *shared.Trick) *shared.Card {
	trumpSuit := p.trump.Suit
	var legal []*shared.Card
	for _, card := range p.Hand().Cards() {
		if p.Hand().IsValidMove(card, trick) {
			legal = append(legal, card)
		}
	}
	if len(legal) == 0 {
		return firstLegal(p.Hand(), trick) // unreachable on a consistent hand
	}

	winIdx := trick.WinnerIndex(trumpSuit)
	best := trick.Cards()[winIdx]
	partnerWinning := false
	if p.starter != nil {
		winnerSeat := game.Seat((int(p.starter.Seat()) + winIdx) % 4)
		rel, other := p.relIndex(winnerSeat)
		partnerWinning = other && rel == opPartner
	}

	if partnerWinning {
		// Feed points without overtaking the partner if we can help it.
		var give *shared.Card
		for _, card := range legal {
			if card.Beats(best, trumpSuit) {
				continue
			}
			if give == nil || card.Points() > give.Points() ||
				(card.Points() == give.Points() && card.Rank < give.Rank) {
				give = card
			}
		}
		if give != nil {
			return give
		}
		// Every legal card overtakes; fall through and win cheaply instead.
	}

	var cheapest *shared.Card
	for _, card := range legal {
		if !card.Beats(best, trumpSuit) {
			continue
		}
		if cheapest == nil || card.Points() < cheapest.Points() ||
			(card.Points() == cheapest.Points() && card.Rank < cheapest.Rank) {
			cheapest = card
		}
	}
	if cheapest != nil {
		return cheapest
	}

	// Cannot win: shed the cheapest card.
	shed := legal[0]
	for _, card := range legal[1:] {
		if card.Points() < shed.Points() ||
			(card.Points() == shed.Points() && card.Rank < shed.Rank) {
			shed = card
		}
	}
	return shed
}
