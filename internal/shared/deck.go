package shared

import (
	"math/rand/v2"
)

// Deck owns the 40 card instances of a game. The cards live for the deck's
// lifetime; Shuffle permutes the references in place, it never reallocates
// them.
type Deck struct {
	Cards [40]*Card

	byCode map[string]*Card
	rng    *rand.Rand
}

// NewDeck creates a standard 40-card Sueca deck with a randomly seeded
// shuffle source.
func NewDeck() *Deck {
	return NewDeckSeeded(rand.Uint64())
}

// NewDeckSeeded creates a deck whose Shuffle sequence is determined by seed.
func NewDeckSeeded(seed uint64) *Deck {
	d := &Deck{
		byCode: make(map[string]*Card, 40),
		rng:    rand.New(rand.NewPCG(seed, seed)),
	}
	i := 0
	for _, suit := range Suits {
		for _, rank := range Ranks {
			card := &Card{Rank: rank, Suit: suit}
			d.Cards[i] = card
			d.byCode[card.Code()] = card
			i++
		}
	}
	return d
}

// Shuffle randomizes the order of cards in the deck.
func (d *Deck) Shuffle() {
	d.rng.Shuffle(len(d.Cards), func(i, j int) {
		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	})
}

// ByCode returns the card matching a two-character short code such as "7C",
// used by the network layer to name cards on the wire.
func (d *Deck) ByCode(code string) (*Card, bool) {
	card, ok := d.byCode[code]
	return card, ok
}

// IntN returns a uniform random int in [0, n) from the deck's shuffle
// source, so a seeded deck also makes seat selection deterministic.
func (d *Deck) IntN(n int) int {
	return d.rng.IntN(n)
}
