package shared

import "log"

// Trick holds the cards played in the current trick, in play order starting
// from whichever player led. It is cleared after each trick resolves.
type Trick struct {
	cards []*Card
}

// NewTrick creates an empty trick.
func NewTrick() *Trick {
	return &Trick{}
}

// Add appends a card in play order.
func (t *Trick) Add(card *Card) {
	t.cards = append(t.cards, card)
}

// Len returns the number of cards played so far.
func (t *Trick) Len() int {
	return len(t.cards)
}

// Cards returns the played cards in play order.
func (t *Trick) Cards() []*Card {
	return t.cards
}

// LedSuit returns the suit of the first card played, if any.
func (t *Trick) LedSuit() (Suit, bool) {
	if len(t.cards) == 0 {
		return Clubs, false
	}
	return t.cards[0].Suit, true
}

// Clear empties the trick for the next turn.
func (t *Trick) Clear() {
	t.cards = nil
}

// WinnerIndex returns the play-order index of the biggest card given the
// trump suit. The first card played is the initial candidate.
func (t *Trick) WinnerIndex(trump Suit) int {
	if len(t.cards) == 0 {
		log.Panicf("cannot determine winner of an empty trick")
	}
	best := 0
	for i := 1; i < len(t.cards); i++ {
		if t.cards[i].Beats(t.cards[best], trump) {
			best = i
		}
	}
	return best
}
