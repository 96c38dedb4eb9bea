package shared

// Hand is an ordered sequence of card references. Bot and network players
// keep insertion order; the local player inserts sorted for display.
type Hand struct {
	cards []*Card
}

// Add appends a card in insertion order.
func (h *Hand) Add(card *Card) {
	h.cards = append(h.cards, card)
}

// AddSorted inserts a card keeping the hand ordered by suit, then ascending
// rank strength within the suit. The sort is cosmetic, not a rule.
func (h *Hand) AddSorted(card *Card) {
	i := 0
	for i < len(h.cards) && card.Suit > h.cards[i].Suit {
		i++
	}
	for i < len(h.cards) && card.Suit == h.cards[i].Suit && card.Rank > h.cards[i].Rank {
		i++
	}
	h.cards = append(h.cards, nil)
	copy(h.cards[i+1:], h.cards[i:])
	h.cards[i] = card
}

// Remove deletes the card from the hand. Returns false if not present.
func (h *Hand) Remove(card *Card) bool {
	for i, c := range h.cards {
		if c == card {
			h.cards = append(h.cards[:i], h.cards[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether the exact card reference is in the hand.
func (h *Hand) Contains(card *Card) bool {
	for _, c := range h.cards {
		if c == card {
			return true
		}
	}
	return false
}

// HasSuit reports whether the hand holds at least one card of the suit.
func (h *Hand) HasSuit(suit Suit) bool {
	for _, c := range h.cards {
		if c.Suit == suit {
			return true
		}
	}
	return false
}

// Len returns the number of cards held.
func (h *Hand) Len() int {
	return len(h.cards)
}

// Cards returns the live backing slice in hand order.
func (h *Hand) Cards() []*Card {
	return h.cards
}

// Clear empties the hand.
func (h *Hand) Clear() {
	h.cards = nil
}

// IsValidMove checks the legal-move rule against the current trick: any card
// is legal when leading; otherwise a card of the led suit is always legal,
// and an off-suit card only when the hand is void in the led suit. There is
// no obligation to play a higher card or a trump.
func (h *Hand) IsValidMove(card *Card, trick *Trick) bool {
	if !h.Contains(card) {
		return false // trying to play a card you don't have
	}
	led, ok := trick.LedSuit()
	if !ok {
		return true // first to play
	}
	if card.Suit == led {
		return true
	}
	return !h.HasSuit(led)
}
