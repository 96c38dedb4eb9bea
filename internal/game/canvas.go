package game

import "sueca-game/internal/shared"

// DestKind distinguishes the two places a card is moved to on the table.
type DestKind int

const (
	// DestPlay is the seat's played-card position in the middle of the table.
	DestPlay DestKind = iota
	// DestCollect is the seat's trick-collection area off the table edge.
	DestCollect
)

// Destination names where a card should end up.
type Destination struct {
	Seat Seat
	Kind DestKind
}

// Canvas is the visual collaborator contract. Card movement may be
// asynchronous; the implementation calls arrived once the card reaches its
// destination, which is how the engine paces trick collection.
type Canvas interface {
	Add(card *shared.Card, seat Seat, faceDown bool)
	Remove(card *shared.Card)
	MoveCardTo(card *shared.Card, dest Destination, arrived func(*shared.Card))
	SetTrumpLabel(owner string, card *shared.Card)
	SetNameLabel(seat Seat, name string)
	ClearCards()
}

// Table is the headless canvas used by the server and tests: there is
// nothing to draw, so every card movement completes immediately.
type Table struct{}

func (Table) Add(card *shared.Card, seat Seat, faceDown bool) {}
func (Table) Remove(card *shared.Card)                        {}

func (Table) MoveCardTo(card *shared.Card, dest Destination, arrived func(*shared.Card)) {
	if arrived != nil {
		arrived(card)
	}
}

func (Table) SetTrumpLabel(owner string, card *shared.Card) {}
func (Table) SetNameLabel(seat Seat, name string)           {}
func (Table) ClearCards()                                   {}
