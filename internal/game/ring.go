package game

import "log"

// Ring is the fixed 4-player seating as a circular structure with a movable
// cursor: an array with a cursor index, where rotating is an increment
// modulo 4 and replacing a player is an array write. Seats are never
// reordered within a round.
type Ring struct {
	seats [4]Player
	cur   int
}

// NewRing builds the ring in the given seating order with the cursor on p1.
// Nil players are a contract violation.
func NewRing(p1, p2, p3, p4 Player) *Ring {
	if p1 == nil || p2 == nil || p3 == nil || p4 == nil {
		log.Panicf("ring requires four non-nil players")
	}
	return &Ring{seats: [4]Player{p1, p2, p3, p4}}
}

// Clone returns an independent ring preserving the seating order and the
// current cursor position; it hands out a who's-who view without exposing
// engine state to mutation.
func (r *Ring) Clone() *Ring {
	c := *r
	return &c
}

// Current returns the player at the cursor.
func (r *Ring) Current() Player {
	return r.seats[r.cur]
}

// Advance moves the cursor to the next seat, wrapping after the fourth, and
// returns that player.
func (r *Ring) Advance() Player {
	r.cur = (r.cur + 1) % len(r.seats)
	return r.seats[r.cur]
}

// SetCurrent repositions the cursor to the seat holding the player. Returns
// false if the player is not in the ring; that never happens in correct
// operation.
func (r *Ring) SetCurrent(p Player) bool {
	for i, seated := range r.seats {
		if seated == p {
			r.cur = i
			return true
		}
	}
	return false
}

// SetCurrentSeat repositions the cursor n seats forward from the origin
// seat; used to pick a random starting seat at game creation.
func (r *Ring) SetCurrentSeat(n int) {
	r.cur = n % len(r.seats)
}

// At returns the player n seats ahead of the cursor without moving it.
// Offset 2 is the partner.
func (r *Ring) At(n int) Player {
	return r.seats[(r.cur+n)%len(r.seats)]
}

// Replace swaps a seat's occupant in place, preserving ring position. If
// the replaced seat is the cursor seat, the cursor keeps pointing at that
// seat, now holding the new player. Returns false if the old player is not
// found within one full rotation.
func (r *Ring) Replace(oldPlayer, newPlayer Player) bool {
	for i := range r.seats {
		if r.seats[i] == oldPlayer {
			r.seats[i] = newPlayer
			return true
		}
	}
	return false
}
