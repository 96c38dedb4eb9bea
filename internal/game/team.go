package game

import (
	"sueca-game/internal/shared"

	"github.com/google/uuid"
)

// Team pairs the two opposing-seated players, accumulates their captured
// cards and points across a round, and tracks match victories.
type Team struct {
	ID string

	p1, p2   Player
	points   int
	captured []*shared.Card
	won      int
	result   string
}

// NewTeam creates a team from two players and links them back to it.
func NewTeam(p1, p2 Player) *Team {
	t := &Team{ID: uuid.NewString(), p1: p1, p2: p2}
	p1.SetTeam(t)
	p2.SetTeam(t)
	return t
}

// Players returns the two team members.
func (t *Team) Players() (Player, Player) {
	return t.p1, t.p2
}

// Belongs reports whether the player occupies one of the team's slots.
func (t *Team) Belongs(p Player) bool {
	return p == t.p1 || p == t.p2
}

// AddToCapt moves a resolved trick into the team's capture pile and adds
// the card values to the round point total.
func (t *Team) AddToCapt(cards []*shared.Card) {
	for _, c := range cards {
		t.points += c.Points()
		t.captured = append(t.captured, c)
	}
}

// RoundPoints returns the points captured this round.
func (t *Team) RoundPoints() int {
	return t.points
}

// Captured returns the cards captured this round.
func (t *Team) Captured() []*shared.Card {
	return t.captured
}

// Won returns the accumulated match-victory points.
func (t *Team) Won() int {
	return t.won
}

// AddToWon adds match-victory points.
func (t *Team) AddToWon(n int) {
	t.won += n
}

// Result returns the display string for the last round's outcome, e.g.
// "(2)" or "(T)".
func (t *Team) Result() string {
	return t.result
}

// SetResult sets the round outcome indicator.
func (t *Team) SetResult(s string) {
	t.result = s
}

// NewRound resets the round state and tells both members a round is
// starting.
func (t *Team) NewRound(trump *shared.Card, owner Player) {
	t.points = 0
	t.captured = nil
	t.p1.NewRound(trump, owner)
	t.p2.NewRound(trump, owner)
}

// Replace substitutes a player in its slot; the slot is never left empty.
// Returns false if the old player is not on this team.
func (t *Team) Replace(oldPlayer, newPlayer Player) bool {
	switch oldPlayer {
	case t.p1:
		t.p1 = newPlayer
	case t.p2:
		t.p2 = newPlayer
	default:
		return false
	}
	newPlayer.SetTeam(t)
	return true
}
