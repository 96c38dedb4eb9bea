package game

// Seat is one of the four fixed table positions in turn order, independent
// of which player currently occupies it. The names match the positions the
// wire protocol uses.
type Seat int

const (
	SeatBottom Seat = iota
	SeatRight
	SeatTop
	SeatLeft
)

func (s Seat) String() string {
	switch s {
	case SeatBottom:
		return "bottom"
	case SeatRight:
		return "right"
	case SeatTop:
		return "top"
	case SeatLeft:
		return "left"
	default:
		return "?"
	}
}

// ParseSeat returns the seat matching a position name from the wire.
func ParseSeat(name string) (Seat, bool) {
	switch name {
	case "bottom":
		return SeatBottom, true
	case "right":
		return SeatRight, true
	case "top":
		return SeatTop, true
	case "left":
		return SeatLeft, true
	default:
		return 0, false
	}
}
