package shared

// Suit represents the suit of a card.
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Spades
	Hearts
)

// Suits lists all four suits in canonical order.
var Suits = [4]Suit{Clubs, Diamonds, Spades, Hearts}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "Clubs"
	case Diamonds:
		return "Diamonds"
	case Spades:
		return "Spades"
	case Hearts:
		return "Hearts"
	default:
		return "?"
	}
}

// Code returns the one-letter suit code used on the wire ("C", "D", "S", "H").
func (s Suit) Code() string {
	switch s {
	case Clubs:
		return "C"
	case Diamonds:
		return "D"
	case Spades:
		return "S"
	case Hearts:
		return "H"
	default:
		return "?"
	}
}

// Rank represents the rank of a card. The declaration order is the Sueca
// strength order (Two weakest, Ace strongest); trick comparisons use this
// ordering, not the numeric pip value, so the Seven outranks the King.
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Queen
	Jack
	King
	Seven
	Ace
)

// Ranks lists all ten ranks in ascending strength order.
var Ranks = [10]Rank{Two, Three, Four, Five, Six, Queen, Jack, King, Seven, Ace}

// Points returns the scoring value of the rank. The full deck is worth
// 120 points: (11+10+4+3+2) per suit, four suits.
func (r Rank) Points() int {
	switch r {
	case Ace:
		return 11
	case Seven:
		return 10
	case King:
		return 4
	case Jack:
		return 3
	case Queen:
		return 2
	default:
		return 0
	}
}

func (r Rank) String() string {
	switch r {
	case Two:
		return "Two"
	case Three:
		return "Three"
	case Four:
		return "Four"
	case Five:
		return "Five"
	case Six:
		return "Six"
	case Queen:
		return "Queen"
	case Jack:
		return "Jack"
	case King:
		return "King"
	case Seven:
		return "Seven"
	case Ace:
		return "Ace"
	default:
		return "?"
	}
}

// Code returns the short rank code used on the wire ("2".."6", "Q", "J", "K", "7", "A").
func (r Rank) Code() string {
	switch r {
	case Two:
		return "2"
	case Three:
		return "3"
	case Four:
		return "4"
	case Five:
		return "5"
	case Six:
		return "6"
	case Queen:
		return "Q"
	case Jack:
		return "J"
	case King:
		return "K"
	case Seven:
		return "7"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Card is an immutable (rank, suit) pair. The 40 canonical cards of a game
// are owned by its Deck; hands and tricks hold references into that set,
// never copies.
type Card struct {
	Rank Rank
	Suit Suit
}

// Code returns the two-character short code, e.g. "AH" or "7C".
func (c *Card) Code() string {
	return c.Rank.Code() + c.Suit.Code()
}

func (c *Card) String() string {
	return c.Rank.String() + " of " + c.Suit.String()
}

// Points returns the scoring value of the card.
func (c *Card) Points() int {
	return c.Rank.Points()
}

// Beats reports whether c wins over best, the currently biggest card of a
// trick, given the trump suit. A trump card beats any non-trump card; cards
// of the same suit compare by rank strength; an off-suit non-trump card
// never wins.
func (c *Card) Beats(best *Card, trump Suit) bool {
	if c.Suit == trump {
		if best.Suit != trump {
			return true
		}
		return c.Rank > best.Rank
	}
	return c.Suit == best.Suit && c.Rank > best.Rank
}
