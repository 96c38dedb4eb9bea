package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedSuit(t *testing.T) {
	tr := NewTrick()
	_, ok := tr.LedSuit()
	assert.False(t, ok)

	tr.Add(&Card{Rank: Two, Suit: Spades})
	led, ok := tr.LedSuit()
	assert.True(t, ok)
	assert.Equal(t, Spades, led)
}

func TestWinnerIndex(t *testing.T) {
	tests := []struct {
		name  string
		codes [4]Card
		trump Suit
		want  int
	}{
		{
			name: "highest of led suit wins",
			codes: [4]Card{
				{Rank: King, Suit: Clubs},
				{Rank: Seven, Suit: Clubs},
				{Rank: Two, Suit: Clubs},
				{Rank: Queen, Suit: Clubs},
			},
			trump: Hearts,
			want:  1,
		},
		{
			name: "off-suit ace does not win",
			codes: [4]Card{
				{Rank: Two, Suit: Clubs},
				{Rank: Ace, Suit: Spades},
				{Rank: Three, Suit: Clubs},
				{Rank: Ace, Suit: Diamonds},
			},
			trump: Hearts,
			want:  2,
		},
		{
			name: "small trump beats big plain cards",
			codes: [4]Card{
				{Rank: Ace, Suit: Clubs},
				{Rank: Seven, Suit: Clubs},
				{Rank: Two, Suit: Hearts},
				{Rank: King, Suit: Clubs},
			},
			trump: Hearts,
			want:  2,
		},
		{
			name: "highest trump wins among trumps",
			codes: [4]Card{
				{Rank: Two, Suit: Hearts},
				{Rank: Jack, Suit: Hearts},
				{Rank: Seven, Suit: Hearts},
				{Rank: King, Suit: Hearts},
			},
			trump: Hearts,
			want:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTrick()
			for i := range tt.codes {
				tr.Add(&tt.codes[i])
			}
			assert.Equal(t, tt.want, tr.WinnerIndex(tt.trump))
		})
	}
}
