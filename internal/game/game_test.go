package game_test

import (
	"testing"
	"time"

	"sueca-game/internal/bot"
	"sueca-game/internal/game"
	"sueca-game/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler collects deferred tasks so tests decide when the
// post-trick collection pause elapses.
type manualScheduler struct {
	fns []func()
}

func (m *manualScheduler) After(_ time.Duration, fn func()) {
	m.fns = append(m.fns, fn)
}

func (m *manualScheduler) runAll() {
	fns := m.fns
	m.fns = nil
	for _, fn := range fns {
		fn()
	}
}

// recordingPlayer captures every notification it receives.
type recordingPlayer struct {
	game.BasePlayer

	newGames  int
	newRounds int
	trumps    []*shared.Card
	newTurns  []game.Player
	turns     []*shared.Card
	turnEnds  []game.Player
}

func newRecordingPlayer(name string) *recordingPlayer {
	p := &recordingPlayer{}
	p.SetName(name)
	return p
}

func (p *recordingPlayer) NewGame(g *game.Game) { p.newGames++ }

func (p *recordingPlayer) NewRound(trump *shared.Card, owner game.Player) {
	p.newRounds++
	p.trumps = append(p.trumps, trump)
}

func (p *recordingPlayer) NewTurn(starter game.Player) {
	p.newTurns = append(p.newTurns, starter)
}

func (p *recordingPlayer) Turn(player game.Player, card *shared.Card) {
	p.turns = append(p.turns, card)
}

func (p *recordingPlayer) TurnEnd(winner game.Player, played []*shared.Card) {
	p.turnEnds = append(p.turnEnds, winner)
}

// playLegal submits the current player's first legal card and returns it.
func playLegal(t *testing.T, g *game.Game) *shared.Card {
	t.Helper()
	cur := g.Current()
	for _, card := range cur.Hand().Cards() {
		if cur.Hand().IsValidMove(card, g.Played()) {
			require.Equal(t, game.MoveOK, g.PlayMove(cur, card))
			return card
		}
	}
	t.Fatalf("player %q has no legal card", cur.Name())
	return nil
}

func TestNewRoundDealsTheWholeDeck(t *testing.T) {
	a, b, c, d := fourPlayers()
	g := game.New(a, b, c, d, game.Config{Deck: shared.NewDeckSeeded(1)})
	g.NewRound()

	assert.Equal(t, game.Playing, g.State())
	assert.Equal(t, 1, g.Rounds())

	seen := make(map[*shared.Card]bool, 40)
	for _, p := range []*game.HumanPlayer{a, b, c, d} {
		assert.Equal(t, 10, p.Hand().Len())
		for _, card := range p.Hand().Cards() {
			assert.False(t, seen[card], "card dealt twice: %s", card.Code())
			seen[card] = true
		}
	}
	assert.Len(t, seen, 40)

	require.NotNil(t, g.Trump())
	assert.True(t, g.TrumpOwner().Hand().Contains(g.Trump()), "the trump is the owner's 40th card")

	ring := g.Players()
	ring.SetCurrent(g.TrumpOwner())
	assert.Same(t, ring.At(1), g.Current(), "the player after the trump owner leads")
}

func TestPlayMoveRejections(t *testing.T) {
	a, b, c, d := fourPlayers()
	g := game.New(a, b, c, d, game.Config{Deck: shared.NewDeckSeeded(2)})
	g.NewRound()

	cur := g.Current()
	ring := g.Players()
	ring.SetCurrent(cur)
	other := ring.At(1)

	assert.Equal(t, game.MoveTurn, g.PlayMove(other, other.Hand().Cards()[0]))
	assert.Equal(t, game.MoveInvalid, g.PlayMove(cur, other.Hand().Cards()[0]),
		"a card from someone else's hand is not a legal move")
	assert.True(t, g.Playtime(), "rejected moves leave the turn open")
}

func TestTrickResolution(t *testing.T) {
	a, b, c, d := fourPlayers()
	sched := &manualScheduler{}
	g := game.New(a, b, c, d, game.Config{Deck: shared.NewDeckSeeded(3), Scheduler: sched})
	g.NewRound()

	leader := g.Current()
	points := 0
	for i := 0; i < 4; i++ {
		points += playLegal(t, g).Points()
	}

	require.Equal(t, 4, g.Played().Len())
	assert.False(t, g.Playtime(), "no moves while the collection pause is pending")
	require.Len(t, sched.fns, 1, "collection armed exactly once")

	winIdx := g.Played().WinnerIndex(g.Trump().Suit)
	ring := g.Players()
	ring.SetCurrent(leader)
	expected := ring.At(winIdx)

	sched.runAll()

	assert.Equal(t, 0, g.Played().Len(), "trick cleared")
	assert.Same(t, expected, g.Current(), "the trick winner leads next")
	assert.Equal(t, points, expected.Team().RoundPoints())
	assert.True(t, g.Playtime())
}

func TestTurnWinnerIsStableMidTrick(t *testing.T) {
	a, b, c, d := fourPlayers()
	sched := &manualScheduler{}
	g := game.New(a, b, c, d, game.Config{Deck: shared.NewDeckSeeded(9), Scheduler: sched})
	g.NewRound()

	leader := g.Current()
	playLegal(t, g)
	playLegal(t, g)

	ring := g.Players()
	ring.SetCurrent(leader)
	expected := ring.At(g.Played().WinnerIndex(g.Trump().Suit))

	cur := g.Current()
	winner := g.TurnWinner()
	assert.Same(t, expected, winner)
	assert.Same(t, cur, g.Current(), "the query must leave the cursor where it was")
	assert.Same(t, winner, g.TurnWinner(), "repeated queries agree")
	assert.Same(t, cur, g.Current())
}

func TestReplaceTrickLeaderMidTrick(t *testing.T) {
	a, b, c, d := fourPlayers()
	sched := &manualScheduler{}
	g := game.New(a, b, c, d, game.Config{Deck: shared.NewDeckSeeded(10), Scheduler: sched})
	g.NewRound()

	leader := g.Current()
	playLegal(t, g) // the leader's card holds the one-card trick

	sub := game.NewHumanPlayer("sub")
	require.True(t, g.ReplacePlayer(leader, sub))

	cur := g.Current()
	assert.Same(t, sub, g.TurnWinner(), "the winner is the seat's current occupant, not the departed player")
	assert.Same(t, cur, g.Current())

	for i := 0; i < 3; i++ {
		playLegal(t, g)
	}
	require.Len(t, sched.fns, 1)
	sched.runAll()
	assert.Equal(t, 0, g.Played().Len(), "the trick resolves normally after the swap")
	assert.True(t, g.Playtime())
}

func TestCloseVoidsPendingCollection(t *testing.T) {
	a, b, c, d := fourPlayers()
	sched := &manualScheduler{}
	g := game.New(a, b, c, d, game.Config{Deck: shared.NewDeckSeeded(4), Scheduler: sched})
	g.NewRound()

	for i := 0; i < 4; i++ {
		playLegal(t, g)
	}
	require.Len(t, sched.fns, 1)

	g.Close()
	sched.runAll() // stale task must be a no-op

	assert.Equal(t, game.MatchOver, g.State())
	t1, t2 := g.Teams()
	assert.Zero(t, t1.RoundPoints())
	assert.Zero(t, t2.RoundPoints())
	assert.Equal(t, game.MoveTurn, g.PlayMove(a, a.Hand().Cards()[0]))
}

func TestNotificationsReachEverySeat(t *testing.T) {
	players := [4]*recordingPlayer{
		newRecordingPlayer("a"), newRecordingPlayer("b"),
		newRecordingPlayer("c"), newRecordingPlayer("d"),
	}
	g := game.New(players[0], players[1], players[2], players[3],
		game.Config{Deck: shared.NewDeckSeeded(5)})

	for _, p := range players {
		assert.Equal(t, 1, p.newGames)
	}

	g.NewRound()
	leader := g.Current()
	for _, p := range players {
		assert.Equal(t, 1, p.newRounds)
		require.Len(t, p.trumps, 1)
		assert.Same(t, g.Trump(), p.trumps[0])
		require.Len(t, p.newTurns, 1, "trick opening is announced to all seats")
		assert.Same(t, leader, p.newTurns[0])
	}

	for i := 0; i < 4; i++ {
		playLegal(t, g)
	}

	for _, p := range players {
		assert.Len(t, p.turns, 4, "every move is mirrored to every seat")
		require.Len(t, p.turnEnds, 1)
		assert.Same(t, g.Current(), p.turnEnds[0], "announced winner leads the next trick")
		assert.Len(t, p.newTurns, 2)
		assert.Same(t, g.Current(), p.newTurns[1])
	}
}

func rankSet(t *testing.T, d *shared.Deck, ranks ...string) []*shared.Card {
	t.Helper()
	var out []*shared.Card
	for _, rank := range ranks {
		for _, suit := range []string{"C", "D", "S", "H"} {
			card, ok := d.ByCode(rank + suit)
			require.True(t, ok)
			out = append(out, card)
		}
	}
	return out
}

func TestCalcWonGames(t *testing.T) {
	newGame := func() (*game.Game, *shared.Deck) {
		a, b, c, d := fourPlayers()
		deck := shared.NewDeckSeeded(6)
		return game.New(a, b, c, d, game.Config{Deck: deck}), deck
	}

	t.Run("narrow win is one victory", func(t *testing.T) {
		g, d := newGame()
		t1, t2 := g.Teams()
		t1.AddToCapt(rankSet(t, d, "A", "K", "Q")) // 44+16+8 = 68
		t2.AddToCapt(rankSet(t, d, "7", "J"))      // 40+12 = 52

		winner, victories := g.CalcWonGames()
		assert.Same(t, t1, winner)
		assert.Equal(t, 1, victories)
		assert.Equal(t, 1, t1.Won())
		assert.Equal(t, "(1)", t1.Result())
		assert.Equal(t, "", t2.Result())
	})

	t.Run("margin over 60 is two victories", func(t *testing.T) {
		g, d := newGame()
		t1, t2 := g.Teams()
		t2.AddToCapt(rankSet(t, d, "A", "7", "K", "J")) // 44+40+16+12 = 112
		t1.AddToCapt(rankSet(t, d, "Q"))                // 8

		winner, victories := g.CalcWonGames()
		assert.Same(t, t2, winner)
		assert.Equal(t, 2, victories)
	})

	t.Run("all forty cards is four victories", func(t *testing.T) {
		g, d := newGame()
		t1, _ := g.Teams()
		t1.AddToCapt(d.Cards[:])

		winner, victories := g.CalcWonGames()
		assert.Same(t, t1, winner)
		assert.Equal(t, 4, victories)
	})

	t.Run("tie doubles the next decisive round", func(t *testing.T) {
		g, d := newGame()
		t1, t2 := g.Teams()
		trump, _ := d.ByCode("2C")
		p1, _ := t1.Players()

		t1.AddToCapt(rankSet(t, d, "A", "K")) // 60
		t2.AddToCapt(rankSet(t, d, "7", "J", "Q")) // 60
		winner, victories := g.CalcWonGames()
		assert.Nil(t, winner)
		assert.Zero(t, victories)
		assert.Equal(t, "(T)", t1.Result())
		assert.Equal(t, "(T)", t2.Result())

		// Next decisive round counts double.
		t1.NewRound(trump, p1)
		t2.NewRound(trump, p1)
		t1.AddToCapt(rankSet(t, d, "A", "K", "Q"))
		t2.AddToCapt(rankSet(t, d, "7", "J"))
		winner, victories = g.CalcWonGames()
		assert.Same(t, t1, winner)
		assert.Equal(t, 2, victories, "1 victory doubled by the preceding tie")

		// The multiplier resets after being spent.
		t1.NewRound(trump, p1)
		t2.NewRound(trump, p1)
		t1.AddToCapt(rankSet(t, d, "A", "K", "Q"))
		t2.AddToCapt(rankSet(t, d, "7", "J"))
		_, victories = g.CalcWonGames()
		assert.Equal(t, 1, victories)
	})
}

func TestReplacePlayerTransfersHandVerbatim(t *testing.T) {
	a, b, c, d := fourPlayers()
	g := game.New(a, b, c, d, game.Config{Deck: shared.NewDeckSeeded(7)})
	g.NewRound()

	cur := g.Current()
	ring := g.Players()
	ring.SetCurrent(cur)
	victim := ring.At(1) // not the player to move
	oldTeam := victim.Team()
	oldCards := append([]*shared.Card{}, victim.Hand().Cards()...)

	sub := game.NewHumanPlayer("sub")
	require.True(t, g.ReplacePlayer(victim, sub))

	got := sub.Hand().Cards()
	require.Len(t, got, len(oldCards))
	for i := range oldCards {
		assert.Same(t, oldCards[i], got[i], "same card references in the same order")
	}
	assert.True(t, oldTeam.Belongs(sub))
	assert.False(t, oldTeam.Belongs(victim))
	assert.Equal(t, victim.Seat(), sub.Seat())
	assert.Same(t, cur, g.Current(), "replacement elsewhere does not move the turn")

	outsider := game.NewHumanPlayer("x")
	assert.False(t, g.ReplacePlayer(outsider, sub))
}

func TestReplaceCurrentPlayerWithBotPlaysImmediately(t *testing.T) {
	a, b, c, d := fourPlayers()
	g := game.New(a, b, c, d, game.Config{Deck: shared.NewDeckSeeded(8)})
	g.NewRound()

	cur := g.Current()
	require.Equal(t, 0, g.Played().Len())

	replacement := bot.NewDumb()
	defer replacement.Release()
	require.True(t, g.ReplacePlayer(cur, replacement))

	assert.Equal(t, 1, g.Played().Len(), "the bot moves as soon as it takes the seat")
	assert.Equal(t, 9, replacement.Hand().Len())
}

func TestFullMatchWithBots(t *testing.T) {
	b1, b2 := bot.NewSmart(), bot.NewDumb()
	b3, b4 := bot.NewSmart(), bot.NewDumb()
	defer func() {
		b1.Release()
		b2.Release()
		b3.Release()
		b4.Release()
	}()

	var g *game.Game
	var roundSums []int
	var matchWinner *game.Team
	g = game.New(b1, b2, b3, b4, game.Config{
		Deck:        shared.NewDeckSeeded(11),
		TargetGames: 1,
		Events: game.Events{
			RoundEnded: func(winner *game.Team, victories int) {
				t1, t2 := g.Teams()
				roundSums = append(roundSums, t1.RoundPoints()+t2.RoundPoints())
				if g.Rounds() >= 50 {
					g.Close() // runaway guard, never hit in practice
				}
			},
			MatchEnded: func(winner *game.Team) {
				matchWinner = winner
			},
		},
	})

	g.NewRound() // bots drive the whole match from here

	require.NotNil(t, matchWinner, "a one-victory match must finish")
	assert.GreaterOrEqual(t, matchWinner.Won(), 1)
	assert.Equal(t, game.MatchOver, g.State())
	require.NotEmpty(t, roundSums)
	for i, sum := range roundSums {
		assert.Equal(t, 120, sum, "round %d must account for all points", i+1)
	}
	assert.Equal(t, game.MoveTurn, g.PlayMove(b1, g.Deck().Cards[0]),
		"no moves after the match is over")
}
