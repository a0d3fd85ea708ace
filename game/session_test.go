package game

import (
	"testing"

	"github.com/minaorangina/memory/deck"
	utils "github.com/minaorangina/memory/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPairs() deck.Board {
	return deck.Board{
		deck.NewToken(0, "A"),
		deck.NewToken(1, "A"),
		deck.NewToken(2, "B"),
		deck.NewToken(3, "B"),
	}
}

func newTestSession(t *testing.T) Session {
	t.Helper()
	s, err := NewSession(twoPairs())
	require.NoError(t, err)
	return s
}

func TestNewSession(t *testing.T) {
	t.Run("starts active with nothing revealed", func(t *testing.T) {
		s := newTestSession(t)

		utils.AssertNotEmptyString(t, s.ID)
		utils.AssertEqual(t, s.Stage(), Active)
		utils.AssertEqual(t, s.Moves, 0)
		assert.Empty(t, s.Selection)
		assert.False(t, s.Completed)
		assert.False(t, s.Resolving)
	})

	t.Run("every session gets its own id", func(t *testing.T) {
		a := newTestSession(t)
		b := newTestSession(t)
		assert.NotEqual(t, a.ID, b.ID)
	})

	t.Run("rejects a board with unpaired tokens", func(t *testing.T) {
		_, err := NewSession(deck.Board{deck.NewToken(0, "A"), deck.NewToken(1, "B")})
		utils.AssertErrorIs(t, err, ErrInvalidConfiguration)
		utils.AssertErrorIs(t, err, ErrInvalidBoard)
	})

	t.Run("a board with no pairs is invalid configuration", func(t *testing.T) {
		_, err := deck.Build(0, nil)
		utils.AssertErrorIs(t, err, ErrInvalidConfiguration)
	})

	t.Run("zero session is idle", func(t *testing.T) {
		utils.AssertEqual(t, Session{}.Stage(), Idle)
	})
}

func TestRevealScenario(t *testing.T) {
	t.Log("Given a board A A B B")
	s := newTestSession(t)

	t.Log("When token 0 is revealed")
	s, outcome := Reveal(s, 0)
	utils.AssertEqual(t, outcome, Revealed)
	assert.Equal(t, []int{0}, s.Selection)
	utils.AssertEqual(t, s.Moves, 0)

	t.Log("And token 2 is revealed")
	s, outcome = Reveal(s, 2)
	utils.AssertEqual(t, outcome, PendingMismatch)
	utils.AssertEqual(t, s.Moves, 1)
	utils.AssertTrue(t, s.Resolving)

	t.Log("Then the mismatch turns both face down")
	s = Resolve(s)
	tok0, _ := s.Token(0)
	tok2, _ := s.Token(2)
	utils.AssertFalse(t, tok0.Revealed)
	utils.AssertFalse(t, tok2.Revealed)
	assert.Empty(t, s.Selection)
	utils.AssertFalse(t, s.Resolving)

	t.Log("When the A pair is revealed")
	s, _ = Reveal(s, 0)
	s, outcome = Reveal(s, 1)
	utils.AssertEqual(t, outcome, PendingMatch)
	utils.AssertEqual(t, s.Moves, 2)

	t.Log("Then it is matched but the level is not complete")
	s = Resolve(s)
	tok0, _ = s.Token(0)
	tok1, _ := s.Token(1)
	utils.AssertTrue(t, tok0.Matched)
	utils.AssertTrue(t, tok1.Matched)
	utils.AssertFalse(t, s.Completed)
	utils.AssertEqual(t, s.Matched(), 2)

	t.Log("When the B pair is revealed")
	s, _ = Reveal(s, 2)
	s, _ = Reveal(s, 3)
	utils.AssertEqual(t, s.Moves, 3)

	t.Log("Then every token is matched and the level is complete")
	s = Resolve(s)
	utils.AssertTrue(t, s.Completed)
	utils.AssertEqual(t, s.Stage(), Complete)
	utils.AssertTrue(t, s.Board.AllMatched())
}

func TestRevealNoOps(t *testing.T) {
	t.Run("ignored while resolving", func(t *testing.T) {
		s := newTestSession(t)
		s, _ = Reveal(s, 0)
		s, _ = Reveal(s, 2)

		next, outcome := Reveal(s, 1)
		utils.AssertEqual(t, outcome, Ignored)
		utils.AssertDeepEqual(t, next, s)
	})

	t.Run("ignored when two tokens are already selected", func(t *testing.T) {
		s := newTestSession(t)
		s, _ = Reveal(s, 0)
		s, _ = Reveal(s, 2)
		s.Resolving = false

		next, outcome := Reveal(s, 3)
		utils.AssertEqual(t, outcome, Ignored)
		utils.AssertDeepEqual(t, next, s)
	})

	t.Run("ignored for a revealed token", func(t *testing.T) {
		s := newTestSession(t)
		s, _ = Reveal(s, 0)

		next, outcome := Reveal(s, 0)
		utils.AssertEqual(t, outcome, Ignored)
		utils.AssertEqual(t, next.Moves, 0)
		assert.Equal(t, []int{0}, next.Selection)
	})

	t.Run("ignored for a matched token", func(t *testing.T) {
		s := newTestSession(t)
		s, _ = Reveal(s, 0)
		s, _ = Reveal(s, 1)
		s = Resolve(s)

		next, outcome := Reveal(s, 1)
		utils.AssertEqual(t, outcome, Ignored)
		utils.AssertDeepEqual(t, next, s)
	})

	t.Run("ignored for an unknown token", func(t *testing.T) {
		s := newTestSession(t)
		for _, id := range []int{-1, 4, 100} {
			next, outcome := Reveal(s, id)
			utils.AssertEqual(t, outcome, Ignored)
			utils.AssertDeepEqual(t, next, s)
		}
	})

	t.Run("nothing changes once complete", func(t *testing.T) {
		s := newTestSession(t)
		for _, pair := range [][2]int{{0, 1}, {2, 3}} {
			s, _ = Reveal(s, pair[0])
			s, _ = Reveal(s, pair[1])
			s = Resolve(s)
		}
		require.True(t, s.Completed)

		for id := 0; id < 4; id++ {
			next, outcome := Reveal(s, id)
			utils.AssertEqual(t, outcome, Ignored)
			utils.AssertDeepEqual(t, next, s)
		}
		utils.AssertDeepEqual(t, Resolve(s), s)
	})

	t.Run("resolve without a pending attempt does nothing", func(t *testing.T) {
		s := newTestSession(t)
		s, _ = Reveal(s, 0)
		utils.AssertDeepEqual(t, Resolve(s), s)
	})
}

func TestRevealDoesNotMutateInput(t *testing.T) {
	s := newTestSession(t)
	before := s.clone()

	next, _ := Reveal(s, 0)
	next, _ = Reveal(next, 1)
	_ = Resolve(next)

	utils.AssertDeepEqual(t, s, before)
}

func TestMovesCountAttempts(t *testing.T) {
	board, err := deck.Build(5, deck.NewRand(11))
	require.NoError(t, err)
	s, err := NewSession(board)
	require.NoError(t, err)

	attempts := 0
	for !s.Completed {
		picks := pickAttempt(s, attempts%2 == 0)
		require.Len(t, picks, 2)

		var outcome Outcome
		s, outcome = Reveal(s, picks[0])
		require.Equal(t, Revealed, outcome)
		require.Equal(t, attempts, s.Moves)

		s, outcome = Reveal(s, picks[1])
		require.True(t, outcome.Pending())
		attempts++
		require.Equal(t, attempts, s.Moves)

		s = Resolve(s)
		for _, tok := range s.Board {
			if tok.Matched {
				assert.False(t, s.Selected(tok.ID))
			}
		}
		require.LessOrEqual(t, attempts, 100)
	}
	assert.True(t, s.Board.AllMatched())
}

func TestStageNames(t *testing.T) {
	utils.AssertEqual(t, Idle.String(), "idle")
	utils.AssertEqual(t, Active.String(), "active")
	utils.AssertEqual(t, Complete.String(), "complete")
	utils.AssertEqual(t, PendingMismatch.String(), "pendingMismatch")
	utils.AssertFalse(t, Revealed.Pending())
}

// pickAttempt returns the first face-down token and either its partner or,
// when a miss is wanted and possible, a token from another pair.
func pickAttempt(s Session, wantMiss bool) []int {
	var first *deck.Token
	partner, miss := -1, -1
	for i := range s.Board {
		tok := s.Board[i]
		if tok.FaceUp() {
			continue
		}
		switch {
		case first == nil:
			first = &s.Board[i]
		case tok.PairKey == first.PairKey && partner < 0:
			partner = tok.ID
		case tok.PairKey != first.PairKey && miss < 0:
			miss = tok.ID
		}
	}
	if first == nil || partner < 0 {
		return nil
	}
	if wantMiss && miss >= 0 {
		return []int{first.ID, miss}
	}
	return []int{first.ID, partner}
}
