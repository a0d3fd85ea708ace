package game

import (
	"errors"
	"fmt"

	"github.com/minaorangina/memory/deck"
	uuid "github.com/satori/go.uuid"
)

var (
	ErrInvalidConfiguration = deck.ErrInvalidConfiguration
	ErrInvalidBoard         = errors.New("every pair key must appear exactly twice")
)

const selectionLimit = 2

// Session is one play-through of a board. Sessions are values:
// Reveal and Resolve return a new Session and never modify their input.
type Session struct {
	ID        string
	Board     deck.Board
	Selection []int
	Moves     int
	Completed bool
	Resolving bool
}

// NewID returns a fresh session id
func NewID() string {
	return uuid.NewV4().String()
}

// NewSession starts a session on the given board
func NewSession(board deck.Board) (Session, error) {
	if !board.Valid() {
		return Session{}, fmt.Errorf("%w: %w", ErrInvalidConfiguration, ErrInvalidBoard)
	}

	fresh := board.Clone()
	for i := range fresh {
		fresh[i].Revealed = false
		fresh[i].Matched = false
	}

	return Session{
		ID:        NewID(),
		Board:     fresh,
		Selection: []int{},
	}, nil
}

// Stage reports the lifecycle stage of the session
func (s Session) Stage() Stage {
	switch {
	case len(s.Board) == 0:
		return Idle
	case s.Completed:
		return Complete
	}
	return Active
}

// Token returns the token with the given id
func (s Session) Token(id int) (deck.Token, bool) {
	i, ok := s.Board.Find(id)
	if !ok {
		return deck.Token{}, false
	}
	return s.Board[i], true
}

// Selected reports whether id is in the reveal selection
func (s Session) Selected(id int) bool {
	for _, sel := range s.Selection {
		if sel == id {
			return true
		}
	}
	return false
}

// Matched returns the number of matched tokens
func (s Session) Matched() int {
	n := 0
	for _, t := range s.Board {
		if t.Matched {
			n++
		}
	}
	return n
}

func (s Session) clone() Session {
	out := s
	out.Board = s.Board.Clone()
	out.Selection = append([]int{}, s.Selection...)
	return out
}

// Reveal turns a token face up. Revealing the second token of an attempt
// counts a move and leaves the session resolving until Resolve is applied.
func Reveal(s Session, tokenID int) (Session, Outcome) {
	if s.Resolving || s.Completed || len(s.Selection) >= selectionLimit {
		return s, Ignored
	}

	i, ok := s.Board.Find(tokenID)
	if !ok {
		return s, Ignored
	}
	if tok := s.Board[i]; tok.Matched || tok.Revealed {
		return s, Ignored
	}

	next := s.clone()
	next.Board[i].Revealed = true
	next.Selection = append(next.Selection, tokenID)

	if len(next.Selection) < selectionLimit {
		return next, Revealed
	}

	next.Moves++
	next.Resolving = true

	first, _ := next.Token(next.Selection[0])
	if first.PairKey == next.Board[i].PairKey {
		return next, PendingMatch
	}
	return next, PendingMismatch
}

// Resolve settles a pending attempt: a pair is marked matched, anything
// else is turned face down again. Completion is evaluated afterwards.
func Resolve(s Session) Session {
	if !s.Resolving || len(s.Selection) != selectionLimit {
		return s
	}

	next := s.clone()
	a, okA := next.Board.Find(next.Selection[0])
	b, okB := next.Board.Find(next.Selection[1])
	if okA && okB {
		if next.Board[a].PairKey == next.Board[b].PairKey {
			next.Board[a].Matched, next.Board[b].Matched = true, true
		} else {
			next.Board[a].Revealed, next.Board[b].Revealed = false, false
		}
	}

	next.Selection = []int{}
	next.Resolving = false
	next.Completed = next.Board.AllMatched()

	return next
}
