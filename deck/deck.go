package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"
)

var (
	ErrInvalidConfiguration = errors.New("invalid configuration")
	ErrInvalidPairCount     = errors.New("pair count must be at least 1")
)

// Board represents the tokens laid out for one level, in display order
type Board []Token

// Build creates a shuffled board holding pairCount pairs of tokens.
// A nil rng falls back to a time-seeded source.
func Build(pairCount int, rng *rand.Rand) (Board, error) {
	if pairCount < 1 {
		return nil, fmt.Errorf("%w: %w: got %d", ErrInvalidConfiguration, ErrInvalidPairCount, pairCount)
	}

	board := make(Board, 0, pairCount*2)
	for n := 1; n <= pairCount; n++ {
		key := PairKey(n)
		board = append(board, NewToken(len(board), key), NewToken(len(board)+1, key))
	}

	board.Shuffle(rng)
	return board, nil
}

// NewRand returns a PCG-backed source. A zero seed means time-seeded.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, 1))
}

// Shuffle shuffles the board in place (Fisher-Yates)
func (b Board) Shuffle(rng *rand.Rand) {
	if rng == nil {
		rng = NewRand(0)
	}
	for i := len(b) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		b[i], b[j] = b[j], b[i]
	}
}

// Find returns the position of the token with the given id
func (b Board) Find(id int) (int, bool) {
	for i, t := range b {
		if t.ID == id {
			return i, true
		}
	}
	return -1, false
}

// AllMatched reports whether every token on the board has been matched.
// An empty board is never complete.
func (b Board) AllMatched() bool {
	if len(b) == 0 {
		return false
	}
	for _, t := range b {
		if !t.Matched {
			return false
		}
	}
	return true
}

// PairCount returns the number of pairs on the board
func (b Board) PairCount() int {
	return len(b) / 2
}

// Clone returns a copy that shares nothing with b
func (b Board) Clone() Board {
	if b == nil {
		return nil
	}
	out := make(Board, len(b))
	copy(out, b)
	return out
}

// Valid checks that every pair key occurs exactly twice and ids are unique
func (b Board) Valid() bool {
	if len(b) == 0 || len(b)%2 != 0 {
		return false
	}

	keys := map[string]int{}
	ids := map[int]struct{}{}
	for _, t := range b {
		if _, ok := ids[t.ID]; ok {
			return false
		}
		ids[t.ID] = struct{}{}
		keys[t.PairKey]++
	}

	for _, count := range keys {
		if count != 2 {
			return false
		}
	}
	return true
}
