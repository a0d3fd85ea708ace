package deck

import "fmt"

// Token represents one face-down card on the board.
// Two tokens sharing a PairKey are a matching pair.
type Token struct {
	ID       int    `json:"id"`
	PairKey  string `json:"pairKey"`
	Revealed bool   `json:"revealed"`
	Matched  bool   `json:"matched"`
}

// NewToken constructs a face-down, unmatched token
func NewToken(id int, pairKey string) Token {
	return Token{ID: id, PairKey: pairKey}
}

// FaceUp reports whether the token's face is visible
func (t Token) FaceUp() bool {
	return t.Revealed || t.Matched
}

func (t Token) String() string {
	switch {
	case t.Matched:
		return fmt.Sprintf("#%d %s (matched)", t.ID, t.PairKey)
	case t.Revealed:
		return fmt.Sprintf("#%d %s", t.ID, t.PairKey)
	}
	return fmt.Sprintf("#%d ?", t.ID)
}

// PairKey returns the key shared by the nth pair (1-based)
func PairKey(n int) string {
	return fmt.Sprintf("pair-%d", n)
}
