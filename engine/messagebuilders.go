package engine

import (
	"github.com/minaorangina/memory/deck"
	"github.com/minaorangina/memory/protocol"
)

func buildSnapshot(gameID, name string, seq *Sequencer, asset deck.AssetFunc) protocol.OutboundMessage {
	session := seq.Session()
	level := seq.Level()

	return protocol.OutboundMessage{
		GameID:     gameID,
		Name:       name,
		Command:    protocol.StateChanged,
		SessionID:  session.ID,
		LevelIndex: seq.Index(),
		LevelName:  level.Name,
		LevelCount: len(seq.table),
		LevelNames: seq.table.Names(),
		Columns:    level.Columns,
		Rows:       level.Rows,
		Stage:      seq.Stage().String(),
		Tokens:     buildTokens(session.Board, asset),
		Selection:  session.Selection,
		Moves:      session.Moves,
		Completed:  session.Completed,
		Resolving:  session.Resolving,
		Won:        seq.Won(),
		BestScores: buildBestScores(seq),
	}
}

// buildTokens hides the face of every token that is face down
func buildTokens(board deck.Board, asset deck.AssetFunc) []protocol.Token {
	tokens := make([]protocol.Token, 0, len(board))
	for _, t := range board {
		tok := protocol.Token{ID: t.ID, Revealed: t.Revealed, Matched: t.Matched}
		if t.FaceUp() {
			tok.PairKey = t.PairKey
			tok.Asset = asset(t.PairKey)
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func buildBestScores(seq *Sequencer) []*int {
	scores := make([]*int, len(seq.table))
	for i := range scores {
		if best, ok := seq.BestScore(i); ok {
			b := best
			scores[i] = &b
		}
	}
	return scores
}
