package engine

import (
	"fmt"
	"io"
	"strings"

	"github.com/minaorangina/memory/protocol"
)

const (
	hiddenFace      = "?"
	levelDoneText   = "Level complete! %d moves - type \"next\" to continue\n"
	wonText         = "YOU WIN, %s! Final score: %d moves\n"
	bestScoreAbsent = "-"
)

func SendText(w io.Writer, text string, a ...interface{}) {
	fmt.Fprintf(w, text, a...)
}

// BuildBoardText lays the tokens out in the level's grid.
// Matched tokens are shown in brackets.
func BuildBoardText(msg protocol.OutboundMessage) string {
	columns := msg.Columns
	if columns < 1 {
		columns = len(msg.Tokens)
	}

	width := 1
	for _, t := range msg.Tokens {
		if n := len(faceText(t)); n > width {
			width = n
		}
	}

	var b strings.Builder
	for i, t := range msg.Tokens {
		fmt.Fprintf(&b, "%2d:%-*s", t.ID, width+2, faceText(t))
		if (i+1)%columns == 0 || i == len(msg.Tokens)-1 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	return b.String()
}

func faceText(t protocol.Token) string {
	face := t.Asset
	if face == "" {
		face = t.PairKey
	}
	switch {
	case t.Matched:
		return "[" + face + "]"
	case t.Revealed:
		return face
	}
	return hiddenFace
}

// BuildStatusText describes the level, moves and best score
func BuildStatusText(msg protocol.OutboundMessage) string {
	best := bestScoreAbsent
	if score, ok := msg.BestScore(msg.LevelIndex); ok {
		best = fmt.Sprint(score)
	}

	text := fmt.Sprintf("%s (%d/%d)  Moves: %d  Best: %s\n",
		msg.LevelName, msg.LevelIndex+1, msg.LevelCount, msg.Moves, best)

	switch {
	case msg.Won:
		text += fmt.Sprintf(wonText, msg.Name, msg.Moves)
	case msg.Completed:
		text += fmt.Sprintf(levelDoneText, msg.Moves)
	}
	return text
}

// BuildScoresText lists the best score of every level
func BuildScoresText(msg protocol.OutboundMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s's best scores:\n", msg.Name)
	for i := 0; i < msg.LevelCount; i++ {
		name := fmt.Sprintf("Level %d", i+1)
		if i < len(msg.LevelNames) {
			name = msg.LevelNames[i]
		}

		score := bestScoreAbsent
		if best, ok := msg.BestScore(i); ok {
			score = fmt.Sprintf("%d moves", best)
		}
		fmt.Fprintf(&b, "- %s: %s\n", name, score)
	}
	return b.String()
}
