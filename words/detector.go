// Package words finds the words formed on a board, tracks which occurrences
// have already been scored, and computes turn scores with the one-time word
// modifier rule.
package words

import (
	"strings"

	"github.com/domino14/tilewire/board"
)

// A Placement is one occupied square contributing to a word, with its
// coordinates on the board.
type Placement struct {
	Row    int          `json:"row"`
	Col    int          `json:"col"`
	Square board.Square `json:"square"`
}

// A FoundWord is a contiguous run of two or more occupied squares on one
// axis, in scan order.
type FoundWord struct {
	Word    string      `json:"word"`
	Squares []Placement `json:"associatedTiles"`
}

// Detect scans the board and returns every word formed by contiguous
// occupied squares, horizontally then vertically. Runs of length one are
// not words. Detect never mutates the board.
func Detect(b *board.GameBoard) []FoundWord {
	var found []FoundWord
	// Horizontal pass, left to right per row.
	for row := 0; row < board.Dim; row++ {
		found = appendRunWords(found, b, row, 0, 0, 1)
	}
	// Vertical pass, top to bottom per column.
	for col := 0; col < board.Dim; col++ {
		found = appendRunWords(found, b, 0, col, 1, 0)
	}
	return found
}

// appendRunWords walks one row or column from (row, col) in steps of
// (dRow, dCol) and appends every maximal run of length >= 2.
func appendRunWords(found []FoundWord, b *board.GameBoard, row, col, dRow, dCol int) []FoundWord {
	var letters strings.Builder
	var run []Placement
	for r, c := row, col; r < board.Dim && c < board.Dim; r, c = r+dRow, c+dCol {
		sq := b.SquareAt(r, c)
		if sq.HasTile {
			letters.WriteString(sq.Letter)
			run = append(run, Placement{Row: r, Col: c, Square: sq})
			continue
		}
		if len(run) >= 2 {
			found = append(found, FoundWord{Word: letters.String(), Squares: run})
		}
		letters.Reset()
		run = nil
	}
	if len(run) >= 2 {
		found = append(found, FoundWord{Word: letters.String(), Squares: run})
	}
	return found
}
