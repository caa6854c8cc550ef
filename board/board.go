// Package board implements the 15x15 game board: bonus-square layout,
// tile placement and removal, and the lock-in rule applied at turn end.
package board

import (
	"errors"
	"fmt"
	"strings"

	"github.com/domino14/tilewire/tiles"
)

// Dim is the board dimension. Boards are always square.
const Dim = 15

var (
	ErrSquareOccupied = errors.New("square already holds a tile")
	ErrSquareEmpty    = errors.New("square holds no tile")
	ErrSquareLocked   = errors.New("tile is locked in")
	ErrBlankUnset     = errors.New("a blank tile needs a letter to represent")
	ErrOffBoard       = errors.New("coordinates are off the board")
)

func inBounds(row, col int) bool {
	return row >= 0 && row < Dim && col >= 0 && col < Dim
}

// A GameBoard is the full grid of squares, row-major with the origin at the
// top left. The zero value is not usable; construct with MakeBoard.
type GameBoard struct {
	Squares [Dim][Dim]Square `json:"squares"`
}

// MakeBoard creates a fresh, empty board from a layout description. Each
// call returns an independent board; boards never share sub-structures.
func MakeBoard(layout []string) *GameBoard {
	if len(layout) != Dim {
		panic(fmt.Sprintf("board layout must have %d rows, has %d", Dim, len(layout)))
	}
	b := &GameBoard{}
	for row, desc := range layout {
		for col, c := range desc {
			b.Squares[row][col] = emptySquare(squareTypeForRune(c))
		}
	}
	return b
}

// SquareAt returns a copy of the square at the given coordinates.
func (b *GameBoard) SquareAt(row, col int) Square {
	return b.Squares[row][col]
}

// SetSquare replaces the square at the given coordinates wholesale. This is
// the coordinate-addressed mutation used by the state store.
func (b *GameBoard) SetSquare(row, col int, sq Square) error {
	if !inBounds(row, col) {
		return ErrOffBoard
	}
	b.Squares[row][col] = sq
	return nil
}

// PlaceTile puts a tile on an empty square. A blank tile must be given the
// letter it represents via blankAs; for any other tile blankAs is ignored.
// Placed tiles stay movable until the turn ends and LockAll runs.
func (b *GameBoard) PlaceTile(row, col int, t tiles.Tile, blankAs string) error {
	if !inBounds(row, col) {
		return ErrOffBoard
	}
	sq := b.Squares[row][col]
	if sq.HasTile {
		return ErrSquareOccupied
	}
	letter := t.Letter
	if t.IsBlank() {
		if blankAs == "" {
			return ErrBlankUnset
		}
		letter = blankAs
	}
	sq.TileID = t.ID
	sq.HasTile = true
	sq.Tradeable = t.Tradeable
	sq.LockedIn = false
	sq.Letter = letter
	sq.Points = t.Points
	sq.WordModifierExhausted = false
	b.Squares[row][col] = sq
	return nil
}

// RemoveTile takes an unlocked tile off the board and rebuilds it as a rack
// tile. The square reverts to a fresh empty square of its modifier type.
func (b *GameBoard) RemoveTile(row, col int) (tiles.Tile, error) {
	if !inBounds(row, col) {
		return tiles.Tile{}, ErrOffBoard
	}
	sq := b.Squares[row][col]
	if !sq.HasTile {
		return tiles.Tile{}, ErrSquareEmpty
	}
	if sq.LockedIn {
		return tiles.Tile{}, ErrSquareLocked
	}
	t := tiles.Tile{
		ID:        sq.TileID,
		Letter:    sq.Letter,
		Points:    sq.Points,
		Tradeable: sq.Tradeable,
	}
	if t.Points == 0 && sq.TileID != NoTile {
		// A zero-point tile is a blank; it goes back to the rack unassigned.
		t.Letter = tiles.Blank
	}
	b.Squares[row][col] = emptySquare(sq.Type)
	return t, nil
}

// LockAll marks every placed tile immovable. Runs on every turn transition.
func (b *GameBoard) LockAll() {
	for row := 0; row < Dim; row++ {
		for col := 0; col < Dim; col++ {
			if b.Squares[row][col].HasTile {
				b.Squares[row][col].LockedIn = true
			}
		}
	}
}

// ExhaustWordModifier consumes the word modifier at the given coordinates.
// Idempotent; the flag never resets while the tile remains placed.
func (b *GameBoard) ExhaustWordModifier(row, col int) {
	b.Squares[row][col].WordModifierExhausted = true
}

// Copy returns a deep copy of the board.
func (b *GameBoard) Copy() *GameBoard {
	cp := *b
	return &cp
}

// ToDisplayText returns a plaintext rendering of the board, for logs and
// debugging.
func (b *GameBoard) ToDisplayText() string {
	var sb strings.Builder
	sb.WriteString("   ")
	for i := 0; i < Dim; i++ {
		fmt.Fprintf(&sb, "%c ", 'A'+i)
	}
	sb.WriteString("\n   " + strings.Repeat("-", Dim*2) + "\n")
	for row := 0; row < Dim; row++ {
		fmt.Fprintf(&sb, "%2d|", row+1)
		for col := 0; col < Dim; col++ {
			sq := b.Squares[row][col]
			if sq.HasTile {
				sb.WriteString(sq.Letter + " ")
			} else if sq.Type == None {
				sb.WriteString("  ")
			} else {
				sb.WriteString(string(sq.Type[0]) + " ")
			}
		}
		sb.WriteString("|\n")
	}
	sb.WriteString("   " + strings.Repeat("-", Dim*2) + "\n")
	return sb.String()
}
