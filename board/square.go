package board

// SquareType marks the score modifier printed on a board square.
type SquareType string

const (
	None         SquareType = ""
	DoubleLetter SquareType = "dl"
	TripleLetter SquareType = "tl"
	DoubleWord   SquareType = "dw"
	TripleWord   SquareType = "tw"
	// Center is the starting square. It scores as a double-word square.
	Center SquareType = "center"
)

// NoTile is the tile identifier of an empty square.
const NoTile = -1

// A Square is a single square on the board: its modifier type and, when
// occupied, the data of the tile sitting on it.
//
// Invariant: HasTile is true exactly when Letter is non-empty.
// WordModifierExhausted is monotonic while a tile remains placed: once the
// square's word modifier has been consumed it stays consumed.
type Square struct {
	TileID                int        `json:"tileIdentifier"`
	HasTile               bool       `json:"hasTile"`
	Tradeable             bool       `json:"tradeable"`
	LockedIn              bool       `json:"lockedIn"`
	Type                  SquareType `json:"squareType"`
	Letter                string     `json:"letter"`
	Points                int        `json:"letterPointValue"`
	WordModifierExhausted bool       `json:"wordModifierExhausted"`
}

// IsEmpty reports whether no tile sits on the square.
func (s Square) IsEmpty() bool {
	return !s.HasTile
}

// LetterMultiplier returns the letter-score multiplier for this square.
func (s Square) LetterMultiplier() int {
	switch s.Type {
	case DoubleLetter:
		return 2
	case TripleLetter:
		return 3
	}
	return 1
}

// WordMultiplier returns the word-score multiplier this square contributes,
// ignoring exhaustion. Squares without a word modifier return 1.
func (s Square) WordMultiplier() int {
	switch s.Type {
	case DoubleWord, Center:
		return 2
	case TripleWord:
		return 3
	}
	return 1
}

// emptySquare returns a fresh unoccupied square of the given type.
func emptySquare(st SquareType) Square {
	return Square{TileID: NoTile, Type: st}
}
