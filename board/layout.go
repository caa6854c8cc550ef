package board

var (
	// CrosswordGameLayout is the standard 15x15 bonus-square layout.
	// ' is a double letter, " a triple letter, - a double word, = a triple
	// word, and * the center square.
	CrosswordGameLayout []string
)

func init() {
	CrosswordGameLayout = []string{
		`=  '   =   '  =`,
		` -   "   "   - `,
		`  -   ' '   -  `,
		`'  -   '   -  '`,
		`    -     -    `,
		` "   "   "   " `,
		`  '   ' '   '  `,
		`=  '   *   '  =`,
		`  '   ' '   '  `,
		` "   "   "   " `,
		`    -     -    `,
		`'  -   '   -  '`,
		`  -   ' '   -  `,
		` -   "   "   - `,
		`=  '   =   '  =`,
	}
}

func squareTypeForRune(c rune) SquareType {
	switch c {
	case '\'':
		return DoubleLetter
	case '"':
		return TripleLetter
	case '-':
		return DoubleWord
	case '=':
		return TripleWord
	case '*':
		return Center
	}
	return None
}
