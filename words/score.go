package words

import (
	"github.com/rs/zerolog/log"

	"github.com/domino14/tilewire/board"
)

// RackClearBonus is the flat bonus for playing out an entire seven-tile
// rack in one turn.
const RackClearBonus = 50

// Score computes the point total for the newly scorable words of a turn.
//
// Letter scores are multiplied by their square's letter modifier. Word
// modifiers (double-word, triple-word, center) apply multiplicatively to a
// word's subtotal, and each is consumed the first time any word crosses it:
// Score marks the modifier exhausted on the board as a side effect, so a
// square doubles or triples at most one word over the whole game. Callers
// persist the mutated board before broadcasting.
func Score(newly []FoundWord, b *board.GameBoard) int {
	total := 0
	for _, fw := range newly {
		wordScore := 0
		var wordMultipliers []int
		for _, p := range fw.Squares {
			// Read the live square: an earlier word this turn may have
			// consumed this square's modifier already.
			sq := b.SquareAt(p.Row, p.Col)
			wordScore += sq.Points * sq.LetterMultiplier()
			if mult := sq.WordMultiplier(); mult > 1 && !sq.WordModifierExhausted {
				wordMultipliers = append(wordMultipliers, mult)
				b.ExhaustWordModifier(p.Row, p.Col)
			}
		}
		for _, mult := range wordMultipliers {
			wordScore *= mult
		}
		log.Debug().Str("word", fw.Word).Int("score", wordScore).Msg("scored word")
		total += wordScore
	}
	return total
}
