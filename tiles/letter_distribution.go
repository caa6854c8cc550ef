// Package tiles implements the tile set for a crossword board game: the
// letter distribution, the shared bag of undrawn tiles, and per-player racks.
package tiles

// Blank is the letter carried by a blank tile. A blank is worth zero points
// and must be assigned a represented letter when it is placed on the board.
const Blank = "_"

// SetSize is the number of tiles in a standard set.
const SetSize = 100

type letterSpec struct {
	letter string
	points int
}

// tileGroup associates a per-letter tile count with every letter that has
// that count in the set.
type tileGroup struct {
	count   int
	letters []letterSpec
}

// LetterDistribution encodes the tile distribution for a game. Groups are
// ordered; tile identifiers are assigned by walking the table in order, so
// the same table always yields the same identifier for the same physical
// tile.
type LetterDistribution struct {
	groups []tileGroup
}

// EnglishLetterDistribution returns the standard 100-tile English set,
// including two blanks.
func EnglishLetterDistribution() *LetterDistribution {
	return &LetterDistribution{groups: []tileGroup{
		{1, []letterSpec{{"J", 8}, {"K", 5}, {"Q", 10}, {"X", 8}, {"Z", 10}}},
		{2, []letterSpec{{Blank, 0}, {"B", 3}, {"C", 3}, {"F", 4}, {"H", 4},
			{"M", 3}, {"P", 3}, {"V", 4}, {"W", 4}, {"Y", 4}}},
		{3, []letterSpec{{"G", 2}}},
		{4, []letterSpec{{"D", 2}, {"L", 1}, {"S", 1}, {"U", 1}}},
		{6, []letterSpec{{"N", 1}, {"R", 1}, {"T", 1}}},
		{8, []letterSpec{{"O", 1}}},
		{9, []letterSpec{{"A", 1}, {"I", 1}}},
		{12, []letterSpec{{"E", 1}}},
	}}
}

// PointValue returns the point value for a letter in this distribution, or
// zero if the letter is not part of the set.
func (ld *LetterDistribution) PointValue(letter string) int {
	for _, g := range ld.groups {
		for _, spec := range g.letters {
			if spec.letter == letter {
				return spec.points
			}
		}
	}
	return 0
}

// Counts returns a map of letter to the number of tiles bearing that letter.
func (ld *LetterDistribution) Counts() map[string]int {
	counts := make(map[string]int)
	for _, g := range ld.groups {
		for _, spec := range g.letters {
			counts[spec.letter] = g.count
		}
	}
	return counts
}
