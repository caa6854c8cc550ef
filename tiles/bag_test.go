package tiles

import (
	"testing"

	"github.com/matryer/is"
)

func TestBagComposition(t *testing.T) {
	is := is.New(t)
	ld := EnglishLetterDistribution()
	bag := NewBag(ld)
	is.Equal(bag.TilesRemaining(), SetSize)

	seen := make(map[int]bool)
	counts := make(map[string]int)
	for _, tile := range bag.Tiles() {
		is.True(tile.ID >= 0 && tile.ID < SetSize)
		is.True(!seen[tile.ID]) // identifiers must be unique
		seen[tile.ID] = true
		counts[tile.Letter]++
	}
	is.Equal(counts, ld.Counts())
	is.Equal(counts["E"], 12)
	is.Equal(counts["Q"], 1)
	is.Equal(counts[Blank], 2)
}

func TestBagDeterministicIdentifiers(t *testing.T) {
	is := is.New(t)
	ld := EnglishLetterDistribution()
	a := NewBag(ld)
	b := NewBag(ld)
	is.Equal(a.Tiles(), b.Tiles())
	// Table traversal starts with the count-1 group: J, K, Q, X, Z.
	is.Equal(a.Tiles()[0].Letter, "J")
	is.Equal(a.Tiles()[4].Letter, "Z")
	is.Equal(a.Tiles()[4].ID, 4)
}

func TestBagPointValues(t *testing.T) {
	is := is.New(t)
	ld := EnglishLetterDistribution()
	for _, tile := range NewBag(ld).Tiles() {
		is.Equal(tile.Points, ld.PointValue(tile.Letter))
	}
	is.Equal(ld.PointValue("Q"), 10)
	is.Equal(ld.PointValue(Blank), 0)
}

func TestDraw(t *testing.T) {
	is := is.New(t)
	bag := NewBag(EnglishLetterDistribution())
	drawn, err := bag.Draw(7)
	is.NoErr(err)
	is.Equal(len(drawn), 7)
	is.Equal(bag.TilesRemaining(), 93)

	_, err = bag.Draw(94)
	is.True(err != nil)
}

func TestDrawAtMost(t *testing.T) {
	is := is.New(t)
	bag := NewBag(EnglishLetterDistribution())
	for i := 0; i < 14; i++ {
		bag.DrawAtMost(7)
	}
	is.Equal(bag.TilesRemaining(), 2)
	drawn := bag.DrawAtMost(7)
	is.Equal(len(drawn), 2)
	is.Equal(bag.TilesRemaining(), 0)
	is.Equal(len(bag.DrawAtMost(7)), 0)
}

func TestDrawNegativeCount(t *testing.T) {
	is := is.New(t)
	bag := NewBag(EnglishLetterDistribution())

	_, err := bag.Draw(-1)
	is.True(err != nil)
	is.Equal(bag.TilesRemaining(), SetSize)

	is.Equal(len(bag.DrawAtMost(-1)), 0)
	is.Equal(bag.TilesRemaining(), SetSize)
}

func TestPutBack(t *testing.T) {
	is := is.New(t)
	bag := NewBag(EnglishLetterDistribution())
	drawn, err := bag.Draw(3)
	is.NoErr(err)
	bag.PutBack(drawn...)
	is.Equal(bag.TilesRemaining(), SetSize)
}

func TestRack(t *testing.T) {
	is := is.New(t)
	bag := NewBag(EnglishLetterDistribution())
	rack := NewRack()
	drawn, err := bag.Draw(7)
	is.NoErr(err)
	is.NoErr(rack.Add(drawn...))
	is.Equal(rack.Len(), 7)

	err = rack.Add(Tile{ID: 200})
	is.True(err != nil) // over the rack limit

	removed, err := rack.Remove(drawn[2].ID)
	is.NoErr(err)
	is.Equal(removed.ID, drawn[2].ID)
	is.Equal(rack.Len(), 6)

	_, err = rack.Remove(drawn[2].ID)
	is.True(err != nil)

	rack.SetAllTradeable(false)
	for _, tile := range rack.Tiles() {
		is.True(!tile.Tradeable)
	}
}
