package tiles

import (
	"fmt"

	"lukechampine.com/frand"
)

// A Tile is a single physical tile. The identifier is unique within a game
// and is assigned once, at bag creation time.
type Tile struct {
	ID        int    `json:"identifier"`
	Letter    string `json:"letter"`
	Points    int    `json:"letterPointValue"`
	Tradeable bool   `json:"tradeable"`
	Selected  bool   `json:"selected"`
}

// IsBlank reports whether the tile is a blank.
func (t Tile) IsBlank() bool {
	return t.Letter == Blank
}

// A Bag is the bag o'tiles. It shrinks on draws and only regrows when a
// traded tile is put back.
type Bag struct {
	tiles []Tile
}

// NewBag builds a full bag from the given distribution. Identifiers are
// assigned 0..n-1 in table-traversal order; the draw itself is what is
// random, not the identifiers.
func NewBag(ld *LetterDistribution) *Bag {
	ts := make([]Tile, 0, SetSize)
	id := 0
	for _, g := range ld.groups {
		for _, spec := range g.letters {
			for i := 0; i < g.count; i++ {
				ts = append(ts, Tile{
					ID:        id,
					Letter:    spec.letter,
					Points:    spec.points,
					Tradeable: true,
				})
				id++
			}
		}
	}
	return &Bag{tiles: ts}
}

// NewBagFromTiles builds a bag holding exactly the given tiles. Used when a
// peer reconstructs bag state from a snapshot.
func NewBagFromTiles(ts []Tile) *Bag {
	cp := make([]Tile, len(ts))
	copy(cp, ts)
	return &Bag{tiles: cp}
}

// Draw draws n random tiles from the bag.
func (b *Bag) Draw(n int) ([]Tile, error) {
	if n < 0 {
		return nil, fmt.Errorf("tried to draw %v tiles", n)
	}
	if n > len(b.tiles) {
		return nil, fmt.Errorf("tried to draw %v tiles, tile bag has %v",
			n, len(b.tiles))
	}
	drawn := make([]Tile, n)
	for i := 0; i < n; i++ {
		idx := frand.Intn(len(b.tiles))
		drawn[i] = b.tiles[idx]
		b.tiles[idx] = b.tiles[len(b.tiles)-1]
		b.tiles = b.tiles[:len(b.tiles)-1]
	}
	return drawn, nil
}

// DrawAtMost draws at most n tiles. It can draw fewer if fewer remain, and
// even no tiles at all.
func (b *Bag) DrawAtMost(n int) []Tile {
	if n < 0 {
		return nil
	}
	if n > len(b.tiles) {
		n = len(b.tiles)
	}
	drawn, _ := b.Draw(n)
	return drawn
}

// PutBack returns tiles to the bag (the trade-return path).
func (b *Bag) PutBack(ts ...Tile) {
	b.tiles = append(b.tiles, ts...)
}

// TilesRemaining returns the number of undrawn tiles.
func (b *Bag) TilesRemaining() int {
	return len(b.tiles)
}

// Tiles returns a copy of the remaining tiles, for snapshotting.
func (b *Bag) Tiles() []Tile {
	cp := make([]Tile, len(b.tiles))
	copy(cp, b.tiles)
	return cp
}
