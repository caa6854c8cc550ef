package tiles

import "fmt"

// RackTileLimit is the maximum number of tiles on a player's rack.
const RackTileLimit = 7

// A Rack is one player's private set of tiles. It is never part of the
// replicated global state.
type Rack struct {
	tiles []Tile
}

// NewRack returns an empty rack.
func NewRack() *Rack {
	return &Rack{}
}

// Add places tiles on the rack. It errors if the rack would exceed the
// tile limit.
func (r *Rack) Add(ts ...Tile) error {
	if len(r.tiles)+len(ts) > RackTileLimit {
		return fmt.Errorf("rack can hold %d tiles; has %d, adding %d",
			RackTileLimit, len(r.tiles), len(ts))
	}
	r.tiles = append(r.tiles, ts...)
	return nil
}

// Remove takes the tile with the given identifier off the rack.
func (r *Rack) Remove(id int) (Tile, error) {
	for i, t := range r.tiles {
		if t.ID == id {
			r.tiles = append(r.tiles[:i], r.tiles[i+1:]...)
			return t, nil
		}
	}
	return Tile{}, fmt.Errorf("tile %d is not on the rack", id)
}

// Find returns the tile with the given identifier without removing it.
func (r *Rack) Find(id int) (Tile, bool) {
	for _, t := range r.tiles {
		if t.ID == id {
			return t, true
		}
	}
	return Tile{}, false
}

// SetAllTradeable flips the tradeable flag on every rack tile. Called when
// the rack owner's turn begins, lifting the trade cooldown.
func (r *Rack) SetAllTradeable(tradeable bool) {
	for i := range r.tiles {
		r.tiles[i].Tradeable = tradeable
	}
}

// Tiles returns a copy of the rack contents.
func (r *Rack) Tiles() []Tile {
	cp := make([]Tile, len(r.tiles))
	copy(cp, r.tiles)
	return cp
}

// Len returns the number of tiles on the rack.
func (r *Rack) Len() int {
	return len(r.tiles)
}
