package words

import (
	"sort"

	"github.com/samber/lo"
)

// An Occurrence is one concrete instance of a word at a specific set of
// board squares. The tile identifier set is what distinguishes occurrences:
// the same word re-formed with at least one different tile is a new
// occurrence, the same tiles re-detected are not.
type Occurrence struct {
	TileIDs []int       `json:"tileIdentifiers"` // sorted
	Squares []Placement `json:"squares"`
}

// A Registry accumulates every word occurrence scored over a game. It is
// append-only: occurrences are never removed, only ignored when detected
// again.
type Registry struct {
	Entries map[string][]Occurrence `json:"entries"`
}

func NewRegistry() *Registry {
	return &Registry{Entries: make(map[string][]Occurrence)}
}

// Update registers the words detected this turn and returns the subset that
// is newly scorable: words with no registered occurrence (including earlier
// in this same batch, which covers the same run scanned on both axes)
// holding an identical set of tile identifiers.
func (r *Registry) Update(found []FoundWord) []FoundWord {
	var newly []FoundWord
	for _, fw := range found {
		ids := tileIDSet(fw)
		if r.registered(fw.Word, ids) {
			continue
		}
		r.Entries[fw.Word] = append(r.Entries[fw.Word], Occurrence{
			TileIDs: ids,
			Squares: fw.Squares,
		})
		newly = append(newly, fw)
	}
	return newly
}

func (r *Registry) registered(word string, ids []int) bool {
	for _, occ := range r.Entries[word] {
		if equalIDSets(occ.TileIDs, ids) {
			return true
		}
	}
	return false
}

// Copy returns a deep copy, for snapshotting into the replicated state.
func (r *Registry) Copy() *Registry {
	cp := NewRegistry()
	for word, occs := range r.Entries {
		copied := make([]Occurrence, len(occs))
		for i, occ := range occs {
			copied[i] = Occurrence{
				TileIDs: append([]int(nil), occ.TileIDs...),
				Squares: append([]Placement(nil), occ.Squares...),
			}
		}
		cp.Entries[word] = copied
	}
	return cp
}

func tileIDSet(fw FoundWord) []int {
	ids := lo.Map(fw.Squares, func(p Placement, _ int) int {
		return p.Square.TileID
	})
	sort.Ints(ids)
	return ids
}

func equalIDSets(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
