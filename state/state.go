// Package state implements the replicated game-state contract: one global
// state shared by every peer, one private local state per connection, and
// change-detecting subscriptions over individual slices of either.
package state

import (
	"github.com/domino14/tilewire/board"
	"github.com/domino14/tilewire/game"
	"github.com/domino14/tilewire/tiles"
	"github.com/domino14/tilewire/words"
)

// GameState is the replicated global state. The server is the single writer;
// it stamps every accepted revision with a monotonically increasing version,
// and peers discard snapshots at or below the version they already hold.
type GameState struct {
	Version        uint64           `json:"version"`
	GameID         string           `json:"gameId"`
	CurrentPlayers []game.Player    `json:"currentPlayers"`
	TileBag        []tiles.Tile     `json:"tileBag"`
	BoardState     *board.GameBoard `json:"boardState"`
	GameStarted    bool             `json:"gameStarted"`
	PlayerTurn     string           `json:"playerTurn"`
	WordsRegistry  *words.Registry  `json:"currentWordsRegistry"`
}

// LocalState is one connection's private state. It is never broadcast.
type LocalState struct {
	PlayerID string       `json:"playerId"`
	Tiles    []tiles.Tile `json:"tiles"`
}

// GlobalDelta is a partial global state; nil fields are left untouched by a
// merge.
type GlobalDelta struct {
	Version        *uint64
	GameID         *string
	CurrentPlayers *[]game.Player
	TileBag        *[]tiles.Tile
	BoardState     *board.GameBoard
	GameStarted    *bool
	PlayerTurn     *string
	WordsRegistry  *words.Registry
}

// LocalDelta is a partial local state.
type LocalDelta struct {
	PlayerID *string
	Tiles    *[]tiles.Tile
}

// copyState deep-copies a GameState so stored state never shares mutable
// sub-structures with callers. Value change detection depends on this.
func copyState(gs GameState) GameState {
	cp := gs
	cp.CurrentPlayers = append([]game.Player(nil), gs.CurrentPlayers...)
	cp.TileBag = append([]tiles.Tile(nil), gs.TileBag...)
	if gs.BoardState != nil {
		cp.BoardState = gs.BoardState.Copy()
	}
	if gs.WordsRegistry != nil {
		cp.WordsRegistry = gs.WordsRegistry.Copy()
	}
	return cp
}

func copyLocal(ls LocalState) LocalState {
	cp := ls
	cp.Tiles = append([]tiles.Tile(nil), ls.Tiles...)
	return cp
}
