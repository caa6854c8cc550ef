package server

import (
	"strings"
	"sync"

	"lukechampine.com/frand"

	"github.com/domino14/tilewire/game"
	"github.com/domino14/tilewire/state"
	"github.com/domino14/tilewire/tiles"
)

// MaxNameLength is the longest display name a player may register with.
const MaxNameLength = 12

const roomCodeLength = 4

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// A Room wraps one game. All mutations go through the room's lock, so turn
// handling is serialized per game no matter how events interleave on the
// wire.
type Room struct {
	mu   sync.Mutex
	game *game.Game
}

func newRoom(g *game.Game) *Room {
	return &Room{game: g}
}

// with runs f while holding the room lock.
func (r *Room) with(f func(g *game.Game) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return f(r.game)
}

// snapshot composes the full replicated state from the game. The caller must
// hold the room lock; handlers get one via with.
func snapshot(g *game.Game) state.GameState {
	return state.GameState{
		Version:        g.Version(),
		GameID:         g.ID(),
		CurrentPlayers: g.Players(),
		TileBag:        g.Bag().Tiles(),
		BoardState:     g.Board().Copy(),
		GameStarted:    g.Started(),
		PlayerTurn:     g.PlayerTurn(),
		WordsRegistry:  g.Registry().Copy(),
	}
}

func localSnapshot(g *game.Game, playerID string) (state.LocalState, error) {
	ts, err := g.RackTiles(playerID)
	if err != nil {
		return state.LocalState{}, err
	}
	if ts == nil {
		ts = []tiles.Tile{}
	}
	return state.LocalState{PlayerID: playerID, Tiles: ts}, nil
}

// newRoomCode generates a short uppercase code players type to join.
func newRoomCode() string {
	var b strings.Builder
	for i := 0; i < roomCodeLength; i++ {
		b.WriteByte(codeAlphabet[frand.Intn(len(codeAlphabet))])
	}
	return b.String()
}

// validateName normalizes and checks a display name.
func validateName(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > MaxNameLength {
		return "", false
	}
	return name, true
}
