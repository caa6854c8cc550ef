package state

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/tilewire/board"
	"github.com/domino14/tilewire/game"
	"github.com/domino14/tilewire/tiles"
	"github.com/domino14/tilewire/words"
)

// ErrStaleRevision reports an inbound snapshot at or below the version the
// store already holds. The store keeps its current state.
var ErrStaleRevision = errors.New("stale game state revision")

// A Publisher sends the full global state to every peer. A nil publisher
// makes the store purely local.
type Publisher func(GameState) error

// A Store holds one process's view of a game: the replicated global state
// and this connection's private local state. Global mutations republish the
// full resulting state through the publisher; subscriptions fire only when
// the subscribed slice's value actually changes, compared by deep equality
// rather than identity.
type Store struct {
	mu      sync.RWMutex
	global  GameState
	local   LocalState
	publish Publisher

	globalSubs []func(prev, next GameState)
	localSubs  []func(prev, next LocalState)
}

// NewStore creates a store. The publisher may be nil.
func NewStore(publish Publisher) *Store {
	return &Store{publish: publish}
}

// Global returns a deep copy of the current global state.
func (s *Store) Global() GameState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyState(s.global)
}

// Local returns a deep copy of this connection's local state.
func (s *Store) Local() LocalState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyLocal(s.local)
}

// ApplyGlobalDelta shallow-merges the delta's non-nil fields into the
// global state and republishes the full resulting state to all peers.
func (s *Store) ApplyGlobalDelta(delta GlobalDelta) error {
	s.mu.Lock()
	prev := s.global
	merged := copyState(s.global)
	if delta.Version != nil {
		merged.Version = *delta.Version
	}
	if delta.GameID != nil {
		merged.GameID = *delta.GameID
	}
	if delta.CurrentPlayers != nil {
		merged.CurrentPlayers = append([]game.Player(nil), (*delta.CurrentPlayers)...)
	}
	if delta.TileBag != nil {
		merged.TileBag = append([]tiles.Tile(nil), (*delta.TileBag)...)
	}
	if delta.BoardState != nil {
		merged.BoardState = delta.BoardState.Copy()
	}
	if delta.GameStarted != nil {
		merged.GameStarted = *delta.GameStarted
	}
	if delta.PlayerTurn != nil {
		merged.PlayerTurn = *delta.PlayerTurn
	}
	if delta.WordsRegistry != nil {
		merged.WordsRegistry = delta.WordsRegistry.Copy()
	}
	s.global = merged
	subs := s.globalSubs
	s.mu.Unlock()

	for _, notify := range subs {
		notify(prev, merged)
	}
	return s.republish(merged)
}

// ApplyGlobal replaces the whole global state with an inbound snapshot,
// atomically: subscribers only ever observe the state before or after, never
// a partially applied one. Snapshots that do not advance the version are
// dropped and the last good state is kept.
func (s *Store) ApplyGlobal(snapshot GameState) error {
	s.mu.Lock()
	if snapshot.Version <= s.global.Version && s.global.Version != 0 {
		held := s.global.Version
		s.mu.Unlock()
		return fmt.Errorf("%w: have %d, got %d", ErrStaleRevision, held, snapshot.Version)
	}
	prev := s.global
	applied := copyState(snapshot)
	s.global = applied
	subs := s.globalSubs
	s.mu.Unlock()

	for _, notify := range subs {
		notify(prev, applied)
	}
	return nil
}

// ApplyLocalDelta merges into this connection's private state. Local state
// is never broadcast.
func (s *Store) ApplyLocalDelta(delta LocalDelta) {
	s.mu.Lock()
	prev := s.local
	merged := copyLocal(s.local)
	if delta.PlayerID != nil {
		merged.PlayerID = *delta.PlayerID
	}
	if delta.Tiles != nil {
		merged.Tiles = append([]tiles.Tile(nil), (*delta.Tiles)...)
	}
	s.local = merged
	subs := s.localSubs
	s.mu.Unlock()

	for _, notify := range subs {
		notify(prev, merged)
	}
}

// AlterBoardStructure replaces one square by coordinate and immediately
// republishes the full global state. Square edits are never batched.
func (s *Store) AlterBoardStructure(row, col int, sq board.Square) error {
	s.mu.Lock()
	if s.global.BoardState == nil {
		s.mu.Unlock()
		return errors.New("no board in global state")
	}
	prev := s.global
	merged := copyState(s.global)
	if err := merged.BoardState.SetSquare(row, col, sq); err != nil {
		s.mu.Unlock()
		return err
	}
	s.global = merged
	subs := s.globalSubs
	s.mu.Unlock()

	for _, notify := range subs {
		notify(prev, merged)
	}
	return s.republish(merged)
}

func (s *Store) republish(gs GameState) error {
	if s.publish == nil {
		return nil
	}
	if err := s.publish(gs); err != nil {
		log.Error().Err(err).Str("gameID", gs.GameID).
			Msg("failed to publish global state")
		return err
	}
	return nil
}

// notify delivers v on ch without blocking; a slow subscriber misses
// intermediate values but always gets a later one.
func notify[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}

// SubscribeBoard yields the board whenever its value changes.
func (s *Store) SubscribeBoard() <-chan *board.GameBoard {
	ch := make(chan *board.GameBoard, 8)
	s.addGlobalSub(func(prev, next GameState) {
		if !reflect.DeepEqual(prev.BoardState, next.BoardState) {
			notify(ch, next.BoardState)
		}
	})
	return ch
}

// SubscribeTileBag yields the shared bag contents whenever they change.
func (s *Store) SubscribeTileBag() <-chan []tiles.Tile {
	ch := make(chan []tiles.Tile, 8)
	s.addGlobalSub(func(prev, next GameState) {
		if !reflect.DeepEqual(prev.TileBag, next.TileBag) {
			notify(ch, next.TileBag)
		}
	})
	return ch
}

// SubscribePlayers yields the player list whenever it changes, including
// score updates.
func (s *Store) SubscribePlayers() <-chan []game.Player {
	ch := make(chan []game.Player, 8)
	s.addGlobalSub(func(prev, next GameState) {
		if !reflect.DeepEqual(prev.CurrentPlayers, next.CurrentPlayers) {
			notify(ch, next.CurrentPlayers)
		}
	})
	return ch
}

// SubscribeTurn yields the current player's id on turn changes.
func (s *Store) SubscribeTurn() <-chan string {
	ch := make(chan string, 8)
	s.addGlobalSub(func(prev, next GameState) {
		if prev.PlayerTurn != next.PlayerTurn {
			notify(ch, next.PlayerTurn)
		}
	})
	return ch
}

// SubscribeStarted yields gameStarted transitions.
func (s *Store) SubscribeStarted() <-chan bool {
	ch := make(chan bool, 8)
	s.addGlobalSub(func(prev, next GameState) {
		if prev.GameStarted != next.GameStarted {
			notify(ch, next.GameStarted)
		}
	})
	return ch
}

// SubscribeRegistry yields the words registry whenever it changes.
func (s *Store) SubscribeRegistry() <-chan *words.Registry {
	ch := make(chan *words.Registry, 8)
	s.addGlobalSub(func(prev, next GameState) {
		if !reflect.DeepEqual(prev.WordsRegistry, next.WordsRegistry) {
			notify(ch, next.WordsRegistry)
		}
	})
	return ch
}

// SubscribeLocalTiles yields this player's rack whenever it changes.
func (s *Store) SubscribeLocalTiles() <-chan []tiles.Tile {
	ch := make(chan []tiles.Tile, 8)
	s.addLocalSub(func(prev, next LocalState) {
		if !reflect.DeepEqual(prev.Tiles, next.Tiles) {
			notify(ch, next.Tiles)
		}
	})
	return ch
}

func (s *Store) addGlobalSub(f func(prev, next GameState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.globalSubs = append(s.globalSubs, f)
}

func (s *Store) addLocalSub(f func(prev, next LocalState)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.localSubs = append(s.localSubs, f)
}
