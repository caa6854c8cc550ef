// Package server hosts game rooms. The server is the single writer of global
// game state: clients emit request events, the server applies them to the
// room's game under its lock, stamps the result with the game's version, and
// broadcasts the full state back out.
package server

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/domino14/tilewire/config"
	"github.com/domino14/tilewire/game"
	"github.com/domino14/tilewire/realtime"
	"github.com/domino14/tilewire/tiles"
)

type Server struct {
	cfg *config.Config
	ch  realtime.Channel
	ld  *tiles.LetterDistribution

	mu    sync.Mutex
	rooms map[string]*Room
}

func NewServer(cfg *config.Config, ch realtime.Channel) *Server {
	return &Server{
		cfg:   cfg,
		ch:    ch,
		ld:    tiles.EnglishLetterDistribution(),
		rooms: make(map[string]*Room),
	}
}

// Run subscribes every request handler and blocks until the context is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	subs := []struct {
		event   string
		handler realtime.Handler
	}{
		{realtime.EvtCreateRoom, s.handleCreateRoom},
		{realtime.EvtJoinRoom, s.handleJoinRoom},
		{realtime.EvtStartGame, s.handleStartGame},
		{realtime.EvtDetermineFirstPlayer, s.handleDetermineFirstPlayer},
		{realtime.EvtStartTurn, s.handleStartTurn},
		{realtime.EvtDrawTiles, s.handleDrawTiles},
		{realtime.EvtTradeTiles, s.handleTradeTiles},
		{realtime.EvtReturnTile, s.handleReturnTile},
		{realtime.EvtUpdateStateFromClient, s.handleClientUpdate},
	}
	for _, sub := range subs {
		if err := s.ch.Subscribe(sub.event, sub.handler); err != nil {
			return err
		}
	}
	log.Info().Msg("server listening for game events")
	<-ctx.Done()
	return ctx.Err()
}

func (s *Server) room(gameID string) (*Room, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rooms[gameID]
	return r, ok
}

// createRoom allocates a room under a code no live room is using.
func (s *Server) createRoom() (string, *Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code := newRoomCode()
	for _, taken := s.rooms[code]; taken; _, taken = s.rooms[code] {
		code = newRoomCode()
	}
	r := newRoom(game.NewGame(code, s.ld))
	s.rooms[code] = r
	return code, r
}

// broadcast emits the full global state for a room and, when playerIDs are
// given, each of those players' private racks.
func (s *Server) broadcast(r *Room, gameID string, playerIDs ...string) {
	err := r.with(func(g *game.Game) error {
		snap := snapshot(g)
		if err := s.ch.Emit(realtime.EvtUpdateGlobalState, snap, gameID); err != nil {
			return err
		}
		for _, pid := range playerIDs {
			local, err := localSnapshot(g, pid)
			if err != nil {
				return err
			}
			if err := s.ch.Emit(realtime.EvtUpdateLocalState, local, gameID, pid); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("gameID", gameID).Msg("broadcast failed")
	}
}

// reject answers a player's request with an empty payload, the shared
// failure signal.
func (s *Server) reject(event, playerID string) {
	if err := s.ch.Emit(event, nil, playerID); err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to send rejection")
	}
}
