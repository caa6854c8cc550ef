package server

import (
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/domino14/tilewire/game"
	"github.com/domino14/tilewire/realtime"
)

// Request payloads. Field names match the wire format clients already speak.
type roomRequest struct {
	GameID     string `json:"gameId"`
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
}

type turnRequest struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}

type drawRequest struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
	Count    int    `json:"count"`
}

type tileRequest struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
	TileID   int    `json:"tileIdentifier"`
}

type boardEditRequest struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
	Action   string `json:"action"` // "place" or "pickup"
	Row      int    `json:"row"`
	Col      int    `json:"col"`
	TileID   int    `json:"tileIdentifier"`
	BlankAs  string `json:"blankAs,omitempty"`
}

type roomReply struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}

type turnNotice struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}

// validBlankLetter reports whether s can be the letter a blank represents:
// exactly one uppercase A-Z character.
func validBlankLetter(s string) bool {
	return len(s) == 1 && s[0] >= 'A' && s[0] <= 'Z'
}

func decode[T any](payload []byte, event string) (T, bool) {
	var req T
	if err := json.Unmarshal(payload, &req); err != nil {
		log.Warn().Err(err).Str("event", event).Msg("bad request payload")
		return req, false
	}
	return req, true
}

func (s *Server) handleCreateRoom(payload []byte) {
	req, ok := decode[roomRequest](payload, realtime.EvtCreateRoom)
	if !ok {
		return
	}
	name, ok := validateName(req.PlayerName)
	if !ok || req.PlayerID == "" {
		s.reject(realtime.EvtGameIDChecked, req.PlayerID)
		return
	}
	gameID, r := s.createRoom()
	err := r.with(func(g *game.Game) error {
		return g.AddPlayer(req.PlayerID, name)
	})
	if err != nil {
		s.reject(realtime.EvtGameIDChecked, req.PlayerID)
		return
	}
	log.Info().Str("gameID", gameID).Str("playerID", req.PlayerID).Msg("room created")
	if err := s.ch.Emit(realtime.EvtGameIDChecked,
		roomReply{GameID: gameID, PlayerID: req.PlayerID}, req.PlayerID); err != nil {
		log.Error().Err(err).Msg("failed to confirm room creation")
	}
	s.broadcast(r, gameID, req.PlayerID)
}

func (s *Server) handleJoinRoom(payload []byte) {
	req, ok := decode[roomRequest](payload, realtime.EvtJoinRoom)
	if !ok {
		return
	}
	name, ok := validateName(req.PlayerName)
	if !ok || req.PlayerID == "" {
		s.reject(realtime.EvtGameIDChecked, req.PlayerID)
		return
	}
	r, ok := s.room(req.GameID)
	if !ok {
		s.reject(realtime.EvtGameIDChecked, req.PlayerID)
		return
	}
	err := r.with(func(g *game.Game) error {
		if len(g.Players()) >= s.cfg.MaxPlayers {
			return errors.New("room is full")
		}
		return g.AddPlayer(req.PlayerID, name)
	})
	if err != nil {
		log.Warn().Err(err).Str("gameID", req.GameID).
			Str("playerID", req.PlayerID).Msg("join refused")
		s.reject(realtime.EvtGameIDChecked, req.PlayerID)
		return
	}
	if err := s.ch.Emit(realtime.EvtGameIDChecked,
		roomReply{GameID: req.GameID, PlayerID: req.PlayerID}, req.PlayerID); err != nil {
		log.Error().Err(err).Msg("failed to confirm join")
	}
	s.broadcast(r, req.GameID, req.PlayerID)
}

func (s *Server) handleStartGame(payload []byte) {
	req, ok := decode[turnRequest](payload, realtime.EvtStartGame)
	if !ok {
		return
	}
	r, found := s.room(req.GameID)
	if !found {
		return
	}
	var playerIDs []string
	err := r.with(func(g *game.Game) error {
		if err := g.Start(); err != nil {
			return err
		}
		for _, p := range g.Players() {
			playerIDs = append(playerIDs, p.ID)
		}
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("gameID", req.GameID).Msg("start refused")
		return
	}
	s.broadcast(r, req.GameID, playerIDs...)
}

func (s *Server) handleDetermineFirstPlayer(payload []byte) {
	req, ok := decode[turnRequest](payload, realtime.EvtDetermineFirstPlayer)
	if !ok {
		return
	}
	r, found := s.room(req.GameID)
	if !found {
		return
	}
	var first string
	err := r.with(func(g *game.Game) error {
		var err error
		first, err = g.DetermineFirstPlayer()
		return err
	})
	if err != nil {
		log.Warn().Err(err).Str("gameID", req.GameID).Msg("could not pick first player")
		return
	}
	if err := s.ch.Emit(realtime.EvtDetermineFirstPlayer,
		turnNotice{GameID: req.GameID, PlayerID: first}, req.GameID); err != nil {
		log.Error().Err(err).Msg("failed to announce first player")
	}
	s.broadcast(r, req.GameID)
}

// handleStartTurn finishes the emitting player's turn: their words are
// scored and locked in, the turn passes, and the next player's rack is
// refilled. The start-turn notice carries the id of the player now up.
func (s *Server) handleStartTurn(payload []byte) {
	req, ok := decode[turnRequest](payload, realtime.EvtStartTurn)
	if !ok {
		return
	}
	r, found := s.room(req.GameID)
	if !found {
		return
	}
	var next string
	err := r.with(func(g *game.Game) error {
		if _, err := g.EndTurn(req.PlayerID); err != nil {
			return err
		}
		next = g.PlayerTurn()
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("gameID", req.GameID).
			Str("playerID", req.PlayerID).Msg("turn end refused")
		return
	}
	if err := s.ch.Emit(realtime.EvtStartTurn,
		turnNotice{GameID: req.GameID, PlayerID: next}, req.GameID); err != nil {
		log.Error().Err(err).Msg("failed to announce next turn")
	}
	s.broadcast(r, req.GameID, req.PlayerID, next)
}

func (s *Server) handleDrawTiles(payload []byte) {
	req, ok := decode[drawRequest](payload, realtime.EvtDrawTiles)
	if !ok {
		return
	}
	r, found := s.room(req.GameID)
	if !found {
		return
	}
	err := r.with(func(g *game.Game) error {
		_, err := g.DrawTiles(req.PlayerID, req.Count)
		return err
	})
	if err != nil {
		log.Warn().Err(err).Str("gameID", req.GameID).Msg("draw refused")
		return
	}
	s.broadcast(r, req.GameID, req.PlayerID)
}

func (s *Server) handleTradeTiles(payload []byte) {
	req, ok := decode[turnRequest](payload, realtime.EvtTradeTiles)
	if !ok {
		return
	}
	r, found := s.room(req.GameID)
	if !found {
		return
	}
	err := r.with(func(g *game.Game) error {
		_, err := g.TradeTiles(req.PlayerID)
		return err
	})
	if err != nil {
		log.Warn().Err(err).Str("gameID", req.GameID).Msg("trade refused")
		return
	}
	s.broadcast(r, req.GameID, req.PlayerID)
}

func (s *Server) handleReturnTile(payload []byte) {
	req, ok := decode[tileRequest](payload, realtime.EvtReturnTile)
	if !ok {
		return
	}
	r, found := s.room(req.GameID)
	if !found {
		return
	}
	err := r.with(func(g *game.Game) error {
		return g.ReturnTile(req.PlayerID, req.TileID)
	})
	if err != nil {
		log.Warn().Err(err).Str("gameID", req.GameID).Msg("return refused")
		return
	}
	s.broadcast(r, req.GameID, req.PlayerID)
}

// handleClientUpdate applies a single board edit. Edits are only accepted
// from the player whose turn it is; the game enforces that.
func (s *Server) handleClientUpdate(payload []byte) {
	req, ok := decode[boardEditRequest](payload, realtime.EvtUpdateStateFromClient)
	if !ok {
		return
	}
	r, found := s.room(req.GameID)
	if !found {
		return
	}
	if req.BlankAs != "" && !validBlankLetter(req.BlankAs) {
		log.Warn().Str("gameID", req.GameID).Str("blankAs", req.BlankAs).
			Msg("bad blank letter")
		return
	}
	err := r.with(func(g *game.Game) error {
		switch req.Action {
		case "place":
			return g.PlaceTile(req.PlayerID, req.Row, req.Col, req.TileID, req.BlankAs)
		case "pickup":
			return g.PickUpTile(req.PlayerID, req.Row, req.Col)
		default:
			return errors.New("unknown board action: " + req.Action)
		}
	})
	if err != nil {
		log.Warn().Err(err).Str("gameID", req.GameID).
			Str("playerID", req.PlayerID).Msg("board edit refused")
		return
	}
	s.broadcast(r, req.GameID, req.PlayerID)
}
