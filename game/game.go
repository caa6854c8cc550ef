// Package game holds the authoritative engine for one game: the players and
// their racks, the bag, the board, the words registry, and the turn cycle.
// It has no knowledge of transport; the server feeds it player actions and
// snapshots its state for broadcast.
package game

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/domino14/tilewire/board"
	"github.com/domino14/tilewire/tiles"
	"github.com/domino14/tilewire/words"
)

var (
	ErrGameStarted      = errors.New("game already started")
	ErrGameNotStarted   = errors.New("game has not started")
	ErrNotPlayersTurn   = errors.New("not this player's turn")
	ErrNoPlayers        = errors.New("game has no players")
	ErrTileNotTradeable = errors.New("tile was traded for this turn and cannot be traded again")
)

// A Game is the full authoritative state of one table. Not safe for
// concurrent use; the server serializes access per room.
type Game struct {
	id       string
	players  []Player
	racks    map[string]*tiles.Rack
	bag      *tiles.Bag
	board    *board.GameBoard
	registry *words.Registry

	started    bool
	playerTurn string
	version    uint64
}

// NewGame creates a game with a fresh board and a full bag.
func NewGame(id string, ld *tiles.LetterDistribution) *Game {
	return &Game{
		id:       id,
		racks:    make(map[string]*tiles.Rack),
		bag:      tiles.NewBag(ld),
		board:    board.MakeBoard(board.CrosswordGameLayout),
		registry: words.NewRegistry(),
	}
}

func (g *Game) ID() string                { return g.id }
func (g *Game) Started() bool             { return g.started }
func (g *Game) PlayerTurn() string        { return g.playerTurn }
func (g *Game) Version() uint64           { return g.version }
func (g *Game) Board() *board.GameBoard   { return g.board }
func (g *Game) Bag() *tiles.Bag           { return g.bag }
func (g *Game) Registry() *words.Registry { return g.registry }

// Players returns a copy of the player list in join order.
func (g *Game) Players() []Player {
	return append([]Player(nil), g.players...)
}

// RackTiles returns a copy of a player's private rack.
func (g *Game) RackTiles(playerID string) ([]tiles.Tile, error) {
	rack, ok := g.racks[playerID]
	if !ok {
		return nil, fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
	}
	return rack.Tiles(), nil
}

// AddPlayer joins a player before the game starts. Join order is final.
func (g *Game) AddPlayer(id, name string) error {
	if g.started {
		return ErrGameStarted
	}
	for _, p := range g.players {
		if p.ID == id {
			return fmt.Errorf("player %s already joined", id)
		}
	}
	g.players = append(g.players, Player{ID: id, Name: name, Active: true})
	g.racks[id] = tiles.NewRack()
	g.bump()
	return nil
}

// Start begins the game and deals seven tiles to every player.
func (g *Game) Start() error {
	if g.started {
		return ErrGameStarted
	}
	if len(g.players) == 0 {
		return ErrNoPlayers
	}
	g.started = true
	for _, p := range g.players {
		drawn, err := g.bag.Draw(tiles.RackTileLimit)
		if err != nil {
			return err
		}
		if err := g.racks[p.ID].Add(drawn...); err != nil {
			return err
		}
	}
	g.bump()
	return nil
}

// DetermineFirstPlayer picks the opening player at random. This is its own
// operation, distinct from the round-robin advance.
func (g *Game) DetermineFirstPlayer() (string, error) {
	if len(g.players) == 0 {
		return "", ErrNoPlayers
	}
	g.playerTurn = g.players[frand.Intn(len(g.players))].ID
	g.bump()
	return g.playerTurn, nil
}

// DrawTiles draws up to n tiles for a player, clamped by the rack limit and
// the bag. Drawn tiles are tradeable.
func (g *Game) DrawTiles(playerID string, n int) ([]tiles.Tile, error) {
	rack, ok := g.racks[playerID]
	if !ok {
		return nil, fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
	}
	if n <= 0 {
		return nil, fmt.Errorf("draw count must be positive, got %d", n)
	}
	if room := tiles.RackTileLimit - rack.Len(); n > room {
		n = room
	}
	drawn := g.bag.DrawAtMost(n)
	if err := rack.Add(drawn...); err != nil {
		return nil, err
	}
	g.bump()
	return drawn, nil
}

// PlaceTile moves a tile from the acting player's rack onto the board.
// Blanks must name the letter they represent.
func (g *Game) PlaceTile(playerID string, row, col, tileID int, blankAs string) error {
	if err := g.checkTurn(playerID); err != nil {
		return err
	}
	rack := g.racks[playerID]
	t, ok := rack.Find(tileID)
	if !ok {
		return fmt.Errorf("tile %d is not on the rack", tileID)
	}
	if err := g.board.PlaceTile(row, col, t, blankAs); err != nil {
		return err
	}
	if _, err := rack.Remove(tileID); err != nil {
		return err
	}
	g.bump()
	return nil
}

// PickUpTile takes an unlocked tile off the board back onto the acting
// player's rack.
func (g *Game) PickUpTile(playerID string, row, col int) error {
	if err := g.checkTurn(playerID); err != nil {
		return err
	}
	rack := g.racks[playerID]
	if rack.Len() >= tiles.RackTileLimit {
		return fmt.Errorf("rack is full")
	}
	t, err := g.board.RemoveTile(row, col)
	if err != nil {
		return err
	}
	if err := rack.Add(t); err != nil {
		return err
	}
	g.bump()
	return nil
}

// ReturnTile sends a tradeable rack tile back into the bag, the first half
// of a trade.
func (g *Game) ReturnTile(playerID string, tileID int) error {
	rack, ok := g.racks[playerID]
	if !ok {
		return fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
	}
	t, ok := rack.Find(tileID)
	if !ok {
		return fmt.Errorf("tile %d is not on the rack", tileID)
	}
	if !t.Tradeable {
		return ErrTileNotTradeable
	}
	if _, err := rack.Remove(tileID); err != nil {
		return err
	}
	t.Tradeable = true
	g.bag.PutBack(t)
	g.bump()
	return nil
}

// TradeTiles refills the player's rack with replacement tiles that stay
// non-tradeable until the player's own next turn begins.
func (g *Game) TradeTiles(playerID string) ([]tiles.Tile, error) {
	rack, ok := g.racks[playerID]
	if !ok {
		return nil, fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
	}
	drawn := g.bag.DrawAtMost(tiles.RackTileLimit - rack.Len())
	for i := range drawn {
		drawn[i].Tradeable = false
	}
	if err := rack.Add(drawn...); err != nil {
		return nil, err
	}
	g.bump()
	return drawn, nil
}

// SetRackFor replaces a player's rack contents wholesale. The caller is
// responsible for keeping the bag consistent; tests and state restoration
// use this.
func (g *Game) SetRackFor(playerID string, ts []tiles.Tile) error {
	if _, ok := g.racks[playerID]; !ok {
		return fmt.Errorf("player %s: %w", playerID, ErrPlayerNotFound)
	}
	rack := tiles.NewRack()
	if err := rack.Add(ts...); err != nil {
		return err
	}
	g.racks[playerID] = rack
	g.bump()
	return nil
}

// EndTurn runs the scoring pipeline for the acting player and advances play:
// detect words, register and dedupe occurrences, score the newly scorable
// ones (consuming word modifiers), apply the rack-clear bonus, lock placed
// tiles in, then hand the turn to the next player, whose trade cooldown
// lifts and whose rack refills. Returns the points awarded this turn.
func (g *Game) EndTurn(playerID string) (int, error) {
	if err := g.checkTurn(playerID); err != nil {
		return 0, err
	}
	// Resolve the successor first; a sequencing inconsistency must leave
	// the game untouched.
	next, err := NextPlayer(g.players, playerID)
	if err != nil {
		log.Error().Str("playerID", playerID).Str("gameID", g.id).
			Msg("turn sequencing failed; not advancing")
		return 0, err
	}

	newly := g.registry.Update(words.Detect(g.board))
	score := words.Score(newly, g.board)
	if g.racks[playerID].Len() == 0 {
		score += words.RackClearBonus
	}
	for i := range g.players {
		if g.players[i].ID == playerID {
			g.players[i].Score += score
			break
		}
	}

	g.board.LockAll()
	g.playerTurn = next
	nextRack := g.racks[next]
	nextRack.SetAllTradeable(true)
	if err := nextRack.Add(g.bag.DrawAtMost(tiles.RackTileLimit - nextRack.Len())...); err != nil {
		return 0, err
	}
	g.bump()

	log.Info().Str("gameID", g.id).Str("playerID", playerID).
		Int("score", score).Str("next", next).Msg("turn ended")
	return score, nil
}

func (g *Game) checkTurn(playerID string) error {
	if !g.started {
		return ErrGameNotStarted
	}
	if g.playerTurn != playerID {
		return ErrNotPlayersTurn
	}
	return nil
}

// bump increments the state version. Every accepted mutation produces a new
// revision; peers discard snapshots at or below the version they hold.
func (g *Game) bump() {
	g.version++
}
