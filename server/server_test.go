package server

import (
	"encoding/json"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/tilewire/config"
	"github.com/domino14/tilewire/realtime"
	"github.com/domino14/tilewire/state"
	"github.com/domino14/tilewire/tiles"
)

func newTestServer() (*Server, *realtime.MemoryChannel) {
	cfg := config.DefaultConfig()
	ch := realtime.NewMemoryChannel()
	s := NewServer(&cfg, ch)
	for _, sub := range []struct {
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
	} {
		ch.Subscribe(sub.event, sub.handler)
	}
	return s, ch
}

// watchReplies collects game-id-checked answers addressed to a player.
func watchReplies(t *testing.T, ch *realtime.MemoryChannel, playerID string) *[]roomReply {
	t.Helper()
	replies := &[]roomReply{}
	ch.Subscribe(realtime.EvtGameIDChecked, func(payload []byte) {
		if realtime.IsFailure(payload) {
			*replies = append(*replies, roomReply{})
			return
		}
		var rep roomReply
		if err := json.Unmarshal(payload, &rep); err != nil {
			t.Fatal(err)
		}
		*replies = append(*replies, rep)
	}, playerID)
	return replies
}

func createRoomFor(t *testing.T, ch *realtime.MemoryChannel, playerID, name string) string {
	t.Helper()
	replies := watchReplies(t, ch, playerID)
	ch.Emit(realtime.EvtCreateRoom, roomRequest{PlayerID: playerID, PlayerName: name})
	if len(*replies) != 1 || (*replies)[0].GameID == "" {
		t.Fatal("room creation did not succeed")
	}
	return (*replies)[0].GameID
}

func TestCreateRoomAssignsCode(t *testing.T) {
	is := is.New(t)
	s, ch := newTestServer()

	gameID := createRoomFor(t, ch, "p1", "ada")
	is.Equal(len(gameID), 4)
	for _, c := range gameID {
		is.True(c >= 'A' && c <= 'Z')
	}

	r, ok := s.room(gameID)
	is.True(ok)
	r.mu.Lock()
	defer r.mu.Unlock()
	players := r.game.Players()
	is.Equal(len(players), 1)
	is.Equal(players[0].Name, "ada")
}

func TestJoinValidation(t *testing.T) {
	is := is.New(t)
	_, ch := newTestServer()
	gameID := createRoomFor(t, ch, "p1", "ada")

	// Empty and over-long names are rejected with an empty payload.
	replies := watchReplies(t, ch, "p2")
	ch.Emit(realtime.EvtJoinRoom, roomRequest{GameID: gameID, PlayerID: "p2", PlayerName: "   "})
	ch.Emit(realtime.EvtJoinRoom, roomRequest{GameID: gameID, PlayerID: "p2", PlayerName: "thisnameistoolong"})
	is.Equal(len(*replies), 2)
	is.Equal((*replies)[0].GameID, "")
	is.Equal((*replies)[1].GameID, "")

	// Unknown room code.
	ch.Emit(realtime.EvtJoinRoom, roomRequest{GameID: "ZZZZ", PlayerID: "p2", PlayerName: "lin"})
	is.Equal(len(*replies), 3)
	is.Equal((*replies)[2].GameID, "")

	// A good join succeeds and names are trimmed.
	ch.Emit(realtime.EvtJoinRoom, roomRequest{GameID: gameID, PlayerID: "p2", PlayerName: "  lin "})
	is.Equal(len(*replies), 4)
	is.Equal((*replies)[3].GameID, gameID)
}

func TestJoinRefusedAfterStart(t *testing.T) {
	is := is.New(t)
	_, ch := newTestServer()
	gameID := createRoomFor(t, ch, "p1", "ada")
	ch.Emit(realtime.EvtJoinRoom, roomRequest{GameID: gameID, PlayerID: "p2", PlayerName: "lin"})
	ch.Emit(realtime.EvtStartGame, turnRequest{GameID: gameID, PlayerID: "p1"})

	replies := watchReplies(t, ch, "p3")
	ch.Emit(realtime.EvtJoinRoom, roomRequest{GameID: gameID, PlayerID: "p3", PlayerName: "bob"})
	is.Equal(len(*replies), 1)
	is.Equal((*replies)[0].GameID, "")
}

// latestGlobal tracks the newest global snapshot for a room.
func latestGlobal(t *testing.T, ch *realtime.MemoryChannel, gameID string) *state.GameState {
	t.Helper()
	gs := &state.GameState{}
	ch.Subscribe(realtime.EvtUpdateGlobalState, func(payload []byte) {
		if err := json.Unmarshal(payload, gs); err != nil {
			t.Fatal(err)
		}
	}, gameID)
	return gs
}

func latestLocal(t *testing.T, ch *realtime.MemoryChannel, gameID, playerID string) *state.LocalState {
	t.Helper()
	ls := &state.LocalState{}
	ch.Subscribe(realtime.EvtUpdateLocalState, func(payload []byte) {
		if err := json.Unmarshal(payload, ls); err != nil {
			t.Fatal(err)
		}
	}, gameID, playerID)
	return ls
}

func TestFullTurnFlow(t *testing.T) {
	is := is.New(t)
	_, ch := newTestServer()
	gameID := createRoomFor(t, ch, "p1", "ada")
	ch.Emit(realtime.EvtJoinRoom, roomRequest{GameID: gameID, PlayerID: "p2", PlayerName: "lin"})

	global := latestGlobal(t, ch, gameID)
	rackP1 := latestLocal(t, ch, gameID, "p1")
	rackP2 := latestLocal(t, ch, gameID, "p2")

	ch.Emit(realtime.EvtStartGame, turnRequest{GameID: gameID, PlayerID: "p1"})
	is.True(global.GameStarted)
	is.Equal(len(rackP1.Tiles), tiles.RackTileLimit)
	is.Equal(len(global.TileBag), tiles.SetSize-2*tiles.RackTileLimit)

	ch.Emit(realtime.EvtDetermineFirstPlayer, turnRequest{GameID: gameID})
	mover := global.PlayerTurn
	is.True(mover == "p1" || mover == "p2")
	other := "p2"
	moverRack := rackP1
	if mover == "p2" {
		other = "p1"
		moverRack = rackP2
	}

	// The mover lays two tiles through the center and ends the turn.
	t0, t1 := moverRack.Tiles[0], moverRack.Tiles[1]
	place := func(tl tiles.Tile, col int) {
		req := boardEditRequest{
			GameID: gameID, PlayerID: mover, Action: "place",
			Row: 7, Col: col, TileID: tl.ID,
		}
		if tl.Letter == tiles.Blank {
			req.BlankAs = "E"
		}
		ch.Emit(realtime.EvtUpdateStateFromClient, req)
	}
	place(t0, 7)
	place(t1, 8)
	is.True(global.BoardState.SquareAt(7, 7).HasTile)

	var notices []turnNotice
	ch.Subscribe(realtime.EvtStartTurn, func(payload []byte) {
		var n turnNotice
		is.NoErr(json.Unmarshal(payload, &n))
		notices = append(notices, n)
	}, gameID)

	ch.Emit(realtime.EvtStartTurn, turnRequest{GameID: gameID, PlayerID: mover})

	// Center square doubles the first word.
	want := (t0.Points + t1.Points) * 2
	var moverScore int
	for _, p := range global.CurrentPlayers {
		if p.ID == mover {
			moverScore = p.Score
		}
	}
	is.Equal(moverScore, want)
	is.Equal(global.PlayerTurn, other)
	is.Equal(len(notices), 1)
	is.Equal(notices[0].PlayerID, other)
	is.True(global.BoardState.SquareAt(7, 7).LockedIn)

	// The next player's rack was refilled at the start of their turn.
	otherRack := rackP2
	if other == "p1" {
		otherRack = rackP1
	}
	is.Equal(len(otherRack.Tiles), tiles.RackTileLimit)
}

func TestBoardEditRefusedOffTurn(t *testing.T) {
	is := is.New(t)
	_, ch := newTestServer()
	gameID := createRoomFor(t, ch, "p1", "ada")
	ch.Emit(realtime.EvtJoinRoom, roomRequest{GameID: gameID, PlayerID: "p2", PlayerName: "lin"})

	global := latestGlobal(t, ch, gameID)
	rackP1 := latestLocal(t, ch, gameID, "p1")
	rackP2 := latestLocal(t, ch, gameID, "p2")

	ch.Emit(realtime.EvtStartGame, turnRequest{GameID: gameID, PlayerID: "p1"})
	ch.Emit(realtime.EvtDetermineFirstPlayer, turnRequest{GameID: gameID})

	waiting := "p2"
	waitingRack := rackP2
	if global.PlayerTurn == "p2" {
		waiting = "p1"
		waitingRack = rackP1
	}

	ch.Emit(realtime.EvtUpdateStateFromClient, boardEditRequest{
		GameID: gameID, PlayerID: waiting, Action: "place",
		Row: 7, Col: 7, TileID: waitingRack.Tiles[0].ID,
	})
	is.True(!global.BoardState.SquareAt(7, 7).HasTile)

	// Ending a turn out of order changes nothing either.
	before := global.Version
	ch.Emit(realtime.EvtStartTurn, turnRequest{GameID: gameID, PlayerID: waiting})
	is.Equal(global.Version, before)
}

func TestMalformedEditRequestsAreRefused(t *testing.T) {
	is := is.New(t)
	_, ch := newTestServer()
	gameID := createRoomFor(t, ch, "p1", "ada")
	ch.Emit(realtime.EvtJoinRoom, roomRequest{GameID: gameID, PlayerID: "p2", PlayerName: "lin"})

	global := latestGlobal(t, ch, gameID)
	rackP1 := latestLocal(t, ch, gameID, "p1")
	rackP2 := latestLocal(t, ch, gameID, "p2")

	ch.Emit(realtime.EvtStartGame, turnRequest{GameID: gameID, PlayerID: "p1"})
	ch.Emit(realtime.EvtDetermineFirstPlayer, turnRequest{GameID: gameID})

	mover := global.PlayerTurn
	moverRack := rackP1
	if mover == "p2" {
		moverRack = rackP2
	}
	before := global.Version

	// Off-board coordinates from the current player must be refused, not
	// crash the process.
	ch.Emit(realtime.EvtUpdateStateFromClient, boardEditRequest{
		GameID: gameID, PlayerID: mover, Action: "place",
		Row: 99, Col: 0, TileID: moverRack.Tiles[0].ID,
	})
	ch.Emit(realtime.EvtUpdateStateFromClient, boardEditRequest{
		GameID: gameID, PlayerID: mover, Action: "pickup",
		Row: -1, Col: 3,
	})
	is.Equal(global.Version, before)
	is.Equal(len(moverRack.Tiles), tiles.RackTileLimit)

	// A blank letter must be a single uppercase character.
	ch.Emit(realtime.EvtUpdateStateFromClient, boardEditRequest{
		GameID: gameID, PlayerID: mover, Action: "place",
		Row: 7, Col: 7, TileID: moverRack.Tiles[0].ID, BlankAs: "xy",
	})
	is.Equal(global.Version, before)
	is.True(!global.BoardState.SquareAt(7, 7).HasTile)

	// A negative draw count is refused too.
	ch.Emit(realtime.EvtDrawTiles, drawRequest{GameID: gameID, PlayerID: mover, Count: -1})
	is.Equal(global.Version, before)
}

func TestTradeRefillsWithCooldown(t *testing.T) {
	is := is.New(t)
	_, ch := newTestServer()
	gameID := createRoomFor(t, ch, "p1", "ada")
	ch.Emit(realtime.EvtJoinRoom, roomRequest{GameID: gameID, PlayerID: "p2", PlayerName: "lin"})

	global := latestGlobal(t, ch, gameID)
	rackP1 := latestLocal(t, ch, gameID, "p1")
	rackP2 := latestLocal(t, ch, gameID, "p2")

	ch.Emit(realtime.EvtStartGame, turnRequest{GameID: gameID, PlayerID: "p1"})
	ch.Emit(realtime.EvtDetermineFirstPlayer, turnRequest{GameID: gameID})

	mover := global.PlayerTurn
	moverRack := rackP1
	if mover == "p2" {
		moverRack = rackP2
	}

	bagBefore := len(global.TileBag)
	returned := moverRack.Tiles[0]
	ch.Emit(realtime.EvtReturnTile, tileRequest{GameID: gameID, PlayerID: mover, TileID: returned.ID})
	is.Equal(len(moverRack.Tiles), tiles.RackTileLimit-1)
	is.Equal(len(global.TileBag), bagBefore+1)

	ch.Emit(realtime.EvtTradeTiles, turnRequest{GameID: gameID, PlayerID: mover})
	is.Equal(len(moverRack.Tiles), tiles.RackTileLimit)

	// The replacement cannot be traded again this turn.
	fresh := moverRack.Tiles[len(moverRack.Tiles)-1]
	is.True(!fresh.Tradeable)
	ch.Emit(realtime.EvtReturnTile, tileRequest{GameID: gameID, PlayerID: mover, TileID: fresh.ID})
	is.Equal(len(moverRack.Tiles), tiles.RackTileLimit) // refused
}
