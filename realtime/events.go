// Package realtime carries game events between peers. Events are published
// on NATS subjects derived from the event name and, for room-scoped events,
// the game id; payloads are JSON. An event delivered with an empty payload
// signals failure of the requested operation.
package realtime

import "strings"

// Event names shared by every peer. Clients emit the request events and the
// server answers with the update events.
const (
	EvtCreateRoom            = "create-room"
	EvtJoinRoom              = "join-room"
	EvtGameIDChecked         = "game-id-checked"
	EvtStartGame             = "start-game"
	EvtStartTurn             = "start-turn"
	EvtTradeTiles            = "trade-tiles"
	EvtDrawTiles             = "draw-tiles"
	EvtReturnTile            = "return-tile"
	EvtDetermineFirstPlayer  = "determine-first-player"
	EvtUpdateGlobalState     = "update-global-state-from-server"
	EvtUpdateLocalState      = "update-local-state-from-server"
	EvtUpdateStateFromClient = "update-state-from-client"
)

const subjectPrefix = "tilewire"

// Subject builds the NATS subject for an event, optionally scoped by
// further parts such as a game id or player id.
func Subject(event string, parts ...string) string {
	elems := append([]string{subjectPrefix, event}, parts...)
	return strings.Join(elems, ".")
}

// IsFailure reports whether a delivered payload signals a failed operation.
func IsFailure(payload []byte) bool {
	return len(payload) == 0
}
