package game

// A Player as it appears in the replicated global state. The ID is
// connection-derived and stable for the lifetime of the game. Join order is
// fixed and defines the round-robin turn sequence.
type Player struct {
	ID     string `json:"playerId"`
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Active bool   `json:"active"`
}
