package game

import "errors"

// ErrPlayerNotFound reports a sequencing inconsistency: the player whose
// turn it supposedly is does not appear in the player list. The turn must
// not advance when this happens.
var ErrPlayerNotFound = errors.New("current player is not in the player list")

// NextPlayer returns the id of the player after currentID in round-robin
// order, wrapping at the end of the list.
func NextPlayer(players []Player, currentID string) (string, error) {
	for i, p := range players {
		if p.ID == currentID {
			return players[(i+1)%len(players)].ID, nil
		}
	}
	return "", ErrPlayerNotFound
}
