package realtime

import "encoding/json"

// A Handler receives the raw payload of a delivered event. An empty payload
// means the operation the event answers failed; see IsFailure.
type Handler func(payload []byte)

// A Channel publishes and subscribes to game events. Implementations must be
// safe for concurrent use.
type Channel interface {
	// Emit publishes an event on the subject built from the event name and
	// scope parts. A nil payload publishes an empty message, which peers
	// read as a failure signal.
	Emit(event string, payload any, parts ...string) error
	// Subscribe registers a handler for an event subject. Handlers run on
	// the channel's delivery goroutine.
	Subscribe(event string, h Handler, parts ...string) error
	// Close tears the channel down. Pending handlers may still run.
	Close()
}

func encodePayload(payload any) ([]byte, error) {
	if payload == nil {
		return nil, nil
	}
	return json.Marshal(payload)
}
