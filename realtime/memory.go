package realtime

import "sync"

// MemoryChannel is an in-process Channel. It backs single-machine play and
// the server tests; delivery is synchronous on the emitter's goroutine.
type MemoryChannel struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	closed   bool
}

func NewMemoryChannel() *MemoryChannel {
	return &MemoryChannel{handlers: make(map[string][]Handler)}
}

func (c *MemoryChannel) Emit(event string, payload any, parts ...string) error {
	data, err := encodePayload(payload)
	if err != nil {
		return err
	}
	c.mu.RLock()
	hs := append([]Handler(nil), c.handlers[Subject(event, parts...)]...)
	closed := c.closed
	c.mu.RUnlock()
	if closed {
		return nil
	}
	for _, h := range hs {
		h(data)
	}
	return nil
}

func (c *MemoryChannel) Subscribe(event string, h Handler, parts ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	subject := Subject(event, parts...)
	c.handlers[subject] = append(c.handlers[subject], h)
	return nil
}

func (c *MemoryChannel) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}
