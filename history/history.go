package history

import (
	"sync"

	"github.com/furrowlabs/furrow/core"
)

// History maps counterpart agent names to their ordered message sequences.
//
// Concurrency: protected by RWMutex. The engine itself is single-threaded,
// but histories are also read by examples and tests, so reads hand out
// defensive copies.
type History struct {
	mu       sync.RWMutex
	messages map[string][]*core.Message // counterpart name -> ordered log
}

// New creates an empty history.
func New() *History {
	return &History{messages: make(map[string][]*core.Message)}
}

// AddMessage appends message to the counterpart's sequence. The stored
// entry is a copy with the given role stamped on it, so a counterpart
// rewriting the in-flight message later never reaches into this history.
func (h *History) AddMessage(counterpart core.Agent, role core.Role, message *core.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	stored := *message
	stored.Role = role
	h.messages[counterpart.Name()] = append(h.messages[counterpart.Name()], &stored)
}

// GetMessages returns a copy of the full ordered sequence exchanged with the
// counterpart. The copy is safe for the caller to iterate while the history
// keeps growing.
func (h *History) GetMessages(counterpart core.Agent) []*core.Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	msgs := h.messages[counterpart.Name()]
	out := make([]*core.Message, len(msgs))
	copy(out, msgs)
	return out
}

// Len returns the number of messages exchanged with the counterpart.
func (h *History) Len(counterpart core.Agent) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.messages[counterpart.Name()])
}
