package transport

import "sync"

// Hub serializes access to an underlying transport so that at most one
// operation is in flight at any time. Memory services typically cannot
// tolerate interleaved requests on one handle; putting a Hub in front lets
// independent goroutines share the handle safely.
type Hub struct {
	mu sync.Mutex
	t  Transport
}

// NewHub wraps t. The caller must stop using t directly.
func NewHub(t Transport) *Hub {
	return &Hub{t: t}
}

// Read implements [Transport].
func (h *Hub) Read(addr uint32, dst []uint32) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.t.Read(addr, dst)
}

// Write implements [Transport].
func (h *Hub) Write(addr uint32, src []uint32) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.t.Write(addr, src)
}

// Close implements [Transport].
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.t.Close()
}
