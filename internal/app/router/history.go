package router

import "sync"

// ─── Memory History ─────────────────────────────────────────────────────────
// MemoryHistory models the browser history stack: a list of entries with a
// cursor. Push truncates the forward tail (as pushState does); Back and
// Forward move the cursor and fire the pop listener without adding entries.

// MemoryHistory is an in-process domain.History with back/forward support.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []string
	cursor  int
	onPop   func()
}

// NewMemoryHistory creates a history positioned at initialPath.
func NewMemoryHistory(initialPath string) *MemoryHistory {
	if initialPath == "" {
		initialPath = "/"
	}
	return &MemoryHistory{entries: []string{initialPath}}
}

// OnPop registers the popstate listener invoked by Back and Forward.
func (h *MemoryHistory) OnPop(fn func()) {
	h.mu.Lock()
	h.onPop = fn
	h.mu.Unlock()
}

// Path returns the current location path.
func (h *MemoryHistory) Path() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.cursor]
}

// Push records path as a new entry, dropping any forward entries.
func (h *MemoryHistory) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.cursor+1], path)
	h.cursor++
}

// Len returns the number of history entries.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Back moves one entry back and fires the pop listener. At the oldest entry
// it does nothing, like the browser.
func (h *MemoryHistory) Back() {
	h.mu.Lock()
	if h.cursor == 0 {
		h.mu.Unlock()
		return
	}
	h.cursor--
	fn := h.onPop
	h.mu.Unlock()

	if fn != nil {
		fn()
	}
}

// Forward moves one entry forward and fires the pop listener.
func (h *MemoryHistory) Forward() {
	h.mu.Lock()
	if h.cursor >= len(h.entries)-1 {
		h.mu.Unlock()
		return
	}
	h.cursor++
	fn := h.onPop
	h.mu.Unlock()

	if fn != nil {
		fn()
	}
}
