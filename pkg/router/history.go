package router

import "sync"

// History records visited URLs. It stands in for the browser history API;
// an embedding application can adapt the real one behind this interface.
type History interface {
	// Push appends url as the new current entry, discarding any forward
	// entries.
	Push(url string)

	// Replace swaps the current entry for url without growing the stack.
	Replace(url string)

	// Back moves to the previous entry, reporting it and whether one
	// existed.
	Back() (string, bool)

	// Forward moves to the next entry, reporting it and whether one
	// existed.
	Forward() (string, bool)

	// Current reports the current entry, if any.
	Current() (string, bool)
}

// MemoryHistory is an in-memory History implementation.
// It is safe for concurrent use.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []string
	idx     int
}

// NewMemoryHistory creates an empty history.
func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{idx: -1}
}

// Push appends url, truncating forward entries.
func (h *MemoryHistory) Push(url string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries[:h.idx+1], url)
	h.idx = len(h.entries) - 1
}

// Replace swaps the current entry for url. On an empty history it behaves
// like Push.
func (h *MemoryHistory) Replace(url string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.idx < 0 {
		h.entries = append(h.entries, url)
		h.idx = 0
		return
	}
	h.entries[h.idx] = url
}

// Back moves one entry back.
func (h *MemoryHistory) Back() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.idx <= 0 {
		return "", false
	}
	h.idx--
	return h.entries[h.idx], true
}

// Forward moves one entry forward.
func (h *MemoryHistory) Forward() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.idx < 0 || h.idx >= len(h.entries)-1 {
		return "", false
	}
	h.idx++
	return h.entries[h.idx], true
}

// Current reports the current entry.
func (h *MemoryHistory) Current() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.idx < 0 {
		return "", false
	}
	return h.entries[h.idx], true
}

// Len returns the number of entries.
// This is for monitoring/testing purposes.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}
