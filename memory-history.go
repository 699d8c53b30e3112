package nxrouter

import "sync"

type memoryEntry struct {
	raw   string // path, possibly with query and fragment, as pushed
	state any
}

// MemoryHistory is a History kept entirely in memory.  It is the
// variant used in tests and in non-browser environments; all mutation
// methods behave like their window.history counterparts, including
// truncation of the forward tail on push.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []memoryEntry
	index   int

	listeners listenerRegistry[struct{}]
	queue     notifyQueue
}

// NewMemoryHistory returns a MemoryHistory seeded with the given
// initial entries, or with "/" when none are given.  The last entry is
// current.
func NewMemoryHistory(initial ...string) *MemoryHistory {
	if len(initial) == 0 {
		initial = []string{"/"}
	}
	entries := make([]memoryEntry, len(initial))
	for i, p := range initial {
		entries[i] = memoryEntry{raw: p}
	}
	return &MemoryHistory{entries: entries, index: len(entries) - 1}
}

// Kind implements History.
func (h *MemoryHistory) Kind() HistoryKind { return KindMemory }

// Location implements History.
func (h *MemoryHistory) Location() Location {
	h.mu.Lock()
	e := h.entries[h.index]
	h.mu.Unlock()
	return parseLocation(e.raw, e.state)
}

// Go implements History.  Deltas that land outside the stack are
// clamped; a delta of zero is a no-op.
func (h *MemoryHistory) Go(delta int) {
	h.apply(func() bool {
		idx := h.index + delta
		if idx < 0 {
			idx = 0
		}
		if idx > len(h.entries)-1 {
			idx = len(h.entries) - 1
		}
		if idx == h.index {
			return false
		}
		h.index = idx
		return true
	})
}

// Push implements History.
func (h *MemoryHistory) Push(path string) {
	h.pushEntry(memoryEntry{raw: path})
}

// Replace implements History.
func (h *MemoryHistory) Replace(path string) {
	h.replaceEntry(memoryEntry{raw: path})
}

// PushWithState implements History.  The state value is held as-is.
func (h *MemoryHistory) PushWithState(path string, state any) error {
	h.pushEntry(memoryEntry{raw: path, state: state})
	return nil
}

// ReplaceWithState implements History.
func (h *MemoryHistory) ReplaceWithState(path string, state any) error {
	h.replaceEntry(memoryEntry{raw: path, state: state})
	return nil
}

// PushWithQuery implements History.  The query is encoded before any
// mutation; an encoding failure leaves the stack untouched and emits no
// event.
func (h *MemoryHistory) PushWithQuery(path string, query any) error {
	return h.PushWithQueryAndState(path, query, nil)
}

// PushWithQueryAndState implements History.
func (h *MemoryHistory) PushWithQueryAndState(path string, query, state any) error {
	vals, err := encodeQuery(query)
	if err != nil {
		return err
	}
	h.pushEntry(memoryEntry{raw: joinPathQuery(path, vals), state: state})
	return nil
}

// ReplaceWithQueryAndState implements History.
func (h *MemoryHistory) ReplaceWithQueryAndState(path string, query, state any) error {
	vals, err := encodeQuery(query)
	if err != nil {
		return err
	}
	h.replaceEntry(memoryEntry{raw: joinPathQuery(path, vals), state: state})
	return nil
}

// Listen implements History.
func (h *MemoryHistory) Listen(fn func()) (unlisten func()) {
	handle := h.listeners.add(func(struct{}) { fn() })
	var once sync.Once
	return func() {
		once.Do(func() { h.listeners.remove(handle) })
	}
}

// Length returns the number of entries on the stack.
func (h *MemoryHistory) Length() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *MemoryHistory) pushEntry(e memoryEntry) {
	h.apply(func() bool {
		h.entries = append(h.entries[:h.index+1], e)
		h.index = len(h.entries) - 1
		return true
	})
}

func (h *MemoryHistory) replaceEntry(e memoryEntry) {
	h.apply(func() bool {
		h.entries[h.index] = e
		return true
	})
}

// apply runs mutate under the lock and, if it reports a change,
// notifies listeners.  The notifyQueue turns mutations arriving during
// a notification pass into separate, later events.
func (h *MemoryHistory) apply(mutate func() bool) {
	h.queue.apply(func() bool {
		h.mu.Lock()
		defer h.mu.Unlock()
		return mutate()
	}, func() {
		h.listeners.notify(struct{}{})
	})
}
