package nxrouter

import "sync"

// HashHistory is a History keeping the logical path and query in the
// "#" fragment of the browser URL.  Useful for applications served
// statically without server-side URL handling.
type HashHistory struct {
	js *jsHistory
}

// NewHashHistory returns a HashHistory listening for popstate events.
func NewHashHistory() (*HashHistory, error) {
	jh, err := newJSHistory(true)
	if err != nil {
		return nil, err
	}
	return &HashHistory{js: jh}, nil
}

// Kind implements History.
func (h *HashHistory) Kind() HistoryKind { return KindHash }

// Location implements History.
func (h *HashHistory) Location() Location { return h.js.location() }

// Go implements History.
func (h *HashHistory) Go(delta int) { h.js.historyGo(delta) }

// Push implements History.
func (h *HashHistory) Push(path string) { h.js.pushPathAndQuery(path, "") }

// Replace implements History.
func (h *HashHistory) Replace(path string) { h.js.replacePathAndQuery(path, "") }

// PushWithState implements History.
func (h *HashHistory) PushWithState(path string, state any) error {
	s, err := encodeState(state)
	if err != nil {
		return err
	}
	h.js.pushPathAndQuery(path, s)
	return nil
}

// ReplaceWithState implements History.
func (h *HashHistory) ReplaceWithState(path string, state any) error {
	s, err := encodeState(state)
	if err != nil {
		return err
	}
	h.js.replacePathAndQuery(path, s)
	return nil
}

// PushWithQuery implements History.
func (h *HashHistory) PushWithQuery(path string, query any) error {
	return h.PushWithQueryAndState(path, query, nil)
}

// PushWithQueryAndState implements History.
func (h *HashHistory) PushWithQueryAndState(path string, query, state any) error {
	vals, err := encodeQuery(query)
	if err != nil {
		return err
	}
	s, err := encodeState(state)
	if err != nil {
		return err
	}
	h.js.pushPathAndQuery(joinPathQuery(path, vals), s)
	return nil
}

// ReplaceWithQueryAndState implements History.
func (h *HashHistory) ReplaceWithQueryAndState(path string, query, state any) error {
	vals, err := encodeQuery(query)
	if err != nil {
		return err
	}
	s, err := encodeState(state)
	if err != nil {
		return err
	}
	h.js.replacePathAndQuery(joinPathQuery(path, vals), s)
	return nil
}

// Listen implements History.
func (h *HashHistory) Listen(fn func()) (unlisten func()) {
	handle := h.js.listeners.add(func(struct{}) { fn() })
	var once sync.Once
	return func() {
		once.Do(func() { h.js.listeners.remove(handle) })
	}
}

// Release removes the popstate listener.
func (h *HashHistory) Release() error { return h.js.removePopStateListener() }
