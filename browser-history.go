package nxrouter

import "sync"

// BrowserHistory is a History backed by the browser URL and
// window.history.  It only works in a js/wasm environment; elsewhere
// the constructor returns ErrNotBrowser.
type BrowserHistory struct {
	js *jsHistory
}

// NewBrowserHistory returns a BrowserHistory listening for popstate
// events.  Call Release when done with it to drop the listener.
func NewBrowserHistory() (*BrowserHistory, error) {
	jh, err := newJSHistory(false)
	if err != nil {
		return nil, err
	}
	return &BrowserHistory{js: jh}, nil
}

// Kind implements History.
func (h *BrowserHistory) Kind() HistoryKind { return KindBrowser }

// Location implements History.
func (h *BrowserHistory) Location() Location { return h.js.location() }

// Go implements History.
func (h *BrowserHistory) Go(delta int) { h.js.historyGo(delta) }

// Push implements History.
func (h *BrowserHistory) Push(path string) { h.js.pushPathAndQuery(path, "") }

// Replace implements History.
func (h *BrowserHistory) Replace(path string) { h.js.replacePathAndQuery(path, "") }

// PushWithState implements History.  State is packed through the state
// codec before crossing the JS boundary.
func (h *BrowserHistory) PushWithState(path string, state any) error {
	s, err := encodeState(state)
	if err != nil {
		return err
	}
	h.js.pushPathAndQuery(path, s)
	return nil
}

// ReplaceWithState implements History.
func (h *BrowserHistory) ReplaceWithState(path string, state any) error {
	s, err := encodeState(state)
	if err != nil {
		return err
	}
	h.js.replacePathAndQuery(path, s)
	return nil
}

// PushWithQuery implements History.
func (h *BrowserHistory) PushWithQuery(path string, query any) error {
	return h.PushWithQueryAndState(path, query, nil)
}

// PushWithQueryAndState implements History.  Both encodings are
// performed before any history mutation.
func (h *BrowserHistory) PushWithQueryAndState(path string, query, state any) error {
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
func (h *BrowserHistory) ReplaceWithQueryAndState(path string, query, state any) error {
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
func (h *BrowserHistory) Listen(fn func()) (unlisten func()) {
	handle := h.js.listeners.add(func(struct{}) { fn() })
	var once sync.Once
	return func() {
		once.Do(func() { h.js.listeners.remove(handle) })
	}
}

// Release removes the popstate listener.
func (h *BrowserHistory) Release() error { return h.js.removePopStateListener() }
