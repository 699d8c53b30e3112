package nxrouter

import (
	"net/url"
	"strings"

	"github.com/vugu/vugu/js"
)

// jsHistory is the window.history machinery shared by BrowserHistory
// and HashHistory.  With fragment set, the logical path and query live
// after the "#" in the browser URL.
type jsHistory struct {
	fragment bool

	listeners listenerRegistry[struct{}]
	queue     notifyQueue

	popStateFunc js.Func
}

func newJSHistory(fragment bool) (*jsHistory, error) {
	if !js.Global().Truthy() {
		return nil, ErrNotBrowser
	}
	h := &jsHistory{fragment: fragment}
	if err := h.addPopStateListener(); err != nil {
		return nil, err
	}
	return h, nil
}

func (h *jsHistory) pushPathAndQuery(pathAndQuery string, state string) {
	h.mutateHistory("pushState", pathAndQuery, state)
}

func (h *jsHistory) replacePathAndQuery(pathAndQuery string, state string) {
	h.mutateHistory("replaceState", pathAndQuery, state)
}

// mutateHistory calls the named window.history method and notifies
// listeners.  A mutation issued from inside a listener callback is
// queued as a separate event after the current pass, same as
// MemoryHistory.
func (h *jsHistory) mutateHistory(method, pathAndQuery, state string) {
	h.queue.apply(func() bool {
		g := js.Global()
		if g.Truthy() {
			pqv := pathAndQuery
			if h.fragment {
				pqv = "#" + pathAndQuery
			}
			g.Get("window").Get("history").Call(method, stateArg(state), "", pqv)
		}
		return true
	}, func() {
		h.listeners.notify(struct{}{})
	})
}

func (h *jsHistory) historyGo(delta int) {

	g := js.Global()
	if g.Truthy() {
		// the resulting popstate event drives listener notification
		g.Get("window").Get("history").Call("go", delta)
	}

}

func stateArg(state string) interface{} {
	if state == "" {
		return nil
	}
	return state
}

func (h *jsHistory) readBrowserURL() (*url.URL, error) {

	g := js.Global()
	if !g.Truthy() {
		return nil, ErrNotBrowser
	}

	var locstr string
	if h.fragment {
		locstr = strings.TrimPrefix(g.Get("window").Get("location").Get("hash").String(), "#")
	} else {
		locstr = g.Get("window").Get("location").Call("toString").String()
	}

	u, err := url.Parse(locstr)
	if err != nil {
		return u, err
	}

	return u, nil

}

// readStateString returns the serialized state held in history.state,
// or "" when none is set.
func (h *jsHistory) readStateString() string {

	g := js.Global()
	if !g.Truthy() {
		return ""
	}

	v := g.Get("window").Get("history").Get("state")
	if !v.Truthy() {
		return ""
	}
	return v.String()
}

func (h *jsHistory) location() Location {

	u, err := h.readBrowserURL()
	if err != nil {
		return Location{Path: "/"}
	}

	state, err := decodeState(h.readStateString())
	if err != nil {
		state = nil
	}

	return Location{Path: u.Path, Query: u.RawQuery, Hash: u.Fragment, State: state}
}

func (h *jsHistory) addPopStateListener() error {

	g := js.Global()
	if !g.Truthy() {
		return ErrNotBrowser
	}

	if !h.popStateFunc.IsUndefined() {
		return nil // already set
	}

	jf := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		// the popstate itself already changed the browser URL
		h.queue.apply(func() bool { return true }, func() {
			h.listeners.notify(struct{}{})
		})
		return nil
	})

	g.Get("window").Call("addEventListener", "popstate", jf)

	h.popStateFunc = jf

	return nil

}

func (h *jsHistory) removePopStateListener() error {

	g := js.Global()
	if !g.Truthy() {
		return ErrNotBrowser
	}

	if h.popStateFunc.IsUndefined() {
		return nil // nothing registered
	}

	g.Get("window").Call("removeEventListener", "popstate", h.popStateFunc)

	h.popStateFunc.Release()
	h.popStateFunc = js.Func{}

	return nil
}
