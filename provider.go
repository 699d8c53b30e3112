package nxrouter

import "sync"

// Provider binds a history provider to a Router and a location store.
// It is the single mount point for the navigation core: it seeds the
// store from the live history location, keeps it updated on every
// history event and keeps the prefetch engine informed of the active
// route.  All state is in-memory and rebuilt on mount; nothing is
// persisted.
type Provider struct {
	mu        sync.Mutex
	router    *Router
	store     *locationStore
	history   History
	unlisten  func()
	unmounted bool
}

// NewProvider mounts the navigation core on the given history provider
// under basename.  eventEnv may be nil outside a rendering environment.
func NewProvider(h History, basename string, eventEnv EventEnv) *Provider {
	r := New(h, basename, eventEnv)
	p := &Provider{
		router:  r,
		store:   newLocationStore(),
		history: h,
	}

	ctx := p.store.Dispatch(h.Location())
	r.SetActiveRoute(r.StripBasename(ctx.Location.Path))

	p.unlisten = h.Listen(func() {
		c := p.store.Dispatch(h.Location())
		r.SetActiveRoute(r.StripBasename(c.Location.Path))
	})

	return p
}

// CurrentRouter returns the mounted Router.
func (p *Provider) CurrentRouter() *Router {
	p.mustMounted()
	return p.router
}

// CurrentLocation returns the current location snapshot.
func (p *Provider) CurrentLocation() Location {
	p.mustMounted()
	return p.store.Context().Location
}

// CurrentContext returns the current location context including its
// revision.  Callers must re-read the full context on every access
// rather than caching subfields.
func (p *Provider) CurrentContext() LocationContext {
	p.mustMounted()
	return p.store.Context()
}

// CurrentRoute returns the current path with the basename stripped,
// the string the dispatcher should resolve.
func (p *Provider) CurrentRoute() string {
	p.mustMounted()
	return p.router.StripBasename(p.store.Context().Location.Path)
}

// SubscribeLocation registers fn to be called synchronously on every
// accepted history event, in registration order.
func (p *Provider) SubscribeLocation(fn func(LocationContext)) ListenerHandle {
	p.mustMounted()
	return p.store.Subscribe(fn)
}

// UnsubscribeLocation removes a SubscribeLocation registration.
func (p *Provider) UnsubscribeLocation(h ListenerHandle) {
	p.store.Unsubscribe(h)
}

// Unmount releases the history listener.  Any context accessor called
// after Unmount panics, the same as on a nil Provider: both indicate a
// wiring mistake in the component tree, not a runtime condition.
func (p *Provider) Unmount() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unmounted {
		return
	}
	p.unmounted = true
	if p.unlisten != nil {
		p.unlisten()
	}
}

func (p *Provider) mustMounted() {
	if p == nil {
		panic("nxrouter: context accessor called with no Provider mounted")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.unmounted {
		panic("nxrouter: context accessor called after Provider unmount")
	}
}
