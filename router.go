// Package nxrouter is a client-side navigation core for single-page
// applications compiled to wasm.  It tracks the active location,
// converts navigation intents into history-stack mutations, republishes
// location changes to subscribers and prefetches route data ahead of
// navigation.
package nxrouter

import (
	"context"
	"log/slog"
	"strings"
)

// EventEnv is our view of a Vugu EventEnv
type EventEnv interface {
	Lock()         // acquire write lock
	UnlockOnly()   // release write lock
	UnlockRender() // release write lock and request re-render
}

// RouterConfig holds the router's fixed configuration.  Basename never
// ends with "/"; the empty string means no prefixing.
type RouterConfig struct {
	Basename string
}

// New returns a new Router on top of the given history provider,
// mounted under basename.  A trailing "/" on basename is trimmed.
// eventEnv may be nil outside a rendering environment, in which case
// prefetch notifications run without the render lock.
func New(h History, basename string, eventEnv EventEnv) *Router {
	return &Router{
		history: h,
		cfg:     &RouterConfig{Basename: strings.TrimSuffix(basename, "/")},
		fetcher: newRouteFetcher(eventEnv),
	}
}

// Router is the stable user-facing navigation facade.  Copies of a
// Router alias the same underlying history provider, config and
// prefetch state; mutating through one handle is visible to all handles
// built from the same instance.
type Router struct {
	history History
	cfg     *RouterConfig
	fetcher *routeFetcher
}

// Basename returns the path prefix under which the application is
// mounted, "" if none.
func (r *Router) Basename() string { return r.cfg.Basename }

// Kind reports which history provider variant is active.
func (r *Router) Kind() HistoryKind { return r.history.Kind() }

// History returns the underlying history provider.
func (r *Router) History() History { return r.history }

// Back navigates back by one entry.
func (r *Router) Back() { r.Go(-1) }

// Forward navigates forward by one entry.
func (r *Router) Forward() { r.Go(1) }

// Go navigates by delta entries relative to the current one.
// See: https://developer.mozilla.org/en-US/docs/Web/API/History/go
func (r *Router) Go(delta int) { r.history.Go(delta) }

// Push pushes a route onto the history stack.
func (r *Router) Push(path string) {
	r.history.Push(r.PrefixBasename(path))
}

// Replace replaces the current history entry with the given route.
func (r *Router) Replace(path string) {
	r.history.Replace(r.PrefixBasename(path))
}

// PushWithState pushes a route carrying an opaque state value.
func (r *Router) PushWithState(path string, state any) error {
	p := r.PrefixBasename(path)
	return navErr(p, r.history.PushWithState(p, state))
}

// ReplaceWithState replaces the current entry with a route and state.
func (r *Router) ReplaceWithState(path string, state any) error {
	p := r.PrefixBasename(path)
	return navErr(p, r.history.ReplaceWithState(p, state))
}

// PushWithQuery pushes a route with a structured query value.  If the
// history provider cannot serialize the query, the error is returned to
// the caller and no location change event is emitted.
func (r *Router) PushWithQuery(path string, query any) error {
	p := r.PrefixBasename(path)
	return navErr(p, r.history.PushWithQuery(p, query))
}

// PushWithQueryAndState pushes a route with query and state.
func (r *Router) PushWithQueryAndState(path string, query, state any) error {
	p := r.PrefixBasename(path)
	return navErr(p, r.history.PushWithQueryAndState(p, query, state))
}

// ReplaceWithQueryAndState replaces the current entry with a route,
// query and state.
func (r *Router) ReplaceWithQueryAndState(path string, query, state any) error {
	p := r.PrefixBasename(path)
	return navErr(p, r.history.ReplaceWithQueryAndState(p, query, state))
}

// NavigateOpts carries the optional parts of a navigation intent.
type NavigateOpts struct {
	State  any  // opaque state, nil for none
	Query  any  // structured query value, nil for none
	NewTab bool // the target opens in a new tab or external context
}

// Navigate selects exactly one push variant for the given intent: a
// plain push when state and query are both absent, the state-only or
// query-only variant when one is present, and the combined variant when
// both are.  A plain push targeting a new-tab context is suppressed
// entirely, since the browser will itself navigate and pushing would
// put the URL on the stack twice.
func (r *Router) Navigate(path string, opts NavigateOpts) error {
	switch {
	case opts.State == nil && opts.Query == nil:
		if !opts.NewTab {
			r.Push(path)
		}
		return nil
	case opts.Query == nil:
		return r.PushWithState(path, opts.State)
	case opts.State == nil:
		return r.PushWithQuery(path, opts.Query)
	default:
		return r.PushWithQueryAndState(path, opts.Query, opts.State)
	}
}

// PrefixBasename prepends the configured basename to path.  With an
// empty basename this is the identity; with a non-empty basename and an
// empty path it yields "/".
func (r *Router) PrefixBasename(path string) string {
	base := r.Basename()
	if base == "" {
		return path
	}
	if path == "" {
		return "/"
	}
	return base + path
}

// StripBasename removes a leading basename match from path.  If the
// remainder does not start with "/", the basename is reinstated as a
// leading segment; callers depend on this behavior for malformed
// inputs, so it is kept as is.
func (r *Router) StripBasename(path string) string {
	base := r.Basename()
	if base == "" {
		return path
	}
	p := strings.TrimPrefix(path, base)
	if !strings.HasPrefix(p, "/") {
		return "/" + base
	}
	return p
}

// Prefetch asynchronously loads route data for the given path.  A fetch
// already in flight for the same path is joined, not duplicated.
func (r *Router) Prefetch(path string) {
	r.fetcher.fetch(context.Background(), path)
}

// FetchRoute is like Prefetch; it exists as the explicit entry point
// for collaborators that load on navigation rather than ahead of it.
func (r *Router) FetchRoute(path string) {
	r.fetcher.fetch(context.Background(), path)
}

// FetchRouteContext is FetchRoute with a caller-supplied context, which
// is the only way to put a deadline on a route load; by default a hung
// load stays pending until a later navigation supersedes it.
func (r *Router) FetchRouteContext(ctx context.Context, path string) {
	r.fetcher.fetch(ctx, path)
}

// RouteState reports the fetch state tracked for path, if any.
func (r *Router) RouteState(path string) (RouteFetchState, bool) {
	return r.fetcher.state(path)
}

// SetActiveRoute informs the prefetch engine which route is currently
// rendered.  Results settling for any other route are discarded without
// notifying subscribers.  The Provider calls this on every location
// change; it only needs to be called directly when a Router is used
// without a Provider.
func (r *Router) SetActiveRoute(path string) {
	r.fetcher.setActiveRoute(path)
}

// Subscribe registers fn to be notified with the ComponentInfo of every
// fetch that completes for the active route.
func (r *Router) Subscribe(fn func(ComponentInfo)) ListenerHandle {
	return r.fetcher.subscribe(fn)
}

// Unsubscribe removes a previous Subscribe registration.  Idempotent.
func (r *Router) Unsubscribe(h ListenerHandle) {
	r.fetcher.unsubscribe(h)
}

// Events returns the lifecycle event registry for this router.
func (r *Router) Events() *EventRegistry { return r.fetcher.events }

// SetRouteDataURL overrides how a route path maps to the URL its data
// is fetched from.  The default is "<path>/index.json".
func (r *Router) SetRouteDataURL(f func(path string) string) {
	r.fetcher.setDataURL(f)
}

// SetComponentFunc overrides how fetched route data is turned into the
// renderable handed to subscribers.
func (r *Router) SetComponentFunc(f ComponentFunc) {
	r.fetcher.setComponentFunc(f)
}

// SetLogger replaces the logger used by the prefetch engine.
func (r *Router) SetLogger(l *slog.Logger) {
	r.fetcher.setLogger(l)
}
