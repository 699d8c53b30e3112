package nxrouter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/vugu/vugu"
)

// fetchErrMessage is the only error text subscribers ever see for a
// failed route load; transport and decode failures are deliberately
// indistinguishable at that level.
const fetchErrMessage = "Error fetching route"

// FetchStatus is the lifecycle state of a route data load.
type FetchStatus int

const (
	// StatusPending means the load has been initiated but not settled.
	StatusPending FetchStatus = iota
	// StatusDone means the load settled successfully.
	StatusDone
	// StatusFailed means the load settled with a transport or decode error.
	StatusFailed
)

func (s FetchStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusDone:
		return "done"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// ComponentInfo is handed to subscribers after a prefetch settles for
// the active route.  On failure Component is the empty renderable and
// Err is non-empty.
type ComponentInfo struct {
	Component vugu.Builder
	Data      map[string]any // decoded route payload, nil on failure
	Err       string
}

// ComponentFunc builds the renderable for a route from its fetched
// data.
type ComponentFunc func(path string, data map[string]any) vugu.Builder

// RouteFetchState is the externally visible fetch state for one route
// key.
type RouteFetchState struct {
	Path   string
	Status FetchStatus
	Result *ComponentInfo // set once the load settles
	Err    string         // set when Status is StatusFailed
}

type fetchState struct {
	path   string
	status FetchStatus
	info   ComponentInfo
}

// routeFetcher loads route data asynchronously, one in-flight load per
// distinct route key.  Shared by every Router handle built from the
// same instance.
type routeFetcher struct {
	mu     sync.Mutex
	routes map[string]*fetchState
	active string // the route the dispatcher currently renders

	subs   listenerRegistry[ComponentInfo]
	events *EventRegistry

	env     EventEnv
	client  *http.Client
	dataURL func(path string) string
	build   ComponentFunc
	log     *slog.Logger
}

func newRouteFetcher(env EventEnv) *routeFetcher {
	return &routeFetcher{
		routes:  make(map[string]*fetchState),
		events:  &EventRegistry{},
		env:     env,
		client:  http.DefaultClient,
		dataURL: defaultRouteDataURL,
		build:   func(path string, data map[string]any) vugu.Builder { return emptyBuilder{} },
		log:     slog.Default(),
	}
}

// defaultRouteDataURL maps a route path to the JSON document that backs
// it.
func defaultRouteDataURL(path string) string {
	if path == "" || path == "/" {
		return "/index.json"
	}
	return path + "/index.json"
}

func (f *routeFetcher) setDataURL(fn func(path string) string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fn != nil {
		f.dataURL = fn
	}
}

func (f *routeFetcher) setComponentFunc(fn ComponentFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if fn != nil {
		f.build = fn
	}
}

func (f *routeFetcher) setLogger(l *slog.Logger) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if l != nil {
		f.log = l
	}
}

func (f *routeFetcher) setActiveRoute(path string) {
	f.mu.Lock()
	f.active = path
	f.mu.Unlock()
}

func (f *routeFetcher) activeRoute() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

func (f *routeFetcher) subscribe(fn func(ComponentInfo)) ListenerHandle {
	return f.subs.add(fn)
}

func (f *routeFetcher) unsubscribe(h ListenerHandle) {
	f.subs.remove(h)
}

func (f *routeFetcher) state(path string) (RouteFetchState, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.routes[path]
	if !ok {
		return RouteFetchState{}, false
	}
	ret := RouteFetchState{Path: st.path, Status: st.status}
	if st.status != StatusPending {
		info := st.info
		ret.Result = &info
		ret.Err = info.Err
	}
	return ret, true
}

// fetch initiates a load for path unless one is already pending, in
// which case the call attaches to the in-flight load and the eventual
// notification is shared.
func (f *routeFetcher) fetch(ctx context.Context, path string) {
	f.mu.Lock()
	log := f.log
	if st, ok := f.routes[path]; ok && st.status == StatusPending {
		f.mu.Unlock()
		log.Debug("route fetch already pending, attaching", "path", path)
		return
	}
	st := &fetchState{path: path, status: StatusPending}
	f.routes[path] = st
	url := f.dataURL(path)
	client := f.client
	f.mu.Unlock()

	log.Debug("route fetch started", "path", path, "url", url)

	go func() {
		data, err := fetchRouteData(ctx, client, url)
		f.settle(st, data, err)
	}()
}

func fetchRouteData(ctx context.Context, client *http.Client, url string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRouteFetch, err)
	}
	// always revalidate, a stale cached document defeats the point of
	// prefetching fresh route data
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRouteFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrRouteFetch, resp.StatusCode)
	}

	var data map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		// a malformed document is reported exactly like a network failure
		return nil, fmt.Errorf("%w: decode: %v", ErrRouteFetch, err)
	}
	return data, nil
}

// settle records the outcome of a load and, if the route is still the
// active one, notifies subscribers and emits the lifecycle events.
// Results for routes that are no longer active are discarded without
// side effects.
func (f *routeFetcher) settle(st *fetchState, data map[string]any, err error) {
	f.mu.Lock()
	if cur, ok := f.routes[st.path]; !ok || cur != st {
		// superseded by a newer fetch for the same key
		f.mu.Unlock()
		return
	}
	build := f.build
	f.mu.Unlock()

	// the component hook runs outside the lock, it is caller code
	var info ComponentInfo
	if err != nil {
		info = ComponentInfo{Component: emptyBuilder{}, Err: fetchErrMessage}
	} else {
		info = ComponentInfo{Component: build(st.path, data), Data: data}
	}

	f.mu.Lock()
	if cur, ok := f.routes[st.path]; !ok || cur != st {
		f.mu.Unlock()
		return
	}
	if err != nil {
		st.status = StatusFailed
	} else {
		st.status = StatusDone
	}
	st.info = info
	active := f.active
	log := f.log
	stale := active != st.path
	if stale {
		delete(f.routes, st.path)
	}
	f.mu.Unlock()

	if stale {
		log.Warn("discarding route fetch for inactive route", "path", st.path, "active", active)
		return
	}

	if err != nil {
		log.Error("route fetch failed", "path", st.path, "err", err)
		f.events.emit(EventRouteChangeError, st.path)
	} else {
		log.Debug("route fetch complete", "path", st.path)
	}

	f.notify(info)
	f.events.emit(EventRouteChangeComplete, st.path)
}

// notify delivers info to every subscriber, under the event
// environment's write lock when one is present so the UI can re-render.
func (f *routeFetcher) notify(info ComponentInfo) {
	if f.env != nil {
		f.env.Lock()
		f.subs.notify(info)
		f.env.UnlockRender()
		return
	}
	f.subs.notify(info)
}
