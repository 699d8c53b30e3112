package nxrouter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vugu/vugu"
)

func TestProviderMount(t *testing.T) {

	assert := assert.New(t)

	h := NewMemoryHistory("/app/start")
	p := NewProvider(h, "/app", nil)

	// the store is seeded from the live history location on mount
	assert.Equal("/app/start", p.CurrentLocation().Path)
	assert.Equal("/start", p.CurrentRoute())
	assert.Equal("/app", p.CurrentRouter().Basename())
	assert.Equal(KindMemory, p.CurrentRouter().Kind())

}

func TestProviderLocationFlow(t *testing.T) {

	assert := assert.New(t)

	h := NewMemoryHistory()
	p := NewProvider(h, "", nil)
	r := p.CurrentRouter()

	var revs []uint32
	var paths []string
	p.SubscribeLocation(func(ctx LocationContext) {
		revs = append(revs, ctx.Revision)
		paths = append(paths, ctx.Location.Path)
	})

	r.Push("/blog")
	r.Push("/blog") // same path still produces a distinct revision
	r.Replace("/about")

	assert.Equal([]string{"/blog", "/blog", "/about"}, paths)
	require.Len(t, revs, 3)
	assert.Less(revs[0], revs[1])
	assert.Less(revs[1], revs[2])

	assert.Equal("/about", p.CurrentRoute())

}

func TestProviderAnchorPath(t *testing.T) {

	h := NewMemoryHistory()
	p := NewProvider(h, "", nil)

	p.CurrentRouter().Push("#contact")

	// the dispatcher must see the anchor exactly as pushed
	assert.Equal(t, "#contact", p.CurrentRoute())

	rendered := ""
	Dispatch(p.CurrentRoute(), "/", func(path string) vugu.Builder {
		rendered = path
		return EmptyBuilder()
	})
	assert.Equal(t, "#contact", rendered)

}

func TestProviderActiveRouteFollowsLocation(t *testing.T) {

	h := NewMemoryHistory()
	p := NewProvider(h, "/app", nil)
	r := p.CurrentRouter()

	r.Push("/blog")
	assert.Equal(t, "/blog", r.fetcher.activeRoute())

	r.Push("/about")
	assert.Equal(t, "/about", r.fetcher.activeRoute())

}

func TestProviderUnmount(t *testing.T) {

	h := NewMemoryHistory()
	p := NewProvider(h, "", nil)

	notified := 0
	p.SubscribeLocation(func(LocationContext) { notified++ })

	p.CurrentRouter().Push("/a")
	assert.Equal(t, 1, notified)

	router := p.CurrentRouter()
	p.Unmount()
	p.Unmount() // idempotent

	// history events no longer reach the store
	router.Push("/b")
	assert.Equal(t, 1, notified)

	require.Panics(t, func() { p.CurrentRoute() })
	require.Panics(t, func() { p.CurrentLocation() })

	var missing *Provider
	require.Panics(t, func() { missing.CurrentRouter() })

}

func TestRouterRefInjection(t *testing.T) {

	h := NewMemoryHistory()
	p := NewProvider(h, "", nil)

	type navComponent struct {
		RouterRef
	}

	var c navComponent
	var setter RouterSetter = &c.RouterRef
	setter.RouterSet(p.CurrentRouter())

	c.Push("/linked")
	assert.Equal(t, "/linked", p.CurrentRoute())

}
