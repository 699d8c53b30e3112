package nxrouter

// RouterRef embeds a *Router so components can have one injected during
// creation without reaching for globals.
type RouterRef struct {
	*Router // embed Router
}

// RouterSet implements RouterSetter.
func (h *RouterRef) RouterSet(r *Router) {
	h.Router = r
}

// RouterSetter is implemented by anything that accepts a Router during
// wiring.
type RouterSetter interface {
	RouterSet(*Router)
}

// ProviderRef is the same injection pattern for the Provider, used by
// components that need the context accessors rather than navigation.
type ProviderRef struct {
	*Provider // embed Provider
}

// ProviderSet implements ProviderSetter.
func (h *ProviderRef) ProviderSet(p *Provider) {
	h.Provider = p
}

// ProviderSetter is implemented by anything that accepts a Provider
// during wiring.
type ProviderSetter interface {
	ProviderSet(*Provider)
}
