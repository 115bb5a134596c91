package provider

// Registry maps provider names to providers. It is built once at startup and
// only read afterwards, so lookups take no lock. Construct it explicitly and
// hand it to whatever needs providers; there is no package-level instance.
type Registry struct {
	byName map[string]Provider
	order  []string // registration order for stable listing
}

func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Provider)}
}

// Register adds p under its name, overwriting any previous registration.
// Re-registering keeps the original position in listing order.
func (r *Registry) Register(p Provider) {
	name := p.Name()
	if _, exists := r.byName[name]; !exists {
		r.order = append(r.order, name)
	}
	r.byName[name] = p
}

// Get returns the provider registered under name. A missing name is an
// expected outcome, not an error: callers turn it into a client-facing 400.
func (r *Registry) Get(name string) (Provider, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// ListByType returns all providers of the given type in registration order.
func (r *Registry) ListByType(t Type) []Provider {
	out := make([]Provider, 0, len(r.order))
	for _, name := range r.order {
		if p := r.byName[name]; p.Type() == t {
			out = append(out, p)
		}
	}
	return out
}
