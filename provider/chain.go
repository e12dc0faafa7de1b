package provider

// Chain is an ordered list of Providers consulted together. It does not
// itself race the providers — that cooperative-cancellation behavior lives
// in package walker, which needs a context per call — but it is the
// typed collection the walker is constructed from, and it knows which of
// its members are remote.
type Chain struct {
	Providers []Provider
}

// NewChain builds a Chain from providers in priority order. Every provider
// is always raced and an exact match from any of them wins; order breaks
// ties between equal-version non-exact matches, the earlier provider
// winning.
func NewChain(providers ...Provider) *Chain {
	return &Chain{Providers: providers}
}

// HasRemote reports whether any provider in the chain is remote. The
// walker's race does not consult it: local and remote providers are
// awaited alike.
func (c *Chain) HasRemote() bool {
	for _, p := range c.Providers {
		if p.IsHTTP() {
			return true
		}
	}
	return false
}

// Local returns the subset of the chain that is not remote.
func (c *Chain) Local() []Provider {
	var out []Provider
	for _, p := range c.Providers {
		if !p.IsHTTP() {
			out = append(out, p)
		}
	}
	return out
}

// ByName returns the provider registered under name, or nil.
func (c *Chain) ByName(name string) Provider {
	for _, p := range c.Providers {
		if p.Name() == name {
			return p
		}
	}
	return nil
}
