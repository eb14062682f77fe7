package profile

import (
	"sort"
	"sync"

	"nomen/domain/core"
)

// Registry holds the set of authored profiles for a process. It is an
// explicit, injected configuration context - never a package-level global -
// so concurrent scoring of different domains cannot interfere.
type Registry struct {
	mu       sync.RWMutex
	profiles map[core.DomainID]*DomainProfile
}

// NewRegistry creates an empty profile registry
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[core.DomainID]*DomainProfile)}
}

// NewBuiltinRegistry creates a registry preloaded with the authored
// profiles for the shipping domains.
func NewBuiltinRegistry() *Registry {
	r := NewRegistry()
	for _, p := range BuiltinProfiles() {
		// Builtin profiles are validated by their tests; Put cannot fail here.
		_ = r.Put(p)
	}
	return r
}

// Get returns the profile for a domain. A missing profile is a
// configuration error: callers must fail fast, not default.
func (r *Registry) Get(domain core.DomainID) (*DomainProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[domain]
	if !ok {
		return nil, core.NewUnknownDomainError(domain)
	}
	return p, nil
}

// Put registers or replaces a profile after validation.
func (r *Registry) Put(p *DomainProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.Domain] = p
	return nil
}

// Domains lists registered domain ids in sorted order.
func (r *Registry) Domains() []core.DomainID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]core.DomainID, 0, len(r.profiles))
	for d := range r.profiles {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
