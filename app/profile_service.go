package app

import (
	"nomen/domain/core"
	"nomen/domain/profile"
)

// ProfileService exposes read and registration access to domain profiles.
// Profiles are configuration: registration validates eagerly so a bad
// profile fails at startup rather than mid-run.
type ProfileService struct {
	registry *profile.Registry
}

// NewProfileService creates a profile service
func NewProfileService(registry *profile.Registry) *ProfileService {
	return &ProfileService{registry: registry}
}

// Get returns the profile for a domain, or a configuration error.
func (s *ProfileService) Get(domain core.DomainID) (*profile.DomainProfile, error) {
	return s.registry.Get(domain)
}

// Put validates and registers a profile.
func (s *ProfileService) Put(p *profile.DomainProfile) error {
	return s.registry.Put(p)
}

// Domains lists the registered domain ids in sorted order.
func (s *ProfileService) Domains() []core.DomainID {
	return s.registry.Domains()
}
