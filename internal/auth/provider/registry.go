package provider

import (
	"fmt"
	"sort"
)

// Registry holds the enabled OAuth providers by name.
// It performs no auth logic itself.
type Registry struct {
	providers map[string]OAuthProvider
	reserved  map[string]struct{}
}

// NewRegistry registers the given providers. A later provider with the
// same name replaces an earlier one; nil entries are skipped.
func NewRegistry(list ...OAuthProvider) *Registry {
	m := make(map[string]OAuthProvider, len(list))
	for _, p := range list {
		if p == nil {
			continue
		}
		m[p.Name()] = p
	}
	return &Registry{providers: m, reserved: map[string]struct{}{}}
}

// Reserve records a provider name that is known but switched off. Get
// reports ErrNotEnabled for it instead of ErrUnknownProvider.
func (r *Registry) Reserve(p OAuthProvider) {
	if _, ok := r.providers[p.Name()]; ok {
		return
	}
	r.reserved[p.Name()] = struct{}{}
}

// Get returns the provider registered under name, ErrNotEnabled for a
// reserved name, or ErrUnknownProvider.
func (r *Registry) Get(name string) (OAuthProvider, error) {
	if p, ok := r.providers[name]; ok {
		return p, nil
	}
	if _, ok := r.reserved[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrNotEnabled, name)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
}

// Names lists the registered provider names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
