// Package registry collects constructed providers by name and materializes
// the configured fallback order into a priority list.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/profia/tutoria/internal/domain"
)

// Registry holds the providers that were successfully constructed at
// startup. Providers whose credential is absent are never registered, so a
// name missing from the registry is a normal condition, not an error.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]domain.Provider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]domain.Provider),
	}
}

// Register adds a provider to the registry.
func (r *Registry) Register(provider domain.Provider) error {
	if provider == nil {
		return errors.New("provider cannot be nil")
	}

	name := provider.Name()
	if name == "" {
		return errors.New("provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider %s already registered", name)
	}

	r.providers[name] = provider

	return nil
}

// Get retrieves a provider by name.
func (r *Registry) Get(name string) (domain.Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, ok := r.providers[name]
	return provider, ok
}

// Names returns all registered provider names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}

	return names
}

// Resolve materializes the configured order into a provider priority list.
// Known-but-unregistered names are skipped (credential absent); a name that
// was never a known provider is a configuration mistake and errors.
func (r *Registry) Resolve(order []string, known map[string]bool) ([]domain.Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	providers := make([]domain.Provider, 0, len(order))
	for _, name := range order {
		if provider, ok := r.providers[name]; ok {
			providers = append(providers, provider)
			continue
		}
		if !known[name] {
			return nil, fmt.Errorf("unknown provider in chain order: %s", name)
		}
	}

	return providers, nil
}
