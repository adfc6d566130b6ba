// Package factory provides provider registration, selection, and creation
// for search and embedding providers. It includes a constructor registry,
// a caching factory keyed on the configuration fields that determine
// provider identity, and default wiring for the built-in providers.
package factory

import (
	"sync"

	"github.com/finagents/provider-kit/pkg/types"
)

// SearchProviderConstructor builds a search provider from configuration.
type SearchProviderConstructor func(config types.Config) types.SearchProvider

// SearchProviderRegistry maps provider type labels to constructor functions.
// Registering the same label twice overwrites the previous constructor.
type SearchProviderRegistry struct {
	constructors map[types.ProviderType]SearchProviderConstructor
	mutex        sync.RWMutex
}

// NewSearchProviderRegistry creates an empty registry
func NewSearchProviderRegistry() *SearchProviderRegistry {
	return &SearchProviderRegistry{
		constructors: make(map[types.ProviderType]SearchProviderConstructor),
	}
}

// Register associates a provider type with a constructor function.
// Last write wins; re-registering a type is not an error.
func (r *SearchProviderRegistry) Register(providerType types.ProviderType, constructor SearchProviderConstructor) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.constructors[providerType] = constructor
}

// Create builds a provider instance using the registered constructor for
// the given type. It returns an unknown-provider error when the type was
// never registered; no construction happens in that case.
func (r *SearchProviderRegistry) Create(providerType types.ProviderType, config types.Config) (types.SearchProvider, error) {
	r.mutex.RLock()
	constructor, exists := r.constructors[providerType]
	r.mutex.RUnlock()

	if !exists {
		return nil, types.NewUnknownProviderError(providerType).WithOperation("create")
	}

	return constructor(config), nil
}

// AvailableTypes returns all registered provider types. Order is not
// meaningful.
func (r *SearchProviderRegistry) AvailableTypes() []types.ProviderType {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	providerTypes := make([]types.ProviderType, 0, len(r.constructors))
	for providerType := range r.constructors {
		providerTypes = append(providerTypes, providerType)
	}

	return providerTypes
}
