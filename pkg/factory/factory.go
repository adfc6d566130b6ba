package factory

import (
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/finagents/provider-kit/pkg/selector"
	"github.com/finagents/provider-kit/pkg/types"
)

// SearchProviderFactory creates search providers with caching. Two calls
// whose configurations agree on the identity-determining fields (backend
// URL and quick-think model) return the identical provider instance, so
// callers can treat providers as reusable singletons holding connection
// state without re-paying construction cost.
//
// The cache is guarded by a mutex: concurrent calls racing on the same new
// cache key construct at most one instance.
type SearchProviderFactory struct {
	registry *SearchProviderRegistry
	selector selector.ProviderSelector
	cache    map[string]types.SearchProvider
	mutex    sync.RWMutex
}

// NewSearchProviderFactory creates a factory from a registry and a
// selection strategy. The factory owns its cache; construct one per
// composition root (or per test) rather than sharing a global.
func NewSearchProviderFactory(registry *SearchProviderRegistry, sel selector.ProviderSelector) *SearchProviderFactory {
	return &SearchProviderFactory{
		registry: registry,
		selector: sel,
		cache:    make(map[string]types.SearchProvider),
	}
}

// cacheKey digests the configuration fields that determine provider
// identity. Unrelated configuration changes must not invalidate the cache,
// so only the backend URL and quick-think model participate. Map keys are
// serialized in sorted order by encoding/json, which keeps the digest
// canonical.
func cacheKey(config types.Config) string {
	keyData, _ := json.Marshal(map[string]string{
		"backend_url": config.BackendURL,
		"model":       config.QuickThinkLLM,
	})
	sum := md5.Sum(keyData)
	return hex.EncodeToString(sum[:])
}

// CreateProvider returns the search provider for the given configuration,
// constructing and caching it on first use. It fails only when the selected
// provider type has no registered constructor.
func (f *SearchProviderFactory) CreateProvider(config types.Config) (types.SearchProvider, error) {
	key := cacheKey(config)

	f.mutex.RLock()
	provider, exists := f.cache[key]
	f.mutex.RUnlock()
	if exists {
		return provider, nil
	}

	f.mutex.Lock()
	defer f.mutex.Unlock()

	// Another caller may have constructed the provider while we waited
	// for the write lock.
	if provider, exists := f.cache[key]; exists {
		return provider, nil
	}

	providerType := f.selector.SelectProviderType(config)
	provider, err := f.registry.Create(providerType, config)
	if err != nil {
		return nil, err
	}

	f.cache[key] = provider
	return provider, nil
}

// ClearCache empties the provider cache unconditionally. Subsequent calls
// construct fresh instances. Intended for configuration changes and test
// isolation; there is no selective invalidation.
func (f *SearchProviderFactory) ClearCache() {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	f.cache = make(map[string]types.SearchProvider)
}

// AvailableProviderTypes returns the provider types registered with the
// underlying registry.
func (f *SearchProviderFactory) AvailableProviderTypes() []types.ProviderType {
	return f.registry.AvailableTypes()
}
