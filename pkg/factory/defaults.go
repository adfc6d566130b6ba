package factory

import (
	"github.com/finagents/provider-kit/pkg/providers/gemini"
	"github.com/finagents/provider-kit/pkg/providers/openai"
	"github.com/finagents/provider-kit/pkg/selector"
	"github.com/finagents/provider-kit/pkg/types"
)

// RegisterDefaultSearchProviders registers the built-in search providers
// with the registry.
func RegisterDefaultSearchProviders(registry *SearchProviderRegistry) {
	// Register Google search provider backed by Gemini grounding
	registry.Register(types.ProviderTypeGoogle, func(config types.Config) types.SearchProvider {
		return gemini.NewGoogleSearchProvider(config)
	})

	// Register OpenAI search provider; also serves OpenAI-compatible backends
	registry.Register(types.ProviderTypeOpenAI, func(config types.Config) types.SearchProvider {
		return openai.NewOpenAISearchProvider(config)
	})
}

// DefaultSearchSelector returns the URL pattern selector used by the
// default factory. Rule order determines precedence; unmatched URLs fall
// through to the OpenAI-compatible provider.
func DefaultSearchSelector() *selector.MappingBasedSelector {
	return selector.NewMappingBasedSelector([]selector.Rule{
		{Pattern: "generativelanguage.googleapis.com", Type: types.ProviderTypeGoogle},
		{Pattern: "api.openai.com", Type: types.ProviderTypeOpenAI},
	}, types.ProviderTypeOpenAI)
}

// NewDefaultSearchProviderFactory creates a caching factory wired with the
// default providers and URL pattern mappings. Callers own the returned
// value; there is no package-level singleton.
func NewDefaultSearchProviderFactory() *SearchProviderFactory {
	registry := NewSearchProviderRegistry()
	RegisterDefaultSearchProviders(registry)

	return NewSearchProviderFactory(registry, DefaultSearchSelector())
}
