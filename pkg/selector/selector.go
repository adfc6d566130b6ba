// Package selector provides provider selection strategies. A selector maps
// a configuration to a provider type label; the factory uses that label to
// look up a constructor in the registry.
package selector

import (
	"strings"

	"github.com/finagents/provider-kit/pkg/types"
)

// ProviderSelector selects a provider type for a given configuration.
// Implementations must be pure functions of the configuration: no side
// effects, no I/O.
type ProviderSelector interface {
	SelectProviderType(config types.Config) types.ProviderType
}

// Rule maps a URL substring pattern to a provider type.
type Rule struct {
	Pattern string
	Type    types.ProviderType
}

// MappingBasedSelector selects a provider by matching URL substring patterns
// against the configured backend URL. Rules are evaluated in order and the
// first match wins; when no rule matches, the default type is returned.
type MappingBasedSelector struct {
	rules       []Rule
	defaultType types.ProviderType
}

// NewMappingBasedSelector creates a selector with the given rules and
// default provider type. Rule order is preserved and determines precedence.
func NewMappingBasedSelector(rules []Rule, defaultType types.ProviderType) *MappingBasedSelector {
	return &MappingBasedSelector{
		rules:       rules,
		defaultType: defaultType,
	}
}

// SelectProviderType returns the provider type for the first rule whose
// pattern occurs in the backend URL, or the default type when none match.
func (s *MappingBasedSelector) SelectProviderType(config types.Config) types.ProviderType {
	for _, rule := range s.rules {
		if strings.Contains(config.BackendURL, rule.Pattern) {
			return rule.Type
		}
	}
	return s.defaultType
}
