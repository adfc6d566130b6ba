// Package common holds helpers shared by the concrete provider
// implementations.
package common

import (
	"os"
	"strings"

	"github.com/finagents/provider-kit/pkg/types"
)

// ResolveAPIKey returns the API key for a provider. Precedence: explicit
// key in config, then the env var named by config, then the provider's
// conventional env var.
func ResolveAPIKey(config types.Config, defaultEnv string) string {
	if config.APIKey != "" {
		return config.APIKey
	}
	if config.APIKeyEnv != "" {
		if key := os.Getenv(config.APIKeyEnv); key != "" {
			return key
		}
	}
	return os.Getenv(defaultEnv)
}

// BaseURL returns the configured backend URL without a trailing slash,
// falling back to the provider default when unset.
func BaseURL(config types.Config, fallback string) string {
	url := config.BackendURL
	if url == "" {
		url = fallback
	}
	return strings.TrimSuffix(url, "/")
}

// ModelOrDefault returns model when non-empty, otherwise fallback.
func ModelOrDefault(model, fallback string) string {
	if model != "" {
		return model
	}
	return fallback
}
