// Package types defines the core types and interfaces shared by the
// provider-kit packages. It includes provider type labels, configuration,
// capability interfaces, and standardized provider errors.
package types

import (
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ProviderType represents the type of provider backend
type ProviderType string

const (
	ProviderTypeOpenAI ProviderType = "openai"
	ProviderTypeGoogle ProviderType = "google"
	ProviderTypeGemini ProviderType = "gemini"
	ProviderTypeOllama ProviderType = "ollama"
)

// Config represents the configuration for provider selection and construction.
// BackendURL and QuickThinkLLM are the fields that determine provider identity;
// everything else is passed through to the constructed provider unchanged.
type Config struct {
	// BackendURL is the base URL of the model backend. Provider selection
	// matches substring patterns against this value.
	BackendURL string `json:"backend_url" yaml:"backend_url"`

	// QuickThinkLLM is the model used for fast search/summarization calls
	// (e.g. "gpt-4o-mini", "gemini-2.0-flash").
	QuickThinkLLM string `json:"quick_think_llm,omitempty" yaml:"quick_think_llm"`

	// EmbeddingModel overrides the provider's default embedding model.
	EmbeddingModel string `json:"embedding_model,omitempty" yaml:"embedding_model"`

	// APIKey authenticates requests to the backend. APIKeyEnv names an
	// environment variable to read the key from when APIKey is empty.
	APIKey    string `json:"api_key,omitempty" yaml:"api_key"`
	APIKeyEnv string `json:"api_key_env,omitempty" yaml:"api_key_env"`

	// Timeout bounds a single provider request. Zero means the provider default.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout"`

	// Extra holds provider-specific settings that do not affect selection
	// or cache identity.
	Extra map[string]interface{} `json:"extra,omitempty" yaml:"extra"`
}

// UnmarshalYAML implements yaml.Unmarshaler so timeout values can be written
// as human-readable durations like "30s".
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type rawConfig struct {
		BackendURL     string                 `yaml:"backend_url"`
		QuickThinkLLM  string                 `yaml:"quick_think_llm"`
		EmbeddingModel string                 `yaml:"embedding_model"`
		APIKey         string                 `yaml:"api_key"`
		APIKeyEnv      string                 `yaml:"api_key_env"`
		Timeout        string                 `yaml:"timeout"`
		Extra          map[string]interface{} `yaml:"extra"`
	}

	var raw rawConfig
	if err := value.Decode(&raw); err != nil {
		return err
	}

	c.BackendURL = raw.BackendURL
	c.QuickThinkLLM = raw.QuickThinkLLM
	c.EmbeddingModel = raw.EmbeddingModel
	c.APIKey = raw.APIKey
	c.APIKeyEnv = raw.APIKeyEnv
	c.Extra = raw.Extra

	if raw.Timeout != "" {
		timeout, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return fmt.Errorf("parse timeout: %w", err)
		}
		c.Timeout = timeout
	}

	return nil
}
