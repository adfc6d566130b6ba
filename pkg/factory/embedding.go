package factory

import (
	"strings"

	"github.com/finagents/provider-kit/pkg/providers/gemini"
	"github.com/finagents/provider-kit/pkg/providers/ollama"
	"github.com/finagents/provider-kit/pkg/providers/openai"
	"github.com/finagents/provider-kit/pkg/types"
)

// NewEmbeddingProvider creates an embedding provider for the given
// configuration by matching the backend URL against a fixed, ordered set of
// patterns. Unlike the search factory there is no registry and no cache:
// dispatch is stateless and always resolves, falling through to the
// OpenAI-compatible provider for unrecognized backends.
func NewEmbeddingProvider(config types.Config) types.EmbeddingProvider {
	backendURL := config.BackendURL

	switch {
	case strings.Contains(backendURL, "generativelanguage.googleapis.com"):
		return gemini.NewGeminiEmbeddingProvider(config)
	case strings.Contains(backendURL, "localhost:11434"):
		return ollama.NewOllamaEmbeddingProvider(config)
	default:
		return openai.NewOpenAIEmbeddingProvider(config)
	}
}
