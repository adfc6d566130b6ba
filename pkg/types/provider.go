package types

import "context"

// ============================================================================
// Interface Segregation - Focused Provider Interfaces
// ============================================================================

// CoreProvider defines the essential identity methods that all providers
// must implement.
type CoreProvider interface {
	Name() string
	Type() ProviderType
	Description() string
}

// HealthCheckProvider defines health monitoring for providers that can
// report backend reachability.
type HealthCheckProvider interface {
	HealthCheck(ctx context.Context) error
}

// SearchResult represents the outcome of a web search call.
type SearchResult struct {
	Query    string       `json:"query"`
	Content  string       `json:"content"`
	Sources  []Source     `json:"sources,omitempty"`
	Model    string       `json:"model,omitempty"`
	Provider ProviderType `json:"provider"`
}

// Source is a citation attached to a search result.
type Source struct {
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// SearchProvider defines the web search capability. Implementations perform
// a grounded search via their backend and return synthesized results with
// citations where the backend supplies them.
type SearchProvider interface {
	CoreProvider

	// Search performs a web search for the given query.
	Search(ctx context.Context, query string) (*SearchResult, error)
}

// EmbeddingProvider defines the embedding generation capability.
type EmbeddingProvider interface {
	CoreProvider

	// CreateEmbedding generates an embedding vector for the given text.
	CreateEmbedding(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size, or 0 if unknown
	// before the first call.
	Dimensions() int
}
