// Package ollama provides an Ollama embedding provider for local model
// inference. Local Ollama instances require no authentication.
package ollama

import (
	"context"

	"github.com/finagents/provider-kit/internal/httpclient"
	"github.com/finagents/provider-kit/pkg/providers/common"
	"github.com/finagents/provider-kit/pkg/types"
)

const (
	defaultBaseURL        = "http://localhost:11434"
	defaultEmbeddingModel = "nomic-embed-text"
)

// OllamaEmbeddingProvider implements EmbeddingProvider via the Ollama
// embeddings API.
type OllamaEmbeddingProvider struct {
	model      string
	baseURL    string
	httpClient *httpclient.Client
	dimensions int
}

// NewOllamaEmbeddingProvider creates a new Ollama embedding provider
func NewOllamaEmbeddingProvider(config types.Config) *OllamaEmbeddingProvider {
	return &OllamaEmbeddingProvider{
		model:   common.ModelOrDefault(config.EmbeddingModel, defaultEmbeddingModel),
		baseURL: common.BaseURL(config, defaultBaseURL),
		httpClient: httpclient.New(httpclient.Config{
			Timeout: config.Timeout,
		}),
	}
}

// Name returns the provider name
func (p *OllamaEmbeddingProvider) Name() string {
	return "Ollama"
}

// Type returns the provider type
func (p *OllamaEmbeddingProvider) Type() types.ProviderType {
	return types.ProviderTypeOllama
}

// Description returns the provider description
func (p *OllamaEmbeddingProvider) Description() string {
	return "Embeddings via a local Ollama instance"
}

type embeddingsRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embeddingsResponse struct {
	Embedding []float32 `json:"embedding"`
}

// CreateEmbedding generates an embedding vector for the given text
func (p *OllamaEmbeddingProvider) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, types.NewInvalidRequestError(types.ProviderTypeOllama, "text must not be empty").
			WithOperation("create_embedding")
	}

	var response embeddingsResponse
	requestID, statusCode, err := p.httpClient.PostJSON(ctx, p.baseURL+"/api/embeddings", nil, embeddingsRequest{
		Model:  p.model,
		Prompt: text,
	}, &response)
	if err != nil {
		return nil, types.NewProviderError(types.ProviderTypeOllama, types.ErrCodeNetwork, err.Error()).
			WithOperation("create_embedding").
			WithStatusCode(statusCode).
			WithRequestID(requestID).
			WithOriginalErr(err)
	}

	if len(response.Embedding) == 0 {
		return nil, types.NewServerError(types.ProviderTypeOllama, statusCode, "response contained no embedding").
			WithOperation("create_embedding").
			WithRequestID(requestID)
	}

	p.dimensions = len(response.Embedding)
	return response.Embedding, nil
}

// Dimensions returns the embedding vector size observed on the last call,
// or 0 before the first call.
func (p *OllamaEmbeddingProvider) Dimensions() int {
	return p.dimensions
}

// HealthCheck verifies the local Ollama instance is reachable
func (p *OllamaEmbeddingProvider) HealthCheck(ctx context.Context) error {
	resp, err := p.httpClient.Get(ctx, p.baseURL+"/api/tags", nil)
	if err != nil {
		return types.NewNetworkError(types.ProviderTypeOllama, err).WithOperation("health_check")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 500 {
		return types.NewServerError(types.ProviderTypeOllama, resp.StatusCode, "backend unhealthy").
			WithOperation("health_check")
	}
	return nil
}
