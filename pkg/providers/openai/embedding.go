package openai

import (
	"context"

	"github.com/finagents/provider-kit/internal/httpclient"
	"github.com/finagents/provider-kit/pkg/providers/common"
	"github.com/finagents/provider-kit/pkg/types"
)

// OpenAIEmbeddingProvider implements EmbeddingProvider via the embeddings
// endpoint of an OpenAI-compatible backend.
type OpenAIEmbeddingProvider struct {
	model      string
	baseURL    string
	apiKey     string
	httpClient *httpclient.Client
	dimensions int
}

// NewOpenAIEmbeddingProvider creates a new OpenAI embedding provider
func NewOpenAIEmbeddingProvider(config types.Config) *OpenAIEmbeddingProvider {
	return &OpenAIEmbeddingProvider{
		model:   common.ModelOrDefault(config.EmbeddingModel, defaultEmbeddingModel),
		baseURL: common.BaseURL(config, defaultBaseURL),
		apiKey:  common.ResolveAPIKey(config, apiKeyEnv),
		httpClient: httpclient.New(httpclient.Config{
			Timeout: config.Timeout,
		}),
	}
}

// Name returns the provider name
func (p *OpenAIEmbeddingProvider) Name() string {
	return "OpenAI"
}

// Type returns the provider type
func (p *OpenAIEmbeddingProvider) Type() types.ProviderType {
	return types.ProviderTypeOpenAI
}

// Description returns the provider description
func (p *OpenAIEmbeddingProvider) Description() string {
	return "Embeddings via an OpenAI-compatible embeddings endpoint"
}

type embeddingRequest struct {
	Model string `json:"model"`
	Input string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Embedding []float32 `json:"embedding"`
	} `json:"data"`
}

// CreateEmbedding generates an embedding vector for the given text
func (p *OpenAIEmbeddingProvider) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, types.NewInvalidRequestError(types.ProviderTypeOpenAI, "text must not be empty").
			WithOperation("create_embedding")
	}

	headers := map[string]string{}
	if p.apiKey != "" {
		headers["Authorization"] = "Bearer " + p.apiKey
	}

	var response embeddingResponse
	requestID, statusCode, err := p.httpClient.PostJSON(ctx, p.baseURL+"/embeddings", headers, embeddingRequest{
		Model: p.model,
		Input: text,
	}, &response)
	if err != nil {
		return nil, types.NewProviderError(types.ProviderTypeOpenAI, types.ErrCodeServerError, err.Error()).
			WithOperation("create_embedding").
			WithStatusCode(statusCode).
			WithRequestID(requestID).
			WithOriginalErr(err)
	}

	if len(response.Data) == 0 {
		return nil, types.NewServerError(types.ProviderTypeOpenAI, statusCode, "response contained no embeddings").
			WithOperation("create_embedding").
			WithRequestID(requestID)
	}

	embedding := response.Data[0].Embedding
	p.dimensions = len(embedding)
	return embedding, nil
}

// Dimensions returns the embedding vector size observed on the last call,
// or 0 before the first call.
func (p *OpenAIEmbeddingProvider) Dimensions() int {
	return p.dimensions
}
