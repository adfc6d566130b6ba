package gemini

import (
	"context"
	"fmt"

	"github.com/finagents/provider-kit/internal/httpclient"
	"github.com/finagents/provider-kit/pkg/providers/common"
	"github.com/finagents/provider-kit/pkg/types"
)

// GeminiEmbeddingProvider implements EmbeddingProvider via the Generative
// Language embedContent endpoint.
type GeminiEmbeddingProvider struct {
	model      string
	baseURL    string
	apiKey     string
	httpClient *httpclient.Client
	dimensions int
}

// NewGeminiEmbeddingProvider creates a new Gemini embedding provider
func NewGeminiEmbeddingProvider(config types.Config) *GeminiEmbeddingProvider {
	return &GeminiEmbeddingProvider{
		model:   common.ModelOrDefault(config.EmbeddingModel, defaultEmbeddingModel),
		baseURL: common.BaseURL(config, defaultBaseURL),
		apiKey:  resolveAPIKey(config),
		httpClient: httpclient.New(httpclient.Config{
			Timeout: config.Timeout,
		}),
	}
}

// Name returns the provider name
func (p *GeminiEmbeddingProvider) Name() string {
	return "Gemini"
}

// Type returns the provider type
func (p *GeminiEmbeddingProvider) Type() types.ProviderType {
	return types.ProviderTypeGemini
}

// Description returns the provider description
func (p *GeminiEmbeddingProvider) Description() string {
	return "Embeddings via the Generative Language embedContent endpoint"
}

type embedContentRequest struct {
	Content content `json:"content"`
}

type embedContentResponse struct {
	Embedding struct {
		Values []float32 `json:"values"`
	} `json:"embedding"`
}

// CreateEmbedding generates an embedding vector for the given text
func (p *GeminiEmbeddingProvider) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, types.NewInvalidRequestError(types.ProviderTypeGemini, "text must not be empty").
			WithOperation("create_embedding")
	}

	headers := map[string]string{}
	if p.apiKey != "" {
		headers["x-goog-api-key"] = p.apiKey
	}

	url := fmt.Sprintf("%s/models/%s:embedContent", p.baseURL, p.model)

	var response embedContentResponse
	requestID, statusCode, err := p.httpClient.PostJSON(ctx, url, headers, embedContentRequest{
		Content: content{Parts: []part{{Text: text}}},
	}, &response)
	if err != nil {
		return nil, types.NewProviderError(types.ProviderTypeGemini, codeForStatus(statusCode), err.Error()).
			WithOperation("create_embedding").
			WithStatusCode(statusCode).
			WithRequestID(requestID).
			WithOriginalErr(err)
	}

	if len(response.Embedding.Values) == 0 {
		return nil, types.NewServerError(types.ProviderTypeGemini, statusCode, "response contained no embedding values").
			WithOperation("create_embedding").
			WithRequestID(requestID)
	}

	p.dimensions = len(response.Embedding.Values)
	return response.Embedding.Values, nil
}

// Dimensions returns the embedding vector size observed on the last call,
// or 0 before the first call.
func (p *GeminiEmbeddingProvider) Dimensions() int {
	return p.dimensions
}
