// Package openai provides OpenAI-backed search and embedding providers.
// Both work against any OpenAI-compatible backend, which makes this package
// the fall-through default for provider selection.
package openai

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/finagents/provider-kit/internal/httpclient"
	"github.com/finagents/provider-kit/pkg/providers/common"
	"github.com/finagents/provider-kit/pkg/types"
)

const (
	defaultBaseURL        = "https://api.openai.com/v1"
	defaultSearchModel    = "gpt-4o-mini"
	defaultEmbeddingModel = "text-embedding-3-small"
	apiKeyEnv             = "OPENAI_API_KEY"
)

// OpenAISearchProvider implements SearchProvider via the chat completions
// endpoint with the web_search tool enabled.
type OpenAISearchProvider struct {
	config     types.Config
	model      string
	baseURL    string
	apiKey     string
	httpClient *httpclient.Client
	limiter    *rate.Limiter
}

// NewOpenAISearchProvider creates a new OpenAI search provider
func NewOpenAISearchProvider(config types.Config) *OpenAISearchProvider {
	return &OpenAISearchProvider{
		config:  config,
		model:   common.ModelOrDefault(config.QuickThinkLLM, defaultSearchModel),
		baseURL: common.BaseURL(config, defaultBaseURL),
		apiKey:  common.ResolveAPIKey(config, apiKeyEnv),
		httpClient: httpclient.New(httpclient.Config{
			Timeout: config.Timeout,
		}),
		limiter: rate.NewLimiter(rate.Every(time.Minute/60), 60),
	}
}

// Name returns the provider name
func (p *OpenAISearchProvider) Name() string {
	return "OpenAI"
}

// Type returns the provider type
func (p *OpenAISearchProvider) Type() types.ProviderType {
	return types.ProviderTypeOpenAI
}

// Description returns the provider description
func (p *OpenAISearchProvider) Description() string {
	return "Web search via OpenAI-compatible chat completions with the web_search tool"
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model            string         `json:"model"`
	Messages         []chatMessage  `json:"messages"`
	WebSearchOptions *webSearchOpts `json:"web_search_options,omitempty"`
}

type webSearchOpts struct {
	SearchContextSize string `json:"search_context_size,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content     string `json:"content"`
			Annotations []struct {
				Type        string `json:"type"`
				URLCitation struct {
					Title string `json:"title"`
					URL   string `json:"url"`
				} `json:"url_citation"`
			} `json:"annotations"`
		} `json:"message"`
	} `json:"choices"`
}

// Search performs a web search for the given query
func (p *OpenAISearchProvider) Search(ctx context.Context, query string) (*types.SearchResult, error) {
	if query == "" {
		return nil, types.NewInvalidRequestError(types.ProviderTypeOpenAI, "query must not be empty").
			WithOperation("search")
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	request := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "user", Content: query},
		},
		WebSearchOptions: &webSearchOpts{SearchContextSize: "medium"},
	}

	var response chatResponse
	requestID, statusCode, err := p.httpClient.PostJSON(ctx, p.baseURL+"/chat/completions", p.headers(), request, &response)
	if err != nil {
		return nil, p.wrapError(err, statusCode, requestID, "search")
	}

	if len(response.Choices) == 0 {
		return nil, types.NewServerError(types.ProviderTypeOpenAI, statusCode, "response contained no choices").
			WithOperation("search").
			WithRequestID(requestID)
	}

	message := response.Choices[0].Message
	result := &types.SearchResult{
		Query:    query,
		Content:  message.Content,
		Model:    response.Model,
		Provider: types.ProviderTypeOpenAI,
	}
	for _, annotation := range message.Annotations {
		if annotation.Type != "url_citation" {
			continue
		}
		result.Sources = append(result.Sources, types.Source{
			Title: annotation.URLCitation.Title,
			URL:   annotation.URLCitation.URL,
		})
	}

	return result, nil
}

// HealthCheck verifies the backend is reachable
func (p *OpenAISearchProvider) HealthCheck(ctx context.Context) error {
	resp, err := p.httpClient.Get(ctx, p.baseURL+"/models", p.headers())
	if err != nil {
		return types.NewNetworkError(types.ProviderTypeOpenAI, err).WithOperation("health_check")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 500 {
		return types.NewServerError(types.ProviderTypeOpenAI, resp.StatusCode, "backend unhealthy").
			WithOperation("health_check")
	}
	return nil
}

func (p *OpenAISearchProvider) headers() map[string]string {
	headers := map[string]string{}
	if p.apiKey != "" {
		headers["Authorization"] = "Bearer " + p.apiKey
	}
	return headers
}

func (p *OpenAISearchProvider) wrapError(err error, statusCode int, requestID, operation string) error {
	code := types.ErrCodeNetwork
	switch {
	case statusCode == 401 || statusCode == 403:
		code = types.ErrCodeAuthentication
	case statusCode == 429:
		code = types.ErrCodeRateLimit
	case statusCode >= 500:
		code = types.ErrCodeServerError
	case statusCode >= 400:
		code = types.ErrCodeInvalidRequest
	}
	return types.NewProviderError(types.ProviderTypeOpenAI, code, err.Error()).
		WithOperation(operation).
		WithStatusCode(statusCode).
		WithRequestID(requestID).
		WithOriginalErr(err)
}
