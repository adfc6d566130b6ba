// Package gemini provides providers backed by the Google Generative
// Language API: a search provider using Gemini's google_search grounding
// tool and an embedding provider using the embedContent endpoint.
//
// Authentication is by API key (GOOGLE_API_KEY or GEMINI_API_KEY) or an
// oauth2.TokenSource supplied through config.Extra["token_source"].
package gemini

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/finagents/provider-kit/internal/httpclient"
	"github.com/finagents/provider-kit/pkg/providers/common"
	"github.com/finagents/provider-kit/pkg/types"
)

const (
	defaultBaseURL        = "https://generativelanguage.googleapis.com/v1beta"
	defaultSearchModel    = "gemini-2.0-flash"
	defaultEmbeddingModel = "text-embedding-004"
	apiKeyEnv             = "GOOGLE_API_KEY"
)

// resolveAPIKey checks GEMINI_API_KEY as a fallback since both names are
// in common use for this API.
func resolveAPIKey(config types.Config) string {
	if key := common.ResolveAPIKey(config, apiKeyEnv); key != "" {
		return key
	}
	return os.Getenv("GEMINI_API_KEY")
}

// tokenSource extracts an oauth2.TokenSource from the provider-specific
// configuration, if one was supplied.
func tokenSource(config types.Config) oauth2.TokenSource {
	if config.Extra == nil {
		return nil
	}
	if ts, ok := config.Extra["token_source"].(oauth2.TokenSource); ok {
		return ts
	}
	return nil
}

// GoogleSearchProvider implements SearchProvider using Gemini's
// google_search grounding tool.
type GoogleSearchProvider struct {
	model       string
	baseURL     string
	apiKey      string
	tokenSource oauth2.TokenSource
	httpClient  *httpclient.Client
	limiter     *rate.Limiter
}

// NewGoogleSearchProvider creates a new Google search provider
func NewGoogleSearchProvider(config types.Config) *GoogleSearchProvider {
	return &GoogleSearchProvider{
		model:       common.ModelOrDefault(config.QuickThinkLLM, defaultSearchModel),
		baseURL:     common.BaseURL(config, defaultBaseURL),
		apiKey:      resolveAPIKey(config),
		tokenSource: tokenSource(config),
		httpClient: httpclient.New(httpclient.Config{
			Timeout: config.Timeout,
		}),
		limiter: rate.NewLimiter(rate.Every(time.Minute/15), 15),
	}
}

// Name returns the provider name
func (p *GoogleSearchProvider) Name() string {
	return "Google"
}

// Type returns the provider type
func (p *GoogleSearchProvider) Type() types.ProviderType {
	return types.ProviderTypeGoogle
}

// Description returns the provider description
func (p *GoogleSearchProvider) Description() string {
	return "Web search via Gemini google_search grounding"
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
	Tools    []tool    `json:"tools,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type tool struct {
	GoogleSearch *struct{} `json:"google_search,omitempty"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
		GroundingMetadata struct {
			GroundingChunks []struct {
				Web struct {
					URI   string `json:"uri"`
					Title string `json:"title"`
				} `json:"web"`
			} `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
	ModelVersion string `json:"modelVersion"`
}

// Search performs a grounded web search for the given query
func (p *GoogleSearchProvider) Search(ctx context.Context, query string) (*types.SearchResult, error) {
	if query == "" {
		return nil, types.NewInvalidRequestError(types.ProviderTypeGoogle, "query must not be empty").
			WithOperation("search")
	}

	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	headers, err := p.headers()
	if err != nil {
		return nil, err
	}

	request := generateContentRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: query}}},
		},
		Tools: []tool{{GoogleSearch: &struct{}{}}},
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, p.model)

	var response generateContentResponse
	requestID, statusCode, err := p.httpClient.PostJSON(ctx, url, headers, request, &response)
	if err != nil {
		return nil, types.NewProviderError(types.ProviderTypeGoogle, codeForStatus(statusCode), err.Error()).
			WithOperation("search").
			WithStatusCode(statusCode).
			WithRequestID(requestID).
			WithOriginalErr(err)
	}

	if len(response.Candidates) == 0 {
		return nil, types.NewServerError(types.ProviderTypeGoogle, statusCode, "response contained no candidates").
			WithOperation("search").
			WithRequestID(requestID)
	}

	candidate := response.Candidates[0]
	result := &types.SearchResult{
		Query:    query,
		Model:    response.ModelVersion,
		Provider: types.ProviderTypeGoogle,
	}
	for _, pt := range candidate.Content.Parts {
		result.Content += pt.Text
	}
	for _, chunk := range candidate.GroundingMetadata.GroundingChunks {
		result.Sources = append(result.Sources, types.Source{
			Title: chunk.Web.Title,
			URL:   chunk.Web.URI,
		})
	}

	return result, nil
}

// HealthCheck verifies the backend is reachable
func (p *GoogleSearchProvider) HealthCheck(ctx context.Context) error {
	headers, err := p.headers()
	if err != nil {
		return err
	}
	resp, err := p.httpClient.Get(ctx, p.baseURL+"/models", headers)
	if err != nil {
		return types.NewNetworkError(types.ProviderTypeGoogle, err).WithOperation("health_check")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 500 {
		return types.NewServerError(types.ProviderTypeGoogle, resp.StatusCode, "backend unhealthy").
			WithOperation("health_check")
	}
	return nil
}

// headers builds auth headers: OAuth bearer token when a token source is
// configured, API key header otherwise.
func (p *GoogleSearchProvider) headers() (map[string]string, error) {
	headers := map[string]string{}
	if p.tokenSource != nil {
		token, err := p.tokenSource.Token()
		if err != nil {
			return nil, types.NewAuthError(types.ProviderTypeGoogle, "failed to obtain oauth token").
				WithOperation("authenticate").
				WithOriginalErr(err)
		}
		headers["Authorization"] = "Bearer " + token.AccessToken
		return headers, nil
	}
	if p.apiKey != "" {
		headers["x-goog-api-key"] = p.apiKey
	}
	return headers, nil
}

func codeForStatus(statusCode int) types.ErrorCode {
	switch {
	case statusCode == 401 || statusCode == 403:
		return types.ErrCodeAuthentication
	case statusCode == 429:
		return types.ErrCodeRateLimit
	case statusCode >= 500:
		return types.ErrCodeServerError
	case statusCode >= 400:
		return types.ErrCodeInvalidRequest
	}
	return types.ErrCodeNetwork
}
