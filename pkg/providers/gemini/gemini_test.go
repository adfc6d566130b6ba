package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/finagents/provider-kit/pkg/types"
)

// TestNewGoogleSearchProvider tests constructor defaults
func TestNewGoogleSearchProvider(t *testing.T) {
	provider := NewGoogleSearchProvider(types.Config{})

	assert.Equal(t, "Google", provider.Name())
	assert.Equal(t, types.ProviderTypeGoogle, provider.Type())
	assert.Equal(t, defaultBaseURL, provider.baseURL)
	assert.Equal(t, defaultSearchModel, provider.model)
}

// TestGoogleSearchProvider_Search tests a grounded search round trip
func TestGoogleSearchProvider_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/gemini-pro:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))

		var request generateContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		require.Len(t, request.Contents, 1)
		assert.Equal(t, "fed rate decision", request.Contents[0].Parts[0].Text)
		require.Len(t, request.Tools, 1)

		_, _ = w.Write([]byte(`{
			"modelVersion": "gemini-pro-001",
			"candidates": [{
				"content": {"parts": [{"text": "The Fed held rates steady."}]},
				"groundingMetadata": {
					"groundingChunks": [
						{"web": {"uri": "https://example.com/fed", "title": "Fed statement"}}
					]
				}
			}]
		}`))
	}))
	defer server.Close()

	provider := NewGoogleSearchProvider(types.Config{
		BackendURL:    server.URL,
		QuickThinkLLM: "gemini-pro",
		APIKey:        "test-key",
	})

	result, err := provider.Search(context.Background(), "fed rate decision")

	require.NoError(t, err)
	assert.Equal(t, "fed rate decision", result.Query)
	assert.Equal(t, "The Fed held rates steady.", result.Content)
	assert.Equal(t, "gemini-pro-001", result.Model)
	assert.Equal(t, types.ProviderTypeGoogle, result.Provider)
	require.Len(t, result.Sources, 1)
	assert.Equal(t, "Fed statement", result.Sources[0].Title)
	assert.Equal(t, "https://example.com/fed", result.Sources[0].URL)
}

// TestGoogleSearchProvider_Search_OAuthToken tests bearer auth via a
// configured token source
func TestGoogleSearchProvider_Search_OAuthToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer oauth-token", r.Header.Get("Authorization"))
		assert.Empty(t, r.Header.Get("x-goog-api-key"))
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer server.Close()

	provider := NewGoogleSearchProvider(types.Config{
		BackendURL: server.URL,
		APIKey:     "unused-key",
		Extra: map[string]interface{}{
			"token_source": oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "oauth-token"}),
		},
	})

	result, err := provider.Search(context.Background(), "anything")

	require.NoError(t, err)
	assert.Equal(t, "ok", result.Content)
}

// TestGoogleSearchProvider_Search_EmptyQuery tests input validation
func TestGoogleSearchProvider_Search_EmptyQuery(t *testing.T) {
	provider := NewGoogleSearchProvider(types.Config{})

	_, err := provider.Search(context.Background(), "")

	require.Error(t, err)
	var providerErr *types.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, types.ErrCodeInvalidRequest, providerErr.Code)
}

// TestCodeForStatus tests HTTP status classification
func TestCodeForStatus(t *testing.T) {
	tests := []struct {
		statusCode int
		expected   types.ErrorCode
	}{
		{401, types.ErrCodeAuthentication},
		{403, types.ErrCodeAuthentication},
		{429, types.ErrCodeRateLimit},
		{500, types.ErrCodeServerError},
		{503, types.ErrCodeServerError},
		{400, types.ErrCodeInvalidRequest},
		{404, types.ErrCodeInvalidRequest},
		{0, types.ErrCodeNetwork},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, codeForStatus(tt.statusCode), "status %d", tt.statusCode)
	}
}

// TestGoogleSearchProvider_Search_NoCandidates tests the empty-response error
func TestGoogleSearchProvider_Search_NoCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	provider := NewGoogleSearchProvider(types.Config{BackendURL: server.URL})

	_, err := provider.Search(context.Background(), "anything")

	require.Error(t, err)
	var providerErr *types.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, types.ErrCodeServerError, providerErr.Code)
}

// TestNewGeminiEmbeddingProvider tests constructor defaults
func TestNewGeminiEmbeddingProvider(t *testing.T) {
	provider := NewGeminiEmbeddingProvider(types.Config{})

	assert.Equal(t, "Gemini", provider.Name())
	assert.Equal(t, types.ProviderTypeGemini, provider.Type())
	assert.Equal(t, defaultEmbeddingModel, provider.model)
	assert.Equal(t, 0, provider.Dimensions())
}

// TestGeminiEmbeddingProvider_CreateEmbedding tests a full embedding call
func TestGeminiEmbeddingProvider_CreateEmbedding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/text-embedding-004:embedContent", r.URL.Path)

		var request embedContentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&request))
		require.Len(t, request.Content.Parts, 1)
		assert.Equal(t, "hello world", request.Content.Parts[0].Text)

		_, _ = w.Write([]byte(`{"embedding":{"values":[0.5,0.6]}}`))
	}))
	defer server.Close()

	provider := NewGeminiEmbeddingProvider(types.Config{BackendURL: server.URL})

	embedding, err := provider.CreateEmbedding(context.Background(), "hello world")

	require.NoError(t, err)
	assert.Equal(t, []float32{0.5, 0.6}, embedding)
	assert.Equal(t, 2, provider.Dimensions())
}

// TestGeminiEmbeddingProvider_CreateEmbedding_ModelOverride tests the
// embedding model override
func TestGeminiEmbeddingProvider_CreateEmbedding_ModelOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models/custom-embed:embedContent", r.URL.Path)
		_, _ = w.Write([]byte(`{"embedding":{"values":[1]}}`))
	}))
	defer server.Close()

	provider := NewGeminiEmbeddingProvider(types.Config{
		BackendURL:     server.URL,
		EmbeddingModel: "custom-embed",
	})

	_, err := provider.CreateEmbedding(context.Background(), "text")
	require.NoError(t, err)
}

// TestGeminiEmbeddingProvider_CreateEmbedding_EmptyValues tests the
// empty-response error
func TestGeminiEmbeddingProvider_CreateEmbedding_EmptyValues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"embedding":{"values":[]}}`))
	}))
	defer server.Close()

	provider := NewGeminiEmbeddingProvider(types.Config{BackendURL: server.URL})

	_, err := provider.CreateEmbedding(context.Background(), "text")

	require.Error(t, err)
	var providerErr *types.ProviderError
	require.ErrorAs(t, err, &providerErr)
	assert.Equal(t, types.ErrCodeServerError, providerErr.Code)
}
