package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) CompletionClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewAzureClient(AzureConfig{
		Endpoint:   server.URL,
		APIKey:     "test-key",
		Deployment: "gpt-4o-mini",
	})
	require.NoError(t, err)
	return client
}

func completionBody(content string) string {
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func TestNewAzureClientValidation(t *testing.T) {
	tests := []struct {
		name string
		cfg  AzureConfig
	}{
		{
			name: "missing endpoint",
			cfg:  AzureConfig{APIKey: "k", Deployment: "d"},
		},
		{
			name: "missing API key",
			cfg:  AzureConfig{Endpoint: "https://example.openai.azure.com", Deployment: "d"},
		},
		{
			name: "missing deployment",
			cfg:  AzureConfig{Endpoint: "https://example.openai.azure.com", APIKey: "k"},
		},
		{
			name: "malformed endpoint",
			cfg:  AzureConfig{Endpoint: "not a url", APIKey: "k", Deployment: "d"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAzureClient(tt.cfg)
			require.Error(t, err)
			assert.True(t, IsKind(err, ErrKindConfiguration))
		})
	}
}

func TestAzureClientWireFormat(t *testing.T) {
	var gotPath, gotAPIVersion, gotAPIKey string
	var gotBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIVersion = r.URL.Query().Get("api-version")
		gotAPIKey = r.Header.Get("api-key")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(completionBody("ok")))
	})

	content, err := client.Complete(context.Background(), CompletionRequest{
		System:           "You are a test.",
		Messages:         []Message{{Role: "user", Content: "hello"}},
		Temperature:      0.3,
		StructuredOutput: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", content)

	assert.Equal(t, "/openai/deployments/gpt-4o-mini/chat/completions", gotPath)
	assert.Equal(t, "2024-02-15-preview", gotAPIVersion, "default API version")
	assert.Equal(t, "test-key", gotAPIKey)

	messages, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2, "system message is prepended")
	first, ok := messages[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "You are a test.", first["content"])

	assert.InDelta(t, 0.3, gotBody["temperature"], 0.001)
	assert.InDelta(t, 500, gotBody["max_tokens"], 0.001, "default max tokens")

	respFormat, ok := gotBody["response_format"].(map[string]any)
	require.True(t, ok, "structured requests set response_format")
	assert.Equal(t, "json_object", respFormat["type"])
}

func TestAzureClientUnstructuredOmitsResponseFormat(t *testing.T) {
	var gotBody map[string]any

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(completionBody("hi there")))
	})

	_, err := client.Complete(context.Background(), CompletionRequest{
		System:   "chat",
		Messages: []Message{{Role: "user", Content: "hello"}},
	})
	require.NoError(t, err)

	_, present := gotBody["response_format"]
	assert.False(t, present, "free-form requests omit response_format")
}

func TestAzureClientErrors(t *testing.T) {
	t.Run("non-2xx status", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"error": {"message": "rate limited"}}`))
		})

		_, err := client.Complete(context.Background(), CompletionRequest{System: "s"})
		require.Error(t, err)
		assert.True(t, IsKind(err, ErrKindTransport))

		var aiErr *Error
		require.ErrorAs(t, err, &aiErr)
		assert.Equal(t, http.StatusTooManyRequests, aiErr.Status)
	})

	t.Run("zero choices", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"choices": []}`))
		})

		_, err := client.Complete(context.Background(), CompletionRequest{System: "s"})
		assert.True(t, IsKind(err, ErrKindEmptyResponse))
	})

	t.Run("empty content", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(completionBody("")))
		})

		_, err := client.Complete(context.Background(), CompletionRequest{System: "s"})
		assert.True(t, IsKind(err, ErrKindEmptyResponse))
	})

	t.Run("unparseable body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`not json at all`))
		})

		_, err := client.Complete(context.Background(), CompletionRequest{System: "s"})
		assert.True(t, IsKind(err, ErrKindDecode))
	})
}

func TestAzureClientCustomAPIVersion(t *testing.T) {
	var gotAPIVersion string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAPIVersion = r.URL.Query().Get("api-version")
		_, _ = w.Write([]byte(completionBody("ok")))
	}))
	t.Cleanup(server.Close)

	client, err := NewAzureClient(AzureConfig{
		Endpoint:   server.URL,
		APIKey:     "k",
		Deployment: "d",
		APIVersion: "2024-06-01",
	})
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), CompletionRequest{System: "s"})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", gotAPIVersion)
}
