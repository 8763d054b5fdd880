package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultAPIVersion = "2024-02-15-preview"

const defaultMaxTokens = 500

// AzureConfig holds the Azure OpenAI connection settings, loaded once at
// startup from the config source.
type AzureConfig struct {
	Endpoint   string
	APIKey     string
	Deployment string
	APIVersion string
}

// azureClient implements CompletionClient against an Azure OpenAI
// chat-completions deployment.
type azureClient struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	deployment string
	apiVersion string
}

// NewAzureClient creates a new Azure OpenAI completion client.
func NewAzureClient(cfg AzureConfig) (CompletionClient, error) {
	if cfg.Endpoint == "" {
		return nil, newError(ErrKindConfiguration, "Azure OpenAI endpoint is required", nil)
	}
	if cfg.APIKey == "" {
		return nil, newError(ErrKindConfiguration, "Azure OpenAI API key is required", nil)
	}
	if cfg.Deployment == "" {
		return nil, newError(ErrKindConfiguration, "Azure OpenAI deployment name is required", nil)
	}

	parsed, err := url.Parse(cfg.Endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, newError(ErrKindConfiguration, fmt.Sprintf("malformed Azure OpenAI endpoint %q", cfg.Endpoint), err)
	}

	apiVersion := cfg.APIVersion
	if apiVersion == "" {
		apiVersion = defaultAPIVersion
	}

	return &azureClient{
		endpoint:   strings.TrimSuffix(cfg.Endpoint, "/"),
		apiKey:     cfg.APIKey,
		deployment: cfg.Deployment,
		apiVersion: apiVersion,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}, nil
}

// completionResponse is the subset of the chat-completions response we consume.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends one chat-completion request and returns the raw assistant text.
func (c *azureClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	messages := make([]Message, 0, len(req.Messages)+1)
	messages = append(messages, Message{Role: "system", Content: req.System})
	messages = append(messages, req.Messages...)

	body := map[string]any{
		"messages":    messages,
		"temperature": req.Temperature,
		"max_tokens":  maxTokens,
	}
	if req.StructuredOutput {
		body["response_format"] = map[string]string{"type": "json_object"}
	}

	jsonBody, err := json.Marshal(body)
	if err != nil {
		return "", newError(ErrKindTransport, "failed to marshal request", err)
	}

	endpoint := fmt.Sprintf("%s/openai/deployments/%s/chat/completions?api-version=%s",
		c.endpoint, c.deployment, c.apiVersion)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(string(jsonBody)))
	if err != nil {
		return "", newError(ErrKindConfiguration, "failed to create request", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("api-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", newError(ErrKindTransport, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", newError(ErrKindTransport, "failed to read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{
			Kind:   ErrKindTransport,
			Status: resp.StatusCode,
			Msg:    fmt.Sprintf("Azure OpenAI error: %s", strings.TrimSpace(string(respBody))),
		}
	}

	var completion completionResponse
	if err := json.Unmarshal(respBody, &completion); err != nil {
		return "", newError(ErrKindDecode, "failed to parse completion response", err)
	}

	if len(completion.Choices) == 0 {
		return "", newError(ErrKindEmptyResponse, "no completion choices returned", nil)
	}

	content := completion.Choices[0].Message.Content
	if content == "" {
		return "", newError(ErrKindEmptyResponse, "completion content is empty", nil)
	}

	return content, nil
}
