package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	claudeModel      = "claude-3-5-sonnet-latest"
	anthropicVersion = "2023-06-01"
)

const claudeSystemPrompt = "You are a professional nutritionist and meal planner. " +
	"Reply with exactly one JSON object and nothing else."

// ClaudeProvider calls the Anthropic messages API.
type ClaudeProvider struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewClaudeProvider creates a Claude adapter.
func NewClaudeProvider(apiKey, apiURL string) *ClaudeProvider {
	return &ClaudeProvider{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (p *ClaudeProvider) Name() string { return string(ModelClaude) }

type claudeRequest struct {
	Model     string        `json:"model"`
	System    string        `json:"system"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

// Generate sends the prompt to the messages endpoint and returns the first
// text block of the reply.
func (p *ClaudeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	reqBody := claudeRequest{
		Model:  claudeModel,
		System: claudeSystemPrompt,
		Messages: []chatMessage{
			{Role: "user", Content: prompt},
		},
		MaxTokens: 4096,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", p.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ProviderError{Provider: p.Name(), Status: resp.StatusCode, Body: string(body)}
	}

	var result struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Content) == 0 || result.Content[0].Text == "" {
		return "", &ProviderError{Provider: p.Name(), Body: string(body)}
	}

	return result.Content[0].Text, nil
}
