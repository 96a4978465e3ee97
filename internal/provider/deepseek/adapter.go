// Package deepseek adapts the tutoring exchange to the DeepSeek chat
// completions API. DeepSeek is text-only: an attached image influences the
// response type tag but is never sent upstream.
package deepseek

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/profia/tutoria/internal/domain"
	"github.com/profia/tutoria/internal/observability"
)

const (
	providerName  = "deepseek"
	contextWindow = 16384

	temperature = 0.7
	maxTokens   = 1000
	topP        = 0.8
	topK        = 40
)

// Provider implements the domain.Provider interface for DeepSeek.
type Provider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewProvider creates a new DeepSeek provider.
func NewProvider(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("deepseek: %w", domain.ErrNotConfigured)
	}

	return &Provider{
		client: &http.Client{
			Timeout: time.Duration(config.Timeout) * time.Second,
		},
		baseURL: config.BaseURL,
		apiKey:  config.APIKey,
		model:   config.Model,
	}, nil
}

// Complete sends one chat completion request and normalizes the response.
func (p *Provider) Complete(ctx context.Context, ex *domain.Exchange) (*domain.Completion, error) {
	if ex == nil {
		return nil, errors.New("exchange cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling DeepSeek API")

	body := chatRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: ex.Prompt},
			{Role: "user", Content: ex.Context},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
		TopP:        topP,
		TopK:        topK,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal DeepSeek request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create DeepSeek request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("DeepSeek API call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, &domain.ProviderError{
			Provider: providerName,
			Status:   resp.StatusCode,
			Body:     string(raw),
		}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode DeepSeek response: %w", err)
	}

	if len(parsed.Choices) == 0 {
		return nil, &domain.ProviderError{
			Provider: providerName,
			Body:     "nenhuma resposta gerada",
		}
	}

	model := parsed.Model
	if model == "" {
		model = p.model
	}

	return &domain.Completion{
		Resposta: parsed.Choices[0].Message.Content,
		Metadata: domain.Metadata{
			Model:      model,
			TokensUsed: parsed.Usage.TotalTokens,
			Tipo:       ex.Tipo(),
		},
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return providerName
}

// ContextWindow returns the DeepSeek context limit in tokens.
func (p *Provider) ContextWindow() int {
	return contextWindow
}
