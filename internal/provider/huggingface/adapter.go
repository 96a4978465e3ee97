// Package huggingface adapts the tutoring exchange to a HuggingFace
// inference endpoint. When an image is attached the user message becomes a
// parts array carrying the image URL alongside the text.
package huggingface

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
	providerName  = "huggingface"
	contextWindow = 4096

	temperature = 0.7
	maxTokens   = 1000
	topP        = 0.8
)

// Provider implements the domain.Provider interface for HuggingFace.
type Provider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	model   string
}

// NewProvider creates a new HuggingFace provider.
func NewProvider(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("huggingface: %w", domain.ErrNotConfigured)
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
	logger.Debug("calling HuggingFace API")

	body := chatRequest{
		Model:       p.model,
		Messages:    buildMessages(ex),
		Temperature: temperature,
		MaxTokens:   maxTokens,
		TopP:        topP,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal HuggingFace request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create HuggingFace request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HuggingFace API call failed: %w", err)
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
		return nil, fmt.Errorf("failed to decode HuggingFace response: %w", err)
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

// buildMessages assembles the system and user messages. The user message is
// a plain string unless an image is attached, in which case it becomes the
// vendor's parts array.
func buildMessages(ex *domain.Exchange) []chatMessage {
	system := chatMessage{Role: "system", Content: ex.Prompt}

	if !ex.HasImage() {
		return []chatMessage{
			system,
			{Role: "user", Content: ex.Context},
		}
	}

	return []chatMessage{
		system,
		{
			Role: "user",
			Content: []contentPart{
				{Type: "image_url", ImageURL: &imageURL{URL: ex.Image}},
				{Type: "text", Text: ex.Context},
			},
		},
	}
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return providerName
}

// ContextWindow returns the HuggingFace context limit in tokens.
func (p *Provider) ContextWindow() int {
	return contextWindow
}
