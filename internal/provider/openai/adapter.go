// Package openai adapts the tutoring exchange to the OpenAI API using the
// official SDK. SDK-level retries are disabled: the fallback chain owns all
// retry semantics.
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/profia/tutoria/internal/domain"
	"github.com/profia/tutoria/internal/observability"
)

const (
	providerName  = "openai"
	contextWindow = 4096

	temperature = 0.7
	maxTokens   = 1000
	topP        = 0.8
)

// Provider implements the domain.Provider interface for OpenAI.
type Provider struct {
	client openai.Client
	model  string
}

// NewProvider creates a new OpenAI provider.
func NewProvider(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("openai: %w", domain.ErrNotConfigured)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
		option.WithMaxRetries(0),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	return &Provider{
		client: openai.NewClient(opts...),
		model:  config.Model,
	}, nil
}

// Complete sends one chat completion request and normalizes the response.
func (p *Provider) Complete(ctx context.Context, ex *domain.Exchange) (*domain.Completion, error) {
	if ex == nil {
		return nil, errors.New("exchange cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling OpenAI API")

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(ex.Prompt),
			openai.UserMessage(ex.Context),
		},
		Temperature: openai.Float(temperature),
		MaxTokens:   openai.Int(maxTokens),
		TopP:        openai.Float(topP),
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			return nil, &domain.ProviderError{
				Provider: providerName,
				Status:   apiErr.StatusCode,
				Body:     apiErr.Error(),
			}
		}
		return nil, fmt.Errorf("OpenAI API call failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, &domain.ProviderError{
			Provider: providerName,
			Body:     "nenhuma resposta gerada",
		}
	}

	model := string(resp.Model)
	if model == "" {
		model = p.model
	}

	return &domain.Completion{
		Resposta: resp.Choices[0].Message.Content,
		Metadata: domain.Metadata{
			Model:      model,
			TokensUsed: int(resp.Usage.TotalTokens),
			Tipo:       ex.Tipo(),
		},
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return providerName
}

// ContextWindow returns the OpenAI context limit in tokens.
func (p *Provider) ContextWindow() int {
	return contextWindow
}
