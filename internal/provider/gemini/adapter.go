// Package gemini adapts the tutoring exchange to the Gemini API using the
// Google GenAI SDK. This is the vision-capable provider: an attached image is
// decoded from its data URL and sent as an inline blob part.
package gemini

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/profia/tutoria/internal/domain"
	"github.com/profia/tutoria/internal/observability"
)

const (
	providerName  = "gemini"
	contextWindow = 8192

	temperature     = 0.7
	maxOutputTokens = 1000
	topP            = 0.8
	topK            = 40

	defaultImageMIMEType = "image/jpeg"
)

var safetySettings = []*genai.SafetySetting{
	{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
	{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
}

// modelsClient is the slice of the GenAI SDK the adapter needs; kept as an
// interface so tests can stub the upstream call.
type modelsClient interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

var newGenAIClient = func(ctx context.Context, cfg *genai.ClientConfig) (*genai.Client, error) {
	return genai.NewClient(ctx, cfg)
}

// Provider implements the domain.Provider interface for Gemini.
type Provider struct {
	models  modelsClient
	model   string
	timeout time.Duration
}

// NewProvider creates a new Gemini provider.
func NewProvider(config Config) (*Provider, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w", domain.ErrNotConfigured)
	}

	client, err := newGenAIClient(context.Background(), &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &Provider{
		models:  client.Models,
		model:   config.Model,
		timeout: time.Duration(config.Timeout) * time.Second,
	}, nil
}

// Complete sends one generateContent request and normalizes the response.
func (p *Provider) Complete(ctx context.Context, ex *domain.Exchange) (*domain.Completion, error) {
	if ex == nil {
		return nil, errors.New("exchange cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("calling Gemini API")

	parts, err := buildParts(ex)
	if err != nil {
		return nil, err
	}

	callCtx := ctx
	if p.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	resp, err := p.models.GenerateContent(callCtx, p.model, []*genai.Content{{Parts: parts}}, &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](temperature),
		TopP:            genai.Ptr[float32](topP),
		TopK:            genai.Ptr[float32](topK),
		MaxOutputTokens: maxOutputTokens,
		SafetySettings:  safetySettings,
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return nil, &domain.ProviderError{
				Provider: providerName,
				Status:   apiErr.Code,
				Body:     apiErr.Message,
			}
		}
		return nil, fmt.Errorf("Gemini API call failed: %w", err)
	}

	resposta := candidateText(resp)
	if resposta == "" {
		return nil, &domain.ProviderError{
			Provider: providerName,
			Body:     "nenhuma resposta gerada",
		}
	}

	tokensUsed := 0
	if resp.UsageMetadata != nil {
		tokensUsed = int(resp.UsageMetadata.TotalTokenCount)
	}

	return &domain.Completion{
		Resposta: resposta,
		Metadata: domain.Metadata{
			Model:      p.model,
			TokensUsed: tokensUsed,
			Tipo:       ex.Tipo(),
		},
	}, nil
}

// buildParts assembles the prompt text, the student question and the
// optional inline image blob.
func buildParts(ex *domain.Exchange) ([]*genai.Part, error) {
	parts := []*genai.Part{{Text: ex.Prompt}}

	if ex.Context != "" {
		parts = append(parts, &genai.Part{Text: "Pergunta do aluno: " + ex.Context})
	}

	if ex.HasImage() {
		mimeType, data, err := decodeImage(ex.Image)
		if err != nil {
			return nil, &domain.ProviderError{
				Provider: providerName,
				Body:     fmt.Sprintf("imagem inválida: %v", err),
			}
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: mimeType,
				Data:     data,
			},
		})
	}

	return parts, nil
}

// decodeImage accepts a data URL or bare base64 payload and returns the MIME
// type and raw bytes.
func decodeImage(image string) (string, []byte, error) {
	mimeType := defaultImageMIMEType
	payload := image

	if strings.HasPrefix(image, "data:") {
		header, rest, found := strings.Cut(image, ",")
		if !found {
			return "", nil, errors.New("data URL sem payload")
		}
		payload = rest

		if mime, ok := strings.CutPrefix(strings.SplitN(header, ";", 2)[0], "data:"); ok && mime != "" {
			mimeType = mime
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("base64 inválido: %w", err)
	}

	return mimeType, data, nil
}

// candidateText extracts the first candidate's text, if any.
func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return ""
	}

	return candidate.Content.Parts[0].Text
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return providerName
}

// ContextWindow returns the Gemini context limit in tokens.
func (p *Provider) ContextWindow() int {
	return contextWindow
}
