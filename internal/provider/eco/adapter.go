// Package eco provides a deterministic in-memory provider for local
// development and testing. It answers every exchange without external API
// calls and joins the fallback chain only when named in CHAIN_ORDER.
package eco

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/profia/tutoria/internal/domain"
	"github.com/profia/tutoria/internal/observability"
)

const (
	providerName  = "eco"
	modelName     = "eco-1"
	contextWindow = 16384
)

// Provider implements the domain.Provider interface without network calls.
type Provider struct{}

// NewProvider creates a new eco provider. No configuration is required.
func NewProvider() *Provider {
	return &Provider{}
}

// Complete answers deterministically by reflecting the exchange back.
func (p *Provider) Complete(ctx context.Context, ex *domain.Exchange) (*domain.Completion, error) {
	if ex == nil {
		return nil, errors.New("exchange cannot be nil")
	}

	logger := observability.FromContext(ctx)
	logger.Debug("answering locally via eco provider")

	var builder strings.Builder
	if ex.HasImage() {
		builder.WriteString("Recebi sua imagem! ")
	}
	if ex.Context != "" {
		fmt.Fprintf(&builder, "Você perguntou: %q. ", ex.Context)
	}
	builder.WriteString("Vamos pensar juntos nessa questão!")

	resposta := builder.String()

	return &domain.Completion{
		Resposta: resposta,
		Metadata: domain.Metadata{
			Model:      modelName,
			TokensUsed: len(strings.Fields(ex.Prompt)) + len(strings.Fields(resposta)),
			Tipo:       ex.Tipo(),
		},
	}, nil
}

// Name returns the provider identifier.
func (p *Provider) Name() string {
	return providerName
}

// ContextWindow returns a generous local limit so eco never tightens the
// chain's effective budget below the real providers.
func (p *Provider) ContextWindow() int {
	return contextWindow
}
