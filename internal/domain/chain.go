package domain

import (
	"context"
	"errors"
	"time"

	"github.com/profia/tutoria/internal/observability"
)

const defaultAttemptTimeout = 20 * time.Second

// FallbackChain tries providers one at a time in a fixed order until the
// first success. Attempts are strictly sequential: every call has a monetary
// cost, so the cheaper provider is always given the chance to answer first.
type FallbackChain struct {
	providers      []Provider
	attemptTimeout time.Duration
}

// NewFallbackChain creates a chain over the given providers in priority
// order. attemptTimeout bounds each provider call; zero selects the default.
func NewFallbackChain(providers []Provider, attemptTimeout time.Duration) *FallbackChain {
	if attemptTimeout <= 0 {
		attemptTimeout = defaultAttemptTimeout
	}
	return &FallbackChain{
		providers:      providers,
		attemptTimeout: attemptTimeout,
	}
}

// Providers returns the configured provider order.
func (c *FallbackChain) Providers() []Provider {
	return c.providers
}

// MinContextWindow returns the smallest context window among the configured
// providers, so no adapter ever receives a context it cannot accept.
// Returns 0 when the chain is empty.
func (c *FallbackChain) MinContextWindow() int {
	minWindow := 0
	for _, p := range c.providers {
		if w := p.ContextWindow(); minWindow == 0 || w < minWindow {
			minWindow = w
		}
	}
	return minWindow
}

// Resolve invokes the providers in order and returns the first successful
// completion. A failed attempt carries no state into the next one. When every
// provider has failed, a single synthesized *ExhaustionError is returned.
func (c *FallbackChain) Resolve(ctx context.Context, ex *Exchange) (*Completion, error) {
	if ex == nil {
		return nil, errors.New("exchange cannot be nil")
	}

	var lastErr error = ErrNotConfigured

	for _, provider := range c.providers {
		attemptCtx := observability.WithProvider(ctx, provider.Name())
		logger := observability.FromContext(attemptCtx)

		completion, err := c.attempt(attemptCtx, provider, ex)
		if err == nil {
			logger.Info("provider attempt succeeded",
				observability.String("model", completion.Metadata.Model),
				observability.Int("tokens_used", completion.Metadata.TokensUsed),
			)
			return completion, nil
		}

		logger.Warn("provider attempt failed, advancing to next provider",
			observability.Error(err),
		)
		lastErr = err
	}

	return nil, &ExhaustionError{
		Attempts: len(c.providers),
		Last:     lastErr,
	}
}

// attempt runs one provider call under the per-attempt timeout.
func (c *FallbackChain) attempt(ctx context.Context, provider Provider, ex *Exchange) (*Completion, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	return provider.Complete(attemptCtx, ex)
}
