package domain

import (
	"errors"
	"fmt"
)

// ErrNotConfigured indicates that a provider credential is absent. Providers
// without credentials are simply omitted from the fallback chain.
var ErrNotConfigured = errors.New("provider not configured")

// ErrMissingInput indicates a request with neither message nor image.
var ErrMissingInput = errors.New("mensagem ou imagem obrigatória")

// ProviderError describes one failed provider attempt: non-2xx status or an
// unusable (empty) completion. The raw body is kept for server-side logs only
// and is never surfaced to the caller.
type ProviderError struct {
	Provider string
	Status   int
	Body     string
}

func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Status, e.Body)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Body)
}

// ExhaustionError is the single terminal failure produced when every provider
// in the chain has failed. Only the last attempt error is carried; the full
// per-attempt detail lives in the logs.
type ExhaustionError struct {
	Attempts int
	Last     error
}

func (e *ExhaustionError) Error() string {
	return fmt.Sprintf("todos os %d provedores de IA falharam: %v", e.Attempts, e.Last)
}

func (e *ExhaustionError) Unwrap() error {
	return e.Last
}
