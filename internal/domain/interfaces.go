package domain

import "context"

// Provider represents one LLM vendor capable of answering a tutoring exchange.
type Provider interface {
	// Complete performs exactly one outbound call and normalizes the vendor
	// response. Retry and fallback belong to the chain, never to the adapter.
	Complete(ctx context.Context, ex *Exchange) (*Completion, error)

	// Name returns the provider identifier.
	Name() string

	// ContextWindow returns the maximum input size this provider accepts,
	// approximated in tokens.
	ContextWindow() int
}
