package http

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/profia/tutoria/internal/domain"
	"github.com/profia/tutoria/internal/observability"
	"github.com/profia/tutoria/internal/prompt"
)

// FallbackMessage is the fixed apology shown to students whenever the proxy
// cannot produce an answer. Vendor error text never reaches the client.
const FallbackMessage = "Desculpe, não consegui processar sua pergunta no momento. " +
	"Tente novamente em alguns instantes ou reformule sua dúvida."

// exhaustionMessage is the synthesized terminal error; deliberately generic
// so the caller cannot tell which provider failed.
const exhaustionMessage = "não foi possível obter resposta dos provedores de IA"

// Resolver is the slice of the fallback chain the handler depends on.
type Resolver interface {
	Resolve(ctx context.Context, ex *domain.Exchange) (*domain.Completion, error)
	MinContextWindow() int
}

// errorResponse is the single error shape used by every failure path.
type errorResponse struct {
	Error    string `json:"error"`
	Fallback string `json:"fallback"`
}

// Handler handles HTTP requests.
type Handler struct {
	resolver Resolver
	prompts  *prompt.Registry
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(resolver Resolver, prompts *prompt.Registry) *Handler {
	return &Handler{
		resolver: resolver,
		prompts:  prompts,
	}
}

// HandleChat processes tutoring completion requests. Pre-flight OPTIONS
// requests are already answered by the CORS middleware before reaching here.
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "método não permitido")
		return
	}

	var req domain.CompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	// Fail fast: no provider is contacted for an empty request.
	if !req.Valid() {
		writeError(w, http.StatusBadRequest, domain.ErrMissingInput.Error())
		return
	}

	ctx = observability.WithMomento(ctx, req.Momento)

	logger := observability.FromContext(ctx)
	logger.Info("completion request received",
		zap.Bool("has_image", req.Image != ""),
		zap.Int("message_chars", len(req.Message)),
	)

	// Unknown or absent momento degrades to the raw message as the prompt.
	systemPrompt := h.prompts.Render(req.Momento, req.UserContext)
	if systemPrompt == "" {
		systemPrompt = req.Message
	}

	exchange := &domain.Exchange{
		Prompt:  systemPrompt,
		Context: domain.Truncate(req.Message, h.resolver.MinContextWindow()),
		Image:   req.Image,
	}

	completion, err := h.resolver.Resolve(ctx, exchange)
	if err != nil {
		logger.Error("all providers failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, exhaustionMessage)
		return
	}

	logger.Info("completion succeeded",
		zap.String("model", completion.Metadata.Model),
		zap.Int("tokens", completion.Metadata.TokensUsed),
		zap.String("tipo", completion.Metadata.Tipo),
	)

	w.Header().Set("Content-Type", "application/json")
	if encodeErr := json.NewEncoder(w).Encode(completion); encodeErr != nil {
		logger.Error("failed to encode response", zap.Error(encodeErr))
	}
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		// Already written status, can't change it, just log.
		return
	}
}

// writeError serializes the uniform error shape.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error:    message,
		Fallback: FallbackMessage,
	})
}
