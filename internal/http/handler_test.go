package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/profia/tutoria/internal/config"
	"github.com/profia/tutoria/internal/domain"
	internalhttp "github.com/profia/tutoria/internal/http"
	"github.com/profia/tutoria/internal/http/middleware"
	"github.com/profia/tutoria/internal/prompt"
)

// stubResolver is a scriptable Resolver that records the exchanges it saw.
type stubResolver struct {
	window    int
	exchanges []*domain.Exchange
	result    *domain.Completion
	err       error
}

func (s *stubResolver) Resolve(_ context.Context, ex *domain.Exchange) (*domain.Completion, error) {
	s.exchanges = append(s.exchanges, ex)
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubResolver) MinContextWindow() int {
	if s.window == 0 {
		return 4096
	}
	return s.window
}

func postChat(t *testing.T, handler *internalhttp.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/chat", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()
	handler.HandleChat(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var resp map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Len(t, resp, 2, "error responses carry exactly {error, fallback}")
	return resp
}

func TestHandleChat_Success(t *testing.T) {
	resolver := &stubResolver{
		result: &domain.Completion{
			Resposta: "Tente 7 grupos de 8!",
			Metadata: domain.Metadata{Model: "gpt-3.5-turbo", TokensUsed: 42, Tipo: domain.TipoTexto},
		},
	}
	handler := internalhttp.NewHandler(resolver, prompt.NewRegistry())

	w := postChat(t, handler, `{
		"message": "Quanto é 7x8?",
		"momento": "incentivo_tentativa",
		"userContext": {"nome": "Ana"}
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp domain.Completion
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.Equal(t, "Tente 7 grupos de 8!", resp.Resposta)
	require.Equal(t, "gpt-3.5-turbo", resp.Metadata.Model)
	require.Equal(t, 42, resp.Metadata.TokensUsed)
	require.Equal(t, domain.TipoTexto, resp.Metadata.Tipo)

	require.Len(t, resolver.exchanges, 1)
	require.Contains(t, resolver.exchanges[0].Prompt, "Ótima dúvida, Ana!")
	require.Equal(t, "Quanto é 7x8?", resolver.exchanges[0].Context)
}

func TestHandleChat_UnknownMomentoUsesRawMessageAsPrompt(t *testing.T) {
	resolver := &stubResolver{
		result: &domain.Completion{Resposta: "ok", Metadata: domain.Metadata{Tipo: domain.TipoTexto}},
	}
	handler := internalhttp.NewHandler(resolver, prompt.NewRegistry())

	w := postChat(t, handler, `{"message": "Me explica frações?", "momento": "momento_inexistente"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resolver.exchanges, 1)
	require.Equal(t, "Me explica frações?", resolver.exchanges[0].Prompt)
}

func TestHandleChat_TruncatesToMinContextWindow(t *testing.T) {
	resolver := &stubResolver{
		window: 2, // 8 characters
		result: &domain.Completion{Resposta: "ok", Metadata: domain.Metadata{Tipo: domain.TipoTexto}},
	}
	handler := internalhttp.NewHandler(resolver, prompt.NewRegistry())

	message := strings.Repeat("a", 20) + "12345678"
	w := postChat(t, handler, `{"message": "`+message+`"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resolver.exchanges, 1)
	require.Equal(t, "12345678", resolver.exchanges[0].Context)
}

func TestHandleChat_MissingMessageAndImage(t *testing.T) {
	resolver := &stubResolver{}
	handler := internalhttp.NewHandler(resolver, prompt.NewRegistry())

	w := postChat(t, handler, `{"userContext": {"nome": "Ana"}}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, resolver.exchanges, "no provider may be contacted for an invalid request")

	resp := decodeError(t, w)
	require.Equal(t, "mensagem ou imagem obrigatória", resp["error"])
	require.Equal(t, internalhttp.FallbackMessage, resp["fallback"])
}

func TestHandleChat_ImageOnlyIsValid(t *testing.T) {
	resolver := &stubResolver{
		result: &domain.Completion{Resposta: "ok", Metadata: domain.Metadata{Tipo: domain.TipoImagem}},
	}
	handler := internalhttp.NewHandler(resolver, prompt.NewRegistry())

	w := postChat(t, handler, `{"image": "data:image/jpeg;base64,aGVsbG8=", "momento": "recebendo_imagem"}`)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resolver.exchanges, 1)
	require.Equal(t, "data:image/jpeg;base64,aGVsbG8=", resolver.exchanges[0].Image)
}

func TestHandleChat_InvalidJSON(t *testing.T) {
	resolver := &stubResolver{}
	handler := internalhttp.NewHandler(resolver, prompt.NewRegistry())

	w := postChat(t, handler, "not json")

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, resolver.exchanges)
	decodeError(t, w)
}

func TestHandleChat_MethodNotAllowed(t *testing.T) {
	resolver := &stubResolver{}
	handler := internalhttp.NewHandler(resolver, prompt.NewRegistry())

	req := httptest.NewRequest(http.MethodGet, "/v1/chat", nil)
	w := httptest.NewRecorder()
	handler.HandleChat(w, req)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	require.Empty(t, resolver.exchanges)
}

func TestHandleChat_ExhaustionHidesProviderDetail(t *testing.T) {
	resolver := &stubResolver{
		err: &domain.ExhaustionError{
			Attempts: 4,
			Last:     &domain.ProviderError{Provider: "gemini", Status: 429, Body: "quota exceeded"},
		},
	}
	handler := internalhttp.NewHandler(resolver, prompt.NewRegistry())

	w := postChat(t, handler, `{"message": "Quanto é 7x8?"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)

	resp := decodeError(t, w)
	require.Equal(t, internalhttp.FallbackMessage, resp["fallback"])
	require.NotContains(t, resp["error"], "gemini", "vendor identity must not leak")
	require.NotContains(t, resp["error"], "quota", "vendor error text must not leak")
}

func TestHandleChat_PreflightShortCircuitsBeforeHandler(t *testing.T) {
	resolver := &stubResolver{}
	handler := internalhttp.NewHandler(resolver, prompt.NewRegistry())

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/chat", handler.HandleChat)

	corsCfg := &config.CORSConfig{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
		MaxAge:         86400,
	}
	wrapped := middleware.BuildMiddlewareChain(corsCfg)(mux)

	req := httptest.NewRequest(http.MethodOptions, "/v1/chat", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "authorization, x-client-info, apikey, content-type")
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	require.Empty(t, resolver.exchanges, "pre-flight must never reach the chat handler")
}

func TestHandleHealth(t *testing.T) {
	handler := internalhttp.NewHandler(&stubResolver{}, prompt.NewRegistry())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.HandleHealth(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	require.Equal(t, "healthy", response["status"])
}
