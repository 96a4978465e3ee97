package domain

import (
	"encoding/json"
	"strconv"
)

// CompletionRequest is the inbound unit of work for the tutoring proxy.
type CompletionRequest struct {
	Message     string      `json:"message,omitempty"`
	Image       string      `json:"image,omitempty"` // data URL or bare base64
	UserContext UserContext `json:"userContext,omitempty"`
	Momento     string      `json:"momento,omitempty"`
	Tipo        string      `json:"tipo,omitempty"`
}

// Valid reports whether the request carries at least a message or an image.
func (r *CompletionRequest) Valid() bool {
	return r.Message != "" || r.Image != ""
}

// UserContext is the student profile bag used to parametrize prompt templates.
// Clients send arbitrary extra attributes, so it stays a loose mapping with
// typed accessors that degrade to documented defaults.
type UserContext map[string]any

// StringField returns the named attribute as a string, or def when absent.
// Numeric values (idade, moedas arrive as JSON numbers from some clients)
// are formatted without a decimal point.
func (c UserContext) StringField(key, def string) string {
	v, ok := c[key]
	if !ok || v == nil {
		return def
	}

	switch t := v.(type) {
	case string:
		if t == "" {
			return def
		}
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	default:
		return def
	}
}

// Exchange is what a single provider attempt receives: the rendered system
// prompt, the truncated user context and the optional image payload.
type Exchange struct {
	Prompt  string
	Context string
	Image   string
}

// HasImage reports whether an image was supplied with this exchange.
func (e *Exchange) HasImage() bool {
	return e.Image != ""
}

// Tipo returns the response type tag for this exchange.
func (e *Exchange) Tipo() string {
	if e.HasImage() {
		return TipoImagem
	}
	return TipoTexto
}

// Response type tags.
const (
	TipoTexto  = "texto"
	TipoImagem = "imagem"
)

// Completion is the normalized result every adapter produces on success.
type Completion struct {
	Resposta string   `json:"resposta"`
	Metadata Metadata `json:"metadata"`
}

// Metadata describes how a completion was produced.
type Metadata struct {
	Model      string `json:"model"`
	TokensUsed int    `json:"tokensUsed"`
	Tipo       string `json:"tipo"`
}
