package registry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/profia/tutoria/internal/domain"
	"github.com/profia/tutoria/internal/provider/registry"
)

type namedProvider struct {
	name string
}

func (p *namedProvider) Complete(_ context.Context, ex *domain.Exchange) (*domain.Completion, error) {
	return &domain.Completion{
		Resposta: "ok",
		Metadata: domain.Metadata{Model: p.name, Tipo: ex.Tipo()},
	}, nil
}

func (p *namedProvider) Name() string       { return p.name }
func (p *namedProvider) ContextWindow() int { return 4096 }

func TestRegistry_Register(t *testing.T) {
	reg := registry.NewRegistry()

	require.NoError(t, reg.Register(&namedProvider{name: "deepseek"}))

	provider, ok := reg.Get("deepseek")
	require.True(t, ok)
	require.Equal(t, "deepseek", provider.Name())
}

func TestRegistry_RegisterDuplicate(t *testing.T) {
	reg := registry.NewRegistry()

	require.NoError(t, reg.Register(&namedProvider{name: "deepseek"}))

	err := reg.Register(&namedProvider{name: "deepseek"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "already registered")
}

func TestRegistry_RegisterNil(t *testing.T) {
	reg := registry.NewRegistry()

	require.Error(t, reg.Register(nil))
}

func TestRegistry_GetMissing(t *testing.T) {
	reg := registry.NewRegistry()

	_, ok := reg.Get("gemini")
	require.False(t, ok)
}

func TestRegistry_Resolve(t *testing.T) {
	known := map[string]bool{"deepseek": true, "openai": true, "huggingface": true, "gemini": true}

	reg := registry.NewRegistry()
	require.NoError(t, reg.Register(&namedProvider{name: "openai"}))
	require.NoError(t, reg.Register(&namedProvider{name: "gemini"}))

	providers, err := reg.Resolve([]string{"deepseek", "openai", "huggingface", "gemini"}, known)

	require.NoError(t, err)
	require.Len(t, providers, 2, "unconfigured providers are skipped, not errors")
	require.Equal(t, "openai", providers[0].Name())
	require.Equal(t, "gemini", providers[1].Name())
}

func TestRegistry_ResolveUnknownName(t *testing.T) {
	reg := registry.NewRegistry()

	providers, err := reg.Resolve([]string{"chatgtp"}, map[string]bool{"openai": true})

	require.Nil(t, providers)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown provider")
}

func TestRegistry_Names(t *testing.T) {
	reg := registry.NewRegistry()
	require.NoError(t, reg.Register(&namedProvider{name: "openai"}))
	require.NoError(t, reg.Register(&namedProvider{name: "eco"}))

	require.ElementsMatch(t, []string{"openai", "eco"}, reg.Names())
}
