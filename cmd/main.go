package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/profia/tutoria/internal/config"
	"github.com/profia/tutoria/internal/domain"
	"github.com/profia/tutoria/internal/http"
	"github.com/profia/tutoria/internal/http/middleware"
	"github.com/profia/tutoria/internal/observability"
	"github.com/profia/tutoria/internal/prompt"
	"github.com/profia/tutoria/internal/provider/deepseek"
	"github.com/profia/tutoria/internal/provider/eco"
	"github.com/profia/tutoria/internal/provider/gemini"
	"github.com/profia/tutoria/internal/provider/huggingface"
	"github.com/profia/tutoria/internal/provider/openai"
	"github.com/profia/tutoria/internal/provider/registry"
)

// knownProviders lists every name CHAIN_ORDER may reference. A known name
// whose provider is unconfigured is skipped; an unknown name is a startup error.
var knownProviders = map[string]bool{
	"deepseek":    true,
	"openai":      true,
	"huggingface": true,
	"gemini":      true,
	"eco":         true,
}

func main() {
	container := buildContainer()

	err := container.Invoke(func(server *http.Server) {
		if err := server.Start(); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func buildContainer() *dig.Container {
	container := dig.New()

	// Configuration
	if err := container.Provide(config.Load); err != nil {
		log.Fatalf("Failed to provide config: %v", err)
	}
	if err := container.Provide(config.ParseDependenciesConfig); err != nil {
		log.Fatalf("Failed to provide config dependencies: %v", err)
	}

	// Observability
	if err := container.Provide(observability.InitLogger); err != nil {
		log.Fatalf("Failed to provide logger: %v", err)
	}

	// Prompt registry
	if err := container.Provide(prompt.NewRegistry); err != nil {
		log.Fatalf("Failed to provide prompt registry: %v", err)
	}

	// Provider registry
	if err := container.Provide(buildProviderRegistry); err != nil {
		log.Fatalf("Failed to provide provider registry: %v", err)
	}

	// Fallback chain
	if err := container.Provide(buildFallbackChain); err != nil {
		log.Fatalf("Failed to provide fallback chain: %v", err)
	}

	// HTTP Layer
	if err := container.Provide(func(chain *domain.FallbackChain, prompts *prompt.Registry) *http.Handler {
		return http.NewHandler(chain, prompts)
	}); err != nil {
		log.Fatalf("Failed to provide HTTP handler: %v", err)
	}
	if err := container.Provide(middleware.BuildMiddlewareChain); err != nil {
		log.Fatalf("Failed to provide middleware chain: %v", err)
	}
	if err := container.Provide(http.NewServer); err != nil {
		log.Fatalf("Failed to provide HTTP server: %v", err)
	}

	return container
}

// buildProviderRegistry constructs every provider whose credential is present
// and registers it by name. A missing credential is a normal condition: the
// provider simply never joins the chain.
func buildProviderRegistry(
	logger *zap.Logger,
	deepseekCfg *deepseek.Config,
	openaiCfg *openai.Config,
	huggingfaceCfg *huggingface.Config,
	geminiCfg *gemini.Config,
) (*registry.Registry, error) {
	reg := registry.NewRegistry()

	register := func(name string, provider domain.Provider, err error) error {
		if errors.Is(err, domain.ErrNotConfigured) {
			logger.Info("provider skipped: credential absent", zap.String("provider", name))
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to construct %s provider: %w", name, err)
		}
		return reg.Register(provider)
	}

	deepseekProvider, err := deepseek.NewProvider(*deepseekCfg)
	if err := register("deepseek", deepseekProvider, err); err != nil {
		return nil, err
	}

	openaiProvider, err := openai.NewProvider(*openaiCfg)
	if err := register("openai", openaiProvider, err); err != nil {
		return nil, err
	}

	huggingfaceProvider, err := huggingface.NewProvider(*huggingfaceCfg)
	if err := register("huggingface", huggingfaceProvider, err); err != nil {
		return nil, err
	}

	geminiProvider, err := gemini.NewProvider(*geminiCfg)
	if err := register("gemini", geminiProvider, err); err != nil {
		return nil, err
	}

	// The eco provider needs no credentials and only enters the chain when
	// CHAIN_ORDER names it explicitly.
	if err := reg.Register(eco.NewProvider()); err != nil {
		return nil, err
	}

	return reg, nil
}

// buildFallbackChain materializes CHAIN_ORDER into the ordered provider chain.
func buildFallbackChain(
	reg *registry.Registry,
	chainCfg *config.ChainConfig,
	logger *zap.Logger,
) (*domain.FallbackChain, error) {
	providers, err := reg.Resolve(chainCfg.Order, knownProviders)
	if err != nil {
		return nil, err
	}

	if len(providers) == 0 {
		logger.Warn("no provider configured: every completion request will fail")
	} else {
		names := make([]string, 0, len(providers))
		for _, p := range providers {
			names = append(names, p.Name())
		}
		logger.Info("fallback chain assembled", zap.Strings("order", names))
	}

	return domain.NewFallbackChain(providers, time.Duration(chainCfg.AttemptTimeout)*time.Second), nil
}
