package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"go.uber.org/dig"

	"github.com/profia/tutoria/internal/provider/deepseek"
	"github.com/profia/tutoria/internal/provider/gemini"
	"github.com/profia/tutoria/internal/provider/huggingface"
	"github.com/profia/tutoria/internal/provider/openai"
)

// Config represents the proxy configuration.
type Config struct {
	Server      ServerConfig
	CORS        CORSConfig
	Chain       ChainConfig
	DeepSeek    deepseek.Config
	OpenAI      openai.Config
	HuggingFace huggingface.Config
	Gemini      gemini.Config
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port         int `env:"SERVER_PORT"          envDefault:"8080"`
	ReadTimeout  int `env:"SERVER_READ_TIMEOUT"  envDefault:"30"`
	WriteTimeout int `env:"SERVER_WRITE_TIMEOUT" envDefault:"120"`
}

// CORSConfig contains CORS policy settings. Defaults match the browser
// client: any origin, POST only, the Supabase-style request headers.
type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	AllowedMethods []string `env:"CORS_ALLOWED_METHODS" envSeparator:"," envDefault:"POST,OPTIONS"`
	AllowedHeaders []string `env:"CORS_ALLOWED_HEADERS" envSeparator:"," envDefault:"Authorization,X-Client-Info,Apikey,Content-Type"`
	MaxAge         int      `env:"CORS_MAX_AGE"                          envDefault:"86400"`
}

// ChainConfig controls the fallback chain: which providers are attempted, in
// which order, and how long one attempt may run.
type ChainConfig struct {
	Order          []string `env:"CHAIN_ORDER"      envSeparator:"," envDefault:"deepseek,openai,huggingface,gemini"`
	AttemptTimeout int      `env:"PROVIDER_TIMEOUT"                  envDefault:"20"`
}

// DepConfig is used for dependency injection with dig.
type DepConfig struct {
	dig.Out
	*ServerConfig
	*CORSConfig
	*ChainConfig
	DeepSeek    *deepseek.Config
	OpenAI      *openai.Config
	HuggingFace *huggingface.Config
	Gemini      *gemini.Config
}

// Load loads environment files and parses configuration.
func Load() *Config {
	for _, file := range []string{".env"} {
		_ = godotenv.Load(file)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		panic(err)
	}

	return &cfg
}

// ParseDependenciesConfig returns pointers to sub-configs for dependency injection.
func ParseDependenciesConfig(cfg *Config) DepConfig {
	return DepConfig{
		dig.Out{},
		&cfg.Server,
		&cfg.CORS,
		&cfg.Chain,
		&cfg.DeepSeek,
		&cfg.OpenAI,
		&cfg.HuggingFace,
		&cfg.Gemini,
	}
}
