package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/profia/tutoria/internal/config"
)

func TestLoad(t *testing.T) {
	t.Run("should load config with defaults", func(t *testing.T) {
		// Clear environment
		os.Clearenv()

		cfg := config.Load()

		require.NotNil(t, cfg)

		// Verify defaults
		require.Equal(t, 8080, cfg.Server.Port)
		require.Equal(t, 30, cfg.Server.ReadTimeout)
		require.Equal(t, 120, cfg.Server.WriteTimeout)

		require.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
		require.Equal(t, []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"}, cfg.CORS.AllowedHeaders)

		require.Equal(t, []string{"deepseek", "openai", "huggingface", "gemini"}, cfg.Chain.Order)
		require.Equal(t, 20, cfg.Chain.AttemptTimeout)

		require.Empty(t, cfg.DeepSeek.APIKey)
		require.Equal(t, "https://api.deepseek.com", cfg.DeepSeek.BaseURL)
		require.Equal(t, "deepseek-chat", cfg.DeepSeek.Model)

		require.Empty(t, cfg.OpenAI.APIKey)
		require.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
		require.Equal(t, "gpt-3.5-turbo", cfg.OpenAI.Model)

		require.Equal(t, "meta-llama/Meta-Llama-3-8B-Instruct", cfg.HuggingFace.Model)
		require.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	})

	t.Run("should load config from environment variables", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9000")
		t.Setenv("CHAIN_ORDER", "gemini,eco")
		t.Setenv("PROVIDER_TIMEOUT", "5")
		t.Setenv("DEEPSEEK_API_KEY", "sk-deepseek")
		t.Setenv("OPENAI_API_KEY", "sk-openai")
		t.Setenv("GEMINI_API_KEY", "sk-gemini")
		t.Setenv("GEMINI_MODEL", "gemini-1.5-pro")

		cfg := config.Load()

		require.NotNil(t, cfg)

		require.Equal(t, 9000, cfg.Server.Port)
		require.Equal(t, []string{"gemini", "eco"}, cfg.Chain.Order)
		require.Equal(t, 5, cfg.Chain.AttemptTimeout)
		require.Equal(t, "sk-deepseek", cfg.DeepSeek.APIKey)
		require.Equal(t, "sk-openai", cfg.OpenAI.APIKey)
		require.Equal(t, "sk-gemini", cfg.Gemini.APIKey)
		require.Equal(t, "gemini-1.5-pro", cfg.Gemini.Model)
	})
}
