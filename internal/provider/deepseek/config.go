package deepseek

// Config contains DeepSeek provider configuration.
type Config struct {
	APIKey  string `env:"DEEPSEEK_API_KEY"`
	BaseURL string `env:"DEEPSEEK_BASE_URL" envDefault:"https://api.deepseek.com"`
	Model   string `env:"DEEPSEEK_MODEL"    envDefault:"deepseek-chat"`
	Timeout int    `env:"DEEPSEEK_TIMEOUT"  envDefault:"30"`
}
