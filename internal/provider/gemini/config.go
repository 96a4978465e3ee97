package gemini

// Config contains Gemini provider configuration.
type Config struct {
	APIKey  string `env:"GEMINI_API_KEY"`
	Model   string `env:"GEMINI_MODEL"   envDefault:"gemini-1.5-flash"`
	Timeout int    `env:"GEMINI_TIMEOUT" envDefault:"30"`
}
