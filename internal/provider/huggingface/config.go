package huggingface

// Config contains HuggingFace inference endpoint configuration.
type Config struct {
	APIKey  string `env:"HUGGINGFACE_API_KEY"`
	BaseURL string `env:"HUGGINGFACE_BASE_URL" envDefault:"https://api.endpoints.huggingface.cloud/v1"`
	Model   string `env:"HUGGINGFACE_MODEL"    envDefault:"meta-llama/Meta-Llama-3-8B-Instruct"`
	Timeout int    `env:"HUGGINGFACE_TIMEOUT"  envDefault:"30"`
}
