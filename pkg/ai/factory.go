package ai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// Config selects and configures a provider.
type Config struct {
	Provider  string
	Model     string
	Gemini    GeminiConfig
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Logger    zerolog.Logger
}

// NewProvider builds the configured provider wrapped with instrumentation.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	var (
		base Provider
		err  error
	)

	switch cfg.Provider {
	case "gemini":
		gemini := cfg.Gemini
		if gemini.Model == "" {
			gemini.Model = cfg.Model
		}
		base, err = NewGeminiProvider(ctx, gemini)
	case "openai":
		openaiCfg := cfg.OpenAI
		if openaiCfg.Model == "" {
			openaiCfg.Model = cfg.Model
		}
		base, err = NewOpenAIProvider(openaiCfg)
	case "anthropic":
		anthropicCfg := cfg.Anthropic
		if anthropicCfg.Model == "" {
			anthropicCfg.Model = cfg.Model
		}
		base, err = NewAnthropicProvider(anthropicCfg)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown ai provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initialise %s provider: %w", cfg.Provider, err)
	}

	return WithInstrumentation(base, cfg.Logger), nil
}
