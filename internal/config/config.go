package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	defaultAITimeout   = 60 * time.Second
	defaultAIMaxTokens = 4096
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName          string
	AppEnv           string
	AppPort          string
	LogLevel         string
	AIProvider       string
	AIModel          string
	AITimeout        time.Duration
	AIMaxTokens      int
	AITemperature    float64
	GeminiAPIKey     string
	GeminiBaseURL    string
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	AnthropicAPIKey  string
	AnthropicBaseURL string
	NATSURL          string
	EventsSubject    string
	CORSAllowOrigins string
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Validate checks that the selected AI provider has the credentials it needs.
func (c Config) Validate() error {
	switch c.AIProvider {
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMA_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("GEMA_OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("GEMA_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown ai provider: %q", c.AIProvider)
	}

	if c.AITimeout <= 0 {
		return fmt.Errorf("ai timeout must be positive")
	}

	return nil
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("GEMA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "GEMA Feedback API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.timeout", defaultAITimeout.String())
	v.SetDefault("ai.max_tokens", defaultAIMaxTokens)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("events.subject", "gema.feedback.generation")
	v.SetDefault("cors.allow_origins", "*")

	timeoutString := v.GetString("ai.timeout")
	if timeoutString == "" {
		timeoutString = defaultAITimeout.String()
	}

	timeout, err := time.ParseDuration(timeoutString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid ai timeout: %w", err)
	}

	cfg := Config{
		AppName:          v.GetString("app.name"),
		AppEnv:           v.GetString("app.env"),
		AppPort:          v.GetString("app.port"),
		LogLevel:         strings.ToLower(v.GetString("log.level")),
		AIProvider:       strings.ToLower(strings.TrimSpace(v.GetString("ai.provider"))),
		AIModel:          v.GetString("ai.model"),
		AITimeout:        timeout,
		AIMaxTokens:      v.GetInt("ai.max_tokens"),
		AITemperature:    v.GetFloat64("ai.temperature"),
		GeminiAPIKey:     v.GetString("gemini_api_key"),
		GeminiBaseURL:    v.GetString("gemini_base_url"),
		OpenAIAPIKey:     v.GetString("openai_api_key"),
		OpenAIBaseURL:    v.GetString("openai_base_url"),
		AnthropicAPIKey:  v.GetString("anthropic_api_key"),
		AnthropicBaseURL: v.GetString("anthropic_base_url"),
		NATSURL:          v.GetString("nats_url"),
		EventsSubject:    v.GetString("events.subject"),
		CORSAllowOrigins: v.GetString("cors.allow_origins"),
	}

	if cfg.AIMaxTokens <= 0 {
		cfg.AIMaxTokens = defaultAIMaxTokens
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
