package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-feedback-api/internal/config"
	"github.com/noah-isme/gema-feedback-api/internal/handler"
	"github.com/noah-isme/gema-feedback-api/internal/middleware"
	"github.com/noah-isme/gema-feedback-api/internal/router"
	"github.com/noah-isme/gema-feedback-api/internal/service"
	"github.com/noah-isme/gema-feedback-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", cfg.AppName).Logger()

	provider, err := ai.NewProvider(context.Background(), ai.Config{
		Provider:  cfg.AIProvider,
		Model:     cfg.AIModel,
		Gemini:    ai.GeminiConfig{APIKey: cfg.GeminiAPIKey, BaseURL: cfg.GeminiBaseURL},
		OpenAI:    ai.OpenAIConfig{APIKey: cfg.OpenAIAPIKey, BaseURL: cfg.OpenAIBaseURL},
		Anthropic: ai.AnthropicConfig{APIKey: cfg.AnthropicAPIKey, BaseURL: cfg.AnthropicBaseURL},
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("failed to create ai provider: %v", err)
	}

	events := service.NoopEventPublisher()
	if cfg.NATSURL != "" {
		conn, err := nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName), nats.MaxReconnects(-1))
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer conn.Drain()
		events = service.NewNATSEventPublisher(conn, cfg.EventsSubject)
		logger.Info().Str("subject", cfg.EventsSubject).Msg("publishing generation events to nats")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	generation := service.GenerationConfig{
		Timeout:     cfg.AITimeout,
		MaxTokens:   cfg.AIMaxTokens,
		Temperature: cfg.AITemperature,
	}

	feedbackService := service.NewFeedbackService(provider, events, validate, logger, generation)
	practiceService := service.NewPracticeService(provider, events, validate, logger, generation)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		// Handlers must outlive the provider budget.
		WriteTimeout: cfg.AITimeout + 10*time.Second,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.CORSAllowOrigins,
		AccessLog:    cfg.AppEnv == "development",
	})
	router.Register(app, cfg, router.Dependencies{
		FeedbackHandler: handler.NewFeedbackHandler(feedbackService, logger),
		PracticeHandler: handler.NewPracticeHandler(practiceService, logger),
		ModelID:         provider.ModelID(),
	})

	go func() {
		logger.Info().Str("address", cfg.HTTPAddress()).Str("ai_provider", cfg.AIProvider).Str("ai_model", provider.ModelID()).Msg("server starting")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, cfg.AITimeout)
}

func waitForShutdown(app *fiber.App, budget time.Duration) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	// In-flight generations get their full budget to finish.
	ctx, cancel := context.WithTimeout(context.Background(), budget+5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
