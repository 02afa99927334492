package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/noah-isme/gema-feedback-api/internal/config"
	"github.com/noah-isme/gema-feedback-api/internal/dto"
	"github.com/noah-isme/gema-feedback-api/internal/service"
	"github.com/noah-isme/gema-feedback-api/pkg/ai"
)

// providerFactory builds the provider for a loaded configuration.
type providerFactory func(ctx context.Context, cfg config.Config, logger zerolog.Logger) (ai.Provider, error)

func defaultProviderFactory(ctx context.Context, cfg config.Config, logger zerolog.Logger) (ai.Provider, error) {
	return ai.NewProvider(ctx, ai.Config{
		Provider:  cfg.AIProvider,
		Model:     cfg.AIModel,
		Gemini:    ai.GeminiConfig{APIKey: cfg.GeminiAPIKey, BaseURL: cfg.GeminiBaseURL},
		OpenAI:    ai.OpenAIConfig{APIKey: cfg.OpenAIAPIKey, BaseURL: cfg.OpenAIBaseURL},
		Anthropic: ai.AnthropicConfig{APIKey: cfg.AnthropicAPIKey, BaseURL: cfg.AnthropicBaseURL},
		Logger:    logger,
	})
}

type runtime struct {
	feedback service.FeedbackService
	practice service.PracticeService
}

func newRootCmd(factory providerFactory) *cobra.Command {
	root := &cobra.Command{
		Use:           "feedbackctl",
		Short:         "Generate structured feedback and practice problems from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("verbose", false, "Log provider calls to stderr")

	setup := func(cmd *cobra.Command) (*runtime, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("load configuration: %w", err)
		}

		logger := zerolog.Nop()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger = zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()}).With().Timestamp().Logger()
		}

		provider, err := factory(cmd.Context(), cfg, logger)
		if err != nil {
			return nil, err
		}

		validate := validator.New(validator.WithRequiredStructEnabled())
		generation := service.GenerationConfig{
			Timeout:     cfg.AITimeout,
			MaxTokens:   cfg.AIMaxTokens,
			Temperature: cfg.AITemperature,
		}
		return &runtime{
			feedback: service.NewFeedbackService(provider, nil, validate, logger, generation),
			practice: service.NewPracticeService(provider, nil, validate, logger, generation),
		}, nil
	}

	root.AddCommand(newFeedbackCmd(setup))
	root.AddCommand(newPracticeCmd(setup))
	root.AddCommand(newTopicsCmd())
	return root
}

func newFeedbackCmd(setup func(*cobra.Command) (*runtime, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback <file|->",
		Short: "Grade a submission read from a file or stdin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("type")

			content, err := readSubmission(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			rt, err := setup(cmd)
			if err != nil {
				return err
			}

			outcome, err := rt.feedback.Generate(cmd.Context(), dto.FeedbackRequest{Content: content, Type: kind})
			if err != nil {
				return err
			}
			return printOutcome(cmd.OutOrStdout(), outcome)
		},
	}
	cmd.Flags().String("type", string(service.DefaultCategory), "Submission category: essay, coding or maths")
	return cmd
}

func newPracticeCmd(setup func(*cobra.Command) (*runtime, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Generate a practice problem",
		RunE: func(cmd *cobra.Command, args []string) error {
			topic, _ := cmd.Flags().GetString("topic")
			difficulty, _ := cmd.Flags().GetString("difficulty")
			kind, _ := cmd.Flags().GetString("type")

			rt, err := setup(cmd)
			if err != nil {
				return err
			}

			outcome, err := rt.practice.Generate(cmd.Context(), dto.PracticeRequest{Topic: topic, Difficulty: difficulty, Type: kind})
			if err != nil {
				return err
			}
			return printOutcome(cmd.OutOrStdout(), outcome)
		},
	}
	cmd.Flags().String("topic", "", "Practice topic")
	cmd.Flags().String("difficulty", "intermediate", "beginner, intermediate or advanced")
	cmd.Flags().String("type", string(service.DefaultCategory), "Category: essay, coding or maths")
	_ = cmd.MarkFlagRequired("topic")
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topics [essay|coding|maths]",
		Short: "List suggested practice topics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			category := service.DefaultCategory
			if len(args) == 1 {
				category = service.ResolveCategory(args[0])
			}
			for _, topic := range service.TopicSuggestions(category) {
				fmt.Fprintln(cmd.OutOrStdout(), topic)
			}
			return nil
		},
	}
}

func readSubmission(stdin io.Reader, source string) (string, error) {
	var (
		raw []byte
		err error
	)
	if source == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(source)
	}
	if err != nil {
		return "", fmt.Errorf("read submission: %w", err)
	}
	return string(raw), nil
}

// printOutcome writes the result as indented JSON, or returns the failure
// message as an error.
func printOutcome[T any](w io.Writer, outcome service.Outcome[T]) error {
	if !outcome.OK() {
		return fmt.Errorf("%s", outcome.Message)
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(outcome.Result)
}
