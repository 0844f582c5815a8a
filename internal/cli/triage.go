package cli

import (
	"fmt"
	"io"
	"strings"

	"care-intake-be/internal/config"
	"care-intake-be/internal/entity"
	"care-intake-be/internal/faq"
	"care-intake-be/internal/metrics"
	"care-intake-be/internal/pkg/logger"
	"care-intake-be/internal/service"
	"care-intake-be/pkg/llm"
	"care-intake-be/pkg/llm/factory"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// providerFn is swapped in tests
var providerFn = func(cfg *config.Config) (llm.LLMProvider, error) {
	return factory.NewLLMProvider(factory.Params{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.LLMModel,
		Timeout:       cfg.Ai.LLMTimeout,
		GroqAPIKey:    cfg.Keys.Groq,
		GroqBaseURL:   cfg.Ai.GroqBaseURL,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
	})
}

// NewTriageCommand creates the 'carectl triage' command
func NewTriageCommand() *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "triage",
		Short: "Run one support request through the configured model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(flags.message) == "" {
				return fmt.Errorf("--message is required")
			}

			provider, err := providerFn(config.Load())
			if err != nil {
				return err
			}

			svc := service.NewIntakeService(provider, nil, nil, metrics.New("carectl"), logger.NewNopLogger())
			result, err := svc.Analyze(cmd.Context(), entity.SupportRequest{
				Name:        flags.name,
				CancerType:  flags.cancerType,
				Role:        flags.role,
				SupportType: flags.supportType,
				Message:     flags.message,
			})
			if err != nil {
				return fmt.Errorf("triage failed: %w", err)
			}

			printTriage(cmd.OutOrStdout(), result)
			return nil
		},
	}
	flags.bind(cmd)

	return cmd
}

// NewAskCommand creates the 'carectl ask' command
func NewAskCommand() *cobra.Command {
	var corpusPath string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the FAQ assistant one question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := faq.Load(corpusPath)
			if err != nil {
				return fmt.Errorf("load corpus: %w", err)
			}

			provider, err := providerFn(config.Load())
			if err != nil {
				return err
			}

			svc := service.NewFAQService(provider, corpus, metrics.New("carectl"), logger.NewNopLogger())
			answer := svc.Ask(cmd.Context(), strings.Join(args, " "))

			printAnswer(cmd.OutOrStdout(), answer, corpus)
			return nil
		},
	}
	cmd.Flags().StringVar(&corpusPath, "corpus", "", "FAQ YAML file (embedded corpus when empty)")

	return cmd
}

func urgencyColor(u entity.Urgency) *color.Color {
	switch u {
	case entity.UrgencyHigh:
		return color.New(color.FgRed, color.Bold)
	case entity.UrgencyMedium:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgGreen, color.Bold)
	}
}

func printTriage(w io.Writer, result *entity.TriageResult) {
	cyan := color.New(color.FgCyan, color.Bold)

	cyan.Fprintln(w, "Triage result")
	fmt.Fprint(w, "  Urgency:    ")
	urgencyColor(result.Urgency).Fprintln(w, result.Urgency)
	fmt.Fprintf(w, "  Reason:     %s\n", result.UrgencyReason)
	fmt.Fprintf(w, "  Summary:    %s\n", result.Summary)
	fmt.Fprintf(w, "  Next steps: %s\n", result.SuggestedNextSteps)
}

func printAnswer(w io.Writer, answer *entity.FAQAnswer, corpus *faq.Corpus) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	cyan.Fprintln(w, "FAQ answer")
	fmt.Fprintf(w, "  %s\n", answer.Answer)

	if answer.MatchedFaqId == nil {
		yellow.Fprintln(w, "  No FAQ entry matched")
		return
	}
	entry, _ := corpus.Get(*answer.MatchedFaqId)
	green.Fprintf(w, "  Matched FAQ #%d: %s\n", entry.Id, entry.Question)
}
