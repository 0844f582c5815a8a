package cli

import (
	"fmt"
	"strings"

	"care-intake-be/internal/constant"
	"care-intake-be/internal/faq"
	"care-intake-be/pkg/ai/prompt"

	"github.com/spf13/cobra"
)

type requestFlags struct {
	name        string
	cancerType  string
	role        string
	supportType string
	message     string
}

func (f *requestFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "Asha", "requester name")
	cmd.Flags().StringVar(&f.cancerType, "cancer-type", "", "cancer type (optional)")
	cmd.Flags().StringVar(&f.role, "role", "Caregiver", "requester role")
	cmd.Flags().StringVar(&f.supportType, "support-type", "Financial Assistance", "kind of support needed")
	cmd.Flags().StringVar(&f.message, "message", "", "free-text message")
}

func (f *requestFlags) input() prompt.IntakeInput {
	return prompt.IntakeInput{
		Organization: constant.OrganizationName,
		Name:         f.name,
		CancerType:   f.cancerType,
		Role:         f.role,
		SupportType:  f.supportType,
		Message:      f.message,
	}
}

// NewPromptCommand creates the 'carectl prompt' command
func NewPromptCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Render the prompts sent to the model without calling it",
	}

	var flags requestFlags
	intake := &cobra.Command{
		Use:   "intake",
		Short: "Render the triage prompt for a support request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), prompt.BuildIntakePrompt(flags.input()))
			return nil
		},
	}
	flags.bind(intake)

	var corpusPath string
	faqCmd := &cobra.Command{
		Use:   "faq <question>",
		Short: "Render the FAQ prompt for a question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			corpus, err := faq.Load(corpusPath)
			if err != nil {
				return fmt.Errorf("load corpus: %w", err)
			}
			question := strings.Join(args, " ")
			fmt.Fprintln(cmd.OutOrStdout(), prompt.BuildFAQPrompt(question, corpus.Entries(), constant.FAQSafeFallback))
			return nil
		},
	}
	faqCmd.Flags().StringVar(&corpusPath, "corpus", "", "FAQ YAML file (embedded corpus when empty)")

	cmd.AddCommand(intake, faqCmd)
	return cmd
}
