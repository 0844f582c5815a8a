// Package cli implements carectl, the operator tool for prompt tracing,
// one-off triage runs and API smoke checks.
package cli

import (
	"github.com/spf13/cobra"
)

// Version is the current version of carectl
const Version = "1.0.0"

func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "carectl",
		Short: "Operator tooling for the care intake backend",
		Long: `carectl helps volunteers and developers inspect the intake assistant:
it renders the exact prompts sent to the model, runs one-off triage or FAQ
calls against the configured provider, and smoke-tests a running server.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewPromptCommand())
	cmd.AddCommand(NewTriageCommand())
	cmd.AddCommand(NewAskCommand())
	cmd.AddCommand(NewSmokeCommand())

	return cmd
}
