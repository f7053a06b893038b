package commands

import (
	"github.com/spf13/cobra"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/cmd/btpipe/handlers"
)

// Status returns the command for a one-shot pipeline status check.
func Status() *cobra.Command {
	var statePath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show recorded resources and the current job status",
		Long: `Show everything recorded in the state file and, when a job has been
submitted, query its current status once without blocking.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), statePath)
		},
	}

	cmd.Flags().StringVar(&statePath, "state", "", "Path to the state file (default: btpipe_state.json)")

	return cmd
}
