package commands

import (
	"github.com/spf13/cobra"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/cmd/btpipe/handlers"
)

// Cleanup returns the command for removing provisioned resources.
func Cleanup() *cobra.Command {
	var (
		statePath string
		assumeYes bool
	)

	cmd := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete the bucket, role, and state file of a finished run",
		Long: `Delete everything the pipeline provisioned: the training-data bucket and
its objects, the service role, and the local state file. The custom model
itself is not touched.

Examples:
  btpipe cleanup
  btpipe cleanup --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Cleanup(cmd.Context(), handlers.CleanupOptions{
				StatePath: statePath,
				AssumeYes: assumeYes,
			})
		},
	}

	cmd.Flags().StringVar(&statePath, "state", "", "Path to the state file (default: btpipe_state.json)")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Delete without prompting")

	return cmd
}
