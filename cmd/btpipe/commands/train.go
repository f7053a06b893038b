package commands

import (
	"github.com/spf13/cobra"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/cmd/btpipe/handlers"
)

// Train returns the command for running the fine-tuning pipeline.
//
// Optional flags:
//
//	--config, -c: Path to configuration YAML file (default: btpipe.yaml if present)
//	--data, -d:   Path to the ticket CSV (default: support_tickets_training_data.csv)
//	--state:      Path to the state file (default: btpipe_state.json)
//	--yes, -y:    Reuse recorded resources without prompting
//
// AWS credentials are resolved the standard way (environment, shared
// config, instance role).
func Train() *cobra.Command {
	var (
		configPath string
		dataPath   string
		statePath  string
		assumeYes  bool
	)

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Provision resources and run the fine-tuning job",
		Long: `Run the full fine-tuning pipeline.

Provisions the training-data bucket and service role, converts the ticket
CSV to the Nova conversation format, uploads it, submits the
model-customization job, and watches it until it finishes. Progress is
recorded in the state file after every step; re-running resumes from the
recorded resources instead of creating new ones.

Interrupting the watch (Ctrl-C) does not stop the remote job. Re-run
'btpipe train' to re-attach, or 'btpipe status' for a one-shot check.

Examples:
  # Run with defaults
  btpipe train

  # Run against a specific dataset and config
  btpipe train -c prod.yaml -d tickets.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Train(cmd.Context(), handlers.TrainOptions{
				ConfigPath: configPath,
				DataPath:   dataPath,
				StatePath:  statePath,
				AssumeYes:  assumeYes,
			})
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: btpipe.yaml)")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "support_tickets_training_data.csv", "Path to the ticket CSV")
	cmd.Flags().StringVar(&statePath, "state", "", "Path to the state file (default: btpipe_state.json)")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Reuse recorded resources without prompting")

	return cmd
}
