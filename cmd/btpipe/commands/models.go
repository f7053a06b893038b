package commands

import (
	"github.com/spf13/cobra"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/cmd/btpipe/handlers"
)

// Models returns the command listing fine-tunable foundation models.
func Models() *cobra.Command {
	var region string

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List foundation models that support fine-tuning",
		Long: `List every foundation model offered for fine-tuning in a region and
highlight the Nova model the pipeline uses as its default base.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ListModels(cmd.Context(), region)
		},
	}

	cmd.Flags().StringVar(&region, "region", "us-east-1", "AWS region to query")

	return cmd
}
