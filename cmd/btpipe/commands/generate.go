package commands

import (
	"github.com/spf13/cobra"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/cmd/btpipe/handlers"
)

// Generate returns the command for producing the synthetic ticket dataset.
//
// Optional flags:
//
//	--records, -n: Number of tickets to generate (default: 100000)
//	--output, -o:  Output CSV path (default: support_tickets_training_data.csv)
//	--seed:        Random seed (default: 42)
func Generate() *cobra.Command {
	var (
		records int
		output  string
		seed    int64
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic support-ticket dataset",
		Long: `Generate a CSV of synthetic resolved support tickets.

The dataset covers seven ticket categories with realistic severity and
timing distributions and is the input of 'btpipe train'.

Examples:
  # Generate the default 100k tickets
  btpipe generate

  # Generate a small dataset for a smoke-test run
  btpipe generate -n 500 -o smoke_tickets.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Generate(handlers.GenerateOptions{
				Records: records,
				Output:  output,
				Seed:    seed,
			})
		},
	}

	cmd.Flags().IntVarP(&records, "records", "n", 100000, "Number of tickets to generate")
	cmd.Flags().StringVarP(&output, "output", "o", "support_tickets_training_data.csv", "Output CSV path")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")

	return cmd
}
