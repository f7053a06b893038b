// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing and flag binding. Command execution is delegated to handler
// functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the btpipe CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "btpipe",
		Short: "Fine-tune Amazon Nova on support-ticket data",
	}

	cmd.AddCommand(Generate())
	cmd.AddCommand(Train())
	cmd.AddCommand(Status())
	cmd.AddCommand(Models())
	cmd.AddCommand(Test())
	cmd.AddCommand(Cleanup())
	cmd.AddCommand(Version())

	return cmd
}
