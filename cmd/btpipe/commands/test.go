package commands

import (
	"github.com/spf13/cobra"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/cmd/btpipe/handlers"
)

// Test returns the command for exercising a fine-tuned model.
//
// The model to invoke is obtained one of three ways: directly by model ARN,
// through a freshly created custom-model deployment, or by attaching to an
// existing deployment ARN. With no flags the model ARN recorded by
// 'btpipe train' is used.
func Test() *cobra.Command {
	var opts handlers.TestOptions

	cmd := &cobra.Command{
		Use:   "test",
		Short: "Run the classification test suite against a fine-tuned model",
		Long: `Send a fixed suite of support tickets to the model and report how often
the reply names the expected category and severity. Results are written to
a timestamped JSON file.

Examples:
  # Test the model recorded in the state file (creates a deployment)
  btpipe test

  # Test via a deployment that already exists
  btpipe test --deployment-arn arn:aws:bedrock:...:custom-model-deployment/abc

  # Invoke a model ARN directly, without any deployment
  btpipe test --model-arn arn:aws:bedrock:...:custom-model/xyz --direct

  # Manage deployments
  btpipe test --list-deployments
  btpipe test --delete-deployment arn:aws:bedrock:...:custom-model-deployment/abc`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.TestModel(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.ModelARN, "model-arn", "", "Custom model ARN (default: model recorded in the state file)")
	cmd.Flags().StringVar(&opts.DeploymentARN, "deployment-arn", "", "Existing deployment ARN to attach to")
	cmd.Flags().BoolVar(&opts.Direct, "direct", false, "Invoke the model ARN directly instead of creating a deployment")
	cmd.Flags().BoolVar(&opts.ListDeployments, "list-deployments", false, "List custom model deployments and exit")
	cmd.Flags().StringVar(&opts.DeleteDeployment, "delete-deployment", "", "Delete the given deployment and exit")
	cmd.Flags().StringVar(&opts.StatePath, "state", "", "Path to the state file (default: btpipe_state.json)")

	return cmd
}
