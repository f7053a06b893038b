package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/config"
	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/modeltest"
	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/pipeline"
	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/platform/bedrock"
)

// TestOptions carries the test command's flags.
type TestOptions struct {
	ModelARN         string
	DeploymentARN    string
	Direct           bool
	ListDeployments  bool
	DeleteDeployment string
	StatePath        string
}

// Factory function variables for test - can be replaced in tests.
var (
	// newDeploymentClient creates the deployment-managing control-plane client.
	newDeploymentClient = func(ctx context.Context, region string) (modeltest.DeploymentManager, error) {
		return bedrock.NewClient(ctx, region)
	}

	// newRuntimeClient creates the invoking runtime client.
	newRuntimeClient = func(ctx context.Context, region string) (modeltest.Invoker, error) {
		return bedrock.NewRuntimeClient(ctx, region)
	}

	// provisionDeployment creates a deployment and waits for it to be active.
	provisionDeployment = modeltest.ProvisionDeployment

	// writeReport persists the suite results.
	writeReport = modeltest.WriteReport

	// newSuite builds the suite runner.
	newSuite = func(handle modeltest.InvokableModelHandle) *modeltest.Suite {
		return modeltest.NewSuite(handle, log.Printf)
	}
)

// TestModel runs the classification suite against a fine-tuned model, or
// performs the requested deployment management operation.
func TestModel(ctx context.Context, opts TestOptions) error {
	region, recordedModel := testDefaults(opts.StatePath)

	deployments, err := newDeploymentClient(ctx, region)
	if err != nil {
		return fmt.Errorf("initializing control-plane client: %w", err)
	}

	if opts.ListDeployments {
		return listDeployments(ctx, deployments)
	}
	if opts.DeleteDeployment != "" {
		if err := deployments.DeleteDeployment(ctx, opts.DeleteDeployment); err != nil {
			return fmt.Errorf("deleting deployment: %w", err)
		}
		log.Printf("Deployment deleted. Unused deployments incur no charges.")
		return nil
	}

	runtime, err := newRuntimeClient(ctx, region)
	if err != nil {
		return fmt.Errorf("initializing runtime client: %w", err)
	}

	handle, err := obtainHandle(ctx, deployments, runtime, opts, recordedModel)
	if err != nil {
		return err
	}

	suite := newSuite(handle)
	results := suite.Run(ctx, modeltest.DefaultSuite())

	summary := modeltest.Summarize(results)
	log.Printf("Tests: %d total, %d successful, %d failed",
		summary.Total, summary.Successful, summary.Failed)
	if summary.Successful > 0 {
		log.Printf("Category match rate: %d/%d (%.1f%%)",
			summary.CategoryMatches, summary.Successful, summary.CategoryRate())
		log.Printf("Severity match rate: %d/%d (%.1f%%)",
			summary.SeverityMatches, summary.Successful, summary.SeverityRate())
	}

	path, err := writeReport(".", handle.Identifier(), results, nowFunc())
	if err != nil {
		return err
	}
	log.Printf("Results written to %s", path)
	return nil
}

// obtainHandle resolves the flags into an invokable model: an existing
// deployment, a direct model ARN, or a deployment provisioned on the spot.
func obtainHandle(
	ctx context.Context,
	deployments modeltest.DeploymentManager,
	runtime modeltest.Invoker,
	opts TestOptions,
	recordedModel string,
) (modeltest.InvokableModelHandle, error) {
	if opts.DeploymentARN != "" {
		return modeltest.DeploymentHandle(runtime, opts.DeploymentARN), nil
	}

	modelARN := opts.ModelARN
	if modelARN == "" {
		modelARN = recordedModel
	}
	if modelARN == "" {
		return nil, fmt.Errorf("no model to test: pass --model-arn or --deployment-arn, or run 'btpipe train' first")
	}

	if opts.Direct {
		return modeltest.DirectHandle(runtime, modelARN), nil
	}

	log.Printf("Creating deployment for %s (may take a few minutes)", modelARN)
	handle, deploymentARN, err := provisionDeployment(ctx, deployments, runtime, modelARN, modeltest.ProvisionOptions{})
	if err != nil {
		return nil, err
	}
	log.Printf("Deployment active: %s", deploymentARN)
	log.Printf("Delete it when done: btpipe test --delete-deployment %s", deploymentARN)
	return handle, nil
}

func listDeployments(ctx context.Context, deployments modeltest.DeploymentManager) error {
	all, err := deployments.ListDeployments(ctx)
	if err != nil {
		return fmt.Errorf("listing deployments: %w", err)
	}
	if len(all) == 0 {
		log.Printf("No deployments found.")
		return nil
	}
	for _, d := range all {
		log.Printf("%s", d.DeploymentARN)
		log.Printf("  name:   %s", d.Name)
		log.Printf("  status: %s", d.Status)
		log.Printf("  model:  %s", d.ModelARN)
	}
	return nil
}

// testDefaults pulls the region and recorded model ARN from the state file
// when one exists.
func testDefaults(statePath string) (region, modelARN string) {
	if statePath == "" {
		statePath = pipeline.DefaultStateFile
	}
	region = config.Default().Region

	if !stateFileExists(statePath) {
		return region, ""
	}
	store, err := loadStore(statePath, region)
	if err != nil {
		log.Printf("Warning: ignoring unreadable state file %s: %v", statePath, err)
		return region, ""
	}
	if r := store.Region(); r != "" {
		region = r
	}
	modelARN, _ = store.Get(pipeline.ResourceModelARN)
	return region, modelARN
}
