// Package modeltest exercises a fine-tuned model with a fixed suite of
// support tickets and reports how often the reply names the expected
// category and severity.
package modeltest

import (
	"context"
	"fmt"
	"time"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/platform/bedrock"
)

// Invoker sends a prompt to a model or deployment.
// Implemented by *bedrock.RuntimeClient.
type Invoker interface {
	Invoke(ctx context.Context, modelID, prompt string) (*bedrock.InvokeResult, error)
}

// DeploymentManager manages custom-model deployments.
// Implemented by *bedrock.Client.
type DeploymentManager interface {
	CreateDeployment(ctx context.Context, name, modelARN string) (string, error)
	GetDeployment(ctx context.Context, identifier string) (*bedrock.DeploymentSnapshot, error)
	ListDeployments(ctx context.Context) ([]bedrock.DeploymentSnapshot, error)
	DeleteDeployment(ctx context.Context, identifier string) error
}

// InvokableModelHandle is anything the suite can send prompts to. The three
// ways of obtaining one (a model ARN invoked directly, a freshly provisioned
// deployment, an existing deployment ARN) differ only in construction.
type InvokableModelHandle interface {
	// Identifier returns the ARN prompts are sent to.
	Identifier() string

	// Invoke sends one user prompt and returns the reply.
	Invoke(ctx context.Context, prompt string) (*bedrock.InvokeResult, error)
}

type handle struct {
	runtime    Invoker
	identifier string
}

func (h *handle) Identifier() string { return h.identifier }

func (h *handle) Invoke(ctx context.Context, prompt string) (*bedrock.InvokeResult, error) {
	return h.runtime.Invoke(ctx, h.identifier, prompt)
}

// DirectHandle invokes a model ARN without any deployment.
func DirectHandle(runtime Invoker, modelARN string) InvokableModelHandle {
	return &handle{runtime: runtime, identifier: modelARN}
}

// DeploymentHandle attaches to an existing deployment ARN.
func DeploymentHandle(runtime Invoker, deploymentARN string) InvokableModelHandle {
	return &handle{runtime: runtime, identifier: deploymentARN}
}

// SleepFunc is a cancellable wait between deployment status reads.
type SleepFunc func(ctx context.Context, d time.Duration) error

// ProvisionOptions controls the deployment readiness wait.
type ProvisionOptions struct {
	// Wait is the total budget for the deployment to become active.
	Wait time.Duration
	// Poll is the delay between status reads.
	Poll time.Duration
	// Sleep overrides the wait implementation. Nil means real sleeping.
	Sleep SleepFunc
	// Now overrides the clock. Nil means time.Now.
	Now func() time.Time
}

// maxConsecutiveQueryErrors tolerates the window after creation in which a
// deployment exists but is not queryable yet.
const maxConsecutiveQueryErrors = 6

// ProvisionDeployment creates a deployment for modelARN, waits for it to
// become active, and returns a handle bound to it. The deployment outlives
// the handle; it is released with DeploymentManager.DeleteDeployment.
func ProvisionDeployment(
	ctx context.Context,
	deployments DeploymentManager,
	runtime Invoker,
	modelARN string,
	opts ProvisionOptions,
) (InvokableModelHandle, string, error) {
	if opts.Wait == 0 {
		opts.Wait = 10 * time.Minute
	}
	if opts.Poll == 0 {
		opts.Poll = 10 * time.Second
	}
	if opts.Sleep == nil {
		opts.Sleep = func(ctx context.Context, d time.Duration) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d):
				return nil
			}
		}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	name := fmt.Sprintf("support-deployment-%d", opts.Now().Unix())
	deploymentARN, err := deployments.CreateDeployment(ctx, name, modelARN)
	if err != nil {
		return nil, "", fmt.Errorf("creating deployment: %w", err)
	}

	if err := waitForActive(ctx, deployments, deploymentARN, opts); err != nil {
		return nil, deploymentARN, err
	}

	return DeploymentHandle(runtime, deploymentARN), deploymentARN, nil
}

func waitForActive(ctx context.Context, deployments DeploymentManager, deploymentARN string, opts ProvisionOptions) error {
	deadline := opts.Now().Add(opts.Wait)
	consecutiveErrors := 0

	for opts.Now().Before(deadline) {
		snapshot, err := deployments.GetDeployment(ctx, deploymentARN)
		if err != nil {
			consecutiveErrors++
			if consecutiveErrors > maxConsecutiveQueryErrors {
				return fmt.Errorf("deployment %s not queryable: %w", deploymentARN, err)
			}
		} else {
			consecutiveErrors = 0
			switch snapshot.Status {
			case bedrock.DeploymentStatusActive:
				return nil
			case bedrock.DeploymentStatusFailed:
				return fmt.Errorf("deployment %s failed: %s", deploymentARN, snapshot.FailureMessage)
			}
		}

		if err := opts.Sleep(ctx, opts.Poll); err != nil {
			return fmt.Errorf("waiting for deployment: %w", err)
		}
	}

	return fmt.Errorf("deployment %s not active after %s", deploymentARN, opts.Wait)
}
