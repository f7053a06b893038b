package handlers

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/modeltest"
	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/pipeline"
	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/platform/bedrock"
)

type fakeDeployments struct {
	listed  []bedrock.DeploymentSnapshot
	deleted []string
}

func (f *fakeDeployments) CreateDeployment(_ context.Context, name, _ string) (string, error) {
	return "arn:deployment/" + name, nil
}

func (f *fakeDeployments) GetDeployment(_ context.Context, identifier string) (*bedrock.DeploymentSnapshot, error) {
	return &bedrock.DeploymentSnapshot{DeploymentARN: identifier, Status: bedrock.DeploymentStatusActive}, nil
}

func (f *fakeDeployments) ListDeployments(context.Context) ([]bedrock.DeploymentSnapshot, error) {
	return f.listed, nil
}

func (f *fakeDeployments) DeleteDeployment(_ context.Context, identifier string) error {
	f.deleted = append(f.deleted, identifier)
	return nil
}

type fakeRuntime struct {
	reply string
	calls int
}

func (f *fakeRuntime) Invoke(context.Context, string, string) (*bedrock.InvokeResult, error) {
	f.calls++
	return &bedrock.InvokeResult{Text: f.reply, StopReason: "end_turn"}, nil
}

func stubTestFactories(t *testing.T) (*fakeDeployments, *fakeRuntime) {
	t.Helper()
	saveAndRestoreFactories(t)

	deployments := &fakeDeployments{}
	runtime := &fakeRuntime{reply: "Category: Technical Bug, Severity: High"}
	newDeploymentClient = func(context.Context, string) (modeltest.DeploymentManager, error) {
		return deployments, nil
	}
	newRuntimeClient = func(context.Context, string) (modeltest.Invoker, error) {
		return runtime, nil
	}
	provisionDeployment = func(
		_ context.Context,
		_ modeltest.DeploymentManager,
		rt modeltest.Invoker,
		modelARN string,
		_ modeltest.ProvisionOptions,
	) (modeltest.InvokableModelHandle, string, error) {
		return modeltest.DeploymentHandle(rt, "arn:deployment/for-"+modelARN), "arn:deployment/for-" + modelARN, nil
	}
	newSuite = func(handle modeltest.InvokableModelHandle) *modeltest.Suite {
		s := modeltest.NewSuite(handle, func(string, ...interface{}) {})
		s.Pause = func(context.Context, time.Duration) error { return nil }
		return s
	}
	nowFunc = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }

	return deployments, runtime
}

func TestTestModel_RunsSuiteAgainstExistingDeployment(t *testing.T) {
	_, runtime := stubTestFactories(t)

	var reportedResults []modeltest.Result
	writeReport = func(_, _ string, results []modeltest.Result, _ time.Time) (string, error) {
		reportedResults = results
		return "report.json", nil
	}

	err := TestModel(context.Background(), TestOptions{
		DeploymentARN: "arn:deployment/existing",
		StatePath:     filepath.Join(t.TempDir(), "state.json"),
	})
	require.NoError(t, err)

	assert.Equal(t, len(modeltest.DefaultSuite()), runtime.calls)
	assert.Len(t, reportedResults, len(modeltest.DefaultSuite()))
}

func TestTestModel_UsesRecordedModelARN(t *testing.T) {
	stubTestFactories(t)

	statePath := filepath.Join(t.TempDir(), "state.json")
	store, err := pipeline.LoadStore(statePath, "us-west-2")
	require.NoError(t, err)
	require.NoError(t, store.Record(pipeline.ResourceModelARN, "arn:model/custom"))

	var reportedModel string
	writeReport = func(_, model string, _ []modeltest.Result, _ time.Time) (string, error) {
		reportedModel = model
		return "report.json", nil
	}

	err = TestModel(context.Background(), TestOptions{StatePath: statePath})
	require.NoError(t, err)

	assert.Equal(t, "arn:deployment/for-arn:model/custom", reportedModel,
		"recorded model resolved through a provisioned deployment")
}

func TestTestModel_NoModelAnywhere(t *testing.T) {
	stubTestFactories(t)

	err := TestModel(context.Background(), TestOptions{
		StatePath: filepath.Join(t.TempDir(), "state.json"),
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "btpipe train")
}

func TestTestModel_DeleteDeployment(t *testing.T) {
	deployments, runtime := stubTestFactories(t)

	err := TestModel(context.Background(), TestOptions{
		DeleteDeployment: "arn:deployment/old",
		StatePath:        filepath.Join(t.TempDir(), "state.json"),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"arn:deployment/old"}, deployments.deleted)
	assert.Zero(t, runtime.calls, "no suite run for a management operation")
}

func TestTestModel_DirectModelInvocation(t *testing.T) {
	_, runtime := stubTestFactories(t)

	var reportedModel string
	writeReport = func(_, model string, _ []modeltest.Result, _ time.Time) (string, error) {
		reportedModel = model
		return "report.json", nil
	}

	err := TestModel(context.Background(), TestOptions{
		ModelARN:  "arn:model/custom",
		Direct:    true,
		StatePath: filepath.Join(t.TempDir(), "state.json"),
	})
	require.NoError(t, err)

	assert.Equal(t, "arn:model/custom", reportedModel)
	assert.Equal(t, len(modeltest.DefaultSuite()), runtime.calls)
}
