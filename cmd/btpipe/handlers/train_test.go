package handlers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/dataset"
	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/pipeline"
	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/platform/bedrock"
)

type fakeStorage struct{ created []string }

func (f *fakeStorage) BucketExists(context.Context, string) (bool, error) { return false, nil }
func (f *fakeStorage) CreateBucket(_ context.Context, name string) error {
	f.created = append(f.created, name)
	return nil
}
func (f *fakeStorage) EnableVersioning(context.Context, string) error { return nil }
func (f *fakeStorage) PutObject(_ context.Context, bucket, key string, _ []byte) (string, error) {
	return fmt.Sprintf("s3://%s/%s", bucket, key), nil
}

type fakeGrants struct{ created []string }

func (f *fakeGrants) RoleExists(_ context.Context, name string) (bool, string, error) {
	for _, n := range f.created {
		if n == name {
			return true, "arn:aws:iam::123456789012:role/" + name, nil
		}
	}
	return false, "", nil
}
func (f *fakeGrants) CreateTrainingRole(_ context.Context, name, _ string) (string, error) {
	f.created = append(f.created, name)
	return "arn:aws:iam::123456789012:role/" + name, nil
}

type fakeJobs struct {
	status   bedrock.JobStatus
	modelARN string
	failure  string
	created  int
}

func (f *fakeJobs) CreateCustomizationJob(_ context.Context, spec bedrock.JobSpec) (string, error) {
	f.created++
	return "arn:aws:bedrock:us-east-1:123456789012:model-customization-job/" + spec.JobName, nil
}
func (f *fakeJobs) GetCustomizationJob(_ context.Context, jobARN string) (*bedrock.JobSnapshot, error) {
	return &bedrock.JobSnapshot{
		JobARN:         jobARN,
		Status:         f.status,
		OutputModelARN: f.modelARN,
		FailureMessage: f.failure,
	}, nil
}

func sampleTickets(n int) []dataset.Ticket {
	tickets := make([]dataset.Ticket, 0, n)
	for i := 0; i < n; i++ {
		tickets = append(tickets, dataset.Ticket{
			Title:       fmt.Sprintf("Ticket %d", i),
			Description: "Something broke.",
			Category:    "Technical Bug",
			Severity:    "High",
			Resolution:  "Fixed it.",
		})
	}
	return tickets
}

func stubTrainFactories(t *testing.T, jobs *fakeJobs) (*fakeStorage, *fakeGrants, string) {
	t.Helper()
	saveAndRestoreFactories(t)
	t.Setenv("BTPIPE_GRANT_SETTLE", "0s")
	t.Setenv("BTPIPE_RETRY_INITIAL_DELAY", "1ms")

	storage := &fakeStorage{}
	grants := &fakeGrants{}
	newStorageClient = func(context.Context, string) (pipeline.StorageProvider, error) { return storage, nil }
	newGrantClient = func(context.Context) (pipeline.GrantProvider, error) { return grants, nil }
	newJobClient = func(context.Context, string) (pipeline.JobProvider, error) { return jobs, nil }
	readTickets = func(string) ([]dataset.Ticket, error) { return sampleTickets(20), nil }

	statePath := filepath.Join(t.TempDir(), "state.json")
	return storage, grants, statePath
}

func TestTrain_CompletesAndRecordsModel(t *testing.T) {
	jobs := &fakeJobs{status: bedrock.JobStatusCompleted, modelARN: "model-xyz"}
	storage, grants, statePath := stubTrainFactories(t, jobs)

	err := Train(context.Background(), TrainOptions{StatePath: statePath})
	require.NoError(t, err)

	assert.Len(t, storage.created, 1)
	assert.Len(t, grants.created, 1)
	assert.Equal(t, 1, jobs.created)

	store, err := pipeline.LoadStore(statePath, "us-east-1")
	require.NoError(t, err)
	modelARN, ok := store.Get(pipeline.ResourceModelARN)
	require.True(t, ok)
	assert.Equal(t, "model-xyz", modelARN)
}

func TestTrain_SecondRunReusesResources(t *testing.T) {
	jobs := &fakeJobs{status: bedrock.JobStatusCompleted, modelARN: "model-xyz"}
	storage, grants, statePath := stubTrainFactories(t, jobs)

	require.NoError(t, Train(context.Background(), TrainOptions{StatePath: statePath, AssumeYes: true}))
	require.NoError(t, Train(context.Background(), TrainOptions{StatePath: statePath, AssumeYes: true}))

	assert.Len(t, storage.created, 1, "bucket reused on resume")
	assert.Len(t, grants.created, 1, "role reused on resume")
	assert.Equal(t, 1, jobs.created, "job re-attached, not resubmitted")
}

func TestTrain_FailedJobIsAnError(t *testing.T) {
	jobs := &fakeJobs{status: bedrock.JobStatusFailed, failure: "bad hyperparameters"}
	_, _, statePath := stubTrainFactories(t, jobs)

	err := Train(context.Background(), TrainOptions{StatePath: statePath})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad hyperparameters")
}

func TestTrain_AbortedResumeStopsBeforeProvisioning(t *testing.T) {
	jobs := &fakeJobs{status: bedrock.JobStatusCompleted}
	storage, _, statePath := stubTrainFactories(t, jobs)

	store, err := pipeline.LoadStore(statePath, "us-east-1")
	require.NoError(t, err)
	require.NoError(t, store.Record(pipeline.ResourceBucket, "leftover-bucket"))

	confirmResume = func(string) (bool, error) { return false, nil }

	err = Train(context.Background(), TrainOptions{StatePath: statePath})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "aborted")
	assert.Empty(t, storage.created)
}

func TestTrain_UnreadableCSVFailsBeforeProvisioning(t *testing.T) {
	jobs := &fakeJobs{status: bedrock.JobStatusCompleted}
	storage, _, statePath := stubTrainFactories(t, jobs)

	readTickets = func(string) ([]dataset.Ticket, error) {
		return nil, errors.New("no such file")
	}

	err := Train(context.Background(), TrainOptions{StatePath: statePath, DataPath: "missing.csv"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.csv")
	assert.Empty(t, storage.created, "nothing provisioned when the input is unreadable")
}

func TestTrain_TooFewTicketsFailsBeforeProvisioning(t *testing.T) {
	jobs := &fakeJobs{status: bedrock.JobStatusCompleted}
	storage, _, statePath := stubTrainFactories(t, jobs)

	readTickets = func(string) ([]dataset.Ticket, error) { return sampleTickets(2), nil }

	err := Train(context.Background(), TrainOptions{StatePath: statePath})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "preparing dataset")
	assert.Empty(t, storage.created)
}

func TestReportOutcome_Interrupted(t *testing.T) {
	err := reportOutcome(&pipeline.Outcome{Kind: pipeline.OutcomeInterrupted}, "state.json")
	assert.NoError(t, err, "a local interruption is not a failure")
}

func TestReportOutcome_Stopped(t *testing.T) {
	err := reportOutcome(&pipeline.Outcome{Kind: pipeline.OutcomeStopped, Diagnostic: "stopped by operator"}, "state.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stopped by operator")
}
