package pipeline

import (
	"fmt"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/dataset"
)

// Object keys the prepared dataset is uploaded under.
const (
	trainingObjectKey   = "training/train.jsonl"
	validationObjectKey = "validation/validation.jsonl"
)

// StoragePhase ensures the training-data bucket exists.
type StoragePhase struct{}

func (StoragePhase) Name() string { return "storage" }

func (StoragePhase) Run(ctx *Context) error {
	_, err := EnsureStorageLocation(ctx)
	return err
}

// AccessPhase ensures the service role exists and is ready to be assumed.
type AccessPhase struct{}

func (AccessPhase) Name() string { return "access" }

func (AccessPhase) Run(ctx *Context) error {
	bucketName, ok := ctx.State.Get(ResourceBucket)
	if !ok {
		return &ProvisioningError{
			Resource: "role",
			Err:      fmt.Errorf("no bucket recorded, storage phase has not run"),
		}
	}
	_, err := EnsureAccessGrant(ctx, bucketName)
	return err
}

// UploadPhase encodes the prepared dataset to JSONL, validates it, and
// uploads both splits to the bucket. Recorded URIs are reused so a resume
// never re-uploads.
type UploadPhase struct{}

func (UploadPhase) Name() string { return "upload" }

func (UploadPhase) Run(ctx *Context) error {
	if _, ok := ctx.State.Get(ResourceTrainingURI); ok {
		ctx.Observer.Printf("dataset already uploaded, reusing recorded URIs")
		return nil
	}

	if ctx.Dataset == nil {
		return fmt.Errorf("no prepared dataset on the pipeline context")
	}
	bucketName, ok := ctx.State.Get(ResourceBucket)
	if !ok {
		return fmt.Errorf("no bucket recorded, storage phase has not run")
	}

	trainingURI, err := uploadSplit(ctx, bucketName, trainingObjectKey, ctx.Dataset.Training)
	if err != nil {
		return fmt.Errorf("training data: %w", err)
	}
	if err := ctx.State.Record(ResourceTrainingURI, trainingURI); err != nil {
		return err
	}

	validationURI, err := uploadSplit(ctx, bucketName, validationObjectKey, ctx.Dataset.Validation)
	if err != nil {
		return fmt.Errorf("validation data: %w", err)
	}
	return ctx.State.Record(ResourceValidationURI, validationURI)
}

func uploadSplit(ctx *Context, bucketName, key string, records []dataset.Record) (string, error) {
	data, err := dataset.EncodeJSONL(records)
	if err != nil {
		return "", err
	}
	if err := dataset.ValidateJSONL(data); err != nil {
		return "", err
	}
	return ctx.Storage.PutObject(ctx, bucketName, key, data)
}

// SubmitPhase submits the customization job, or re-attaches to a recorded one.
type SubmitPhase struct{}

func (SubmitPhase) Name() string { return "submit" }

func (SubmitPhase) Run(ctx *Context) error {
	_, err := SubmitJob(ctx)
	return err
}

// WatchPhase polls the submitted job to a terminal state and stores the
// outcome on the context. A remotely failed job is a valid outcome of a
// successful watch, not a phase error.
type WatchPhase struct{}

func (WatchPhase) Name() string { return "watch" }

func (WatchPhase) Run(ctx *Context) error {
	jobARN, ok := ctx.State.Get(ResourceJobARN)
	if !ok {
		return fmt.Errorf("no job recorded, submit phase has not run")
	}

	watcher := NewWatcher(ctx.Jobs, ctx.Observer, ctx.Sleep, ctx.Timeouts.PollInterval)
	outcome, err := watcher.Watch(ctx, jobARN)
	if err != nil {
		return err
	}
	ctx.Outcome = outcome

	if outcome.Kind == OutcomeCompleted && outcome.ModelARN != "" {
		return ctx.State.Record(ResourceModelARN, outcome.ModelARN)
	}
	return nil
}

// Phases returns the full pipeline in execution order.
func Phases() []Phase {
	return []Phase{StoragePhase{}, AccessPhase{}, UploadPhase{}, SubmitPhase{}, WatchPhase{}}
}
