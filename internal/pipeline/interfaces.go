// Package pipeline drives the provisioning and job-lifecycle sequence of the
// fine-tuning workflow: idempotent creation of the training-data bucket and
// the service role, dataset upload, job submission, and polling-based
// completion detection. State is persisted after every successful step so an
// interrupted run resumes from where it left off.
package pipeline

import (
	"context"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/platform/bedrock"
)

// StorageProvider manages the training-data bucket.
// Implemented by *s3.Client.
type StorageProvider interface {
	// BucketExists probes whether the bucket exists and is accessible.
	BucketExists(ctx context.Context, bucketName string) (bool, error)

	// CreateBucket creates the bucket in the target region.
	CreateBucket(ctx context.Context, bucketName string) error

	// EnableVersioning turns on object versioning for the bucket.
	EnableVersioning(ctx context.Context, bucketName string) error

	// PutObject uploads data and returns the object's s3:// URI.
	PutObject(ctx context.Context, bucketName, key string, data []byte) (string, error)
}

// GrantProvider manages the role the training service assumes.
// Implemented by *iam.Client.
type GrantProvider interface {
	// RoleExists probes the role and returns its ARN when present.
	RoleExists(ctx context.Context, roleName string) (bool, string, error)

	// CreateTrainingRole creates the role with a trust statement for the
	// training service and access scoped to bucketName. Returns the role ARN.
	CreateTrainingRole(ctx context.Context, roleName, bucketName string) (string, error)
}

// JobProvider manages the model-customization job.
// Implemented by *bedrock.Client.
type JobProvider interface {
	// CreateCustomizationJob submits the job and returns its ARN.
	CreateCustomizationJob(ctx context.Context, spec bedrock.JobSpec) (string, error)

	// GetCustomizationJob observes the job's current status.
	GetCustomizationJob(ctx context.Context, jobARN string) (*bedrock.JobSnapshot, error)
}

// Phase is one step of the pipeline.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Run executes the phase.
	Run(ctx *Context) error
}
