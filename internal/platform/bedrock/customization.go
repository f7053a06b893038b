package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrock/types"
)

// CreateCustomizationJob submits a fine-tuning job and returns its ARN.
func (c *Client) CreateCustomizationJob(ctx context.Context, spec JobSpec) (string, error) {
	out, err := c.bedrock.CreateModelCustomizationJob(ctx, &bedrock.CreateModelCustomizationJobInput{
		JobName:             aws.String(spec.JobName),
		CustomModelName:     aws.String(spec.CustomModelName),
		RoleArn:             aws.String(spec.RoleARN),
		BaseModelIdentifier: aws.String(spec.BaseModelID),
		CustomizationType:   types.CustomizationTypeFineTuning,
		HyperParameters:     spec.Hyperparameters,
		TrainingDataConfig: &types.TrainingDataConfig{
			S3Uri: aws.String(spec.TrainingDataURI),
		},
		ValidationDataConfig: &types.ValidationDataConfig{
			Validators: []types.Validator{
				{S3Uri: aws.String(spec.ValidationDataURI)},
			},
		},
		OutputDataConfig: &types.OutputDataConfig{
			S3Uri: aws.String(spec.OutputDataURI),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to create customization job %s: %w", spec.JobName, err)
	}
	return aws.ToString(out.JobArn), nil
}

// GetCustomizationJob reads the current state of a customization job.
func (c *Client) GetCustomizationJob(ctx context.Context, jobARN string) (*JobSnapshot, error) {
	out, err := c.bedrock.GetModelCustomizationJob(ctx, &bedrock.GetModelCustomizationJobInput{
		JobIdentifier: aws.String(jobARN),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read customization job %s: %w", jobARN, err)
	}

	snap := &JobSnapshot{
		JobARN:         aws.ToString(out.JobArn),
		Status:         mapJobStatus(out.Status),
		FailureMessage: aws.ToString(out.FailureMessage),
		OutputModelARN: aws.ToString(out.OutputModelArn),
	}

	if out.TrainingMetrics != nil || len(out.ValidationMetrics) > 0 {
		metrics := &TrainingMetrics{}
		if out.TrainingMetrics != nil && out.TrainingMetrics.TrainingLoss != nil {
			loss := float64(*out.TrainingMetrics.TrainingLoss)
			metrics.TrainingLoss = &loss
		}
		if len(out.ValidationMetrics) > 0 && out.ValidationMetrics[0].ValidationLoss != nil {
			loss := float64(*out.ValidationMetrics[0].ValidationLoss)
			metrics.ValidationLoss = &loss
		}
		snap.Metrics = metrics
	}

	return snap, nil
}

// mapJobStatus translates the provider status enum into the pipeline's.
// Statuses we do not recognize are reported as accepted-but-not-started, so
// the polling loop keeps watching rather than giving up.
func mapJobStatus(status types.ModelCustomizationJobStatus) JobStatus {
	switch status {
	case types.ModelCustomizationJobStatusInProgress, types.ModelCustomizationJobStatusStopping:
		return JobStatusInProgress
	case types.ModelCustomizationJobStatusCompleted:
		return JobStatusCompleted
	case types.ModelCustomizationJobStatusFailed:
		return JobStatusFailed
	case types.ModelCustomizationJobStatusStopped:
		return JobStatusStopped
	default:
		return JobStatusSubmitted
	}
}
