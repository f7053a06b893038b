package pipeline

import (
	"fmt"
	"time"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/platform/bedrock"
)

// SubmitJob submits the model-customization job. When the state file already
// holds a job handle the recorded job is reused instead, so an interrupted
// run re-attaches rather than training twice.
//
// Submission requires a recorded role ARN and recorded dataset URIs; if
// either is missing the provider is never contacted.
func SubmitJob(ctx *Context) (string, error) {
	if arn, ok := ctx.State.Get(ResourceJobARN); ok {
		ctx.Observer.Event(Event{
			Type:      EventResourceReused,
			Resource:  "job",
			Message:   arn,
			Timestamp: time.Now().UTC(),
		})
		return arn, nil
	}

	roleARN, ok := ctx.State.Get(ResourceRoleARN)
	if !ok {
		return "", &SubmissionError{Reason: "no role ARN recorded, provisioning has not completed"}
	}
	trainingURI, ok := ctx.State.Get(ResourceTrainingURI)
	if !ok {
		return "", &SubmissionError{Reason: "no training data URI recorded, upload has not completed"}
	}
	validationURI, _ := ctx.State.Get(ResourceValidationURI)
	bucketName, ok := ctx.State.Get(ResourceBucket)
	if !ok {
		return "", &SubmissionError{Reason: "no bucket recorded, provisioning has not completed"}
	}

	jobName := newJobName(ctx.Config.ModelPrefix)
	spec := bedrock.JobSpec{
		JobName:           jobName,
		CustomModelName:   newModelName(ctx.Config.ModelPrefix),
		RoleARN:           roleARN,
		BaseModelID:       ctx.Config.BaseModelID,
		TrainingDataURI:   trainingURI,
		ValidationDataURI: validationURI,
		OutputDataURI:     fmt.Sprintf("s3://%s/output/", bucketName),
		Hyperparameters:   ctx.Config.Hyperparameters.AsMap(),
	}

	jobARN, err := ctx.Jobs.CreateCustomizationJob(ctx, spec)
	if err != nil {
		return "", &SubmissionError{Reason: "provider rejected the job", Err: err}
	}

	// Record the handle before anything else can fail; a crash from here on
	// resumes by re-attaching to this job.
	if err := ctx.State.Record(ResourceJobName, jobName); err != nil {
		return "", &SubmissionError{Reason: "recording job name", Err: err}
	}
	if err := ctx.State.Record(ResourceJobARN, jobARN); err != nil {
		return "", &SubmissionError{Reason: "recording job ARN", Err: err}
	}
	if err := ctx.State.Record(ResourceBaseModel, ctx.Config.BaseModelID); err != nil {
		return "", &SubmissionError{Reason: "recording base model", Err: err}
	}

	ctx.Observer.Event(Event{
		Type:      EventJobSubmitted,
		Resource:  "job",
		Message:   jobARN,
		Timestamp: time.Now().UTC(),
	})
	return jobARN, nil
}
