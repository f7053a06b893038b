package pipeline

import "fmt"

// ProvisioningError means a resource lookup or creation was rejected.
// The run aborts and the state file is left as-is for resumption; the
// operator re-invokes the pipeline, which is safe under idempotent reuse.
type ProvisioningError struct {
	Resource string
	Err      error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("provisioning %s: %v", e.Resource, e.Err)
}

func (e *ProvisioningError) Unwrap() error { return e.Err }

// SubmissionError means the provider rejected the training job at creation,
// or a precondition for submission was not met locally.
type SubmissionError struct {
	Reason string
	Err    error
}

func (e *SubmissionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("job submission: %s", e.Reason)
	}
	return fmt.Sprintf("job submission: %s: %v", e.Reason, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// TransientObservationFailure means status queries kept failing while the
// job itself may well still be running. The job handle remains valid for a
// later re-attach.
type TransientObservationFailure struct {
	JobARN string
	Err    error
}

func (e *TransientObservationFailure) Error() string {
	return fmt.Sprintf("observing job %s: %v", e.JobARN, e.Err)
}

func (e *TransientObservationFailure) Unwrap() error { return e.Err }
