package bedrock

// JobStatus is the pipeline's view of a model-customization job status.
type JobStatus string

const (
	// JobStatusSubmitted means the job was accepted but has not started yet.
	JobStatusSubmitted JobStatus = "Submitted"
	// JobStatusInProgress means training is running.
	JobStatusInProgress JobStatus = "InProgress"
	// JobStatusCompleted means training finished and produced a model.
	JobStatusCompleted JobStatus = "Completed"
	// JobStatusFailed means the provider reported a training failure.
	JobStatusFailed JobStatus = "Failed"
	// JobStatusStopped means the job was halted externally.
	JobStatusStopped JobStatus = "Stopped"
)

// Terminal reports whether no further transition can occur from s.
func (s JobStatus) Terminal() bool {
	switch s {
	case JobStatusCompleted, JobStatusFailed, JobStatusStopped:
		return true
	}
	return false
}

// TrainingMetrics carries the loss figures the provider exposes while a job runs.
type TrainingMetrics struct {
	TrainingLoss   *float64
	ValidationLoss *float64
}

// JobSnapshot is a point-in-time observation of a customization job.
type JobSnapshot struct {
	JobARN         string
	Status         JobStatus
	Metrics        *TrainingMetrics
	FailureMessage string
	OutputModelARN string
}

// JobSpec is the submission payload for a customization job.
type JobSpec struct {
	JobName           string
	CustomModelName   string
	RoleARN           string
	BaseModelID       string
	TrainingDataURI   string
	ValidationDataURI string
	OutputDataURI     string
	Hyperparameters   map[string]string
}

// DeploymentStatus is the pipeline's view of a custom-model deployment status.
type DeploymentStatus string

const (
	DeploymentStatusCreating DeploymentStatus = "Creating"
	DeploymentStatusActive   DeploymentStatus = "Active"
	DeploymentStatusFailed   DeploymentStatus = "Failed"
)

// DeploymentSnapshot is a point-in-time observation of a deployment.
type DeploymentSnapshot struct {
	DeploymentARN  string
	Name           string
	ModelARN       string
	Status         DeploymentStatus
	FailureMessage string
}
