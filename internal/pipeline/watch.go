package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/platform/bedrock"
)

// OutcomeKind classifies how a watch ended.
type OutcomeKind string

const (
	// OutcomeCompleted means training finished and produced a model.
	OutcomeCompleted OutcomeKind = "completed"
	// OutcomeFailed means the provider reported a training failure.
	OutcomeFailed OutcomeKind = "failed"
	// OutcomeStopped means the job was halted externally.
	OutcomeStopped OutcomeKind = "stopped"
	// OutcomeInterrupted means the local watch ended while the remote job
	// kept running. The job handle stays valid for a later re-attach.
	OutcomeInterrupted OutcomeKind = "interrupted"
)

// Outcome is the result of watching a job to its terminal state.
type Outcome struct {
	Kind       OutcomeKind
	Status     bedrock.JobStatus
	ModelARN   string
	Diagnostic string
}

// maxConsecutiveObservationFailures is the number of back-to-back failed
// status reads tolerated before the watch gives up.
const maxConsecutiveObservationFailures = 3

// Watcher polls a customization job until it reaches a terminal state. Once
// a job has been observed terminal its outcome is remembered, so watching
// the same handle again returns immediately without contacting the provider.
type Watcher struct {
	jobs     JobProvider
	observer Observer
	sleep    SleepFunc
	interval time.Duration

	terminal map[string]*Outcome
}

// NewWatcher creates a Watcher polling at the given interval.
func NewWatcher(jobs JobProvider, observer Observer, sleep SleepFunc, interval time.Duration) *Watcher {
	if sleep == nil {
		sleep = defaultSleep
	}
	return &Watcher{
		jobs:     jobs,
		observer: observer,
		sleep:    sleep,
		interval: interval,
		terminal: make(map[string]*Outcome),
	}
}

// Watch polls jobARN until it is terminal or the context ends. A context end
// yields an interrupted outcome, never an error: the remote job is unaffected
// by the local process going away.
func (w *Watcher) Watch(ctx context.Context, jobARN string) (*Outcome, error) {
	if outcome, ok := w.terminal[jobARN]; ok {
		return outcome, nil
	}

	consecutiveFailures := 0
	for {
		snapshot, err := w.jobs.GetCustomizationJob(ctx, jobARN)
		if err != nil {
			if ctx.Err() != nil {
				return w.interrupted(jobARN), nil
			}
			consecutiveFailures++
			if consecutiveFailures >= maxConsecutiveObservationFailures {
				return nil, &TransientObservationFailure{JobARN: jobARN, Err: err}
			}
			w.observer.Printf("status read failed (%d/%d): %v",
				consecutiveFailures, maxConsecutiveObservationFailures, err)
			if outcome, err := w.pause(ctx, jobARN); outcome != nil || err != nil {
				return outcome, err
			}
			continue
		}

		consecutiveFailures = 0
		w.report(snapshot)

		if snapshot.Status.Terminal() {
			outcome := outcomeFromSnapshot(snapshot)
			w.terminal[jobARN] = outcome
			return outcome, nil
		}

		// A freshly submitted job transitions within the provider almost
		// immediately, so only a running job is worth the full interval.
		if snapshot.Status == bedrock.JobStatusInProgress {
			if outcome, err := w.pause(ctx, jobARN); outcome != nil || err != nil {
				return outcome, err
			}
		}
	}
}

// pause waits one poll interval. A context end during the wait becomes an
// interrupted outcome; any other wait failure is an error.
func (w *Watcher) pause(ctx context.Context, jobARN string) (*Outcome, error) {
	if err := w.sleep(ctx, w.interval); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return w.interrupted(jobARN), nil
		}
		return nil, fmt.Errorf("waiting between status reads: %w", err)
	}
	return nil, nil
}

func (w *Watcher) interrupted(jobARN string) *Outcome {
	w.observer.Printf("watch interrupted, job %s continues running; re-invoke to re-attach", jobARN)
	return &Outcome{
		Kind:       OutcomeInterrupted,
		Diagnostic: "local watch ended before the job reached a terminal state",
	}
}

func (w *Watcher) report(snapshot *bedrock.JobSnapshot) {
	msg := string(snapshot.Status)
	if m := snapshot.Metrics; m != nil {
		if m.TrainingLoss != nil {
			msg += fmt.Sprintf(" trainingLoss=%.4f", *m.TrainingLoss)
		}
		if m.ValidationLoss != nil {
			msg += fmt.Sprintf(" validationLoss=%.4f", *m.ValidationLoss)
		}
	}
	w.observer.Event(Event{
		Type:      EventJobStatus,
		Resource:  "job",
		Message:   msg,
		Timestamp: time.Now().UTC(),
	})
}

func outcomeFromSnapshot(snapshot *bedrock.JobSnapshot) *Outcome {
	outcome := &Outcome{Status: snapshot.Status}
	switch snapshot.Status {
	case bedrock.JobStatusCompleted:
		outcome.Kind = OutcomeCompleted
		outcome.ModelARN = snapshot.OutputModelARN
	case bedrock.JobStatusFailed:
		outcome.Kind = OutcomeFailed
		outcome.Diagnostic = snapshot.FailureMessage
	case bedrock.JobStatusStopped:
		outcome.Kind = OutcomeStopped
		outcome.Diagnostic = snapshot.FailureMessage
	}
	return outcome
}
