package handlers

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/pipeline"
)

// Status prints the recorded resources and, when a job has been submitted,
// queries its current status once. It never blocks on the job.
func Status(ctx context.Context, statePath string) error {
	if statePath == "" {
		statePath = pipeline.DefaultStateFile
	}

	if !stateFileExists(statePath) {
		return fmt.Errorf("no state file at %s; nothing has been provisioned yet", statePath)
	}

	store, err := loadStore(statePath, "")
	if err != nil {
		return err
	}

	snapshot := store.Snapshot()
	log.Printf("State file: %s (region %s, updated %s)",
		statePath, snapshot.Region, snapshot.LastUpdated.Format("2006-01-02 15:04:05 MST"))

	keys := make([]string, 0, len(snapshot.Resources))
	for k := range snapshot.Resources {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		log.Printf("  %-20s %s", k, snapshot.Resources[k])
	}

	jobARN, ok := store.Get(pipeline.ResourceJobARN)
	if !ok {
		log.Printf("No training job submitted yet.")
		return nil
	}

	jobs, err := newJobClient(ctx, snapshot.Region)
	if err != nil {
		return fmt.Errorf("initializing training client: %w", err)
	}

	job, err := jobs.GetCustomizationJob(ctx, jobARN)
	if err != nil {
		return fmt.Errorf("querying job: %w", err)
	}

	log.Printf("Job status: %s", job.Status)
	if m := job.Metrics; m != nil {
		if m.TrainingLoss != nil {
			log.Printf("  training loss:   %.4f", *m.TrainingLoss)
		}
		if m.ValidationLoss != nil {
			log.Printf("  validation loss: %.4f", *m.ValidationLoss)
		}
	}
	if job.FailureMessage != "" {
		log.Printf("  failure: %s", job.FailureMessage)
	}
	if job.OutputModelARN != "" {
		log.Printf("  model: %s", job.OutputModelARN)
	}

	return nil
}
