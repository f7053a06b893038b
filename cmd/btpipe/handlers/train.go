// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/config"
	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/dataset"
	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/pipeline"
	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/platform/bedrock"
	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/platform/iam"
	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/platform/s3"
)

// TrainOptions carries the train command's flags.
type TrainOptions struct {
	ConfigPath string
	DataPath   string
	StatePath  string
	AssumeYes  bool
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads config from file.
	loadConfigFile = config.LoadFile

	// loadStore opens the pipeline state file.
	loadStore = pipeline.LoadStore

	// stateFileExists probes for a resumable state file.
	stateFileExists = pipeline.StateFileExists

	// readTickets reads the input CSV.
	readTickets = dataset.ReadCSVFile

	// prepareDataset converts tickets into the training/validation split.
	prepareDataset = dataset.Prepare

	// newStorageClient creates the S3-backed storage provider.
	newStorageClient = func(ctx context.Context, region string) (pipeline.StorageProvider, error) {
		return s3.NewClient(ctx, region)
	}

	// newGrantClient creates the IAM-backed grant provider.
	newGrantClient = func(ctx context.Context) (pipeline.GrantProvider, error) {
		return iam.NewClient(ctx)
	}

	// newJobClient creates the Bedrock control-plane client.
	newJobClient = func(ctx context.Context, region string) (pipeline.JobProvider, error) {
		return bedrock.NewClient(ctx, region)
	}

	// confirmResume asks whether to reuse the recorded resources.
	confirmResume = promptResume
)

// Train runs the fine-tuning pipeline end to end.
//
// The workflow: load configuration, decide whether to resume from a state
// file, prepare the dataset locally (cheap, fails before anything remote
// happens), then run the provisioning/submit/watch phases. The final
// outcome of the remote job decides the exit status.
func Train(ctx context.Context, opts TrainOptions) error {
	cfg, err := loadTrainingConfig(opts.ConfigPath)
	if err != nil {
		return err
	}

	statePath := opts.StatePath
	if statePath == "" {
		statePath = pipeline.DefaultStateFile
	}

	if stateFileExists(statePath) && !opts.AssumeYes {
		resume, err := confirmResume(statePath)
		if err != nil {
			return err
		}
		if !resume {
			return fmt.Errorf("aborted; remove %s to start from scratch", statePath)
		}
	}

	store, err := loadStore(statePath, cfg.Region)
	if err != nil {
		return err
	}

	tickets, err := readTickets(opts.DataPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", opts.DataPath, err)
	}
	log.Printf("Loaded %d tickets from %s", len(tickets), opts.DataPath)

	split, err := prepareDataset(tickets, dataset.Options{
		TrainRatio: cfg.Dataset.TrainRatio,
		MaxSamples: cfg.Dataset.MaxSamples,
		MinSamples: cfg.Dataset.MinSamples,
	})
	if err != nil {
		return fmt.Errorf("preparing dataset: %w", err)
	}
	log.Printf("Prepared %d training and %d validation examples",
		len(split.Training), len(split.Validation))

	storage, err := newStorageClient(ctx, cfg.Region)
	if err != nil {
		return fmt.Errorf("initializing storage client: %w", err)
	}
	grants, err := newGrantClient(ctx)
	if err != nil {
		return fmt.Errorf("initializing identity client: %w", err)
	}
	jobs, err := newJobClient(ctx, cfg.Region)
	if err != nil {
		return fmt.Errorf("initializing training client: %w", err)
	}

	pctx := pipeline.NewContext(ctx, cfg, store, storage, grants, jobs)
	pctx.Dataset = split

	if err := pipeline.RunPhases(pctx, pipeline.Phases()...); err != nil {
		return err
	}

	return reportOutcome(pctx.Outcome, statePath)
}

// loadTrainingConfig resolves the configuration: an explicit path, the
// default file when present, or built-in defaults.
func loadTrainingConfig(path string) (*config.Config, error) {
	if path != "" {
		return loadConfigFile(path)
	}
	if _, err := os.Stat(config.DefaultFile); err == nil {
		return loadConfigFile(config.DefaultFile)
	}
	log.Printf("No %s found, using defaults", config.DefaultFile)
	return config.Default(), nil
}

func reportOutcome(outcome *pipeline.Outcome, statePath string) error {
	if outcome == nil {
		return fmt.Errorf("pipeline finished without an outcome")
	}

	switch outcome.Kind {
	case pipeline.OutcomeCompleted:
		log.Printf("Training complete. Custom model: %s", outcome.ModelARN)
		log.Printf("Run 'btpipe test' to evaluate it.")
		return nil
	case pipeline.OutcomeInterrupted:
		log.Printf("Stopped watching; the job continues running remotely.")
		log.Printf("Re-run 'btpipe train' to re-attach, or 'btpipe status' for a one-shot check.")
		return nil
	case pipeline.OutcomeStopped:
		return fmt.Errorf("training job was stopped: %s", outcome.Diagnostic)
	default:
		return fmt.Errorf("training job failed: %s", outcome.Diagnostic)
	}
}

// promptResume confirms resumption interactively. Without a TTY the
// recorded resources are reused silently, so scripted runs resume.
func promptResume(statePath string) (bool, error) {
	if !isInteractiveTTY() {
		log.Printf("State file %s found, reusing recorded resources", statePath)
		return true, nil
	}

	resume := true
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Resume previous run?").
				Description(fmt.Sprintf("State file %s found; recorded resources will be reused.", statePath)).
				Affirmative("Resume").
				Negative("Abort").
				Value(&resume),
		),
	).Run()
	if err != nil {
		return false, err
	}
	return resume, nil
}

func isInteractiveTTY() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}
