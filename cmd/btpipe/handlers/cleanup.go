package handlers

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/pipeline"
	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/platform/iam"
	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/platform/s3"
)

// CleanupOptions carries the cleanup command's flags.
type CleanupOptions struct {
	StatePath string
	AssumeYes bool
}

// storageCleaner empties and deletes the training-data bucket.
// Implemented by *s3.Client.
type storageCleaner interface {
	ListObjects(ctx context.Context, bucketName, prefix string) ([]string, error)
	DeleteObject(ctx context.Context, bucketName, key string) error
	DeleteBucket(ctx context.Context, bucketName string) error
}

// grantCleaner deletes the service role.
// Implemented by *iam.Client.
type grantCleaner interface {
	DeleteTrainingRole(ctx context.Context, roleName string) error
}

// Factory function variables for cleanup - can be replaced in tests.
var (
	// newStorageCleaner creates the S3-backed cleaner.
	newStorageCleaner = func(ctx context.Context, region string) (storageCleaner, error) {
		return s3.NewClient(ctx, region)
	}

	// newGrantCleaner creates the IAM-backed cleaner.
	newGrantCleaner = func(ctx context.Context) (grantCleaner, error) {
		return iam.NewClient(ctx)
	}

	// removeFile deletes the local state file.
	removeFile = os.Remove

	// confirmCleanup asks before deleting anything.
	confirmCleanup = promptCleanup
)

// Cleanup deletes the provisioned bucket and role and removes the state
// file. The custom model and any deployments are left alone. Partial
// failures are logged and the rest of the cleanup proceeds, so a re-run
// finishes what is left.
func Cleanup(ctx context.Context, opts CleanupOptions) error {
	statePath := opts.StatePath
	if statePath == "" {
		statePath = pipeline.DefaultStateFile
	}

	if !stateFileExists(statePath) {
		return fmt.Errorf("no state file at %s; nothing to clean up", statePath)
	}

	store, err := loadStore(statePath, "")
	if err != nil {
		return err
	}

	if !opts.AssumeYes {
		proceed, err := confirmCleanup(statePath)
		if err != nil {
			return err
		}
		if !proceed {
			return fmt.Errorf("aborted")
		}
	}

	var failures int

	if bucketName, ok := store.Get(pipeline.ResourceBucket); ok {
		if err := cleanupBucket(ctx, store.Region(), bucketName); err != nil {
			log.Printf("Warning: bucket cleanup failed: %v", err)
			failures++
		}
	}

	if roleName, ok := store.Get(pipeline.ResourceRoleName); ok {
		if err := cleanupRole(ctx, roleName); err != nil {
			log.Printf("Warning: role cleanup failed: %v", err)
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d resources could not be deleted; state file kept for a re-run", failures)
	}

	if err := removeFile(statePath); err != nil {
		return fmt.Errorf("removing state file: %w", err)
	}
	log.Printf("Cleanup complete, %s removed", statePath)
	return nil
}

func cleanupBucket(ctx context.Context, region, bucketName string) error {
	cleaner, err := newStorageCleaner(ctx, region)
	if err != nil {
		return err
	}

	keys, err := cleaner.ListObjects(ctx, bucketName, "")
	if err != nil {
		return err
	}
	for _, key := range keys {
		if err := cleaner.DeleteObject(ctx, bucketName, key); err != nil {
			return fmt.Errorf("deleting %s: %w", key, err)
		}
	}

	if err := cleaner.DeleteBucket(ctx, bucketName); err != nil {
		return err
	}
	log.Printf("Deleted bucket %s (%d objects)", bucketName, len(keys))
	return nil
}

func cleanupRole(ctx context.Context, roleName string) error {
	cleaner, err := newGrantCleaner(ctx)
	if err != nil {
		return err
	}
	if err := cleaner.DeleteTrainingRole(ctx, roleName); err != nil {
		return err
	}
	log.Printf("Deleted role %s", roleName)
	return nil
}

func promptCleanup(statePath string) (bool, error) {
	if !isInteractiveTTY() {
		return false, fmt.Errorf("refusing to delete without confirmation; pass --yes")
	}

	proceed := false
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete provisioned resources?").
				Description(fmt.Sprintf("The bucket, role, and %s will be removed. The custom model is kept.", statePath)).
				Affirmative("Delete").
				Negative("Keep").
				Value(&proceed),
		),
	).Run()
	if err != nil {
		return false, err
	}
	return proceed, nil
}
