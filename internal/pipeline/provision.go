package pipeline

import (
	"fmt"
	"time"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/util/retry"
)

// EnsureStorageLocation makes sure the training-data bucket exists, creating
// it with versioning enabled when no usable recorded bucket is found. The
// bucket name is recorded before any upload happens.
func EnsureStorageLocation(ctx *Context) (string, error) {
	if name, ok := ctx.State.Get(ResourceBucket); ok {
		exists, err := ctx.Storage.BucketExists(ctx, name)
		if err != nil {
			return "", &ProvisioningError{Resource: "bucket", Err: err}
		}
		if exists {
			ctx.Observer.Event(Event{
				Type:      EventResourceReused,
				Resource:  "bucket",
				Message:   name,
				Timestamp: time.Now().UTC(),
			})
			return name, nil
		}
		// Recorded but gone remotely. Fall through and provision a fresh one.
		ctx.Observer.Printf("recorded bucket %s no longer exists, creating a new one", name)
	}

	name := newBucketName(ctx.Config.BucketPrefix)
	if err := ctx.Storage.CreateBucket(ctx, name); err != nil {
		return "", &ProvisioningError{Resource: "bucket", Err: err}
	}
	if err := ctx.Storage.EnableVersioning(ctx, name); err != nil {
		return "", &ProvisioningError{Resource: "bucket versioning", Err: err}
	}
	if err := ctx.State.Record(ResourceBucket, name); err != nil {
		return "", &ProvisioningError{Resource: "bucket", Err: err}
	}

	ctx.Observer.Event(Event{
		Type:      EventResourceCreated,
		Resource:  "bucket",
		Message:   name,
		Timestamp: time.Now().UTC(),
	})
	return name, nil
}

// EnsureAccessGrant makes sure the service role the training job assumes
// exists, creating it with a trust statement for the training service and
// data access scoped to bucketName. A freshly created role is probed with
// backoff until the identity service reports it, then a short residual settle
// wait covers the gap between visibility and assumability.
func EnsureAccessGrant(ctx *Context, bucketName string) (string, error) {
	if name, ok := ctx.State.Get(ResourceRoleName); ok {
		exists, arn, err := ctx.Grants.RoleExists(ctx, name)
		if err != nil {
			return "", &ProvisioningError{Resource: "role", Err: err}
		}
		if exists {
			ctx.Observer.Event(Event{
				Type:      EventResourceReused,
				Resource:  "role",
				Message:   name,
				Timestamp: time.Now().UTC(),
			})
			if err := ctx.State.Record(ResourceRoleARN, arn); err != nil {
				return "", &ProvisioningError{Resource: "role", Err: err}
			}
			return arn, nil
		}
		ctx.Observer.Printf("recorded role %s no longer exists, creating a new one", name)
	}

	name := newRoleName()
	arn, err := ctx.Grants.CreateTrainingRole(ctx, name, bucketName)
	if err != nil {
		return "", &ProvisioningError{Resource: "role", Err: err}
	}

	if err := waitForGrantReady(ctx, name); err != nil {
		return "", &ProvisioningError{Resource: "role", Err: err}
	}

	if err := ctx.State.Record(ResourceRoleName, name); err != nil {
		return "", &ProvisioningError{Resource: "role", Err: err}
	}
	if err := ctx.State.Record(ResourceRoleARN, arn); err != nil {
		return "", &ProvisioningError{Resource: "role", Err: err}
	}

	ctx.Observer.Event(Event{
		Type:      EventResourceCreated,
		Resource:  "role",
		Message:   name,
		Timestamp: time.Now().UTC(),
	})
	return arn, nil
}

// waitForGrantReady probes the role until the identity service reports it,
// then applies the residual settle delay. IAM is eventually consistent and a
// role that is visible is not necessarily assumable yet.
func waitForGrantReady(ctx *Context, roleName string) error {
	err := retry.Do(ctx, func() error {
		exists, _, err := ctx.Grants.RoleExists(ctx, roleName)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("role %s not visible yet", roleName)
		}
		return nil
	},
		retry.WithAttempts(ctx.Timeouts.RetryAttempts),
		retry.WithInitialDelay(ctx.Timeouts.RetryInitialDelay),
	)
	if err != nil {
		return err
	}

	if ctx.Timeouts.GrantSettle > 0 {
		return ctx.Sleep(ctx, ctx.Timeouts.GrantSettle)
	}
	return nil
}
