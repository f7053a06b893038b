package pipeline

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// newBucketName generates a globally unique bucket name under the configured
// prefix. The uuid suffix avoids the global S3 namespace collisions a plain
// timestamp invites.
func newBucketName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.NewString()[:8])
}

// newRoleName generates the training role name.
func newRoleName() string {
	return fmt.Sprintf("BedrockTrainingRole-%s", uuid.NewString()[:8])
}

// newJobName generates the customization job name under the configured prefix.
func newJobName(prefix string) string {
	return fmt.Sprintf("%s-job-%s", prefix, time.Now().UTC().Format("20060102-150405"))
}

// newModelName generates the custom model name under the configured prefix.
func newModelName(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, time.Now().UTC().Format("20060102-150405"))
}
