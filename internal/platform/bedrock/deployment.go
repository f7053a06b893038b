package bedrock

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrock/types"
)

// CreateDeployment creates an on-demand deployment for a custom model and
// returns the deployment ARN. The deployment may not be queryable for a short
// while after creation.
func (c *Client) CreateDeployment(ctx context.Context, name, modelARN string) (string, error) {
	out, err := c.bedrock.CreateCustomModelDeployment(ctx, &bedrock.CreateCustomModelDeploymentInput{
		ModelDeploymentName: aws.String(name),
		ModelArn:            aws.String(modelARN),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create deployment %s: %w", name, err)
	}
	return aws.ToString(out.CustomModelDeploymentArn), nil
}

// GetDeployment reads the current state of a deployment. The identifier may
// be the deployment ARN or its trailing ID segment.
func (c *Client) GetDeployment(ctx context.Context, identifier string) (*DeploymentSnapshot, error) {
	out, err := c.bedrock.GetCustomModelDeployment(ctx, &bedrock.GetCustomModelDeploymentInput{
		CustomModelDeploymentIdentifier: aws.String(identifier),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read deployment %s: %w", identifier, err)
	}

	return &DeploymentSnapshot{
		DeploymentARN:  aws.ToString(out.CustomModelDeploymentArn),
		Name:           aws.ToString(out.ModelDeploymentName),
		ModelARN:       aws.ToString(out.ModelArn),
		Status:         mapDeploymentStatus(out.Status),
		FailureMessage: aws.ToString(out.FailureMessage),
	}, nil
}

// ListDeployments lists all custom-model deployments in the region.
func (c *Client) ListDeployments(ctx context.Context) ([]DeploymentSnapshot, error) {
	out, err := c.bedrock.ListCustomModelDeployments(ctx, &bedrock.ListCustomModelDeploymentsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list deployments: %w", err)
	}

	deployments := make([]DeploymentSnapshot, 0, len(out.ModelDeploymentSummaries))
	for _, summary := range out.ModelDeploymentSummaries {
		deployments = append(deployments, DeploymentSnapshot{
			DeploymentARN: aws.ToString(summary.CustomModelDeploymentArn),
			Name:          aws.ToString(summary.CustomModelDeploymentName),
			ModelARN:      aws.ToString(summary.ModelArn),
			Status:        mapDeploymentStatus(summary.Status),
		})
	}
	return deployments, nil
}

// DeleteDeployment deletes a deployment by ARN or ID.
func (c *Client) DeleteDeployment(ctx context.Context, identifier string) error {
	_, err := c.bedrock.DeleteCustomModelDeployment(ctx, &bedrock.DeleteCustomModelDeploymentInput{
		CustomModelDeploymentIdentifier: aws.String(identifier),
	})
	if err != nil {
		return fmt.Errorf("failed to delete deployment %s: %w", identifier, err)
	}
	return nil
}

func mapDeploymentStatus(status types.CustomModelDeploymentStatus) DeploymentStatus {
	switch status {
	case types.CustomModelDeploymentStatusActive:
		return DeploymentStatusActive
	case types.CustomModelDeploymentStatusFailed:
		return DeploymentStatusFailed
	default:
		return DeploymentStatusCreating
	}
}
