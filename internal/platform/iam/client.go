// Package iam provides the client for the Bedrock training role.
package iam

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/smithy-go"
)

// PolicyName is the name of the inline S3 access policy attached to the role.
const PolicyName = "BedrockS3Access"

// bedrockServicePrincipal is the principal allowed to assume the training role.
const bedrockServicePrincipal = "bedrock.amazonaws.com"

// Client wraps the IAM client for training-role management.
type Client struct {
	iam *iam.Client
}

// NewClient creates an IAM client using the default credential chain.
// IAM is a global service, so no region is taken.
func NewClient(ctx context.Context) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Client{iam: iam.NewFromConfig(cfg)}, nil
}

// policyDocument is the subset of the IAM policy language we emit.
type policyDocument struct {
	Version   string            `json:"Version"`
	Statement []policyStatement `json:"Statement"`
}

type policyStatement struct {
	Effect    string           `json:"Effect"`
	Principal *policyPrincipal `json:"Principal,omitempty"`
	Action    interface{}      `json:"Action"`
	Resource  interface{}      `json:"Resource,omitempty"`
}

type policyPrincipal struct {
	Service string `json:"Service"`
}

// trustPolicy allows the Bedrock service to assume the role.
func trustPolicy() ([]byte, error) {
	return json.Marshal(policyDocument{
		Version: "2012-10-17",
		Statement: []policyStatement{{
			Effect:    "Allow",
			Principal: &policyPrincipal{Service: bedrockServicePrincipal},
			Action:    "sts:AssumeRole",
		}},
	})
}

// bucketAccessPolicy grants read/write/list scoped strictly to the bucket.
func bucketAccessPolicy(bucketName string) ([]byte, error) {
	return json.Marshal(policyDocument{
		Version: "2012-10-17",
		Statement: []policyStatement{{
			Effect: "Allow",
			Action: []string{"s3:GetObject", "s3:PutObject", "s3:ListBucket"},
			Resource: []string{
				fmt.Sprintf("arn:aws:s3:::%s", bucketName),
				fmt.Sprintf("arn:aws:s3:::%s/*", bucketName),
			},
		}},
	})
}

// RoleExists checks whether the role exists and returns its ARN when it does.
func (c *Client) RoleExists(ctx context.Context, roleName string) (bool, string, error) {
	out, err := c.iam.GetRole(ctx, &iam.GetRoleInput{
		RoleName: aws.String(roleName),
	})
	if err != nil {
		if isNoSuchEntity(err) {
			return false, "", nil
		}
		return false, "", fmt.Errorf("failed to look up role %s: %w", roleName, err)
	}
	return true, aws.ToString(out.Role.Arn), nil
}

// CreateTrainingRole creates the role with the Bedrock trust policy and an
// inline S3 policy scoped to bucketName. Returns the role ARN.
func (c *Client) CreateTrainingRole(ctx context.Context, roleName, bucketName string) (string, error) {
	trust, err := trustPolicy()
	if err != nil {
		return "", fmt.Errorf("failed to build trust policy: %w", err)
	}

	out, err := c.iam.CreateRole(ctx, &iam.CreateRoleInput{
		RoleName:                 aws.String(roleName),
		AssumeRolePolicyDocument: aws.String(string(trust)),
		Description:              aws.String("Role for Bedrock support ticket classification training"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to create role %s: %w", roleName, err)
	}
	roleARN := aws.ToString(out.Role.Arn)

	access, err := bucketAccessPolicy(bucketName)
	if err != nil {
		return "", fmt.Errorf("failed to build access policy: %w", err)
	}

	_, err = c.iam.PutRolePolicy(ctx, &iam.PutRolePolicyInput{
		RoleName:       aws.String(roleName),
		PolicyName:     aws.String(PolicyName),
		PolicyDocument: aws.String(string(access)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to attach policy to role %s: %w", roleName, err)
	}

	return roleARN, nil
}

// DeleteTrainingRole removes the inline policy and then the role itself.
func (c *Client) DeleteTrainingRole(ctx context.Context, roleName string) error {
	_, err := c.iam.DeleteRolePolicy(ctx, &iam.DeleteRolePolicyInput{
		RoleName:   aws.String(roleName),
		PolicyName: aws.String(PolicyName),
	})
	if err != nil && !isNoSuchEntity(err) {
		return fmt.Errorf("failed to delete policy from role %s: %w", roleName, err)
	}

	_, err = c.iam.DeleteRole(ctx, &iam.DeleteRoleInput{
		RoleName: aws.String(roleName),
	})
	if err != nil && !isNoSuchEntity(err) {
		return fmt.Errorf("failed to delete role %s: %w", roleName, err)
	}
	return nil
}

// isNoSuchEntity checks whether the error means the role or policy is absent.
func isNoSuchEntity(err error) bool {
	if err == nil {
		return false
	}

	var nse *types.NoSuchEntityException
	if errors.As(err, &nse) {
		return true
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode() == "NoSuchEntity"
	}

	return false
}
