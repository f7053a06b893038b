// Package bedrock provides clients for Amazon Bedrock model customization,
// custom-model deployments, and runtime inference.
package bedrock

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	"github.com/aws/aws-sdk-go-v2/service/bedrock/types"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// Client wraps the Bedrock control-plane client.
type Client struct {
	bedrock *bedrock.Client
	region  string
}

// NewClient creates a Bedrock control-plane client for the given region.
func NewClient(ctx context.Context, region string) (*Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Client{bedrock: bedrock.NewFromConfig(cfg), region: region}, nil
}

// RuntimeClient wraps the Bedrock runtime client used for inference.
type RuntimeClient struct {
	runtime *bedrockruntime.Client
}

// NewRuntimeClient creates a Bedrock runtime client for the given region.
func NewRuntimeClient(ctx context.Context, region string) (*RuntimeClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &RuntimeClient{runtime: bedrockruntime.NewFromConfig(cfg)}, nil
}

// FoundationModel describes a foundation model offered for fine-tuning.
type FoundationModel struct {
	ModelID string
	Name    string
}

// ListFineTunableModels lists the foundation models that support fine-tuning.
func (c *Client) ListFineTunableModels(ctx context.Context) ([]FoundationModel, error) {
	out, err := c.bedrock.ListFoundationModels(ctx, &bedrock.ListFoundationModelsInput{
		ByCustomizationType: types.ModelCustomizationFineTuning,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list foundation models: %w", err)
	}

	models := make([]FoundationModel, 0, len(out.ModelSummaries))
	for _, summary := range out.ModelSummaries {
		if summary.ModelId == nil {
			continue
		}
		m := FoundationModel{ModelID: *summary.ModelId}
		if summary.ModelName != nil {
			m.Name = *summary.ModelName
		}
		models = append(models, m)
	}
	return models, nil
}

// FindNovaModel returns the first fine-tunable Nova model, or "" if none is offered.
func FindNovaModel(models []FoundationModel) string {
	for _, m := range models {
		if strings.Contains(strings.ToLower(m.ModelID), "nova") {
			return m.ModelID
		}
	}
	return ""
}
