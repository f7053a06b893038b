package bedrock

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

// Nova message wire format, shared between the dataset and runtime layers
// only in shape, not in code: the training records live in internal/dataset.

type novaContent struct {
	Text string `json:"text"`
}

type novaMessage struct {
	Role    string        `json:"role"`
	Content []novaContent `json:"content"`
}

type novaInferenceConfig struct {
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"maxTokens"`
	TopP        float64 `json:"topP"`
}

type novaRequest struct {
	Messages        []novaMessage       `json:"messages"`
	InferenceConfig novaInferenceConfig `json:"inferenceConfig"`
}

type novaResponse struct {
	Output struct {
		Message struct {
			Content []novaContent `json:"content"`
		} `json:"message"`
	} `json:"output"`
	StopReason string `json:"stopReason"`
}

// InvokeResult is the model's reply to a single prompt.
type InvokeResult struct {
	Text       string
	StopReason string
}

// Invoke sends a single user prompt to modelID (a model or deployment ARN)
// and returns the assistant's text reply. No schema is enforced on the reply.
func (c *RuntimeClient) Invoke(ctx context.Context, modelID, prompt string) (*InvokeResult, error) {
	body, err := json.Marshal(novaRequest{
		Messages: []novaMessage{
			{Role: "user", Content: []novaContent{{Text: prompt}}},
		},
		InferenceConfig: novaInferenceConfig{
			Temperature: 0.5,
			MaxTokens:   512,
			TopP:        0.9,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	out, err := c.runtime.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to invoke model %s: %w", modelID, err)
	}

	var resp novaResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(resp.Output.Message.Content) == 0 {
		return nil, fmt.Errorf("model %s returned an empty reply", modelID)
	}

	return &InvokeResult{
		Text:       resp.Output.Message.Content[0].Text,
		StopReason: resp.StopReason,
	}, nil
}
