package handlers

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/rezaarchi/bedrock-nova-finetuning-pipeline/internal/platform/bedrock"
)

// modelLister is the slice of the Bedrock control-plane client that the
// models handler needs.
type modelLister interface {
	ListFineTunableModels(ctx context.Context) ([]bedrock.FoundationModel, error)
}

// newModelLister creates the client used to enumerate fine-tunable models.
var newModelLister = func(ctx context.Context, region string) (modelLister, error) {
	return bedrock.NewClient(ctx, region)
}

// ListModels prints every foundation model that supports fine-tuning in the
// given region and highlights the Nova family pick used as the default base.
func ListModels(ctx context.Context, region string) error {
	if region == "" {
		region = "us-east-1"
	}

	client, err := newModelLister(ctx, region)
	if err != nil {
		return fmt.Errorf("initializing model client: %w", err)
	}

	models, err := client.ListFineTunableModels(ctx)
	if err != nil {
		return err
	}

	if len(models) == 0 {
		log.Printf("No fine-tunable foundation models are offered in %s.", region)
		return nil
	}

	log.Printf("Fine-tunable foundation models in %s:", region)
	for _, m := range models {
		marker := " "
		if strings.Contains(strings.ToLower(m.ModelID), "nova") {
			marker = "*"
		}
		if m.Name != "" {
			log.Printf("  %s %-40s %s", marker, m.ModelID, m.Name)
		} else {
			log.Printf("  %s %s", marker, m.ModelID)
		}
	}

	if nova := bedrock.FindNovaModel(models); nova != "" {
		log.Printf("Nova base model for fine-tuning: %s", nova)
	} else {
		log.Printf("No Nova model is offered in %s; set base_model_id explicitly.", region)
	}

	return nil
}
