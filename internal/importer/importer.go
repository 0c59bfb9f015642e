/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/acoder2b/iamcdkapp/internal/aws"
	"github.com/acoder2b/iamcdkapp/internal/model"
	"github.com/rs/zerolog"
)

// Importer defines the interface for stack import operations
type Importer interface {
	ImportStack(ctx context.Context, descriptor model.StackDescriptor, binding *model.ResourceMapBinding) model.ImportResult
}

// StackImporter implements Importer using CloudFormation import changesets.
// Imports mutate shared stack state, so callers run them strictly
// sequentially across stacks.
type StackImporter struct {
	cfnOps aws.CloudFormationOperations
	logger zerolog.Logger
}

// NewStackImporter creates a new StackImporter
func NewStackImporter(cfnOps aws.CloudFormationOperations, logger zerolog.Logger) *StackImporter {
	return &StackImporter{
		cfnOps: cfnOps,
		logger: logger,
	}
}

// ImportStack adopts the resources in the binding into the stack's managed
// state. Failures are captured in the result rather than propagated: one
// stack's import failure is independent of the others.
func (i *StackImporter) ImportStack(ctx context.Context, descriptor model.StackDescriptor, binding *model.ResourceMapBinding) model.ImportResult {
	result := model.ImportResult{StackName: descriptor.StackName}

	templateBody, resources, err := i.prepareImport(descriptor, binding)
	if err != nil {
		result.ErrorDetail = err.Error()
		return result
	}

	exists, err := i.cfnOps.StackExists(ctx, descriptor.StackName)
	if err != nil {
		result.ErrorDetail = err.Error()
		return result
	}
	if exists {
		i.logger.Info().Str("stack", descriptor.StackName).Msg("adopting resources into existing stack")
	} else {
		i.logger.Info().Str("stack", descriptor.StackName).Msg("creating stack from existing resources")
	}

	i.logger.Info().
		Str("stack", descriptor.StackName).
		Int("resources", len(resources)).
		Msg("importing resources")

	err = i.cfnOps.ImportResources(ctx, aws.ImportResourcesInput{
		StackName:    descriptor.StackName,
		TemplateBody: templateBody,
		Resources:    resources,
		EventCallback: func(event aws.StackEvent) {
			fmt.Printf("  %s: %s - %s\n", event.Timestamp.Format("15:04:05"), event.ResourceType, event.ResourceStatus)
			if event.ResourceStatusReason != "" {
				fmt.Printf("    Reason: %s\n", event.ResourceStatusReason)
			}
		},
	})
	if err != nil {
		result.ErrorDetail = err.Error()
		return result
	}

	result.Succeeded = true
	return result
}

// prepareImport joins the binding's identifier entries with the resource
// types declared in the synthesized template
func (i *StackImporter) prepareImport(descriptor model.StackDescriptor, binding *model.ResourceMapBinding) (string, []aws.ResourceImport, error) {
	data, err := os.ReadFile(descriptor.TemplatePath)
	if err != nil {
		return "", nil, fmt.Errorf("failed to read template %s: %w", descriptor.TemplatePath, err)
	}

	var template struct {
		Resources map[string]struct {
			Type string `json:"Type"`
		} `json:"Resources"`
	}
	if err := json.Unmarshal(data, &template); err != nil {
		return "", nil, fmt.Errorf("failed to parse template %s: %w", descriptor.TemplatePath, err)
	}

	resources := make([]aws.ResourceImport, 0, len(binding.Entries))
	for logicalID, identifier := range binding.Entries {
		declared, ok := template.Resources[logicalID]
		if !ok {
			return "", nil, fmt.Errorf("resource map entry %s has no matching resource in template %s", logicalID, descriptor.TemplatePath)
		}
		resources = append(resources, aws.ResourceImport{
			LogicalID:    logicalID,
			ResourceType: declared.Type,
			Identifier:   identifier,
		})
	}

	// Map iteration order is random; sort for deterministic changesets
	sort.Slice(resources, func(a, b int) bool {
		return resources[a].LogicalID < resources[b].LogicalID
	})

	return string(data), resources, nil
}
