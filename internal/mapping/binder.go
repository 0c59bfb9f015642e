/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package mapping

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/acoder2b/iamcdkapp/internal/model"
	"github.com/rs/zerolog"
)

// Binder defines the interface for binding stacks to their resource maps
type Binder interface {
	Bind(ctx context.Context, descriptor model.StackDescriptor) (*model.ResourceMapBinding, error)
}

// ResourceMapBinder implements Binder: it triggers map generation when needed
// and verifies the artifact before handing it to the importer
type ResourceMapBinder struct {
	generator Generator
	outputDir string
	logger    zerolog.Logger
}

// NewResourceMapBinder creates a new ResourceMapBinder
func NewResourceMapBinder(generator Generator, outputDir string, logger zerolog.Logger) *ResourceMapBinder {
	return &ResourceMapBinder{
		generator: generator,
		outputDir: outputDir,
		logger:    logger,
	}
}

// Bind locates or generates the resource map for a stack. A map that already
// exists is reused without re-running the generator, so binding the same
// descriptor twice is side-effect free. A map still absent after generation is
// a hard stop for the stack: it signals an upstream logic or permissions
// problem, not a transient condition.
func (b *ResourceMapBinder) Bind(ctx context.Context, descriptor model.StackDescriptor) (*model.ResourceMapBinding, error) {
	mapPath := filepath.Join(b.outputDir, descriptor.StackName+".json")

	if _, err := os.Stat(mapPath); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to check resource map %s: %w", mapPath, err)
		}

		if err := b.generator.Generate(ctx, descriptor.TemplatePath); err != nil {
			return nil, fmt.Errorf("failed to generate resource map for stack %s: %w", descriptor.StackName, err)
		}

		if _, err := os.Stat(mapPath); err != nil {
			return nil, fmt.Errorf("%w: expected %s for stack %s", model.ErrMappingMissing, mapPath, descriptor.StackName)
		}
	}

	entries, err := readMapEntries(mapPath)
	if err != nil {
		return nil, fmt.Errorf("invalid resource map for stack %s: %w", descriptor.StackName, err)
	}

	b.logger.Info().
		Str("stack", descriptor.StackName).
		Str("map", mapPath).
		Int("resources", len(entries)).
		Msg("bound resource map")

	return &model.ResourceMapBinding{
		StackName: descriptor.StackName,
		MapPath:   mapPath,
		Entries:   entries,
	}, nil
}

// readMapEntries parses a resource map artifact: a JSON object keyed by
// logical resource ID, each value an identifier map such as
// {"RoleName": "admin-role"} or {"PolicyArn": "arn:aws:iam::..."}
func readMapEntries(mapPath string) (map[string]map[string]string, error) {
	data, err := os.ReadFile(mapPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", mapPath, err)
	}

	var entries map[string]map[string]string
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", mapPath, err)
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%s contains no resource entries", mapPath)
	}

	return entries, nil
}
