/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/acoder2b/iamcdkapp/internal/config"
	"github.com/acoder2b/iamcdkapp/internal/model"
	"github.com/rs/zerolog"
)

// templateSuffix is the artifact naming the synthesizer uses for stack templates
const templateSuffix = ".template.json"

// Catalog defines the interface for discovering synthesized stacks
type Catalog interface {
	ListStacks(ctx context.Context, accountID, searchRoot string) ([]model.StackDescriptor, error)
}

// StackCatalog implements Catalog by scanning synthesizer output on disk
type StackCatalog struct {
	naming config.NamingConvention
	logger zerolog.Logger
}

// NewStackCatalog creates a new StackCatalog
func NewStackCatalog(naming config.NamingConvention, logger zerolog.Logger) *StackCatalog {
	return &StackCatalog{
		naming: naming,
		logger: logger,
	}
}

// ListStacks scans searchRoot for template artifacts whose stack name matches
// the naming convention for accountID. Zero matches is an error: downstream
// steps assume at least one stack exists.
func (c *StackCatalog) ListStacks(ctx context.Context, accountID, searchRoot string) ([]model.StackDescriptor, error) {
	entries, err := os.ReadDir(searchRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read synthesis output directory %s: %w", searchRoot, err)
	}

	var descriptors []model.StackDescriptor
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), templateSuffix) {
			continue
		}

		stackName := strings.TrimSuffix(entry.Name(), templateSuffix)
		if !c.naming.Matches(stackName, accountID) {
			continue
		}

		descriptors = append(descriptors, model.StackDescriptor{
			StackName:    stackName,
			TemplatePath: filepath.Join(searchRoot, entry.Name()),
		})
	}

	if len(descriptors) == 0 {
		return nil, fmt.Errorf("%w %s under %s", model.ErrNoStacksFound, accountID, searchRoot)
	}

	// Directory iteration order is not guaranteed; sort for deterministic runs
	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].StackName < descriptors[j].StackName
	})

	c.logger.Info().
		Str("account", accountID).
		Int("stacks", len(descriptors)).
		Msg("discovered synthesized stacks")

	return descriptors, nil
}
