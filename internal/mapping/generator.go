/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package mapping

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/acoder2b/iamcdkapp/internal/config"
	"github.com/rs/zerolog"
)

// Generator produces a resource-identity mapping artifact for a stack template
type Generator interface {
	Generate(ctx context.Context, templatePath string) error
}

// ExecGenerator implements Generator by running the configured external
// mapping tool with the template path as its final argument
type ExecGenerator struct {
	cfg    config.MappingConfig
	logger zerolog.Logger
}

// NewExecGenerator creates a generator for the configured command
func NewExecGenerator(cfg config.MappingConfig, logger zerolog.Logger) *ExecGenerator {
	return &ExecGenerator{
		cfg:    cfg,
		logger: logger,
	}
}

// Generate runs the mapping tool to completion for one template
func (g *ExecGenerator) Generate(ctx context.Context, templatePath string) error {
	if len(g.cfg.Command) == 0 {
		return fmt.Errorf("no mapping generator command configured")
	}

	// The tool runs inside the output directory; a relative template path
	// would no longer resolve from there
	absTemplate, err := filepath.Abs(templatePath)
	if err != nil {
		return fmt.Errorf("failed to resolve template path %s: %w", templatePath, err)
	}

	args := append(append([]string{}, g.cfg.Command[1:]...), absTemplate)

	g.logger.Info().
		Str("template", templatePath).
		Strs("command", g.cfg.Command).
		Msg("generating resource map")

	cmd := exec.CommandContext(ctx, g.cfg.Command[0], args...)
	cmd.Dir = g.cfg.OutputDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("mapping generator failed for %s: %w", templatePath, err)
	}

	return nil
}
