/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package catalog

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/acoder2b/iamcdkapp/internal/config"
	"github.com/rs/zerolog"
)

// Synthesizer produces stack template artifacts, invoked once per run
type Synthesizer interface {
	Synthesize(ctx context.Context) error
}

// ExecSynthesizer implements Synthesizer by running a configured external
// command, e.g. "npx cdk synth"
type ExecSynthesizer struct {
	spec   config.CommandSpec
	logger zerolog.Logger
}

// NewExecSynthesizer creates a synthesizer for the configured command
func NewExecSynthesizer(spec config.CommandSpec, logger zerolog.Logger) *ExecSynthesizer {
	return &ExecSynthesizer{
		spec:   spec,
		logger: logger,
	}
}

// Synthesize runs the configured synthesis command to completion
func (s *ExecSynthesizer) Synthesize(ctx context.Context) error {
	if len(s.spec.Command) == 0 {
		return fmt.Errorf("no synthesizer command configured")
	}

	s.logger.Info().Strs("command", s.spec.Command).Msg("synthesizing stacks")

	cmd := exec.CommandContext(ctx, s.spec.Command[0], s.spec.Command[1:]...)
	cmd.Dir = s.spec.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("synthesis command failed: %w", err)
	}

	return nil
}
