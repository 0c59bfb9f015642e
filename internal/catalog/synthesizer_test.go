/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/acoder2b/iamcdkapp/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSynthesize_NoCommandConfigured(t *testing.T) {
	synthesizer := NewExecSynthesizer(config.CommandSpec{}, zerolog.Nop())

	err := synthesizer.Synthesize(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no synthesizer command configured")
}

func TestSynthesize_RunsCommandInDir(t *testing.T) {
	tmpDir := t.TempDir()

	synthesizer := NewExecSynthesizer(config.CommandSpec{
		Command: []string{"touch", "synthesized"},
		Dir:     tmpDir,
	}, zerolog.Nop())

	err := synthesizer.Synthesize(context.Background())
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(tmpDir, "synthesized"))
	assert.NoError(t, err)
}

func TestSynthesize_CommandFailure(t *testing.T) {
	synthesizer := NewExecSynthesizer(config.CommandSpec{
		Command: []string{"false"},
	}, zerolog.Nop())

	err := synthesizer.Synthesize(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "synthesis command failed")
}
