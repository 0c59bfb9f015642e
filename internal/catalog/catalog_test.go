/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/acoder2b/iamcdkapp/internal/config"
	"github.com/acoder2b/iamcdkapp/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplate(t *testing.T, dir, name string) {
	t.Helper()
	content := `{"Resources": {}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func newTestCatalog() *StackCatalog {
	return NewStackCatalog(config.NamingConvention{Prefix: "IamRoleConfigStack"}, zerolog.Nop())
}

func TestListStacks_MatchesAccountTemplates(t *testing.T) {
	tmpDir := t.TempDir()
	writeTemplate(t, tmpDir, "IamRoleConfigStack-111111111111-app.template.json")
	writeTemplate(t, tmpDir, "IamRoleConfigStack-111111111111-batch.template.json")
	writeTemplate(t, tmpDir, "IamRoleConfigStack-222222222222-app.template.json")

	cat := newTestCatalog()
	descriptors, err := cat.ListStacks(context.Background(), "111111111111", tmpDir)
	require.NoError(t, err)

	require.Len(t, descriptors, 2)
	assert.Equal(t, "IamRoleConfigStack-111111111111-app", descriptors[0].StackName)
	assert.Equal(t, "IamRoleConfigStack-111111111111-batch", descriptors[1].StackName)
	assert.Equal(t, filepath.Join(tmpDir, "IamRoleConfigStack-111111111111-app.template.json"), descriptors[0].TemplatePath)
}

func TestListStacks_SortsByStackName(t *testing.T) {
	tmpDir := t.TempDir()
	writeTemplate(t, tmpDir, "IamRoleConfigStack-111111111111-zeta.template.json")
	writeTemplate(t, tmpDir, "IamRoleConfigStack-111111111111-alpha.template.json")
	writeTemplate(t, tmpDir, "IamRoleConfigStack-111111111111-mid.template.json")

	cat := newTestCatalog()
	descriptors, err := cat.ListStacks(context.Background(), "111111111111", tmpDir)
	require.NoError(t, err)

	names := make([]string, len(descriptors))
	for i, d := range descriptors {
		names[i] = d.StackName
	}
	assert.Equal(t, []string{
		"IamRoleConfigStack-111111111111-alpha",
		"IamRoleConfigStack-111111111111-mid",
		"IamRoleConfigStack-111111111111-zeta",
	}, names)
}

func TestListStacks_IgnoresNonTemplateFiles(t *testing.T) {
	tmpDir := t.TempDir()
	writeTemplate(t, tmpDir, "IamRoleConfigStack-111111111111-app.template.json")
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "manifest.json"), []byte("{}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "IamRoleConfigStack-111111111111-app.json"), []byte("{}"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(tmpDir, "asset.abc123"), 0755))

	cat := newTestCatalog()
	descriptors, err := cat.ListStacks(context.Background(), "111111111111", tmpDir)
	require.NoError(t, err)

	require.Len(t, descriptors, 1)
	assert.Equal(t, "IamRoleConfigStack-111111111111-app", descriptors[0].StackName)
}

func TestListStacks_NoMatchesIsError(t *testing.T) {
	tmpDir := t.TempDir()
	writeTemplate(t, tmpDir, "IamRoleConfigStack-222222222222-app.template.json")

	cat := newTestCatalog()
	descriptors, err := cat.ListStacks(context.Background(), "111111111111", tmpDir)

	assert.Nil(t, descriptors)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrNoStacksFound))
}

func TestListStacks_MissingDirectoryIsError(t *testing.T) {
	cat := newTestCatalog()
	_, err := cat.ListStacks(context.Background(), "111111111111", filepath.Join(t.TempDir(), "absent"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read synthesis output directory")
}
