/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/acoder2b/iamcdkapp/internal/aws"
	"github.com/acoder2b/iamcdkapp/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testTemplate = `{
  "Resources": {
    "AdminRole": {
      "Type": "AWS::IAM::Role",
      "Properties": {"RoleName": "admin-role"}
    },
    "ReadOnlyPolicy": {
      "Type": "AWS::IAM::ManagedPolicy",
      "Properties": {}
    }
  }
}`

func writeTestTemplate(t *testing.T, content string) model.StackDescriptor {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test-stack.template.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return model.StackDescriptor{StackName: "test-stack", TemplatePath: path}
}

func testBinding(entries map[string]map[string]string) *model.ResourceMapBinding {
	return &model.ResourceMapBinding{
		StackName: "test-stack",
		MapPath:   "test-stack.json",
		Entries:   entries,
	}
}

func TestImportStack_Succeeds(t *testing.T) {
	descriptor := writeTestTemplate(t, testTemplate)
	binding := testBinding(map[string]map[string]string{
		"ReadOnlyPolicy": {"PolicyArn": "arn:aws:iam::111111111111:policy/read-only"},
		"AdminRole":      {"RoleName": "admin-role"},
	})

	mockOps := &aws.MockCloudFormationOperations{}
	mockOps.On("StackExists", mock.Anything, "test-stack").Return(true, nil)
	mockOps.On("ImportResources", mock.Anything, mock.MatchedBy(func(input aws.ImportResourcesInput) bool {
		return input.StackName == "test-stack" &&
			len(input.Resources) == 2 &&
			input.Resources[0].LogicalID == "AdminRole" &&
			input.Resources[0].ResourceType == "AWS::IAM::Role" &&
			input.Resources[1].LogicalID == "ReadOnlyPolicy" &&
			input.Resources[1].ResourceType == "AWS::IAM::ManagedPolicy"
	})).Return(nil)

	imp := NewStackImporter(mockOps, zerolog.Nop())
	result := imp.ImportStack(context.Background(), descriptor, binding)

	assert.True(t, result.Succeeded)
	assert.Equal(t, "test-stack", result.StackName)
	assert.Empty(t, result.ErrorDetail)
	mockOps.AssertExpectations(t)
}

func TestImportStack_SortsResourcesByLogicalID(t *testing.T) {
	descriptor := writeTestTemplate(t, testTemplate)
	binding := testBinding(map[string]map[string]string{
		"ReadOnlyPolicy": {"PolicyArn": "arn:aws:iam::111111111111:policy/read-only"},
		"AdminRole":      {"RoleName": "admin-role"},
	})

	var captured aws.ImportResourcesInput
	mockOps := &aws.MockCloudFormationOperations{}
	mockOps.On("StackExists", mock.Anything, "test-stack").Return(false, nil)
	mockOps.On("ImportResources", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(1).(aws.ImportResourcesInput)
		}).
		Return(nil)

	imp := NewStackImporter(mockOps, zerolog.Nop())
	imp.ImportStack(context.Background(), descriptor, binding)

	require.Len(t, captured.Resources, 2)
	assert.Equal(t, "AdminRole", captured.Resources[0].LogicalID)
	assert.Equal(t, "ReadOnlyPolicy", captured.Resources[1].LogicalID)
	assert.Equal(t, map[string]string{"RoleName": "admin-role"}, captured.Resources[0].Identifier)
}

func TestImportStack_UnmatchedLogicalID(t *testing.T) {
	descriptor := writeTestTemplate(t, testTemplate)
	binding := testBinding(map[string]map[string]string{
		"MissingRole": {"RoleName": "nobody"},
	})

	mockOps := &aws.MockCloudFormationOperations{}
	imp := NewStackImporter(mockOps, zerolog.Nop())
	result := imp.ImportStack(context.Background(), descriptor, binding)

	assert.False(t, result.Succeeded)
	assert.Contains(t, result.ErrorDetail, "MissingRole")
	mockOps.AssertNotCalled(t, "ImportResources")
}

func TestImportStack_MissingTemplate(t *testing.T) {
	descriptor := model.StackDescriptor{
		StackName:    "test-stack",
		TemplatePath: filepath.Join(t.TempDir(), "absent.template.json"),
	}
	binding := testBinding(map[string]map[string]string{
		"AdminRole": {"RoleName": "admin-role"},
	})

	imp := NewStackImporter(&aws.MockCloudFormationOperations{}, zerolog.Nop())
	result := imp.ImportStack(context.Background(), descriptor, binding)

	assert.False(t, result.Succeeded)
	assert.Contains(t, result.ErrorDetail, "failed to read template")
}

func TestImportStack_MalformedTemplate(t *testing.T) {
	descriptor := writeTestTemplate(t, "not json")
	binding := testBinding(map[string]map[string]string{
		"AdminRole": {"RoleName": "admin-role"},
	})

	imp := NewStackImporter(&aws.MockCloudFormationOperations{}, zerolog.Nop())
	result := imp.ImportStack(context.Background(), descriptor, binding)

	assert.False(t, result.Succeeded)
	assert.Contains(t, result.ErrorDetail, "failed to parse template")
}

func TestImportStack_ChecksStackExistenceFirst(t *testing.T) {
	descriptor := writeTestTemplate(t, testTemplate)
	binding := testBinding(map[string]map[string]string{
		"AdminRole": {"RoleName": "admin-role"},
	})

	mockOps := &aws.MockCloudFormationOperations{}
	mockOps.On("StackExists", mock.Anything, "test-stack").
		Return(false, errors.New("AccessDenied"))

	imp := NewStackImporter(mockOps, zerolog.Nop())
	result := imp.ImportStack(context.Background(), descriptor, binding)

	assert.False(t, result.Succeeded)
	assert.Contains(t, result.ErrorDetail, "AccessDenied")
	mockOps.AssertNotCalled(t, "ImportResources")
}

func TestImportStack_WiresEventCallback(t *testing.T) {
	descriptor := writeTestTemplate(t, testTemplate)
	binding := testBinding(map[string]map[string]string{
		"AdminRole": {"RoleName": "admin-role"},
	})

	mockOps := &aws.MockCloudFormationOperations{}
	mockOps.On("StackExists", mock.Anything, "test-stack").Return(true, nil)
	mockOps.On("ImportResources", mock.Anything, mock.MatchedBy(func(input aws.ImportResourcesInput) bool {
		return input.EventCallback != nil
	})).Return(nil)

	imp := NewStackImporter(mockOps, zerolog.Nop())
	result := imp.ImportStack(context.Background(), descriptor, binding)

	assert.True(t, result.Succeeded)
	mockOps.AssertExpectations(t)
}

func TestImportStack_OperationFailureCapturedInResult(t *testing.T) {
	descriptor := writeTestTemplate(t, testTemplate)
	binding := testBinding(map[string]map[string]string{
		"AdminRole": {"RoleName": "admin-role"},
	})

	mockOps := &aws.MockCloudFormationOperations{}
	mockOps.On("StackExists", mock.Anything, "test-stack").Return(true, nil)
	mockOps.On("ImportResources", mock.Anything, mock.Anything).
		Return(errors.New("changeset failed: resource already managed"))

	imp := NewStackImporter(mockOps, zerolog.Nop())
	result := imp.ImportStack(context.Background(), descriptor, binding)

	assert.False(t, result.Succeeded)
	assert.Contains(t, result.ErrorDetail, "already managed")
}
