/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package importer

import (
	"context"

	"github.com/acoder2b/iamcdkapp/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockImporter implements Importer for testing
type MockImporter struct {
	mock.Mock
}

func (m *MockImporter) ImportStack(ctx context.Context, descriptor model.StackDescriptor, binding *model.ResourceMapBinding) model.ImportResult {
	args := m.Called(ctx, descriptor, binding)
	return args.Get(0).(model.ImportResult)
}
