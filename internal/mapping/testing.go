/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package mapping

import (
	"context"

	"github.com/acoder2b/iamcdkapp/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockBinder implements Binder for testing
type MockBinder struct {
	mock.Mock
}

func (m *MockBinder) Bind(ctx context.Context, descriptor model.StackDescriptor) (*model.ResourceMapBinding, error) {
	args := m.Called(ctx, descriptor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ResourceMapBinding), args.Error(1)
}

// MockGenerator implements Generator for testing
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, templatePath string) error {
	args := m.Called(ctx, templatePath)
	return args.Error(0)
}
