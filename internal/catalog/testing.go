/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package catalog

import (
	"context"

	"github.com/acoder2b/iamcdkapp/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockCatalog implements Catalog for testing
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) ListStacks(ctx context.Context, accountID, searchRoot string) ([]model.StackDescriptor, error) {
	args := m.Called(ctx, accountID, searchRoot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StackDescriptor), args.Error(1)
}

// MockSynthesizer implements Synthesizer for testing
type MockSynthesizer struct {
	mock.Mock
}

func (m *MockSynthesizer) Synthesize(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
