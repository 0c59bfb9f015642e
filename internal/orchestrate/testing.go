/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package orchestrate

import (
	"context"

	"github.com/acoder2b/iamcdkapp/internal/report"
	"github.com/stretchr/testify/mock"
)

// MockRunner implements Runner for testing
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(ctx context.Context, opts Options) (*report.RunReport, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.RunReport), args.Error(1)
}

func (m *MockRunner) RunImport(ctx context.Context, opts Options) (*report.RunReport, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.RunReport), args.Error(1)
}

func (m *MockRunner) RunDrift(ctx context.Context, opts Options) (*report.RunReport, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.RunReport), args.Error(1)
}
