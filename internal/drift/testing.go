/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package drift

import (
	"context"

	"github.com/acoder2b/iamcdkapp/internal/model"
	"github.com/stretchr/testify/mock"
)

// MockMonitor implements Monitor for testing
type MockMonitor struct {
	mock.Mock
}

func (m *MockMonitor) StartDetection(ctx context.Context, stackName string) *model.DriftJob {
	args := m.Called(ctx, stackName)
	return args.Get(0).(*model.DriftJob)
}

func (m *MockMonitor) PollUntilTerminal(ctx context.Context, job *model.DriftJob) *model.DriftJob {
	args := m.Called(ctx, job)
	return args.Get(0).(*model.DriftJob)
}

func (m *MockMonitor) MonitorAll(ctx context.Context, stackNames []string) []*model.DriftJob {
	args := m.Called(ctx, stackNames)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]*model.DriftJob)
}
