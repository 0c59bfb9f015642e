/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package drift

import (
	"context"
	"fmt"
	"time"

	"github.com/acoder2b/iamcdkapp/internal/aws"
	"github.com/acoder2b/iamcdkapp/internal/config"
	"github.com/acoder2b/iamcdkapp/internal/model"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Detection statuses reported by the control plane
const (
	detectionStatusInProgress = "DETECTION_IN_PROGRESS"
	detectionStatusComplete   = "DETECTION_COMPLETE"
	detectionStatusFailed     = "DETECTION_FAILED"
)

// Stack drift statuses reported alongside a completed detection
const (
	driftStatusInSync  = "IN_SYNC"
	driftStatusDrifted = "DRIFTED"
)

// Monitor defines the interface for drift-detection monitoring
type Monitor interface {
	StartDetection(ctx context.Context, stackName string) *model.DriftJob
	PollUntilTerminal(ctx context.Context, job *model.DriftJob) *model.DriftJob
	MonitorAll(ctx context.Context, stackNames []string) []*model.DriftJob
}

// DriftMonitor implements Monitor against the CloudFormation control plane
type DriftMonitor struct {
	cfnOps aws.CloudFormationOperations
	policy config.PollPolicy
	logger zerolog.Logger
}

// NewDriftMonitor creates a new DriftMonitor with the given polling policy
func NewDriftMonitor(cfnOps aws.CloudFormationOperations, policy config.PollPolicy, logger zerolog.Logger) *DriftMonitor {
	return &DriftMonitor{
		cfnOps: cfnOps,
		policy: policy,
		logger: logger,
	}
}

// StartDetection kicks off a drift-detection job for one stack. A start
// failure yields a job already in the ERROR terminal state: there is no
// detection handle to poll.
func (m *DriftMonitor) StartDetection(ctx context.Context, stackName string) *model.DriftJob {
	detectionID, err := m.cfnOps.StartDriftDetection(ctx, stackName)
	if err != nil {
		m.logger.Error().Str("stack", stackName).Err(err).Msg("failed to start drift detection")
		job := model.NewDriftJob(stackName, "")
		job.Status = model.DetectionError
		job.ErrorDetail = err.Error()
		return job
	}

	m.logger.Info().
		Str("stack", stackName).
		Str("detection_id", detectionID).
		Msg("started drift detection")

	return model.NewDriftJob(stackName, detectionID)
}

// PollUntilTerminal drives a job's state machine to a terminal state:
//
//	PENDING -> DETECTION_COMPLETE | DETECTION_FAILED | TIMED_OUT | ERROR
//
// A job already terminal is returned unchanged. Each in-progress response
// counts one attempt; the loop never exceeds the policy's MaxAttempts.
func (m *DriftMonitor) PollUntilTerminal(ctx context.Context, job *model.DriftJob) *model.DriftJob {
	for !job.Status.IsTerminal() {
		status, err := m.cfnOps.GetDriftDetectionStatus(ctx, job.DetectionID)
		if err != nil {
			job.Status = model.DetectionError
			job.ErrorDetail = err.Error()
			break
		}

		switch status.DetectionStatus {
		case detectionStatusComplete:
			m.recordVerdict(job, status)

		case detectionStatusFailed:
			job.Status = model.DetectionFailed
			job.ErrorDetail = status.DetectionStatusReason

		case detectionStatusInProgress:
			job.Attempts++
			if job.Attempts >= m.policy.MaxAttempts {
				job.Status = model.DetectionTimedOut
				break
			}
			if err := m.wait(ctx); err != nil {
				job.Status = model.DetectionError
				job.ErrorDetail = err.Error()
			}

		default:
			// An unrecognized or absent detection status is a protocol
			// problem, not transient unavailability; stop polling
			job.Status = model.DetectionError
			job.ErrorDetail = fmt.Sprintf("%v: detection status %q", model.ErrMalformedResponse, status.DetectionStatus)
		}
	}

	m.logger.Info().
		Str("stack", job.StackName).
		Str("status", string(job.Status)).
		Str("drift", string(job.DriftResult)).
		Int("attempts", job.Attempts).
		Msg("drift detection finished")

	return job
}

// recordVerdict transitions a job to DETECTION_COMPLETE with its sync verdict
func (m *DriftMonitor) recordVerdict(job *model.DriftJob, status *aws.DriftDetectionStatus) {
	switch status.StackDriftStatus {
	case driftStatusInSync:
		job.Status = model.DetectionComplete
		job.DriftResult = model.DriftInSync
	case driftStatusDrifted:
		job.Status = model.DetectionComplete
		job.DriftResult = model.DriftDrifted
	case "":
		// Completion without a verdict field is malformed
		job.Status = model.DetectionError
		job.ErrorDetail = fmt.Sprintf("%v: completed detection carried no drift status", model.ErrMalformedResponse)
	default:
		job.Status = model.DetectionComplete
		job.DriftResult = model.DriftUnknown
	}
}

// wait sleeps for the poll interval, honouring cancellation
func (m *DriftMonitor) wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(m.policy.Interval):
		return nil
	}
}

// MonitorAll starts a detection per stack and polls all jobs to terminal
// states concurrently. Jobs are independent once started, so the total
// wall-clock cost is the slowest job rather than the sum. The returned slice
// preserves input order.
func (m *DriftMonitor) MonitorAll(ctx context.Context, stackNames []string) []*model.DriftJob {
	jobs := make([]*model.DriftJob, len(stackNames))
	for i, stackName := range stackNames {
		jobs[i] = m.StartDetection(ctx, stackName)
	}

	var group errgroup.Group
	if m.policy.MaxConcurrent > 0 {
		group.SetLimit(m.policy.MaxConcurrent)
	}

	for _, job := range jobs {
		group.Go(func() error {
			m.PollUntilTerminal(ctx, job)
			return nil
		})
	}

	// Polling errors surface as terminal job states, never as group errors
	_ = group.Wait()

	return jobs
}
