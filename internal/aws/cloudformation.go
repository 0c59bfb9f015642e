/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
)

// StackStatus represents the status of a CloudFormation stack
type StackStatus string

const (
	StackStatusCreateComplete           StackStatus = "CREATE_COMPLETE"
	StackStatusUpdateComplete           StackStatus = "UPDATE_COMPLETE"
	StackStatusImportInProgress         StackStatus = "IMPORT_IN_PROGRESS"
	StackStatusImportComplete           StackStatus = "IMPORT_COMPLETE"
	StackStatusImportRollbackInProgress StackStatus = "IMPORT_ROLLBACK_IN_PROGRESS"
	StackStatusImportRollbackComplete   StackStatus = "IMPORT_ROLLBACK_COMPLETE"
	StackStatusImportRollbackFailed     StackStatus = "IMPORT_ROLLBACK_FAILED"
	StackStatusRollbackComplete         StackStatus = "ROLLBACK_COMPLETE"
	StackStatusRollbackFailed           StackStatus = "ROLLBACK_FAILED"
)

// IsTerminal reports whether the stack has finished its current operation
func (s StackStatus) IsTerminal() bool {
	return !strings.HasSuffix(string(s), "_IN_PROGRESS")
}

// IsSuccess reports whether a terminal status indicates the operation succeeded
func (s StackStatus) IsSuccess() bool {
	return strings.HasSuffix(string(s), "_COMPLETE") &&
		!strings.Contains(string(s), "ROLLBACK")
}

// StackEvent represents a single CloudFormation stack event
type StackEvent struct {
	EventID              string
	StackName            string
	LogicalResourceID    string
	ResourceType         string
	Timestamp            time.Time
	ResourceStatus       string
	ResourceStatusReason string
}

// ResourceImport describes one resource to adopt into a stack's managed state
type ResourceImport struct {
	LogicalID    string
	ResourceType string
	Identifier   map[string]string
}

// ImportResourcesInput contains parameters for importing resources into a stack
type ImportResourcesInput struct {
	StackName    string
	TemplateBody string
	Resources    []ResourceImport

	// EventCallback, when set, receives stack events emitted while the
	// import executes
	EventCallback func(StackEvent)
}

// DriftDetectionStatus is the typed view of a drift-detection status response.
// Fields mirror the control plane output; callers must treat empty required
// fields as malformed rather than as defaults.
type DriftDetectionStatus struct {
	DetectionStatus       string
	DetectionStatusReason string
	StackDriftStatus      string
}

// DefaultCloudFormationOperations provides CloudFormation-specific operations
type DefaultCloudFormationOperations struct {
	client       CloudFormationClient
	waitInterval time.Duration

	// maxWaitAttempts bounds the changeset and stack operation polling
	// loops; a wedged operation surfaces as an error instead of hanging
	// the run
	maxWaitAttempts int
}

// NewCloudFormationOperationsWithClient creates operations with a custom client (for testing)
func NewCloudFormationOperationsWithClient(client CloudFormationClient) *DefaultCloudFormationOperations {
	return &DefaultCloudFormationOperations{
		client:          client,
		waitInterval:    5 * time.Second,
		maxWaitAttempts: 120,
	}
}

// StackExists checks if a stack exists
func (cf *DefaultCloudFormationOperations) StackExists(ctx context.Context, stackName string) (bool, error) {
	_, err := cf.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})

	if err != nil {
		if isStackNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check if stack exists: %w", err)
	}

	return true, nil
}

// isStackNotFoundError checks if the error indicates the stack doesn't exist
func isStackNotFoundError(err error) bool {
	return err != nil && (strings.Contains(err.Error(), "does not exist") ||
		strings.Contains(err.Error(), "ValidationError"))
}

// ImportResources adopts pre-existing resources into a stack via an
// IMPORT-type changeset: create the changeset, wait for it to become
// executable, execute it, then wait for the stack to reach a terminal status.
func (cf *DefaultCloudFormationOperations) ImportResources(ctx context.Context, input ImportResourcesInput) error {
	resourcesToImport := make([]types.ResourceToImport, len(input.Resources))
	for i, r := range input.Resources {
		resourcesToImport[i] = types.ResourceToImport{
			LogicalResourceId:  aws.String(r.LogicalID),
			ResourceType:       aws.String(r.ResourceType),
			ResourceIdentifier: r.Identifier,
		}
	}

	changeSetName := fmt.Sprintf("import-%s-%d", input.StackName, time.Now().Unix())

	createOutput, err := cf.client.CreateChangeSet(ctx, &cloudformation.CreateChangeSetInput{
		StackName:         aws.String(input.StackName),
		ChangeSetName:     aws.String(changeSetName),
		ChangeSetType:     types.ChangeSetTypeImport,
		TemplateBody:      aws.String(input.TemplateBody),
		ResourcesToImport: resourcesToImport,
		Capabilities:      []types.Capability{types.CapabilityCapabilityNamedIam},
	})
	if err != nil {
		return fmt.Errorf("failed to create import changeset for stack %s: %w", input.StackName, err)
	}

	changeSetID := aws.ToString(createOutput.Id)

	if err := cf.waitForChangeSet(ctx, changeSetID); err != nil {
		// Leave nothing behind when the changeset never became executable
		_, _ = cf.client.DeleteChangeSet(ctx, &cloudformation.DeleteChangeSetInput{
			ChangeSetName: aws.String(changeSetID),
		})
		return fmt.Errorf("import changeset for stack %s not executable: %w", input.StackName, err)
	}

	startTime := time.Now()

	_, err = cf.client.ExecuteChangeSet(ctx, &cloudformation.ExecuteChangeSetInput{
		ChangeSetName: aws.String(changeSetID),
	})
	if err != nil {
		return fmt.Errorf("failed to execute import changeset for stack %s: %w", input.StackName, err)
	}

	return cf.WaitForStackOperation(ctx, input.StackName, startTime, input.EventCallback)
}

// waitForChangeSet polls a changeset until it is ready to execute, giving up
// after maxWaitAttempts polls
func (cf *DefaultCloudFormationOperations) waitForChangeSet(ctx context.Context, changeSetID string) error {
	for attempt := 0; attempt < cf.maxWaitAttempts; attempt++ {
		output, err := cf.client.DescribeChangeSet(ctx, &cloudformation.DescribeChangeSetInput{
			ChangeSetName: aws.String(changeSetID),
		})
		if err != nil {
			return fmt.Errorf("failed to describe changeset: %w", err)
		}

		switch output.Status {
		case types.ChangeSetStatusCreateComplete:
			return nil
		case types.ChangeSetStatusFailed:
			return fmt.Errorf("changeset creation failed: %s", aws.ToString(output.StatusReason))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cf.waitInterval):
		}
	}

	return fmt.Errorf("changeset still not executable after %d polls", cf.maxWaitAttempts)
}

// StartDriftDetection kicks off an asynchronous drift-detection job and
// returns the detection ID handle
func (cf *DefaultCloudFormationOperations) StartDriftDetection(ctx context.Context, stackName string) (string, error) {
	output, err := cf.client.DetectStackDrift(ctx, &cloudformation.DetectStackDriftInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return "", fmt.Errorf("failed to start drift detection for stack %s: %w", stackName, err)
	}

	detectionID := aws.ToString(output.StackDriftDetectionId)
	if detectionID == "" {
		return "", fmt.Errorf("drift detection response for stack %s carried no detection id", stackName)
	}

	return detectionID, nil
}

// GetDriftDetectionStatus queries the current status of a drift-detection job
func (cf *DefaultCloudFormationOperations) GetDriftDetectionStatus(ctx context.Context, detectionID string) (*DriftDetectionStatus, error) {
	output, err := cf.client.DescribeStackDriftDetectionStatus(ctx, &cloudformation.DescribeStackDriftDetectionStatusInput{
		StackDriftDetectionId: aws.String(detectionID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe drift detection %s: %w", detectionID, err)
	}

	return &DriftDetectionStatus{
		DetectionStatus:       string(output.DetectionStatus),
		DetectionStatusReason: aws.ToString(output.DetectionStatusReason),
		StackDriftStatus:      string(output.StackDriftStatus),
	}, nil
}

// DescribeStackEvents returns recent events for a stack, oldest first
func (cf *DefaultCloudFormationOperations) DescribeStackEvents(ctx context.Context, stackName string) ([]StackEvent, error) {
	output, err := cf.client.DescribeStackEvents(ctx, &cloudformation.DescribeStackEventsInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe events for stack %s: %w", stackName, err)
	}

	events := make([]StackEvent, 0, len(output.StackEvents))
	// The API returns newest first; reverse into chronological order
	for i := len(output.StackEvents) - 1; i >= 0; i-- {
		e := output.StackEvents[i]
		event := StackEvent{
			EventID:              aws.ToString(e.EventId),
			StackName:            aws.ToString(e.StackName),
			LogicalResourceID:    aws.ToString(e.LogicalResourceId),
			ResourceType:         aws.ToString(e.ResourceType),
			ResourceStatus:       string(e.ResourceStatus),
			ResourceStatusReason: aws.ToString(e.ResourceStatusReason),
		}
		if e.Timestamp != nil {
			event.Timestamp = *e.Timestamp
		}
		events = append(events, event)
	}

	return events, nil
}

// WaitForStackOperation polls a stack until its current operation reaches a
// terminal status, emitting events newer than startTime through eventCallback.
// A stack still in progress after maxWaitAttempts polls is an error.
func (cf *DefaultCloudFormationOperations) WaitForStackOperation(ctx context.Context, stackName string, startTime time.Time, eventCallback func(StackEvent)) error {
	seen := make(map[string]bool)

	for attempt := 0; attempt < cf.maxWaitAttempts; attempt++ {
		if eventCallback != nil {
			events, err := cf.DescribeStackEvents(ctx, stackName)
			if err == nil {
				for _, event := range events {
					if event.Timestamp.Before(startTime) || seen[event.EventID] {
						continue
					}
					seen[event.EventID] = true
					eventCallback(event)
				}
			}
		}

		output, err := cf.client.DescribeStacks(ctx, &cloudformation.DescribeStacksInput{
			StackName: aws.String(stackName),
		})
		if err != nil {
			return fmt.Errorf("failed to describe stack %s: %w", stackName, err)
		}
		if len(output.Stacks) == 0 {
			return fmt.Errorf("stack %s not found", stackName)
		}

		status := StackStatus(output.Stacks[0].StackStatus)
		if status.IsTerminal() {
			if !status.IsSuccess() {
				reason := aws.ToString(output.Stacks[0].StackStatusReason)
				if reason != "" {
					return fmt.Errorf("stack %s operation ended in %s: %s", stackName, status, reason)
				}
				return fmt.Errorf("stack %s operation ended in %s", stackName, status)
			}
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cf.waitInterval):
		}
	}

	return fmt.Errorf("stack %s operation still in progress after %d polls", stackName, cf.maxWaitAttempts)
}
