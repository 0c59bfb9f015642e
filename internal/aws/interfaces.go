/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// CloudFormationClient defines the interface for CloudFormation client operations
// This allows for easier testing with mock implementations
type CloudFormationClient interface {
	CreateChangeSet(ctx context.Context, params *cloudformation.CreateChangeSetInput, optFns ...func(*cloudformation.Options)) (*cloudformation.CreateChangeSetOutput, error)
	ExecuteChangeSet(ctx context.Context, params *cloudformation.ExecuteChangeSetInput, optFns ...func(*cloudformation.Options)) (*cloudformation.ExecuteChangeSetOutput, error)
	DescribeChangeSet(ctx context.Context, params *cloudformation.DescribeChangeSetInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeChangeSetOutput, error)
	DeleteChangeSet(ctx context.Context, params *cloudformation.DeleteChangeSetInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DeleteChangeSetOutput, error)
	DescribeStacks(ctx context.Context, params *cloudformation.DescribeStacksInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStacksOutput, error)
	DescribeStackEvents(ctx context.Context, params *cloudformation.DescribeStackEventsInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStackEventsOutput, error)
	DetectStackDrift(ctx context.Context, params *cloudformation.DetectStackDriftInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DetectStackDriftOutput, error)
	DescribeStackDriftDetectionStatus(ctx context.Context, params *cloudformation.DescribeStackDriftDetectionStatusInput, optFns ...func(*cloudformation.Options)) (*cloudformation.DescribeStackDriftDetectionStatusOutput, error)
}

// STSClient defines the interface for STS client operations
type STSClient interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Ensure that the actual AWS clients implement our interfaces
var (
	_ CloudFormationClient = (*cloudformation.Client)(nil)
	_ STSClient            = (*sts.Client)(nil)
)

// Ensure that the default implementations satisfy the operation interfaces
var (
	_ CloudFormationOperations = (*DefaultCloudFormationOperations)(nil)
	_ IdentityProvider         = (*STSIdentityProvider)(nil)
)

// CloudFormationOperations defines the control-plane operations consumed by
// the orchestrator
type CloudFormationOperations interface {
	StackExists(ctx context.Context, stackName string) (bool, error)
	ImportResources(ctx context.Context, input ImportResourcesInput) error
	StartDriftDetection(ctx context.Context, stackName string) (string, error)
	GetDriftDetectionStatus(ctx context.Context, detectionID string) (*DriftDetectionStatus, error)
	DescribeStackEvents(ctx context.Context, stackName string) ([]StackEvent, error)
	WaitForStackOperation(ctx context.Context, stackName string, startTime time.Time, eventCallback func(StackEvent)) error
}

// IdentityProvider answers "which account am I acting as"
type IdentityProvider interface {
	CurrentAccountID(ctx context.Context) (string, error)
}
