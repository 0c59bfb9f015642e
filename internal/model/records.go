/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

// StackDescriptor identifies one synthesized stack within a run
type StackDescriptor struct {
	StackName    string
	TemplatePath string
}

// ResourceMapBinding associates a stack with its resource-identity mapping artifact
type ResourceMapBinding struct {
	StackName string
	MapPath   string

	// Entries maps logical resource IDs to their physical resource
	// identifiers, e.g. {"AdminRole": {"RoleName": "admin-role"}}
	Entries map[string]map[string]string
}

// ImportResult is the outcome of one import operation
type ImportResult struct {
	StackName   string
	Succeeded   bool
	ErrorDetail string
}

// DetectionStatus represents the state of a drift-detection job
type DetectionStatus string

const (
	DetectionPending  DetectionStatus = "PENDING"
	DetectionComplete DetectionStatus = "DETECTION_COMPLETE"
	DetectionFailed   DetectionStatus = "DETECTION_FAILED"
	DetectionTimedOut DetectionStatus = "TIMED_OUT"
	DetectionError    DetectionStatus = "ERROR"
)

// IsTerminal reports whether no further transitions can occur from this status
func (s DetectionStatus) IsTerminal() bool {
	return s != DetectionPending
}

// DriftVerdict is the sync-status verdict accompanying a completed detection
type DriftVerdict string

const (
	DriftInSync  DriftVerdict = "IN_SYNC"
	DriftDrifted DriftVerdict = "DRIFTED"
	DriftUnknown DriftVerdict = "UNKNOWN"
)

// DriftJob tracks one asynchronous drift-detection invocation
type DriftJob struct {
	StackName   string
	DetectionID string
	Status      DetectionStatus
	DriftResult DriftVerdict
	Attempts    int

	// ErrorDetail carries the failure reason for DETECTION_FAILED and
	// ERROR terminal states
	ErrorDetail string
}

// NewDriftJob creates a pending job for a started detection
func NewDriftJob(stackName, detectionID string) *DriftJob {
	return &DriftJob{
		StackName:   stackName,
		DetectionID: detectionID,
		Status:      DetectionPending,
		DriftResult: DriftUnknown,
	}
}
