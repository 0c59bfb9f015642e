/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package report

import (
	"sync"

	"github.com/acoder2b/iamcdkapp/internal/model"
)

// Mode selects which pipeline phases a report holds to account
type Mode int

const (
	// ModeFull requires both a successful import and a completed drift
	// detection per stack
	ModeFull Mode = iota
	// ModeImportOnly requires only the import phase
	ModeImportOnly
	// ModeDriftOnly requires only the drift phase
	ModeDriftOnly
)

// StackOutcome is the per-stack record in a run report
type StackOutcome struct {
	StackName string

	// BindError is set when the stack's pipeline stopped before import,
	// e.g. its resource map never appeared
	BindError string

	Import *model.ImportResult
	Drift  *model.DriftJob
}

// DriftResult returns the stack's sync verdict, UNKNOWN when none was reached
func (o *StackOutcome) DriftResult() model.DriftVerdict {
	if o.Drift == nil {
		return model.DriftUnknown
	}
	return o.Drift.DriftResult
}

// Summary describes the stack's terminal state in operator terms, so "failed
// to import" can be told apart from "imported but drifted" at a glance
func (o *StackOutcome) Summary() string {
	if o.BindError != "" {
		return "mapping failed"
	}
	if o.Import != nil && !o.Import.Succeeded {
		return "import failed"
	}

	prefix := ""
	if o.Import != nil && o.Import.Succeeded {
		prefix = "imported, "
	}

	if o.Drift == nil {
		if prefix != "" {
			return "imported, drift check skipped"
		}
		return "no outcome recorded"
	}

	switch o.Drift.Status {
	case model.DetectionComplete:
		switch o.Drift.DriftResult {
		case model.DriftDrifted:
			return prefix + "drifted"
		case model.DriftInSync:
			return prefix + "in sync"
		default:
			return prefix + "drift unknown"
		}
	case model.DetectionFailed:
		return prefix + "drift check failed"
	case model.DetectionTimedOut:
		return prefix + "drift check timed out"
	default:
		return prefix + "drift check errored"
	}
}

// RunReport aggregates per-stack outcomes for one run. Drift jobs complete on
// concurrent goroutines, so all mutation happens under a lock.
type RunReport struct {
	mu          sync.Mutex
	outcomes    map[string]*StackOutcome
	order       []string
	mode        Mode
	failOnDrift bool
}

// NewRunReport creates an empty report
func NewRunReport(mode Mode, failOnDrift bool) *RunReport {
	return &RunReport{
		outcomes:    make(map[string]*StackOutcome),
		mode:        mode,
		failOnDrift: failOnDrift,
	}
}

// RecordStack registers a discovered stack so the report covers it even when
// its pipeline fails at the first step
func (r *RunReport) RecordStack(stackName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcome(stackName)
}

// RecordBindError records a pre-import pipeline failure for a stack
func (r *RunReport) RecordBindError(stackName string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcome(stackName).BindError = err.Error()
}

// RecordImport records a stack's import result
func (r *RunReport) RecordImport(result model.ImportResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	outcome := r.outcome(result.StackName)
	outcome.Import = &result
}

// RecordDrift records a stack's terminal drift job
func (r *RunReport) RecordDrift(job *model.DriftJob) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcome(job.StackName).Drift = job
}

// outcome returns the record for a stack, creating it on first use.
// Callers must hold the lock.
func (r *RunReport) outcome(stackName string) *StackOutcome {
	if existing, ok := r.outcomes[stackName]; ok {
		return existing
	}
	created := &StackOutcome{StackName: stackName}
	r.outcomes[stackName] = created
	r.order = append(r.order, stackName)
	return created
}

// Outcomes returns all per-stack records in discovery order
func (r *RunReport) Outcomes() []*StackOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]*StackOutcome, 0, len(r.order))
	for _, stackName := range r.order {
		result = append(result, r.outcomes[stackName])
	}
	return result
}

// Succeeded reports whether a stack's pipeline succeeded under this report's
// mode and drift policy
func (r *RunReport) Succeeded(o *StackOutcome) bool {
	if o.BindError != "" {
		return false
	}
	if r.mode != ModeDriftOnly {
		if o.Import == nil || !o.Import.Succeeded {
			return false
		}
	}
	if r.mode != ModeImportOnly {
		if o.Drift == nil || o.Drift.Status != model.DetectionComplete {
			return false
		}
	}
	if r.failOnDrift && o.Drift != nil && o.Drift.DriftResult == model.DriftDrifted {
		return false
	}
	return true
}

// ExitCode reduces the report to the run's completion signal: 0 only when
// every stack succeeded under the report's mode; 1 otherwise
func (r *RunReport) ExitCode() int {
	for _, outcome := range r.Outcomes() {
		if !r.Succeeded(outcome) {
			return 1
		}
	}
	return 0
}
