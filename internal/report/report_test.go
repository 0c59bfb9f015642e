/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package report

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/acoder2b/iamcdkapp/internal/model"
	"github.com/stretchr/testify/assert"
)

func completedJob(stackName string, verdict model.DriftVerdict) *model.DriftJob {
	job := model.NewDriftJob(stackName, "det-"+stackName)
	job.Status = model.DetectionComplete
	job.DriftResult = verdict
	return job
}

func TestRunReport_CoversEveryDiscoveredStack(t *testing.T) {
	r := NewRunReport(ModeFull, false)

	stacks := []string{"stack-a", "stack-b", "stack-c"}
	for _, stackName := range stacks {
		r.RecordStack(stackName)
	}
	r.RecordBindError("stack-b", errors.New("resource map not found"))

	outcomes := r.Outcomes()
	assert.Len(t, outcomes, 3)
	for i, outcome := range outcomes {
		assert.Equal(t, stacks[i], outcome.StackName)
	}
}

func TestRunReport_PreservesDiscoveryOrder(t *testing.T) {
	r := NewRunReport(ModeFull, false)
	r.RecordStack("zulu")
	r.RecordStack("alpha")
	r.RecordStack("mike")

	outcomes := r.Outcomes()
	assert.Equal(t, "zulu", outcomes[0].StackName)
	assert.Equal(t, "alpha", outcomes[1].StackName)
	assert.Equal(t, "mike", outcomes[2].StackName)
}

func TestRunReport_AllSucceededExitZero(t *testing.T) {
	r := NewRunReport(ModeFull, false)
	for _, stackName := range []string{"stack-a", "stack-b"} {
		r.RecordStack(stackName)
		r.RecordImport(model.ImportResult{StackName: stackName, Succeeded: true})
		r.RecordDrift(completedJob(stackName, model.DriftInSync))
	}

	assert.Equal(t, 0, r.ExitCode())
	for _, outcome := range r.Outcomes() {
		assert.True(t, r.Succeeded(outcome))
	}
}

func TestRunReport_BindErrorFailsStack(t *testing.T) {
	r := NewRunReport(ModeFull, false)
	r.RecordStack("stack-a")
	r.RecordBindError("stack-a", errors.New("resource map not found"))

	outcome := r.Outcomes()[0]
	assert.False(t, r.Succeeded(outcome))
	assert.Equal(t, "mapping failed", outcome.Summary())
	assert.Equal(t, model.DriftUnknown, outcome.DriftResult())
	assert.Equal(t, 1, r.ExitCode())
}

func TestRunReport_FailedImportHasUnknownDrift(t *testing.T) {
	r := NewRunReport(ModeFull, false)
	r.RecordStack("stack-a")
	r.RecordImport(model.ImportResult{
		StackName:   "stack-a",
		Succeeded:   false,
		ErrorDetail: "changeset failed",
	})

	outcome := r.Outcomes()[0]
	assert.False(t, r.Succeeded(outcome))
	assert.Nil(t, outcome.Drift)
	assert.Equal(t, model.DriftUnknown, outcome.DriftResult())
	assert.Equal(t, "import failed", outcome.Summary())
}

func TestRunReport_DriftedStackStillSucceedsByDefault(t *testing.T) {
	r := NewRunReport(ModeFull, false)
	r.RecordStack("stack-a")
	r.RecordImport(model.ImportResult{StackName: "stack-a", Succeeded: true})
	r.RecordDrift(completedJob("stack-a", model.DriftDrifted))

	outcome := r.Outcomes()[0]
	assert.True(t, r.Succeeded(outcome))
	assert.Equal(t, "imported, drifted", outcome.Summary())
	assert.Equal(t, 0, r.ExitCode())
}

func TestRunReport_FailOnDriftFlipsDriftedStacks(t *testing.T) {
	r := NewRunReport(ModeFull, true)
	r.RecordStack("stack-a")
	r.RecordImport(model.ImportResult{StackName: "stack-a", Succeeded: true})
	r.RecordDrift(completedJob("stack-a", model.DriftDrifted))

	assert.False(t, r.Succeeded(r.Outcomes()[0]))
	assert.Equal(t, 1, r.ExitCode())
}

func TestRunReport_TimedOutDetectionFailsStack(t *testing.T) {
	r := NewRunReport(ModeFull, false)
	r.RecordStack("stack-a")
	r.RecordImport(model.ImportResult{StackName: "stack-a", Succeeded: true})

	job := model.NewDriftJob("stack-a", "det-1")
	job.Status = model.DetectionTimedOut
	job.Attempts = 30
	r.RecordDrift(job)

	outcome := r.Outcomes()[0]
	assert.False(t, r.Succeeded(outcome))
	assert.Equal(t, "imported, drift check timed out", outcome.Summary())
}

func TestRunReport_FailedDetectionFailsStack(t *testing.T) {
	r := NewRunReport(ModeFull, false)
	r.RecordStack("stack-a")
	r.RecordImport(model.ImportResult{StackName: "stack-a", Succeeded: true})

	job := model.NewDriftJob("stack-a", "det-1")
	job.Status = model.DetectionFailed
	job.ErrorDetail = "resource unsupported"
	r.RecordDrift(job)

	outcome := r.Outcomes()[0]
	assert.False(t, r.Succeeded(outcome))
	assert.Equal(t, "imported, drift check failed", outcome.Summary())
}

func TestRunReport_ImportOnlyModeIgnoresDrift(t *testing.T) {
	r := NewRunReport(ModeImportOnly, false)
	r.RecordStack("stack-a")
	r.RecordImport(model.ImportResult{StackName: "stack-a", Succeeded: true})

	assert.True(t, r.Succeeded(r.Outcomes()[0]))
	assert.Equal(t, 0, r.ExitCode())
}

func TestRunReport_DriftOnlyModeIgnoresImport(t *testing.T) {
	r := NewRunReport(ModeDriftOnly, false)
	r.RecordStack("stack-a")
	r.RecordDrift(completedJob("stack-a", model.DriftInSync))

	assert.True(t, r.Succeeded(r.Outcomes()[0]))
	assert.Equal(t, 0, r.ExitCode())
}

func TestRunReport_MixedOutcomesExitOne(t *testing.T) {
	r := NewRunReport(ModeFull, false)

	r.RecordStack("stack-a")
	r.RecordImport(model.ImportResult{StackName: "stack-a", Succeeded: true})
	r.RecordDrift(completedJob("stack-a", model.DriftInSync))

	r.RecordStack("stack-b")
	r.RecordImport(model.ImportResult{StackName: "stack-b", Succeeded: false, ErrorDetail: "denied"})

	assert.Equal(t, 1, r.ExitCode())
}

func TestRunReport_ConcurrentDriftRecording(t *testing.T) {
	r := NewRunReport(ModeFull, false)
	count := 50
	for i := 0; i < count; i++ {
		r.RecordStack(fmt.Sprintf("stack-%02d", i))
	}

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.RecordDrift(completedJob(fmt.Sprintf("stack-%02d", i), model.DriftInSync))
		}(i)
	}
	wg.Wait()

	outcomes := r.Outcomes()
	assert.Len(t, outcomes, count)
	for _, outcome := range outcomes {
		assert.NotNil(t, outcome.Drift)
	}
}
