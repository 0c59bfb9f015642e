/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package report

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/acoder2b/iamcdkapp/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRunReport_ListsEveryStack(t *testing.T) {
	r := NewRunReport(ModeFull, false)
	r.RecordStack("stack-a")
	r.RecordImport(model.ImportResult{StackName: "stack-a", Succeeded: true})
	r.RecordDrift(completedJob("stack-a", model.DriftInSync))

	r.RecordStack("stack-b")
	r.RecordBindError("stack-b", errors.New("resource map not found"))

	output := FormatRunReport(r, NewStyles(false))

	assert.Contains(t, output, "Run Summary")
	assert.Contains(t, output, "stack-a: imported, in sync")
	assert.Contains(t, output, "stack-b: mapping failed")
	assert.Contains(t, output, "resource map not found")
	assert.Contains(t, output, "Run finished with failures")
}

func TestFormatRunReport_SuccessFooter(t *testing.T) {
	r := NewRunReport(ModeFull, false)
	r.RecordStack("stack-a")
	r.RecordImport(model.ImportResult{StackName: "stack-a", Succeeded: true})
	r.RecordDrift(completedJob("stack-a", model.DriftInSync))

	output := FormatRunReport(r, NewStyles(false))

	assert.Contains(t, output, "All stacks imported and reconciled")
	assert.NotContains(t, output, "failures")
}

func TestFormatRunReport_ShowsImportErrorDetail(t *testing.T) {
	r := NewRunReport(ModeFull, false)
	r.RecordStack("stack-a")
	r.RecordImport(model.ImportResult{
		StackName:   "stack-a",
		Succeeded:   false,
		ErrorDetail: "changeset creation failed: AlreadyExistsException",
	})

	output := FormatRunReport(r, NewStyles(false))

	assert.Contains(t, output, "stack-a: import failed")
	assert.Contains(t, output, "AlreadyExistsException")
}

func TestFormatJSON_RoundTrips(t *testing.T) {
	r := NewRunReport(ModeFull, false)
	r.RecordStack("stack-a")
	r.RecordImport(model.ImportResult{StackName: "stack-a", Succeeded: true})
	drifted := completedJob("stack-a", model.DriftDrifted)
	drifted.Attempts = 4
	r.RecordDrift(drifted)

	r.RecordStack("stack-b")
	r.RecordImport(model.ImportResult{StackName: "stack-b", Succeeded: false, ErrorDetail: "denied"})

	output, err := FormatJSON(r)
	require.NoError(t, err)

	var doc struct {
		Stacks []struct {
			StackName       string `json:"stackName"`
			Summary         string `json:"summary"`
			ImportSucceeded bool   `json:"importSucceeded"`
			DriftStatus     string `json:"driftStatus"`
			DriftResult     string `json:"driftResult"`
			Attempts        int    `json:"attempts"`
			Error           string `json:"error"`
		} `json:"stacks"`
		ExitCode int `json:"exitCode"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &doc))

	require.Len(t, doc.Stacks, 2)
	assert.Equal(t, "stack-a", doc.Stacks[0].StackName)
	assert.True(t, doc.Stacks[0].ImportSucceeded)
	assert.Equal(t, "DETECTION_COMPLETE", doc.Stacks[0].DriftStatus)
	assert.Equal(t, "DRIFTED", doc.Stacks[0].DriftResult)
	assert.Equal(t, 4, doc.Stacks[0].Attempts)

	assert.Equal(t, "stack-b", doc.Stacks[1].StackName)
	assert.False(t, doc.Stacks[1].ImportSucceeded)
	assert.Equal(t, "UNKNOWN", doc.Stacks[1].DriftResult)
	assert.Equal(t, "denied", doc.Stacks[1].Error)
	assert.Equal(t, 1, doc.ExitCode)
}

func TestFormatJSON_EmptyReport(t *testing.T) {
	output, err := FormatJSON(NewRunReport(ModeFull, false))
	require.NoError(t, err)

	assert.Contains(t, output, `"stacks": []`)
	assert.Contains(t, output, `"exitCode": 0`)
}
