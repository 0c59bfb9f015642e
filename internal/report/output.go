/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/acoder2b/iamcdkapp/internal/model"
	"github.com/charmbracelet/lipgloss/v2"
)

// Styles contains the styles for rendering the run summary
type Styles struct {
	Header  lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Subtle  lipgloss.Style
}

// NewStyles builds the summary styles; with colour disabled every style is a
// no-op so output stays pipe-friendly
func NewStyles(useColour bool) *Styles {
	s := &Styles{}

	if useColour {
		s.Header = lipgloss.NewStyle().Bold(true)
		s.Success = lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // ANSI Green
		s.Warning = lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // ANSI Yellow
		s.Error = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))    // ANSI Red
		s.Subtle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))   // Grey
	} else {
		s.Header = lipgloss.NewStyle()
		s.Success = lipgloss.NewStyle()
		s.Warning = lipgloss.NewStyle()
		s.Error = lipgloss.NewStyle()
		s.Subtle = lipgloss.NewStyle()
	}

	return s
}

// FormatRunReport formats the run summary for terminal display
func FormatRunReport(r *RunReport, styles *Styles) string {
	var output strings.Builder

	output.WriteString(styles.Header.Render("Run Summary"))
	output.WriteString("\n")

	for _, outcome := range r.Outcomes() {
		summary := outcome.Summary()
		style := styles.Error
		switch {
		case r.Succeeded(outcome):
			if outcome.DriftResult() == model.DriftDrifted {
				style = styles.Warning
			} else {
				style = styles.Success
			}
		case outcome.DriftResult() == model.DriftDrifted:
			style = styles.Warning
		}

		output.WriteString(fmt.Sprintf("  %s: %s\n", outcome.StackName, style.Render(summary)))

		if detail := outcomeDetail(outcome); detail != "" {
			output.WriteString(fmt.Sprintf("    %s\n", styles.Subtle.Render(detail)))
		}
	}

	if r.ExitCode() == 0 {
		output.WriteString(styles.Success.Render("All stacks imported and reconciled"))
	} else {
		output.WriteString(styles.Error.Render("Run finished with failures"))
	}
	output.WriteString("\n")

	return output.String()
}

// outcomeDetail returns the error detail line for a stack, empty when clean
func outcomeDetail(outcome *StackOutcome) string {
	switch {
	case outcome.BindError != "":
		return outcome.BindError
	case outcome.Import != nil && outcome.Import.ErrorDetail != "":
		return outcome.Import.ErrorDetail
	case outcome.Drift != nil && outcome.Drift.ErrorDetail != "":
		return outcome.Drift.ErrorDetail
	}
	return ""
}

// stackOutcomeJSON is the machine-readable form of one stack's outcome
type stackOutcomeJSON struct {
	StackName       string `json:"stackName"`
	Summary         string `json:"summary"`
	ImportSucceeded bool   `json:"importSucceeded"`
	DriftStatus     string `json:"driftStatus,omitempty"`
	DriftResult     string `json:"driftResult"`
	Attempts        int    `json:"attempts,omitempty"`
	Error           string `json:"error,omitempty"`
}

// runReportJSON is the machine-readable form of a run report
type runReportJSON struct {
	Stacks   []stackOutcomeJSON `json:"stacks"`
	ExitCode int                `json:"exitCode"`
}

// FormatJSON formats the run report as indented JSON
func FormatJSON(r *RunReport) (string, error) {
	doc := runReportJSON{
		Stacks:   make([]stackOutcomeJSON, 0, len(r.Outcomes())),
		ExitCode: r.ExitCode(),
	}

	for _, outcome := range r.Outcomes() {
		entry := stackOutcomeJSON{
			StackName:       outcome.StackName,
			Summary:         outcome.Summary(),
			ImportSucceeded: outcome.Import != nil && outcome.Import.Succeeded,
			DriftResult:     string(outcome.DriftResult()),
			Error:           outcomeDetail(outcome),
		}
		if outcome.Drift != nil {
			entry.DriftStatus = string(outcome.Drift.Status)
			entry.Attempts = outcome.Drift.Attempts
		}
		doc.Stacks = append(doc.Stacks, entry)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode run report: %w", err)
	}

	return string(data), nil
}
