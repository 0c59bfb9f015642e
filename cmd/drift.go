/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// driftCmd represents the drift command
var driftCmd = &cobra.Command{
	Use:   "drift",
	Short: "Verify the account's stacks have not drifted",
	Long: `Run the drift phase only: discover the account's synthesized stacks and poll
a drift detection job per stack until every job reaches a terminal state.

Stacks must already hold their imported resources, e.g. from an earlier
'iamcdkapp import' or 'iamcdkapp run'.

A detected drift is reported but does not fail the run unless --fail-on-drift
is set; detection failures, timeouts and malformed responses always do.

Examples:
  iamcdkapp drift --skip-synth
  iamcdkapp drift --fail-on-drift --max-poll-attempts 10`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		cfg, err := loadConfig(ctx, cmd)
		if err != nil {
			return err
		}

		orchestrator, accountID, err := resolvePipeline(ctx, cmd, cfg)
		if err != nil {
			return err
		}

		runReport, err := orchestrator.RunDrift(ctx, pipelineOptions(cmd, accountID))
		if err != nil {
			return err
		}

		return printReport(cmd, runReport)
	},
}

func init() {
	rootCmd.AddCommand(driftCmd)
	addPipelineFlags(driftCmd)
	driftCmd.Flags().Bool("skip-synth", false, "reuse existing synthesized templates")
	driftCmd.Flags().Bool("fail-on-drift", false, "treat a DRIFTED verdict as a run failure")
}
