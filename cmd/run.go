/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Import all stacks for the account and verify drift",
	Long: `Run the full import-and-reconcile pipeline for the target account.

The pipeline synthesizes the stack templates (unless --skip-synth is given),
discovers the account's stacks, binds each stack to its resource-identity
mapping, imports the mapped resources sequentially, then polls a drift
detection job per imported stack until it completes, fails, or exceeds
--max-poll-attempts.

Imports run one stack at a time: they mutate shared stack state. Drift polls
run concurrently, since each detection job is independent once started.

A detected drift is reported but does not fail the run unless --fail-on-drift
is set.

Examples:
  iamcdkapp run                               # auto-discover account, full pipeline
  iamcdkapp run --account-id 111111111111     # explicit account
  iamcdkapp run --skip-synth --fail-on-drift  # reuse artifacts, gate on drift
  iamcdkapp run --max-poll-attempts 5 --poll-interval 30s`,
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

		runReport, err := orchestrator.Run(ctx, pipelineOptions(cmd, accountID))
		if err != nil {
			return err
		}

		return printReport(cmd, runReport)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	addPipelineFlags(runCmd)
	runCmd.Flags().Bool("skip-synth", false, "reuse existing synthesized templates")
	runCmd.Flags().Bool("fail-on-drift", false, "treat a DRIFTED verdict as a run failure")
}
