/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import pre-existing IAM resources into the account's stacks",
	Long: `Run the import phase only: discover the account's synthesized stacks, bind
each stack to its resource-identity mapping, and import the mapped resources
into stack state one stack at a time.

Use this to adopt resources without waiting on drift detection, e.g. when
splitting the pipeline across CI jobs. Follow up with 'iamcdkapp drift' to
verify the imported stacks.

Examples:
  iamcdkapp import
  iamcdkapp import --account-id 111111111111 --skip-synth`,
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

		runReport, err := orchestrator.RunImport(ctx, pipelineOptions(cmd, accountID))
		if err != nil {
			return err
		}

		return printReport(cmd, runReport)
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	addPipelineFlags(importCmd)
	importCmd.Flags().Bool("skip-synth", false, "reuse existing synthesized templates")
}
