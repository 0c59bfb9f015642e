/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// errRunFailed marks a run that completed but recorded per-stack failures,
// as opposed to a setup error that stopped the run before it produced a report
var errRunFailed = errors.New("run finished with failures")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "iamcdkapp",
	Short: "Import pre-existing IAM resources into CloudFormation stacks and verify drift",
	Long: `iamcdkapp automates adopting pre-existing IAM roles and managed policies
into synthesized CloudFormation stack state, then verifies the resulting
stacks have not drifted from their declared configuration.

For each synthesized stack belonging to the target account it:

• pairs the stack with its generated resource-identity mapping
• imports the mapped resources into the stack's managed state
• starts an asynchronous drift-detection job and polls it to completion

Per-stack failures are recorded rather than aborting the run: the final
summary covers every discovered stack, so an operator can tell "failed to
import" apart from "imported but drifted" and "drift check timed out".`,

	// Execute prints the error itself; a failed run is not a usage problem
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
//
// Exit codes: 0 when every stack succeeded, 1 when the run completed with
// per-stack failures, 2 for setup errors (no stacks discovered, bad
// configuration, missing external tools).
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		if errors.Is(err, errRunFailed) {
			os.Exit(1)
		}
		os.Exit(2)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "iamcdkapp.yaml", "config file (default is iamcdkapp.yaml)")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS profile (overrides environment)")
	rootCmd.PersistentFlags().String("region", "", "AWS region (overrides config)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
