/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/acoder2b/iamcdkapp/internal/aws"
	"github.com/acoder2b/iamcdkapp/internal/catalog"
	"github.com/acoder2b/iamcdkapp/internal/config"
	"github.com/acoder2b/iamcdkapp/internal/config/file"
	"github.com/acoder2b/iamcdkapp/internal/drift"
	"github.com/acoder2b/iamcdkapp/internal/importer"
	"github.com/acoder2b/iamcdkapp/internal/mapping"
	"github.com/acoder2b/iamcdkapp/internal/orchestrate"
	"github.com/acoder2b/iamcdkapp/internal/report"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// stackOrchestrator can be injected for testing
	stackOrchestrator orchestrate.Runner
)

// SetOrchestrator allows injection of an orchestrator (for testing)
func SetOrchestrator(r orchestrate.Runner) {
	stackOrchestrator = r
}

// newLogger builds the operational logger shared by all components
func newLogger(cmd *cobra.Command) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stderr).With().Timestamp().Logger().Level(level)
}

// loadConfig reads the configuration file and applies flag overrides
func loadConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	configFile, _ := cmd.Flags().GetString("config")
	provider := file.NewProvider(configFile)

	if err := provider.Validate(); err != nil {
		return nil, err
	}

	cfg, err := provider.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}

	if region, _ := cmd.Flags().GetString("region"); region != "" {
		cfg.Region = region
	}
	if cmd.Flags().Changed("poll-interval") {
		interval, _ := cmd.Flags().GetDuration("poll-interval")
		cfg.Poll.Interval = interval
	}
	if cmd.Flags().Changed("max-poll-attempts") {
		attempts, _ := cmd.Flags().GetInt("max-poll-attempts")
		if attempts <= 0 {
			return nil, fmt.Errorf("max-poll-attempts must be positive, polling must stay bounded")
		}
		cfg.Poll.MaxAttempts = attempts
	}
	if cmd.Flags().Changed("max-concurrent-polls") {
		cfg.Poll.MaxConcurrent, _ = cmd.Flags().GetInt("max-concurrent-polls")
	}

	return cfg, nil
}

// resolvePipeline returns the orchestrator and the resolved account ID,
// building the AWS-backed pipeline unless one was injected
func resolvePipeline(ctx context.Context, cmd *cobra.Command, cfg *config.Config) (orchestrate.Runner, string, error) {
	accountID, _ := cmd.Flags().GetString("account-id")

	if stackOrchestrator != nil {
		return stackOrchestrator, accountID, nil
	}

	profile, _ := cmd.Flags().GetString("profile")

	client, err := aws.NewDefaultClient(ctx, aws.Config{
		Region:  cfg.Region,
		Profile: profile,
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to create AWS client: %w", err)
	}

	if accountID == "" {
		accountID, err = client.NewIdentityProvider().CurrentAccountID(ctx)
		if err != nil {
			return nil, "", fmt.Errorf("failed to discover account id: %w", err)
		}
	}

	roleARN, _ := cmd.Flags().GetString("role-arn")
	if roleARN == "" {
		roleARN = cfg.RoleARN(accountID)
	}
	if roleARN != "" {
		client, err = aws.NewDefaultClient(ctx, aws.Config{
			Region:  cfg.Region,
			Profile: profile,
			RoleARN: roleARN,
		})
		if err != nil {
			return nil, "", fmt.Errorf("failed to create AWS client for role %s: %w", roleARN, err)
		}
	}

	logger := newLogger(cmd)
	cfnOps := client.NewCloudFormationOperations()

	var synthesizer catalog.Synthesizer
	if len(cfg.Synth.Command) > 0 {
		synthesizer = catalog.NewExecSynthesizer(cfg.Synth, logger)
	}

	orchestrator := orchestrate.NewOrchestrator(
		synthesizer,
		catalog.NewStackCatalog(cfg.Naming, logger),
		mapping.NewResourceMapBinder(mapping.NewExecGenerator(cfg.Mapping, logger), cfg.Mapping.OutputDir, logger),
		importer.NewStackImporter(cfnOps, logger),
		drift.NewDriftMonitor(cfnOps, cfg.Poll, logger),
		logger,
	)

	return orchestrator, accountID, nil
}

// addPipelineFlags registers the flags shared by run, import and drift
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().String("account-id", "", "target AWS account ID (default: auto-discovered via STS)")
	cmd.Flags().String("search-root", file.DefaultSynthOutputDir, "directory holding synthesized stack templates")
	cmd.Flags().String("role-arn", "", "execution role to assume (overrides config)")
	cmd.Flags().Duration("poll-interval", file.DefaultPollInterval, "delay between drift detection polls")
	cmd.Flags().Int("max-poll-attempts", file.DefaultMaxPollAttempts, "maximum polls per drift detection job")
	cmd.Flags().Int("max-concurrent-polls", 0, "cap on concurrent drift polls (0 = one per stack)")
	cmd.Flags().String("output", "text", "output format: text or json")
}

// printReport renders the run report in the requested format and converts a
// failing exit code into errRunFailed
func printReport(cmd *cobra.Command, r *report.RunReport) error {
	format, _ := cmd.Flags().GetString("output")

	switch format {
	case "json":
		rendered, err := report.FormatJSON(r)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
	case "text":
		fmt.Print(report.FormatRunReport(r, report.NewStyles(true)))
	default:
		return fmt.Errorf("unknown output format %q", format)
	}

	if r.ExitCode() != 0 {
		return errRunFailed
	}
	return nil
}

// pipelineOptions assembles orchestrator options from flags
func pipelineOptions(cmd *cobra.Command, accountID string) orchestrate.Options {
	searchRoot, _ := cmd.Flags().GetString("search-root")
	skipSynth, _ := cmd.Flags().GetBool("skip-synth")
	failOnDrift, _ := cmd.Flags().GetBool("fail-on-drift")

	return orchestrate.Options{
		AccountID:   accountID,
		SearchRoot:  searchRoot,
		SkipSynth:   skipSynth,
		FailOnDrift: failOnDrift,
	}
}
