/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package orchestrate

import (
	"context"
	"fmt"

	"github.com/acoder2b/iamcdkapp/internal/catalog"
	"github.com/acoder2b/iamcdkapp/internal/drift"
	"github.com/acoder2b/iamcdkapp/internal/importer"
	"github.com/acoder2b/iamcdkapp/internal/mapping"
	"github.com/acoder2b/iamcdkapp/internal/model"
	"github.com/acoder2b/iamcdkapp/internal/report"
	"github.com/rs/zerolog"
)

// Options controls one orchestrator run
type Options struct {
	AccountID   string
	SearchRoot  string
	SkipSynth   bool
	FailOnDrift bool
}

// Runner defines the interface for executing orchestrator runs
type Runner interface {
	Run(ctx context.Context, opts Options) (*report.RunReport, error)
	RunImport(ctx context.Context, opts Options) (*report.RunReport, error)
	RunDrift(ctx context.Context, opts Options) (*report.RunReport, error)
}

// Ensure Orchestrator satisfies the Runner interface
var _ Runner = (*Orchestrator)(nil)

// Orchestrator wires the import-and-reconcile pipeline:
// catalog -> binder -> importer -> drift monitor -> report.
// Per-stack failures become recorded outcomes; only discovery and setup
// failures propagate as errors.
type Orchestrator struct {
	synthesizer catalog.Synthesizer
	catalog     catalog.Catalog
	binder      mapping.Binder
	importer    importer.Importer
	monitor     drift.Monitor
	logger      zerolog.Logger
}

// NewOrchestrator creates an orchestrator over the given collaborators.
// synthesizer may be nil when no synthesis command is configured.
func NewOrchestrator(synthesizer catalog.Synthesizer, cat catalog.Catalog, binder mapping.Binder, imp importer.Importer, monitor drift.Monitor, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		synthesizer: synthesizer,
		catalog:     cat,
		binder:      binder,
		importer:    imp,
		monitor:     monitor,
		logger:      logger,
	}
}

// Run executes the full pipeline: synthesize, discover, bind and import each
// stack sequentially, then drift-check all imported stacks concurrently
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*report.RunReport, error) {
	descriptors, err := o.discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	r := report.NewRunReport(report.ModeFull, opts.FailOnDrift)
	imported := o.importPhase(ctx, descriptors, r)
	o.driftPhase(ctx, imported, r)

	return r, nil
}

// RunImport executes discovery, binding and import only
func (o *Orchestrator) RunImport(ctx context.Context, opts Options) (*report.RunReport, error) {
	descriptors, err := o.discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	r := report.NewRunReport(report.ModeImportOnly, false)
	o.importPhase(ctx, descriptors, r)

	return r, nil
}

// RunDrift executes discovery and drift detection only, for stacks that were
// imported in an earlier run
func (o *Orchestrator) RunDrift(ctx context.Context, opts Options) (*report.RunReport, error) {
	descriptors, err := o.discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	r := report.NewRunReport(report.ModeDriftOnly, opts.FailOnDrift)
	stackNames := make([]string, len(descriptors))
	for i, descriptor := range descriptors {
		r.RecordStack(descriptor.StackName)
		stackNames[i] = descriptor.StackName
	}
	o.driftPhase(ctx, stackNames, r)

	return r, nil
}

// discover synthesizes when required and lists the account's stacks
func (o *Orchestrator) discover(ctx context.Context, opts Options) ([]model.StackDescriptor, error) {
	if !opts.SkipSynth && o.synthesizer != nil {
		if err := o.synthesizer.Synthesize(ctx); err != nil {
			return nil, fmt.Errorf("synthesis failed: %w", err)
		}
	}

	descriptors, err := o.catalog.ListStacks(ctx, opts.AccountID, opts.SearchRoot)
	if err != nil {
		return nil, err
	}

	return descriptors, nil
}

// importPhase binds and imports each stack strictly sequentially, recording
// every outcome, and returns the names of successfully imported stacks
func (o *Orchestrator) importPhase(ctx context.Context, descriptors []model.StackDescriptor, r *report.RunReport) []string {
	var imported []string

	for _, descriptor := range descriptors {
		r.RecordStack(descriptor.StackName)

		binding, err := o.binder.Bind(ctx, descriptor)
		if err != nil {
			o.logger.Error().Str("stack", descriptor.StackName).Err(err).Msg("binding failed")
			r.RecordBindError(descriptor.StackName, err)
			continue
		}

		fmt.Printf("Importing stack %s (%d resources)...\n", descriptor.StackName, len(binding.Entries))

		result := o.importer.ImportStack(ctx, descriptor, binding)
		r.RecordImport(result)

		if result.Succeeded {
			fmt.Printf("Successfully imported stack %s\n", descriptor.StackName)
			imported = append(imported, descriptor.StackName)
		} else {
			fmt.Printf("Import of stack %s failed: %s\n", descriptor.StackName, result.ErrorDetail)
		}
	}

	return imported
}

// driftPhase runs drift detection for the given stacks and records every
// terminal job. A failed import must not reach here: a stack without managed
// state has nothing meaningful to compare.
func (o *Orchestrator) driftPhase(ctx context.Context, stackNames []string, r *report.RunReport) {
	if len(stackNames) == 0 {
		return
	}

	fmt.Printf("Checking drift on %d stack(s)...\n", len(stackNames))

	for _, job := range o.monitor.MonitorAll(ctx, stackNames) {
		r.RecordDrift(job)
	}
}
