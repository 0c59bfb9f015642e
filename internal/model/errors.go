/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package model

import "errors"

var (
	// ErrNoStacksFound indicates the catalog scan matched zero stacks.
	// Fatal to the run: downstream steps assume at least one stack exists.
	ErrNoStacksFound = errors.New("no stacks found for account")

	// ErrMappingMissing indicates the resource map artifact is absent after
	// generation. Fatal to that stack's pipeline only, never retried.
	ErrMappingMissing = errors.New("resource map artifact missing")

	// ErrMalformedResponse indicates a control plane response lacked required
	// fields. Terminal for the affected drift job, never retried.
	ErrMalformedResponse = errors.New("malformed control plane response")
)
