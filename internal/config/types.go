/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package config

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// ConfigProvider defines the interface for loading orchestrator configuration
type ConfigProvider interface {
	// LoadConfig loads and resolves the configuration
	LoadConfig(ctx context.Context) (*Config, error)

	// Validate checks the configuration for consistency and errors
	Validate() error
}

// Config represents the resolved orchestrator configuration
type Config struct {
	Project  string
	Region   string
	Naming   NamingConvention
	Synth    CommandSpec
	Mapping  MappingConfig
	Poll     PollPolicy
	Accounts map[string]*AccountConfig
}

// NamingConvention describes how synthesized stack names are formed:
// <prefix>-<accountID>-<suffix>
type NamingConvention struct {
	Prefix string
}

// Matches reports whether stackName belongs to the given account under this convention
func (n NamingConvention) Matches(stackName, accountID string) bool {
	marker := fmt.Sprintf("%s-%s-", n.Prefix, accountID)
	return strings.HasPrefix(stackName, marker) && len(stackName) > len(marker)
}

// CommandSpec describes an external tool invocation
type CommandSpec struct {
	Command []string // argv, Command[0] is the executable
	Dir     string   // working directory, empty means inherit
}

// MappingConfig describes the external resource-map generator
type MappingConfig struct {
	Command   []string // generator argv; the template path is appended
	OutputDir string   // directory where <stackName>.json artifacts appear
}

// PollPolicy bounds the drift-detection polling loops
type PollPolicy struct {
	Interval      time.Duration
	MaxAttempts   int
	MaxConcurrent int
}

// AccountConfig holds per-account execution settings
type AccountConfig struct {
	RoleARN string
}

// RoleARN returns the execution role for an account, empty when none is configured
func (c *Config) RoleARN(accountID string) string {
	if account, ok := c.Accounts[accountID]; ok {
		return account.RoleARN
	}
	return ""
}
