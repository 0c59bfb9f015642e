/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/

// Package file contains types specific to the file-based configuration
// provider. These represent the raw YAML structure before defaults are applied.
package file

// Config represents the raw YAML configuration file structure
type Config struct {
	Project  string              `yaml:"project"`
	Region   string              `yaml:"region"`
	Naming   *Naming             `yaml:"naming"`
	Synth    *Command            `yaml:"synth"`
	Mapping  *Mapping            `yaml:"mapping"`
	Poll     *Poll               `yaml:"poll"`
	Accounts map[string]*Account `yaml:"accounts"`
}

// Naming represents the stack naming convention as it appears in YAML
type Naming struct {
	Prefix string `yaml:"prefix"`
}

// Command represents an external tool invocation as it appears in YAML
type Command struct {
	Command []string `yaml:"command"`
	Dir     string   `yaml:"dir"`
}

// Mapping represents resource-map generator settings as it appears in YAML
type Mapping struct {
	Command   []string `yaml:"command"`
	OutputDir string   `yaml:"output_dir"`
}

// Poll represents drift polling policy as it appears in YAML
type Poll struct {
	Interval      string `yaml:"interval"`
	MaxAttempts   int    `yaml:"max_attempts"`
	MaxConcurrent int    `yaml:"max_concurrent"`
}

// Account represents per-account settings as it appears in YAML
type Account struct {
	RoleARN string `yaml:"role_arn"`
}
