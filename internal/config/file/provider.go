/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package file

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/acoder2b/iamcdkapp/internal/config"
	"gopkg.in/yaml.v3"
)

// Defaults applied when the configuration file omits a value
const (
	DefaultStackPrefix     = "IamRoleConfigStack"
	DefaultSynthOutputDir  = "cdk.out"
	DefaultPollInterval    = 10 * time.Second
	DefaultMaxPollAttempts = 30
)

// Provider implements config.ConfigProvider by reading from a YAML file
type Provider struct {
	filename  string
	rawConfig *Config
}

// NewProvider creates a new file-based ConfigProvider for the given filename
func NewProvider(filename string) *Provider {
	return &Provider{
		filename: filename,
	}
}

// LoadConfig loads the configuration file and applies defaults
func (fp *Provider) LoadConfig(ctx context.Context) (*config.Config, error) {
	if err := fp.ensureLoaded(); err != nil {
		return nil, err
	}

	cfg := &config.Config{
		Project: fp.rawConfig.Project,
		Region:  fp.rawConfig.Region,
		Naming: config.NamingConvention{
			Prefix: DefaultStackPrefix,
		},
		Poll: config.PollPolicy{
			Interval:    DefaultPollInterval,
			MaxAttempts: DefaultMaxPollAttempts,
		},
		Accounts: make(map[string]*config.AccountConfig),
	}

	if fp.rawConfig.Naming != nil && fp.rawConfig.Naming.Prefix != "" {
		cfg.Naming.Prefix = fp.rawConfig.Naming.Prefix
	}

	if fp.rawConfig.Synth != nil {
		cfg.Synth = config.CommandSpec{
			Command: fp.rawConfig.Synth.Command,
			Dir:     fp.rawConfig.Synth.Dir,
		}
	}

	cfg.Mapping = config.MappingConfig{
		OutputDir: ".",
	}
	if fp.rawConfig.Mapping != nil {
		cfg.Mapping.Command = fp.rawConfig.Mapping.Command
		if fp.rawConfig.Mapping.OutputDir != "" {
			cfg.Mapping.OutputDir = fp.rawConfig.Mapping.OutputDir
		}
	}

	if fp.rawConfig.Poll != nil {
		if fp.rawConfig.Poll.Interval != "" {
			interval, err := time.ParseDuration(fp.rawConfig.Poll.Interval)
			if err != nil {
				return nil, fmt.Errorf("invalid poll interval %q: %w", fp.rawConfig.Poll.Interval, err)
			}
			cfg.Poll.Interval = interval
		}
		if fp.rawConfig.Poll.MaxAttempts > 0 {
			cfg.Poll.MaxAttempts = fp.rawConfig.Poll.MaxAttempts
		}
		cfg.Poll.MaxConcurrent = fp.rawConfig.Poll.MaxConcurrent
	}

	for accountID, account := range fp.rawConfig.Accounts {
		cfg.Accounts[accountID] = &config.AccountConfig{
			RoleARN: account.RoleARN,
		}
	}

	return cfg, nil
}

// Validate checks the configuration file for consistency
func (fp *Provider) Validate() error {
	if err := fp.ensureLoaded(); err != nil {
		return err
	}

	if fp.rawConfig.Poll != nil && fp.rawConfig.Poll.MaxAttempts < 0 {
		return fmt.Errorf("poll.max_attempts must not be negative")
	}

	if fp.rawConfig.Poll != nil && fp.rawConfig.Poll.Interval != "" {
		if _, err := time.ParseDuration(fp.rawConfig.Poll.Interval); err != nil {
			return fmt.Errorf("invalid poll interval %q: %w", fp.rawConfig.Poll.Interval, err)
		}
	}

	for accountID := range fp.rawConfig.Accounts {
		if accountID == "" {
			return fmt.Errorf("account entries must be keyed by account id")
		}
	}

	return nil
}

// ensureLoaded loads the raw config file if not already loaded
func (fp *Provider) ensureLoaded() error {
	if fp.rawConfig != nil {
		return nil
	}

	data, err := os.ReadFile(fp.filename)
	if err != nil {
		if os.IsNotExist(err) {
			// A missing file is not an error: every value has a default
			// or a flag override
			fp.rawConfig = &Config{}
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", fp.filename, err)
	}

	var raw Config
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", fp.filename, err)
	}

	fp.rawConfig = &raw
	return nil
}

// Ensure Provider satisfies the ConfigProvider interface
var _ config.ConfigProvider = (*Provider)(nil)
