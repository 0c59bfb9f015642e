/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// DefaultClient provides a high-level interface for AWS operations
type DefaultClient struct {
	config aws.Config
	cfn    *cloudformation.Client
	sts    *sts.Client
}

// Config holds configuration for creating an AWS client
type Config struct {
	Region  string
	Profile string

	// RoleARN, when set, is assumed before any control-plane call. Used for
	// multi-account runs where each account exposes an execution role.
	RoleARN string
}

// NewDefaultClient creates a new AWS client with the specified configuration
func NewDefaultClient(ctx context.Context, cfg Config) (*DefaultClient, error) {
	var opts []func(*config.LoadOptions) error

	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}

	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	if cfg.RoleARN != "" {
		// Swap credentials for the per-account execution role
		provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(awsCfg), cfg.RoleARN)
		awsCfg.Credentials = aws.NewCredentialsCache(provider)
	}

	return &DefaultClient{
		config: awsCfg,
		cfn:    cloudformation.NewFromConfig(awsCfg),
		sts:    sts.NewFromConfig(awsCfg),
	}, nil
}

// NewCloudFormationOperations creates a CloudFormation operations wrapper
func (c *DefaultClient) NewCloudFormationOperations() CloudFormationOperations {
	return NewCloudFormationOperationsWithClient(c.cfn)
}

// NewIdentityProvider creates an identity provider backed by STS
func (c *DefaultClient) NewIdentityProvider() IdentityProvider {
	return &STSIdentityProvider{
		client: c.sts,
	}
}

// Region returns the configured AWS region
func (c *DefaultClient) Region() string {
	return c.config.Region
}
