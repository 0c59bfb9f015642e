/*
Copyright © 2025 iamcdkapp Contributors
SPDX-License-Identifier: BSD-3-Clause
*/
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// STSIdentityProvider implements IdentityProvider using STS GetCallerIdentity
type STSIdentityProvider struct {
	client STSClient
}

// NewIdentityProviderWithClient creates an identity provider with a custom client (for testing)
func NewIdentityProviderWithClient(client STSClient) *STSIdentityProvider {
	return &STSIdentityProvider{
		client: client,
	}
}

// CurrentAccountID returns the account ID of the caller's current credentials
func (p *STSIdentityProvider) CurrentAccountID(ctx context.Context) (string, error) {
	output, err := p.client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("failed to get caller identity: %w", err)
	}

	accountID := aws.ToString(output.Account)
	if accountID == "" {
		return "", fmt.Errorf("caller identity response carried no account id")
	}

	return accountID, nil
}
