// Package apple reserves the "apple" provider name. Sign in with Apple is
// not enabled; every call fails with provider.ErrNotEnabled.
package apple

import (
	"context"

	"github.com/studyhub/auth-service/internal/auth"
	"github.com/studyhub/auth-service/internal/auth/provider"
)

const providerName = "apple"

type Provider struct{}

func New() *Provider { return &Provider{} }

func (*Provider) Name() string { return providerName }

func (*Provider) AuthCodeURL(string, string) string { return "" }

func (*Provider) ExchangeCode(context.Context, string, string) (*auth.Identity, error) {
	return nil, provider.ErrNotEnabled
}

var _ provider.OAuthProvider = (*Provider)(nil)
