package provider

import (
	"context"
	"errors"

	"github.com/studyhub/auth-service/internal/auth"
)

var (
	// ErrUnknownProvider is returned by Registry.Get for names that are not
	// registered.
	ErrUnknownProvider = errors.New("unknown oauth provider")

	// ErrNotEnabled is returned by providers that exist but are switched off.
	ErrNotEnabled = errors.New("oauth provider not enabled")
)

// OAuthProvider is a sign-in provider reached through a browser redirect.
// It reports who the provider says the person is and nothing more; users
// and sessions are handled by the caller.
type OAuthProvider interface {
	// Name returns the provider identifier used in routes ("google", "discord").
	Name() string

	// AuthCodeURL returns the authorization URL.
	// State and PKCE parameters are provided by the caller.
	AuthCodeURL(state string, codeChallenge string) string

	// ExchangeCode redeems the authorization code and returns the
	// normalized identity.
	ExchangeCode(
		ctx context.Context,
		code string,
		codeVerifier string,
	) (*auth.Identity, error)
}
