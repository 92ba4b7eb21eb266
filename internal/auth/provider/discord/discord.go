// Package discord signs users in with Discord's OAuth2 flow. Discord has no
// id_token, so the identity comes from the /users/@me endpoint.
package discord

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/samber/oops"
	"golang.org/x/oauth2"

	"github.com/studyhub/auth-service/internal/auth"
	"github.com/studyhub/auth-service/internal/logger"
)

const providerName = "discord"

// Endpoint is Discord's OAuth2 endpoint.
var Endpoint = oauth2.Endpoint{
	AuthURL:   "https://discord.com/oauth2/authorize",
	TokenURL:  "https://discord.com/api/oauth2/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

const defaultUserURL = "https://discord.com/api/users/@me"

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// Endpoint and UserURL default to Discord's.
	Endpoint oauth2.Endpoint
	UserURL  string

	HTTPClient *http.Client
}

type Provider struct {
	oauthConfig *oauth2.Config
	userURL     string
	client      *http.Client
}

func New(cfg Config) (*Provider, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" || cfg.RedirectURL == "" {
		return nil, errors.New("discord oauth config missing required fields")
	}
	if cfg.Endpoint.AuthURL == "" {
		cfg.Endpoint = Endpoint
	}
	if cfg.UserURL == "" {
		cfg.UserURL = defaultUserURL
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = http.DefaultClient
	}

	return &Provider{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     cfg.Endpoint,
			Scopes:       []string{"identify", "email"},
		},
		userURL: cfg.UserURL,
		client:  cfg.HTTPClient,
	}, nil
}

func (p *Provider) Name() string {
	return providerName
}

// AuthCodeURL ignores the PKCE challenge; the flow is protected by the
// confidential client secret and the state cookie.
func (p *Provider) AuthCodeURL(state string, _ string) string {
	return p.oauthConfig.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "consent"))
}

type discordUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Verified bool   `json:"verified"`
}

func (p *Provider) ExchangeCode(
	ctx context.Context,
	code string,
	_ string,
) (*auth.Identity, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.client)

	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, oops.Code("PROVIDER_EXCHANGE_FAILED").
			With("provider", providerName).
			Wrap(err)
	}

	user, err := p.fetchUser(ctx, token)
	if err != nil {
		return nil, oops.Code("PROVIDER_PROFILE_FAILED").
			With("provider", providerName).
			Wrap(err)
	}
	if user.ID == "" || user.Email == "" {
		return nil, oops.Code("PROVIDER_PROFILE_FAILED").
			With("provider", providerName).
			Errorf("discord profile missing id or email")
	}

	logger.Info("discord profile fetched", map[string]any{
		"email_verified": user.Verified,
	})

	return &auth.Identity{
		Provider:       providerName,
		ProviderUserID: user.ID,
		Email:          user.Email,
		EmailVerified:  user.Verified,
	}, nil
}

func (p *Provider) fetchUser(ctx context.Context, token *oauth2.Token) (*discordUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := p.oauthConfig.Client(ctx, token).Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("discord user endpoint returned %d: %s", resp.StatusCode, body)
	}

	var u discordUser
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, fmt.Errorf("decode discord user: %w", err)
	}
	return &u, nil
}
