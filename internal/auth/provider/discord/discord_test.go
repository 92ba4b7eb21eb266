package discord

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type fakeDiscord struct {
	srv        *httptest.Server
	userStatus int
	user       map[string]any
	gotAuth    string
}

func newFakeDiscord(t *testing.T) *fakeDiscord {
	t.Helper()
	f := &fakeDiscord{
		userStatus: http.StatusOK,
		user: map[string]any{
			"id":       "80351110224678912",
			"username": "nelly",
			"email":    "nelly@x.com",
			"verified": true,
		},
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/oauth2/token", func(w http.ResponseWriter, r *http.Request) {
		if r.FormValue("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "discord-at",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("/api/users/@me", func(w http.ResponseWriter, r *http.Request) {
		f.gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.userStatus)
		_ = json.NewEncoder(w).Encode(f.user)
	})
	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeDiscord) provider(t *testing.T) *Provider {
	t.Helper()
	p, err := New(Config{
		ClientID:     "client",
		ClientSecret: "secret",
		RedirectURL:  "http://localhost:5001/auth/discord/redirect",
		Endpoint: oauth2.Endpoint{
			AuthURL:   f.srv.URL + "/oauth2/authorize",
			TokenURL:  f.srv.URL + "/api/oauth2/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		UserURL:    f.srv.URL + "/api/users/@me",
		HTTPClient: f.srv.Client(),
	})
	require.NoError(t, err)
	return p
}

func TestNew_MissingFields(t *testing.T) {
	_, err := New(Config{ClientID: "id", RedirectURL: "http://x"})
	assert.Error(t, err)
}

func TestNew_DefaultsToDiscord(t *testing.T) {
	p, err := New(Config{ClientID: "id", ClientSecret: "s", RedirectURL: "http://x"})
	require.NoError(t, err)

	u, err := url.Parse(p.AuthCodeURL("st", "ignored"))
	require.NoError(t, err)
	assert.Equal(t, "discord.com", u.Host)
	assert.Equal(t, "st", u.Query().Get("state"))
	assert.Empty(t, u.Query().Get("code_challenge"))
	assert.Equal(t, "identify email", u.Query().Get("scope"))
}

func TestProvider_ExchangeCode(t *testing.T) {
	f := newFakeDiscord(t)
	p := f.provider(t)

	id, err := p.ExchangeCode(context.Background(), "good-code", "")
	require.NoError(t, err)
	assert.Equal(t, "discord", id.Provider)
	assert.Equal(t, "80351110224678912", id.ProviderUserID)
	assert.Equal(t, "nelly@x.com", id.Email)
	assert.True(t, id.EmailVerified)
	assert.Equal(t, "Bearer discord-at", f.gotAuth)
}

func TestProvider_ExchangeCodeFailures(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		mutate func(f *fakeDiscord)
	}{
		{name: "rejected code", code: "bad-code"},
		{
			name:   "user endpoint error",
			code:   "good-code",
			mutate: func(f *fakeDiscord) { f.userStatus = http.StatusUnauthorized },
		},
		{
			name:   "profile without email",
			code:   "good-code",
			mutate: func(f *fakeDiscord) { delete(f.user, "email") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeDiscord(t)
			if tt.mutate != nil {
				tt.mutate(f)
			}
			id, err := f.provider(t).ExchangeCode(context.Background(), tt.code, "")
			assert.Nil(t, id)
			assert.Error(t, err)
		})
	}
}
