package resolver

import (
	"context"
	"errors"

	"github.com/samber/oops"

	"github.com/studyhub/auth-service/internal/auth"
	"github.com/studyhub/auth-service/internal/users"
)

// ErrNoEmail is returned for identities the provider sent without an email.
var ErrNoEmail = errors.New("identity has no email")

// StoreResolver maps identities onto users by email. Rows created here
// carry the provider's filler value instead of a password digest, so they
// can never pass a password login.
type StoreResolver struct {
	store   users.Store
	fillers map[string]string
}

// NewStoreResolver takes the filler value for each provider name.
func NewStoreResolver(store users.Store, fillers map[string]string) *StoreResolver {
	f := make(map[string]string, len(fillers))
	for name, v := range fillers {
		f[name] = v
	}
	return &StoreResolver{store: store, fillers: f}
}

func (r *StoreResolver) Resolve(ctx context.Context, identity *auth.Identity) (*users.User, error) {
	if identity == nil {
		return nil, errors.New("identity is nil")
	}
	if identity.Email == "" {
		return nil, oops.Code("RESOLVE_FAILED").
			With("provider", identity.Provider).
			Wrap(ErrNoEmail)
	}

	// 1. Existing row, however it was created
	u, err := r.store.FindByEmail(ctx, identity.Email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, users.ErrNotFound) {
		return nil, oops.Code("RESOLVE_FAILED").
			With("provider", identity.Provider).
			With("operation", "find user by email").
			Wrap(err)
	}

	filler, ok := r.fillers[identity.Provider]
	if !ok || filler == "" {
		return nil, oops.Code("RESOLVE_FAILED").
			With("provider", identity.Provider).
			Errorf("no filler configured for provider")
	}

	// 2. First login: create the row
	u, err = r.store.Create(ctx, identity.Email, filler)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, users.ErrDuplicateEmail) {
		return nil, oops.Code("RESOLVE_FAILED").
			With("provider", identity.Provider).
			With("operation", "create user").
			Wrap(err)
	}

	// 3. Lost a concurrent first login; the winner's row is ours
	u, err = r.store.FindByEmail(ctx, identity.Email)
	if err != nil {
		return nil, oops.Code("RESOLVE_FAILED").
			With("provider", identity.Provider).
			With("operation", "re-read user after duplicate").
			Wrap(err)
	}
	return u, nil
}
