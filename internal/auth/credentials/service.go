package credentials

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/oops"

	"github.com/studyhub/auth-service/internal/auth"
	"github.com/studyhub/auth-service/internal/users"
)

// ErrLookupFailed marks a Register failure that happened before anything
// was written.
var ErrLookupFailed = errors.New("user lookup failed")

// Service is the password authenticator. It signs users up and verifies
// email + password pairs against the credential store.
type Service struct {
	store  users.Store
	hasher Hasher

	// dummyDigest is verified against when the email is unknown so a miss
	// costs about as much as a wrong password.
	dummyDigest string
}

func NewService(store users.Store, hasher Hasher) *Service {
	dummy, _ := hasher.Hash("timing-equaliser")
	return &Service{
		store:       store,
		hasher:      hasher,
		dummyDigest: dummy,
	}
}

// Register creates a password account. It returns auth.ErrConflict when
// the email is taken, including when another request inserted it after
// the lookup. A hashing failure writes nothing.
func (s *Service) Register(ctx context.Context, email, password string) (*users.User, error) {
	_, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return nil, auth.ErrConflict
	}
	if !errors.Is(err, users.ErrNotFound) {
		return nil, oops.Code("REGISTER_FAILED").
			With("operation", "find user by email").
			Wrap(fmt.Errorf("%w: %w", ErrLookupFailed, err))
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, oops.Code("REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	u, err := s.store.Create(ctx, email, digest)
	if errors.Is(err, users.ErrDuplicateEmail) {
		return nil, auth.ErrConflict
	}
	if err != nil {
		return nil, oops.Code("REGISTER_FAILED").
			With("operation", "create user").
			Wrap(err)
	}

	return u, nil
}

// Authenticate verifies an email + password pair. Unknown emails return
// auth.ErrUserNotFound and wrong passwords auth.ErrRejected; both classify
// as auth.Rejected. Store or hasher failures are returned wrapped.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*users.User, error) {
	u, err := s.store.FindByEmail(ctx, email)
	if errors.Is(err, users.ErrNotFound) {
		_, _ = s.hasher.Verify(password, s.dummyDigest)
		return nil, auth.ErrUserNotFound
	}
	if err != nil {
		return nil, oops.Code("LOCAL_AUTH_FAILED").
			With("operation", "find user by email").
			Wrap(err)
	}

	ok, err := s.hasher.Verify(password, u.PasswordHash)
	if err != nil {
		return nil, oops.Code("LOCAL_AUTH_FAILED").
			With("operation", "verify password").
			With("user_id", u.ID.String()).
			Wrap(err)
	}
	if !ok {
		return nil, auth.ErrRejected
	}

	return u, nil
}
