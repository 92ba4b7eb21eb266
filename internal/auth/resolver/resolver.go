package resolver

import (
	"context"

	"github.com/studyhub/auth-service/internal/auth"
	"github.com/studyhub/auth-service/internal/users"
)

// Resolver determines which user row an external identity belongs to.
// It is the ONLY place where identity-to-user mapping logic lives.
type Resolver interface {
	Resolve(ctx context.Context, identity *auth.Identity) (*users.User, error)
}
