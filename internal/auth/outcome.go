package auth

import "errors"

var (
	// ErrRejected means the credentials did not authenticate anyone.
	ErrRejected = errors.New("invalid credentials")

	// ErrUserNotFound is a Rejected outcome kept distinct for logging.
	// Callers must not reveal it to clients.
	ErrUserNotFound error = &rejection{msg: "user not found"}

	// ErrConflict means the email is already registered.
	ErrConflict = errors.New("email already exists")
)

type rejection struct{ msg string }

func (r *rejection) Error() string        { return r.msg }
func (r *rejection) Is(target error) bool { return target == ErrRejected }

// Outcome is the result class of an authentication attempt.
type Outcome int

const (
	Authenticated Outcome = iota
	Rejected
	Conflict
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Authenticated:
		return "authenticated"
	case Rejected:
		return "rejected"
	case Conflict:
		return "conflict"
	default:
		return "error"
	}
}

// OutcomeOf classifies an authenticator error. Anything that is not a
// rejection or a conflict is Failed: the caller could not determine who
// the principal is.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return Authenticated
	case errors.Is(err, ErrRejected):
		return Rejected
	case errors.Is(err, ErrConflict):
		return Conflict
	default:
		return Failed
	}
}
