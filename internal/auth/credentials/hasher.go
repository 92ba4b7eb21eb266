package credentials

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrEmptyPassword = errors.New("password cannot be empty")

// Hasher hashes and verifies plaintext passwords.
type Hasher interface {
	Hash(password string) (string, error)

	// Verify returns (true, nil) on match and (false, nil) on mismatch.
	// Any other failure is returned as (false, err), never as a match.
	Verify(password, digest string) (bool, error)
}

// BcryptHasher implements Hasher with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	return &BcryptHasher{cost: cost}
}

// Hash returns a salted bcrypt digest. Passwords longer than 72 bytes are
// rejected by bcrypt with bcrypt.ErrPasswordTooLong.
func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}

	return string(digest), nil
}

// Verify compares password with digest. A digest that is not a bcrypt hash
// at all, such as a provider filler value, can never match and reports a
// plain mismatch.
func (h *BcryptHasher) Verify(password, digest string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrHashTooShort) {
		return false, nil
	}

	var prefixErr bcrypt.InvalidHashPrefixError
	if errors.As(err, &prefixErr) {
		return false, nil
	}

	return false, err
}
