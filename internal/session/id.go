package session

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/studyhub/auth-service/internal/utils"
)

// tokenBytes is 256 bits of entropy.
const tokenBytes = 32

// NewToken generates the opaque value handed to the client.
func NewToken() (string, error) {
	tok, err := utils.RandomToken(tokenBytes)
	if err != nil {
		return "", fmt.Errorf("session: failed to generate token: %w", err)
	}
	return tok, nil
}

// IDFromToken derives the storage ID for a client token.
func IDFromToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
