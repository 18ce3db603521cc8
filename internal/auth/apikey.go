package auth

import (
	"crypto/rand"
	"encoding/hex"
)

// apiKeyBytes is the entropy of a generated API key; hex-encoded it yields 40 characters.
const apiKeyBytes = 20

// NewAPIKey returns a random opaque API key. Collisions are treated as
// negligible and not checked against the store.
func NewAPIKey() (string, error) {
	buf := make([]byte, apiKeyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
