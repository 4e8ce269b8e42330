package helpers

import (
	"crypto/rand"
	"encoding/base64"
)

// SessionTokenBytes is the entropy of a session token.
const SessionTokenBytes = 32

// GenToken returns n random bytes from crypto/rand, base64url encoded.
func GenToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
