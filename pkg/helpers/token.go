package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// GenRandomHex returns n random bytes hex-encoded (2n characters).
// Used for email verification tokens.
func GenRandomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
