package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// consumerKeyPrefix marks keys issued to public API consumers.
const consumerKeyPrefix = "vb_"

// secretBytes of entropy per key; hex-encoded to 64 characters.
const secretBytes = 32

// GenerateConsumerKey returns a new random consumer secret of the form
// vb_<64 hex chars>.
func GenerateConsumerKey() (string, error) {
	b := make([]byte, secretBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return consumerKeyPrefix + hex.EncodeToString(b), nil
}
