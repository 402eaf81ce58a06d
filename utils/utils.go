package utils

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/kennygrant/sanitize"
)

// ContainsString returns true iff the provided string slice hay contains string
// needle.
func ContainsString(hay []string, needle string) bool {
	for _, str := range hay {
		if str == needle {
			return true
		}
	}
	return false
}

// HashAPIKey returns the hex encoded SHA-256 digest of a client api key.
// Only hashed keys are ever stored or compared against the users table.
func HashAPIKey(apiKey string) string {
	digest := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(digest[:])
}

// SanitizeIncomingData strips markup from user supplied free text before it
// reaches the schema layer.
func SanitizeIncomingData(incoming string) string {
	return sanitize.HTML(incoming)
}
