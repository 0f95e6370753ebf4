package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// Fingerprint returns a short content hash, used to correlate uploads in logs without
// logging their contents.
func Fingerprint(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
