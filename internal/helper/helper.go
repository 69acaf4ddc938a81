package helper

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash8 fingerprints a value (emails in logs) without revealing it.
func Hash8(s string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(s))))
	return hex.EncodeToString(sum[:8])
}
