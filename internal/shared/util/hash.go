package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashKey returns a stable hex sha256 of the joined parts, suitable for cache
// and storage keys.
func HashKey(parts ...string) string {
	h := sha256.New()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}
