package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Set records keys seen during a run
type Set interface {
	Seen(key string) bool
	Mark(key string)
	Len() int
	Reset()
}

// Key derives a fixed-size key from message text
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "tgextract:v1:" + hex.EncodeToString(hash[:])
}
