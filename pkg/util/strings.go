package util

import (
	"crypto/rand"
	"encoding/hex"
)

// NewSessionID returns a random 16-byte hex identifier for an upload session.
func NewSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	return hex.EncodeToString(b)
}
