package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex encoded sha256 of data.
func Hash(data string) string {
	hash := sha256.New()
	hash.Write([]byte(data))
	return hex.EncodeToString(hash.Sum(nil))
}

// Fingerprint is a short Hash, enough to correlate log lines without printing data itself.
func Fingerprint(data string) string {
	return Hash(data)[:12]
}
