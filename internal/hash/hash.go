// Package hash provides short content hashes used as cache keys.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// IDLength is the number of hex characters kept from the digest.
const IDLength = 16

// TruncatedSHA256 returns the first IDLength hex characters of the SHA256
// of data.
func TruncatedSHA256(data string) string {
	h := sha256.Sum256([]byte(data))
	return hex.EncodeToString(h[:])[:IDLength]
}

// TruncatedSHA256Bytes is TruncatedSHA256 for byte slices.
func TruncatedSHA256Bytes(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])[:IDLength]
}
