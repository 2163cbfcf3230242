package lib

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

// ChunkSize is the read granularity for streaming operations: hashing,
// downloads, and compression all move data in chunks of this size so
// arbitrarily large objects never need full buffering.
const ChunkSize = 4096

// GetHash calculates the SHA-256 hash of an in-memory byte slice and
// returns it as a lowercase hex-encoded string. This is the sole
// identity mechanism for stored objects and manifest trees.
func GetHash(content []byte) string {
	hashBytes := sha256.Sum256(content)
	return hex.EncodeToString(hashBytes[:])
}

// GetFileHash calculates the SHA-256 hash of a file's contents by
// streaming it from disk in ChunkSize reads.
func GetFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	buf := make([]byte, ChunkSize)
	if _, err := io.CopyBuffer(hasher, file, buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
