// Package cache provides the TTL byte-cache used for fetched policy
// document text, so repeated ingests of the same URL do not refetch.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the caching contract.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// DocumentKey derives a cache key from a document source URL.
func DocumentKey(source string) string {
	hash := sha256.Sum256([]byte(source))
	return "clausecheck:v1:" + hex.EncodeToString(hash[:])
}
