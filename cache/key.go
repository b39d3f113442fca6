// Package cache fingerprints a (file, chunking-options) pair into a stable
// key and stores the pipeline's cached result behind a bounded in-memory
// LRU, or an optional Redis-backed Store sharing the same interface.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/iyulab/fileflux/content"
)

// keyHexLen is how many hex characters of the SHA-256 digest the cache key
// keeps.
const keyHexLen = 16

// Key fingerprints the inputs that fully determine a pipeline run's output:
// the file identity (path, mtime, size) and the chunking options that
// shape the result.
func Key(path string, mtime time.Time, size int64, strategy content.ChunkStrategy, maxChunkSize, overlap int) string {
	raw := fmt.Sprintf("%s|%d|%d|%s|%d|%d", path, mtime.UnixNano(), size, strategy, maxChunkSize, overlap)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])[:keyHexLen]
}
