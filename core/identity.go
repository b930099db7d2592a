package core

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// IDFromLink derives a stable listing id from the advertisement's source URL
// using BLAKE2b hashing. It is the documented fallback identity used during
// ingestion when the primary offer id cannot be extracted from the link:
// identical links always produce identical ids, so re-ingesting the same
// advertisement never creates a duplicate.
//
// Returns the empty string for an empty link; callers must treat that as a
// missing id and reject the record.
func IDFromLink(link string) string {
	if link == "" {
		return ""
	}
	h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits
	h.Write([]byte(link))
	return hex.EncodeToString(h.Sum(nil))
}
