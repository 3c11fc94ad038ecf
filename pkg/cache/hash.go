package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// keyVersion changes whenever cached layout or artifact bytes change shape.
// Entries written under an older version are never read again and expire
// through their TTL.
const keyVersion = "v1"

// hashKey returns kind:version:sha256(parts) with each part JSON encoded
// on its own line.
func hashKey(kind string, parts ...any) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, p := range parts {
		_ = enc.Encode(p)
	}
	return kind + ":" + keyVersion + ":" + hex.EncodeToString(h.Sum(nil))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
