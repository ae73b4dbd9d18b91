package dedup

import (
	"crypto/sha256"
	"encoding/hex"
)

// GenerateHash returns the deduplication fingerprint for an issue: the
// SHA-256 hex digest (64 characters) of the normalized title and normalized
// description joined with "|". The separator cannot occur in normalized
// text, so the (title, description) split stays unambiguous.
//
// The hash is a pure function of its normalized inputs. It is recomputed on
// every request and only persisted by the issue-creation workflow, which
// uses it for exact-duplicate index lookups. Collision-resistance is the
// usual cryptographic kind, not a guarantee.
func GenerateHash(title, description string) string {
	combined := NormalizeText(title) + "|" + NormalizeText(description)
	sum := sha256.Sum256([]byte(combined))
	return hex.EncodeToString(sum[:])
}
