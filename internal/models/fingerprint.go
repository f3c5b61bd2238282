package models

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// fingerprintSep separates fields so "a|b"+"c" and "a"+"b|c" cannot collide
const fingerprintSep = "\x1f"

// Fingerprint identifies a trip across re-imports of the same source data.
// It depends only on start date/time and addresses, never on ID.
func (t Trip) Fingerprint() string {
	key := strings.Join([]string{
		strings.TrimSpace(t.StartDate),
		strings.TrimSpace(t.StartAddress),
		strings.TrimSpace(t.EndAddress),
	}, fingerprintSep)
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:16])
}
