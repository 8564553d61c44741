// Package canonical derives opaque, deterministic customer IDs from contact identities.
package canonical

import (
	"crypto/sha256"
	"encoding/hex"

	"custid/internal/identity/models"
	"custid/internal/identity/normalize"
)

const (
	// Prefix marks an ID as a customer identity, separating it from other ID namespaces.
	Prefix = "cust_"

	// idHexLength is the number of digest hex characters kept in an ID (128 bits).
	idHexLength = 32

	// Anonymous is the identity string of a fragment with no identifier and no source key.
	Anonymous = "anonymous"
)

// Length is the fixed length of every canonical ID.
const Length = len(Prefix) + idHexLength

// IdentityString builds the identity a fragment is keyed by, in priority order: normalized
// email, normalized phone, source fallback, then the anonymous sentinel.
func IdentityString(f models.RawIdentityFragment) string {
	if email := normalize.Email(f.Email); email != "" {
		return email
	}
	if phone := normalize.Phone(f.Phone); phone != "" {
		return phone
	}
	return SourceIdentity(f.SourceSystem, f.SourceRecordID)
}

// SourceIdentity is the fallback identity for a record with no contact identifier.
func SourceIdentity(sys models.SourceSystem, recordID string) string {
	if sys == "" || recordID == "" {
		return Anonymous
	}
	return "source:" + string(sys) + ":" + recordID
}

// ID maps an identity string to its canonical ID. It is pure and total.
func ID(identity string) string {
	return Prefix + Digest(identity)[:idHexLength]
}

// Digest returns the full hex SHA-256 digest of an identity string, for callers that need
// the untruncated value.
func Digest(identity string) string {
	sum := sha256.Sum256([]byte(identity))
	return hex.EncodeToString(sum[:])
}

// ForFragment is ID(IdentityString(f)).
func ForFragment(f models.RawIdentityFragment) string {
	return ID(IdentityString(f))
}

// ForEmail returns the ID of an email identity, or "" when the email normalizes to blank.
func ForEmail(email string) string {
	if e := normalize.Email(email); e != "" {
		return ID(e)
	}
	return ""
}

// ForPhone returns the ID of a phone identity, or "" when the phone normalizes to blank.
func ForPhone(phone string) string {
	if p := normalize.Phone(phone); p != "" {
		return ID(p)
	}
	return ""
}
