// Package domain holds typed identifiers shared across modules.
package domain

import (
	"github.com/google/uuid"

	dErrors "custid/pkg/domain-errors"
)

// TenantID identifies a tenant. A distinct type keeps tenant identifiers from being mixed with
// other UUIDs at compile time.
type TenantID uuid.UUID

// ParseTenantID parses a tenant identifier at a trust boundary.
// Empty, malformed and nil UUIDs are rejected with CodeInvalidInput.
func ParseTenantID(s string) (TenantID, error) {
	u, err := parseUUID(s, "tenant ID")
	if err != nil {
		return TenantID{}, err
	}
	return TenantID(u), nil
}

func (id TenantID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the ID is unset.
func (id TenantID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

func parseUUID(s, label string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+label)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, label+" must not be nil")
	}
	return u, nil
}

// MarshalText encodes the ID in its canonical string form.
func (id TenantID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText()
}

// UnmarshalText decodes an ID from its string form. Nil UUIDs are accepted here; callers at
// trust boundaries use ParseTenantID.
func (id *TenantID) UnmarshalText(data []byte) error {
	var u uuid.UUID
	if err := u.UnmarshalText(data); err != nil {
		return err
	}
	*id = TenantID(u)
	return nil
}
