package models

import (
	id "custid/pkg/domain"
	dErrors "custid/pkg/domain-errors"
)

// TenantScope is the isolation boundary for every read. The zero value is invalid and is
// never interpreted as "all tenants".
type TenantScope struct {
	tenant id.TenantID
}

// NewTenantScope builds a scope for a tenant. A nil tenant yields CodeInvalidScope.
func NewTenantScope(tenant id.TenantID) (TenantScope, error) {
	if tenant.IsNil() {
		return TenantScope{}, dErrors.New(dErrors.CodeInvalidScope, "tenant scope is required")
	}
	return TenantScope{tenant: tenant}, nil
}

// ParseTenantScope parses a tenant identifier into a scope.
func ParseTenantScope(raw string) (TenantScope, error) {
	tenant, err := id.ParseTenantID(raw)
	if err != nil {
		return TenantScope{}, dErrors.Wrap(err, dErrors.CodeInvalidScope, "malformed tenant scope")
	}
	return TenantScope{tenant: tenant}, nil
}

// MustTenantScope builds a scope, panicking if invalid. Use only in tests and seeding.
func MustTenantScope(tenant id.TenantID) TenantScope {
	s, err := NewTenantScope(tenant)
	if err != nil {
		panic(err)
	}
	return s
}

// Tenant returns the scoped tenant.
func (s TenantScope) Tenant() id.TenantID {
	return s.tenant
}

// Validate returns CodeInvalidScope for the zero scope.
func (s TenantScope) Validate() error {
	if s.tenant.IsNil() {
		return dErrors.New(dErrors.CodeInvalidScope, "tenant scope is required")
	}
	return nil
}

func (s TenantScope) String() string {
	return s.tenant.String()
}
