//go:build integration

package storefront

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"custid/internal/identity/models"
	"custid/internal/identity/normalize"
	"custid/internal/identity/sources"
	id "custid/pkg/domain"
	"custid/pkg/platform/sentinel"
	"custid/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	pg     *containers.PostgresContainer
	store  *PostgresStore
	tenant models.TenantScope
	other  models.TenantScope
	ctx    context.Context
}

func TestPostgresStoreSuite(t *testing.T) {
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.pg = containers.NewPostgresContainer(s.T())
	s.store = NewPostgres(s.pg.DB)
	s.ctx = context.Background()
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.Truncate(s.ctx))
	s.tenant = models.MustTenantScope(id.TenantID(uuid.New()))
	s.other = models.MustTenantScope(id.TenantID(uuid.New()))

	base := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)
	s.insert(s.tenant, Order{ID: "ord-1", Reference: "REF-1", CustomerEmail: " Ada@X.com", CustomerPhone: "0801-111-1111", CustomerName: "Ada", PlacedAt: base})
	s.insert(s.tenant, Order{ID: "ord-2", Reference: "REF-2", CustomerEmail: "b@x.com", PlacedAt: base.Add(time.Hour)})
	s.insert(s.other, Order{ID: "ord-9", Reference: "REF-1", CustomerEmail: "ada@x.com", CustomerPhone: "+2348011111111", PlacedAt: base})
}

func (s *PostgresStoreSuite) insert(scope models.TenantScope, o Order) {
	_, err := s.pg.DB.ExecContext(s.ctx, `
		INSERT INTO storefront_orders (tenant_id, id, reference, customer_email, customer_phone, customer_name, placed_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7)`,
		uuid.UUID(scope.Tenant()), o.ID, o.Reference, o.CustomerEmail, o.CustomerPhone, o.CustomerName, o.PlacedAt)
	s.Require().NoError(err)
}

func (s *PostgresStoreSuite) TestFindByEmail() {
	orders, err := s.store.FindByEmail(s.ctx, s.tenant, "ada@x.com")
	s.Require().NoError(err)
	s.Require().Len(orders, 1)
	s.Equal("ord-1", orders[0].ID)
	s.Equal("Ada", orders[0].CustomerName)
}

func (s *PostgresStoreSuite) TestFindByPhoneMatchesStoredPunctuation() {
	orders, err := s.store.FindByPhone(s.ctx, s.tenant, normalize.PhoneVariants("+2348011111111"))
	s.Require().NoError(err)
	s.Require().Len(orders, 1)
	s.Equal("ord-1", orders[0].ID)
}

func (s *PostgresStoreSuite) TestLookupPastMatchBoundFails() {
	base := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	for i, ref := range []string{"REF-3", "REF-4", "REF-5"} {
		s.insert(s.tenant, Order{ID: "ord-bulk-" + ref, Reference: ref, CustomerEmail: "bulk@x.com", PlacedAt: base.Add(time.Duration(i) * time.Minute)})
	}
	bounded := NewPostgres(s.pg.DB)
	bounded.maxMatches = 2

	_, err := bounded.FindByEmail(s.ctx, s.tenant, "bulk@x.com")
	s.Require().ErrorIs(err, sentinel.ErrTooManyMatches)

	adapter := NewAdapter(bounded)
	_, err = adapter.ExtractByFilter(s.ctx, s.tenant, models.Filter{Email: "bulk@x.com"})
	s.Require().Error(err)
	s.Equal(sources.ErrorTooManyMatches, sources.GetCategory(err))

	orders, err := bounded.FindByEmail(s.ctx, s.tenant, "b@x.com")
	s.Require().NoError(err)
	s.Len(orders, 1)
}

func (s *PostgresStoreSuite) TestFindByReference() {
	order, err := s.store.FindByReference(s.ctx, s.other, "REF-1")
	s.Require().NoError(err)
	s.Equal("ord-9", order.ID)

	_, err = s.store.FindByReference(s.ctx, s.other, "REF-2")
	s.ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestListRecent() {
	orders, err := s.store.ListRecent(s.ctx, s.tenant, 10)
	s.Require().NoError(err)
	s.Require().Len(orders, 2)
	s.Equal("ord-2", orders[0].ID)
	s.Empty(orders[0].CustomerPhone, "NULL columns read as empty")
}
