package bookings

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custid/internal/identity/models"
	"custid/internal/identity/sources"
	id "custid/pkg/domain"
)

func seeded(t *testing.T) (*Adapter, models.TenantScope, models.TenantScope) {
	t.Helper()
	store := NewInMemory()
	tenant := models.MustTenantScope(id.TenantID(uuid.New()))
	other := models.MustTenantScope(id.TenantID(uuid.New()))
	store.Add(tenant,
		Booking{ID: "bk-1", Reference: "BK-100", Email: "a@x.com", Phone: "+2348011111111", GuestName: "Ada L"},
		Booking{ID: "bk-2", Reference: "BK-200", Email: "c@x.com", Phone: "(0803) 333-3333"},
	)
	store.Add(other,
		Booking{ID: "bk-9", Reference: "BK-100", Email: "a@x.com"},
	)
	return NewAdapter(store), tenant, other
}

func TestExtractByFilter(t *testing.T) {
	adapter, tenant, _ := seeded(t)
	ctx := context.Background()

	t.Run("email", func(t *testing.T) {
		frags, err := adapter.ExtractByFilter(ctx, tenant, models.Filter{Email: "A@X.COM "})
		require.NoError(t, err)
		require.Len(t, frags, 1)
		assert.Equal(t, "bk-1", frags[0].SourceRecordID)
		assert.Equal(t, models.SourceBookings, frags[0].SourceSystem)
		assert.Equal(t, "Ada L", frags[0].Name)
	})

	t.Run("phone with punctuation in storage", func(t *testing.T) {
		frags, err := adapter.ExtractByFilter(ctx, tenant, models.Filter{Phone: "+2348033333333"})
		require.NoError(t, err)
		require.Len(t, frags, 1)
		assert.Equal(t, "bk-2", frags[0].SourceRecordID)
	})

	t.Run("no match", func(t *testing.T) {
		frags, err := adapter.ExtractByFilter(ctx, tenant, models.Filter{Email: "nobody@x.com"})
		require.NoError(t, err)
		assert.Empty(t, frags)
	})

	t.Run("empty filter", func(t *testing.T) {
		frags, err := adapter.ExtractByFilter(ctx, tenant, models.Filter{})
		require.NoError(t, err)
		assert.Empty(t, frags)
	})
}

func TestResolveByReferenceIsTenantScoped(t *testing.T) {
	adapter, tenant, other := seeded(t)
	ctx := context.Background()

	f, err := adapter.ResolveByReference(ctx, tenant, "BK-100")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "bk-1", f.SourceRecordID)

	f, err = adapter.ResolveByReference(ctx, other, "BK-100")
	require.NoError(t, err)
	require.NotNil(t, f)
	assert.Equal(t, "bk-9", f.SourceRecordID)

	f, err = adapter.ResolveByReference(ctx, other, "BK-200")
	require.NoError(t, err)
	assert.Nil(t, f)
}

type brokenReader struct {
	*InMemory
}

func (brokenReader) FindByReference(context.Context, models.TenantScope, string) (*Booking, error) {
	return nil, errors.New("connection refused")
}

func TestResolveByReferencePropagatesFailures(t *testing.T) {
	adapter := NewAdapter(brokenReader{InMemory: NewInMemory()})
	scope := models.MustTenantScope(id.TenantID(uuid.New()))

	f, err := adapter.ResolveByReference(context.Background(), scope, "BK-1")
	require.Error(t, err)
	assert.Nil(t, f)
	assert.Equal(t, sources.ErrorInternal, sources.GetCategory(err))
}
