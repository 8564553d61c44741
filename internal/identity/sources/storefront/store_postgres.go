package storefront

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"custid/internal/identity/models"
	"custid/pkg/platform/sentinel"
)

// defaultMaxMatches bounds a single identifier lookup.
const defaultMaxMatches = 1000

const orderColumns = `id, reference, customer_email, customer_phone, customer_name, placed_at`

// PostgresStore reads orders from the storefront's PostgreSQL database.
type PostgresStore struct {
	db         *sql.DB
	maxMatches int
}

// NewPostgres constructs a PostgreSQL-backed storefront reader.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, maxMatches: defaultMaxMatches}
}

func (s *PostgresStore) FindByEmail(ctx context.Context, scope models.TenantScope, email string) ([]Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM storefront_orders
		WHERE tenant_id = $1 AND lower(trim(customer_email)) = lower(trim($2))
		ORDER BY placed_at DESC, id
		LIMIT $3`
	return s.match(ctx, "find orders by email", query, uuid.UUID(scope.Tenant()), email)
}

// FindByPhone compares the stored phone with punctuation removed against each spelling.
func (s *PostgresStore) FindByPhone(ctx context.Context, scope models.TenantScope, phones []string) ([]Order, error) {
	if len(phones) == 0 {
		return nil, nil
	}
	query := `SELECT ` + orderColumns + `
		FROM storefront_orders
		WHERE tenant_id = $1
		  AND regexp_replace(customer_phone, '[[:space:]()./-]', '', 'g') = ANY($2)
		ORDER BY placed_at DESC, id
		LIMIT $3`
	return s.match(ctx, "find orders by phone", query, uuid.UUID(scope.Tenant()), pq.Array(phones))
}

func (s *PostgresStore) FindByReference(ctx context.Context, scope models.TenantScope, reference string) (*Order, error) {
	query := `SELECT ` + orderColumns + `
		FROM storefront_orders
		WHERE tenant_id = $1 AND reference = $2
		ORDER BY placed_at DESC, id
		LIMIT 1`
	order, err := scanOrder(s.db.QueryRowContext(ctx, query, uuid.UUID(scope.Tenant()), reference))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find order by reference: %w", err)
	}
	return order, nil
}

func (s *PostgresStore) ListRecent(ctx context.Context, scope models.TenantScope, limit int) ([]Order, error) {
	if limit <= 0 {
		return nil, nil
	}
	query := `SELECT ` + orderColumns + `
		FROM storefront_orders
		WHERE tenant_id = $1
		ORDER BY placed_at DESC, id
		LIMIT $2`
	return s.query(ctx, "list recent orders", query, uuid.UUID(scope.Tenant()), limit)
}

// match runs an identifier lookup whose last placeholder is the row limit. It reads one
// row past maxMatches so an overflow fails the lookup instead of truncating it.
func (s *PostgresStore) match(ctx context.Context, op, query string, args ...any) ([]Order, error) {
	found, err := s.query(ctx, op, query, append(args, s.maxMatches+1)...)
	if err != nil {
		return nil, err
	}
	if len(found) > s.maxMatches {
		return nil, fmt.Errorf("%s: more than %d records: %w", op, s.maxMatches, sentinel.ErrTooManyMatches)
	}
	return found, nil
}

func (s *PostgresStore) query(ctx context.Context, op, query string, args ...any) ([]Order, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var orders []Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return orders, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*Order, error) {
	var (
		o                  Order
		email, phone, name sql.NullString
	)
	if err := row.Scan(&o.ID, &o.Reference, &email, &phone, &name, &o.PlacedAt); err != nil {
		return nil, err
	}
	o.CustomerEmail = email.String
	o.CustomerPhone = phone.String
	o.CustomerName = name.String
	return &o, nil
}
