package bookings

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

const defaultMaxMatches = 1000

// PostgresStore reads bookings from the bookings system's PostgreSQL database.
type PostgresStore struct {
	db         *sql.DB
	maxMatches int
}

// NewPostgres constructs a PostgreSQL-backed bookings reader.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, maxMatches: defaultMaxMatches}
}

func (s *PostgresStore) FindByEmail(ctx context.Context, scope models.TenantScope, email string) ([]Booking, error) {
	query := `
		SELECT id, reference, email, phone, guest_name
		FROM bookings
		WHERE tenant_id = $1 AND lower(trim(email)) = lower(trim($2))
		ORDER BY created_at DESC, id
		LIMIT $3
	`
	return s.match(ctx, "find bookings by email", query, uuid.UUID(scope.Tenant()), email)
}

func (s *PostgresStore) FindByPhone(ctx context.Context, scope models.TenantScope, phones []string) ([]Booking, error) {
	if len(phones) == 0 {
		return nil, nil
	}
	query := `
		SELECT id, reference, email, phone, guest_name
		FROM bookings
		WHERE tenant_id = $1
		  AND regexp_replace(phone, '[[:space:]()./-]', '', 'g') = ANY($2)
		ORDER BY created_at DESC, id
		LIMIT $3
	`
	return s.match(ctx, "find bookings by phone", query, uuid.UUID(scope.Tenant()), pq.Array(phones))
}

func (s *PostgresStore) FindByReference(ctx context.Context, scope models.TenantScope, reference string) (*Booking, error) {
	query := `
		SELECT id, reference, email, phone, guest_name
		FROM bookings
		WHERE tenant_id = $1 AND reference = $2
		ORDER BY created_at DESC, id
		LIMIT 1
	`
	var (
		b                   Booking
		email, phone, guest sql.NullString
	)
	err := s.db.QueryRowContext(ctx, query, uuid.UUID(scope.Tenant()), reference).
		Scan(&b.ID, &b.Reference, &email, &phone, &guest)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find booking by reference: %w", err)
	}
	b.Email, b.Phone, b.GuestName = email.String, phone.String, guest.String
	return &b, nil
}

// match runs an identifier lookup whose last placeholder is the row limit. It reads one
// row past maxMatches so an overflow fails the lookup instead of truncating it.
func (s *PostgresStore) match(ctx context.Context, op, query string, args ...any) ([]Booking, error) {
	found, err := s.query(ctx, op, query, append(args, s.maxMatches+1)...)
	if err != nil {
		return nil, err
	}
	if len(found) > s.maxMatches {
		return nil, fmt.Errorf("%s: more than %d records: %w", op, s.maxMatches, sentinel.ErrTooManyMatches)
	}
	return found, nil
}

func (s *PostgresStore) query(ctx context.Context, op, query string, args ...any) ([]Booking, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		var (
			b                   Booking
			email, phone, guest sql.NullString
		)
		if err := rows.Scan(&b.ID, &b.Reference, &email, &phone, &guest); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		b.Email, b.Phone, b.GuestName = email.String, phone.String, guest.String
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return out, nil
}
