package support

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"custid/internal/identity/models"
	"custid/internal/identity/normalize"
	"custid/pkg/platform/sentinel"
)

// Key layout, all tenant-prefixed:
//
//	support:{tenant}:ticket:{id}         hash  reference, phone, requester
//	support:{tenant}:phone:{compact}     set   ticket ids
//	support:{tenant}:ref:{reference}     string ticket id
const keyPrefix = "support"

// TicketKey is the hash key holding a ticket.
func TicketKey(scope models.TenantScope, ticketID string) string {
	return fmt.Sprintf("%s:%s:ticket:%s", keyPrefix, scope, ticketID)
}

// PhoneKey is the set key indexing tickets by compacted phone.
func PhoneKey(scope models.TenantScope, compactPhone string) string {
	return fmt.Sprintf("%s:%s:phone:%s", keyPrefix, scope, compactPhone)
}

// ReferenceKey is the string key mapping a ticket reference to its id.
func ReferenceKey(scope models.TenantScope, reference string) string {
	return fmt.Sprintf("%s:%s:ref:%s", keyPrefix, scope, reference)
}

// RedisStore reads tickets from the support desk's Redis keyspace.
type RedisStore struct {
	client redis.Cmdable
}

// NewRedis constructs a Redis-backed ticket reader.
func NewRedis(client redis.Cmdable) *RedisStore {
	return &RedisStore{client: client}
}

// Save writes a ticket and its indexes. The engine never calls it; it exists for seeding.
func (s *RedisStore) Save(ctx context.Context, scope models.TenantScope, t Ticket) error {
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, TicketKey(scope, t.ID), map[string]any{
			"reference": t.Reference,
			"phone":     t.Phone,
			"requester": t.RequesterName,
		})
		if compact := normalize.Compact(t.Phone); compact != "" {
			pipe.SAdd(ctx, PhoneKey(scope, compact), t.ID)
		}
		if t.Reference != "" {
			pipe.Set(ctx, ReferenceKey(scope, t.Reference), t.ID, 0)
		}
		return nil
	})
	if err != nil {
		return unavailable("save ticket", err)
	}
	return nil
}

func (s *RedisStore) FindByPhone(ctx context.Context, scope models.TenantScope, phones []string) ([]Ticket, error) {
	if len(phones) == 0 {
		return nil, nil
	}
	keys := make([]string, 0, len(phones))
	for _, p := range phones {
		keys = append(keys, PhoneKey(scope, p))
	}
	ids, err := s.client.SUnion(ctx, keys...).Result()
	if err != nil {
		return nil, unavailable("find tickets by phone", err)
	}
	if len(ids) == 0 {
		return nil, nil
	}
	sort.Strings(ids)

	cmds := make([]*redis.MapStringStringCmd, len(ids))
	_, err = s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, ticketID := range ids {
			cmds[i] = pipe.HGetAll(ctx, TicketKey(scope, ticketID))
		}
		return nil
	})
	if err != nil {
		return nil, unavailable("load tickets", err)
	}

	out := make([]Ticket, 0, len(ids))
	for i, cmd := range cmds {
		fields := cmd.Val()
		// A dangling index entry is skipped rather than failing the whole read.
		if len(fields) == 0 {
			continue
		}
		out = append(out, ticketFromHash(ids[i], fields))
	}
	return out, nil
}

func (s *RedisStore) FindByReference(ctx context.Context, scope models.TenantScope, reference string) (*Ticket, error) {
	ticketID, err := s.client.Get(ctx, ReferenceKey(scope, reference)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, sentinel.ErrNotFound
		}
		return nil, unavailable("find ticket by reference", err)
	}
	fields, err := s.client.HGetAll(ctx, TicketKey(scope, ticketID)).Result()
	if err != nil {
		return nil, unavailable("load ticket", err)
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("ticket %s indexed by reference %q is missing: %w", ticketID, reference, sentinel.ErrBadData)
	}
	t := ticketFromHash(ticketID, fields)
	return &t, nil
}

func ticketFromHash(ticketID string, fields map[string]string) Ticket {
	return Ticket{
		ID:            ticketID,
		Reference:     fields["reference"],
		Phone:         fields["phone"],
		RequesterName: fields["requester"],
	}
}

// unavailable marks transport failures as a source outage, leaving context errors intact
// so the caller can tell cancellation from timeout.
func unavailable(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, sentinel.ErrUnavailable, err)
}
