//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	id "custid/pkg/domain"
	audit "custid/pkg/platform/audit"
	"custid/pkg/testutil/containers"
)

func TestSinkProducesKeyedEvents(t *testing.T) {
	broker := containers.NewRedpandaContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	topic := "identity.audit.test"
	sink, err := NewSink(ctx, Config{Brokers: []string{broker.Broker}, Topic: topic})
	require.NoError(t, err)
	defer sink.Close()

	// Topic creation is idempotent.
	again, err := NewSink(ctx, Config{Brokers: []string{broker.Broker}, Topic: topic})
	require.NoError(t, err)
	again.Close()

	tenantID := id.TenantID(uuid.New())
	event := audit.Event{
		Category:     audit.CategoryOperations,
		Timestamp:    time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		TenantID:     tenantID,
		Action:       string(audit.EventIdentityResolved),
		Query:        "email",
		ResultCount:  1,
		CanonicalIDs: []string{"cust_0123"},
	}
	require.NoError(t, sink.Append(ctx, event))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Broker),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.NoError(t, fetches.Err())
	records := fetches.Records()
	require.Len(t, records, 1)

	assert.Equal(t, tenantID.String(), string(records[0].Key))
	var got audit.Event
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, event, got)
}
