// Package bootstrap builds the resolution service and its collaborators from configuration.
// The server and the CLI share it so both read the same sources the same way.
package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"custid/internal/identity/annotate"
	"custid/internal/identity/metrics"
	"custid/internal/identity/service"
	"custid/internal/identity/sources"
	"custid/internal/identity/sources/bookings"
	"custid/internal/identity/sources/storefront"
	"custid/internal/identity/sources/support"
	"custid/internal/platform/config"
	"custid/internal/platform/postgres"
	"custid/internal/platform/redis"
	"custid/pkg/platform/audit/publisher"
	"custid/pkg/platform/audit/publishers/kafka"
	"custid/pkg/platform/audit/publishers/ops"
)

// App holds the wired service and everything that must be released on shutdown.
type App struct {
	Service *service.Service

	// Seed stores are set only when the matching source runs in memory, for local runs.
	Storefront *storefront.InMemory
	Bookings   *bookings.InMemory
	Support    *support.InMemory

	db        *sql.DB
	redis     *redis.Client
	sink      *kafka.Sink
	publisher *publisher.Publisher
	logger    *slog.Logger
}

// Build connects to the configured backends and returns the wired service. Sources without
// a configured backend run in memory and start empty. reg may be nil to skip metrics.
func Build(ctx context.Context, cfg config.Server, logger *slog.Logger, reg prometheus.Registerer) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	app := &App{logger: logger}
	svc, err := app.build(ctx, cfg, reg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.Service = svc
	return app, nil
}

func (a *App) build(ctx context.Context, cfg config.Server, reg prometheus.Registerer) (*service.Service, error) {
	caps, err := annotate.LoadCapabilitiesFile(cfg.CapabilitiesFile)
	if err != nil {
		return nil, fmt.Errorf("load source capabilities: %w", err)
	}

	front, bookingsReader, err := a.postgresReaders(ctx, cfg)
	if err != nil {
		return nil, err
	}
	tickets, err := a.supportReader(ctx, cfg)
	if err != nil {
		return nil, err
	}

	storefrontAdapter := storefront.NewAdapter(front)
	registry, err := sources.NewRegistry(
		storefrontAdapter,
		bookings.NewAdapter(bookingsReader),
		support.NewAdapter(tickets),
	)
	if err != nil {
		return nil, fmt.Errorf("register adapters: %w", err)
	}

	opts := []service.Option{
		service.WithLogger(a.logger),
		service.WithCapabilities(caps),
		service.WithSampler(storefrontAdapter),
		service.WithTimeout(cfg.Resolution.Timeout),
		service.WithScanWindow(cfg.Resolution.ScanWindow),
		service.WithMaxAmbiguous(cfg.Resolution.MaxAmbiguous),
		service.WithDefaultAmbiguous(cfg.Resolution.DefaultAmbiguous),
	}
	if reg != nil {
		opts = append(opts, service.WithMetrics(metrics.New(reg)))
	}
	if err := a.auditPublisher(ctx, cfg.Audit, reg); err != nil {
		return nil, err
	}
	if a.publisher != nil {
		opts = append(opts, service.WithAuditPublisher(a.publisher))
	}

	return service.New(registry, opts...)
}

func (a *App) postgresReaders(ctx context.Context, cfg config.Server) (storefront.Reader, bookings.Reader, error) {
	if cfg.DatabaseURL == "" {
		a.logger.Warn("DATABASE_URL not set, storefront and bookings run in memory")
		a.Storefront = storefront.NewInMemory()
		a.Bookings = bookings.NewInMemory()
		return a.Storefront, a.Bookings, nil
	}
	db, err := postgres.Open(ctx, postgres.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	a.db = db
	return storefront.NewPostgres(db), bookings.NewPostgres(db), nil
}

func (a *App) supportReader(ctx context.Context, cfg config.Server) (support.Reader, error) {
	client, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	if client == nil {
		a.logger.Warn("REDIS_URL not set, support desk runs in memory")
		a.Support = support.NewInMemory()
		return a.Support, nil
	}
	a.redis = client
	return support.NewRedis(client), nil
}

// auditPublisher chains publisher -> ops tracker -> kafka sink. Without brokers there is no
// publisher and lookups are not audited.
func (a *App) auditPublisher(ctx context.Context, cfg config.AuditConfig, reg prometheus.Registerer) error {
	if len(cfg.Brokers) == 0 {
		a.logger.Warn("KAFKA_BROKERS not set, access audit disabled")
		return nil
	}
	sink, err := kafka.NewSink(ctx, kafka.Config{Brokers: cfg.Brokers, Topic: cfg.Topic})
	if err != nil {
		return fmt.Errorf("connect to kafka: %w", err)
	}
	a.sink = sink

	trackerOpts := []ops.Option{
		ops.WithSampler(ops.NewSampler(cfg.SampleRate)),
		ops.WithCircuitBreaker(ops.NewCircuitBreaker(0, 0)),
	}
	if reg != nil {
		trackerOpts = append(trackerOpts, ops.WithMetrics(ops.NewMetrics(reg)))
	}
	a.publisher = publisher.NewPublisher(
		ops.NewTracker(sink, trackerOpts...),
		publisher.WithAsyncBuffer(cfg.BufferSize),
		publisher.WithLogger(a.logger),
	)
	return nil
}

// Health pings every configured backend.
func (a *App) Health(ctx context.Context) error {
	var errs []error
	if a.db != nil {
		if err := a.db.PingContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("postgres: %w", err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Health(ctx); err != nil {
			errs = append(errs, fmt.Errorf("redis: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Close drains the audit buffer and releases connections. It is safe on a partly built App.
func (a *App) Close() {
	if a.publisher != nil {
		a.publisher.Close()
	}
	if a.sink != nil {
		a.sink.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis client", "error", err)
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close postgres", "error", err)
		}
	}
}
