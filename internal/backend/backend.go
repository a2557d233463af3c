// Package backend assembles the ledger store, the event client and the
// services on top of them from configuration.
package backend

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"renteasy/internal/amqp"
	"renteasy/internal/cache"
	"renteasy/internal/config"
	"renteasy/internal/core"
	"renteasy/internal/ledger"
	"renteasy/internal/ledger/memory"
	"renteasy/internal/services"
	"renteasy/internal/storage"
)

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Events; an empty URL disables them
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Dashboard
	RecentLimit int
	CacheTTL    time.Duration

	// Memory specific: load the demo ledger on start
	Seed bool
}

// FromAppConfig converts the application config to backend config
func FromAppConfig(appConfig *config.Config) (Config, error) {
	if appConfig == nil {
		return Config{}, fmt.Errorf("app config is nil")
	}

	backendType := BackendType(appConfig.DataBackend)
	if !backendType.IsValid() {
		return Config{}, fmt.Errorf("invalid backend type in config: %s", appConfig.DataBackend)
	}

	return Config{
		Type:         backendType,
		SQLiteDBPath: appConfig.SQLiteDBPath,
		AMQPURL:      appConfig.AMQPURL,
		AMQPExchange: appConfig.AMQPExchange,
		AMQPQueue:    appConfig.AMQPQueue,
		RecentLimit:  appConfig.DashboardRecentLimit,
		CacheTTL:     appConfig.CacheTTL,
		Seed:         backendType == MemoryBackend,
	}, nil
}

// Validate validates the backend configuration
func (c Config) Validate() error {
	if !c.Type.IsValid() {
		return fmt.Errorf("invalid backend type: %s", c.Type)
	}
	if c.Type == SQLiteBackend && c.SQLiteDBPath == "" {
		return fmt.Errorf("SQLite database path is required for sqlite backend")
	}
	return nil
}

// pinger is implemented by stores backed by an external resource.
type pinger interface {
	Ping(ctx context.Context) error
}

// Backend is the assembled application: one store and the services over it.
type Backend struct {
	Type  BackendType
	Store ledger.Store
	// Events is nil when no broker is configured.
	Events *amqp.Client
	// Stats caches dashboard statistics; nil when caching is disabled.
	Stats *cache.LRUCache[core.DashboardStats]

	Properties *services.PropertyService
	Payments   *services.PaymentService
	Bills      *services.BillService
	Expenses   *services.ExpenseService
	Reports    *services.ReportService
	Dashboard  *services.DashboardService

	cleanup []func() error
}

// New creates the store for cfg, connects the event client when configured
// and wires the services. extra options are applied to every service.
func New(ctx context.Context, cfg Config, logger *slog.Logger, extra ...services.Option) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Backend{Type: cfg.Type}
	switch cfg.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		b.Store = repo
		b.cleanup = append(b.cleanup, repo.Close)
		logger.InfoContext(ctx, "Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
	case MemoryBackend:
		store := memory.New()
		if cfg.Seed {
			if err := ledger.Seed(ctx, store); err != nil {
				return nil, fmt.Errorf("seed memory store: %w", err)
			}
		}
		b.Store = store
		logger.InfoContext(ctx, "Initialized memory backend", "seeded", cfg.Seed)
	}

	opts := make([]services.Option, 0, len(extra)+2)
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events", "error", err)
		} else {
			b.Events = client
			b.cleanup = append(b.cleanup, client.Close)
			opts = append(opts, services.WithPublisher(client))
			logger.InfoContext(ctx, "Initialized AMQP client", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}
	if cfg.CacheTTL > 0 {
		b.Stats = cache.NewLRUCache[core.DashboardStats](8, cfg.CacheTTL)
		opts = append(opts, services.WithStatsCache(b.Stats))
	}
	opts = append(opts, extra...)

	b.Properties = services.NewPropertyService(b.Store, opts...)
	b.Payments = services.NewPaymentService(b.Store, opts...)
	b.Bills = services.NewBillService(b.Store, opts...)
	b.Expenses = services.NewExpenseService(b.Store, opts...)
	b.Reports = services.NewReportService(b.Store, opts...)
	b.Dashboard = services.NewDashboardService(b.Store, cfg.RecentLimit, opts...)
	return b, nil
}

// Ping reports whether the store is reachable. The memory store always is.
func (b *Backend) Ping(ctx context.Context) error {
	if p, ok := b.Store.(pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close releases the event client and the store, newest first.
func (b *Backend) Close() error {
	var errs []error
	for i := len(b.cleanup) - 1; i >= 0; i-- {
		if err := b.cleanup[i](); err != nil {
			errs = append(errs, err)
		}
	}
	b.cleanup = nil
	return errors.Join(errs...)
}
