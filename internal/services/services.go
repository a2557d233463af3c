// Package services holds the rental ledger's use cases. Services validate
// input, stamp ids and dates, persist through the ledger ports and announce
// changes on the event bus.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"renteasy/internal/cache"
	"renteasy/internal/core"
)

// EventPublisher announces ledger changes. A nil publisher disables events.
type EventPublisher interface {
	PublishPaymentRecorded(ctx context.Context, paymentID string) error
	PublishBillPaid(ctx context.Context, billID string) error
}

// Clock returns the current time.
type Clock func() time.Time

// IDGenerator returns a fresh unique record id.
type IDGenerator func() string

// NewID returns a time-ordered UUIDv7, falling back to a random UUID.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// StatsCache holds computed dashboard statistics. Every mutating service
// purges it.
type StatsCache = cache.Cache[core.DashboardStats]

type deps struct {
	clock     Clock
	newID     IDGenerator
	publisher EventPublisher
	stats     StatsCache
}

// Option configures a service.
type Option func(*deps)

func WithClock(c Clock) Option {
	return func(d *deps) { d.clock = c }
}

func WithIDGenerator(g IDGenerator) Option {
	return func(d *deps) { d.newID = g }
}

func WithPublisher(p EventPublisher) Option {
	return func(d *deps) { d.publisher = p }
}

// WithStatsCache shares a dashboard cache between services.
func WithStatsCache(c StatsCache) Option {
	return func(d *deps) { d.stats = c }
}

func newDeps(opts []Option) deps {
	d := deps{clock: time.Now, newID: NewID}
	for _, o := range opts {
		o(&d)
	}
	return d
}

func (d deps) today() core.Date {
	return core.DateOf(d.clock())
}

// publish runs fn against the publisher. Failures are logged and never
// returned: the record is already stored.
func (d deps) publish(ctx context.Context, event, id string, fn func(EventPublisher) error) {
	if d.publisher == nil {
		slog.WarnContext(ctx, "Event publisher not available, skipping event", "event", event, "id", id)
		return
	}
	if err := fn(d.publisher); err != nil {
		slog.ErrorContext(ctx, "Failed to publish event", "event", event, "id", id, "error", err)
	}
}

// changed invalidates derived state after a successful mutation.
func (d deps) changed() {
	if d.stats != nil {
		d.stats.Purge()
	}
}
