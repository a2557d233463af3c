package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renteasy/internal/cache"
	"renteasy/internal/core"
	"renteasy/internal/ledger/memory"
)

func TestDashboardService_Seed(t *testing.T) {
	ctx := context.Background()
	svc := NewDashboardService(seededStore(t), 2, WithClock(fixedClock(2025, 1, 25)))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(65000), stats.TotalIncome.Amount)
	assert.Equal(t, int64(8000), stats.TotalArrears.Amount)
	assert.Equal(t, 1, stats.OverdueCount)
	assert.Equal(t, 80, stats.OccupancyRate)
	assert.Equal(t, 2, stats.TotalProperties)
	assert.Equal(t, 5, stats.TotalUnits)
	assert.Equal(t, 4, stats.TotalTenants)

	require.Len(t, stats.RecentPayments, 2)
	assert.Equal(t, "RE-001-2025", stats.RecentPayments[0].ReceiptNumber)
	require.Len(t, stats.OverdueItems, 1)
	assert.Equal(t, "Plumbing Repair", stats.OverdueItems[0].Title)
	assert.Equal(t, 5, stats.OverdueItems[0].DaysOverdue)
}

func TestDashboardService_MonthBoundary(t *testing.T) {
	ctx := context.Background()
	svc := NewDashboardService(seededStore(t), 0, WithClock(fixedClock(2025, 2, 1)))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.True(t, stats.TotalIncome.IsZero())
	assert.Len(t, stats.RecentPayments, 3)
}

func TestDashboardService_Empty(t *testing.T) {
	stats, err := NewDashboardService(memory.New(), 5).Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, stats.OccupancyRate)
	assert.Equal(t, core.Money{}, stats.TotalArrears)
	assert.Empty(t, stats.RecentPayments)
}

func TestDashboardService_CacheInvalidatedByMutation(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	stats := cache.NewLRUCache[core.DashboardStats](4, time.Minute)
	clock := fixedClock(2025, 1, 25)

	dash := NewDashboardService(store, 5, WithClock(clock), WithStatsCache(stats))
	payments := NewPaymentService(store, WithClock(clock), WithStatsCache(stats))

	before, err := dash.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Size())

	again, err := dash.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.TotalIncome, again.TotalIncome)

	_, err = payments.RecordPayment(ctx, PaymentInput{
		TenantName: "Grace Akinyi", Amount: "15000", TransactionCode: "RBK9Z8Y7X6",
		PropertyName: "Riverside Apartments", UnitName: "A1",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Size())

	after, err := dash.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.TotalIncome.Amount+15000, after.TotalIncome.Amount)
	assert.Len(t, after.RecentPayments, 4)
}

// mutatingStore runs hook once, in the middle of a dashboard computation.
type mutatingStore struct {
	*memory.Store
	hook func()
}

func (m *mutatingStore) ListBills(ctx context.Context) ([]core.Bill, error) {
	if m.hook != nil {
		hook := m.hook
		m.hook = nil
		hook()
	}
	return m.Store.ListBills(ctx)
}

func TestDashboardService_MutationDuringComputeIsNotCached(t *testing.T) {
	ctx := context.Background()
	store := &mutatingStore{Store: seededStore(t)}
	stats := cache.NewLRUCache[core.DashboardStats](4, time.Minute)
	clock := fixedClock(2025, 1, 25)

	dash := NewDashboardService(store, 5, WithClock(clock), WithStatsCache(stats))
	payments := NewPaymentService(store.Store, WithClock(clock), WithStatsCache(stats))
	store.hook = func() {
		_, err := payments.RecordPayment(ctx, PaymentInput{
			TenantName: "Grace Akinyi", Amount: "1000", TransactionCode: "RBK5E6F7G8",
		})
		require.NoError(t, err)
	}

	first, err := dash.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(65000), first.TotalIncome.Amount)
	assert.Equal(t, 0, stats.Size())

	second, err := dash.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(66000), second.TotalIncome.Amount)
	assert.Equal(t, 1, stats.Size())
}
