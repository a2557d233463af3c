package services

import (
	"context"
	"fmt"

	"renteasy/internal/core"
	"renteasy/internal/ledger"
)

// DefaultRecentLimit caps the dashboard's recent and overdue lists.
const DefaultRecentLimit = 5

// DashboardService derives the overview statistics. It never mutates state.
type DashboardService struct {
	store ledger.Store
	limit int
	deps
}

func NewDashboardService(store ledger.Store, recentLimit int, opts ...Option) *DashboardService {
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}
	return &DashboardService{store: store, limit: recentLimit, deps: newDeps(opts)}
}

// Stats returns the overview, served from the stats cache when one is
// configured. Entries are keyed by day so a cached overview never outlives
// the date it was computed for. A result computed while a mutation purged
// the cache is returned but not stored.
func (s *DashboardService) Stats(ctx context.Context) (core.DashboardStats, error) {
	if s.stats == nil {
		return s.compute(ctx)
	}
	key := "dashboard:" + s.today().String()
	if cached, ok := s.stats.Get(key); ok {
		return cached, nil
	}
	gen := s.stats.Generation()
	stats, err := s.compute(ctx)
	if err != nil {
		return core.DashboardStats{}, err
	}
	s.stats.SetIfGeneration(key, stats, gen)
	return stats, nil
}

func (s *DashboardService) compute(ctx context.Context) (core.DashboardStats, error) {
	props, err := s.store.ListProperties(ctx)
	if err != nil {
		return core.DashboardStats{}, fmt.Errorf("list properties: %w", err)
	}
	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		return core.DashboardStats{}, fmt.Errorf("list payments: %w", err)
	}
	bills, err := s.store.ListBills(ctx)
	if err != nil {
		return core.DashboardStats{}, fmt.Errorf("list bills: %w", err)
	}

	today := s.today()
	var stats core.DashboardStats
	stats.TotalProperties = len(props)
	occupied := 0
	for _, p := range props {
		stats.TotalUnits += p.TotalUnits()
		occupied += p.OccupiedUnits()
	}
	stats.TotalTenants = occupied
	stats.OccupancyRate = core.OccupancyRate(occupied, stats.TotalUnits)
	stats.TotalIncome = core.SummarizePayments(payments, today).MonthTotal

	overdue := core.SummarizeBills(bills).Overdue
	stats.TotalArrears = overdue.Total
	stats.OverdueCount = overdue.Count

	if len(payments) > s.limit {
		payments = payments[:s.limit]
	}
	stats.RecentPayments = payments

	tenants := tenantIndex(props)
	for _, b := range bills {
		if len(stats.OverdueItems) == s.limit {
			break
		}
		if b.Status != core.BillOverdue {
			continue
		}
		name, ok := tenants[unitKey(b.PropertyName, b.UnitName)]
		if !ok {
			name = UnknownTenant
		}
		stats.OverdueItems = append(stats.OverdueItems, core.OverdueItem{
			BillID:       b.ID,
			TenantName:   name,
			PropertyName: b.PropertyName,
			UnitName:     b.UnitName,
			Title:        b.Title,
			Amount:       b.Amount,
			DueDate:      b.DueDate,
			DaysOverdue:  b.DaysOverdue(today),
		})
	}
	return stats, nil
}
