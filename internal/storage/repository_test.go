package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renteasy/internal/core"
	"renteasy/internal/ledger"
)

var _ ledger.Store = (*SQLiteRepository)(nil)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "data", "renteasy.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSQLiteRepositorySeedRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	require.NoError(t, ledger.Seed(ctx, repo))

	props, err := repo.ListProperties(ctx)
	require.NoError(t, err)
	require.Len(t, props, 2)
	assert.Equal(t, "Kamau Heights", props[0].Name)
	require.Len(t, props[0].Units, 3)
	assert.Equal(t, "A1", props[0].Units[0].Name)
	assert.Equal(t, "John Kamau", props[0].Units[0].Tenant.Name)
	assert.Equal(t, core.UnitVacant, props[0].Units[1].Status)
	assert.Nil(t, props[0].Units[1].Tenant)

	payments, err := repo.ListPayments(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 3)
	assert.Equal(t, "RE-001-2025", payments[0].ReceiptNumber)
	assert.Equal(t, core.NewDate(2025, 1, 8), payments[0].Date)

	bills, err := repo.ListBills(ctx)
	require.NoError(t, err)
	require.Len(t, bills, 3)
	assert.Equal(t, "1", bills[0].ID)
	assert.Equal(t, core.BillOverdue, bills[2].Status)

	expenses, err := repo.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, expenses, 3)
	assert.Equal(t, "Plumbing repair - A1", expenses[0].Description)
}

func TestSQLiteRepositoryAssignTenant(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	require.NoError(t, ledger.Seed(ctx, repo))

	u, err := repo.AssignTenant(ctx, "2", core.Tenant{Name: "Grace Akinyi", Phone: "0756789012"})
	require.NoError(t, err)
	assert.Equal(t, core.UnitOccupied, u.Status)

	p, err := repo.GetProperty(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 3, p.OccupiedUnits())

	_, err = repo.AssignTenant(ctx, "2", core.Tenant{Name: "X", Phone: "1"})
	assert.ErrorIs(t, err, core.ErrUnitOccupied)
	_, err = repo.AssignTenant(ctx, "404", core.Tenant{Name: "X", Phone: "1"})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSQLiteRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	_, err := repo.GetProperty(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = repo.GetPayment(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = repo.GetBill(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = repo.MarkBillPaid(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteBill(ctx, "missing"), core.ErrNotFound)
	err = repo.AddUnit(ctx, "missing", core.Unit{ID: "u", Name: "A1", Rent: core.Money{Amount: 1}})
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSQLiteRepositoryBills(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	require.NoError(t, ledger.Seed(ctx, repo))

	b, err := repo.MarkBillPaid(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, core.BillPaid, b.Status)

	require.NoError(t, repo.DeleteBill(ctx, "1"))
	bills, err := repo.ListBills(ctx)
	require.NoError(t, err)
	assert.Len(t, bills, 2)
}

func TestSQLiteRepositoryPaymentSequence(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	require.NoError(t, ledger.Seed(ctx, repo))

	p, err := repo.AppendPayment(ctx, core.Payment{
		ID: "4", TenantName: "Sarah Muthoni", UnitName: "A3", PropertyName: "Kamau Heights",
		Amount: core.Money{Amount: 25000}, Date: core.NewDate(2025, 2, 1),
		TransactionCode: "RBK4D5E6F7", Status: core.PaymentCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, "RE-004-2025", p.ReceiptNumber)

	got, err := repo.GetPayment(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestMigratorUpDown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.db")
	mg, err := NewMigrator(path)
	require.NoError(t, err)
	defer mg.Close()

	v, _, err := mg.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(0), v)

	require.NoError(t, mg.Up())
	require.NoError(t, mg.Up())
	v, dirty, err := mg.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(1), v)
	assert.False(t, dirty)

	require.NoError(t, mg.Down())
	v, _, err = mg.Version()
	require.NoError(t, err)
	assert.Equal(t, uint(0), v)
}
