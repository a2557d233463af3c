package ledger

import (
	"context"
	"fmt"

	"renteasy/internal/core"
)

type seedUnit struct {
	id, name string
	rent     int64
	tenant   *core.Tenant
}

// Seed loads the demo portfolio: two Nairobi properties, three payments,
// three bills and three expenses. It expects an empty store.
func Seed(ctx context.Context, s Store) error {
	properties := []struct {
		id, name, location string
		units              []seedUnit
	}{
		{"1", "Kamau Heights", "Kileleshwa, Nairobi", []seedUnit{
			{"1", "A1", 25000, &core.Tenant{Name: "John Kamau", Phone: "0712345678"}},
			{"2", "A2", 25000, nil},
			{"3", "A3", 25000, &core.Tenant{Name: "Sarah Muthoni", Phone: "0723456789"}},
		}},
		{"2", "Riverside Apartments", "Westlands, Nairobi", []seedUnit{
			{"4", "B1", 20000, &core.Tenant{Name: "James Kimani", Phone: "0734567890"}},
			{"5", "B2", 18000, &core.Tenant{Name: "Mary Wanjiku", Phone: "0745678901"}},
		}},
	}
	for _, p := range properties {
		if err := s.AddProperty(ctx, core.Property{ID: p.id, Name: p.name, Location: p.location}); err != nil {
			return fmt.Errorf("seed property %s: %w", p.name, err)
		}
		for _, u := range p.units {
			unit := core.Unit{ID: u.id, Name: u.name, Rent: core.Money{Amount: u.rent}, Status: core.UnitVacant}
			if err := s.AddUnit(ctx, p.id, unit); err != nil {
				return fmt.Errorf("seed unit %s: %w", u.name, err)
			}
			if u.tenant == nil {
				continue
			}
			if _, err := s.AssignTenant(ctx, u.id, *u.tenant); err != nil {
				return fmt.Errorf("seed tenant %s: %w", u.tenant.Name, err)
			}
		}
	}

	payments := []core.Payment{
		{ID: "1", TenantName: "John Kamau", UnitName: "A1", PropertyName: "Kamau Heights", Amount: core.Money{Amount: 25000}, Date: core.NewDate(2025, 1, 8), TransactionCode: "RBK1A2B3C4"},
		{ID: "2", TenantName: "Mary Wanjiku", UnitName: "B2", PropertyName: "Riverside Apartments", Amount: core.Money{Amount: 18000}, Date: core.NewDate(2025, 1, 7), TransactionCode: "RBK2B3C4D5"},
		{ID: "3", TenantName: "Peter Ochieng", UnitName: "C3", PropertyName: "Garden View", Amount: core.Money{Amount: 22000}, Date: core.NewDate(2025, 1, 6), TransactionCode: "RBK3C4D5E6"},
	}
	for _, p := range payments {
		p.Status = core.PaymentCompleted
		if _, err := s.AppendPayment(ctx, p); err != nil {
			return fmt.Errorf("seed payment %s: %w", p.TransactionCode, err)
		}
	}

	// Listed newest first, so insert in reverse.
	bills := []core.Bill{
		{ID: "1", Type: core.BillElectricity, Title: "Electricity Bill - December 2024", Description: "Monthly electricity consumption", Amount: core.Money{Amount: 3500}, DueDate: core.NewDate(2025, 1, 15), PropertyName: "Kamau Heights", UnitName: "A1", Status: core.BillPending, CreatedDate: core.NewDate(2025, 1, 1)},
		{ID: "2", Type: core.BillWater, Title: "Water Bill - December 2024", Description: "Monthly water usage", Amount: core.Money{Amount: 1200}, DueDate: core.NewDate(2025, 1, 10), PropertyName: "Riverside Apartments", UnitName: "B2", Status: core.BillPaid, CreatedDate: core.NewDate(2025, 1, 1)},
		{ID: "3", Type: core.BillMaintenance, Title: "Plumbing Repair", Description: "Fix leaking pipes in unit C3", Amount: core.Money{Amount: 8000}, DueDate: core.NewDate(2025, 1, 20), PropertyName: "Garden View", UnitName: "C3", Status: core.BillOverdue, CreatedDate: core.NewDate(2024, 12, 28)},
	}
	for i := len(bills) - 1; i >= 0; i-- {
		if err := s.AddBill(ctx, bills[i]); err != nil {
			return fmt.Errorf("seed bill %s: %w", bills[i].Title, err)
		}
	}

	expenses := []core.Expense{
		{ID: "1", Description: "Plumbing repair - A1", Category: "Maintenance", Amount: core.Money{Amount: 3500}, Date: core.NewDate(2025, 1, 5)},
		{ID: "2", Description: "Security services", Category: "Security", Amount: core.Money{Amount: 8000}, Date: core.NewDate(2025, 1, 1)},
		{ID: "3", Description: "Cleaning supplies", Category: "Maintenance", Amount: core.Money{Amount: 1200}, Date: core.NewDate(2025, 1, 3)},
	}
	for i := len(expenses) - 1; i >= 0; i-- {
		if err := s.AddExpense(ctx, expenses[i]); err != nil {
			return fmt.Errorf("seed expense %s: %w", expenses[i].Description, err)
		}
	}
	return nil
}
