// Package ledger declares the state stores behind the rental services.
package ledger

import (
	"context"

	"renteasy/internal/core"
)

// Ports for the state adapters. Every read returns copies; callers never hold
// a reference into a store's state.
type (
	PropertyStore interface {
		AddProperty(ctx context.Context, p core.Property) error
		// AddUnit appends a unit to the property. Unknown property ids return
		// core.ErrNotFound.
		AddUnit(ctx context.Context, propertyID string, u core.Unit) error
		// AssignTenant places a tenant in the unit with the given id, whichever
		// property holds it.
		AssignTenant(ctx context.Context, unitID string, t core.Tenant) (core.Unit, error)
		ListProperties(ctx context.Context) ([]core.Property, error)
		GetProperty(ctx context.Context, id string) (core.Property, error)
	}

	PaymentStore interface {
		// AppendPayment assigns the next ledger sequence to p and stores it.
		// The returned payment carries the sequence and receipt number.
		AppendPayment(ctx context.Context, p core.Payment) (core.Payment, error)
		// ListPayments returns the ledger most-recent-first.
		ListPayments(ctx context.Context) ([]core.Payment, error)
		GetPayment(ctx context.Context, id string) (core.Payment, error)
	}

	BillStore interface {
		AddBill(ctx context.Context, b core.Bill) error
		MarkBillPaid(ctx context.Context, id string) (core.Bill, error)
		DeleteBill(ctx context.Context, id string) error
		// ListBills returns bills newest first.
		ListBills(ctx context.Context) ([]core.Bill, error)
		GetBill(ctx context.Context, id string) (core.Bill, error)
	}

	ExpenseStore interface {
		AddExpense(ctx context.Context, e core.Expense) error
		// ListExpenses returns expenses newest first.
		ListExpenses(ctx context.Context) ([]core.Expense, error)
	}

	// Store bundles every ledger; both adapters implement it.
	Store interface {
		PropertyStore
		PaymentStore
		BillStore
		ExpenseStore
	}
)
