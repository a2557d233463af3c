package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"renteasy/internal/core"
	"renteasy/internal/ledger"
)

// ExpenseInput is a landlord expense. An empty Date means today.
type ExpenseInput struct {
	Description string
	Category    string
	Amount      string
	Date        string
}

// ExpenseService records landlord-side spending for the P&L statement.
type ExpenseService struct {
	store ledger.ExpenseStore
	deps
}

func NewExpenseService(store ledger.ExpenseStore, opts ...Option) *ExpenseService {
	return &ExpenseService{store: store, deps: newDeps(opts)}
}

func (s *ExpenseService) RecordExpense(ctx context.Context, in ExpenseInput) (core.Expense, error) {
	e := core.Expense{
		ID:          s.newID(),
		Description: strings.TrimSpace(in.Description),
		Category:    strings.TrimSpace(in.Category),
		Date:        s.today(),
	}
	amount, err := core.ParseMoney(in.Amount)
	if err != nil {
		return core.Expense{}, err
	}
	e.Amount = amount
	if strings.TrimSpace(in.Date) != "" {
		if e.Date, err = core.ParseDate(in.Date); err != nil {
			return core.Expense{}, err
		}
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	if err := s.store.AddExpense(ctx, e); err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}
	slog.InfoContext(ctx, "Expense recorded", "id", e.ID, "category", e.Category, "amount", e.Amount.Amount)
	return e, nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	return s.store.ListExpenses(ctx)
}
