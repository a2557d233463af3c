// Package memory is the in-process ledger.Store used by default and in tests.
package memory

import (
	"context"
	"sync"

	"renteasy/internal/core"
)

type Store struct {
	mu         sync.Mutex
	properties []core.Property
	payments   []core.Payment // ledger order
	bills      []core.Bill    // newest first
	expenses   []core.Expense // newest first
}

func New() *Store {
	return &Store{}
}

func (s *Store) AddProperty(_ context.Context, p core.Property) error {
	if err := p.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.properties = append(s.properties, p.Clone())
	return nil
}

func (s *Store) AddUnit(_ context.Context, propertyID string, u core.Unit) error {
	if err := u.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.properties {
		if s.properties[i].ID == propertyID {
			s.properties[i].Units = append(s.properties[i].Units, u.Clone())
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) AssignTenant(_ context.Context, unitID string, t core.Tenant) (core.Unit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.properties {
		j := s.properties[i].FindUnit(unitID)
		if j < 0 {
			continue
		}
		u := &s.properties[i].Units[j]
		if err := u.AssignTenant(t); err != nil {
			return core.Unit{}, err
		}
		return u.Clone(), nil
	}
	return core.Unit{}, core.ErrNotFound
}

func (s *Store) ListProperties(_ context.Context) ([]core.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Property, len(s.properties))
	for i, p := range s.properties {
		out[i] = p.Clone()
	}
	return out, nil
}

func (s *Store) GetProperty(_ context.Context, id string) (core.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.properties {
		if p.ID == id {
			return p.Clone(), nil
		}
	}
	return core.Property{}, core.ErrNotFound
}

func (s *Store) AppendPayment(_ context.Context, p core.Payment) (core.Payment, error) {
	if err := p.Validate(); err != nil {
		return core.Payment{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p.AssignSequence(len(s.payments) + 1)
	s.payments = append(s.payments, p)
	return p, nil
}

func (s *Store) ListPayments(_ context.Context) ([]core.Payment, error) {
	s.mu.Lock()
	out := append([]core.Payment(nil), s.payments...)
	s.mu.Unlock()
	core.SortPaymentsRecentFirst(out)
	return out, nil
}

func (s *Store) GetPayment(_ context.Context, id string) (core.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return core.Payment{}, core.ErrNotFound
}

func (s *Store) AddBill(_ context.Context, b core.Bill) error {
	if err := b.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills = append([]core.Bill{b}, s.bills...)
	return nil
}

func (s *Store) MarkBillPaid(_ context.Context, id string) (core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bills {
		if s.bills[i].ID == id {
			s.bills[i].MarkPaid()
			return s.bills[i], nil
		}
	}
	return core.Bill{}, core.ErrNotFound
}

func (s *Store) DeleteBill(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.bills {
		if s.bills[i].ID == id {
			s.bills = append(s.bills[:i], s.bills[i+1:]...)
			return nil
		}
	}
	return core.ErrNotFound
}

func (s *Store) ListBills(_ context.Context) ([]core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Bill(nil), s.bills...), nil
}

func (s *Store) GetBill(_ context.Context, id string) (core.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.bills {
		if b.ID == id {
			return b, nil
		}
	}
	return core.Bill{}, core.ErrNotFound
}

func (s *Store) AddExpense(_ context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append([]core.Expense{e}, s.expenses...)
	return nil
}

func (s *Store) ListExpenses(_ context.Context) ([]core.Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Expense(nil), s.expenses...), nil
}
