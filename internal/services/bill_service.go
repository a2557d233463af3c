package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"renteasy/internal/amqp"
	"renteasy/internal/core"
	"renteasy/internal/ledger"
)

// BillInput is a utility or service bill as submitted by the landlord.
type BillInput struct {
	Type         string
	Title        string
	Description  string
	Amount       string
	DueDate      string
	PropertyName string
	UnitName     string
}

// BillService tracks bills from creation to payment.
type BillService struct {
	store ledger.BillStore
	deps
}

func NewBillService(store ledger.BillStore, opts ...Option) *BillService {
	return &BillService{store: store, deps: newDeps(opts)}
}

// AddBill records a bill. It starts overdue when the due date has already
// passed and pending otherwise.
func (s *BillService) AddBill(ctx context.Context, in BillInput) (core.Bill, error) {
	if strings.TrimSpace(in.Type) == "" {
		return core.Bill{}, core.ErrInvalidBillType
	}
	billType, err := core.ParseBillType(in.Type)
	if err != nil {
		return core.Bill{}, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return core.Bill{}, core.ErrEmptyTitle
	}
	amount, err := core.ParseMoney(in.Amount)
	if err != nil {
		return core.Bill{}, err
	}
	if strings.TrimSpace(in.DueDate) == "" {
		return core.Bill{}, core.ErrMissingDueDate
	}
	due, err := core.ParseDate(in.DueDate)
	if err != nil {
		return core.Bill{}, err
	}
	property := strings.TrimSpace(in.PropertyName)
	if property == "" {
		return core.Bill{}, core.ErrEmptyPropertyName
	}

	today := s.today()
	b := core.Bill{
		ID:           s.newID(),
		Type:         billType,
		Title:        title,
		Description:  strings.TrimSpace(in.Description),
		Amount:       amount,
		DueDate:      due,
		PropertyName: property,
		UnitName:     strings.TrimSpace(in.UnitName),
		Status:       core.BillStatusFor(due, today),
		CreatedDate:  today,
	}
	if err := s.store.AddBill(ctx, b); err != nil {
		return core.Bill{}, fmt.Errorf("add bill: %w", err)
	}
	s.changed()
	slog.InfoContext(ctx, "Bill added", "id", b.ID, "type", b.Type, "status", b.Status, "amount", b.Amount.Amount)
	return b, nil
}

// MarkPaid settles a bill. Settling a paid bill again succeeds and changes
// nothing.
func (s *BillService) MarkPaid(ctx context.Context, id string) (core.Bill, error) {
	b, err := s.store.MarkBillPaid(ctx, id)
	if err != nil {
		return core.Bill{}, fmt.Errorf("mark bill paid: %w", err)
	}
	s.changed()
	slog.InfoContext(ctx, "Bill marked paid", "id", id)
	s.publish(ctx, amqp.EventBillPaid, id, func(pub EventPublisher) error {
		return pub.PublishBillPaid(ctx, id)
	})
	return b, nil
}

func (s *BillService) DeleteBill(ctx context.Context, id string) error {
	if err := s.store.DeleteBill(ctx, id); err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	s.changed()
	slog.InfoContext(ctx, "Bill deleted", "id", id)
	return nil
}

// ListBills returns bills newest first.
func (s *BillService) ListBills(ctx context.Context) ([]core.Bill, error) {
	return s.store.ListBills(ctx)
}

func (s *BillService) GetBill(ctx context.Context, id string) (core.Bill, error) {
	return s.store.GetBill(ctx, id)
}

// Summary totals bills per status.
func (s *BillService) Summary(ctx context.Context) (core.BillSummary, error) {
	bills, err := s.store.ListBills(ctx)
	if err != nil {
		return core.BillSummary{}, fmt.Errorf("list bills: %w", err)
	}
	return core.SummarizeBills(bills), nil
}
