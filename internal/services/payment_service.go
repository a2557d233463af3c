package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"renteasy/internal/amqp"
	"renteasy/internal/core"
	"renteasy/internal/ledger"
	"renteasy/internal/report"
)

// PaymentInput is a rent payment as submitted by the landlord.
type PaymentInput struct {
	TenantName      string
	Amount          string
	TransactionCode string
	PropertyName    string
	UnitName        string
}

// PaymentService records rent payments and issues receipts.
type PaymentService struct {
	store ledger.PaymentStore
	deps
}

func NewPaymentService(store ledger.PaymentStore, opts ...Option) *PaymentService {
	return &PaymentService{store: store, deps: newDeps(opts)}
}

// RecordPayment stores a completed payment dated today and assigns its
// receipt number.
func (s *PaymentService) RecordPayment(ctx context.Context, in PaymentInput) (core.Payment, error) {
	tenant := strings.TrimSpace(in.TenantName)
	if tenant == "" {
		return core.Payment{}, core.ErrEmptyTenantName
	}
	amount, err := core.ParseMoney(in.Amount)
	if err != nil {
		return core.Payment{}, err
	}
	code := strings.TrimSpace(in.TransactionCode)
	if code == "" {
		return core.Payment{}, core.ErrEmptyTransactionCode
	}

	p, err := s.store.AppendPayment(ctx, core.Payment{
		ID:              s.newID(),
		TenantName:      tenant,
		UnitName:        strings.TrimSpace(in.UnitName),
		PropertyName:    strings.TrimSpace(in.PropertyName),
		Amount:          amount,
		Date:            s.today(),
		TransactionCode: code,
		Status:          core.PaymentCompleted,
	})
	if err != nil {
		return core.Payment{}, fmt.Errorf("record payment: %w", err)
	}

	s.changed()
	slog.InfoContext(ctx, "Payment recorded",
		"id", p.ID,
		"receipt", p.ReceiptNumber,
		"tenant", p.TenantName,
		"amount", p.Amount.Amount)

	s.publish(ctx, amqp.EventPaymentRecorded, p.ID, func(pub EventPublisher) error {
		return pub.PublishPaymentRecorded(ctx, p.ID)
	})
	return p, nil
}

// ListPayments returns the ledger most-recent-first.
func (s *PaymentService) ListPayments(ctx context.Context) ([]core.Payment, error) {
	return s.store.ListPayments(ctx)
}

func (s *PaymentService) GetPayment(ctx context.Context, id string) (core.Payment, error) {
	return s.store.GetPayment(ctx, id)
}

// Summary aggregates the ledger; month figures cover the current month.
func (s *PaymentService) Summary(ctx context.Context) (core.PaymentSummary, error) {
	ps, err := s.store.ListPayments(ctx)
	if err != nil {
		return core.PaymentSummary{}, fmt.Errorf("list payments: %w", err)
	}
	return core.SummarizePayments(ps, s.today()), nil
}

// Receipt renders the receipt of a stored payment.
func (s *PaymentService) Receipt(ctx context.Context, id string) (report.Document, error) {
	p, err := s.store.GetPayment(ctx, id)
	if err != nil {
		return report.Document{}, err
	}
	return report.Receipt(p), nil
}
