package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"renteasy/internal/amqp"
	"renteasy/internal/core"
	"renteasy/internal/export"
	"renteasy/internal/report"
	"renteasy/internal/sheets"
)

// PaymentSource loads payments for receipt rendering.
type PaymentSource interface {
	ListPayments(ctx context.Context) ([]core.Payment, error)
	GetPayment(ctx context.Context, id string) (core.Payment, error)
}

// ArrearsSource renders the current arrears report.
type ArrearsSource interface {
	Arrears(ctx context.Context) (report.Document, error)
}

// ReceiptWorker turns ledger events into documents: a receipt for each
// recorded payment and a fresh arrears report whenever a bill is paid.
type ReceiptWorker struct {
	payments  PaymentSource
	arrears   ArrearsSource
	saver     export.Saver
	mirror    sheets.PaymentMirror
	batchSize int
}

// NewReceiptWorker builds a worker. mirror may be nil.
func NewReceiptWorker(payments PaymentSource, arrears ArrearsSource, saver export.Saver, mirror sheets.PaymentMirror, batchSize int) *ReceiptWorker {
	if batchSize <= 0 {
		batchSize = 50
	}
	return &ReceiptWorker{
		payments:  payments,
		arrears:   arrears,
		saver:     saver,
		mirror:    mirror,
		batchSize: batchSize,
	}
}

// HandleMessage processes one event. Events about records that no longer
// exist are dropped; any other failure is returned so the delivery is retried.
func (w *ReceiptWorker) HandleMessage(ctx context.Context, msg *amqp.EventMessage) error {
	slog.InfoContext(ctx, "Processing event", "type", msg.Type, "id", msg.ID)

	switch msg.Type {
	case amqp.EventPaymentRecorded:
		p, err := w.payments.GetPayment(ctx, msg.ID)
		if errors.Is(err, core.ErrNotFound) {
			slog.WarnContext(ctx, "Payment not found, dropping event", "id", msg.ID)
			return nil
		}
		if err != nil {
			return fmt.Errorf("get payment: %w", err)
		}
		return w.deliverReceipt(ctx, p)
	case amqp.EventBillPaid:
		doc, err := w.arrears.Arrears(ctx)
		if err != nil {
			return fmt.Errorf("render arrears report: %w", err)
		}
		if _, err := w.saver.Save(ctx, doc); err != nil {
			return fmt.Errorf("save arrears report: %w", err)
		}
		return nil
	default:
		slog.WarnContext(ctx, "Unknown event type, dropping", "type", msg.Type, "id", msg.ID)
		return nil
	}
}

// StartupBackfill renders receipts for the most recent payments, covering
// events lost while the worker was down. Saving and mirroring are both
// idempotent, so re-running it is safe.
func (w *ReceiptWorker) StartupBackfill(ctx context.Context) error {
	payments, err := w.payments.ListPayments(ctx)
	if err != nil {
		return fmt.Errorf("list payments for backfill: %w", err)
	}
	if len(payments) > w.batchSize {
		payments = payments[:w.batchSize]
	}
	if len(payments) == 0 {
		slog.InfoContext(ctx, "No payments to backfill")
		return nil
	}

	successCount, errorCount := 0, 0
	for _, p := range payments {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := w.deliverReceipt(ctx, p); err != nil {
			slog.ErrorContext(ctx, "Failed to backfill receipt", "id", p.ID, "receipt", p.ReceiptNumber, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup backfill completed",
		"total", len(payments),
		"delivered", successCount,
		"errors", errorCount)
	return nil
}

func (w *ReceiptWorker) deliverReceipt(ctx context.Context, p core.Payment) error {
	location, err := w.saver.Save(ctx, report.Receipt(p))
	if err != nil {
		return fmt.Errorf("save receipt: %w", err)
	}

	if w.mirror == nil {
		slog.InfoContext(ctx, "Receipt delivered", "receipt", p.ReceiptNumber, "location", location)
		return nil
	}
	ref, err := w.mirror.AppendPayment(ctx, p)
	if err != nil {
		return fmt.Errorf("mirror payment: %w", err)
	}
	slog.InfoContext(ctx, "Receipt delivered",
		"receipt", p.ReceiptNumber,
		"location", location,
		"sheets_ref", ref,
		"amount", p.Amount.Amount)
	return nil
}
