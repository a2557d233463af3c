package sheets

import (
	"context"

	"renteasy/internal/core"
)

// Ports for outbound adapters.
type (
	// PaymentMirror copies recorded payments into an external spreadsheet.
	// Appending a payment whose receipt is already mirrored is a no-op that
	// returns the existing row.
	PaymentMirror interface {
		AppendPayment(ctx context.Context, p core.Payment) (rowRef string, err error)
	}
)
