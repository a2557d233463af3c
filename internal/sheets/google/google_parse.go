package google

import (
	"fmt"
	"strings"

	"renteasy/internal/core"
)

// paymentRow lays out one payment as columns A..G: receipt, date, tenant,
// property, unit, amount, M-Pesa code.
func paymentRow(p core.Payment) []any {
	return []any{
		p.ReceiptNumber,
		p.Date.String(),
		p.TenantName,
		p.PropertyName,
		p.UnitName,
		p.Amount.Amount,
		p.TransactionCode,
	}
}

// findReceipt scans column A for receipt and returns its 1-based row.
func findReceipt(values [][]any, receipt string) (int, bool) {
	for i, row := range values {
		if len(row) == 0 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(fmt.Sprint(row[0])), receipt) {
			return i + 1, true
		}
	}
	return 0, false
}
