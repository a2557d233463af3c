package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renteasy/internal/core"
)

func seedPayments() []core.Payment {
	return []core.Payment{
		{TenantName: "John Kamau", UnitName: "A1", PropertyName: "Kamau Heights", Amount: core.Money{Amount: 25000}, Date: core.NewDate(2025, 1, 8), TransactionCode: "RBK1A2B3C4", ReceiptNumber: "RE-001-2025"},
		{TenantName: "Mary Wanjiku", UnitName: "B2", PropertyName: "Riverside Apartments", Amount: core.Money{Amount: 18000}, Date: core.NewDate(2025, 1, 7), TransactionCode: "RBK2B3C4D5", ReceiptNumber: "RE-002-2025"},
		{TenantName: "Peter Ochieng", UnitName: "C3", PropertyName: "Garden View", Amount: core.Money{Amount: 22000}, Date: core.NewDate(2025, 1, 6), TransactionCode: "RBK3C4D5E6", ReceiptNumber: "RE-003-2025"},
	}
}

func seedExpenses() []core.Expense {
	return []core.Expense{
		{Description: "Plumbing repair - A1", Category: "Maintenance", Amount: core.Money{Amount: 3500}, Date: core.NewDate(2025, 1, 5)},
		{Description: "Security services", Category: "Security", Amount: core.Money{Amount: 8000}, Date: core.NewDate(2025, 1, 1)},
		{Description: "Cleaning supplies", Category: "Maintenance", Amount: core.Money{Amount: 1200}, Date: core.NewDate(2025, 1, 3)},
	}
}

func january(t *testing.T) Period {
	t.Helper()
	p, err := ParsePeriod("2025-01-01", "2025-01-31")
	require.NoError(t, err)
	return p
}

func TestReceipt(t *testing.T) {
	doc := Receipt(seedPayments()[1])
	assert.Equal(t, "Receipt-RE-002-2025.txt", doc.Filename)
	assert.Equal(t, KindReceipt, doc.Kind)
	assert.Equal(t, `RENT RECEIPT
============

Receipt No: RE-002-2025
Date: 2025-01-07

Property: Riverside Apartments
Unit: B2
Tenant: Mary Wanjiku

Amount Paid: KES 18,000
M-Pesa Code: RBK2B3C4D5

Thank you for your payment!
`, doc.Body)
}

func TestIncome(t *testing.T) {
	doc := Income(january(t), seedPayments())
	assert.Equal(t, "Income-Report-2025-01-01-to-2025-01-31.txt", doc.Filename)
	assert.Equal(t, `INCOME REPORT
Period: 2025-01-01 to 2025-01-31
============

2025-01-08 | John Kamau | Kamau Heights - A1 | KES 25,000
2025-01-07 | Mary Wanjiku | Riverside Apartments - B2 | KES 18,000
2025-01-06 | Peter Ochieng | Garden View - C3 | KES 22,000

TOTAL INCOME: KES 65,000
`, doc.Body)
}

func TestArrears(t *testing.T) {
	items := []ArrearsItem{
		{TenantName: "Sarah Muthoni", PropertyName: "Kamau Heights", UnitName: "A3", Amount: core.Money{Amount: 25000}, DaysOverdue: 5},
		{TenantName: "James Kimani", PropertyName: "Riverside Apartments", UnitName: "B1", Amount: core.Money{Amount: 20000}, DaysOverdue: 2},
	}
	doc := Arrears(core.NewDate(2025, 1, 20), items)
	assert.Equal(t, "Arrears-Report-2025-01-20.txt", doc.Filename)
	assert.Equal(t, `ARREARS REPORT
Generated: 2025-01-20
============

Sarah Muthoni | Kamau Heights - A3 | KES 25,000 | 5 days overdue
James Kimani | Riverside Apartments - B1 | KES 20,000 | 2 days overdue

TOTAL ARREARS: KES 45,000
`, doc.Body)
}

func TestProfitLoss(t *testing.T) {
	doc := ProfitLoss(january(t), seedPayments(), seedExpenses())
	assert.Equal(t, "PL-Statement-2025-01-01-to-2025-01-31.txt", doc.Filename)
	assert.Equal(t, `PROFIT & LOSS STATEMENT
Period: 2025-01-01 to 2025-01-31
============

INCOME:
2025-01-08 | John Kamau | KES 25,000
2025-01-07 | Mary Wanjiku | KES 18,000
2025-01-06 | Peter Ochieng | KES 22,000
Total Income: KES 65,000

EXPENSES:
2025-01-05 | Plumbing repair - A1 | KES 3,500
2025-01-01 | Security services | KES 8,000
2025-01-03 | Cleaning supplies | KES 1,200
Total Expenses: KES 12,700

NET PROFIT: KES 52,300
`, doc.Body)
}

func TestProfitLossNegative(t *testing.T) {
	doc := ProfitLoss(january(t), nil, seedExpenses()[:1])
	assert.Contains(t, doc.Body, "NET PROFIT: KES -3,500\n")
}

func TestTenantStatementPaid(t *testing.T) {
	s := Statement{
		TenantName:   "John Kamau",
		PropertyName: "Kamau Heights",
		UnitName:     "A1",
		Period:       january(t),
		Entries: []Entry{
			{Date: core.NewDate(2025, 1, 8), Description: "Payment Received", Credit: core.Money{Amount: 25000}},
			{Date: core.NewDate(2025, 1, 1), Description: "Rent - January", Debit: core.Money{Amount: 25000}},
		},
	}
	doc := TenantStatement(s, core.NewDate(2025, 1, 31))
	assert.Equal(t, "Statement-John-Kamau-2025-01-31.txt", doc.Filename)
	assert.Equal(t, `TENANT STATEMENT
================

Tenant: John Kamau
Property: Kamau Heights - A1
Statement Period: January 2025

Date       | Description      | Debit    | Credit   | Balance
-----------|------------------|----------|----------|----------
01/01/2025 | Opening Balance  |          |          | 0
01/01/2025 | Rent - January   | 25,000   |          | 25,000
08/01/2025 | Payment Received |          | 25,000   | 0

Current Balance: KES 0
Status: PAID

Thank you for your timely payment!
`, doc.Body)
}

func TestTenantStatementOutstandingAndCredit(t *testing.T) {
	period, err := ParsePeriod("2025-01-01", "2025-01-15")
	require.NoError(t, err)

	owing := Statement{
		TenantName: "Mary Ann Wanjiku", PropertyName: "Riverside Apartments", UnitName: "B2",
		Period:  period,
		Opening: core.Money{Amount: 1200},
		Entries: []Entry{{Date: core.NewDate(2025, 1, 1), Description: "Rent - January", Debit: core.Money{Amount: 18000}}},
	}
	doc := TenantStatement(owing, core.NewDate(2025, 1, 15))
	assert.Equal(t, "Statement-Mary-Ann-Wanjiku-2025-01-15.txt", doc.Filename)
	assert.Contains(t, doc.Body, "Statement Period: 01/01/2025 to 15/01/2025\n")
	assert.Contains(t, doc.Body, "01/01/2025 | Opening Balance  |          |          | 1,200\n")
	assert.Contains(t, doc.Body, "Current Balance: KES 19,200\nStatus: OUTSTANDING\nAmount Due: KES 19,200\n")
	assert.Equal(t, core.Money{Amount: 19200}, owing.ClosingBalance())

	ahead := Statement{
		TenantName: "James Kimani", PropertyName: "Riverside Apartments", UnitName: "B1",
		Period:  period,
		Entries: []Entry{{Date: core.NewDate(2025, 1, 2), Description: "Payment Received", Credit: core.Money{Amount: 5000}}},
	}
	doc = TenantStatement(ahead, core.NewDate(2025, 1, 15))
	assert.Contains(t, doc.Body, "Current Balance: KES -5,000\nStatus: CREDIT\nCredit Balance: KES 5,000\n")
}

func TestPeriodValidation(t *testing.T) {
	_, err := ParsePeriod("", "2025-01-31")
	assert.ErrorIs(t, err, core.ErrMissingPeriod)
	_, err = ParsePeriod("2025-02-01", "2025-01-31")
	assert.ErrorIs(t, err, core.ErrInvalidPeriod)
	_, err = ParsePeriod("2025-13-01", "2025-01-31")
	assert.ErrorIs(t, err, core.ErrInvalidDate)
	_, err = NewPeriod(core.Date{}, core.NewDate(2025, 1, 1))
	assert.True(t, core.IsValidation(err))

	p, err := ParsePeriod("2025-01-31", "2025-01-31")
	require.NoError(t, err)
	assert.True(t, p.Contains(core.NewDate(2025, 1, 31)))
	assert.False(t, p.Contains(core.NewDate(2025, 2, 1)))
}

func TestPeriodLabel(t *testing.T) {
	assert.Equal(t, "February 2024", MonthOf(core.NewDate(2024, 2, 17)).Label())
	assert.Equal(t, core.NewDate(2024, 2, 29), MonthOf(core.NewDate(2024, 2, 17)).End)
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("PL")
	assert.True(t, ok)
	assert.Equal(t, KindProfitLoss, k)
	_, ok = ParseKind("balance-sheet")
	assert.False(t, ok)
}

func TestRenderingIsDeterministic(t *testing.T) {
	a := Income(january(t), seedPayments())
	b := Income(january(t), seedPayments())
	assert.Equal(t, a, b)
}
