package report

import (
	"sort"

	"renteasy/internal/core"
)

type StatementStatus string

const (
	StatementPaid        StatementStatus = "PAID"
	StatementOutstanding StatementStatus = "OUTSTANDING"
	StatementCredit      StatementStatus = "CREDIT"
)

// StatusForBalance maps a closing balance to the statement status.
func StatusForBalance(balance core.Money) StatementStatus {
	switch {
	case balance.Amount > 0:
		return StatementOutstanding
	case balance.Amount < 0:
		return StatementCredit
	default:
		return StatementPaid
	}
}

// Entry is a charge (Debit) or a payment (Credit) on a tenant account.
type Entry struct {
	Date        core.Date
	Description string
	Debit       core.Money
	Credit      core.Money
}

// Statement is the input of a tenant statement.
type Statement struct {
	TenantName   string
	PropertyName string
	UnitName     string
	Period       Period
	Opening      core.Money
	Entries      []Entry
}

type statementRow struct {
	Entry
	Balance core.Money
}

// TenantStatement renders the account of a tenant over the statement period.
// Entries are ordered by date, keeping their given order within a day, and a
// running balance is carried from the opening balance.
func TenantStatement(s Statement, generated core.Date) Document {
	entries := append([]Entry(nil), s.Entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	rows := make([]statementRow, 0, len(entries)+1)
	balance := s.Opening
	rows = append(rows, statementRow{
		Entry:   Entry{Date: s.Period.Start, Description: "Opening Balance"},
		Balance: balance,
	})
	for _, e := range entries {
		balance = balance.Add(e.Debit).Sub(e.Credit)
		rows = append(rows, statementRow{Entry: e, Balance: balance})
	}

	data := struct {
		Statement
		Rows    []statementRow
		Balance core.Money
		Credit  core.Money
		Status  StatementStatus
	}{
		Statement: s,
		Rows:      rows,
		Balance:   balance,
		Credit:    core.Money{Amount: -balance.Amount},
		Status:    StatusForBalance(balance),
	}

	return Document{
		Kind:     KindStatement,
		Filename: "Statement-" + filenameToken(s.TenantName) + "-" + generated.String() + ".txt",
		Body:     render(statementTmpl, data),
	}
}

// ClosingBalance returns the balance a statement ends on.
func (s Statement) ClosingBalance() core.Money {
	balance := s.Opening
	for _, e := range s.Entries {
		balance = balance.Add(e.Debit).Sub(e.Credit)
	}
	return balance
}
