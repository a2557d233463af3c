package report

var receiptTmpl = mustParse("receipt", `RENT RECEIPT
============

Receipt No: {{.ReceiptNumber}}
Date: {{.Date}}

Property: {{.PropertyName}}
Unit: {{.UnitName}}
Tenant: {{.TenantName}}

Amount Paid: {{kes .Amount}}
M-Pesa Code: {{.TransactionCode}}

Thank you for your payment!
`)

var incomeTmpl = mustParse("income", `INCOME REPORT
Period: {{.Period.Start}} to {{.Period.End}}
============

{{range .Payments}}{{.Date}} | {{.TenantName}} | {{.PropertyName}} - {{.UnitName}} | {{kes .Amount}}
{{end}}
TOTAL INCOME: {{kes .Total}}
`)

var arrearsTmpl = mustParse("arrears", `ARREARS REPORT
Generated: {{.Generated}}
============

{{range .Items}}{{.TenantName}} | {{.PropertyName}} - {{.UnitName}} | {{kes .Amount}} | {{.DaysOverdue}} days overdue
{{end}}
TOTAL ARREARS: {{kes .Total}}
`)

var profitLossTmpl = mustParse("pl", `PROFIT & LOSS STATEMENT
Period: {{.Period.Start}} to {{.Period.End}}
============

INCOME:
{{range .Payments}}{{.Date}} | {{.TenantName}} | {{kes .Amount}}
{{end}}Total Income: {{kes .TotalIncome}}

EXPENSES:
{{range .Expenses}}{{.Date}} | {{.Description}} | {{kes .Amount}}
{{end}}Total Expenses: {{kes .TotalExpenses}}

NET PROFIT: {{kes .NetProfit}}
`)

var statementTmpl = mustParse("statement", `TENANT STATEMENT
================

Tenant: {{.TenantName}}
Property: {{.PropertyName}} - {{.UnitName}}
Statement Period: {{.Period.Label}}

Date       | Description      | Debit    | Credit   | Balance
-----------|------------------|----------|----------|----------
{{range .Rows}}{{printf "%-10s | %-16s | %-8s | %-8s | %s" (dayfirst .Date) .Description (grouped .Debit) (grouped .Credit) (balance .Balance)}}
{{end}}
Current Balance: {{kes .Balance}}
Status: {{.Status}}
{{- if eq .Status "OUTSTANDING"}}
Amount Due: {{kes .Balance}}

Please settle the outstanding balance at your earliest convenience.
{{- else if eq .Status "CREDIT"}}
Credit Balance: {{kes .Credit}}

Thank you for your payment!
{{- else}}

Thank you for your timely payment!
{{- end}}
`)
