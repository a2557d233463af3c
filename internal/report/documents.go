package report

import (
	"renteasy/internal/core"
)

// Receipt renders the RENT RECEIPT of a payment.
func Receipt(p core.Payment) Document {
	return Document{
		Kind:     KindReceipt,
		Filename: "Receipt-" + p.ReceiptNumber + ".txt",
		Body:     render(receiptTmpl, p),
	}
}

// Income lists the payments of the period with their total. Callers pass the
// payments already filtered to the period.
func Income(period Period, payments []core.Payment) Document {
	data := struct {
		Period   Period
		Payments []core.Payment
		Total    core.Money
	}{period, payments, totalPayments(payments)}

	return Document{
		Kind:     KindIncome,
		Filename: "Income-Report-" + period.Start.String() + "-to-" + period.End.String() + ".txt",
		Body:     render(incomeTmpl, data),
	}
}

// ArrearsItem is one overdue debt on the arrears report.
type ArrearsItem struct {
	TenantName   string
	PropertyName string
	UnitName     string
	Amount       core.Money
	DaysOverdue  int
}

// Arrears lists overdue debts as of generated.
func Arrears(generated core.Date, items []ArrearsItem) Document {
	var total core.Money
	for _, it := range items {
		total = total.Add(it.Amount)
	}
	data := struct {
		Generated core.Date
		Items     []ArrearsItem
		Total     core.Money
	}{generated, items, total}

	return Document{
		Kind:     KindArrears,
		Filename: "Arrears-Report-" + generated.String() + ".txt",
		Body:     render(arrearsTmpl, data),
	}
}

// ProfitLoss nets the period's income against its expenses. The net profit
// may be negative.
func ProfitLoss(period Period, payments []core.Payment, expenses []core.Expense) Document {
	income := totalPayments(payments)
	var spent core.Money
	for _, e := range expenses {
		spent = spent.Add(e.Amount)
	}
	data := struct {
		Period        Period
		Payments      []core.Payment
		Expenses      []core.Expense
		TotalIncome   core.Money
		TotalExpenses core.Money
		NetProfit     core.Money
	}{period, payments, expenses, income, spent, income.Sub(spent)}

	return Document{
		Kind:     KindProfitLoss,
		Filename: "PL-Statement-" + period.Start.String() + "-to-" + period.End.String() + ".txt",
		Body:     render(profitLossTmpl, data),
	}
}

func totalPayments(ps []core.Payment) core.Money {
	var total core.Money
	for _, p := range ps {
		total = total.Add(p.Amount)
	}
	return total
}
