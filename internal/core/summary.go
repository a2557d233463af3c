package core

// StatusTotal is the sum and count of records sharing a status.
type StatusTotal struct {
	Total Money
	Count int
}

// PaymentSummary aggregates a payment ledger.
type PaymentSummary struct {
	Total      Money
	Count      int
	Average    Money // rounded, 0 for an empty ledger
	MonthTotal Money
	MonthCount int
}

// BillSummary aggregates a bill ledger by status.
type BillSummary struct {
	Pending StatusTotal
	Overdue StatusTotal
	Paid    StatusTotal
}

// OverdueItem is one line of the dashboard's overdue list.
type OverdueItem struct {
	BillID       string
	TenantName   string
	PropertyName string
	UnitName     string
	Title        string
	Amount       Money
	DueDate      Date
	DaysOverdue  int
}

// DashboardStats is the read-only overview shown on the dashboard.
type DashboardStats struct {
	TotalIncome     Money // payments dated in the current month
	TotalArrears    Money // overdue bills
	OverdueCount    int
	OccupancyRate   int // percent, rounded
	TotalProperties int
	TotalUnits      int
	TotalTenants    int
	RecentPayments  []Payment
	OverdueItems    []OverdueItem
}

// RoundDiv divides a by b rounding half away from zero. It returns 0 when b is 0.
func RoundDiv(a, b int64) int64 {
	if b == 0 {
		return 0
	}
	neg := (a < 0) != (b < 0)
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	q := (2*a + b) / (2 * b)
	if neg {
		return -q
	}
	return q
}

// OccupancyRate returns round(occupied / total * 100), or 0 when total is 0.
func OccupancyRate(occupied, total int) int {
	if total <= 0 {
		return 0
	}
	return int(RoundDiv(int64(occupied)*100, int64(total)))
}

// SummarizePayments folds a payment ledger; month totals cover the calendar
// month containing today.
func SummarizePayments(payments []Payment, today Date) PaymentSummary {
	var s PaymentSummary
	for _, p := range payments {
		s.Total = s.Total.Add(p.Amount)
		s.Count++
		if p.Date.Year() == today.Year() && p.Date.Month() == today.Month() {
			s.MonthTotal = s.MonthTotal.Add(p.Amount)
			s.MonthCount++
		}
	}
	s.Average = Money{Amount: RoundDiv(s.Total.Amount, int64(s.Count))}
	return s
}

// SummarizeBills folds a bill ledger into per-status totals.
func SummarizeBills(bills []Bill) BillSummary {
	var s BillSummary
	for _, b := range bills {
		var st *StatusTotal
		switch b.Status {
		case BillPending:
			st = &s.Pending
		case BillOverdue:
			st = &s.Overdue
		case BillPaid:
			st = &s.Paid
		default:
			continue
		}
		st.Total = st.Total.Add(b.Amount)
		st.Count++
	}
	return s
}
