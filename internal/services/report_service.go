package services

import (
	"context"
	"fmt"
	"strings"

	"renteasy/internal/core"
	"renteasy/internal/ledger"
	"renteasy/internal/report"
)

// ErrUnknownReport rejects report kinds that cannot be generated from a date
// range. Receipts are rendered per payment.
var ErrUnknownReport = &core.ValidationError{Field: "kind", Reason: "unknown report"}

// UnknownTenant stands in for a debtor the registry cannot resolve.
const UnknownTenant = "Unassigned"

// ReportService gathers ledger data for the report renderers.
type ReportService struct {
	store    ledger.Store
	schedule ChargeSchedule
	deps
}

func NewReportService(store ledger.Store, opts ...Option) *ReportService {
	return &ReportService{store: store, schedule: MonthlySchedule{Day: 1}, deps: newDeps(opts)}
}

// ReportRequest selects a report. Start and End are required for the income,
// profit & loss and statement reports; Tenant for the statement.
type ReportRequest struct {
	Kind   report.Kind
	Start  string
	End    string
	Tenant string
}

// Today is the date reports are generated on.
func (s *ReportService) Today() core.Date {
	return s.today()
}

// Generate renders the requested report.
func (s *ReportService) Generate(ctx context.Context, req ReportRequest) (report.Document, error) {
	switch req.Kind {
	case report.KindArrears:
		return s.Arrears(ctx)
	case report.KindIncome, report.KindProfitLoss, report.KindStatement:
	default:
		return report.Document{}, fmt.Errorf("report kind %q: %w", req.Kind, ErrUnknownReport)
	}
	period, err := report.ParsePeriod(req.Start, req.End)
	if err != nil {
		return report.Document{}, err
	}
	switch req.Kind {
	case report.KindIncome:
		return s.Income(ctx, period)
	case report.KindProfitLoss:
		return s.ProfitLoss(ctx, period)
	}
	return s.TenantStatement(ctx, req.Tenant, period)
}

// Income reports the payments dated within period.
func (s *ReportService) Income(ctx context.Context, period report.Period) (report.Document, error) {
	payments, err := s.paymentsIn(ctx, period)
	if err != nil {
		return report.Document{}, err
	}
	return report.Income(period, payments), nil
}

// ProfitLoss nets the period's payments against its expenses.
func (s *ReportService) ProfitLoss(ctx context.Context, period report.Period) (report.Document, error) {
	payments, err := s.paymentsIn(ctx, period)
	if err != nil {
		return report.Document{}, err
	}
	all, err := s.store.ListExpenses(ctx)
	if err != nil {
		return report.Document{}, fmt.Errorf("list expenses: %w", err)
	}
	var expenses []core.Expense
	for _, e := range all {
		if period.Contains(e.Date) {
			expenses = append(expenses, e)
		}
	}
	return report.ProfitLoss(period, payments, expenses), nil
}

// Arrears lists every overdue bill with the tenant of its unit.
func (s *ReportService) Arrears(ctx context.Context) (report.Document, error) {
	items, err := s.arrearsItems(ctx)
	if err != nil {
		return report.Document{}, err
	}
	return report.Arrears(s.today(), items), nil
}

func (s *ReportService) arrearsItems(ctx context.Context) ([]report.ArrearsItem, error) {
	props, err := s.store.ListProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	bills, err := s.store.ListBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	return overdueItems(props, bills, s.today()), nil
}

func overdueItems(props []core.Property, bills []core.Bill, today core.Date) []report.ArrearsItem {
	tenants := tenantIndex(props)
	var items []report.ArrearsItem
	for _, b := range bills {
		if b.Status != core.BillOverdue {
			continue
		}
		name, ok := tenants[unitKey(b.PropertyName, b.UnitName)]
		if !ok {
			name = UnknownTenant
		}
		items = append(items, report.ArrearsItem{
			TenantName:   name,
			PropertyName: b.PropertyName,
			UnitName:     b.UnitName,
			Amount:       b.Amount,
			DaysOverdue:  b.DaysOverdue(today),
		})
	}
	return items
}

// TenantStatement charges the tenant's rent for each month of the period and
// the unit's unpaid bills, credits the tenant's payments, and opens with the
// unpaid bills due before the period.
func (s *ReportService) TenantStatement(ctx context.Context, tenantName string, period report.Period) (report.Document, error) {
	tenantName = strings.TrimSpace(tenantName)
	if tenantName == "" {
		return report.Document{}, core.ErrEmptyTenantName
	}
	props, err := s.store.ListProperties(ctx)
	if err != nil {
		return report.Document{}, fmt.Errorf("list properties: %w", err)
	}
	prop, unit, ok := findTenant(props, tenantName)
	if !ok {
		return report.Document{}, fmt.Errorf("tenant %q: %w", tenantName, core.ErrNotFound)
	}

	st := report.Statement{
		TenantName:   unit.Tenant.Name,
		PropertyName: prop.Name,
		UnitName:     unit.Name,
		Period:       period,
	}
	for _, d := range s.schedule.Dates(period) {
		st.Entries = append(st.Entries, report.Entry{Date: d, Description: RentDescription(d), Debit: unit.Rent})
	}

	bills, err := s.store.ListBills(ctx)
	if err != nil {
		return report.Document{}, fmt.Errorf("list bills: %w", err)
	}
	// Bills are listed newest first; walk oldest first so same-day charges
	// keep creation order.
	for i := len(bills) - 1; i >= 0; i-- {
		b := bills[i]
		if b.Status == core.BillPaid || !sameUnit(b.PropertyName, b.UnitName, prop.Name, unit.Name) {
			continue
		}
		switch {
		case b.DueDate.Before(period.Start):
			st.Opening = st.Opening.Add(b.Amount)
		case period.Contains(b.DueDate):
			st.Entries = append(st.Entries, report.Entry{Date: b.DueDate, Description: b.Title, Debit: b.Amount})
		}
	}

	payments, err := s.paymentsIn(ctx, period)
	if err != nil {
		return report.Document{}, err
	}
	for i := len(payments) - 1; i >= 0; i-- {
		p := payments[i]
		if strings.EqualFold(p.TenantName, unit.Tenant.Name) {
			st.Entries = append(st.Entries, report.Entry{Date: p.Date, Description: "Payment Received", Credit: p.Amount})
		}
	}

	return report.TenantStatement(st, s.today()), nil
}

func (s *ReportService) paymentsIn(ctx context.Context, period report.Period) ([]core.Payment, error) {
	all, err := s.store.ListPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	var out []core.Payment
	for _, p := range all {
		if period.Contains(p.Date) {
			out = append(out, p)
		}
	}
	return out, nil
}

func unitKey(property, unit string) string {
	return strings.ToLower(strings.TrimSpace(property)) + "\x00" + strings.ToLower(strings.TrimSpace(unit))
}

func sameUnit(p1, u1, p2, u2 string) bool {
	return unitKey(p1, u1) == unitKey(p2, u2)
}

// tenantIndex maps property and unit names to the tenant living there.
func tenantIndex(props []core.Property) map[string]string {
	idx := make(map[string]string)
	for _, p := range props {
		for _, u := range p.Units {
			if u.Tenant != nil {
				idx[unitKey(p.Name, u.Name)] = u.Tenant.Name
			}
		}
	}
	return idx
}

func findTenant(props []core.Property, name string) (core.Property, core.Unit, bool) {
	for _, p := range props {
		for _, u := range p.Units {
			if u.Tenant != nil && strings.EqualFold(u.Tenant.Name, name) {
				return p, u, true
			}
		}
	}
	return core.Property{}, core.Unit{}, false
}
