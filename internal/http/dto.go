package http

import (
	"renteasy/internal/core"
)

type tenantDTO struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type unitDTO struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Rent   core.Money `json:"rent"`
	Status string     `json:"status"`
	Tenant *tenantDTO `json:"tenant"`
}

type propertyDTO struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Location      string    `json:"location"`
	TotalUnits    int       `json:"totalUnits"`
	OccupiedUnits int       `json:"occupiedUnits"`
	OccupancyRate int       `json:"occupancyRate"`
	Units         []unitDTO `json:"units"`
}

type paymentDTO struct {
	ID              string     `json:"id"`
	ReceiptNumber   string     `json:"receiptNumber"`
	TenantName      string     `json:"tenantName"`
	PropertyName    string     `json:"propertyName"`
	UnitName        string     `json:"unitName"`
	Amount          core.Money `json:"amount"`
	Date            core.Date  `json:"date"`
	TransactionCode string     `json:"transactionCode"`
	Status          string     `json:"status"`
}

type billDTO struct {
	ID           string     `json:"id"`
	Type         string     `json:"type"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Amount       core.Money `json:"amount"`
	DueDate      core.Date  `json:"dueDate"`
	PropertyName string     `json:"propertyName"`
	UnitName     string     `json:"unitName"`
	Status       string     `json:"status"`
	CreatedDate  core.Date  `json:"createdDate"`
}

type expenseDTO struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Amount      core.Money `json:"amount"`
	Date        core.Date  `json:"date"`
}

type paymentSummaryDTO struct {
	Total      core.Money `json:"total"`
	Count      int        `json:"count"`
	Average    core.Money `json:"average"`
	MonthTotal core.Money `json:"monthTotal"`
	MonthCount int        `json:"monthCount"`
}

type statusTotalDTO struct {
	Total core.Money `json:"total"`
	Count int        `json:"count"`
}

type billSummaryDTO struct {
	Pending statusTotalDTO `json:"pending"`
	Overdue statusTotalDTO `json:"overdue"`
	Paid    statusTotalDTO `json:"paid"`
}

type overdueItemDTO struct {
	BillID       string     `json:"billId"`
	TenantName   string     `json:"tenantName"`
	PropertyName string     `json:"propertyName"`
	UnitName     string     `json:"unitName"`
	Title        string     `json:"title"`
	Amount       core.Money `json:"amount"`
	DueDate      core.Date  `json:"dueDate"`
	DaysOverdue  int        `json:"daysOverdue"`
}

type dashboardDTO struct {
	TotalIncome     core.Money       `json:"totalIncome"`
	TotalArrears    core.Money       `json:"totalArrears"`
	OverdueCount    int              `json:"overdueCount"`
	OccupancyRate   int              `json:"occupancyRate"`
	TotalProperties int              `json:"totalProperties"`
	TotalUnits      int              `json:"totalUnits"`
	TotalTenants    int              `json:"totalTenants"`
	RecentPayments  []paymentDTO     `json:"recentPayments"`
	OverdueItems    []overdueItemDTO `json:"overdueItems"`
}

func toUnitDTO(u core.Unit) unitDTO {
	d := unitDTO{ID: u.ID, Name: u.Name, Rent: u.Rent, Status: string(u.Status)}
	if u.Tenant != nil {
		d.Tenant = &tenantDTO{Name: u.Tenant.Name, Phone: u.Tenant.Phone}
	}
	return d
}

func toPropertyDTO(p core.Property) propertyDTO {
	units := make([]unitDTO, 0, len(p.Units))
	for _, u := range p.Units {
		units = append(units, toUnitDTO(u))
	}
	return propertyDTO{
		ID:            p.ID,
		Name:          p.Name,
		Location:      p.Location,
		TotalUnits:    p.TotalUnits(),
		OccupiedUnits: p.OccupiedUnits(),
		OccupancyRate: p.OccupancyRate(),
		Units:         units,
	}
}

func toPaymentDTO(p core.Payment) paymentDTO {
	return paymentDTO{
		ID:              p.ID,
		ReceiptNumber:   p.ReceiptNumber,
		TenantName:      p.TenantName,
		PropertyName:    p.PropertyName,
		UnitName:        p.UnitName,
		Amount:          p.Amount,
		Date:            p.Date,
		TransactionCode: p.TransactionCode,
		Status:          string(p.Status),
	}
}

func toBillDTO(b core.Bill) billDTO {
	return billDTO{
		ID:           b.ID,
		Type:         string(b.Type),
		Title:        b.Title,
		Description:  b.Description,
		Amount:       b.Amount,
		DueDate:      b.DueDate,
		PropertyName: b.PropertyName,
		UnitName:     b.UnitName,
		Status:       string(b.Status),
		CreatedDate:  b.CreatedDate,
	}
}

func toExpenseDTO(e core.Expense) expenseDTO {
	return expenseDTO{
		ID:          e.ID,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount,
		Date:        e.Date,
	}
}

func toDashboardDTO(s core.DashboardStats) dashboardDTO {
	d := dashboardDTO{
		TotalIncome:     s.TotalIncome,
		TotalArrears:    s.TotalArrears,
		OverdueCount:    s.OverdueCount,
		OccupancyRate:   s.OccupancyRate,
		TotalProperties: s.TotalProperties,
		TotalUnits:      s.TotalUnits,
		TotalTenants:    s.TotalTenants,
		RecentPayments:  mapSlice(s.RecentPayments, toPaymentDTO),
		OverdueItems:    make([]overdueItemDTO, 0, len(s.OverdueItems)),
	}
	for _, it := range s.OverdueItems {
		d.OverdueItems = append(d.OverdueItems, overdueItemDTO(it))
	}
	return d
}

// mapSlice converts every element and never returns nil, so empty lists
// encode as [].
func mapSlice[T, U any](in []T, fn func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
