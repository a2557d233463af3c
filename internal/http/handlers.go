package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"renteasy/internal/export"
	applog "renteasy/internal/log"
	"renteasy/internal/report"
	"renteasy/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (s *Server) handleListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := s.backend.Properties.ListProperties(r.Context())
	if err != nil {
		s.fail(w, r, applog.OpList, err)
		return
	}
	NewResponse().JSON(mapSlice(props, toPropertyDTO)).Write(w)
}

func (s *Server) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	p, err := s.backend.Properties.GetProperty(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, applog.OpRead, err)
		return
	}
	NewResponse().JSON(toPropertyDTO(p)).Write(w)
}

func (s *Server) handleAddProperty(w http.ResponseWriter, r *http.Request) {
	body, ok := parseBody(w, r)
	if !ok {
		return
	}
	p, err := s.backend.Properties.AddProperty(r.Context(), body.Get("name"), body.Get("location"))
	if err != nil {
		s.fail(w, r, applog.OpCreate, err)
		return
	}
	NewResponse().Status(http.StatusCreated).JSON(toPropertyDTO(p)).Write(w)
}

func (s *Server) handleAddUnit(w http.ResponseWriter, r *http.Request) {
	body, ok := parseBody(w, r)
	if !ok {
		return
	}
	u, err := s.backend.Properties.AddUnit(r.Context(), chi.URLParam(r, "id"), body.Get("name"), body.Get("rent"))
	if err != nil {
		s.fail(w, r, applog.OpCreate, err)
		return
	}
	NewResponse().Status(http.StatusCreated).JSON(toUnitDTO(u)).Write(w)
}

func (s *Server) handleAddTenant(w http.ResponseWriter, r *http.Request) {
	body, ok := parseBody(w, r)
	if !ok {
		return
	}
	u, err := s.backend.Properties.AddTenant(r.Context(), chi.URLParam(r, "id"), body.Get("name"), body.Get("phone"))
	if err != nil {
		s.fail(w, r, applog.OpCreate, err)
		return
	}
	NewResponse().JSON(toUnitDTO(u)).Write(w)
}

func (s *Server) handleListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := s.backend.Payments.ListPayments(r.Context())
	if err != nil {
		s.fail(w, r, applog.OpList, err)
		return
	}
	NewResponse().JSON(mapSlice(payments, toPaymentDTO)).Write(w)
}

func (s *Server) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	body, ok := parseBody(w, r)
	if !ok {
		return
	}
	p, err := s.backend.Payments.RecordPayment(r.Context(), services.PaymentInput{
		TenantName:      body.Get("tenantName"),
		Amount:          body.Get("amount"),
		TransactionCode: body.Get("transactionCode"),
		PropertyName:    body.Get("propertyName"),
		UnitName:        body.Get("unitName"),
	})
	if err != nil {
		s.fail(w, r, applog.OpCreate, err)
		return
	}
	s.sl.LogPaymentRecorded(r.Context(), p.ReceiptNumber, p.TenantName, p.PropertyName, p.UnitName, p.Amount.Amount)
	NewResponse().Status(http.StatusCreated).JSON(toPaymentDTO(p)).Write(w)
}

func (s *Server) handlePaymentSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.backend.Payments.Summary(r.Context())
	if err != nil {
		s.fail(w, r, applog.OpRead, err)
		return
	}
	NewResponse().JSON(paymentSummaryDTO(sum)).Write(w)
}

func (s *Server) handleReceipt(w http.ResponseWriter, r *http.Request) {
	doc, err := s.backend.Payments.Receipt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, applog.OpRender, err)
		return
	}
	writeDocument(w, doc)
}

func (s *Server) handleListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := s.backend.Bills.ListBills(r.Context())
	if err != nil {
		s.fail(w, r, applog.OpList, err)
		return
	}
	NewResponse().JSON(mapSlice(bills, toBillDTO)).Write(w)
}

func (s *Server) handleAddBill(w http.ResponseWriter, r *http.Request) {
	body, ok := parseBody(w, r)
	if !ok {
		return
	}
	b, err := s.backend.Bills.AddBill(r.Context(), services.BillInput{
		Type:         body.Get("type"),
		Title:        body.Get("title"),
		Description:  body.Get("description"),
		Amount:       body.Get("amount"),
		DueDate:      body.Get("dueDate"),
		PropertyName: body.Get("propertyName"),
		UnitName:     body.Get("unitName"),
	})
	if err != nil {
		s.fail(w, r, applog.OpCreate, err)
		return
	}
	NewResponse().Status(http.StatusCreated).JSON(toBillDTO(b)).Write(w)
}

func (s *Server) handleMarkBillPaid(w http.ResponseWriter, r *http.Request) {
	b, err := s.backend.Bills.MarkPaid(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, applog.OpUpdate, err)
		return
	}
	NewResponse().JSON(toBillDTO(b)).Write(w)
}

func (s *Server) handleDeleteBill(w http.ResponseWriter, r *http.Request) {
	if err := s.backend.Bills.DeleteBill(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, applog.OpDelete, err)
		return
	}
	NewResponse().Status(http.StatusNoContent).Write(w)
}

func (s *Server) handleBillSummary(w http.ResponseWriter, r *http.Request) {
	sum, err := s.backend.Bills.Summary(r.Context())
	if err != nil {
		s.fail(w, r, applog.OpRead, err)
		return
	}
	NewResponse().JSON(billSummaryDTO{
		Pending: statusTotalDTO(sum.Pending),
		Overdue: statusTotalDTO(sum.Overdue),
		Paid:    statusTotalDTO(sum.Paid),
	}).Write(w)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.backend.Expenses.ListExpenses(r.Context())
	if err != nil {
		s.fail(w, r, applog.OpList, err)
		return
	}
	NewResponse().JSON(mapSlice(expenses, toExpenseDTO)).Write(w)
}

func (s *Server) handleRecordExpense(w http.ResponseWriter, r *http.Request) {
	body, ok := parseBody(w, r)
	if !ok {
		return
	}
	e, err := s.backend.Expenses.RecordExpense(r.Context(), services.ExpenseInput{
		Description: body.Get("description"),
		Category:    body.Get("category"),
		Amount:      body.Get("amount"),
		Date:        body.Get("date"),
	})
	if err != nil {
		s.fail(w, r, applog.OpCreate, err)
		return
	}
	NewResponse().Status(http.StatusCreated).JSON(toExpenseDTO(e)).Write(w)
}

// handleReport renders income, pl, arrears and statement reports as a text
// download. Receipts are served per payment.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	kind, ok := report.ParseKind(chi.URLParam(r, "kind"))
	if !ok || kind == report.KindReceipt {
		s.fail(w, r, applog.OpRender, services.ErrUnknownReport)
		return
	}
	params := ParseReportParams(r.URL.Query())
	doc, err := s.backend.Reports.Generate(r.Context(), services.ReportRequest{
		Kind:   kind,
		Start:  params.Start,
		End:    params.End,
		Tenant: params.Tenant,
	})
	if err != nil {
		s.fail(w, r, applog.OpRender, err)
		return
	}
	writeDocument(w, doc)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.backend.Dashboard.Stats(r.Context())
	if err != nil {
		s.fail(w, r, applog.OpRead, err)
		return
	}
	NewResponse().JSON(toDashboardDTO(stats)).Write(w)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	payments, err := s.backend.Payments.ListPayments(r.Context())
	if err != nil {
		s.fail(w, r, applog.OpExport, err)
		return
	}
	bills, err := s.backend.Bills.ListBills(r.Context())
	if err != nil {
		s.fail(w, r, applog.OpExport, err)
		return
	}
	data, err := export.WorkbookBytes(payments, bills)
	if err != nil {
		s.fail(w, r, applog.OpExport, fmt.Errorf("build workbook: %w", err))
		return
	}
	name := "RentEasy-Ledger-" + time.Now().Format("2006-01-02") + ".xlsx"
	NewResponse().Attachment(name, xlsxContentType, data).Write(w)
}

func writeDocument(w http.ResponseWriter, doc report.Document) {
	NewResponse().Attachment(doc.Filename, "text/plain; charset=utf-8", []byte(doc.Body)).Write(w)
}
