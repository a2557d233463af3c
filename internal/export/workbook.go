package export

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"renteasy/internal/core"
)

const (
	paymentsSheet = "Payments"
	billsSheet    = "Bills"
)

var (
	paymentsHeader = []string{"Receipt No", "Date", "Tenant", "Property", "Unit", "Amount (KES)", "M-Pesa Code", "Status"}
	billsHeader    = []string{"Title", "Type", "Property", "Unit", "Amount (KES)", "Due Date", "Status", "Created"}
)

// Workbook writes the payment and bill ledgers as an XLSX file, one sheet per
// ledger.
func Workbook(w io.Writer, payments []core.Payment, bills []core.Bill) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(paymentsSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if _, err := f.NewSheet(billsSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	paymentRows := make([][]any, len(payments))
	for i, p := range payments {
		paymentRows[i] = []any{p.ReceiptNumber, p.Date.String(), p.TenantName, p.PropertyName, p.UnitName, p.Amount.Amount, p.TransactionCode, string(p.Status)}
	}
	if err := writeSheet(f, paymentsSheet, paymentsHeader, paymentRows, headerStyle); err != nil {
		return err
	}

	billRows := make([][]any, len(bills))
	for i, b := range bills {
		billRows[i] = []any{b.Title, string(b.Type), b.PropertyName, b.UnitName, b.Amount.Amount, b.DueDate.String(), string(b.Status), b.CreatedDate.String()}
	}
	if err := writeSheet(f, billsSheet, billsHeader, billRows, headerStyle); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WorkbookBytes is Workbook into memory.
func WorkbookBytes(payments []core.Payment, bills []core.Bill) ([]byte, error) {
	var buf bytes.Buffer
	if err := Workbook(&buf, payments, bills); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any, headerStyle int) error {
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("header cell: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("set header %s: %w", cell, err)
		}
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("header cell: %w", err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}

	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return fmt.Errorf("data cell: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
			}
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(header))
	if err != nil {
		return fmt.Errorf("column name: %w", err)
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 18); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return nil
}
