// Package report renders the plain-text documents of the rental ledger:
// receipts, income, arrears and profit & loss reports, and tenant statements.
// Rendering is pure; the same inputs always give the same bytes.
package report

import (
	"bytes"
	"strings"
	"text/template"

	"renteasy/internal/core"
)

type Kind string

const (
	KindReceipt    Kind = "receipt"
	KindIncome     Kind = "income"
	KindArrears    Kind = "arrears"
	KindProfitLoss Kind = "pl"
	KindStatement  Kind = "statement"
)

// ParseKind accepts the report names used by the API and the CLI.
func ParseKind(s string) (Kind, bool) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindReceipt, KindIncome, KindArrears, KindProfitLoss, KindStatement:
		return k, true
	case "profit-loss", "profit_loss":
		return KindProfitLoss, true
	}
	return "", false
}

// Document is a rendered text artifact ready to be saved or downloaded.
type Document struct {
	Kind     Kind
	Filename string
	Body     string
}

// Period is an inclusive date range.
type Period struct {
	Start core.Date
	End   core.Date
}

// NewPeriod validates a report range: both ends are required and start may
// not be after end.
func NewPeriod(start, end core.Date) (Period, error) {
	if start.IsZero() || end.IsZero() {
		return Period{}, core.ErrMissingPeriod
	}
	if start.After(end) {
		return Period{}, core.ErrInvalidPeriod
	}
	return Period{Start: start, End: end}, nil
}

// ParsePeriod is NewPeriod on YYYY-MM-DD strings.
func ParsePeriod(start, end string) (Period, error) {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return Period{}, core.ErrMissingPeriod
	}
	s, err := core.ParseDate(start)
	if err != nil {
		return Period{}, err
	}
	e, err := core.ParseDate(end)
	if err != nil {
		return Period{}, err
	}
	return NewPeriod(s, e)
}

// MonthOf returns the calendar month containing d.
func MonthOf(d core.Date) Period {
	start := core.NewDate(d.Year(), d.Month(), 1)
	end := core.DateOf(start.AddDate(0, 1, -1))
	return Period{Start: start, End: end}
}

func (p Period) Contains(d core.Date) bool {
	return d.Within(p.Start, p.End)
}

// IsWholeMonth reports whether p spans exactly one calendar month.
func (p Period) IsWholeMonth() bool {
	m := MonthOf(p.Start)
	return p.Start.Equal(m.Start.Time) && p.End.Equal(m.End.Time)
}

// Label formats the period for statements: "January 2025" for a whole month,
// "01/01/2025 to 15/01/2025" otherwise.
func (p Period) Label() string {
	if p.IsWholeMonth() {
		return p.Start.Format("January 2006")
	}
	return dayFirst(p.Start) + " to " + dayFirst(p.End)
}

func dayFirst(d core.Date) string {
	return d.Format("02/01/2006")
}

var funcs = template.FuncMap{
	"kes": func(m core.Money) string { return m.String() },
	"grouped": func(m core.Money) string {
		if m.IsZero() {
			return ""
		}
		return m.Grouped()
	},
	"balance":  func(m core.Money) string { return m.Grouped() },
	"dayfirst": dayFirst,
}

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Parse(text))
}

func render(t *template.Template, data any) string {
	var buf bytes.Buffer
	// Templates are static and data is typed; Execute only fails on a
	// programming error.
	if err := t.Execute(&buf, data); err != nil {
		panic("report: " + t.Name() + ": " + err.Error())
	}
	return buf.String()
}

// filenameToken replaces every space with a dash.
func filenameToken(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "-")
}
