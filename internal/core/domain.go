package core

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	UnitOccupied UnitStatus = "occupied"
	UnitVacant   UnitStatus = "vacant"

	PaymentCompleted PaymentStatus = "completed"
	PaymentPending   PaymentStatus = "pending"

	BillPending BillStatus = "pending"
	BillPaid    BillStatus = "paid"
	BillOverdue BillStatus = "overdue"

	BillElectricity BillType = "electricity"
	BillWater       BillType = "water"
	BillInternet    BillType = "internet"
	BillParking     BillType = "parking"
	BillMaintenance BillType = "maintenance"
	BillSecurity    BillType = "security"
	BillOther       BillType = "other"
)

// DateLayout is the wire format of a Date.
const DateLayout = "2006-01-02"

type (
	UnitStatus    string
	PaymentStatus string
	BillStatus    string
	BillType      string

	// Date is a calendar day in UTC.
	Date struct {
		time.Time
	}

	Money struct {
		Amount int64
	}

	// Tenant is embedded in a Unit and has no identity of its own.
	Tenant struct {
		Name  string
		Phone string
	}

	Unit struct {
		ID     string
		Name   string
		Rent   Money
		Tenant *Tenant
		Status UnitStatus
	}

	Property struct {
		ID       string
		Name     string
		Location string
		Units    []Unit
	}

	Payment struct {
		ID              string
		TenantName      string
		UnitName        string // free text, not a reference
		PropertyName    string // free text, not a reference
		Amount          Money
		Date            Date
		TransactionCode string // M-Pesa transaction code
		ReceiptNumber   string
		Sequence        int // position in the ledger, 1-based
		Status          PaymentStatus
	}

	Bill struct {
		ID           string
		Type         BillType
		Title        string
		Description  string
		Amount       Money
		DueDate      Date
		PropertyName string // free text, not a reference
		UnitName     string // free text, not a reference
		Status       BillStatus
		CreatedDate  Date
	}

	// Expense is money spent by the landlord; it feeds the P&L statement.
	Expense struct {
		ID          string
		Description string
		Category    string
		Amount      Money
		Date        Date
	}
)

// BillTypes lists every accepted bill type in display order.
var BillTypes = []BillType{
	BillElectricity, BillWater, BillInternet, BillParking,
	BillMaintenance, BillSecurity, BillOther,
}

// ParseBillType validates a bill type name.
func ParseBillType(s string) (BillType, error) {
	t := BillType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", ErrInvalidBillType
	}
	return t, nil
}

// IsValid reports whether t is one of BillTypes.
func (t BillType) IsValid() bool {
	for _, bt := range BillTypes {
		if t == bt {
			return true
		}
	}
	return false
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar day of t in t's own location.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

// IsEmpty returns true if the date is zero (for optional dates)
func (d Date) IsEmpty() bool {
	return d.IsZero()
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// Before reports whether d is a strictly earlier day than o.
func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time)
}

// After reports whether d is a strictly later day than o.
func (d Date) After(o Date) bool {
	return d.Time.After(o.Time)
}

// DaysSince returns the number of whole days from o to d.
func (d Date) DaysSince(o Date) int {
	return int(d.Sub(o.Time).Hours() / 24)
}

// Within reports whether start <= d <= end.
func (d Date) Within(start, end Date) bool {
	return !d.Before(start) && !d.After(end)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (m Money) Validate() error {
	if m.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Tenant) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyTenantName
	}
	if strings.TrimSpace(t.Phone) == "" {
		return ErrEmptyPhone
	}
	return nil
}

func (u Unit) Validate() error {
	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}
	return u.Rent.Validate()
}

// IsOccupied reports whether a tenant holds the unit.
func (u Unit) IsOccupied() bool {
	return u.Tenant != nil
}

// AssignTenant places t in the unit and flips it to occupied. A unit holds at
// most one tenant; replacing one is rejected with ErrUnitOccupied.
func (u *Unit) AssignTenant(t Tenant) error {
	t.Name = strings.TrimSpace(t.Name)
	t.Phone = strings.TrimSpace(t.Phone)
	if err := t.Validate(); err != nil {
		return err
	}
	if u.IsOccupied() {
		return ErrUnitOccupied
	}
	u.Tenant = &t
	u.Status = UnitOccupied
	return nil
}

// Clone returns a copy that shares no memory with u.
func (u Unit) Clone() Unit {
	if u.Tenant != nil {
		t := *u.Tenant
		u.Tenant = &t
	}
	return u
}

func (p Property) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(p.Location) == "" {
		return ErrEmptyLocation
	}
	return nil
}

// Clone returns a deep copy of p.
func (p Property) Clone() Property {
	units := make([]Unit, len(p.Units))
	for i, u := range p.Units {
		units[i] = u.Clone()
	}
	p.Units = units
	return p
}

// TotalUnits counts every unit of the property.
func (p Property) TotalUnits() int {
	return len(p.Units)
}

// OccupiedUnits counts units that hold a tenant.
func (p Property) OccupiedUnits() int {
	n := 0
	for _, u := range p.Units {
		if u.IsOccupied() {
			n++
		}
	}
	return n
}

// VacantUnits returns the units without a tenant, in order.
func (p Property) VacantUnits() []Unit {
	var out []Unit
	for _, u := range p.Units {
		if !u.IsOccupied() {
			out = append(out, u.Clone())
		}
	}
	return out
}

// OccupancyRate is the rounded share of occupied units, 0 when there are none.
func (p Property) OccupancyRate() int {
	return OccupancyRate(p.OccupiedUnits(), p.TotalUnits())
}

// FindUnit returns the index of the unit with the given id, or -1.
func (p Property) FindUnit(id string) int {
	for i, u := range p.Units {
		if u.ID == id {
			return i
		}
	}
	return -1
}

// ReceiptNumber formats the receipt number of the seq-th payment of a ledger.
func ReceiptNumber(seq, year int) string {
	return fmt.Sprintf("RE-%03d-%d", seq, year)
}

// AssignSequence records the payment's ledger position and derives its
// receipt number from it.
func (p *Payment) AssignSequence(seq int) {
	p.Sequence = seq
	p.ReceiptNumber = ReceiptNumber(seq, p.Date.Year())
}

func (p Payment) Validate() error {
	if strings.TrimSpace(p.TenantName) == "" {
		return ErrEmptyTenantName
	}
	if err := p.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(p.TransactionCode) == "" {
		return ErrEmptyTransactionCode
	}
	return p.Date.Validate()
}

// SortPaymentsRecentFirst orders payments by date, newest first; payments on
// the same day keep ledger order, newest first.
func SortPaymentsRecentFirst(ps []Payment) {
	sort.SliceStable(ps, func(i, j int) bool {
		if !ps[i].Date.Equal(ps[j].Date.Time) {
			return ps[i].Date.After(ps[j].Date)
		}
		return ps[i].Sequence > ps[j].Sequence
	})
}

// BillStatusFor returns the status of a new bill: overdue when the due date is
// strictly before today, pending otherwise.
func BillStatusFor(due, today Date) BillStatus {
	if due.Before(today) {
		return BillOverdue
	}
	return BillPending
}

// MarkPaid settles the bill. Calling it on a paid bill changes nothing.
func (b *Bill) MarkPaid() {
	b.Status = BillPaid
}

// DaysOverdue returns how many days the bill is past due on today, or 0.
func (b Bill) DaysOverdue(today Date) int {
	if !b.DueDate.Before(today) {
		return 0
	}
	return today.DaysSince(b.DueDate)
}

func (b Bill) Validate() error {
	if !b.Type.IsValid() {
		return ErrInvalidBillType
	}
	if strings.TrimSpace(b.Title) == "" {
		return ErrEmptyTitle
	}
	if err := b.Amount.Validate(); err != nil {
		return err
	}
	if b.DueDate.IsZero() {
		return ErrMissingDueDate
	}
	if strings.TrimSpace(b.PropertyName) == "" {
		return ErrEmptyPropertyName
	}
	if len(b.Title) > 200 {
		return invalid("title", "too long (max 200 characters)")
	}
	return nil
}

func (e Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if len(e.Description) > 200 {
		return invalid("description", "too long (max 200 characters)")
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	return e.Date.Validate()
}
