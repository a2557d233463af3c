package storage

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

type Property struct {
	ID       string
	Name     string
	Location string
}

type Unit struct {
	ID          string
	PropertyID  string
	Name        string
	Rent        int64
	TenantName  sql.NullString
	TenantPhone sql.NullString
	Status      string
}

type Payment struct {
	ID              string
	Seq             int64
	TenantName      string
	UnitName        string
	PropertyName    string
	Amount          int64
	PaidOn          string
	TransactionCode string
	ReceiptNumber   string
	Status          string
}

type Bill struct {
	ID           string
	Type         string
	Title        string
	Description  string
	Amount       int64
	DueDate      string
	PropertyName string
	UnitName     string
	Status       string
	CreatedDate  string
}

type Expense struct {
	ID          string
	Description string
	Category    string
	Amount      int64
	SpentOn     string
}

const createProperty = `-- name: CreateProperty :exec
INSERT INTO properties (id, name, location) VALUES (?, ?, ?)
`

func (q *Queries) CreateProperty(ctx context.Context, arg Property) error {
	_, err := q.db.ExecContext(ctx, createProperty, arg.ID, arg.Name, arg.Location)
	return err
}

const propertyExists = `-- name: PropertyExists :one
SELECT COUNT(*) FROM properties WHERE id = ?
`

func (q *Queries) PropertyExists(ctx context.Context, id string) (bool, error) {
	row := q.db.QueryRowContext(ctx, propertyExists, id)
	var n int64
	err := row.Scan(&n)
	return n > 0, err
}

const getProperty = `-- name: GetProperty :one
SELECT id, name, location FROM properties WHERE id = ?
`

func (q *Queries) GetProperty(ctx context.Context, id string) (Property, error) {
	row := q.db.QueryRowContext(ctx, getProperty, id)
	var i Property
	err := row.Scan(&i.ID, &i.Name, &i.Location)
	return i, err
}

const listProperties = `-- name: ListProperties :many
SELECT id, name, location FROM properties ORDER BY rowid
`

func (q *Queries) ListProperties(ctx context.Context) ([]Property, error) {
	rows, err := q.db.QueryContext(ctx, listProperties)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Property
	for rows.Next() {
		var i Property
		if err := rows.Scan(&i.ID, &i.Name, &i.Location); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createUnit = `-- name: CreateUnit :exec
INSERT INTO units (id, property_id, name, rent, tenant_name, tenant_phone, status)
VALUES (?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateUnit(ctx context.Context, arg Unit) error {
	_, err := q.db.ExecContext(ctx, createUnit,
		arg.ID, arg.PropertyID, arg.Name, arg.Rent, arg.TenantName, arg.TenantPhone, arg.Status)
	return err
}

const getUnit = `-- name: GetUnit :one
SELECT id, property_id, name, rent, tenant_name, tenant_phone, status FROM units WHERE id = ?
`

func (q *Queries) GetUnit(ctx context.Context, id string) (Unit, error) {
	row := q.db.QueryRowContext(ctx, getUnit, id)
	var i Unit
	err := row.Scan(&i.ID, &i.PropertyID, &i.Name, &i.Rent, &i.TenantName, &i.TenantPhone, &i.Status)
	return i, err
}

const listUnits = `-- name: ListUnits :many
SELECT id, property_id, name, rent, tenant_name, tenant_phone, status FROM units ORDER BY rowid
`

func (q *Queries) ListUnits(ctx context.Context) ([]Unit, error) {
	rows, err := q.db.QueryContext(ctx, listUnits)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Unit
	for rows.Next() {
		var i Unit
		if err := rows.Scan(&i.ID, &i.PropertyID, &i.Name, &i.Rent, &i.TenantName, &i.TenantPhone, &i.Status); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listUnitsByProperty = `-- name: ListUnitsByProperty :many
SELECT id, property_id, name, rent, tenant_name, tenant_phone, status FROM units
WHERE property_id = ? ORDER BY rowid
`

func (q *Queries) ListUnitsByProperty(ctx context.Context, propertyID string) ([]Unit, error) {
	rows, err := q.db.QueryContext(ctx, listUnitsByProperty, propertyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Unit
	for rows.Next() {
		var i Unit
		if err := rows.Scan(&i.ID, &i.PropertyID, &i.Name, &i.Rent, &i.TenantName, &i.TenantPhone, &i.Status); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const setUnitTenant = `-- name: SetUnitTenant :exec
UPDATE units SET tenant_name = ?, tenant_phone = ?, status = ? WHERE id = ?
`

type SetUnitTenantParams struct {
	TenantName  sql.NullString
	TenantPhone sql.NullString
	Status      string
	ID          string
}

func (q *Queries) SetUnitTenant(ctx context.Context, arg SetUnitTenantParams) error {
	_, err := q.db.ExecContext(ctx, setUnitTenant, arg.TenantName, arg.TenantPhone, arg.Status, arg.ID)
	return err
}

const countPayments = `-- name: CountPayments :one
SELECT COUNT(*) FROM payments
`

func (q *Queries) CountPayments(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countPayments)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const createPayment = `-- name: CreatePayment :exec
INSERT INTO payments (
    id, seq, tenant_name, unit_name, property_name, amount,
    paid_on, transaction_code, receipt_number, status
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreatePayment(ctx context.Context, arg Payment) error {
	_, err := q.db.ExecContext(ctx, createPayment,
		arg.ID, arg.Seq, arg.TenantName, arg.UnitName, arg.PropertyName, arg.Amount,
		arg.PaidOn, arg.TransactionCode, arg.ReceiptNumber, arg.Status)
	return err
}

const paymentColumns = `id, seq, tenant_name, unit_name, property_name, amount, paid_on, transaction_code, receipt_number, status`

const getPayment = `-- name: GetPayment :one
SELECT ` + paymentColumns + ` FROM payments WHERE id = ?
`

func scanPayment(sc interface{ Scan(...interface{}) error }) (Payment, error) {
	var i Payment
	err := sc.Scan(&i.ID, &i.Seq, &i.TenantName, &i.UnitName, &i.PropertyName, &i.Amount,
		&i.PaidOn, &i.TransactionCode, &i.ReceiptNumber, &i.Status)
	return i, err
}

func (q *Queries) GetPayment(ctx context.Context, id string) (Payment, error) {
	return scanPayment(q.db.QueryRowContext(ctx, getPayment, id))
}

const listPayments = `-- name: ListPayments :many
SELECT ` + paymentColumns + ` FROM payments ORDER BY paid_on DESC, seq DESC
`

func (q *Queries) ListPayments(ctx context.Context) ([]Payment, error) {
	rows, err := q.db.QueryContext(ctx, listPayments)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Payment
	for rows.Next() {
		i, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const createBill = `-- name: CreateBill :exec
INSERT INTO bills (
    id, type, title, description, amount, due_date,
    property_name, unit_name, status, created_date
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

func (q *Queries) CreateBill(ctx context.Context, arg Bill) error {
	_, err := q.db.ExecContext(ctx, createBill,
		arg.ID, arg.Type, arg.Title, arg.Description, arg.Amount, arg.DueDate,
		arg.PropertyName, arg.UnitName, arg.Status, arg.CreatedDate)
	return err
}

const billColumns = `id, type, title, description, amount, due_date, property_name, unit_name, status, created_date`

func scanBill(sc interface{ Scan(...interface{}) error }) (Bill, error) {
	var i Bill
	err := sc.Scan(&i.ID, &i.Type, &i.Title, &i.Description, &i.Amount, &i.DueDate,
		&i.PropertyName, &i.UnitName, &i.Status, &i.CreatedDate)
	return i, err
}

const getBill = `-- name: GetBill :one
SELECT ` + billColumns + ` FROM bills WHERE id = ?
`

func (q *Queries) GetBill(ctx context.Context, id string) (Bill, error) {
	return scanBill(q.db.QueryRowContext(ctx, getBill, id))
}

const listBills = `-- name: ListBills :many
SELECT ` + billColumns + ` FROM bills ORDER BY rowid DESC
`

func (q *Queries) ListBills(ctx context.Context) ([]Bill, error) {
	rows, err := q.db.QueryContext(ctx, listBills)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Bill
	for rows.Next() {
		i, err := scanBill(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const markBillPaid = `-- name: MarkBillPaid :execrows
UPDATE bills SET status = 'paid' WHERE id = ?
`

func (q *Queries) MarkBillPaid(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, markBillPaid, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteBill = `-- name: DeleteBill :execrows
DELETE FROM bills WHERE id = ?
`

func (q *Queries) DeleteBill(ctx context.Context, id string) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteBill, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const createExpense = `-- name: CreateExpense :exec
INSERT INTO expenses (id, description, category, amount, spent_on) VALUES (?, ?, ?, ?, ?)
`

func (q *Queries) CreateExpense(ctx context.Context, arg Expense) error {
	_, err := q.db.ExecContext(ctx, createExpense, arg.ID, arg.Description, arg.Category, arg.Amount, arg.SpentOn)
	return err
}

const listExpenses = `-- name: ListExpenses :many
SELECT id, description, category, amount, spent_on FROM expenses ORDER BY rowid DESC
`

func (q *Queries) ListExpenses(ctx context.Context) ([]Expense, error) {
	rows, err := q.db.QueryContext(ctx, listExpenses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Expense
	for rows.Next() {
		var i Expense
		if err := rows.Scan(&i.ID, &i.Description, &i.Category, &i.Amount, &i.SpentOn); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
