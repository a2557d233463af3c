package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"renteasy/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements ledger.Store on a SQLite database.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// Payment sequences are assigned inside a transaction; a single writer
	// connection keeps them gapless.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, queries: New(db)}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) withTx(ctx context.Context, fn func(q *Queries) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(r.queries.WithTx(tx)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return core.ErrNotFound
	}
	return err
}

func (r *SQLiteRepository) AddProperty(ctx context.Context, p core.Property) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return r.withTx(ctx, func(q *Queries) error {
		if err := q.CreateProperty(ctx, Property{ID: p.ID, Name: p.Name, Location: p.Location}); err != nil {
			return fmt.Errorf("create property: %w", err)
		}
		for _, u := range p.Units {
			if err := q.CreateUnit(ctx, unitRow(p.ID, u)); err != nil {
				return fmt.Errorf("create unit %s: %w", u.Name, err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) AddUnit(ctx context.Context, propertyID string, u core.Unit) error {
	if err := u.Validate(); err != nil {
		return err
	}
	return r.withTx(ctx, func(q *Queries) error {
		ok, err := q.PropertyExists(ctx, propertyID)
		if err != nil {
			return fmt.Errorf("lookup property: %w", err)
		}
		if !ok {
			return core.ErrNotFound
		}
		if err := q.CreateUnit(ctx, unitRow(propertyID, u)); err != nil {
			return fmt.Errorf("create unit: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) AssignTenant(ctx context.Context, unitID string, t core.Tenant) (core.Unit, error) {
	var out core.Unit
	err := r.withTx(ctx, func(q *Queries) error {
		row, err := q.GetUnit(ctx, unitID)
		if err != nil {
			return notFound(err)
		}
		u := unitFromRow(row)
		if err := u.AssignTenant(t); err != nil {
			return err
		}
		if err := q.SetUnitTenant(ctx, SetUnitTenantParams{
			TenantName:  sql.NullString{String: u.Tenant.Name, Valid: true},
			TenantPhone: sql.NullString{String: u.Tenant.Phone, Valid: true},
			Status:      string(u.Status),
			ID:          u.ID,
		}); err != nil {
			return fmt.Errorf("set unit tenant: %w", err)
		}
		out = u
		return nil
	})
	if err != nil {
		return core.Unit{}, err
	}
	slog.InfoContext(ctx, "Tenant assigned", "unit_id", unitID, "tenant", out.Tenant.Name)
	return out, nil
}

func (r *SQLiteRepository) ListProperties(ctx context.Context) ([]core.Property, error) {
	rows, err := r.queries.ListProperties(ctx)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	units, err := r.queries.ListUnits(ctx)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	byProperty := make(map[string][]core.Unit, len(rows))
	for _, u := range units {
		byProperty[u.PropertyID] = append(byProperty[u.PropertyID], unitFromRow(u))
	}
	out := make([]core.Property, len(rows))
	for i, p := range rows {
		out[i] = core.Property{ID: p.ID, Name: p.Name, Location: p.Location, Units: byProperty[p.ID]}
	}
	return out, nil
}

func (r *SQLiteRepository) GetProperty(ctx context.Context, id string) (core.Property, error) {
	row, err := r.queries.GetProperty(ctx, id)
	if err != nil {
		return core.Property{}, notFound(err)
	}
	units, err := r.queries.ListUnitsByProperty(ctx, id)
	if err != nil {
		return core.Property{}, fmt.Errorf("list units: %w", err)
	}
	p := core.Property{ID: row.ID, Name: row.Name, Location: row.Location}
	for _, u := range units {
		p.Units = append(p.Units, unitFromRow(u))
	}
	return p, nil
}

func (r *SQLiteRepository) AppendPayment(ctx context.Context, p core.Payment) (core.Payment, error) {
	if err := p.Validate(); err != nil {
		return core.Payment{}, err
	}
	err := r.withTx(ctx, func(q *Queries) error {
		n, err := q.CountPayments(ctx)
		if err != nil {
			return fmt.Errorf("count payments: %w", err)
		}
		p.AssignSequence(int(n) + 1)
		if err := q.CreatePayment(ctx, paymentRow(p)); err != nil {
			return fmt.Errorf("create payment: %w", err)
		}
		return nil
	})
	if err != nil {
		return core.Payment{}, err
	}

	slog.InfoContext(ctx, "Payment saved to SQLite",
		"id", p.ID,
		"receipt", p.ReceiptNumber,
		"amount", p.Amount.Amount)
	return p, nil
}

func (r *SQLiteRepository) ListPayments(ctx context.Context) ([]core.Payment, error) {
	rows, err := r.queries.ListPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	out := make([]core.Payment, 0, len(rows))
	for _, row := range rows {
		p, err := paymentFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *SQLiteRepository) GetPayment(ctx context.Context, id string) (core.Payment, error) {
	row, err := r.queries.GetPayment(ctx, id)
	if err != nil {
		return core.Payment{}, notFound(err)
	}
	return paymentFromRow(row)
}

func (r *SQLiteRepository) AddBill(ctx context.Context, b core.Bill) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := r.queries.CreateBill(ctx, billRow(b)); err != nil {
		return fmt.Errorf("create bill: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkBillPaid(ctx context.Context, id string) (core.Bill, error) {
	n, err := r.queries.MarkBillPaid(ctx, id)
	if err != nil {
		return core.Bill{}, fmt.Errorf("mark bill paid: %w", err)
	}
	if n == 0 {
		return core.Bill{}, core.ErrNotFound
	}
	return r.GetBill(ctx, id)
}

func (r *SQLiteRepository) DeleteBill(ctx context.Context, id string) error {
	n, err := r.queries.DeleteBill(ctx, id)
	if err != nil {
		return fmt.Errorf("delete bill: %w", err)
	}
	if n == 0 {
		return core.ErrNotFound
	}
	slog.InfoContext(ctx, "Bill deleted", "id", id)
	return nil
}

func (r *SQLiteRepository) ListBills(ctx context.Context) ([]core.Bill, error) {
	rows, err := r.queries.ListBills(ctx)
	if err != nil {
		return nil, fmt.Errorf("list bills: %w", err)
	}
	out := make([]core.Bill, 0, len(rows))
	for _, row := range rows {
		b, err := billFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}

func (r *SQLiteRepository) GetBill(ctx context.Context, id string) (core.Bill, error) {
	row, err := r.queries.GetBill(ctx, id)
	if err != nil {
		return core.Bill{}, notFound(err)
	}
	return billFromRow(row)
}

func (r *SQLiteRepository) AddExpense(ctx context.Context, e core.Expense) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if err := r.queries.CreateExpense(ctx, Expense{
		ID:          e.ID,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount.Amount,
		SpentOn:     e.Date.String(),
	}); err != nil {
		return fmt.Errorf("create expense: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.queries.ListExpenses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	out := make([]core.Expense, 0, len(rows))
	for _, row := range rows {
		d, err := core.ParseDate(row.SpentOn)
		if err != nil {
			return nil, fmt.Errorf("expense %s: %w", row.ID, err)
		}
		out = append(out, core.Expense{
			ID:          row.ID,
			Description: row.Description,
			Category:    row.Category,
			Amount:      core.Money{Amount: row.Amount},
			Date:        d,
		})
	}
	return out, nil
}

func unitRow(propertyID string, u core.Unit) Unit {
	row := Unit{
		ID:         u.ID,
		PropertyID: propertyID,
		Name:       u.Name,
		Rent:       u.Rent.Amount,
		Status:     string(core.UnitVacant),
	}
	if u.Tenant != nil {
		row.TenantName = sql.NullString{String: u.Tenant.Name, Valid: true}
		row.TenantPhone = sql.NullString{String: u.Tenant.Phone, Valid: true}
		row.Status = string(core.UnitOccupied)
	}
	return row
}

func unitFromRow(row Unit) core.Unit {
	u := core.Unit{
		ID:     row.ID,
		Name:   row.Name,
		Rent:   core.Money{Amount: row.Rent},
		Status: core.UnitVacant,
	}
	if row.TenantName.Valid {
		u.Tenant = &core.Tenant{Name: row.TenantName.String, Phone: row.TenantPhone.String}
		u.Status = core.UnitOccupied
	}
	return u
}

func paymentRow(p core.Payment) Payment {
	return Payment{
		ID:              p.ID,
		Seq:             int64(p.Sequence),
		TenantName:      p.TenantName,
		UnitName:        p.UnitName,
		PropertyName:    p.PropertyName,
		Amount:          p.Amount.Amount,
		PaidOn:          p.Date.String(),
		TransactionCode: p.TransactionCode,
		ReceiptNumber:   p.ReceiptNumber,
		Status:          string(p.Status),
	}
}

func paymentFromRow(row Payment) (core.Payment, error) {
	d, err := core.ParseDate(row.PaidOn)
	if err != nil {
		return core.Payment{}, fmt.Errorf("payment %s: %w", row.ID, err)
	}
	return core.Payment{
		ID:              row.ID,
		TenantName:      row.TenantName,
		UnitName:        row.UnitName,
		PropertyName:    row.PropertyName,
		Amount:          core.Money{Amount: row.Amount},
		Date:            d,
		TransactionCode: row.TransactionCode,
		ReceiptNumber:   row.ReceiptNumber,
		Sequence:        int(row.Seq),
		Status:          core.PaymentStatus(row.Status),
	}, nil
}

func billRow(b core.Bill) Bill {
	return Bill{
		ID:           b.ID,
		Type:         string(b.Type),
		Title:        b.Title,
		Description:  b.Description,
		Amount:       b.Amount.Amount,
		DueDate:      b.DueDate.String(),
		PropertyName: b.PropertyName,
		UnitName:     b.UnitName,
		Status:       string(b.Status),
		CreatedDate:  b.CreatedDate.String(),
	}
}

func billFromRow(row Bill) (core.Bill, error) {
	due, err := core.ParseDate(row.DueDate)
	if err != nil {
		return core.Bill{}, fmt.Errorf("bill %s due date: %w", row.ID, err)
	}
	var created core.Date
	if row.CreatedDate != "" {
		if created, err = core.ParseDate(row.CreatedDate); err != nil {
			return core.Bill{}, fmt.Errorf("bill %s created date: %w", row.ID, err)
		}
	}
	return core.Bill{
		ID:           row.ID,
		Type:         core.BillType(row.Type),
		Title:        row.Title,
		Description:  row.Description,
		Amount:       core.Money{Amount: row.Amount},
		DueDate:      due,
		PropertyName: row.PropertyName,
		UnitName:     row.UnitName,
		Status:       core.BillStatus(row.Status),
		CreatedDate:  created,
	}, nil
}
