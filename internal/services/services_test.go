package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"renteasy/internal/core"
	"renteasy/internal/ledger"
	"renteasy/internal/ledger/memory"
)

type fakePublisher struct {
	mu       sync.Mutex
	payments []string
	bills    []string
	err      error
}

func (f *fakePublisher) PublishPaymentRecorded(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments = append(f.payments, id)
	return f.err
}

func (f *fakePublisher) PublishBillPaid(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bills = append(f.bills, id)
	return f.err
}

func fixedClock(y, m, d int) Clock {
	return func() time.Time { return time.Date(y, time.Month(m), d, 10, 30, 0, 0, time.UTC) }
}

func sequentialIDs(prefix string) IDGenerator {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s%d", prefix, n)
	}
}

func seededStore(t *testing.T) *memory.Store {
	t.Helper()
	s := memory.New()
	require.NoError(t, ledger.Seed(context.Background(), s))
	return s
}

func TestPropertyService_EndToEnd(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewPropertyService(store, WithIDGenerator(sequentialIDs("id-")))

	p, err := svc.AddProperty(ctx, "Kamau Heights", "Kileleshwa, Nairobi")
	require.NoError(t, err)
	assert.Empty(t, p.Units)

	props, err := svc.ListProperties(ctx)
	require.NoError(t, err)
	assert.Len(t, props, 1)

	u, err := svc.AddUnit(ctx, p.ID, "A1", "25000")
	require.NoError(t, err)
	assert.Equal(t, core.UnitVacant, u.Status)

	got, err := svc.GetProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.OccupancyRate())

	u, err = svc.AddTenant(ctx, u.ID, "John Kamau", "0712345678")
	require.NoError(t, err)
	assert.Equal(t, core.UnitOccupied, u.Status)

	got, err = svc.GetProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.OccupiedUnits())
	assert.Equal(t, 1, got.TotalUnits())
	assert.Equal(t, core.UnitOccupied, got.Units[0].Status)
	assert.Equal(t, 100, got.OccupancyRate())
}

func TestPropertyService_Validation(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	svc := NewPropertyService(store)

	_, err := svc.AddProperty(ctx, "  ", "Westlands")
	assert.ErrorIs(t, err, core.ErrEmptyName)
	_, err = svc.AddProperty(ctx, "Riverside", "")
	assert.ErrorIs(t, err, core.ErrEmptyLocation)
	props, _ := svc.ListProperties(ctx)
	assert.Empty(t, props)

	p, err := svc.AddProperty(ctx, "Riverside", "Westlands")
	require.NoError(t, err)

	for _, rent := range []string{"", "abc", "0", "-100", "12.5"} {
		_, err = svc.AddUnit(ctx, p.ID, "B1", rent)
		assert.ErrorIs(t, err, core.ErrInvalidAmount, "rent %q", rent)
	}
	_, err = svc.AddUnit(ctx, p.ID, "", "20000")
	assert.ErrorIs(t, err, core.ErrEmptyName)
	_, err = svc.AddUnit(ctx, "missing", "B1", "20000")
	assert.ErrorIs(t, err, core.ErrNotFound)

	got, _ := svc.GetProperty(ctx, p.ID)
	assert.Empty(t, got.Units)
}

func TestPropertyService_AddTenantErrors(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	svc := NewPropertyService(store)

	_, err := svc.AddTenant(ctx, "2", "", "0712")
	assert.ErrorIs(t, err, core.ErrEmptyTenantName)
	_, err = svc.AddTenant(ctx, "2", "Grace", "")
	assert.ErrorIs(t, err, core.ErrEmptyPhone)
	_, err = svc.AddTenant(ctx, "404", "Grace", "0712")
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = svc.AddTenant(ctx, "1", "Grace", "0712")
	assert.ErrorIs(t, err, core.ErrUnitOccupied)

	p, _ := svc.GetProperty(ctx, "1")
	for _, u := range p.Units {
		assert.Equal(t, u.Tenant != nil, u.Status == core.UnitOccupied, "unit %s", u.Name)
	}
	assert.Equal(t, "John Kamau", p.Units[0].Tenant.Name)
}

func TestPaymentService_ReceiptSequence(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewPaymentService(memory.New(), WithClock(fixedClock(2025, 1, 7)), WithPublisher(pub))

	first, err := svc.RecordPayment(ctx, PaymentInput{TenantName: "John Kamau", Amount: "25000", TransactionCode: "RBK1A2B3C4"})
	require.NoError(t, err)
	assert.Equal(t, "RE-001-2025", first.ReceiptNumber)

	before, err := svc.Summary(ctx)
	require.NoError(t, err)

	second, err := svc.RecordPayment(ctx, PaymentInput{
		TenantName: "Mary Wanjiku", Amount: "18000", TransactionCode: "RBK2B3C4D5",
		PropertyName: "Riverside Apartments", UnitName: "B2",
	})
	require.NoError(t, err)
	assert.Equal(t, "RE-002-2025", second.ReceiptNumber)
	assert.Equal(t, core.PaymentCompleted, second.Status)
	assert.Equal(t, core.NewDate(2025, 1, 7), second.Date)

	after, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.Total.Amount+18000, after.Total.Amount)
	assert.Equal(t, int64(21500), after.Average.Amount)

	third, err := svc.RecordPayment(ctx, PaymentInput{TenantName: "Peter Ochieng", Amount: "22,000", TransactionCode: "RBK3C4D5E6"})
	require.NoError(t, err)
	assert.Equal(t, "RE-003-2025", third.ReceiptNumber)

	assert.Equal(t, []string{first.ID, second.ID, third.ID}, pub.payments)

	list, err := svc.ListPayments(ctx)
	require.NoError(t, err)
	assert.Equal(t, third.ID, list[0].ID)
}

func TestPaymentService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewPaymentService(memory.New())

	cases := []struct {
		in   PaymentInput
		want error
	}{
		{PaymentInput{Amount: "100", TransactionCode: "X"}, core.ErrEmptyTenantName},
		{PaymentInput{TenantName: "A", TransactionCode: "X"}, core.ErrInvalidAmount},
		{PaymentInput{TenantName: "A", Amount: "ten", TransactionCode: "X"}, core.ErrInvalidAmount},
		{PaymentInput{TenantName: "A", Amount: "100"}, core.ErrEmptyTransactionCode},
	}
	for _, tc := range cases {
		_, err := svc.RecordPayment(ctx, tc.in)
		assert.ErrorIs(t, err, tc.want)
	}
	list, _ := svc.ListPayments(ctx)
	assert.Empty(t, list)
}

func TestPaymentService_PublishFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewPaymentService(memory.New(), WithPublisher(pub))

	_, err := svc.RecordPayment(ctx, PaymentInput{TenantName: "A", Amount: "100", TransactionCode: "X"})
	require.NoError(t, err)
	assert.Len(t, pub.payments, 1)
}

func TestPaymentService_Receipt(t *testing.T) {
	ctx := context.Background()
	svc := NewPaymentService(seededStore(t))

	doc, err := svc.Receipt(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, "Receipt-RE-002-2025.txt", doc.Filename)
	assert.Contains(t, doc.Body, "Amount Paid: KES 18,000\n")

	_, err = svc.Receipt(ctx, "nope")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestBillService_StatusAtCreation(t *testing.T) {
	ctx := context.Background()
	svc := NewBillService(memory.New(), WithClock(fixedClock(2025, 1, 10)))

	base := BillInput{Type: "water", Title: "Water Bill", Amount: "1200", PropertyName: "Riverside Apartments", UnitName: "B2"}

	in := base
	in.DueDate = "2025-01-09"
	b, err := svc.AddBill(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, core.BillOverdue, b.Status)
	assert.Equal(t, core.NewDate(2025, 1, 10), b.CreatedDate)

	in.DueDate = "2025-01-10"
	b, err = svc.AddBill(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, core.BillPending, b.Status)

	in.DueDate = "2025-02-10"
	b, err = svc.AddBill(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, core.BillPending, b.Status)

	list, err := svc.ListBills(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, b.ID, list[0].ID)
}

func TestBillService_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewBillService(memory.New())
	good := BillInput{Type: "electricity", Title: "Power", Amount: "3500", DueDate: "2025-01-15", PropertyName: "Kamau Heights"}

	cases := []struct {
		mutate func(*BillInput)
		want   error
	}{
		{func(b *BillInput) { b.Type = "" }, core.ErrInvalidBillType},
		{func(b *BillInput) { b.Type = "gas" }, core.ErrInvalidBillType},
		{func(b *BillInput) { b.Title = "" }, core.ErrEmptyTitle},
		{func(b *BillInput) { b.Amount = "" }, core.ErrInvalidAmount},
		{func(b *BillInput) { b.DueDate = "" }, core.ErrMissingDueDate},
		{func(b *BillInput) { b.DueDate = "15/01/2025" }, core.ErrInvalidDate},
		{func(b *BillInput) { b.PropertyName = "" }, core.ErrEmptyPropertyName},
	}
	for i, tc := range cases {
		in := good
		tc.mutate(&in)
		_, err := svc.AddBill(ctx, in)
		assert.ErrorIs(t, err, tc.want, "case %d", i)
	}
	list, _ := svc.ListBills(ctx)
	assert.Empty(t, list)
}

func TestBillService_MarkPaidAndDelete(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewBillService(seededStore(t), WithPublisher(pub))

	b, err := svc.MarkPaid(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, core.BillPaid, b.Status)
	b, err = svc.MarkPaid(ctx, "3")
	require.NoError(t, err)
	assert.Equal(t, core.BillPaid, b.Status)
	assert.Equal(t, []string{"3", "3"}, pub.bills)

	_, err = svc.MarkPaid(ctx, "404")
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, svc.DeleteBill(ctx, "2"))
	assert.ErrorIs(t, svc.DeleteBill(ctx, "2"), core.ErrNotFound)

	sum, err := svc.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, core.StatusTotal{Total: core.Money{Amount: 3500}, Count: 1}, sum.Pending)
	assert.Equal(t, core.StatusTotal{Total: core.Money{Amount: 8000}, Count: 1}, sum.Paid)
	assert.Equal(t, 0, sum.Overdue.Count)
}

func TestExpenseService(t *testing.T) {
	ctx := context.Background()
	svc := NewExpenseService(memory.New(), WithClock(fixedClock(2025, 1, 9)))

	e, err := svc.RecordExpense(ctx, ExpenseInput{Description: "Gate repair", Category: "Maintenance", Amount: "4,500"})
	require.NoError(t, err)
	assert.Equal(t, core.NewDate(2025, 1, 9), e.Date)
	assert.Equal(t, int64(4500), e.Amount.Amount)

	e, err = svc.RecordExpense(ctx, ExpenseInput{Description: "Security services", Category: "Security", Amount: "8000", Date: "2025-01-01"})
	require.NoError(t, err)
	assert.Equal(t, core.NewDate(2025, 1, 1), e.Date)

	_, err = svc.RecordExpense(ctx, ExpenseInput{Category: "Security", Amount: "8000"})
	assert.ErrorIs(t, err, core.ErrEmptyDescription)
	_, err = svc.RecordExpense(ctx, ExpenseInput{Description: "x", Category: "Security", Amount: "8000", Date: "soon"})
	assert.ErrorIs(t, err, core.ErrInvalidDate)

	list, err := svc.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}
