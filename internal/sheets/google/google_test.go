package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"renteasy/internal/core"
)

// fakeSheets serves the two Values endpoints the client uses.
type fakeSheets struct {
	mu      sync.Mutex
	column  [][]any
	updates []string
	bodies  []string
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")
	switch r.Method {
	case http.MethodGet:
		_ = json.NewEncoder(w).Encode(map[string]any{"values": f.column})
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.updates = append(f.updates, r.URL.Path)
		f.bodies = append(f.bodies, string(body))
		_ = json.NewEncoder(w).Encode(map[string]any{"updatedRows": 1})
	default:
		http.Error(w, "unexpected", http.StatusMethodNotAllowed)
	}
}

func newTestClient(t *testing.T, fake *fakeSheets) *Client {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	svc, err := gsheet.NewService(context.Background(),
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
		option.WithoutAuthentication())
	require.NoError(t, err)
	return NewWithService(svc, "sheet-id", "")
}

func samplePayment() core.Payment {
	return core.Payment{
		ID: "1", TenantName: "John Kamau", PropertyName: "Kamau Heights", UnitName: "A1",
		Amount: core.Money{Amount: 25000}, Date: core.NewDate(2025, 1, 8),
		TransactionCode: "RBK1A2B3C4", ReceiptNumber: "RE-001-2025", Sequence: 1,
		Status: core.PaymentCompleted,
	}
}

func TestAppendPayment(t *testing.T) {
	fake := &fakeSheets{column: [][]any{{"Receipt"}, {"RE-000-2025"}}}
	c := newTestClient(t, fake)

	ref, err := c.AppendPayment(context.Background(), samplePayment())
	require.NoError(t, err)
	assert.Equal(t, "2025 Payments!A3:G3", ref)

	require.Len(t, fake.updates, 1)
	assert.Contains(t, fake.bodies[0], "RE-001-2025")
	assert.Contains(t, fake.bodies[0], "RBK1A2B3C4")
}

func TestAppendPaymentAlreadyMirrored(t *testing.T) {
	fake := &fakeSheets{column: [][]any{{"Receipt"}, {"RE-001-2025"}}}
	c := newTestClient(t, fake)

	ref, err := c.AppendPayment(context.Background(), samplePayment())
	require.NoError(t, err)
	assert.Equal(t, "2025 Payments!A2:G2", ref)
	assert.Empty(t, fake.updates)
}

func TestAppendPaymentValidation(t *testing.T) {
	c := &Client{spreadsheetID: "test"}

	p := samplePayment()
	p.Amount = core.Money{}
	_, err := c.AppendPayment(context.Background(), p)
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	_, err = c.AppendPayment(context.Background(), samplePayment())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "not initialized"))
}

func TestNewMissingSpreadsheetID(t *testing.T) {
	_, err := New(context.Background(), " ", "")
	require.Error(t, err)
	assert.Equal(t, "missing GOOGLE_SPREADSHEET_ID", err.Error())
}

func TestNewSheetsServiceMissingCredentials(t *testing.T) {
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_JSON", "")
	t.Setenv("GOOGLE_SERVICE_ACCOUNT_FILE", "")
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	_, err := newSheetsService(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing service account credentials")
}

func TestYearPrefixedName(t *testing.T) {
	assert.Equal(t, "2025 Payments", yearPrefixedName("Payments", 2025))
	assert.Equal(t, "2024 Payments", yearPrefixedName("2024 Payments", 2025))
	assert.Equal(t, "", yearPrefixedName("  ", 2025))
}

func TestFindReceipt(t *testing.T) {
	values := [][]any{{"Receipt"}, {}, {" re-002-2025 "}}
	row, ok := findReceipt(values, "RE-002-2025")
	assert.True(t, ok)
	assert.Equal(t, 3, row)

	_, ok = findReceipt(values, "RE-009-2025")
	assert.False(t, ok)
}
