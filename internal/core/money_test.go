package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"25000", 25000, true},
		{" 25,000 ", 25000, true},
		{"1", 1, true},
		{"1,234,567", 1234567, true},
		{"0", 0, false},
		{"", 0, false},
		{",", 0, false},
		{"-5", 0, false},
		{"12.50", 0, false},
		{"abc", 0, false},
		{"99999999999999999999", 0, false},
		{"1,000,000,000,000", MaxAmount, true},
		{"1000000000001", 0, false},
		{"9000000000000000000", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			require.NoError(t, err, "input %q", tc.in)
			assert.Equal(t, tc.want, got, "input %q", tc.in)
			continue
		}
		assert.ErrorIs(t, err, ErrInvalidAmount, "input %q", tc.in)
	}
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "KES 25,000", Money{Amount: 25000}.String())
	assert.Equal(t, "KES 0", Money{}.String())
	assert.Equal(t, "KES 1,234,567", Money{Amount: 1234567}.String())
	assert.Equal(t, "-1,200", Money{Amount: -1200}.Grouped())
}

func TestMoneyArithmetic(t *testing.T) {
	total := Sum(Money{Amount: 3500}, Money{Amount: 8000}, Money{Amount: 1200})
	assert.Equal(t, int64(12700), total.Amount)
	assert.Equal(t, int64(52300), Money{Amount: 65000}.Sub(total).Amount)
	assert.True(t, Sum().IsZero())
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Amount Money `json:"amount"`
	}{Money{Amount: 18000}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":18000}`, string(b))

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`25000`), &m))
	assert.Equal(t, int64(25000), m.Amount)
}
