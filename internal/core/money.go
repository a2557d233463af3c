// Package core provides money parsing and handling utilities.
//
// Amounts are whole currency units (KES). There are no cents: arithmetic stays
// on int64 and thousands separators only appear when an amount is displayed.
package core

import (
	"encoding/json"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencyCode prefixes every displayed amount.
const CurrencyCode = "KES"

// MaxAmount is the largest amount ParseAmount accepts. Ledger totals are
// plain int64 sums, so this bound keeps any realistic ledger far from
// overflow.
const MaxAmount int64 = 1_000_000_000_000

// ParseAmount converts user input to a whole-unit amount.
//
// Digits may be grouped with commas ("25,000"). Signs, decimals and any other
// characters are rejected, as are zero and values above MaxAmount.
//
// Examples:
//
//	ParseAmount("25000")  -> 25000, nil
//	ParseAmount("25,000") -> 25000, nil
//	ParseAmount("12.50")  -> 0, ErrInvalidAmount
func ParseAmount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, ErrInvalidAmount
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrInvalidAmount
		}
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 || v > MaxAmount {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// ParseMoney is ParseAmount wrapped in a Money value.
func ParseMoney(s string) (Money, error) {
	v, err := ParseAmount(s)
	if err != nil {
		return Money{}, err
	}
	return Money{Amount: v}, nil
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{Amount: m.Amount + o.Amount}
}

// Sub returns m - o. The result may be negative.
func (m Money) Sub(o Money) Money {
	return Money{Amount: m.Amount - o.Amount}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// Grouped formats the amount with thousands separators and no currency code,
// e.g. "25,000" or "-1,200".
func (m Money) Grouped() string {
	return message.NewPrinter(language.English).Sprintf("%d", m.Amount)
}

// String formats the amount for display, e.g. "KES 25,000".
func (m Money) String() string {
	return CurrencyCode + " " + m.Grouped()
}

// Sum adds up a list of amounts.
func Sum(amounts ...Money) Money {
	var total Money
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// MarshalJSON encodes the amount as a bare JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Amount)
}

func (m *Money) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &m.Amount)
}
