package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		want   string
		amount float64
	}{
		{name: "one decimal", amount: 12.5, want: "12.50"},
		{name: "whole number", amount: 100, want: "100.00"},
		{name: "rounds up", amount: 0.129, want: "0.13"},
		{name: "already two decimals", amount: 9.99, want: "9.99"},
		{name: "zero", amount: 0, want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatAmount(tt.amount))
		})
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		{name: "two decimals", input: "12.50", want: 12.5, wantOK: true},
		{name: "padded", input: " 3.00 ", want: 3, wantOK: true},
		{name: "garbage", input: "abc", wantOK: false},
		{name: "empty", input: "", wantOK: false},
		{name: "nan is rejected", input: "NaN", wantOK: false},
		{name: "infinity is rejected", input: "+Inf", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseAmount(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 0.0001)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", FormatDate(d))

	_, err = ParseDate("not-a-date")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDate("2024-02-30")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = ParseDate(" 2024-01-05")
	assert.ErrorIs(t, err, ErrInvalidDate, "surrounding whitespace is not trimmed")
}

func TestParseTransactionType(t *testing.T) {
	got, err := ParseTransactionType("income")
	require.NoError(t, err)
	assert.Equal(t, TypeIncome, got)

	got, err = ParseTransactionType(" EXPENSE ")
	require.NoError(t, err)
	assert.Equal(t, TypeExpense, got)

	_, err = ParseTransactionType("transfer")
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestValidateEntry(t *testing.T) {
	valid := Transaction{
		Date:        "2024-01-05",
		Category:    CategoryFood,
		Description: "lunch",
		Amount:      12.5,
		Type:        TypeExpense,
	}

	tests := []struct {
		wantErr error
		mutate  func(*Transaction)
		name    string
	}{
		{name: "valid entry", mutate: func(*Transaction) {}},
		{name: "empty description", mutate: func(t *Transaction) { t.Description = "  " }, wantErr: ErrMissingDescription},
		{name: "zero amount", mutate: func(t *Transaction) { t.Amount = 0 }, wantErr: ErrInvalidAmount},
		{name: "negative amount", mutate: func(t *Transaction) { t.Amount = -4 }, wantErr: ErrInvalidAmount},
		{name: "nan amount", mutate: func(t *Transaction) { t.Amount = math.NaN() }, wantErr: ErrInvalidAmount},
		{name: "bad date", mutate: func(t *Transaction) { t.Date = "05/01/2024" }, wantErr: ErrInvalidDate},
		{name: "unknown category", mutate: func(t *Transaction) { t.Category = "Travel" }, wantErr: ErrInvalidCategory},
		{name: "unknown type", mutate: func(t *Transaction) { t.Type = "Transfer" }, wantErr: ErrInvalidType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			txn := valid
			tt.mutate(&txn)
			err := ValidateEntry(txn, DefaultCategories)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
