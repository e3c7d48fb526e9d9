package engine

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateLoanRequest(t *testing.T) {
	ceiling := decimal.NewFromInt(60000)

	tests := []struct {
		name        string
		borrower    int64
		amount      int64
		guarantor1  int64
		guarantor2  int64
		ceiling     decimal.Decimal
		expectedErr error
	}{
		{
			name:       "valid request",
			borrower:   5,
			amount:     50000,
			guarantor1: 6,
			guarantor2: 7,
			ceiling:    ceiling,
		},
		{
			name:        "zero amount",
			borrower:    5,
			amount:      0,
			guarantor1:  6,
			guarantor2:  7,
			ceiling:     ceiling,
			expectedErr: ErrIneligible,
		},
		{
			name:        "no borrowing rights",
			borrower:    5,
			amount:      10000,
			guarantor1:  6,
			guarantor2:  7,
			ceiling:     decimal.Zero,
			expectedErr: ErrIneligible,
		},
		{
			name:        "amount above ceiling",
			borrower:    5,
			amount:      70000,
			guarantor1:  6,
			guarantor2:  7,
			ceiling:     ceiling,
			expectedErr: ErrExceedsCeiling,
		},
		{
			name:        "same guarantor twice",
			borrower:    5,
			amount:      50000,
			guarantor1:  6,
			guarantor2:  6,
			ceiling:     ceiling,
			expectedErr: ErrDuplicateGuarantor,
		},
		{
			name:        "borrower as first guarantor",
			borrower:    5,
			amount:      50000,
			guarantor1:  5,
			guarantor2:  6,
			ceiling:     ceiling,
			expectedErr: ErrSelfGuarantee,
		},
		{
			name:        "borrower as second guarantor",
			borrower:    5,
			amount:      50000,
			guarantor1:  6,
			guarantor2:  5,
			ceiling:     ceiling,
			expectedErr: ErrSelfGuarantee,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLoanRequest(tt.borrower, decimal.NewFromInt(tt.amount),
				tt.guarantor1, tt.guarantor2, tt.ceiling)

			if tt.expectedErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.expectedErr)
			}
		})
	}
}

func TestValidateLoanRequest_CeilingErrorCarriesBound(t *testing.T) {
	err := ValidateLoanRequest(5, decimal.NewFromInt(70000), 6, 7, decimal.NewFromInt(60000))
	require.Error(t, err)

	var ceilingErr *ExceedsCeilingError
	require.ErrorAs(t, err, &ceilingErr)
	assert.True(t, ceilingErr.Ceiling.Equal(decimal.NewFromInt(60000)))
}

// The ceiling check must not mask the guarantor checks: an in-ceiling amount
// with a bad guarantor pair still fails on the guarantor rule.
func TestValidateLoanRequest_ChecksAreIndependent(t *testing.T) {
	ceiling := decimal.NewFromInt(120000)

	err := ValidateLoanRequest(5, decimal.NewFromInt(100000), 9, 9, ceiling)
	assert.ErrorIs(t, err, ErrDuplicateGuarantor)

	err = ValidateLoanRequest(5, decimal.NewFromInt(100000), 5, 9, ceiling)
	assert.ErrorIs(t, err, ErrSelfGuarantee)
}
