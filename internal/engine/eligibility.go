package engine

import "github.com/shopspring/decimal"

// ValidateLoanRequest checks the structural rules of a loan request: the
// amount must be positive and within the borrower's ceiling, and the two
// guarantors must be distinct members, neither of them the borrower.
//
// Checks run in a fixed order and the first failure wins, but every rule is
// evaluated on its own inputs; none is subsumed by an earlier one.
func ValidateLoanRequest(borrowerID int64, amount decimal.Decimal, guarantor1ID, guarantor2ID int64, ceiling decimal.Decimal) error {
	if !amount.IsPositive() || ceiling.IsZero() {
		return ErrIneligible
	}
	if amount.GreaterThan(ceiling) {
		return &ExceedsCeilingError{Ceiling: ceiling}
	}
	if guarantor1ID == guarantor2ID {
		return ErrDuplicateGuarantor
	}
	if guarantor1ID == borrowerID || guarantor2ID == borrowerID {
		return ErrSelfGuarantee
	}
	return nil
}
