package engine

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Sentinel errors for the loan economics rules. Each violation is reported
// through a typed error that wraps one of these sentinels and carries the
// numeric bound that was violated, so callers can render a precise message.
var (
	ErrExceedsCeiling        = errors.New("amount exceeds loan ceiling")
	ErrExceedsBalance        = errors.New("amount exceeds remaining balance")
	ErrExceedsInterest       = errors.New("amount exceeds remaining interest")
	ErrBelowMinimumPrincipal = errors.New("capital tranche below minimum monthly payment")
	ErrDuplicateGuarantor    = errors.New("guarantors must be two distinct members")
	ErrSelfGuarantee         = errors.New("borrower cannot guarantee their own loan")
	ErrIneligible            = errors.New("member is not eligible for a loan")
)

// ExceedsCeilingError reports a requested amount above the member's ceiling.
type ExceedsCeilingError struct {
	Ceiling decimal.Decimal
}

func (e *ExceedsCeilingError) Error() string {
	return fmt.Sprintf("amount exceeds loan ceiling of %s", e.Ceiling.String())
}

func (e *ExceedsCeilingError) Unwrap() error { return ErrExceedsCeiling }

// ExceedsBalanceError reports a payment above the loan's remaining balance.
type ExceedsBalanceError struct {
	Remaining decimal.Decimal
}

func (e *ExceedsBalanceError) Error() string {
	return fmt.Sprintf("amount exceeds remaining balance of %s", e.Remaining.String())
}

func (e *ExceedsBalanceError) Unwrap() error { return ErrExceedsBalance }

// ExceedsInterestError reports an interest-only payment above the remaining interest.
type ExceedsInterestError struct {
	Remaining decimal.Decimal
}

func (e *ExceedsInterestError) Error() string {
	return fmt.Sprintf("amount exceeds remaining interest of %s", e.Remaining.String())
}

func (e *ExceedsInterestError) Unwrap() error { return ErrExceedsInterest }

// BelowMinimumPrincipalError reports a capital tranche under the policy floor.
type BelowMinimumPrincipalError struct {
	Minimum decimal.Decimal
	Capital decimal.Decimal
}

func (e *BelowMinimumPrincipalError) Error() string {
	return fmt.Sprintf("capital tranche %s is below the minimum payment of %s",
		e.Capital.String(), e.Minimum.String())
}

func (e *BelowMinimumPrincipalError) Unwrap() error { return ErrBelowMinimumPrincipal }
