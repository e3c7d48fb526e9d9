package engine

import "github.com/shopspring/decimal"

// PaymentType is the declared intent of a loan repayment.
type PaymentType string

const (
	PaymentPartial      PaymentType = "partial"
	PaymentInterestOnly PaymentType = "interest_only"
	PaymentFull         PaymentType = "full"
)

// LoanBalances is the snapshot of a loan's outstanding amounts against which a
// repayment is allocated. MinimumMonthlyPayment is the policy floor on capital
// tranches (10% of remaining capital, maintained by the service layer).
type LoanBalances struct {
	RemainingBalance      decimal.Decimal
	RemainingInterest     decimal.Decimal
	RemainingCapital      decimal.Decimal
	MinimumMonthlyPayment decimal.Decimal
}

// Allocation is the split of a repayment between interest and capital.
type Allocation struct {
	CapitalAmount  decimal.Decimal
	InterestAmount decimal.Decimal
}

// Allocate splits a repayment between accrued interest and capital.
//
// Interest is always served first. An interest_only payment may not exceed the
// remaining interest. For partial and full payments, whatever exceeds the
// remaining interest goes to capital, but a capital tranche smaller than the
// minimum monthly payment is rejected while more than that minimum of capital
// is still owed, so the capital cannot be trickled down in token amounts.
//
// Allocate is advisory: it never mutates its inputs and the same inputs always
// produce the same result. The server-side recomputation after the repayment
// is persisted must match this split exactly.
func Allocate(loan LoanBalances, amount decimal.Decimal, paymentType PaymentType) (Allocation, error) {
	if amount.GreaterThan(loan.RemainingBalance) {
		return Allocation{}, &ExceedsBalanceError{Remaining: loan.RemainingBalance}
	}

	if paymentType == PaymentInterestOnly {
		if amount.GreaterThan(loan.RemainingInterest) {
			return Allocation{}, &ExceedsInterestError{Remaining: loan.RemainingInterest}
		}
		return Allocation{InterestAmount: amount, CapitalAmount: decimal.Zero}, nil
	}

	if amount.LessThanOrEqual(loan.RemainingInterest) {
		return Allocation{InterestAmount: amount, CapitalAmount: decimal.Zero}, nil
	}

	interest := loan.RemainingInterest
	capital := amount.Sub(loan.RemainingInterest)

	if capital.IsPositive() &&
		capital.LessThan(loan.MinimumMonthlyPayment) &&
		loan.RemainingCapital.GreaterThan(loan.MinimumMonthlyPayment) {
		return Allocation{}, &BelowMinimumPrincipalError{
			Minimum: loan.MinimumMonthlyPayment,
			Capital: capital,
		}
	}

	return Allocation{InterestAmount: interest, CapitalAmount: capital}, nil
}
