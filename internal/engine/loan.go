// Package engine implements the Friendly Banks loan economics rules: loan
// ceilings and interest rates derived from Berry points, repayment allocation
// between interest and capital, contribution impact on Berry points, and
// structural validation of loan requests.
//
// Every function is pure and stateless. Amounts are exact decimals; the engine
// never rounds, rounding is a presentation concern.
package engine

import "github.com/shopspring/decimal"

// Loan ceilings per Berry score bracket, in XAF, as fixed by the charter.
var (
	ceilingTier1 = decimal.NewFromInt(60000)
	ceilingTier2 = decimal.NewFromInt(120000)
	ceilingTier3 = decimal.NewFromInt(300000)
	ceilingTier4 = decimal.NewFromInt(500000)

	rateThresholdLow  = decimal.NewFromInt(40000)
	rateThresholdHigh = decimal.NewFromInt(100000)

	hundred = decimal.NewFromInt(100)
)

// MaxLoanAmount returns the maximum loan principal a member may request for a
// given Berry score. Members under 10 points cannot borrow.
//
// The charter places a score of exactly 100 in the first bracket and 101-199
// in the second; that boundary is kept as written.
func MaxLoanAmount(berryScore int) decimal.Decimal {
	switch {
	case berryScore >= 10 && berryScore <= 100:
		return ceilingTier1
	case berryScore > 100 && berryScore <= 199:
		return ceilingTier2
	case berryScore >= 200 && berryScore <= 499:
		return ceilingTier3
	case berryScore >= 500:
		return ceilingTier4
	default:
		return decimal.Zero
	}
}

// InterestRate returns the interest rate in percent for a requested principal.
// Smaller loans carry a higher rate.
func InterestRate(amount decimal.Decimal) decimal.Decimal {
	switch {
	case amount.IsPositive() && amount.LessThan(rateThresholdLow):
		return decimal.NewFromInt(10)
	case amount.GreaterThanOrEqual(rateThresholdLow) && amount.LessThan(rateThresholdHigh):
		return decimal.NewFromInt(8)
	case amount.GreaterThanOrEqual(rateThresholdHigh):
		return decimal.NewFromInt(6)
	default:
		return decimal.Zero
	}
}

// TotalToRepay returns principal plus simple interest: amount * (1 + rate/100).
func TotalToRepay(amount, ratePercent decimal.Decimal) decimal.Decimal {
	return amount.Mul(decimal.NewFromInt(1).Add(ratePercent.Div(hundred)))
}
