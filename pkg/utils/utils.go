package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// ten percent, the policy rate for the minimum capital tranche
var minimumPaymentRate = decimal.NewFromFloat(0.10)

// MinimumMonthlyPayment returns the policy floor on capital tranches: 10% of
// the remaining capital. Zero once the capital is settled.
func MinimumMonthlyPayment(remainingCapital decimal.Decimal) decimal.Decimal {
	if !remainingCapital.IsPositive() {
		return decimal.Zero
	}
	return remainingCapital.Mul(minimumPaymentRate)
}

// MinimumPaymentAt is MinimumMonthlyPayment at a configured percent instead of
// the default policy rate.
func MinimumPaymentAt(remainingCapital decimal.Decimal, percent int) decimal.Decimal {
	if !remainingCapital.IsPositive() || percent <= 0 {
		return decimal.Zero
	}
	return remainingCapital.Mul(decimal.NewFromInt(int64(percent))).Div(decimal.NewFromInt(100))
}

// ParseDate parses an ISO calendar date (2006-01-02). The application never
// negotiates time zones; dates are plain calendar days.
func ParseDate(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

// FormatDate renders a date as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}

// MonthStart returns midnight on the first day of the month containing t.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DaysLate returns how many days past the due day of the month a date falls,
// zero if on time.
func DaysLate(date time.Time, dueDay int) int {
	if date.Day() <= dueDay {
		return 0
	}
	return date.Day() - dueDay
}

// IsDateOverdue checks if a due date has passed relative to now.
func IsDateOverdue(dueDate time.Time, now time.Time) bool {
	return now.After(dueDate)
}

// DecimalFromString converts string to decimal.Decimal
func DecimalFromString(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(s)
}
