package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentTypePartial      = "partial"
	PaymentTypeInterestOnly = "interest_only"
	PaymentTypeFull         = "full"
)

// LoanRepayment is one payment against an approved loan. CapitalAmount and
// InterestAmount are the allocator's split, fixed at creation; a repayment is
// immutable once recorded.
type LoanRepayment struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	LoanRequestID  int64           `json:"loan_request" db:"loan_request_id"`
	Amount         decimal.Decimal `json:"amount" db:"amount"`
	CapitalAmount  decimal.Decimal `json:"capital_amount" db:"capital_amount"`
	InterestAmount decimal.Decimal `json:"interest_amount" db:"interest_amount"`
	PaymentType    string          `json:"payment_type" db:"payment_type"`
	Date           time.Time       `json:"date" db:"date"`
	Notes          string          `json:"notes" db:"notes"`
}

// DTOs for requests and responses

type CreateRepaymentRequest struct {
	LoanRequest int64           `json:"loan_request" validate:"required,gt=0"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	PaymentType string          `json:"payment_type" validate:"required,oneof=partial interest_only full"`
	Notes       string          `json:"notes"`
}

type CreateRepaymentResponse struct {
	Repayment *LoanRepayment `json:"repayment"`
	Loan      *LoanRequest   `json:"loan"`
}
