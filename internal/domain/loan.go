package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	LoanStatusPending  = "pending"
	LoanStatusApproved = "approved"
	LoanStatusRejected = "rejected"
	LoanStatusRepaid   = "repaid"
)

// GuarantorCount is the number of distinct guarantors a loan request needs.
const GuarantorCount = 2

// LoanRequest is a loan from request through repayment. The running totals are
// server truth, recomputed from the repayment ledger after every repayment;
// clients may preview an allocation but never write these fields.
//
// Invariants: RemainingBalance = TotalAmountWithInterest - TotalRepaid and
// RemainingCapital + RemainingInterest = RemainingBalance.
type LoanRequest struct {
	ID            int64           `json:"id" db:"id"`
	MemberID      int64           `json:"member" db:"member_id"`
	Amount        decimal.Decimal `json:"amount" db:"amount"`
	Justification string          `json:"justification" db:"justification"`
	InterestRate  decimal.Decimal `json:"interest_rate" db:"interest_rate"`
	Status        string          `json:"status" db:"status"`
	DateRequested time.Time       `json:"date_requested" db:"date_requested"`
	DueDate       *time.Time      `json:"repayment_due_date,omitempty" db:"repayment_due_date"`
	Guarantors    []int64         `json:"guarantors" db:"-"`

	TotalAmountWithInterest decimal.Decimal `json:"total_amount_with_interest" db:"total_amount_with_interest"`
	TotalRepaid             decimal.Decimal `json:"total_repaid" db:"total_repaid"`
	RemainingBalance        decimal.Decimal `json:"remaining_balance" db:"remaining_balance"`
	RemainingCapital        decimal.Decimal `json:"remaining_capital" db:"remaining_capital"`
	RemainingInterest       decimal.Decimal `json:"remaining_interest" db:"remaining_interest"`
	CapitalRepaid           decimal.Decimal `json:"capital_repaid" db:"capital_repaid"`
	InterestRepaid          decimal.Decimal `json:"interest_repaid" db:"interest_repaid"`
	MinimumMonthlyPayment   decimal.Decimal `json:"minimum_monthly_payment" db:"minimum_monthly_payment"`
	IsFullyRepaid           bool            `json:"is_fully_repaid" db:"is_fully_repaid"`
}

// DTOs for requests and responses

type CreateLoanRequestRequest struct {
	Member        int64           `json:"member" validate:"required,gt=0"`
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	Justification string          `json:"justification" validate:"required"`
	Guarantors    []int64         `json:"guarantors" validate:"required,len=2"`
}

type UpdateLoanStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=approved rejected"`
}

// LoanTerms is the preview shown before a request is submitted: the borrower's
// ceiling, the derived rate and the total to repay.
type LoanTerms struct {
	MaxAmount    decimal.Decimal `json:"max_amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TotalToRepay decimal.Decimal `json:"total_to_repay"`
}

type LoanSummary struct {
	LoanID           int64           `json:"loan_id"`
	Status           string          `json:"status"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	TotalRepaid      decimal.Decimal `json:"total_repaid"`
	IsFullyRepaid    bool            `json:"is_fully_repaid"`
}
