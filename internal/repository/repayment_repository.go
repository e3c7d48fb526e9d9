package repository

import (
	"context"

	"github.com/Akanael21/FriendlyBanks/internal/domain"

	"github.com/jmoiron/sqlx"
)

type repaymentRepository struct {
	db *sqlx.DB
}

func NewRepaymentRepository(db *sqlx.DB) RepaymentRepository {
	return &repaymentRepository{db: db}
}

// Record reads the loan under FOR UPDATE so concurrent repayments against
// the same loan serialize on the row lock; apply therefore validates and
// recomputes against the latest committed ledger, never a stale read. The
// repayment insert and the totals update commit together.
func (r *repaymentRepository) Record(ctx context.Context, loanID int64, apply RepaymentApply) (*domain.LoanRepayment, *domain.LoanRequest, error) {
	lockQuery := `SELECT ` + loanColumns + ` FROM loan_requests WHERE id = $1 FOR UPDATE`

	guarantorQuery := `
		SELECT member_id FROM loan_guarantors
		WHERE loan_request_id = $1
		ORDER BY member_id
	`

	ledgerQuery := `
		SELECT id, loan_request_id, amount, capital_amount, interest_amount, payment_type, date, notes
		FROM loan_repayments
		WHERE loan_request_id = $1
		ORDER BY date, id
	`

	repaymentQuery := `
		INSERT INTO loan_repayments (id, loan_request_id, amount, capital_amount, interest_amount, payment_type, date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	loanQuery := `
		UPDATE loan_requests
		SET status = $2, total_repaid = $3, remaining_balance = $4, remaining_capital = $5,
			remaining_interest = $6, capital_repaid = $7, interest_repaid = $8,
			minimum_monthly_payment = $9, is_fully_repaid = $10
		WHERE id = $1
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, err
	}
	defer tx.Rollback()

	var loan domain.LoanRequest
	if err = tx.GetContext(ctx, &loan, lockQuery, loanID); err != nil {
		return nil, nil, err
	}
	if err = tx.SelectContext(ctx, &loan.Guarantors, guarantorQuery, loanID); err != nil {
		return nil, nil, err
	}

	var ledger []*domain.LoanRepayment
	if err = tx.SelectContext(ctx, &ledger, ledgerQuery, loanID); err != nil {
		return nil, nil, err
	}

	repayment, err := apply(&loan, ledger)
	if err != nil {
		return nil, nil, err
	}

	_, err = tx.ExecContext(ctx, repaymentQuery,
		repayment.ID,
		repayment.LoanRequestID,
		repayment.Amount,
		repayment.CapitalAmount,
		repayment.InterestAmount,
		repayment.PaymentType,
		repayment.Date,
		repayment.Notes,
	)
	if err != nil {
		return nil, nil, err
	}

	_, err = tx.ExecContext(ctx, loanQuery,
		loan.ID,
		loan.Status,
		loan.TotalRepaid,
		loan.RemainingBalance,
		loan.RemainingCapital,
		loan.RemainingInterest,
		loan.CapitalRepaid,
		loan.InterestRepaid,
		loan.MinimumMonthlyPayment,
		loan.IsFullyRepaid,
	)
	if err != nil {
		return nil, nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, nil, err
	}

	return repayment, &loan, nil
}

func (r *repaymentRepository) GetByLoanID(ctx context.Context, loanID int64) ([]*domain.LoanRepayment, error) {
	query := `
		SELECT id, loan_request_id, amount, capital_amount, interest_amount, payment_type, date, notes
		FROM loan_repayments
		WHERE loan_request_id = $1
		ORDER BY date, id
	`

	var repayments []*domain.LoanRepayment
	err := r.db.SelectContext(ctx, &repayments, query, loanID)
	if err != nil {
		return nil, err
	}

	return repayments, nil
}

func (r *repaymentRepository) List(ctx context.Context) ([]*domain.LoanRepayment, error) {
	query := `
		SELECT id, loan_request_id, amount, capital_amount, interest_amount, payment_type, date, notes
		FROM loan_repayments
		ORDER BY date DESC, id DESC
	`

	var repayments []*domain.LoanRepayment
	err := r.db.SelectContext(ctx, &repayments, query)
	if err != nil {
		return nil, err
	}

	return repayments, nil
}
