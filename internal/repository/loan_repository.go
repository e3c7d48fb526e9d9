package repository

import (
	"context"
	"time"

	"github.com/Akanael21/FriendlyBanks/internal/domain"

	"github.com/jmoiron/sqlx"
)

type loanRepository struct {
	db *sqlx.DB
}

func NewLoanRepository(db *sqlx.DB) LoanRepository {
	return &loanRepository{db: db}
}

const loanColumns = `
	id, member_id, amount, justification, interest_rate, status, date_requested,
	repayment_due_date, total_amount_with_interest, total_repaid, remaining_balance,
	remaining_capital, remaining_interest, capital_repaid, interest_repaid,
	minimum_monthly_payment, is_fully_repaid
`

func (r *loanRepository) Create(ctx context.Context, loan *domain.LoanRequest) error {
	query := `
		INSERT INTO loan_requests (
			member_id, amount, justification, interest_rate, status, date_requested,
			total_amount_with_interest, total_repaid, remaining_balance, remaining_capital,
			remaining_interest, capital_repaid, interest_repaid, minimum_monthly_payment,
			is_fully_repaid
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowxContext(ctx, query,
		loan.MemberID,
		loan.Amount,
		loan.Justification,
		loan.InterestRate,
		loan.Status,
		loan.DateRequested,
		loan.TotalAmountWithInterest,
		loan.TotalRepaid,
		loan.RemainingBalance,
		loan.RemainingCapital,
		loan.RemainingInterest,
		loan.CapitalRepaid,
		loan.InterestRepaid,
		loan.MinimumMonthlyPayment,
		loan.IsFullyRepaid,
	).Scan(&loan.ID)
	if err != nil {
		return err
	}

	guarantorQuery := `
		INSERT INTO loan_guarantors (loan_request_id, member_id)
		VALUES ($1, $2)
	`

	for _, guarantorID := range loan.Guarantors {
		if _, err = tx.ExecContext(ctx, guarantorQuery, loan.ID, guarantorID); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *loanRepository) GetByID(ctx context.Context, id int64) (*domain.LoanRequest, error) {
	query := `SELECT ` + loanColumns + ` FROM loan_requests WHERE id = $1`

	var loan domain.LoanRequest
	err := r.db.GetContext(ctx, &loan, query, id)
	if err != nil {
		return nil, err
	}

	if err = r.loadGuarantors(ctx, &loan); err != nil {
		return nil, err
	}

	return &loan, nil
}

func (r *loanRepository) List(ctx context.Context) ([]*domain.LoanRequest, error) {
	query := `SELECT ` + loanColumns + ` FROM loan_requests ORDER BY date_requested DESC, id DESC`

	var loans []*domain.LoanRequest
	err := r.db.SelectContext(ctx, &loans, query)
	if err != nil {
		return nil, err
	}

	for _, loan := range loans {
		if err = r.loadGuarantors(ctx, loan); err != nil {
			return nil, err
		}
	}

	return loans, nil
}

func (r *loanRepository) ListByStatus(ctx context.Context, status string) ([]*domain.LoanRequest, error) {
	query := `SELECT ` + loanColumns + ` FROM loan_requests WHERE status = $1 ORDER BY date_requested DESC, id DESC`

	var loans []*domain.LoanRequest
	err := r.db.SelectContext(ctx, &loans, query, status)
	if err != nil {
		return nil, err
	}

	for _, loan := range loans {
		if err = r.loadGuarantors(ctx, loan); err != nil {
			return nil, err
		}
	}

	return loans, nil
}

func (r *loanRepository) UpdateStatus(ctx context.Context, loan *domain.LoanRequest) error {
	query := `
		UPDATE loan_requests
		SET status = $2, repayment_due_date = $3, total_amount_with_interest = $4,
			total_repaid = $5, remaining_balance = $6, remaining_capital = $7,
			remaining_interest = $8, capital_repaid = $9, interest_repaid = $10,
			minimum_monthly_payment = $11, is_fully_repaid = $12
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		loan.ID,
		loan.Status,
		loan.DueDate,
		loan.TotalAmountWithInterest,
		loan.TotalRepaid,
		loan.RemainingBalance,
		loan.RemainingCapital,
		loan.RemainingInterest,
		loan.CapitalRepaid,
		loan.InterestRepaid,
		loan.MinimumMonthlyPayment,
		loan.IsFullyRepaid,
	)

	return err
}

func (r *loanRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM loan_requests WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *loanRepository) ListOverdue(ctx context.Context, now time.Time) ([]*domain.LoanRequest, error) {
	query := `SELECT ` + loanColumns + `
		FROM loan_requests
		WHERE status = 'approved' AND repayment_due_date < $1 AND remaining_balance > 0
		ORDER BY repayment_due_date
	`

	var loans []*domain.LoanRequest
	err := r.db.SelectContext(ctx, &loans, query, now)
	if err != nil {
		return nil, err
	}

	for _, loan := range loans {
		if err = r.loadGuarantors(ctx, loan); err != nil {
			return nil, err
		}
	}

	return loans, nil
}

func (r *loanRepository) loadGuarantors(ctx context.Context, loan *domain.LoanRequest) error {
	query := `
		SELECT member_id
		FROM loan_guarantors
		WHERE loan_request_id = $1
		ORDER BY member_id
	`

	return r.db.SelectContext(ctx, &loan.Guarantors, query, loan.ID)
}
