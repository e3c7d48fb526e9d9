package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/Akanael21/FriendlyBanks/internal/config"
	"github.com/Akanael21/FriendlyBanks/internal/domain"
	"github.com/Akanael21/FriendlyBanks/internal/engine"
	"github.com/Akanael21/FriendlyBanks/internal/repository"
	customError "github.com/Akanael21/FriendlyBanks/pkg/errors"
	"github.com/Akanael21/FriendlyBanks/pkg/utils"
)

// LoanService carries a loan request from creation through approval and
// repayment. The loan economics rules live in internal/engine; this service
// feeds them, persists their results and maintains the running totals that
// the engine's allocator only previews.
type LoanService struct {
	loanRepo      repository.LoanRepository
	repaymentRepo repository.RepaymentRepository
	memberRepo    repository.MemberRepository
	redis         *redis.Client
	config        *config.Config
}

func NewLoanService(
	loanRepo repository.LoanRepository,
	repaymentRepo repository.RepaymentRepository,
	memberRepo repository.MemberRepository,
	redisClient *redis.Client,
	cfg *config.Config,
) *LoanService {
	return &LoanService{
		loanRepo:      loanRepo,
		repaymentRepo: repaymentRepo,
		memberRepo:    memberRepo,
		redis:         redisClient,
		config:        cfg,
	}
}

// PreviewTerms returns the ceiling, rate and total to repay for a member and
// amount, without creating anything.
func (s *LoanService) PreviewTerms(ctx context.Context, memberID int64, amount decimal.Decimal) (*domain.LoanTerms, error) {
	member, err := s.getMember(ctx, memberID)
	if err != nil {
		return nil, err
	}

	rate := engine.InterestRate(amount)
	return &domain.LoanTerms{
		MaxAmount:    engine.MaxLoanAmount(member.BerryScore),
		InterestRate: rate,
		TotalToRepay: engine.TotalToRepay(amount, rate),
	}, nil
}

// CreateLoanRequest validates and creates a pending loan request. The interest
// rate is fixed here by the rate brackets; the running totals are seeded so the
// invariants hold from the start.
func (s *LoanService) CreateLoanRequest(ctx context.Context, request *domain.CreateLoanRequestRequest) (*domain.LoanRequest, error) {
	borrower, err := s.getMember(ctx, request.Member)
	if err != nil {
		return nil, err
	}

	ceiling := engine.MaxLoanAmount(borrower.BerryScore)
	if err = engine.ValidateLoanRequest(borrower.ID, request.Amount,
		request.Guarantors[0], request.Guarantors[1], ceiling); err != nil {
		return nil, customError.WrapRuleViolation(err)
	}

	for _, guarantorID := range request.Guarantors {
		if _, err = s.getMember(ctx, guarantorID); err != nil {
			return nil, err
		}
	}

	rate := engine.InterestRate(request.Amount)
	total := engine.TotalToRepay(request.Amount, rate)

	loan := &domain.LoanRequest{
		MemberID:      request.Member,
		Amount:        request.Amount,
		Justification: request.Justification,
		InterestRate:  rate,
		Status:        domain.LoanStatusPending,
		DateRequested: time.Now(),
		Guarantors:    request.Guarantors,

		TotalAmountWithInterest: total,
		TotalRepaid:             decimal.Zero,
		RemainingBalance:        total,
		RemainingCapital:        request.Amount,
		RemainingInterest:       total.Sub(request.Amount),
		CapitalRepaid:           decimal.Zero,
		InterestRepaid:          decimal.Zero,
		MinimumMonthlyPayment:   utils.MinimumPaymentAt(request.Amount, s.config.Business.MinimumPaymentPercent),
	}

	if err = s.loanRepo.Create(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return loan, nil
}

// UpdateStatus transitions a pending loan request to approved or rejected.
// Approval stamps the repayment due date from the configured term.
func (s *LoanService) UpdateStatus(ctx context.Context, loanID int64, status string) (*domain.LoanRequest, error) {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	if loan.Status != domain.LoanStatusPending {
		return nil, customError.WrapLoanAlreadyDecided(loanID, loan.Status)
	}

	switch status {
	case domain.LoanStatusApproved:
		dueDate := time.Now().AddDate(0, s.config.Business.LoanTermMonths, 0)
		loan.DueDate = &dueDate
	case domain.LoanStatusRejected:
		// Nothing extra; the seeded totals stay for the record.
	default:
		return nil, customError.NewBusinessError(
			customError.ErrCodeInvalidStatusChange,
			fmt.Sprintf("cannot transition a pending loan to %q", status),
			customError.ErrInvalidStatusChange,
		)
	}

	loan.Status = status
	if err = s.loanRepo.UpdateStatus(ctx, loan); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx, loanID)

	return loan, nil
}

// MakeRepayment records a payment against an approved loan. Status checks,
// allocation and the totals recompute all run against the loan row held under
// a lock by the repository, so two concurrent payments cannot both validate
// against the same balance; the second sees the first's committed ledger. The
// stored state is always derivable from the ledger alone and matches the
// allocator's preview.
func (s *LoanService) MakeRepayment(ctx context.Context, request *domain.CreateRepaymentRequest) (*domain.CreateRepaymentResponse, error) {
	repayment, loan, err := s.repaymentRepo.Record(ctx, request.LoanRequest,
		func(loan *domain.LoanRequest, ledger []*domain.LoanRepayment) (*domain.LoanRepayment, error) {
			if loan.Status == domain.LoanStatusRepaid || loan.IsFullyRepaid {
				return nil, customError.WrapLoanFullyRepaid(loan.ID)
			}
			if loan.Status != domain.LoanStatusApproved {
				return nil, customError.WrapLoanNotApproved(loan.ID, loan.Status)
			}
			if !loan.RemainingBalance.IsPositive() {
				return nil, customError.WrapLoanFullyRepaid(loan.ID)
			}

			allocation, err := engine.Allocate(engine.LoanBalances{
				RemainingBalance:      loan.RemainingBalance,
				RemainingInterest:     loan.RemainingInterest,
				RemainingCapital:      loan.RemainingCapital,
				MinimumMonthlyPayment: loan.MinimumMonthlyPayment,
			}, request.Amount, engine.PaymentType(request.PaymentType))
			if err != nil {
				return nil, customError.WrapRuleViolation(err)
			}

			repayment := &domain.LoanRepayment{
				ID:             uuid.New(),
				LoanRequestID:  loan.ID,
				Amount:         request.Amount,
				CapitalAmount:  allocation.CapitalAmount,
				InterestAmount: allocation.InterestAmount,
				PaymentType:    request.PaymentType,
				Date:           time.Now(),
				Notes:          request.Notes,
			}

			s.recomputeTotals(loan, append(ledger, repayment))
			return repayment, nil
		})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(request.LoanRequest)
		}
		var businessErr *customError.BusinessError
		if errors.As(err, &businessErr) {
			return nil, businessErr
		}
		return nil, customError.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx, loan.ID)

	return &domain.CreateRepaymentResponse{Repayment: repayment, Loan: loan}, nil
}

// recomputeTotals derives every running total from the repayment ledger. The
// ledger is the source of truth; the loan row is a materialization of it.
func (s *LoanService) recomputeTotals(loan *domain.LoanRequest, repayments []*domain.LoanRepayment) {
	totalRepaid := decimal.Zero
	capitalRepaid := decimal.Zero
	interestRepaid := decimal.Zero

	for _, repayment := range repayments {
		totalRepaid = totalRepaid.Add(repayment.Amount)
		capitalRepaid = capitalRepaid.Add(repayment.CapitalAmount)
		interestRepaid = interestRepaid.Add(repayment.InterestAmount)
	}

	totalInterest := loan.TotalAmountWithInterest.Sub(loan.Amount)

	loan.TotalRepaid = totalRepaid
	loan.CapitalRepaid = capitalRepaid
	loan.InterestRepaid = interestRepaid
	loan.RemainingBalance = loan.TotalAmountWithInterest.Sub(totalRepaid)
	loan.RemainingCapital = loan.Amount.Sub(capitalRepaid)
	loan.RemainingInterest = totalInterest.Sub(interestRepaid)
	loan.MinimumMonthlyPayment = utils.MinimumPaymentAt(loan.RemainingCapital, s.config.Business.MinimumPaymentPercent)
	loan.IsFullyRepaid = loan.RemainingBalance.IsZero()

	if loan.IsFullyRepaid {
		loan.Status = domain.LoanStatusRepaid
	}
}

// GetLoan returns a loan request with its guarantors and running totals.
func (s *LoanService) GetLoan(ctx context.Context, loanID int64) (*domain.LoanRequest, error) {
	return s.getLoan(ctx, loanID)
}

// ListLoans returns all loan requests.
func (s *LoanService) ListLoans(ctx context.Context) ([]*domain.LoanRequest, error) {
	loans, err := s.loanRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return loans, nil
}

// ListRepayments returns repayments, for one loan or all of them.
func (s *LoanService) ListRepayments(ctx context.Context, loanID int64) ([]*domain.LoanRepayment, error) {
	var (
		repayments []*domain.LoanRepayment
		err        error
	)
	if loanID > 0 {
		repayments, err = s.repaymentRepo.GetByLoanID(ctx, loanID)
	} else {
		repayments, err = s.repaymentRepo.List(ctx)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return repayments, nil
}

// DeleteLoan removes a loan request that has not been approved.
func (s *LoanService) DeleteLoan(ctx context.Context, loanID int64) error {
	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return err
	}

	if loan.Status == domain.LoanStatusApproved {
		return customError.WrapLoanAlreadyDecided(loanID, loan.Status)
	}

	if err = s.loanRepo.Delete(ctx, loanID); err != nil {
		return customError.WrapDatabaseError(err)
	}

	s.invalidateSummary(ctx, loanID)

	return nil
}

// GetSummary returns the cached repayment summary for a loan, rebuilding it
// from the loan row on a cache miss.
func (s *LoanService) GetSummary(ctx context.Context, loanID int64) (*domain.LoanSummary, error) {
	cacheKey := summaryCacheKey(loanID)

	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			var summary domain.LoanSummary
			if err = json.Unmarshal([]byte(cached), &summary); err == nil {
				return &summary, nil
			}
		}
	}

	loan, err := s.getLoan(ctx, loanID)
	if err != nil {
		return nil, err
	}

	summary := &domain.LoanSummary{
		LoanID:           loan.ID,
		Status:           loan.Status,
		RemainingBalance: loan.RemainingBalance,
		TotalRepaid:      loan.TotalRepaid,
		IsFullyRepaid:    loan.IsFullyRepaid,
	}

	if s.redis != nil {
		if encoded, err := json.Marshal(summary); err == nil {
			s.redis.Set(ctx, cacheKey, encoded, s.config.CacheTTL())
		}
	}

	return summary, nil
}

func (s *LoanService) invalidateSummary(ctx context.Context, loanID int64) {
	if s.redis != nil {
		s.redis.Del(ctx, summaryCacheKey(loanID))
	}
}

func summaryCacheKey(loanID int64) string {
	return fmt.Sprintf("loan:summary:%d", loanID)
}

func (s *LoanService) getMember(ctx context.Context, memberID int64) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapMemberNotFound(memberID)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return member, nil
}

func (s *LoanService) getLoan(ctx context.Context, loanID int64) (*domain.LoanRequest, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapLoanNotFound(loanID)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return loan, nil
}
