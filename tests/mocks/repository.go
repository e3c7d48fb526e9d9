package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Akanael21/FriendlyBanks/internal/domain"
	"github.com/Akanael21/FriendlyBanks/internal/repository"
)

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) List(ctx context.Context) ([]*domain.Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Member), args.Error(1)
}

func (m *MockMemberRepository) Update(ctx context.Context, member *domain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMemberRepository) SetBerryScore(ctx context.Context, id int64, score int) error {
	args := m.Called(ctx, id, score)
	return args.Error(0)
}

type MockLoanRepository struct {
	mock.Mock
}

func (m *MockLoanRepository) Create(ctx context.Context, loan *domain.LoanRequest) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) GetByID(ctx context.Context, id int64) (*domain.LoanRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LoanRequest), args.Error(1)
}

func (m *MockLoanRepository) List(ctx context.Context) ([]*domain.LoanRequest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanRequest), args.Error(1)
}

func (m *MockLoanRepository) ListByStatus(ctx context.Context, status string) ([]*domain.LoanRequest, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanRequest), args.Error(1)
}

func (m *MockLoanRepository) UpdateStatus(ctx context.Context, loan *domain.LoanRequest) error {
	args := m.Called(ctx, loan)
	return args.Error(0)
}

func (m *MockLoanRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLoanRepository) ListOverdue(ctx context.Context, now time.Time) ([]*domain.LoanRequest, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanRequest), args.Error(1)
}

type MockRepaymentRepository struct {
	mock.Mock
}

// Record runs apply against the loan and ledger configured via Return,
// standing in for the row-locked read the real repository performs.
func (m *MockRepaymentRepository) Record(ctx context.Context, loanID int64, apply repository.RepaymentApply) (*domain.LoanRepayment, *domain.LoanRequest, error) {
	args := m.Called(ctx, loanID)
	if args.Error(2) != nil {
		return nil, nil, args.Error(2)
	}

	loan := args.Get(0).(*domain.LoanRequest)
	ledger := args.Get(1).([]*domain.LoanRepayment)

	repayment, err := apply(loan, ledger)
	if err != nil {
		return nil, nil, err
	}
	return repayment, loan, nil
}

func (m *MockRepaymentRepository) GetByLoanID(ctx context.Context, loanID int64) ([]*domain.LoanRepayment, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanRepayment), args.Error(1)
}

func (m *MockRepaymentRepository) List(ctx context.Context) ([]*domain.LoanRepayment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LoanRepayment), args.Error(1)
}

type MockContributionRepository struct {
	mock.Mock
}

func (m *MockContributionRepository) Record(ctx context.Context, contribution *domain.Contribution, newBerryScore int) error {
	args := m.Called(ctx, contribution, newBerryScore)
	return args.Error(0)
}

func (m *MockContributionRepository) GetByID(ctx context.Context, id int64) (*domain.Contribution, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contribution), args.Error(1)
}

func (m *MockContributionRepository) List(ctx context.Context) ([]*domain.Contribution, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Contribution), args.Error(1)
}

func (m *MockContributionRepository) ListByMember(ctx context.Context, memberID int64) ([]*domain.Contribution, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Contribution), args.Error(1)
}

func (m *MockContributionRepository) CountByMember(ctx context.Context, memberID int64) (int, error) {
	args := m.Called(ctx, memberID)
	return args.Int(0), args.Error(1)
}

func (m *MockContributionRepository) Update(ctx context.Context, contribution *domain.Contribution, newBerryScore int) error {
	args := m.Called(ctx, contribution, newBerryScore)
	return args.Error(0)
}

func (m *MockContributionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockGovernanceRepository struct {
	mock.Mock
}

func (m *MockGovernanceRepository) GetSanction(ctx context.Context, id int64) (*domain.Sanction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Sanction), args.Error(1)
}

func (m *MockGovernanceRepository) ListSanctions(ctx context.Context) ([]*domain.Sanction, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Sanction), args.Error(1)
}

func (m *MockGovernanceRepository) HasVotedOnSanction(ctx context.Context, sanctionID, voterID int64) (bool, error) {
	args := m.Called(ctx, sanctionID, voterID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGovernanceRepository) CreateSanctionVote(ctx context.Context, vote *domain.SanctionVote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *MockGovernanceRepository) TallySanction(ctx context.Context, sanctionID int64) (int, int, error) {
	args := m.Called(ctx, sanctionID)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *MockGovernanceRepository) GetVote(ctx context.Context, id int64) (*domain.Vote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vote), args.Error(1)
}

func (m *MockGovernanceRepository) ListVotes(ctx context.Context) ([]*domain.Vote, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vote), args.Error(1)
}

func (m *MockGovernanceRepository) HasVotedOnProposal(ctx context.Context, voteID, voterID int64) (bool, error) {
	args := m.Called(ctx, voteID, voterID)
	return args.Bool(0), args.Error(1)
}

func (m *MockGovernanceRepository) CreateVoteRecord(ctx context.Context, record *domain.VoteRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockGovernanceRepository) ListExpiredOpenVotes(ctx context.Context, now time.Time) ([]*domain.Vote, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vote), args.Error(1)
}

func (m *MockGovernanceRepository) UpdateVoteStatus(ctx context.Context, voteID int64, status string) error {
	args := m.Called(ctx, voteID, status)
	return args.Error(0)
}

func (m *MockGovernanceRepository) TallyVote(ctx context.Context, voteID int64) (int, int, error) {
	args := m.Called(ctx, voteID)
	return args.Int(0), args.Int(1), args.Error(2)
}
