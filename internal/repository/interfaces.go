package repository

import (
	"context"
	"time"

	"github.com/Akanael21/FriendlyBanks/internal/domain"
)

// MemberRepository defines the interface for member data operations
type MemberRepository interface {
	// Create creates a new member
	Create(ctx context.Context, member *domain.Member) error

	// GetByID retrieves a member by id
	GetByID(ctx context.Context, id int64) (*domain.Member, error)

	// List retrieves all members
	List(ctx context.Context) ([]*domain.Member, error)

	// Update updates a member's editable fields
	Update(ctx context.Context, member *domain.Member) error

	// Delete removes a member
	Delete(ctx context.Context, id int64) error

	// SetBerryScore overwrites a member's Berry score
	SetBerryScore(ctx context.Context, id int64, score int) error
}

// LoanRepository defines the interface for loan request data operations
type LoanRepository interface {
	// Create creates a loan request with its guarantor links
	Create(ctx context.Context, loan *domain.LoanRequest) error

	// GetByID retrieves a loan request with its guarantors
	GetByID(ctx context.Context, id int64) (*domain.LoanRequest, error)

	// List retrieves all loan requests
	List(ctx context.Context) ([]*domain.LoanRequest, error)

	// ListByStatus retrieves loan requests in a given status
	ListByStatus(ctx context.Context, status string) ([]*domain.LoanRequest, error)

	// UpdateStatus transitions a loan request and stores the totals seeded at
	// approval time
	UpdateStatus(ctx context.Context, loan *domain.LoanRequest) error

	// Delete removes a loan request
	Delete(ctx context.Context, id int64) error

	// ListOverdue retrieves approved loans past their due date with an
	// outstanding balance
	ListOverdue(ctx context.Context, now time.Time) ([]*domain.LoanRequest, error)
}

// RepaymentApply decides, against the locked loan row and its ledger, which
// repayment to append. Mutations it makes to the loan are written back in the
// same transaction.
type RepaymentApply func(loan *domain.LoanRequest, ledger []*domain.LoanRepayment) (*domain.LoanRepayment, error)

// RepaymentRepository defines the interface for loan repayment data operations
type RepaymentRepository interface {
	// Record locks the loan row, loads its ledger, runs apply, and persists
	// the returned repayment together with the loan's updated totals, all in
	// one transaction. Concurrent repayments against the same loan serialize
	// on the row lock, so apply always sees the latest committed state.
	Record(ctx context.Context, loanID int64, apply RepaymentApply) (*domain.LoanRepayment, *domain.LoanRequest, error)

	// GetByLoanID retrieves all repayments for a loan, oldest first
	GetByLoanID(ctx context.Context, loanID int64) ([]*domain.LoanRepayment, error)

	// List retrieves all repayments
	List(ctx context.Context) ([]*domain.LoanRepayment, error)
}

// ContributionRepository defines the interface for contribution data operations
type ContributionRepository interface {
	// Record inserts a contribution and the member's adjusted Berry score in
	// one transaction
	Record(ctx context.Context, contribution *domain.Contribution, newBerryScore int) error

	// GetByID retrieves a contribution
	GetByID(ctx context.Context, id int64) (*domain.Contribution, error)

	// List retrieves all contributions
	List(ctx context.Context) ([]*domain.Contribution, error)

	// ListByMember retrieves a member's contributions, oldest first
	ListByMember(ctx context.Context, memberID int64) ([]*domain.Contribution, error)

	// CountByMember counts a member's contributions
	CountByMember(ctx context.Context, memberID int64) (int, error)

	// Update rewrites a contribution and the member's adjusted Berry score in
	// one transaction
	Update(ctx context.Context, contribution *domain.Contribution, newBerryScore int) error

	// Delete removes a contribution
	Delete(ctx context.Context, id int64) error
}

// GovernanceRepository defines the interface for sanction and vote data operations
type GovernanceRepository interface {
	// GetSanction retrieves a sanction proposal
	GetSanction(ctx context.Context, id int64) (*domain.Sanction, error)

	// ListSanctions retrieves all sanction proposals
	ListSanctions(ctx context.Context) ([]*domain.Sanction, error)

	// HasVotedOnSanction reports whether a member already voted on a sanction
	HasVotedOnSanction(ctx context.Context, sanctionID, voterID int64) (bool, error)

	// CreateSanctionVote records a member's sanction vote
	CreateSanctionVote(ctx context.Context, vote *domain.SanctionVote) error

	// TallySanction counts for/against votes on a sanction
	TallySanction(ctx context.Context, sanctionID int64) (votesFor, votesAgainst int, err error)

	// GetVote retrieves a governance proposal
	GetVote(ctx context.Context, id int64) (*domain.Vote, error)

	// ListVotes retrieves all governance proposals
	ListVotes(ctx context.Context) ([]*domain.Vote, error)

	// HasVotedOnProposal reports whether a member already voted on a proposal
	HasVotedOnProposal(ctx context.Context, voteID, voterID int64) (bool, error)

	// CreateVoteRecord records a member's proposal vote
	CreateVoteRecord(ctx context.Context, record *domain.VoteRecord) error

	// TallyVote counts for/against votes on a proposal
	TallyVote(ctx context.Context, voteID int64) (votesFor, votesAgainst int, err error)

	// ListExpiredOpenVotes retrieves open proposals whose end date has passed
	ListExpiredOpenVotes(ctx context.Context, now time.Time) ([]*domain.Vote, error)

	// UpdateVoteStatus transitions a proposal to its settled status
	UpdateVoteStatus(ctx context.Context, voteID int64, status string) error
}
