package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Akanael21/FriendlyBanks/internal/domain"
	"github.com/Akanael21/FriendlyBanks/internal/repository"
	customError "github.com/Akanael21/FriendlyBanks/pkg/errors"
)

// GovernanceService handles voting on sanctions and general proposals. The
// tallies it reports are server truth; each member votes at most once per
// proposal.
type GovernanceService struct {
	governanceRepo repository.GovernanceRepository
}

func NewGovernanceService(governanceRepo repository.GovernanceRepository) *GovernanceService {
	return &GovernanceService{governanceRepo: governanceRepo}
}

// ListSanctions returns all sanction proposals.
func (s *GovernanceService) ListSanctions(ctx context.Context) ([]*domain.Sanction, error) {
	sanctions, err := s.governanceRepo.ListSanctions(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return sanctions, nil
}

// VoteOnSanction records a member's choice on an open sanction.
func (s *GovernanceService) VoteOnSanction(ctx context.Context, sanctionID, voterID int64, choice string) (*domain.Tally, error) {
	sanction, err := s.governanceRepo.GetSanction(ctx, sanctionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.NewBusinessError(
				customError.ErrCodeProposalNotFound,
				"sanction not found",
				customError.ErrProposalNotFound,
			)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if sanction.Status != domain.SanctionStatusVoting {
		return nil, customError.WrapProposalClosed(sanctionID)
	}

	voted, err := s.governanceRepo.HasVotedOnSanction(ctx, sanctionID, voterID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if voted {
		return nil, customError.WrapAlreadyVoted(sanctionID, voterID)
	}

	vote := &domain.SanctionVote{
		SanctionID: sanctionID,
		VoterID:    voterID,
		Choice:     choice,
		Date:       time.Now(),
	}
	if err = s.governanceRepo.CreateSanctionVote(ctx, vote); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return s.SanctionTally(ctx, sanctionID, voterID)
}

// SanctionTally returns the current count on a sanction and whether the given
// voter has already cast their choice.
func (s *GovernanceService) SanctionTally(ctx context.Context, sanctionID, voterID int64) (*domain.Tally, error) {
	votesFor, votesAgainst, err := s.governanceRepo.TallySanction(ctx, sanctionID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	voted, err := s.governanceRepo.HasVotedOnSanction(ctx, sanctionID, voterID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.Tally{VotesFor: votesFor, VotesAgainst: votesAgainst, HasVoted: voted}, nil
}

// ListVotes returns all governance proposals.
func (s *GovernanceService) ListVotes(ctx context.Context) ([]*domain.Vote, error) {
	votes, err := s.governanceRepo.ListVotes(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return votes, nil
}

// VoteOnProposal records a member's choice on an open governance proposal.
func (s *GovernanceService) VoteOnProposal(ctx context.Context, voteID, voterID int64, choice string) (*domain.Tally, error) {
	proposal, err := s.governanceRepo.GetVote(ctx, voteID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.NewBusinessError(
				customError.ErrCodeProposalNotFound,
				"proposal not found",
				customError.ErrProposalNotFound,
			)
		}
		return nil, customError.WrapDatabaseError(err)
	}

	if proposal.Status != domain.VoteStatusOpen {
		return nil, customError.WrapProposalClosed(voteID)
	}

	voted, err := s.governanceRepo.HasVotedOnProposal(ctx, voteID, voterID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if voted {
		return nil, customError.WrapAlreadyVoted(voteID, voterID)
	}

	record := &domain.VoteRecord{
		VoteID:  voteID,
		VoterID: voterID,
		Choice:  choice,
		Date:    time.Now(),
	}
	if err = s.governanceRepo.CreateVoteRecord(ctx, record); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return s.VoteTally(ctx, voteID, voterID)
}

// VoteTally returns the current count on a proposal and whether the given
// voter has already cast their choice.
func (s *GovernanceService) VoteTally(ctx context.Context, voteID, voterID int64) (*domain.Tally, error) {
	votesFor, votesAgainst, err := s.governanceRepo.TallyVote(ctx, voteID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	voted, err := s.governanceRepo.HasVotedOnProposal(ctx, voteID, voterID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return &domain.Tally{VotesFor: votesFor, VotesAgainst: votesAgainst, HasVoted: voted}, nil
}

// CloseExpiredVotes settles open proposals whose end date has passed: each
// one's tally is read and the outcome for its required majority applied.
// Returns the number of proposals closed.
func (s *GovernanceService) CloseExpiredVotes(ctx context.Context, now time.Time) (int, error) {
	votes, err := s.governanceRepo.ListExpiredOpenVotes(ctx, now)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	closed := 0
	for _, vote := range votes {
		votesFor, votesAgainst, err := s.governanceRepo.TallyVote(ctx, vote.ID)
		if err != nil {
			return closed, customError.WrapDatabaseError(err)
		}

		outcome := DeriveOutcome(vote.RequiredMajority, votesFor, votesAgainst)
		if err = s.governanceRepo.UpdateVoteStatus(ctx, vote.ID, outcome); err != nil {
			return closed, customError.WrapDatabaseError(err)
		}
		vote.Status = outcome
		closed++
	}

	return closed, nil
}

// DeriveOutcome maps a finished tally to a proposal status under the required
// majority: Simple needs more for than against, Qualifiée needs two thirds of
// the cast votes, Unanimité needs every cast vote in favour (and at least one).
func DeriveOutcome(requiredMajority string, votesFor, votesAgainst int) string {
	total := votesFor + votesAgainst

	switch requiredMajority {
	case domain.MajorityQualified:
		if total > 0 && votesFor*3 >= total*2 {
			return domain.VoteStatusApproved
		}
	case domain.MajorityUnanimous:
		if votesFor > 0 && votesAgainst == 0 {
			return domain.VoteStatusApproved
		}
	default: // Simple
		if votesFor > votesAgainst {
			return domain.VoteStatusApproved
		}
	}

	return domain.VoteStatusRejected
}
