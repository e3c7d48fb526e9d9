package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Akanael21/FriendlyBanks/internal/domain"
	customError "github.com/Akanael21/FriendlyBanks/pkg/errors"
	"github.com/Akanael21/FriendlyBanks/tests/mocks"
)

func openSanction(id int64) *domain.Sanction {
	return &domain.Sanction{
		ID:       id,
		MemberID: 3,
		Type:     domain.SanctionTypeWarning,
		Status:   domain.SanctionStatusVoting,
	}
}

func TestVoteOnSanction_Success(t *testing.T) {
	mockRepo := &mocks.MockGovernanceRepository{}
	svc := NewGovernanceService(mockRepo)

	mockRepo.On("GetSanction", mock.Anything, int64(1)).Return(openSanction(1), nil)
	mockRepo.On("HasVotedOnSanction", mock.Anything, int64(1), int64(7)).Return(false, nil).Once()
	mockRepo.On("CreateSanctionVote", mock.Anything, mock.MatchedBy(func(v *domain.SanctionVote) bool {
		return v.SanctionID == 1 && v.VoterID == 7 && v.Choice == domain.VoteChoiceFor
	})).Return(nil)
	mockRepo.On("TallySanction", mock.Anything, int64(1)).Return(3, 1, nil)
	mockRepo.On("HasVotedOnSanction", mock.Anything, int64(1), int64(7)).Return(true, nil)

	tally, err := svc.VoteOnSanction(context.Background(), 1, 7, domain.VoteChoiceFor)

	require.NoError(t, err)
	assert.Equal(t, 3, tally.VotesFor)
	assert.Equal(t, 1, tally.VotesAgainst)
	assert.True(t, tally.HasVoted)
	mockRepo.AssertExpectations(t)
}

func TestVoteOnSanction_AlreadyVoted(t *testing.T) {
	mockRepo := &mocks.MockGovernanceRepository{}
	svc := NewGovernanceService(mockRepo)

	mockRepo.On("GetSanction", mock.Anything, int64(1)).Return(openSanction(1), nil)
	mockRepo.On("HasVotedOnSanction", mock.Anything, int64(1), int64(7)).Return(true, nil)

	_, err := svc.VoteOnSanction(context.Background(), 1, 7, domain.VoteChoiceAgainst)

	require.Error(t, err)
	assert.ErrorIs(t, err, customError.ErrAlreadyVoted)
	mockRepo.AssertNotCalled(t, "CreateSanctionVote", mock.Anything, mock.Anything)
}

func TestVoteOnSanction_Closed(t *testing.T) {
	mockRepo := &mocks.MockGovernanceRepository{}
	svc := NewGovernanceService(mockRepo)

	sanction := openSanction(1)
	sanction.Status = domain.SanctionStatusApplied
	mockRepo.On("GetSanction", mock.Anything, int64(1)).Return(sanction, nil)

	_, err := svc.VoteOnSanction(context.Background(), 1, 7, domain.VoteChoiceFor)

	require.Error(t, err)
	assert.ErrorIs(t, err, customError.ErrProposalClosed)
}

func TestVoteOnProposal_Success(t *testing.T) {
	mockRepo := &mocks.MockGovernanceRepository{}
	svc := NewGovernanceService(mockRepo)

	proposal := &domain.Vote{
		ID:               2,
		Title:            "Relever la contribution minimale",
		Status:           domain.VoteStatusOpen,
		RequiredMajority: domain.MajoritySimple,
	}

	mockRepo.On("GetVote", mock.Anything, int64(2)).Return(proposal, nil)
	mockRepo.On("HasVotedOnProposal", mock.Anything, int64(2), int64(7)).Return(false, nil).Once()
	mockRepo.On("CreateVoteRecord", mock.Anything, mock.Anything).Return(nil)
	mockRepo.On("TallyVote", mock.Anything, int64(2)).Return(5, 2, nil)
	mockRepo.On("HasVotedOnProposal", mock.Anything, int64(2), int64(7)).Return(true, nil)

	tally, err := svc.VoteOnProposal(context.Background(), 2, 7, domain.VoteChoiceFor)

	require.NoError(t, err)
	assert.Equal(t, 5, tally.VotesFor)
	assert.Equal(t, 2, tally.VotesAgainst)
	mockRepo.AssertExpectations(t)
}

func TestCloseExpiredVotes(t *testing.T) {
	mockRepo := &mocks.MockGovernanceRepository{}
	svc := NewGovernanceService(mockRepo)

	now := time.Now()
	expired := []*domain.Vote{
		{ID: 1, Status: domain.VoteStatusOpen, RequiredMajority: domain.MajoritySimple, EndDate: now.Add(-time.Hour)},
		{ID: 2, Status: domain.VoteStatusOpen, RequiredMajority: domain.MajorityQualified, EndDate: now.Add(-2 * time.Hour)},
	}

	mockRepo.On("ListExpiredOpenVotes", mock.Anything, now).Return(expired, nil)
	mockRepo.On("TallyVote", mock.Anything, int64(1)).Return(5, 4, nil)
	mockRepo.On("TallyVote", mock.Anything, int64(2)).Return(5, 4, nil)
	// 5/9 carries a simple majority but misses two thirds.
	mockRepo.On("UpdateVoteStatus", mock.Anything, int64(1), domain.VoteStatusApproved).Return(nil)
	mockRepo.On("UpdateVoteStatus", mock.Anything, int64(2), domain.VoteStatusRejected).Return(nil)

	closed, err := svc.CloseExpiredVotes(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 2, closed)
	assert.Equal(t, domain.VoteStatusApproved, expired[0].Status)
	assert.Equal(t, domain.VoteStatusRejected, expired[1].Status)
	mockRepo.AssertExpectations(t)
}

func TestCloseExpiredVotes_NothingToClose(t *testing.T) {
	mockRepo := &mocks.MockGovernanceRepository{}
	svc := NewGovernanceService(mockRepo)

	now := time.Now()
	mockRepo.On("ListExpiredOpenVotes", mock.Anything, now).Return([]*domain.Vote{}, nil)

	closed, err := svc.CloseExpiredVotes(context.Background(), now)

	require.NoError(t, err)
	assert.Equal(t, 0, closed)
	mockRepo.AssertNotCalled(t, "UpdateVoteStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeriveOutcome(t *testing.T) {
	tests := []struct {
		name         string
		majority     string
		votesFor     int
		votesAgainst int
		expected     string
	}{
		{name: "simple majority passes", majority: domain.MajoritySimple, votesFor: 5, votesAgainst: 4, expected: domain.VoteStatusApproved},
		{name: "simple majority tie fails", majority: domain.MajoritySimple, votesFor: 4, votesAgainst: 4, expected: domain.VoteStatusRejected},
		{name: "qualified two thirds passes", majority: domain.MajorityQualified, votesFor: 6, votesAgainst: 3, expected: domain.VoteStatusApproved},
		{name: "qualified below two thirds fails", majority: domain.MajorityQualified, votesFor: 5, votesAgainst: 4, expected: domain.VoteStatusRejected},
		{name: "qualified with no votes fails", majority: domain.MajorityQualified, votesFor: 0, votesAgainst: 0, expected: domain.VoteStatusRejected},
		{name: "unanimous passes", majority: domain.MajorityUnanimous, votesFor: 3, votesAgainst: 0, expected: domain.VoteStatusApproved},
		{name: "unanimous with dissent fails", majority: domain.MajorityUnanimous, votesFor: 8, votesAgainst: 1, expected: domain.VoteStatusRejected},
		{name: "unanimous with no votes fails", majority: domain.MajorityUnanimous, votesFor: 0, votesAgainst: 0, expected: domain.VoteStatusRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveOutcome(tt.majority, tt.votesFor, tt.votesAgainst))
		})
	}
}
