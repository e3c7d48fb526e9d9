package service

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Akanael21/FriendlyBanks/internal/domain"
	"github.com/Akanael21/FriendlyBanks/internal/engine"
	"github.com/Akanael21/FriendlyBanks/pkg/utils"
	"github.com/Akanael21/FriendlyBanks/tests/mocks"
)

func mustDate(t *testing.T, value string) time.Time {
	t.Helper()
	date, err := utils.ParseDate(value)
	require.NoError(t, err)
	return date
}

func newContributionService(contributionRepo *mocks.MockContributionRepository, memberRepo *mocks.MockMemberRepository) *ContributionService {
	return &ContributionService{
		contributionRepo: contributionRepo,
		memberRepo:       memberRepo,
		policy:           engine.DefaultContributionPolicy(),
	}
}

func TestCreateContribution_OnTime(t *testing.T) {
	mockContributionRepo := &mocks.MockContributionRepository{}
	mockMemberRepo := &mocks.MockMemberRepository{}
	svc := newContributionService(mockContributionRepo, mockMemberRepo)

	mockMemberRepo.On("GetByID", mock.Anything, int64(3)).Return(member(3, 20), nil)
	mockContributionRepo.On("CountByMember", mock.Anything, int64(3)).Return(2, nil)
	mockContributionRepo.On("Record", mock.Anything, mock.MatchedBy(func(c *domain.Contribution) bool {
		return !c.IsLate && c.PointsBerry == 5
	}), 25).Return(nil)

	contribution, err := svc.Create(context.Background(), &domain.CreateContributionRequest{
		Member: 3,
		Amount: decimal.NewFromInt(4000),
		Date:   "2024-03-25",
	})

	require.NoError(t, err)
	assert.False(t, contribution.IsLate)
	assert.Equal(t, 5, contribution.PointsBerry)
	mockContributionRepo.AssertExpectations(t)
}

// The on-time award does not apply to a member's very first contribution.
func TestCreateContribution_FirstContribution(t *testing.T) {
	mockContributionRepo := &mocks.MockContributionRepository{}
	mockMemberRepo := &mocks.MockMemberRepository{}
	svc := newContributionService(mockContributionRepo, mockMemberRepo)

	mockMemberRepo.On("GetByID", mock.Anything, int64(3)).Return(member(3, 20), nil)
	mockContributionRepo.On("CountByMember", mock.Anything, int64(3)).Return(0, nil)
	mockContributionRepo.On("Record", mock.Anything, mock.MatchedBy(func(c *domain.Contribution) bool {
		return c.PointsBerry == 0
	}), 20).Return(nil)

	contribution, err := svc.Create(context.Background(), &domain.CreateContributionRequest{
		Member: 3,
		Amount: decimal.NewFromInt(4000),
		Date:   "2024-03-20",
	})

	require.NoError(t, err)
	assert.Equal(t, 0, contribution.PointsBerry)
	mockContributionRepo.AssertExpectations(t)
}

func TestCreateContribution_LateWithBonus(t *testing.T) {
	mockContributionRepo := &mocks.MockContributionRepository{}
	mockMemberRepo := &mocks.MockMemberRepository{}
	svc := newContributionService(mockContributionRepo, mockMemberRepo)

	mockMemberRepo.On("GetByID", mock.Anything, int64(3)).Return(member(3, 40), nil)
	mockContributionRepo.On("CountByMember", mock.Anything, int64(3)).Return(5, nil)
	// -15 late, +5 bonus: delta -10, score 40 -> 30.
	mockContributionRepo.On("Record", mock.Anything, mock.MatchedBy(func(c *domain.Contribution) bool {
		return c.IsLate && c.PointsBerry == -10
	}), 30).Return(nil)

	contribution, err := svc.Create(context.Background(), &domain.CreateContributionRequest{
		Member: 3,
		Amount: decimal.NewFromInt(7000),
		Date:   "2024-03-27",
	})

	require.NoError(t, err)
	assert.True(t, contribution.IsLate)
	assert.Equal(t, -10, contribution.PointsBerry)
	mockContributionRepo.AssertExpectations(t)
}

func TestCreateContribution_RejectsBadDate(t *testing.T) {
	mockMemberRepo := &mocks.MockMemberRepository{}
	svc := newContributionService(&mocks.MockContributionRepository{}, mockMemberRepo)

	mockMemberRepo.On("GetByID", mock.Anything, int64(3)).Return(member(3, 20), nil)

	_, err := svc.Create(context.Background(), &domain.CreateContributionRequest{
		Member: 3,
		Amount: decimal.NewFromInt(4000),
		Date:   "27/03/2024",
	})

	assert.Error(t, err)
}

func TestUpdateContribution_ReversesOldPoints(t *testing.T) {
	mockContributionRepo := &mocks.MockContributionRepository{}
	mockMemberRepo := &mocks.MockMemberRepository{}
	svc := newContributionService(mockContributionRepo, mockMemberRepo)

	existing := &domain.Contribution{
		ID:          9,
		MemberID:    3,
		Amount:      decimal.NewFromInt(4000),
		IsLate:      true,
		PointsBerry: -15,
	}

	mockContributionRepo.On("GetByID", mock.Anything, int64(9)).Return(existing, nil)
	mockMemberRepo.On("GetByID", mock.Anything, int64(3)).Return(member(3, 10), nil)
	mockContributionRepo.On("CountByMember", mock.Anything, int64(3)).Return(3, nil)
	// Old -15 reversed, new +5 applied: 10 + 15 + 5 = 30.
	mockContributionRepo.On("Update", mock.Anything, existing, 30).Return(nil)

	updated, err := svc.Update(context.Background(), 9, &domain.CreateContributionRequest{
		Member: 3,
		Amount: decimal.NewFromInt(4000),
		Date:   "2024-03-20",
	})

	require.NoError(t, err)
	assert.False(t, updated.IsLate)
	assert.Equal(t, 5, updated.PointsBerry)
	mockContributionRepo.AssertExpectations(t)
}

func TestRecalculateBerryScores(t *testing.T) {
	mockContributionRepo := &mocks.MockContributionRepository{}
	mockMemberRepo := &mocks.MockMemberRepository{}
	svc := newContributionService(mockContributionRepo, mockMemberRepo)

	drifted := member(1, 99)
	consistent := member(2, 25)

	mockMemberRepo.On("List", mock.Anything).Return([]*domain.Member{drifted, consistent}, nil)
	mockContributionRepo.On("ListByMember", mock.Anything, int64(1)).Return([]*domain.Contribution{
		{PointsBerry: 5}, {PointsBerry: -15},
	}, nil)
	mockContributionRepo.On("ListByMember", mock.Anything, int64(2)).Return([]*domain.Contribution{
		{PointsBerry: 5},
	}, nil)
	// 20 + 5 - 15 = 10 for the drifted member; member 2 is already right.
	mockMemberRepo.On("SetBerryScore", mock.Anything, int64(1), 10).Return(nil)

	updated, err := svc.RecalculateBerryScores(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	mockMemberRepo.AssertExpectations(t)
}

func TestPreviewImpact(t *testing.T) {
	svc := newContributionService(&mocks.MockContributionRepository{}, &mocks.MockMemberRepository{})

	impact := svc.PreviewImpact(decimal.NewFromInt(7000), mustDate(t, "2024-03-27"))

	assert.True(t, impact.IsLate)
	assert.True(t, impact.HasBonus)
	assert.Equal(t, -10, impact.PointsChange)
	assert.True(t, impact.Penalties.Equal(decimal.NewFromInt(400)))
}
