package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Akanael21/FriendlyBanks/internal/domain"
	"github.com/Akanael21/FriendlyBanks/tests/mocks"
)

func TestCreateMember_StartsAtJoiningScore(t *testing.T) {
	mockMemberRepo := &mocks.MockMemberRepository{}
	svc := NewMemberService(mockMemberRepo)

	mockMemberRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *domain.Member) bool {
		return m.BerryScore == domain.InitialBerryScore && m.Email == "awa@example.com"
	})).Return(nil)

	created, err := svc.Create(context.Background(), &domain.CreateMemberRequest{
		FirstName: "Awa",
		LastName:  "Ngono",
		Email:     "awa@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.InitialBerryScore, created.BerryScore)
	mockMemberRepo.AssertExpectations(t)
}

func TestUpdateMember_PartialEdit(t *testing.T) {
	mockMemberRepo := &mocks.MockMemberRepository{}
	svc := NewMemberService(mockMemberRepo)

	existing := member(3, 45)
	existing.Email = "old@example.com"
	mockMemberRepo.On("GetByID", mock.Anything, int64(3)).Return(existing, nil)
	mockMemberRepo.On("Update", mock.Anything, existing).Return(nil)

	email := "new@example.com"
	updated, err := svc.Update(context.Background(), 3, &domain.UpdateMemberRequest{Email: &email})

	require.NoError(t, err)
	assert.Equal(t, "new@example.com", updated.Email)
	// Untouched fields stay, including the score.
	assert.Equal(t, 45, updated.BerryScore)
}
