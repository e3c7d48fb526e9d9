package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Akanael21/FriendlyBanks/internal/domain"
	"github.com/Akanael21/FriendlyBanks/internal/repository"
	customError "github.com/Akanael21/FriendlyBanks/pkg/errors"
)

// MemberService manages member records. Berry scores are never set through
// this service; they move only through contribution and sanction effects.
type MemberService struct {
	memberRepo repository.MemberRepository
}

func NewMemberService(memberRepo repository.MemberRepository) *MemberService {
	return &MemberService{memberRepo: memberRepo}
}

// Create registers a member with the joining Berry score.
func (s *MemberService) Create(ctx context.Context, request *domain.CreateMemberRequest) (*domain.Member, error) {
	member := &domain.Member{
		FirstName:  request.FirstName,
		LastName:   request.LastName,
		Email:      request.Email,
		BerryScore: domain.InitialBerryScore,
		Shares:     request.Shares,
		JoinedAt:   time.Now(),
	}

	if member.Shares.IsZero() {
		member.Shares = decimal.Zero
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return member, nil
}

// Get returns one member.
func (s *MemberService) Get(ctx context.Context, id int64) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapMemberNotFound(id)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return member, nil
}

// List returns all members.
func (s *MemberService) List(ctx context.Context) ([]*domain.Member, error) {
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return members, nil
}

// Update edits a member's identity fields and shares.
func (s *MemberService) Update(ctx context.Context, id int64, request *domain.UpdateMemberRequest) (*domain.Member, error) {
	member, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if request.FirstName != nil {
		member.FirstName = *request.FirstName
	}
	if request.LastName != nil {
		member.LastName = *request.LastName
	}
	if request.Email != nil {
		member.Email = *request.Email
	}
	if request.Shares != nil {
		member.Shares = *request.Shares
	}

	if err = s.memberRepo.Update(ctx, member); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return member, nil
}

// Delete removes a member.
func (s *MemberService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	if err := s.memberRepo.Delete(ctx, id); err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}
