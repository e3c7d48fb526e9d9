package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Akanael21/FriendlyBanks/internal/domain"
	"github.com/Akanael21/FriendlyBanks/internal/engine"
	"github.com/Akanael21/FriendlyBanks/internal/repository"
	customError "github.com/Akanael21/FriendlyBanks/pkg/errors"
	"github.com/Akanael21/FriendlyBanks/pkg/utils"
)

// ContributionService records monthly contributions and keeps each member's
// Berry score in step with the recorded point deltas.
type ContributionService struct {
	contributionRepo repository.ContributionRepository
	memberRepo       repository.MemberRepository
	policy           engine.ContributionPolicy
}

func NewContributionService(
	contributionRepo repository.ContributionRepository,
	memberRepo repository.MemberRepository,
	policy engine.ContributionPolicy,
) *ContributionService {
	return &ContributionService{
		contributionRepo: contributionRepo,
		memberRepo:       memberRepo,
		policy:           policy,
	}
}

// PreviewImpact returns the effect a contribution would have, without
// recording anything.
func (s *ContributionService) PreviewImpact(amount decimal.Decimal, date time.Time) *domain.ContributionImpactResponse {
	impact := engine.ContributionImpact(amount, date, s.policy)

	return &domain.ContributionImpactResponse{
		PointsChange: impact.PointsChange,
		Penalties:    impact.Penalties,
		IsLate:       impact.IsLate,
		HasBonus:     impact.HasBonus,
	}
}

// Create records a contribution. The point delta comes from the impact
// calculator, with one history-dependent adjustment layered on top: the
// on-time award is not granted for a member's very first contribution. The
// member's Berry score is adjusted in the same transaction as the insert.
func (s *ContributionService) Create(ctx context.Context, request *domain.CreateContributionRequest) (*domain.Contribution, error) {
	member, err := s.getMember(ctx, request.Member)
	if err != nil {
		return nil, err
	}

	date, err := utils.ParseDate(request.Date)
	if err != nil {
		return nil, customError.NewBusinessError(
			customError.ErrCodeRuleViolation,
			"date must be an ISO calendar date (YYYY-MM-DD)",
			err,
		)
	}

	impact := engine.ContributionImpact(request.Amount, date, s.policy)
	points := impact.PointsChange

	count, err := s.contributionRepo.CountByMember(ctx, member.ID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if count == 0 && !impact.IsLate {
		points -= engine.OnTimeAward
	}

	contribution := &domain.Contribution{
		MemberID:    member.ID,
		Amount:      request.Amount,
		Date:        date,
		IsLate:      impact.IsLate,
		PointsBerry: points,
	}

	if err = s.contributionRepo.Record(ctx, contribution, member.BerryScore+points); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return contribution, nil
}

// Update rewrites a contribution's amount and date, re-derives its impact and
// moves the member's Berry score from the old delta to the new one.
func (s *ContributionService) Update(ctx context.Context, id int64, request *domain.CreateContributionRequest) (*domain.Contribution, error) {
	contribution, err := s.getContribution(ctx, id)
	if err != nil {
		return nil, err
	}

	member, err := s.getMember(ctx, contribution.MemberID)
	if err != nil {
		return nil, err
	}

	date, err := utils.ParseDate(request.Date)
	if err != nil {
		return nil, customError.NewBusinessError(
			customError.ErrCodeRuleViolation,
			"date must be an ISO calendar date (YYYY-MM-DD)",
			err,
		)
	}

	impact := engine.ContributionImpact(request.Amount, date, s.policy)
	points := impact.PointsChange

	count, err := s.contributionRepo.CountByMember(ctx, member.ID)
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	if count == 1 && !impact.IsLate {
		// Still the member's only contribution.
		points -= engine.OnTimeAward
	}

	oldPoints := contribution.PointsBerry
	contribution.Amount = request.Amount
	contribution.Date = date
	contribution.IsLate = impact.IsLate
	contribution.PointsBerry = points

	newScore := member.BerryScore - oldPoints + points
	if err = s.contributionRepo.Update(ctx, contribution, newScore); err != nil {
		return nil, customError.WrapDatabaseError(err)
	}

	return contribution, nil
}

// List returns all contributions, or one member's when memberID is positive.
func (s *ContributionService) List(ctx context.Context, memberID int64) ([]*domain.Contribution, error) {
	var (
		contributions []*domain.Contribution
		err           error
	)
	if memberID > 0 {
		contributions, err = s.contributionRepo.ListByMember(ctx, memberID)
	} else {
		contributions, err = s.contributionRepo.List(ctx)
	}
	if err != nil {
		return nil, customError.WrapDatabaseError(err)
	}
	return contributions, nil
}

// Delete removes a contribution record. The member's score is left as is; a
// scheduled recalculation sweep re-derives scores from the remaining ledger.
func (s *ContributionService) Delete(ctx context.Context, id int64) error {
	if _, err := s.getContribution(ctx, id); err != nil {
		return err
	}

	if err := s.contributionRepo.Delete(ctx, id); err != nil {
		return customError.WrapDatabaseError(err)
	}

	return nil
}

// RecalculateBerryScores re-derives every member's Berry score from their
// contribution ledger, starting from the joining score. Used by the scheduler
// to repair drift after privileged edits or deletions.
func (s *ContributionService) RecalculateBerryScores(ctx context.Context) (int, error) {
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return 0, customError.WrapDatabaseError(err)
	}

	updated := 0
	for _, member := range members {
		contributions, err := s.contributionRepo.ListByMember(ctx, member.ID)
		if err != nil {
			return updated, customError.WrapDatabaseError(err)
		}

		score := domain.InitialBerryScore
		for _, contribution := range contributions {
			score += contribution.PointsBerry
		}

		if score == member.BerryScore {
			continue
		}

		if err = s.memberRepo.SetBerryScore(ctx, member.ID, score); err != nil {
			return updated, customError.WrapDatabaseError(err)
		}
		updated++
	}

	return updated, nil
}

func (s *ContributionService) getMember(ctx context.Context, memberID int64) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapMemberNotFound(memberID)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return member, nil
}

func (s *ContributionService) getContribution(ctx context.Context, id int64) (*domain.Contribution, error) {
	contribution, err := s.contributionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, customError.WrapContributionNotFound(id)
		}
		return nil, customError.WrapDatabaseError(err)
	}
	return contribution, nil
}
