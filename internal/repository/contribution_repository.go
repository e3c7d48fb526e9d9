package repository

import (
	"context"

	"github.com/Akanael21/FriendlyBanks/internal/domain"

	"github.com/jmoiron/sqlx"
)

type contributionRepository struct {
	db *sqlx.DB
}

func NewContributionRepository(db *sqlx.DB) ContributionRepository {
	return &contributionRepository{db: db}
}

// Record writes the contribution and the member's adjusted Berry score in a
// single transaction.
func (r *contributionRepository) Record(ctx context.Context, contribution *domain.Contribution, newBerryScore int) error {
	query := `
		INSERT INTO contributions (member_id, amount, date, is_late, points_berry)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	err = tx.QueryRowxContext(ctx, query,
		contribution.MemberID,
		contribution.Amount,
		contribution.Date,
		contribution.IsLate,
		contribution.PointsBerry,
	).Scan(&contribution.ID)
	if err != nil {
		return err
	}

	scoreQuery := `UPDATE members SET berry_score = $2 WHERE id = $1`
	if _, err = tx.ExecContext(ctx, scoreQuery, contribution.MemberID, newBerryScore); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *contributionRepository) GetByID(ctx context.Context, id int64) (*domain.Contribution, error) {
	query := `
		SELECT id, member_id, amount, date, is_late, points_berry
		FROM contributions
		WHERE id = $1
	`

	var contribution domain.Contribution
	err := r.db.GetContext(ctx, &contribution, query, id)
	if err != nil {
		return nil, err
	}

	return &contribution, nil
}

func (r *contributionRepository) List(ctx context.Context) ([]*domain.Contribution, error) {
	query := `
		SELECT id, member_id, amount, date, is_late, points_berry
		FROM contributions
		ORDER BY date DESC, id DESC
	`

	var contributions []*domain.Contribution
	err := r.db.SelectContext(ctx, &contributions, query)
	if err != nil {
		return nil, err
	}

	return contributions, nil
}

func (r *contributionRepository) ListByMember(ctx context.Context, memberID int64) ([]*domain.Contribution, error) {
	query := `
		SELECT id, member_id, amount, date, is_late, points_berry
		FROM contributions
		WHERE member_id = $1
		ORDER BY date, id
	`

	var contributions []*domain.Contribution
	err := r.db.SelectContext(ctx, &contributions, query, memberID)
	if err != nil {
		return nil, err
	}

	return contributions, nil
}

func (r *contributionRepository) CountByMember(ctx context.Context, memberID int64) (int, error) {
	query := `SELECT COUNT(*) FROM contributions WHERE member_id = $1`

	var count int
	err := r.db.GetContext(ctx, &count, query, memberID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

// Update rewrites a contribution's amount, date and derived fields, and
// applies the member's re-derived Berry score in the same transaction.
func (r *contributionRepository) Update(ctx context.Context, contribution *domain.Contribution, newBerryScore int) error {
	query := `
		UPDATE contributions
		SET amount = $2, date = $3, is_late = $4, points_berry = $5
		WHERE id = $1
	`

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, query,
		contribution.ID,
		contribution.Amount,
		contribution.Date,
		contribution.IsLate,
		contribution.PointsBerry,
	); err != nil {
		return err
	}

	scoreQuery := `UPDATE members SET berry_score = $2 WHERE id = $1`
	if _, err = tx.ExecContext(ctx, scoreQuery, contribution.MemberID, newBerryScore); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *contributionRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM contributions WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
