package repository

import (
	"context"

	"github.com/Akanael21/FriendlyBanks/internal/domain"

	"github.com/jmoiron/sqlx"
)

type memberRepository struct {
	db *sqlx.DB
}

func NewMemberRepository(db *sqlx.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	query := `
		INSERT INTO members (first_name, last_name, email, berry_score, shares, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	return r.db.QueryRowxContext(ctx, query,
		member.FirstName,
		member.LastName,
		member.Email,
		member.BerryScore,
		member.Shares,
		member.JoinedAt,
	).Scan(&member.ID)
}

func (r *memberRepository) GetByID(ctx context.Context, id int64) (*domain.Member, error) {
	query := `
		SELECT id, first_name, last_name, email, berry_score, shares, joined_at
		FROM members
		WHERE id = $1
	`

	var member domain.Member
	err := r.db.GetContext(ctx, &member, query, id)
	if err != nil {
		return nil, err
	}

	return &member, nil
}

func (r *memberRepository) List(ctx context.Context) ([]*domain.Member, error) {
	query := `
		SELECT id, first_name, last_name, email, berry_score, shares, joined_at
		FROM members
		ORDER BY id
	`

	var members []*domain.Member
	err := r.db.SelectContext(ctx, &members, query)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	query := `
		UPDATE members
		SET first_name = $2, last_name = $3, email = $4, shares = $5
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		member.ID,
		member.FirstName,
		member.LastName,
		member.Email,
		member.Shares,
	)

	return err
}

func (r *memberRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM members WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *memberRepository) SetBerryScore(ctx context.Context, id int64, score int) error {
	query := `UPDATE members SET berry_score = $2 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, score)
	return err
}
