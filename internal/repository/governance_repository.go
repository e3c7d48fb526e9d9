package repository

import (
	"context"
	"time"

	"github.com/Akanael21/FriendlyBanks/internal/domain"

	"github.com/jmoiron/sqlx"
)

type governanceRepository struct {
	db *sqlx.DB
}

func NewGovernanceRepository(db *sqlx.DB) GovernanceRepository {
	return &governanceRepository{db: db}
}

func (r *governanceRepository) GetSanction(ctx context.Context, id int64) (*domain.Sanction, error) {
	query := `
		SELECT id, member_id, proposed_by_id, type, reason, date, status
		FROM sanctions
		WHERE id = $1
	`

	var sanction domain.Sanction
	err := r.db.GetContext(ctx, &sanction, query, id)
	if err != nil {
		return nil, err
	}

	return &sanction, nil
}

func (r *governanceRepository) ListSanctions(ctx context.Context) ([]*domain.Sanction, error) {
	query := `
		SELECT id, member_id, proposed_by_id, type, reason, date, status
		FROM sanctions
		ORDER BY date DESC, id DESC
	`

	var sanctions []*domain.Sanction
	err := r.db.SelectContext(ctx, &sanctions, query)
	if err != nil {
		return nil, err
	}

	return sanctions, nil
}

func (r *governanceRepository) HasVotedOnSanction(ctx context.Context, sanctionID, voterID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM sanction_votes WHERE sanction_id = $1 AND voter_id = $2)`

	var voted bool
	err := r.db.GetContext(ctx, &voted, query, sanctionID, voterID)
	if err != nil {
		return false, err
	}

	return voted, nil
}

func (r *governanceRepository) CreateSanctionVote(ctx context.Context, vote *domain.SanctionVote) error {
	// sanction_votes carries a UNIQUE(sanction_id, voter_id) constraint as a
	// backstop to the HasVotedOnSanction check.
	query := `
		INSERT INTO sanction_votes (sanction_id, voter_id, choice, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	return r.db.QueryRowxContext(ctx, query,
		vote.SanctionID,
		vote.VoterID,
		vote.Choice,
		vote.Date,
	).Scan(&vote.ID)
}

func (r *governanceRepository) TallySanction(ctx context.Context, sanctionID int64) (int, int, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE choice = 'for') AS votes_for,
			COUNT(*) FILTER (WHERE choice = 'against') AS votes_against
		FROM sanction_votes
		WHERE sanction_id = $1
	`

	var tally struct {
		VotesFor     int `db:"votes_for"`
		VotesAgainst int `db:"votes_against"`
	}
	err := r.db.GetContext(ctx, &tally, query, sanctionID)
	if err != nil {
		return 0, 0, err
	}

	return tally.VotesFor, tally.VotesAgainst, nil
}

func (r *governanceRepository) GetVote(ctx context.Context, id int64) (*domain.Vote, error) {
	query := `
		SELECT id, title, description, type, status, required_majority, created_at, end_date
		FROM votes
		WHERE id = $1
	`

	var vote domain.Vote
	err := r.db.GetContext(ctx, &vote, query, id)
	if err != nil {
		return nil, err
	}

	return &vote, nil
}

func (r *governanceRepository) ListVotes(ctx context.Context) ([]*domain.Vote, error) {
	query := `
		SELECT id, title, description, type, status, required_majority, created_at, end_date
		FROM votes
		ORDER BY created_at DESC, id DESC
	`

	var votes []*domain.Vote
	err := r.db.SelectContext(ctx, &votes, query)
	if err != nil {
		return nil, err
	}

	return votes, nil
}

func (r *governanceRepository) HasVotedOnProposal(ctx context.Context, voteID, voterID int64) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM vote_records WHERE vote_id = $1 AND voter_id = $2)`

	var voted bool
	err := r.db.GetContext(ctx, &voted, query, voteID, voterID)
	if err != nil {
		return false, err
	}

	return voted, nil
}

func (r *governanceRepository) CreateVoteRecord(ctx context.Context, record *domain.VoteRecord) error {
	query := `
		INSERT INTO vote_records (vote_id, voter_id, choice, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	return r.db.QueryRowxContext(ctx, query,
		record.VoteID,
		record.VoterID,
		record.Choice,
		record.Date,
	).Scan(&record.ID)
}

func (r *governanceRepository) TallyVote(ctx context.Context, voteID int64) (int, int, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE choice = 'for') AS votes_for,
			COUNT(*) FILTER (WHERE choice = 'against') AS votes_against
		FROM vote_records
		WHERE vote_id = $1
	`

	var tally struct {
		VotesFor     int `db:"votes_for"`
		VotesAgainst int `db:"votes_against"`
	}
	err := r.db.GetContext(ctx, &tally, query, voteID)
	if err != nil {
		return 0, 0, err
	}

	return tally.VotesFor, tally.VotesAgainst, nil
}

func (r *governanceRepository) ListExpiredOpenVotes(ctx context.Context, now time.Time) ([]*domain.Vote, error) {
	query := `
		SELECT id, title, description, type, status, required_majority, created_at, end_date
		FROM votes
		WHERE status = $1 AND end_date < $2
		ORDER BY end_date, id
	`

	var votes []*domain.Vote
	err := r.db.SelectContext(ctx, &votes, query, domain.VoteStatusOpen, now)
	if err != nil {
		return nil, err
	}

	return votes, nil
}

func (r *governanceRepository) UpdateVoteStatus(ctx context.Context, voteID int64, status string) error {
	query := `UPDATE votes SET status = $2 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, voteID, status)
	return err
}
