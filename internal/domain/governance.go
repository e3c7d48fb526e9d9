package domain

import "time"

// Sanction types and statuses keep the charter's French vocabulary, as the
// rest of the application displays them verbatim.
const (
	SanctionTypeWarning   = "Avertissement"
	SanctionTypeFine      = "Amende"
	SanctionTypeExclusion = "Exclusion"

	SanctionStatusVoting   = "Vote en cours"
	SanctionStatusApplied  = "Appliquée"
	SanctionStatusRejected = "Rejetée"
)

const (
	VoteChoiceFor     = "for"
	VoteChoiceAgainst = "against"
)

const (
	VoteStatusOpen     = "En cours"
	VoteStatusApproved = "Approuvé"
	VoteStatusRejected = "Rejeté"

	MajoritySimple    = "Simple"
	MajorityQualified = "Qualifiée"
	MajorityUnanimous = "Unanimité"
)

// Sanction is a disciplinary proposal submitted to a member vote.
type Sanction struct {
	ID           int64     `json:"id" db:"id"`
	MemberID     int64     `json:"member" db:"member_id"`
	ProposedByID int64     `json:"proposed_by" db:"proposed_by_id"`
	Type         string    `json:"type" db:"type"`
	Reason       string    `json:"reason" db:"reason"`
	Date         time.Time `json:"date" db:"date"`
	Status       string    `json:"status" db:"status"`
}

// SanctionVote records one member's choice on a sanction; the store enforces
// one vote per member per sanction.
type SanctionVote struct {
	ID         int64     `json:"id" db:"id"`
	SanctionID int64     `json:"sanction" db:"sanction_id"`
	VoterID    int64     `json:"voter" db:"voter_id"`
	Choice     string    `json:"vote" db:"choice"`
	Date       time.Time `json:"date" db:"date"`
}

// Vote is a general governance proposal with a required majority.
type Vote struct {
	ID               int64     `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	Description      string    `json:"description" db:"description"`
	Type             string    `json:"type" db:"type"`
	Status           string    `json:"status" db:"status"`
	RequiredMajority string    `json:"required_majority" db:"required_majority"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	EndDate          time.Time `json:"end_date" db:"end_date"`
}

// VoteRecord records one member's choice on a proposal; unique per voter.
type VoteRecord struct {
	ID      int64     `json:"id" db:"id"`
	VoteID  int64     `json:"vote_proposal" db:"vote_id"`
	VoterID int64     `json:"voter" db:"voter_id"`
	Choice  string    `json:"choice" db:"choice"`
	Date    time.Time `json:"date" db:"date"`
}

// DTOs for requests and responses

type CastVoteRequest struct {
	Vote string `json:"vote" validate:"required,oneof=for against"`
}

// Tally is the server-side count of a proposal's votes and whether the voter
// making the request has already cast theirs.
type Tally struct {
	VotesFor     int  `json:"votes_for"`
	VotesAgainst int  `json:"votes_against"`
	HasVoted     bool `json:"has_voted"`
}
