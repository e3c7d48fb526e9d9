package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contribution is a member's monthly dues payment. IsLate and PointsBerry are
// derived server-side when the contribution is recorded; the member's Berry
// score is adjusted by PointsBerry in the same transaction.
type Contribution struct {
	ID          int64           `json:"id" db:"id"`
	MemberID    int64           `json:"member" db:"member_id"`
	Amount      decimal.Decimal `json:"amount" db:"amount"`
	Date        time.Time       `json:"date" db:"date"`
	IsLate      bool            `json:"is_late" db:"is_late"`
	PointsBerry int             `json:"points_berry" db:"points_berry"`
}

// DTOs for requests and responses

type CreateContributionRequest struct {
	Member int64           `json:"member" validate:"required,gt=0"`
	Amount decimal.Decimal `json:"amount" validate:"required"`
	Date   string          `json:"date" validate:"required,datetime=2006-01-02"`
}

// ContributionImpactResponse previews the effect of a contribution before it
// is submitted.
type ContributionImpactResponse struct {
	PointsChange int             `json:"points_change"`
	Penalties    decimal.Decimal `json:"penalties"`
	IsLate       bool            `json:"is_late"`
	HasBonus     bool            `json:"has_bonus"`
}
