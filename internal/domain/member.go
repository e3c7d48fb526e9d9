package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InitialBerryScore is the Berry score granted to a member at joining.
const InitialBerryScore = 20

// Member is a community member. BerryScore is mutated only by the server-side
// effects of contributions and sanctions, never directly by callers.
type Member struct {
	ID         int64           `json:"id" db:"id"`
	FirstName  string          `json:"first_name" db:"first_name"`
	LastName   string          `json:"last_name" db:"last_name"`
	Email      string          `json:"email" db:"email"`
	BerryScore int             `json:"berry_score" db:"berry_score"`
	Shares     decimal.Decimal `json:"shares" db:"shares"`
	JoinedAt   time.Time       `json:"joined_at" db:"joined_at"`
}

// DTOs for requests and responses

type CreateMemberRequest struct {
	FirstName string          `json:"first_name" validate:"required"`
	LastName  string          `json:"last_name" validate:"required"`
	Email     string          `json:"email" validate:"required,email"`
	Shares    decimal.Decimal `json:"shares" validate:"omitempty"`
}

type UpdateMemberRequest struct {
	FirstName *string          `json:"first_name,omitempty"`
	LastName  *string          `json:"last_name,omitempty"`
	Email     *string          `json:"email,omitempty" validate:"omitempty,email"`
	Shares    *decimal.Decimal `json:"shares,omitempty"`
}
