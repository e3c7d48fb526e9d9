package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// Point deltas fixed by the charter.
const (
	OnTimeAward = 5
	LatePenalty = -15
	BonusAward  = 5
)

// ContributionPolicy carries the monthly contribution constants. The defaults
// in DefaultContributionPolicy are the charter values; deployments may
// override them through configuration.
type ContributionPolicy struct {
	Minimum        decimal.Decimal
	DueDay         int
	LateFeePerDay  decimal.Decimal
	BonusThreshold decimal.Decimal
}

// DefaultContributionPolicy returns the charter constants: 4 000 XAF minimum,
// due on the 25th, 200 XAF fine per day late, bonus from 6 800 XAF (minimum
// plus 70%).
func DefaultContributionPolicy() ContributionPolicy {
	return ContributionPolicy{
		Minimum:        decimal.NewFromInt(4000),
		DueDay:         25,
		LateFeePerDay:  decimal.NewFromInt(200),
		BonusThreshold: decimal.NewFromInt(6800),
	}
}

// Impact is the effect of a single contribution on a member's Berry points and
// any late fee owed.
type Impact struct {
	PointsChange int
	Penalties    decimal.Decimal
	IsLate       bool
	HasBonus     bool
}

// ContributionImpact derives the Berry point delta and late fee for one
// contribution. Lateness only looks at the day of month against the due day.
// The 70% bonus is additive and independent of lateness, so a late but
// generous contribution still earns it.
//
// Aggregate bonuses mentioned in the charter text (share of the whole fund)
// are not active rules and are not computed here.
func ContributionImpact(amount decimal.Decimal, date time.Time, policy ContributionPolicy) Impact {
	impact := Impact{
		Penalties: decimal.Zero,
		IsLate:    date.Day() > policy.DueDay,
		HasBonus:  amount.GreaterThanOrEqual(policy.BonusThreshold),
	}

	if impact.IsLate {
		impact.PointsChange += LatePenalty
		daysLate := int64(date.Day() - policy.DueDay)
		impact.Penalties = policy.LateFeePerDay.Mul(decimal.NewFromInt(daysLate))
	} else {
		impact.PointsChange += OnTimeAward
	}

	if impact.HasBonus {
		impact.PointsChange += BonusAward
	}

	return impact
}
