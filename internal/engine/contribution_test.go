package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func contributionDate(day int) time.Time {
	return time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC)
}

func TestContributionImpact(t *testing.T) {
	policy := DefaultContributionPolicy()

	tests := []struct {
		name              string
		amount            int64
		day               int
		expectedPoints    int
		expectedPenalties int64
		expectedLate      bool
		expectedBonus     bool
	}{
		{
			name:           "minimum contribution on the due day",
			amount:         4000,
			day:            25,
			expectedPoints: 5,
		},
		{
			name:           "on time early in the month",
			amount:         5000,
			day:            3,
			expectedPoints: 5,
		},
		{
			name:           "on time with bonus",
			amount:         6800,
			day:            20,
			expectedPoints: 10,
			expectedBonus:  true,
		},
		{
			name:              "one day late",
			amount:            4000,
			day:               26,
			expectedPoints:    -15,
			expectedPenalties: 200,
			expectedLate:      true,
		},
		{
			name:              "two days late with bonus",
			amount:            7000,
			day:               27,
			expectedPoints:    -10,
			expectedPenalties: 400,
			expectedLate:      true,
			expectedBonus:     true,
		},
		{
			name:              "end of month",
			amount:            4000,
			day:               31,
			expectedPoints:    -15,
			expectedPenalties: 1200,
			expectedLate:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			impact := ContributionImpact(decimal.NewFromInt(tt.amount), contributionDate(tt.day), policy)

			assert.Equal(t, tt.expectedPoints, impact.PointsChange)
			assert.Equal(t, tt.expectedLate, impact.IsLate)
			assert.Equal(t, tt.expectedBonus, impact.HasBonus)
			assert.True(t, impact.Penalties.Equal(decimal.NewFromInt(tt.expectedPenalties)),
				"Expected penalties %d, but got %v", tt.expectedPenalties, impact.Penalties)
		})
	}
}

func TestContributionImpact_CustomPolicy(t *testing.T) {
	policy := ContributionPolicy{
		Minimum:        decimal.NewFromInt(10000),
		DueDay:         15,
		LateFeePerDay:  decimal.NewFromInt(500),
		BonusThreshold: decimal.NewFromInt(17000),
	}

	impact := ContributionImpact(decimal.NewFromInt(10000), contributionDate(18), policy)

	assert.True(t, impact.IsLate)
	assert.False(t, impact.HasBonus)
	assert.Equal(t, -15, impact.PointsChange)
	assert.True(t, impact.Penalties.Equal(decimal.NewFromInt(1500)))
}

func TestDefaultContributionPolicy(t *testing.T) {
	policy := DefaultContributionPolicy()

	assert.True(t, policy.Minimum.Equal(decimal.NewFromInt(4000)))
	assert.Equal(t, 25, policy.DueDay)
	assert.True(t, policy.LateFeePerDay.Equal(decimal.NewFromInt(200)))
	assert.True(t, policy.BonusThreshold.Equal(decimal.NewFromInt(6800)))
}
