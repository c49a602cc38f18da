package domain

import "time"

// StakingPool is static catalog data seeded at startup.
// ApyRate is the annual percentage yield multiplied by 100 (500 = 5.00%);
// reward math divides by 10000 to obtain the fraction.
type StakingPool struct {
	ID             int64  `db:"id" json:"id"`
	Name           string `db:"name" json:"name"`
	Description    string `db:"description" json:"description"`
	ApyRate        int64  `db:"apy_rate" json:"apy_rate"`
	LockPeriodDays int    `db:"lock_period_days" json:"lock_period_days"`
	MinStake       int64  `db:"min_stake" json:"min_stake"`
	IsActive       bool   `db:"is_active" json:"is_active"`
}

// UserStake is an active staking position. EndAt is only set when the pool has
// a lock period. The row is deleted on unstake.
type UserStake struct {
	ID           int64      `db:"id" json:"id"`
	UserID       int64      `db:"user_id" json:"user_id"`
	PoolID       int64      `db:"pool_id" json:"pool_id"`
	Amount       int64      `db:"amount" json:"amount"`
	StartedAt    time.Time  `db:"started_at" json:"started_at"`
	EndAt        *time.Time `db:"end_at" json:"end_at,omitempty"`
	LastRewardAt *time.Time `db:"last_reward_at" json:"last_reward_at,omitempty"`
}

// RewardBasis returns the instant accrual is measured from.
func (s *UserStake) RewardBasis() time.Time {
	if s.LastRewardAt != nil {
		return *s.LastRewardAt
	}
	return s.StartedAt
}
