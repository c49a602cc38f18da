package domain

import "time"

// MiningOperation is the single (at most one per user) simulated mining
// session. Collection rewards accrue against LastRewardAt, which defaults to
// StartedAt until the first collection.
type MiningOperation struct {
	ID              int64      `db:"id" json:"id"`
	UserID          int64      `db:"user_id" json:"user_id"`
	IsActive        bool       `db:"is_active" json:"is_active"`
	StartedAt       time.Time  `db:"started_at" json:"started_at"`
	LastRewardAt    *time.Time `db:"last_reward_at" json:"last_reward_at,omitempty"`
	SessionEarnings int64      `db:"session_earnings" json:"session_earnings"`
}

// RewardBasis returns the instant accrual is measured from.
func (op *MiningOperation) RewardBasis() time.Time {
	if op.LastRewardAt != nil {
		return *op.LastRewardAt
	}
	return op.StartedAt
}
