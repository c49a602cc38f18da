package domain

import "time"

// Defaults applied when a user registers.
const (
	InitialPoints   int64 = 100
	BaseMiningPower int64 = 50
)

type User struct {
	ID                   int64      `db:"id" json:"id"`
	Username             string     `db:"username" json:"username"`
	Email                string     `db:"email" json:"email"`
	Password             string     `db:"password" json:"-"`
	Points               int64      `db:"points" json:"points"`
	MiningPower          int64      `db:"mining_power" json:"mining_power"`
	StakedPoints         int64      `db:"staked_points" json:"staked_points"`
	ReferralPoints       int64      `db:"referral_points" json:"referral_points"`
	LastDailyRewardClaim *time.Time `db:"last_daily_reward_claim" json:"last_daily_reward_claim,omitempty"`
	LastMiningReward     *time.Time `db:"last_mining_reward" json:"last_mining_reward,omitempty"`
	DailyRewardsStreak   int        `db:"daily_rewards_streak" json:"daily_rewards_streak"`
	ReferralCode         string     `db:"referral_code" json:"referral_code"`
	ReferredBy           *int64     `db:"referred_by" json:"referred_by,omitempty"`
	CreatedAt            time.Time  `db:"created_at" json:"created_at"`
}
