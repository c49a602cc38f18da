package engine

import (
	"math"
	"time"
)

const (
	msPerDay    = 86400000
	daysPerYear = 365
	// apyRate is persisted as APY*100 (500 = 5.00%), so the fraction is
	// apyRate/10000.
	apyDivisor = 10000
)

// StakingReward computes the accrued staking reward for amount staked at
// apyRate over the elapsed time since last. Unlike mining there is no
// minimum-1 clamp: short intervals legitimately accrue 0 and callers reject
// non-positive results.
func StakingReward(amount, apyRate int64, last, now time.Time) int64 {
	elapsedMs := now.Sub(last).Milliseconds()
	days := float64(elapsedMs) / msPerDay

	return int64(math.Floor(float64(amount) * (float64(apyRate) / apyDivisor) * (days / daysPerYear)))
}
