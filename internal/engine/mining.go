// Package engine holds the pure reward arithmetic. Functions here take entity
// snapshots plus the current time and never touch storage; callers decide
// whether a result is committable.
package engine

import (
	"math"
	"time"
)

// One point per hour per 25 mining power.
const miningRateDivisor = 25

const msPerHour = 3600000

// MiningReward computes the collectable mining reward for the elapsed time
// since last. Any positive elapsed time yields at least 1 point; a zero or
// negative elapsed time yields a non-positive result that callers must reject
// without mutating state.
func MiningReward(miningPower int64, last, now time.Time) int64 {
	elapsedMs := now.Sub(last).Milliseconds()
	hours := float64(elapsedMs) / msPerHour
	hourlyRate := float64(miningPower) / miningRateDivisor

	reward := int64(math.Floor(hourlyRate * hours))
	if hours > 0 && reward == 0 {
		reward = 1
	}
	return reward
}
