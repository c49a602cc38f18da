package engine

import "time"

// MaxStreak caps the daily streak; day 7 repeats until the streak breaks.
const MaxStreak = 7

// StreakResetGap is the rolling window a streak survives between claims.
// Deliberately distinct from the calendar-day claim gate: claimability is
// decided by calendar date, streak continuity by this exact gap.
const StreakResetGap = 24 * time.Hour

// DailyRewardAmounts maps streak day to reward size.
var DailyRewardAmounts = map[int]int64{
	1: 50,
	2: 75,
	3: 100,
	4: 125,
	5: 150,
	6: 200,
	7: 500,
}

// DayStart truncates t to midnight of its calendar day.
func DayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// CanClaimDaily reports whether a claim is allowed: at most one claim per
// calendar day, gated on dates rather than a rolling window.
func CanClaimDaily(lastClaim *time.Time, now time.Time) bool {
	if lastClaim == nil {
		return true
	}
	return DayStart(now).After(DayStart(*lastClaim))
}

// NextStreak returns the streak value a claim at now would record. The streak
// resets before incrementing when more than StreakResetGap has elapsed since
// the previous claim timestamp, and is capped at MaxStreak.
func NextStreak(current int, lastClaim *time.Time, now time.Time) int {
	streak := current
	if lastClaim != nil && now.Sub(*lastClaim) > StreakResetGap {
		streak = 0
	}
	streak++
	if streak > MaxStreak {
		streak = MaxStreak
	}
	return streak
}

// DailyRewardFor returns the reward for a streak day, defaulting to day 1 for
// out-of-range values.
func DailyRewardFor(day int) int64 {
	if amount, ok := DailyRewardAmounts[day]; ok {
		return amount
	}
	return DailyRewardAmounts[1]
}

// NextDailyReset returns the instant the claim gate reopens: the next
// calendar midnight after now.
func NextDailyReset(now time.Time) time.Time {
	return DayStart(now).AddDate(0, 0, 1)
}
