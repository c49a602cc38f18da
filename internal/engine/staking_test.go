package engine

import (
	"testing"
	"time"
)

func TestStakingReward(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		amount  int64
		apyRate int64
		elapsed time.Duration
		want    int64
	}{
		// 1000 * 5% * (36.5/365) = exactly 5
		{"5 percent over 36.5 days", 1000, 500, 36*24*time.Hour + 12*time.Hour, 5},
		// 1000 * 10% * (365/365) = 100
		{"10 percent over a year", 1000, 1000, 365 * 24 * time.Hour, 100},
		// 500 * 20% * (30/365) = 8.21 -> 8
		{"20 percent over 30 days", 500, 2000, 30 * 24 * time.Hour, 8},
		// no minimum-1 clamp, unlike mining
		{"short interval accrues zero", 1000, 500, time.Hour, 0},
		{"zero elapsed", 1000, 500, 0, 0},
	}

	for _, tc := range cases {
		if got := StakingReward(tc.amount, tc.apyRate, now.Add(-tc.elapsed), now); got != tc.want {
			t.Errorf("%s: StakingReward(%d, %d, -%v) = %d; want %d",
				tc.name, tc.amount, tc.apyRate, tc.elapsed, got, tc.want)
		}
	}
}
