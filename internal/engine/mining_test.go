package engine

import (
	"testing"
	"time"
)

func TestMiningReward(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		power   int64
		elapsed time.Duration
		want    int64
	}{
		{"two hours at base power", 50, 2 * time.Hour, 4},
		{"one hour at base power", 50, time.Hour, 2},
		{"half hour rounds down to min 1", 50, 30 * time.Minute, 1},
		{"one second clamps to 1", 50, time.Second, 1},
		{"zero elapsed", 50, 0, 0},
		{"clock went backwards", 50, -time.Hour, -2},
		{"boosted power", 100, time.Hour, 4},
		{"low power long interval", 25, 10 * time.Hour, 10},
	}

	for _, tc := range cases {
		if got := MiningReward(tc.power, now.Add(-tc.elapsed), now); got != tc.want {
			t.Errorf("%s: MiningReward(%d, -%v) = %d; want %d", tc.name, tc.power, tc.elapsed, got, tc.want)
		}
	}
}

func TestMiningRewardFractionalFloor(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// 50/25 = 2 pts/hr; 90 minutes = 3.0 exactly, 89 minutes floors to 2.
	if got := MiningReward(50, now.Add(-90*time.Minute), now); got != 3 {
		t.Fatalf("90m reward = %d; want 3", got)
	}
	if got := MiningReward(50, now.Add(-89*time.Minute), now); got != 2 {
		t.Fatalf("89m reward = %d; want 2", got)
	}
}
