package service

import (
	"context"
	"fmt"
	"time"

	"dulpton/internal/domain"
	"dulpton/internal/engine"
	"dulpton/internal/metrics"
	"dulpton/internal/storage"
)

// DailyService handles the login reward streak.
type DailyService struct {
	*core
}

// DailyStatus is the claim-screen projection: claim history, the streak, and
// what a claim right now would yield.
type DailyStatus struct {
	Rewards       []domain.DailyReward `json:"rewards"`
	CurrentStreak int                  `json:"current_streak"`
	CanClaimToday bool                 `json:"can_claim_today"`
	DayToday      int                  `json:"day_today"`
	RewardToday   int64                `json:"reward_today"`
	RewardsByDay  map[int]int64        `json:"rewards_by_day"`
	ClaimedDays   []int                `json:"claimed_days"`
	NextReset     time.Time            `json:"next_reset"`
}

// ClaimResult is returned from a successful daily claim.
type ClaimResult struct {
	Reward      *domain.DailyReward `json:"daily_reward"`
	Streak      int                 `json:"streak"`
	TotalPoints int64               `json:"total_points"`
}

func (s *DailyService) Status(ctx context.Context, userID int64) (*DailyStatus, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	rewards, err := s.store.GetDailyRewards(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	canClaim := engine.CanClaimDaily(user.LastDailyRewardClaim, now)

	// Display day: the upcoming day while a claim is open, otherwise the
	// day already claimed. Gap resets apply at claim time, not here.
	day := user.DailyRewardsStreak
	if canClaim {
		day = min(user.DailyRewardsStreak+1, engine.MaxStreak)
	}

	claimed := make([]int, 0, len(rewards))
	for _, r := range rewards {
		claimed = append(claimed, r.Day)
	}

	return &DailyStatus{
		Rewards:       rewards,
		CurrentStreak: user.DailyRewardsStreak,
		CanClaimToday: canClaim,
		DayToday:      day,
		RewardToday:   engine.DailyRewardFor(day),
		RewardsByDay:  engine.DailyRewardAmounts,
		ClaimedDays:   claimed,
		NextReset:     engine.NextDailyReset(now),
	}, nil
}

// Claim awards the daily reward. At most one claim per calendar day; the
// streak continues only when the previous claim is within the rolling window.
func (s *DailyService) Claim(ctx context.Context, userID int64) (*ClaimResult, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !engine.CanClaimDaily(user.LastDailyRewardClaim, now) {
		return nil, ErrAlreadyClaimed
	}

	streak := engine.NextStreak(user.DailyRewardsStreak, user.LastDailyRewardClaim, now)
	amount := engine.DailyRewardFor(streak)

	reward := &domain.DailyReward{
		UserID:    userID,
		Day:       streak,
		Amount:    amount,
		ClaimedAt: now,
	}
	if err := s.store.CreateDailyReward(ctx, reward); err != nil {
		return nil, err
	}

	points := user.Points + amount
	updatedUser, err := s.store.UpdateUser(ctx, userID, storage.UserUpdate{
		Points:               &points,
		LastDailyRewardClaim: &now,
		DailyRewardsStreak:   &streak,
	})
	if err != nil {
		return nil, err
	}

	s.log.Append(ctx, userID, domain.ActivityDaily, amount, fmt.Sprintf("Day %d Reward", streak))
	metrics.RewardCollections.WithLabelValues("daily").Inc()

	return &ClaimResult{
		Reward:      reward,
		Streak:      streak,
		TotalPoints: updatedUser.Points,
	}, nil
}
