package service

import (
	"context"
	"fmt"

	"dulpton/internal/domain"
	"dulpton/internal/engine"
	"dulpton/internal/metrics"
	"dulpton/internal/storage"
)

// StakingService manages staking positions against the pool catalog.
type StakingService struct {
	*core
}

// UnstakeResult is returned from a successful unstake.
type UnstakeResult struct {
	Unstaked      int64 `json:"unstaked"`
	Reward        int64 `json:"reward"`
	TotalReturned int64 `json:"total_returned"`
}

func (s *StakingService) Pools(ctx context.Context) ([]domain.StakingPool, error) {
	return s.store.GetStakingPools(ctx)
}

func (s *StakingService) Stakes(ctx context.Context, userID int64) ([]domain.UserStake, error) {
	return s.store.GetUserStakes(ctx, userID)
}

// Stake moves points from the user's balance into a new position. The pool
// must be active, the amount at least the pool minimum, and the balance
// sufficient.
func (s *StakingService) Stake(ctx context.Context, userID, poolID, amount int64) (*domain.UserStake, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	pool, err := s.store.GetStakingPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	if !pool.IsActive {
		return nil, ErrPoolInactive
	}
	if amount < pool.MinStake {
		return nil, &BelowMinimumError{MinStake: pool.MinStake}
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Points < amount {
		return nil, ErrInsufficientBalance
	}

	now := s.now()
	stake := &domain.UserStake{
		UserID:    userID,
		PoolID:    poolID,
		Amount:    amount,
		StartedAt: now,
	}
	if pool.LockPeriodDays > 0 {
		end := now.AddDate(0, 0, pool.LockPeriodDays)
		stake.EndAt = &end
	}
	if err := s.store.CreateUserStake(ctx, stake); err != nil {
		return nil, err
	}

	points := user.Points - amount
	staked := user.StakedPoints + amount
	if _, err := s.store.UpdateUser(ctx, userID, storage.UserUpdate{
		Points:       &points,
		StakedPoints: &staked,
	}); err != nil {
		return nil, err
	}

	s.log.Append(ctx, userID, domain.ActivityStaking, -amount, fmt.Sprintf("Staked in %s", pool.Name))

	return stake, nil
}

// Collect credits the reward accrued on a stake since its last collection.
func (s *StakingService) Collect(ctx context.Context, userID, stakeID int64) (*CollectResult, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	stake, err := s.store.GetUserStake(ctx, stakeID)
	if err != nil {
		return nil, err
	}
	if stake.UserID != userID {
		return nil, ErrForbidden
	}
	pool, err := s.store.GetStakingPool(ctx, stake.PoolID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	reward := engine.StakingReward(stake.Amount, pool.ApyRate, stake.RewardBasis(), now)
	if reward <= 0 {
		return nil, ErrNoReward
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	points := user.Points + reward
	updatedUser, err := s.store.UpdateUser(ctx, userID, storage.UserUpdate{Points: &points})
	if err != nil {
		return nil, err
	}
	if _, err := s.store.UpdateUserStake(ctx, stakeID, storage.UserStakeUpdate{LastRewardAt: &now}); err != nil {
		return nil, err
	}

	s.log.Append(ctx, userID, domain.ActivityStaking, reward, fmt.Sprintf("Staking Reward from %s", pool.Name))
	metrics.RewardCollections.WithLabelValues("staking").Inc()

	return &CollectResult{Reward: reward, TotalPoints: updatedUser.Points}, nil
}

// Unstake closes a position after its lock period, returning the principal
// plus any final accrued reward to the balance.
func (s *StakingService) Unstake(ctx context.Context, userID, stakeID int64) (*UnstakeResult, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	stake, err := s.store.GetUserStake(ctx, stakeID)
	if err != nil {
		return nil, err
	}
	if stake.UserID != userID {
		return nil, ErrForbidden
	}

	now := s.now()
	if stake.EndAt != nil && now.Before(*stake.EndAt) {
		return nil, &LockPeriodActiveError{UnlocksAt: *stake.EndAt}
	}

	pool, err := s.store.GetStakingPool(ctx, stake.PoolID)
	if err != nil {
		return nil, err
	}
	reward := engine.StakingReward(stake.Amount, pool.ApyRate, stake.RewardBasis(), now)
	if reward < 0 {
		reward = 0
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	points := user.Points + stake.Amount + reward
	staked := user.StakedPoints - stake.Amount
	if staked < 0 {
		staked = 0
	}
	if _, err := s.store.UpdateUser(ctx, userID, storage.UserUpdate{
		Points:       &points,
		StakedPoints: &staked,
	}); err != nil {
		return nil, err
	}
	if err := s.store.DeleteUserStake(ctx, stakeID); err != nil {
		return nil, err
	}

	s.log.Append(ctx, userID, domain.ActivityStaking, stake.Amount, fmt.Sprintf("Unstaked from %s", pool.Name))
	if reward > 0 {
		s.log.Append(ctx, userID, domain.ActivityStaking, reward, fmt.Sprintf("Staking Reward from %s", pool.Name))
		metrics.RewardCollections.WithLabelValues("staking").Inc()
	}

	return &UnstakeResult{
		Unstaked:      stake.Amount,
		Reward:        reward,
		TotalReturned: stake.Amount + reward,
	}, nil
}
