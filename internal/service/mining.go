package service

import (
	"context"

	"dulpton/internal/domain"
	"dulpton/internal/engine"
	"dulpton/internal/metrics"
	"dulpton/internal/storage"
)

// MiningService manages the per-user mining operation lifecycle and reward
// collection.
type MiningService struct {
	*core
}

// CollectResult is returned from a successful collection.
type CollectResult struct {
	Reward      int64                   `json:"reward"`
	TotalPoints int64                   `json:"total_points"`
	Operation   *domain.MiningOperation `json:"mining_operation"`
}

// Get returns the user's mining operation, creating an active one on first
// access.
func (s *MiningService) Get(ctx context.Context, userID int64) (*domain.MiningOperation, error) {
	op, err := s.store.GetMiningOperation(ctx, userID)
	if err == nil {
		return op, nil
	}
	if err != storage.ErrNotFound {
		return nil, err
	}

	op = &domain.MiningOperation{UserID: userID, IsActive: true, StartedAt: s.now()}
	if err := s.store.CreateMiningOperation(ctx, op); err != nil {
		return nil, err
	}
	return op, nil
}

// Start activates mining and resets the session: startedAt moves to now and
// sessionEarnings drops to 0. lastRewardAt is left alone so the next
// collection falls back to the new startedAt only when it was never set.
func (s *MiningService) Start(ctx context.Context, userID int64) (*domain.MiningOperation, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	now := s.now()

	op, err := s.store.GetMiningOperation(ctx, userID)
	if err == storage.ErrNotFound {
		op = &domain.MiningOperation{UserID: userID, IsActive: true, StartedAt: now}
		if err := s.store.CreateMiningOperation(ctx, op); err != nil {
			return nil, err
		}
		return op, nil
	}
	if err != nil {
		return nil, err
	}

	active := true
	earnings := int64(0)
	return s.store.UpdateMiningOperation(ctx, op.ID, storage.MiningOperationUpdate{
		IsActive:        &active,
		StartedAt:       &now,
		SessionEarnings: &earnings,
	})
}

// Stop deactivates mining. Session earnings and reward timestamps are
// preserved.
func (s *MiningService) Stop(ctx context.Context, userID int64) (*domain.MiningOperation, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	op, err := s.store.GetMiningOperation(ctx, userID)
	if err != nil {
		return nil, err
	}

	active := false
	return s.store.UpdateMiningOperation(ctx, op.ID, storage.MiningOperationUpdate{IsActive: &active})
}

// Collect credits the accrued mining reward. The operation must be active and
// some time must have elapsed since the last collection.
func (s *MiningService) Collect(ctx context.Context, userID int64) (*CollectResult, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	op, err := s.store.GetMiningOperation(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !op.IsActive {
		return nil, ErrOperationNotActive
	}

	now := s.now()
	reward := engine.MiningReward(user.MiningPower, op.RewardBasis(), now)
	if reward <= 0 {
		return nil, ErrNoReward
	}

	points := user.Points + reward
	updatedUser, err := s.store.UpdateUser(ctx, userID, storage.UserUpdate{
		Points:           &points,
		LastMiningReward: &now,
	})
	if err != nil {
		return nil, err
	}

	earnings := op.SessionEarnings + reward
	updatedOp, err := s.store.UpdateMiningOperation(ctx, op.ID, storage.MiningOperationUpdate{
		LastRewardAt:    &now,
		SessionEarnings: &earnings,
	})
	if err != nil {
		return nil, err
	}

	s.log.Append(ctx, userID, domain.ActivityMining, reward, "Mining Reward")
	metrics.RewardCollections.WithLabelValues("mining").Inc()

	return &CollectResult{
		Reward:      reward,
		TotalPoints: updatedUser.Points,
		Operation:   updatedOp,
	}, nil
}
