package storage

import (
	"context"
	"encoding/json"

	"dulpton/internal/domain"
)

// DefaultStakingPools is the pool catalog seeded on first start.
func DefaultStakingPools() []domain.StakingPool {
	return []domain.StakingPool{
		{
			Name:           "Basic Staking",
			Description:    "Entry level staking with no lock period",
			ApyRate:        500, // 5%
			LockPeriodDays: 0,
			MinStake:       100,
			IsActive:       true,
		},
		{
			Name:           "Standard Staking",
			Description:    "Higher yield with a 7 day lock period",
			ApyRate:        1000, // 10%
			LockPeriodDays: 7,
			MinStake:       500,
			IsActive:       true,
		},
		{
			Name:           "Premium Staking",
			Description:    "Best yield with a 30 day lock period",
			ApyRate:        2000, // 20%
			LockPeriodDays: 30,
			MinStake:       1000,
			IsActive:       true,
		},
	}
}

// DefaultStoreItems is the store catalog seeded on first start.
func DefaultStoreItems() []domain.StoreItem {
	return []domain.StoreItem{
		{
			Name:        "Basic Miner",
			Description: "Increases mining power by 10%",
			Price:       500,
			Type:        domain.ItemTypeMining,
			Effect:      json.RawMessage(`{"miningPowerBoost":10}`),
		},
		{
			Name:        "Advanced Miner",
			Description: "Increases mining power by 25%",
			Price:       1200,
			Type:        domain.ItemTypeMining,
			Effect:      json.RawMessage(`{"miningPowerBoost":25}`),
		},
		{
			Name:        "Advanced Processor",
			Description: "Increases mining power by 30%",
			Price:       250,
			Type:        domain.ItemTypeMining,
			Effect:      json.RawMessage(`{"miningPowerBoost":30}`),
		},
		{
			Name:        "Yield Optimizer",
			Description: "Boosts staking APY by 0.5%",
			Price:       500,
			Type:        domain.ItemTypeStaking,
			Effect:      json.RawMessage(`{"stakingApyBoost":50}`),
		},
		{
			Name:        "Premium Badge",
			Description: "Show off a premium badge on your profile",
			Price:       150,
			Type:        domain.ItemTypeProfile,
			Effect:      json.RawMessage(`{"badge":"premium"}`),
		},
		{
			Name:        "Advanced Blockchain Course",
			Description: "Unlocks advanced learning content",
			Price:       400,
			Type:        domain.ItemTypeLearning,
			Effect:      json.RawMessage(`{"unlockContent":"advanced-blockchain"}`),
		},
		{
			Name:        "2X Earnings Booster",
			Description: "Doubles all earnings for 24 hours",
			Price:       300,
			Type:        domain.ItemTypeBoost,
			Effect:      json.RawMessage(`{"earningsMultiplier":2,"duration":86400000}`),
		},
	}
}

// EnsureDefaults seeds the staking pool and store item catalogs when empty.
// Idempotent across restarts.
func EnsureDefaults(ctx context.Context, s Store) error {
	pools, err := s.GetStakingPools(ctx)
	if err != nil {
		return err
	}
	if len(pools) == 0 {
		for _, p := range DefaultStakingPools() {
			pool := p
			if err := s.CreateStakingPool(ctx, &pool); err != nil {
				return err
			}
		}
	}

	items, err := s.GetStoreItems(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		for _, it := range DefaultStoreItems() {
			item := it
			if err := s.CreateStoreItem(ctx, &item); err != nil {
				return err
			}
		}
	}
	return nil
}
