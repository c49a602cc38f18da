// Package storage defines the entity store the ledger runs against. Both the
// Postgres and in-memory implementations satisfy Store; services depend only
// on this interface so tests can run on isolated in-memory instances.
package storage

import (
	"context"
	"errors"
	"time"

	"dulpton/internal/domain"
)

// ErrNotFound is returned by every getter when the entity does not exist.
var ErrNotFound = errors.New("not found")

// Partial update payloads. A nil field is left untouched; updates are a merge
// by id, mirroring the write contract the HTTP layer was built against.

type UserUpdate struct {
	Points               *int64
	MiningPower          *int64
	StakedPoints         *int64
	ReferralPoints       *int64
	LastDailyRewardClaim *time.Time
	LastMiningReward     *time.Time
	DailyRewardsStreak   *int
	ReferredBy           *int64
}

type MiningOperationUpdate struct {
	IsActive        *bool
	StartedAt       *time.Time
	LastRewardAt    *time.Time
	SessionEarnings *int64
}

type UserStakeUpdate struct {
	EndAt        *time.Time
	LastRewardAt *time.Time
}

type UserInventoryUpdate struct {
	IsActive  *bool
	ExpiresAt *time.Time
}

type ReferralUpdate struct {
	PointsEarned *int64
}

type Store interface {
	// Users
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByReferralCode(ctx context.Context, code string) (*domain.User, error)
	CreateUser(ctx context.Context, u *domain.User) error
	UpdateUser(ctx context.Context, id int64, upd UserUpdate) (*domain.User, error)

	// Mining operations (at most one per user)
	GetMiningOperation(ctx context.Context, userID int64) (*domain.MiningOperation, error)
	CreateMiningOperation(ctx context.Context, op *domain.MiningOperation) error
	UpdateMiningOperation(ctx context.Context, id int64, upd MiningOperationUpdate) (*domain.MiningOperation, error)

	// Staking pools (static catalog)
	GetStakingPools(ctx context.Context) ([]domain.StakingPool, error)
	GetStakingPool(ctx context.Context, id int64) (*domain.StakingPool, error)
	CreateStakingPool(ctx context.Context, p *domain.StakingPool) error

	// User stakes
	GetUserStakes(ctx context.Context, userID int64) ([]domain.UserStake, error)
	GetUserStake(ctx context.Context, id int64) (*domain.UserStake, error)
	CreateUserStake(ctx context.Context, s *domain.UserStake) error
	UpdateUserStake(ctx context.Context, id int64, upd UserStakeUpdate) (*domain.UserStake, error)
	DeleteUserStake(ctx context.Context, id int64) error

	// Daily rewards (append-only)
	GetDailyRewards(ctx context.Context, userID int64) ([]domain.DailyReward, error)
	CreateDailyReward(ctx context.Context, r *domain.DailyReward) error

	// Store catalog and inventory
	GetStoreItems(ctx context.Context) ([]domain.StoreItem, error)
	GetStoreItem(ctx context.Context, id int64) (*domain.StoreItem, error)
	CreateStoreItem(ctx context.Context, it *domain.StoreItem) error
	GetUserInventory(ctx context.Context, userID int64) ([]domain.UserInventory, error)
	CreateUserInventory(ctx context.Context, inv *domain.UserInventory) error
	UpdateUserInventory(ctx context.Context, id int64, upd UserInventoryUpdate) (*domain.UserInventory, error)

	// Activities (append-only audit trail)
	GetUserActivities(ctx context.Context, userID int64, limit int) ([]domain.UserActivity, error)
	CreateUserActivity(ctx context.Context, a *domain.UserActivity) error

	// Referrals
	GetUserReferrals(ctx context.Context, userID int64) ([]domain.Referral, error)
	CreateReferral(ctx context.Context, r *domain.Referral) error
	UpdateReferral(ctx context.Context, id int64, upd ReferralUpdate) (*domain.Referral, error)
}
