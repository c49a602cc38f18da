package service

import (
	"context"
	"fmt"
	"math"

	"dulpton/internal/domain"
	"dulpton/internal/storage"
)

// ShopService sells catalog items and applies their effects.
type ShopService struct {
	*core
}

// PurchaseResult is returned from a successful purchase.
type PurchaseResult struct {
	Inventory   *domain.UserInventory `json:"inventory"`
	TotalPoints int64                 `json:"total_points"`
	MiningPower int64                 `json:"mining_power"`
}

func (s *ShopService) Items(ctx context.Context) ([]domain.StoreItem, error) {
	return s.store.GetStoreItems(ctx)
}

// Inventory returns the user's purchases, lazily deactivating boosts whose
// expiry has passed.
func (s *ShopService) Inventory(ctx context.Context, userID int64) ([]domain.UserInventory, error) {
	entries, err := s.store.GetUserInventory(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	for i := range entries {
		e := &entries[i]
		if !e.IsActive || e.ExpiresAt == nil || now.Before(*e.ExpiresAt) {
			continue
		}
		inactive := false
		upd, err := s.store.UpdateUserInventory(ctx, e.ID, storage.UserInventoryUpdate{IsActive: &inactive})
		if err != nil {
			return nil, err
		}
		*e = *upd
	}
	return entries, nil
}

// Purchase debits the item price, records the inventory entry, and applies
// the item's effect. Only a mining power boost on a mining item mutates user
// stats; every other effect kind is inert beyond the inventory record.
func (s *ShopService) Purchase(ctx context.Context, userID, itemID int64) (*PurchaseResult, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	item, err := s.store.GetStoreItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Points < item.Price {
		return nil, ErrInsufficientBalance
	}

	now := s.now()
	effect := domain.ParseEffect(item.Effect)

	inv := &domain.UserInventory{
		UserID:      userID,
		ItemID:      itemID,
		PurchasedAt: now,
		IsActive:    true,
	}
	// Every boost carries an expiry; a zero duration expires immediately.
	if item.Type == domain.ItemTypeBoost {
		exp := now.Add(effect.Duration)
		inv.ExpiresAt = &exp
	}
	if err := s.store.CreateUserInventory(ctx, inv); err != nil {
		return nil, err
	}

	upd := storage.UserUpdate{}
	points := user.Points - item.Price
	upd.Points = &points

	power := user.MiningPower
	switch effect.Kind {
	case domain.EffectMiningPowerBoost:
		if item.Type == domain.ItemTypeMining {
			power += int64(math.Floor(float64(user.MiningPower) * float64(effect.Percent) / 100))
			upd.MiningPower = &power
		}
	case domain.EffectMiningEfficiencyBoost,
		domain.EffectStakingApyBoost,
		domain.EffectEarningsMultiplier,
		domain.EffectBadge,
		domain.EffectUnlockContent:
		// Recorded in inventory only; no stat change on purchase.
	default:
	}

	updatedUser, err := s.store.UpdateUser(ctx, userID, upd)
	if err != nil {
		return nil, err
	}

	s.log.Append(ctx, userID, domain.ActivityPurchase, -item.Price, fmt.Sprintf("Purchased %s", item.Name))

	return &PurchaseResult{
		Inventory:   inv,
		TotalPoints: updatedUser.Points,
		MiningPower: updatedUser.MiningPower,
	}, nil
}
