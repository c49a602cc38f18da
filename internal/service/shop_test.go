package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"dulpton/internal/domain"
)

func TestPurchaseMiningBoost(t *testing.T) {
	svc, store, _ := newTestServices(t)
	user := mustRegister(t, svc, "shopper")
	fundUser(t, store, user.ID, 1000)

	// item 3: Advanced Processor, 250 points, +30% mining power
	res, err := svc.Shop.Purchase(context.Background(), user.ID, 3)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if res.TotalPoints != 750 {
		t.Errorf("points = %d, want 750", res.TotalPoints)
	}
	// 50 + floor(50*30/100) = 65
	if res.MiningPower != 65 {
		t.Errorf("mining power = %d, want 65", res.MiningPower)
	}
	if res.Inventory.ExpiresAt != nil {
		t.Errorf("mining upgrade should not expire, got %v", res.Inventory.ExpiresAt)
	}
	if !res.Inventory.IsActive {
		t.Errorf("inventory entry should be active")
	}
}

func TestPurchaseInsufficientBalance(t *testing.T) {
	svc, _, _ := newTestServices(t)
	user := mustRegister(t, svc, "shopper")

	// item 2: Advanced Miner, 1200 points; fresh accounts hold 100
	if _, err := svc.Shop.Purchase(context.Background(), user.ID, 2); err != ErrInsufficientBalance {
		t.Errorf("err = %v, want ErrInsufficientBalance", err)
	}
}

func TestPurchaseBoostSetsExpiry(t *testing.T) {
	svc, store, clock := newTestServices(t)
	user := mustRegister(t, svc, "shopper")
	fundUser(t, store, user.ID, 1000)

	// item 7: 2X Earnings Booster, 24h duration
	res, err := svc.Shop.Purchase(context.Background(), user.ID, 7)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if res.Inventory.ExpiresAt == nil {
		t.Fatalf("boost should carry an expiry")
	}
	want := clock.Now().Add(24 * time.Hour)
	if !res.Inventory.ExpiresAt.Equal(want) {
		t.Errorf("expires_at = %v, want %v", res.Inventory.ExpiresAt, want)
	}
	// Multiplier is inventory-only; stats are untouched.
	if res.MiningPower != 50 {
		t.Errorf("mining power = %d, want 50", res.MiningPower)
	}
}

func TestPurchaseBoostWithoutDurationExpiresImmediately(t *testing.T) {
	svc, store, clock := newTestServices(t)
	user := mustRegister(t, svc, "shopper")
	fundUser(t, store, user.ID, 1000)

	item := &domain.StoreItem{
		Name:   "Flash Booster",
		Price:  100,
		Type:   domain.ItemTypeBoost,
		Effect: json.RawMessage(`{"earningsMultiplier": 2}`),
	}
	if err := store.CreateStoreItem(context.Background(), item); err != nil {
		t.Fatalf("create item: %v", err)
	}

	res, err := svc.Shop.Purchase(context.Background(), user.ID, item.ID)
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if res.Inventory.ExpiresAt == nil {
		t.Fatalf("boost should carry an expiry even without a duration")
	}
	if !res.Inventory.ExpiresAt.Equal(clock.Now()) {
		t.Errorf("expires_at = %v, want purchase time %v", res.Inventory.ExpiresAt, clock.Now())
	}
}

func TestPurchaseInertEffects(t *testing.T) {
	svc, store, _ := newTestServices(t)
	user := mustRegister(t, svc, "shopper")
	fundUser(t, store, user.ID, 2000)

	// Badge, learning content, and staking APY items only debit points and
	// record inventory.
	for _, itemID := range []int64{4, 5, 6} {
		before, err := svc.Account.GetUser(context.Background(), user.ID)
		if err != nil {
			t.Fatalf("get user: %v", err)
		}
		item, err := store.GetStoreItem(context.Background(), itemID)
		if err != nil {
			t.Fatalf("get item %d: %v", itemID, err)
		}
		res, err := svc.Shop.Purchase(context.Background(), user.ID, itemID)
		if err != nil {
			t.Fatalf("purchase %s: %v", item.Name, err)
		}
		if res.TotalPoints != before.Points-item.Price {
			t.Errorf("%s: points = %d, want %d", item.Name, res.TotalPoints, before.Points-item.Price)
		}
		if res.MiningPower != before.MiningPower {
			t.Errorf("%s: mining power changed to %d", item.Name, res.MiningPower)
		}
	}

	inv, err := svc.Shop.Inventory(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("inventory: %v", err)
	}
	if len(inv) != 3 {
		t.Errorf("inventory size = %d, want 3", len(inv))
	}
}

func TestInventoryExpiresBoosts(t *testing.T) {
	svc, store, clock := newTestServices(t)
	user := mustRegister(t, svc, "shopper")
	fundUser(t, store, user.ID, 1000)

	if _, err := svc.Shop.Purchase(context.Background(), user.ID, 7); err != nil {
		t.Fatalf("purchase: %v", err)
	}

	inv, err := svc.Shop.Inventory(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("inventory: %v", err)
	}
	if len(inv) != 1 || !inv[0].IsActive {
		t.Fatalf("fresh boost should be active: %+v", inv)
	}

	clock.Advance(24*time.Hour + time.Second)
	inv, err = svc.Shop.Inventory(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("inventory after expiry: %v", err)
	}
	if len(inv) != 1 || inv[0].IsActive {
		t.Errorf("expired boost should be inactive: %+v", inv)
	}
}
