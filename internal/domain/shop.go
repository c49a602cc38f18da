package domain

import (
	"encoding/json"
	"time"
)

// ItemType categorizes a store item.
type ItemType string

const (
	ItemTypeMining   ItemType = "mining"
	ItemTypeStaking  ItemType = "staking"
	ItemTypeProfile  ItemType = "profile"
	ItemTypeLearning ItemType = "learning"
	ItemTypeBoost    ItemType = "boost"
)

// StoreItem is a static catalog entry. Effect is the raw persisted payload;
// decode it with ParseEffect before applying.
type StoreItem struct {
	ID          int64           `db:"id" json:"id"`
	Name        string          `db:"name" json:"name"`
	Description string          `db:"description" json:"description"`
	Price       int64           `db:"price" json:"price"`
	Type        ItemType        `db:"type" json:"type"`
	Effect      json.RawMessage `db:"effect" json:"effect"`
	ImgURL      string          `db:"img_url" json:"img_url,omitempty"`
}

// UserInventory is a purchased item. ExpiresAt is set only for boost items.
type UserInventory struct {
	ID          int64      `db:"id" json:"id"`
	UserID      int64      `db:"user_id" json:"user_id"`
	ItemID      int64      `db:"item_id" json:"item_id"`
	PurchasedAt time.Time  `db:"purchased_at" json:"purchased_at"`
	IsActive    bool       `db:"is_active" json:"is_active"`
	ExpiresAt   *time.Time `db:"expires_at" json:"expires_at,omitempty"`
}

// EffectKind discriminates the decoded effect union.
type EffectKind string

const (
	EffectMiningPowerBoost      EffectKind = "mining_power_boost"
	EffectMiningEfficiencyBoost EffectKind = "mining_efficiency_boost"
	EffectStakingApyBoost       EffectKind = "staking_apy_boost"
	EffectEarningsMultiplier    EffectKind = "earnings_multiplier"
	EffectBadge                 EffectKind = "badge"
	EffectUnlockContent         EffectKind = "unlock_content"
	EffectNone                  EffectKind = "none"
)

// Effect is the decoded form of a store item's effect payload. Only the
// fields matching Kind are meaningful. Of all kinds, only a mining power
// boost on a mining-type item mutates user stats; the rest are recorded in
// inventory for other subsystems to interpret.
type Effect struct {
	Kind       EffectKind
	Percent    int64         // mining power/efficiency boost, staking APY boost
	Multiplier int64         // earnings multiplier factor
	Duration   time.Duration // boost lifetime
	Badge      string
	Content    string
}

// effectPayload mirrors the persisted JSON shapes, one optional key per kind.
type effectPayload struct {
	MiningPowerBoost      *int64 `json:"miningPowerBoost,omitempty"`
	MiningEfficiencyBoost *int64 `json:"miningEfficiencyBoost,omitempty"`
	StakingApyBoost       *int64 `json:"stakingApyBoost,omitempty"`
	EarningsMultiplier    *int64 `json:"earningsMultiplier,omitempty"`
	DurationMs            *int64 `json:"duration,omitempty"`
	Badge                 string `json:"badge,omitempty"`
	UnlockContent         string `json:"unlockContent,omitempty"`
}

// ParseEffect decodes a persisted effect payload into the tagged union.
// Unknown or empty payloads decode to EffectNone rather than an error, since
// the catalog is admin data and a bad row must not break purchases.
func ParseEffect(raw json.RawMessage) Effect {
	var p effectPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return Effect{Kind: EffectNone}
	}

	switch {
	case p.MiningPowerBoost != nil:
		return Effect{Kind: EffectMiningPowerBoost, Percent: *p.MiningPowerBoost}
	case p.MiningEfficiencyBoost != nil:
		return Effect{Kind: EffectMiningEfficiencyBoost, Percent: *p.MiningEfficiencyBoost}
	case p.StakingApyBoost != nil:
		return Effect{Kind: EffectStakingApyBoost, Percent: *p.StakingApyBoost}
	case p.EarningsMultiplier != nil:
		e := Effect{Kind: EffectEarningsMultiplier, Multiplier: *p.EarningsMultiplier}
		if p.DurationMs != nil {
			e.Duration = time.Duration(*p.DurationMs) * time.Millisecond
		}
		return e
	case p.Badge != "":
		return Effect{Kind: EffectBadge, Badge: p.Badge}
	case p.UnlockContent != "":
		return Effect{Kind: EffectUnlockContent, Content: p.UnlockContent}
	}
	return Effect{Kind: EffectNone}
}
