// Package service is the ledger layer: it orchestrates accrual math from the
// engine package into balance mutations through the entity store, appending
// an audit activity for every change.
package service

import (
	"time"

	"dulpton/internal/storage"
)

// Clock supplies the current time; injected so accrual is testable.
type Clock func() time.Time

type core struct {
	store  storage.Store
	log    *ActivityLog
	locks  *UserLocks
	now    Clock
	notify Notifier
}

type Services struct {
	Mining  *MiningService
	Staking *StakingService
	Daily   *DailyService
	Shop    *ShopService
	Account *AccountService
}

type Option func(*core)

func WithClock(now Clock) Option {
	return func(c *core) { c.now = now }
}

func WithNotifier(n Notifier) Option {
	return func(c *core) { c.notify = n }
}

func New(store storage.Store, opts ...Option) *Services {
	c := &core{
		store: store,
		locks: NewUserLocks(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = NewActivityLog(store, c.notify)

	return &Services{
		Mining:  &MiningService{core: c},
		Staking: &StakingService{core: c},
		Daily:   &DailyService{core: c},
		Shop:    &ShopService{core: c},
		Account: &AccountService{core: c},
	}
}
