// Package memory is a mutex-guarded in-memory Store. It backs unit tests and
// the no-database dev mode; each instance is fully isolated.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"dulpton/internal/domain"
	"dulpton/internal/storage"
)

type Store struct {
	mu sync.RWMutex

	users       map[int64]*domain.User
	operations  map[int64]*domain.MiningOperation
	pools       map[int64]*domain.StakingPool
	stakes      map[int64]*domain.UserStake
	daily       map[int64]*domain.DailyReward
	items       map[int64]*domain.StoreItem
	inventory   map[int64]*domain.UserInventory
	activities  map[int64]*domain.UserActivity
	referrals   map[int64]*domain.Referral

	userSeq      int64
	operationSeq int64
	poolSeq      int64
	stakeSeq     int64
	dailySeq     int64
	itemSeq      int64
	inventorySeq int64
	activitySeq  int64
	referralSeq  int64
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:      make(map[int64]*domain.User),
		operations: make(map[int64]*domain.MiningOperation),
		pools:      make(map[int64]*domain.StakingPool),
		stakes:     make(map[int64]*domain.UserStake),
		daily:      make(map[int64]*domain.DailyReward),
		items:      make(map[int64]*domain.StoreItem),
		inventory:  make(map[int64]*domain.UserInventory),
		activities: make(map[int64]*domain.UserActivity),
		referrals:  make(map[int64]*domain.Referral),
	}
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func copyInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func copyUser(u *domain.User) *domain.User {
	c := *u
	c.LastDailyRewardClaim = copyTime(u.LastDailyRewardClaim)
	c.LastMiningReward = copyTime(u.LastMiningReward)
	c.ReferredBy = copyInt64(u.ReferredBy)
	return &c
}

func copyOperation(op *domain.MiningOperation) *domain.MiningOperation {
	c := *op
	c.LastRewardAt = copyTime(op.LastRewardAt)
	return &c
}

func copyStake(s *domain.UserStake) *domain.UserStake {
	c := *s
	c.EndAt = copyTime(s.EndAt)
	c.LastRewardAt = copyTime(s.LastRewardAt)
	return &c
}

func copyInventory(inv *domain.UserInventory) *domain.UserInventory {
	c := *inv
	c.ExpiresAt = copyTime(inv.ExpiresAt)
	return &c
}

// Users

func (s *Store) GetUser(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyUser(u), nil
}

func (s *Store) findUser(match func(*domain.User) bool) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if match(u) {
			return copyUser(u), nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	return s.findUser(func(u *domain.User) bool { return u.Username == username })
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	return s.findUser(func(u *domain.User) bool { return u.Email == email })
}

func (s *Store) GetUserByReferralCode(_ context.Context, code string) (*domain.User, error) {
	return s.findUser(func(u *domain.User) bool { return u.ReferralCode == code })
}

func (s *Store) CreateUser(_ context.Context, u *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userSeq++
	u.ID = s.userSeq
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	s.users[u.ID] = copyUser(u)
	return nil
}

func (s *Store) UpdateUser(_ context.Context, id int64, upd storage.UserUpdate) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if upd.Points != nil {
		u.Points = *upd.Points
	}
	if upd.MiningPower != nil {
		u.MiningPower = *upd.MiningPower
	}
	if upd.StakedPoints != nil {
		u.StakedPoints = *upd.StakedPoints
	}
	if upd.ReferralPoints != nil {
		u.ReferralPoints = *upd.ReferralPoints
	}
	if upd.LastDailyRewardClaim != nil {
		u.LastDailyRewardClaim = copyTime(upd.LastDailyRewardClaim)
	}
	if upd.LastMiningReward != nil {
		u.LastMiningReward = copyTime(upd.LastMiningReward)
	}
	if upd.DailyRewardsStreak != nil {
		u.DailyRewardsStreak = *upd.DailyRewardsStreak
	}
	if upd.ReferredBy != nil {
		u.ReferredBy = copyInt64(upd.ReferredBy)
	}
	return copyUser(u), nil
}

// Mining operations

func (s *Store) GetMiningOperation(_ context.Context, userID int64) (*domain.MiningOperation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, op := range s.operations {
		if op.UserID == userID {
			return copyOperation(op), nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) CreateMiningOperation(_ context.Context, op *domain.MiningOperation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.operationSeq++
	op.ID = s.operationSeq
	if op.StartedAt.IsZero() {
		op.StartedAt = time.Now()
	}
	s.operations[op.ID] = copyOperation(op)
	return nil
}

func (s *Store) UpdateMiningOperation(_ context.Context, id int64, upd storage.MiningOperationUpdate) (*domain.MiningOperation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, ok := s.operations[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if upd.IsActive != nil {
		op.IsActive = *upd.IsActive
	}
	if upd.StartedAt != nil {
		op.StartedAt = *upd.StartedAt
	}
	if upd.LastRewardAt != nil {
		op.LastRewardAt = copyTime(upd.LastRewardAt)
	}
	if upd.SessionEarnings != nil {
		op.SessionEarnings = *upd.SessionEarnings
	}
	return copyOperation(op), nil
}

// Staking pools

func (s *Store) GetStakingPools(_ context.Context) ([]domain.StakingPool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pools := make([]domain.StakingPool, 0, len(s.pools))
	for _, p := range s.pools {
		pools = append(pools, *p)
	}
	sort.Slice(pools, func(i, j int) bool { return pools[i].ID < pools[j].ID })
	return pools, nil
}

func (s *Store) GetStakingPool(_ context.Context, id int64) (*domain.StakingPool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pools[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (s *Store) CreateStakingPool(_ context.Context, p *domain.StakingPool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.poolSeq++
	p.ID = s.poolSeq
	c := *p
	s.pools[p.ID] = &c
	return nil
}

// User stakes

func (s *Store) GetUserStakes(_ context.Context, userID int64) ([]domain.UserStake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var stakes []domain.UserStake
	for _, st := range s.stakes {
		if st.UserID == userID {
			stakes = append(stakes, *copyStake(st))
		}
	}
	sort.Slice(stakes, func(i, j int) bool { return stakes[i].ID < stakes[j].ID })
	return stakes, nil
}

func (s *Store) GetUserStake(_ context.Context, id int64) (*domain.UserStake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.stakes[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return copyStake(st), nil
}

func (s *Store) CreateUserStake(_ context.Context, st *domain.UserStake) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stakeSeq++
	st.ID = s.stakeSeq
	if st.StartedAt.IsZero() {
		st.StartedAt = time.Now()
	}
	s.stakes[st.ID] = copyStake(st)
	return nil
}

func (s *Store) UpdateUserStake(_ context.Context, id int64, upd storage.UserStakeUpdate) (*domain.UserStake, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stakes[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if upd.EndAt != nil {
		st.EndAt = copyTime(upd.EndAt)
	}
	if upd.LastRewardAt != nil {
		st.LastRewardAt = copyTime(upd.LastRewardAt)
	}
	return copyStake(st), nil
}

func (s *Store) DeleteUserStake(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.stakes[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.stakes, id)
	return nil
}

// Daily rewards

func (s *Store) GetDailyRewards(_ context.Context, userID int64) ([]domain.DailyReward, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var rewards []domain.DailyReward
	for _, r := range s.daily {
		if r.UserID == userID {
			rewards = append(rewards, *r)
		}
	}
	sort.Slice(rewards, func(i, j int) bool { return rewards[i].ID < rewards[j].ID })
	return rewards, nil
}

func (s *Store) CreateDailyReward(_ context.Context, r *domain.DailyReward) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dailySeq++
	r.ID = s.dailySeq
	if r.ClaimedAt.IsZero() {
		r.ClaimedAt = time.Now()
	}
	c := *r
	s.daily[r.ID] = &c
	return nil
}

// Store catalog and inventory

func (s *Store) GetStoreItems(_ context.Context) ([]domain.StoreItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := make([]domain.StoreItem, 0, len(s.items))
	for _, it := range s.items {
		items = append(items, *it)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (s *Store) GetStoreItem(_ context.Context, id int64) (*domain.StoreItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	c := *it
	return &c, nil
}

func (s *Store) CreateStoreItem(_ context.Context, it *domain.StoreItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itemSeq++
	it.ID = s.itemSeq
	c := *it
	s.items[it.ID] = &c
	return nil
}

func (s *Store) GetUserInventory(_ context.Context, userID int64) ([]domain.UserInventory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var entries []domain.UserInventory
	for _, inv := range s.inventory {
		if inv.UserID == userID {
			entries = append(entries, *copyInventory(inv))
		}
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (s *Store) CreateUserInventory(_ context.Context, inv *domain.UserInventory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventorySeq++
	inv.ID = s.inventorySeq
	if inv.PurchasedAt.IsZero() {
		inv.PurchasedAt = time.Now()
	}
	s.inventory[inv.ID] = copyInventory(inv)
	return nil
}

func (s *Store) UpdateUserInventory(_ context.Context, id int64, upd storage.UserInventoryUpdate) (*domain.UserInventory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.inventory[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if upd.IsActive != nil {
		inv.IsActive = *upd.IsActive
	}
	if upd.ExpiresAt != nil {
		inv.ExpiresAt = copyTime(upd.ExpiresAt)
	}
	return copyInventory(inv), nil
}

// Activities

func (s *Store) GetUserActivities(_ context.Context, userID int64, limit int) ([]domain.UserActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var acts []domain.UserActivity
	for _, a := range s.activities {
		if a.UserID == userID {
			acts = append(acts, *a)
		}
	}
	// newest first, like the SQL implementation
	sort.Slice(acts, func(i, j int) bool { return acts[i].ID > acts[j].ID })
	if limit > 0 && len(acts) > limit {
		acts = acts[:limit]
	}
	return acts, nil
}

func (s *Store) CreateUserActivity(_ context.Context, a *domain.UserActivity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activitySeq++
	a.ID = s.activitySeq
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	c := *a
	s.activities[a.ID] = &c
	return nil
}

// Referrals

func (s *Store) GetUserReferrals(_ context.Context, userID int64) ([]domain.Referral, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var refs []domain.Referral
	for _, r := range s.referrals {
		if r.ReferrerID == userID {
			refs = append(refs, *r)
		}
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs, nil
}

func (s *Store) CreateReferral(_ context.Context, r *domain.Referral) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.referralSeq++
	r.ID = s.referralSeq
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	c := *r
	s.referrals[r.ID] = &c
	return nil
}

func (s *Store) UpdateReferral(_ context.Context, id int64, upd storage.ReferralUpdate) (*domain.Referral, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.referrals[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if upd.PointsEarned != nil {
		r.PointsEarned = *upd.PointsEarned
	}
	c := *r
	return &c, nil
}
