package postgres

import (
	"context"

	"dulpton/internal/domain"
	"dulpton/internal/storage"
)

const userColumns = `id, username, email, password, points, mining_power, staked_points,
	referral_points, last_daily_reward_claim, last_mining_reward,
	daily_rewards_streak, referral_code, referred_by, created_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.Password,
		&u.Points,
		&u.MiningPower,
		&u.StakedPoints,
		&u.ReferralPoints,
		&u.LastDailyRewardClaim,
		&u.LastMiningReward,
		&u.DailyRewardsStreak,
		&u.ReferralCode,
		&u.ReferredBy,
		&u.CreatedAt,
	); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (s *Store) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (s *Store) GetUserByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	return scanUser(s.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE referral_code = $1`, code))
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO users (username, email, password, points, mining_power, staked_points,
		                    referral_points, daily_rewards_streak, referral_code, referred_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at`,
		u.Username, u.Email, u.Password, u.Points, u.MiningPower, u.StakedPoints,
		u.ReferralPoints, u.DailyRewardsStreak, u.ReferralCode, u.ReferredBy,
	).Scan(&u.ID, &u.CreatedAt)
}

func (s *Store) UpdateUser(ctx context.Context, id int64, upd storage.UserUpdate) (*domain.User, error) {
	var set setClause
	if upd.Points != nil {
		set.add("points", *upd.Points)
	}
	if upd.MiningPower != nil {
		set.add("mining_power", *upd.MiningPower)
	}
	if upd.StakedPoints != nil {
		set.add("staked_points", *upd.StakedPoints)
	}
	if upd.ReferralPoints != nil {
		set.add("referral_points", *upd.ReferralPoints)
	}
	if upd.LastDailyRewardClaim != nil {
		set.add("last_daily_reward_claim", *upd.LastDailyRewardClaim)
	}
	if upd.LastMiningReward != nil {
		set.add("last_mining_reward", *upd.LastMiningReward)
	}
	if upd.DailyRewardsStreak != nil {
		set.add("daily_rewards_streak", *upd.DailyRewardsStreak)
	}
	if upd.ReferredBy != nil {
		set.add("referred_by", *upd.ReferredBy)
	}
	if set.empty() {
		return s.GetUser(ctx, id)
	}

	clause, args := set.where(id)
	return scanUser(s.db.QueryRow(ctx,
		`UPDATE users `+clause+` RETURNING `+userColumns, args...))
}
