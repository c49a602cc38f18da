package postgres

import (
	"context"

	"dulpton/internal/domain"
	"dulpton/internal/storage"

	"github.com/jackc/pgx/v5"
)

const poolColumns = `id, name, description, apy_rate, lock_period_days, min_stake, is_active`
const stakeColumns = `id, user_id, pool_id, amount, started_at, end_at, last_reward_at`

func (s *Store) GetStakingPools(ctx context.Context) ([]domain.StakingPool, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+poolColumns+` FROM staking_pools ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pools []domain.StakingPool
	for rows.Next() {
		var p domain.StakingPool
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.ApyRate,
			&p.LockPeriodDays, &p.MinStake, &p.IsActive); err != nil {
			return nil, err
		}
		pools = append(pools, p)
	}
	return pools, rows.Err()
}

func (s *Store) GetStakingPool(ctx context.Context, id int64) (*domain.StakingPool, error) {
	var p domain.StakingPool
	err := s.db.QueryRow(ctx,
		`SELECT `+poolColumns+` FROM staking_pools WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.ApyRate, &p.LockPeriodDays, &p.MinStake, &p.IsActive)
	if err != nil {
		return nil, mapErr(err)
	}
	return &p, nil
}

func (s *Store) CreateStakingPool(ctx context.Context, p *domain.StakingPool) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO staking_pools (name, description, apy_rate, lock_period_days, min_stake, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		p.Name, p.Description, p.ApyRate, p.LockPeriodDays, p.MinStake, p.IsActive,
	).Scan(&p.ID)
}

func scanStake(row pgx.Row) (*domain.UserStake, error) {
	var st domain.UserStake
	if err := row.Scan(&st.ID, &st.UserID, &st.PoolID, &st.Amount,
		&st.StartedAt, &st.EndAt, &st.LastRewardAt); err != nil {
		return nil, mapErr(err)
	}
	return &st, nil
}

func (s *Store) GetUserStakes(ctx context.Context, userID int64) ([]domain.UserStake, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+stakeColumns+` FROM user_stakes WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stakes []domain.UserStake
	for rows.Next() {
		var st domain.UserStake
		if err := rows.Scan(&st.ID, &st.UserID, &st.PoolID, &st.Amount,
			&st.StartedAt, &st.EndAt, &st.LastRewardAt); err != nil {
			return nil, err
		}
		stakes = append(stakes, st)
	}
	return stakes, rows.Err()
}

func (s *Store) GetUserStake(ctx context.Context, id int64) (*domain.UserStake, error) {
	return scanStake(s.db.QueryRow(ctx,
		`SELECT `+stakeColumns+` FROM user_stakes WHERE id = $1`, id))
}

func (s *Store) CreateUserStake(ctx context.Context, st *domain.UserStake) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO user_stakes (user_id, pool_id, amount, end_at, last_reward_at, started_at)
		 VALUES ($1, $2, $3, $4, $5, COALESCE($6::timestamptz, NOW()))
		 RETURNING id, started_at`,
		st.UserID, st.PoolID, st.Amount, st.EndAt, st.LastRewardAt, tsOrNil(st.StartedAt),
	).Scan(&st.ID, &st.StartedAt)
}

func (s *Store) UpdateUserStake(ctx context.Context, id int64, upd storage.UserStakeUpdate) (*domain.UserStake, error) {
	var set setClause
	if upd.EndAt != nil {
		set.add("end_at", *upd.EndAt)
	}
	if upd.LastRewardAt != nil {
		set.add("last_reward_at", *upd.LastRewardAt)
	}
	if set.empty() {
		return s.GetUserStake(ctx, id)
	}

	clause, args := set.where(id)
	return scanStake(s.db.QueryRow(ctx,
		`UPDATE user_stakes `+clause+` RETURNING `+stakeColumns, args...))
}

func (s *Store) DeleteUserStake(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM user_stakes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
