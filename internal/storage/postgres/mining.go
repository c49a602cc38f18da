package postgres

import (
	"context"

	"dulpton/internal/domain"
	"dulpton/internal/storage"
)

const miningColumns = `id, user_id, is_active, started_at, last_reward_at, session_earnings`

func scanMiningOperation(row interface{ Scan(...any) error }) (*domain.MiningOperation, error) {
	var op domain.MiningOperation
	if err := row.Scan(
		&op.ID,
		&op.UserID,
		&op.IsActive,
		&op.StartedAt,
		&op.LastRewardAt,
		&op.SessionEarnings,
	); err != nil {
		return nil, mapErr(err)
	}
	return &op, nil
}

func (s *Store) GetMiningOperation(ctx context.Context, userID int64) (*domain.MiningOperation, error) {
	return scanMiningOperation(s.db.QueryRow(ctx,
		`SELECT `+miningColumns+` FROM mining_operations WHERE user_id = $1`, userID))
}

func (s *Store) CreateMiningOperation(ctx context.Context, op *domain.MiningOperation) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO mining_operations (user_id, is_active, session_earnings, started_at)
		 VALUES ($1, $2, $3, COALESCE($4::timestamptz, NOW()))
		 RETURNING id, started_at`,
		op.UserID, op.IsActive, op.SessionEarnings, tsOrNil(op.StartedAt),
	).Scan(&op.ID, &op.StartedAt)
}

func (s *Store) UpdateMiningOperation(ctx context.Context, id int64, upd storage.MiningOperationUpdate) (*domain.MiningOperation, error) {
	var set setClause
	if upd.IsActive != nil {
		set.add("is_active", *upd.IsActive)
	}
	if upd.StartedAt != nil {
		set.add("started_at", *upd.StartedAt)
	}
	if upd.LastRewardAt != nil {
		set.add("last_reward_at", *upd.LastRewardAt)
	}
	if upd.SessionEarnings != nil {
		set.add("session_earnings", *upd.SessionEarnings)
	}
	if set.empty() {
		return scanMiningOperation(s.db.QueryRow(ctx,
			`SELECT `+miningColumns+` FROM mining_operations WHERE id = $1`, id))
	}

	clause, args := set.where(id)
	return scanMiningOperation(s.db.QueryRow(ctx,
		`UPDATE mining_operations `+clause+` RETURNING `+miningColumns, args...))
}
