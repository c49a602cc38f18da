package postgres

import (
	"context"

	"dulpton/internal/domain"
)

func (s *Store) GetDailyRewards(ctx context.Context, userID int64) ([]domain.DailyReward, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, day, amount, claimed_at
		 FROM daily_rewards
		 WHERE user_id = $1
		 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rewards []domain.DailyReward
	for rows.Next() {
		var r domain.DailyReward
		if err := rows.Scan(&r.ID, &r.UserID, &r.Day, &r.Amount, &r.ClaimedAt); err != nil {
			return nil, err
		}
		rewards = append(rewards, r)
	}
	return rewards, rows.Err()
}

func (s *Store) CreateDailyReward(ctx context.Context, r *domain.DailyReward) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO daily_rewards (user_id, day, amount, claimed_at)
		 VALUES ($1, $2, $3, COALESCE($4::timestamptz, NOW()))
		 RETURNING id, claimed_at`,
		r.UserID, r.Day, r.Amount, tsOrNil(r.ClaimedAt),
	).Scan(&r.ID, &r.ClaimedAt)
}
