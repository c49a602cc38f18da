package postgres

import (
	"context"

	"dulpton/internal/domain"
)

func (s *Store) GetUserActivities(ctx context.Context, userID int64, limit int) ([]domain.UserActivity, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(ctx,
		`SELECT id, user_id, type, amount, description, created_at
		 FROM user_activities
		 WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC
		 LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var acts []domain.UserActivity
	for rows.Next() {
		var a domain.UserActivity
		if err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.Amount, &a.Description, &a.CreatedAt); err != nil {
			return nil, err
		}
		acts = append(acts, a)
	}
	return acts, rows.Err()
}

func (s *Store) CreateUserActivity(ctx context.Context, a *domain.UserActivity) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO user_activities (user_id, type, amount, description)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		a.UserID, a.Type, a.Amount, a.Description,
	).Scan(&a.ID, &a.CreatedAt)
}
