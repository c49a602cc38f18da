package postgres

import (
	"context"

	"dulpton/internal/domain"
	"dulpton/internal/storage"
)

func (s *Store) GetUserReferrals(ctx context.Context, userID int64) ([]domain.Referral, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, referrer_id, referred_id, points_earned, created_at
		 FROM referrals
		 WHERE referrer_id = $1
		 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []domain.Referral
	for rows.Next() {
		var r domain.Referral
		if err := rows.Scan(&r.ID, &r.ReferrerID, &r.ReferredID, &r.PointsEarned, &r.CreatedAt); err != nil {
			return nil, err
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

func (s *Store) CreateReferral(ctx context.Context, r *domain.Referral) error {
	return s.db.QueryRow(ctx,
		`INSERT INTO referrals (referrer_id, referred_id, points_earned)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		r.ReferrerID, r.ReferredID, r.PointsEarned,
	).Scan(&r.ID, &r.CreatedAt)
}

func (s *Store) UpdateReferral(ctx context.Context, id int64, upd storage.ReferralUpdate) (*domain.Referral, error) {
	var set setClause
	if upd.PointsEarned != nil {
		set.add("points_earned", *upd.PointsEarned)
	}

	var r domain.Referral
	query := `SELECT id, referrer_id, referred_id, points_earned, created_at FROM referrals WHERE id = $1`
	args := []any{id}
	if !set.empty() {
		var clause string
		clause, args = set.where(id)
		query = `UPDATE referrals ` + clause +
			` RETURNING id, referrer_id, referred_id, points_earned, created_at`
	}
	err := s.db.QueryRow(ctx, query, args...).Scan(&r.ID, &r.ReferrerID, &r.ReferredID, &r.PointsEarned, &r.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &r, nil
}
