package domain

import "time"

// Referral links a referrer to the user they brought in. PointsEarned is
// written once at creation and not accumulated afterwards; the signup bonus is
// credited straight to the referrer's balance instead.
type Referral struct {
	ID           int64     `db:"id" json:"id"`
	ReferrerID   int64     `db:"referrer_id" json:"referrer_id"`
	ReferredID   int64     `db:"referred_id" json:"referred_id"`
	PointsEarned int64     `db:"points_earned" json:"points_earned"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
