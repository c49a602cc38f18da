package domain

import "time"

// DailyReward is an append-only record of one successful daily claim.
// Day is the streak position (1-7) at claim time.
type DailyReward struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Day       int       `db:"day" json:"day"`
	Amount    int64     `db:"amount" json:"amount"`
	ClaimedAt time.Time `db:"claimed_at" json:"claimed_at"`
}
