package domain

import "time"

// Activity types. Every balance change produced by the ledger appends exactly
// one activity row of one of these types.
const (
	ActivityMining   = "mining"
	ActivityStaking  = "staking"
	ActivityReferral = "referral"
	ActivityPurchase = "purchase"
	ActivityDaily    = "daily"
)

// UserActivity is the append-only audit record for a balance change.
// Amount is signed: positive credit, negative debit.
type UserActivity struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Type        string    `db:"type" json:"type"`
	Amount      int64     `db:"amount" json:"amount"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
