package service

import (
	"errors"
	"fmt"
	"time"
)

// Request-scoped failures. Every precondition is checked before any write, so
// a returned error means no mutation happened.
var (
	ErrOperationNotActive  = errors.New("mining operation is not active")
	ErrNoReward            = errors.New("no rewards available yet")
	ErrPoolInactive        = errors.New("staking pool is not active")
	ErrInsufficientBalance = errors.New("insufficient points")
	ErrAlreadyClaimed      = errors.New("daily reward already claimed today")
	ErrForbidden           = errors.New("not authorized for this resource")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrEmailTaken          = errors.New("email already exists")
	ErrInvalidCredentials  = errors.New("invalid username or password")
)

// BelowMinimumError rejects a stake under the pool minimum.
type BelowMinimumError struct {
	MinStake int64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("minimum stake amount is %d", e.MinStake)
}

// LockPeriodActiveError rejects an unstake before the lock period ends. The
// unlock instant is carried for the client.
type LockPeriodActiveError struct {
	UnlocksAt time.Time
}

func (e *LockPeriodActiveError) Error() string {
	return fmt.Sprintf("cannot unstake until lock period ends on %s", e.UnlocksAt.Format("2006-01-02"))
}
