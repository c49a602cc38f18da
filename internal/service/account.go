package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"dulpton/internal/domain"
	"dulpton/internal/logger"
	"dulpton/internal/storage"
)

// ReferralBonus is credited to the referrer when a referred user registers.
const ReferralBonus int64 = 50

// AccountService handles registration, login, and account-scoped reads.
type AccountService struct {
	*core
}

// ReferralDetail is a referral row joined with the referred user's public
// fields for the referrals screen.
type ReferralDetail struct {
	domain.Referral
	ReferredUsername string `json:"referred_username"`
	ReferredPoints   int64  `json:"referred_points"`
}

// Register creates a user with starting balance and mining power. A referral
// code, when present and valid, links the accounts and credits the referrer;
// an unknown code is ignored rather than failing the signup.
func (s *AccountService) Register(ctx context.Context, username, email, password, referralCode string) (*domain.User, error) {
	if _, err := s.store.GetUserByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if err != storage.ErrNotFound {
		return nil, err
	}
	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if err != storage.ErrNotFound {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var referrer *domain.User
	if referralCode != "" {
		referrer, err = s.store.GetUserByReferralCode(ctx, referralCode)
		if err == storage.ErrNotFound {
			referrer = nil
		} else if err != nil {
			return nil, err
		}
	}

	code, err := s.newReferralCode(ctx)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		Password:     string(hash),
		Points:       domain.InitialPoints,
		MiningPower:  domain.BaseMiningPower,
		ReferralCode: code,
	}
	if referrer != nil {
		user.ReferredBy = &referrer.ID
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if referrer != nil {
		if err := s.creditReferrer(ctx, referrer.ID, user); err != nil {
			// The account exists at this point; losing the bonus is
			// recoverable, failing the signup is not.
			logger.Error("failed to credit referrer", "error", err, "referrer_id", referrer.ID, "user_id", user.ID)
		}
	}

	return user, nil
}

func (s *AccountService) creditReferrer(ctx context.Context, referrerID int64, referred *domain.User) error {
	unlock := s.locks.Lock(referrerID)
	defer unlock()

	if err := s.store.CreateReferral(ctx, &domain.Referral{
		ReferrerID: referrerID,
		ReferredID: referred.ID,
	}); err != nil {
		return err
	}

	referrer, err := s.store.GetUser(ctx, referrerID)
	if err != nil {
		return err
	}
	points := referrer.Points + ReferralBonus
	refPoints := referrer.ReferralPoints + ReferralBonus
	if _, err := s.store.UpdateUser(ctx, referrerID, storage.UserUpdate{
		Points:         &points,
		ReferralPoints: &refPoints,
	}); err != nil {
		return err
	}

	s.log.Append(ctx, referrerID, domain.ActivityReferral, ReferralBonus, fmt.Sprintf("Referral Bonus: %s joined", referred.Username))
	return nil
}

// newReferralCode generates a unique 8-hex-char code, retrying on the
// unlikely collision.
func (s *AccountService) newReferralCode(ctx context.Context) (string, error) {
	for i := 0; i < 5; i++ {
		buf := make([]byte, 4)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("generate referral code: %w", err)
		}
		code := hex.EncodeToString(buf)
		if _, err := s.store.GetUserByReferralCode(ctx, code); err == storage.ErrNotFound {
			return code, nil
		} else if err != nil {
			return "", err
		}
	}
	return "", fmt.Errorf("generate referral code: exhausted retries")
}

// Login verifies credentials and returns the account.
func (s *AccountService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err == storage.ErrNotFound {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AccountService) GetUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.store.GetUser(ctx, userID)
}

func (s *AccountService) Activities(ctx context.Context, userID int64, limit int) ([]domain.UserActivity, error) {
	return s.store.GetUserActivities(ctx, userID, limit)
}

// Referrals returns the user's referrals with the referred accounts' public
// details attached.
func (s *AccountService) Referrals(ctx context.Context, userID int64) ([]ReferralDetail, error) {
	refs, err := s.store.GetUserReferrals(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]ReferralDetail, 0, len(refs))
	for _, r := range refs {
		d := ReferralDetail{Referral: r}
		if referred, err := s.store.GetUser(ctx, r.ReferredID); err == nil {
			d.ReferredUsername = referred.Username
			d.ReferredPoints = referred.Points
		}
		details = append(details, d)
	}
	return details, nil
}

// LookupReferralCode resolves a code to the owning account, for signup-form
// validation.
func (s *AccountService) LookupReferralCode(ctx context.Context, code string) (*domain.User, error) {
	return s.store.GetUserByReferralCode(ctx, code)
}
