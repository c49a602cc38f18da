package service

import (
	"context"
	"testing"

	"dulpton/internal/domain"
)

func TestRegisterDefaults(t *testing.T) {
	svc, _, _ := newTestServices(t)

	user := mustRegister(t, svc, "alice")
	if user.Points != domain.InitialPoints {
		t.Errorf("points = %d, want %d", user.Points, domain.InitialPoints)
	}
	if user.MiningPower != domain.BaseMiningPower {
		t.Errorf("mining power = %d, want %d", user.MiningPower, domain.BaseMiningPower)
	}
	if len(user.ReferralCode) != 8 {
		t.Errorf("referral code %q, want 8 hex chars", user.ReferralCode)
	}
	if user.ReferredBy != nil {
		t.Errorf("referred_by should be nil without a code")
	}
	if user.Password == "password123" {
		t.Errorf("password stored in plaintext")
	}
}

func TestRegisterUniqueness(t *testing.T) {
	svc, _, _ := newTestServices(t)
	mustRegister(t, svc, "alice")

	if _, err := svc.Account.Register(context.Background(), "alice", "other@example.com", "pw", ""); err != ErrUsernameTaken {
		t.Errorf("err = %v, want ErrUsernameTaken", err)
	}
	if _, err := svc.Account.Register(context.Background(), "bob", "alice@example.com", "pw", ""); err != ErrEmailTaken {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterWithReferral(t *testing.T) {
	svc, _, _ := newTestServices(t)
	referrer := mustRegister(t, svc, "referrer")

	referred, err := svc.Account.Register(context.Background(), "referred", "referred@example.com", "pw", referrer.ReferralCode)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if referred.ReferredBy == nil || *referred.ReferredBy != referrer.ID {
		t.Errorf("referred_by = %v, want %d", referred.ReferredBy, referrer.ID)
	}
	// Referred accounts get the standard starting balance, no extra.
	if referred.Points != domain.InitialPoints {
		t.Errorf("referred points = %d, want %d", referred.Points, domain.InitialPoints)
	}

	after, err := svc.Account.GetUser(context.Background(), referrer.ID)
	if err != nil {
		t.Fatalf("get referrer: %v", err)
	}
	if after.Points != domain.InitialPoints+ReferralBonus {
		t.Errorf("referrer points = %d, want %d", after.Points, domain.InitialPoints+ReferralBonus)
	}
	if after.ReferralPoints != ReferralBonus {
		t.Errorf("referral points = %d, want %d", after.ReferralPoints, ReferralBonus)
	}

	refs, err := svc.Account.Referrals(context.Background(), referrer.ID)
	if err != nil {
		t.Fatalf("referrals: %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("referrals = %d, want 1", len(refs))
	}
	if refs[0].ReferredID != referred.ID || refs[0].ReferredUsername != "referred" {
		t.Errorf("referral detail = %+v", refs[0])
	}
	// The bonus lives on the balance; the link row stays at zero.
	if refs[0].PointsEarned != 0 {
		t.Errorf("points_earned = %d, want 0", refs[0].PointsEarned)
	}
}

func TestRegisterUnknownReferralCodeIgnored(t *testing.T) {
	svc, _, _ := newTestServices(t)

	user, err := svc.Account.Register(context.Background(), "solo", "solo@example.com", "pw", "deadbeef")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ReferredBy != nil {
		t.Errorf("referred_by = %v, want nil for unknown code", user.ReferredBy)
	}
}

func TestLogin(t *testing.T) {
	svc, _, _ := newTestServices(t)
	mustRegister(t, svc, "alice")

	user, err := svc.Account.Login(context.Background(), "alice", "password123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("username = %q", user.Username)
	}

	if _, err := svc.Account.Login(context.Background(), "alice", "wrong"); err != ErrInvalidCredentials {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Account.Login(context.Background(), "nobody", "password123"); err != ErrInvalidCredentials {
		t.Errorf("unknown user: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestActivitiesRecorded(t *testing.T) {
	svc, _, _ := newTestServices(t)
	user := mustRegister(t, svc, "alice")

	if _, err := svc.Daily.Claim(context.Background(), user.ID); err != nil {
		t.Fatalf("claim: %v", err)
	}

	acts, err := svc.Account.Activities(context.Background(), user.ID, 10)
	if err != nil {
		t.Fatalf("activities: %v", err)
	}
	if len(acts) != 1 {
		t.Fatalf("activities = %d, want 1", len(acts))
	}
	a := acts[0]
	if a.Type != domain.ActivityDaily || a.Amount != 50 || a.Description != "Day 1 Reward" {
		t.Errorf("activity = %+v", a)
	}
}
