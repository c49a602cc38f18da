package service

import (
	"context"
	"testing"
	"time"

	"dulpton/internal/domain"
	"dulpton/internal/storage"
	"dulpton/internal/storage/memory"
)

// testClock is a settable clock for driving accrual in tests.
type testClock struct {
	t time.Time
}

func (c *testClock) Now() time.Time          { return c.t }
func (c *testClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestServices(t *testing.T) (*Services, storage.Store, *testClock) {
	t.Helper()
	store := memory.New()
	clock := &testClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	if err := storage.EnsureDefaults(context.Background(), store); err != nil {
		t.Fatalf("seed defaults: %v", err)
	}
	return New(store, WithClock(clock.Now)), store, clock
}

func mustRegister(t *testing.T, svc *Services, username string) *domain.User {
	t.Helper()
	u, err := svc.Account.Register(context.Background(), username, username+"@example.com", "password123", "")
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return u
}
