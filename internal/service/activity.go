package service

import (
	"context"

	"dulpton/internal/domain"
	"dulpton/internal/logger"
	"dulpton/internal/metrics"
	"dulpton/internal/storage"
)

// Notifier receives every appended activity, e.g. for the live ws feed.
type Notifier interface {
	Notify(a domain.UserActivity)
}

// ActivityLog appends the audit record that accompanies every balance change.
// A failed append is logged but does not roll back the balance change that
// already committed.
type ActivityLog struct {
	store  storage.Store
	notify Notifier
}

func NewActivityLog(store storage.Store, notify Notifier) *ActivityLog {
	return &ActivityLog{store: store, notify: notify}
}

func (l *ActivityLog) Append(ctx context.Context, userID int64, typ string, amount int64, description string) {
	a := domain.UserActivity{
		UserID:      userID,
		Type:        typ,
		Amount:      amount,
		Description: description,
	}

	if err := l.store.CreateUserActivity(ctx, &a); err != nil {
		logger.Error("failed to append activity", "error", err, "type", typ, "user_id", userID)
		return
	}

	if amount >= 0 {
		metrics.PointsCredited.WithLabelValues(typ).Add(float64(amount))
	} else {
		metrics.PointsDebited.WithLabelValues(typ).Add(float64(-amount))
	}

	if l.notify != nil {
		l.notify.Notify(a)
	}
}
