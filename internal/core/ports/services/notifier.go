package services

import (
	"context"

	"github.com/familypoints/familypoints_app/internal/core/domain"
)

// Notifier delivers best-effort reminders to users. Callers fire it and
// ignore failures: a notification error must never roll back or block a
// ledger mutation.
type Notifier interface {
	// NotifyChildOfPendingTask tells a child that something awaits action,
	// e.g. a submitted reward request waiting for parent approval.
	NotifyChildOfPendingTask(ctx context.Context, child domain.User, description string) error
}
