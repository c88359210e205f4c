package ports

import (
	"context"
	"time"
)

// PasswordResetNotice is sent to a user who asked to reset their password.
type PasswordResetNotice struct {
	UserID    string
	Email     string
	Name      string
	ResetURL  string
	ExpiresAt time.Time
}

// Notifier delivers notices to users.
type Notifier interface {
	NotifyPasswordReset(ctx context.Context, notice PasswordResetNotice) error
}

// NoticeQueue accepts notices for asynchronous delivery.
type NoticeQueue interface {
	Enqueue(notice PasswordResetNotice) error
}
