// Package notify delivers user notices.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

// LogNotifier writes notices to the structured log instead of sending them.
// It stands in for a mail transport in development.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

func (n *LogNotifier) NotifyPasswordReset(_ context.Context, notice ports.PasswordResetNotice) error {
	n.log.Info().
		Str("user_id", notice.UserID).
		Str("email", notice.Email).
		Str("reset_url", notice.ResetURL).
		Time("expires_at", notice.ExpiresAt).
		Msg("password reset requested")
	return nil
}
