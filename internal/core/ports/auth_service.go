package ports

import (
	"context"
	"time"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
)

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role
}

// AuthResult is returned by every operation that issues a credential.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// TokenVerifier resolves a raw credential into the caller identity. It fails
// with domain.ErrUnauthenticated for missing, malformed, expired, revoked or
// orphaned credentials.
type TokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*domain.Identity, error)
}

// AuthService covers registration, login and self-service account management.
type AuthService interface {
	TokenVerifier

	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, who domain.Identity) (*domain.User, error)
	UpdateDetails(ctx context.Context, who domain.Identity, patch UserPatch) (*domain.User, error)
	UpdatePassword(ctx context.Context, who domain.Identity, current, next string) (*AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, rawToken, password string) (*AuthResult, error)
	Logout(ctx context.Context, who domain.Identity) error
}
