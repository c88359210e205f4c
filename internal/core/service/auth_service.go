package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

const (
	defaultTokenTTL      = 30 * 24 * time.Hour
	defaultResetTokenTTL = 10 * time.Minute
	minPasswordLength    = 6
	resetTokenBytes      = 20
)

// AuthOptions configures credential issuing.
type AuthOptions struct {
	JWTSecret     string
	TokenTTL      time.Duration
	ResetTokenTTL time.Duration
	// PublicURL prefixes the reset link sent to users.
	PublicURL string
	// Now overrides the clock; nil means time.Now.
	Now func() time.Time
}

// AuthService implements registration, login, token verification and account
// self-service.
type AuthService struct {
	users   ports.UserRepository
	revoker ports.TokenRevoker
	resets  ports.ResetTokenStore
	notices ports.NoticeQueue
	opts    AuthOptions
	log     zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	revoker ports.TokenRevoker,
	resets ports.ResetTokenStore,
	notices ports.NoticeQueue,
	opts AuthOptions,
	log zerolog.Logger,
) *AuthService {
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = defaultTokenTTL
	}
	if opts.ResetTokenTTL <= 0 {
		opts.ResetTokenTTL = defaultResetTokenTTL
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.PublicURL = strings.TrimRight(opts.PublicURL, "/")
	return &AuthService{
		users:   users,
		revoker: revoker,
		resets:  resets,
		notices: notices,
		opts:    opts,
		log:     log,
	}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	in.Email = normalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Email == "" {
		return nil, fmt.Errorf("%w: name and email are required", domain.ErrValidation)
	}
	if len(in.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}
	if in.Role == "" {
		in.Role = domain.RoleUser
	}
	if !in.Role.SelfAssignable() {
		return nil, fmt.Errorf("%w: role %q cannot be chosen at registration", domain.ErrValidation, in.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.opts.Now().UTC()
	user, err := s.users.Create(ctx, &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		Role:         in.Role,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("role", user.Role.String()).Msg("user registered")
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issue(user)
}

// Verify validates a bearer credential and resolves its subject to an identity.
func (s *AuthService) Verify(ctx context.Context, rawToken string) (*domain.Identity, error) {
	if rawToken == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(rawToken, claims, func(*jwt.Token) (any, error) {
		return []byte(s.opts.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.opts.Now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", domain.ErrUnauthenticated)
	}

	if claims.ID != "" {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check token revocation: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("%w: token revoked", domain.ErrUnauthenticated)
		}
	}

	user, err := s.users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: unknown subject", domain.ErrUnauthenticated)
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}

	identity := user.Identity()
	identity.TokenID = claims.ID
	if claims.ExpiresAt != nil {
		identity.ExpiresAt = claims.ExpiresAt.Time
	}
	return &identity, nil
}

func (s *AuthService) Me(ctx context.Context, who domain.Identity) (*domain.User, error) {
	return s.users.FindByID(ctx, who.ID)
}

func (s *AuthService) UpdateDetails(ctx context.Context, who domain.Identity, patch ports.UserPatch) (*domain.User, error) {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrValidation)
		}
		patch.Name = &name
	}
	if patch.Email != nil {
		email := normalizeEmail(*patch.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email cannot be empty", domain.ErrValidation)
		}
		patch.Email = &email
	}
	if patch.Name == nil && patch.Email == nil {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}

	return s.users.UpdateDetails(ctx, who.ID, patch)
}

func (s *AuthService) UpdatePassword(ctx context.Context, who domain.Identity, current, next string) (*ports.AuthResult, error) {
	if len(next) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}

	user, err := s.users.FindByID(ctx, who.ID)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.setPassword(ctx, user.ID, next); err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", user.ID).Msg("password changed")
	return s.issue(user)
}

// ForgotPassword stores the digest of a one-time reset token and queues a
// notice carrying the raw token to the account holder.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}

	raw, err := randomToken()
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	digest := hashToken(raw)
	ctx = context.WithoutCancel(ctx)
	if err := s.resets.SaveResetToken(ctx, digest, user.ID, s.opts.ResetTokenTTL); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}

	notice := ports.PasswordResetNotice{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		ResetURL:  s.opts.PublicURL + "/api/v1/auth/resetpassword/" + raw,
		ExpiresAt: s.opts.Now().Add(s.opts.ResetTokenTTL).UTC(),
	}
	if err := s.notices.Enqueue(notice); err != nil {
		if _, cerr := s.resets.ConsumeResetToken(ctx, digest); cerr != nil {
			s.log.Warn().Err(cerr).Str("user_id", user.ID).Msg("failed to discard reset token")
		}
		return fmt.Errorf("queue reset notice: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset requested")
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, rawToken, password string) (*ports.AuthResult, error) {
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, minPasswordLength)
	}
	if rawToken == "" {
		return nil, domain.ErrInvalidResetToken
	}
	ctx = context.WithoutCancel(ctx)

	userID, err := s.resets.ConsumeResetToken(ctx, hashToken(rawToken))
	if err != nil {
		return nil, err
	}

	if err := s.setPassword(ctx, userID, password); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset")
	return s.issue(user)
}

// Logout revokes the credential the identity was resolved from until it expires.
func (s *AuthService) Logout(ctx context.Context, who domain.Identity) error {
	if who.TokenID == "" {
		return nil
	}
	until := who.ExpiresAt
	if until.IsZero() {
		until = s.opts.Now().Add(s.opts.TokenTTL)
	}
	if err := s.revoker.Revoke(ctx, who.TokenID, until); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.log.Info().Str("user_id", who.ID).Msg("user logged out")
	return nil
}

func (s *AuthService) setPassword(ctx context.Context, userID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.users.UpdatePassword(ctx, userID, string(hash))
}

func (s *AuthService) issue(user *domain.User) (*ports.AuthResult, error) {
	now := s.opts.Now()
	exp := now.Add(s.opts.TokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.opts.JWTSecret))
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	return &ports.AuthResult{Token: signed, ExpiresAt: exp, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func randomToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
