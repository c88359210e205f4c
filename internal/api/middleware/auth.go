package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-directory/internal/api/metrics"
	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

// TokenCookie is the cookie that carries the credential for browser clients.
const TokenCookie = "token"

const identityKey = "identity"

var (
	errMissingCredential   = errors.New("missing credential")
	errMalformedCredential = errors.New("malformed authorization header")
)

// Protect resolves the caller identity and binds it to the request context.
// The credential is read from "Authorization: Bearer <token>", or from the
// token cookie when the header is absent. Requests without a valid credential
// are rejected with 401 and never reach next.
//
// Protect is idempotent: when an identity is already bound the verifier is not
// consulted again.
func Protect(verifier ports.TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := IdentityFrom(c); ok {
				return next(c)
			}

			raw, err := credentialFrom(c.Request())
			if err != nil {
				reason := "missing"
				if errors.Is(err, errMalformedCredential) {
					reason = "malformed"
				}
				metrics.AuthRejectionsTotal.WithLabelValues(reason).Inc()
				return unauthenticated(err)
			}

			who, err := verifier.Verify(c.Request().Context(), raw)
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					metrics.AuthRejectionsTotal.WithLabelValues("invalid").Inc()
					return unauthenticated(err)
				}
				return err
			}

			c.Set(identityKey, *who)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity bound by Protect.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	who, ok := c.Get(identityKey).(domain.Identity)
	if !ok || who.ID == "" {
		return domain.Identity{}, false
	}
	return who, true
}

func credentialFrom(r *http.Request) (string, error) {
	if header := r.Header.Get(echo.HeaderAuthorization); header != "" {
		scheme, token, found := strings.Cut(header, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
			return "", errMalformedCredential
		}
		return token, nil
	}

	if cookie, err := r.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}
	return "", errMissingCredential
}

func unauthenticated(cause error) error {
	return echo.NewHTTPError(http.StatusUnauthorized, domain.ErrUnauthenticated.Error()).SetInternal(cause)
}
