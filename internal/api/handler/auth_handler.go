package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/devcamper/bootcamp-directory/internal/api/metrics"
	"github.com/devcamper/bootcamp-directory/internal/api/middleware"
	"github.com/devcamper/bootcamp-directory/internal/core/domain"
	"github.com/devcamper/bootcamp-directory/internal/core/ports"
)

// CookieOptions controls the token cookie set alongside issued credentials.
type CookieOptions struct {
	TTL    time.Duration
	Secure bool
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieOptions
}

func NewAuthHandler(authService ports.AuthService, cookie CookieOptions) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	metrics.ResourceWritesTotal.WithLabelValues("user", "create").Inc()
	return h.sendToken(c, res)
}

// Login authenticates a user and returns a JWT.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return h.sendToken(c, res)
}

// Me returns the logged in user.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), who)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{Success: true, Data: user})
}

// UpdateDetails changes the caller's name and email.
//
// @Summary      Update user details
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateDetailsRequest  true  "Fields to change"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/updatedetails [put]
func (h *AuthHandler) UpdateDetails(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req updateDetailsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.UpdateDetails(c.Request().Context(), who, ports.UserPatch{Name: req.Name, Email: req.Email})
	if err != nil {
		return err
	}
	metrics.ResourceWritesTotal.WithLabelValues("user", "update").Inc()
	return c.JSON(http.StatusOK, userResponse{Success: true, Data: user})
}

// UpdatePassword changes the caller's password and issues a fresh credential.
//
// @Summary      Update password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePasswordRequest  true  "Current and new password"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/updatepassword [put]
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return err
	}
	var req updatePasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.UpdatePassword(c.Request().Context(), who, req.CurrentPassword, req.NewPassword)
	if err != nil {
		return err
	}
	metrics.ResourceWritesTotal.WithLabelValues("user", "update").Inc()
	return h.sendToken(c, res)
}

// ForgotPassword starts a password reset for the account with the given email.
//
// @Summary      Forgot password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      forgotPasswordRequest  true  "Account email"
// @Success      200   {object}  response
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /auth/forgotpassword [post]
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.authService.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, response{Success: true, Message: "reset link sent"})
}

// ResetPassword sets a new password using a reset token.
//
// @Summary      Reset password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        resettoken  path      string                true  "Reset token"
// @Param        body        body      resetPasswordRequest  true  "New password"
// @Success      200         {object}  tokenResponse
// @Failure      400         {object}  errorResponse
// @Router       /auth/resetpassword/{resettoken} [put]
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	res, err := h.authService.ResetPassword(c.Request().Context(), c.Param("resettoken"), req.Password)
	if err != nil {
		return err
	}
	metrics.ResourceWritesTotal.WithLabelValues("user", "update").Inc()
	return h.sendToken(c, res)
}

// Logout revokes the caller's credential and clears the token cookie.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response
// @Failure      401  {object}  errorResponse
// @Router       /auth/logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	who, err := callerIdentity(c)
	if err != nil {
		return err
	}

	if err := h.authService.Logout(c.Request().Context(), who); err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, response{Success: true, Data: struct{}{}})
}

func (h *AuthHandler) sendToken(c echo.Context, res *ports.AuthResult) error {
	expires := time.Now().Add(h.cookie.TTL)
	if h.cookie.TTL <= 0 || res.ExpiresAt.Before(expires) {
		expires = res.ExpiresAt
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    res.Token,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, tokenResponse{Success: true, Token: res.Token, ExpiresAt: res.ExpiresAt})
}
