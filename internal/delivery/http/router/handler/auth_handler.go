// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"time"

	"blush/config"
	"blush/internal/delivery/http/middleware"
	"blush/internal/delivery/http/response"
	"blush/internal/domain/entity"
	domainerrors "blush/internal/domain/errors"
	"blush/internal/domain/service"
	"blush/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RefreshCookieName is the cookie carrying the long-lived refresh token. The
// cookie is HttpOnly so browser scripts can never read it; the access token is
// the only credential handed to the client application itself.
const RefreshCookieName = "refreshToken"

// AuthHandler holds dependencies for the account and session endpoints.
type AuthHandler struct {
	uc           usecase.UserUsecase
	tokenSvc     service.TokenService
	secureCookie bool
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.UserUsecase, tokenSvc service.TokenService, cfg *config.Config) *AuthHandler {
	secureCookie := false
	if cfg != nil && cfg.Auth != nil {
		secureCookie = cfg.Auth.SecureCookie
	}

	return &AuthHandler{
		uc:           uc,
		tokenSvc:     tokenSvc,
		secureCookie: secureCookie,
	}
}

// --- Request / Response DTOs ---

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateUserRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1"`
	Email   *string `json:"email" validate:"omitempty,email"`
	IsAdmin *bool   `json:"isAdmin"`
}

// userResponse is the outward shape of an account. The role travels as the
// original isAdmin flag; PasswordHash never leaves the server.
type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	User        userResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

func toUserResponse(user *entity.User) userResponse {
	return userResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		IsAdmin:   user.IsAdmin(),
		CreatedAt: user.CreatedAt,
	}
}

// --- Handlers ---

// Register handles the account creation request.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setRefreshCookie(c, output.RefreshToken)

	return response.Success(c, http.StatusCreated, authResponse{
		User:        toUserResponse(output.User),
		AccessToken: output.AccessToken,
	}, "User registered successfully")
}

// Login handles the credential check and session start.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setRefreshCookie(c, output.RefreshToken)

	return response.Success(c, http.StatusOK, authResponse{
		User:        toUserResponse(output.User),
		AccessToken: output.AccessToken,
	}, "Login successful")
}

// Refresh silently renews the access token from the refresh cookie.
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		return domainerrors.ErrUnauthenticated.WrapMessage("refresh cookie missing")
	}

	output, err := h.uc.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, refreshResponse{
		AccessToken: output.AccessToken,
	}, "Token refreshed successfully")
}

// Logout revokes the current session and clears the refresh cookie.
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(RefreshCookieName); err == nil {
		if err := h.uc.Logout(c.Request().Context(), cookie.Value); err != nil {
			return errors.WithStack(err)
		}
	}

	h.clearRefreshCookie(c)

	return response.Success(c, http.StatusOK, nil, "Logout successful")
}

// GetUser returns a single profile, self-or-admin.
func (h *AuthHandler) GetUser(c echo.Context) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("no authenticated principal")
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid user id")
	}

	user, err := h.uc.GetUser(c.Request().Context(), actor, userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "")
}

// UpdateUser applies profile changes, self-or-admin with role rules enforced
// by the usecase.
func (h *AuthHandler) UpdateUser(c echo.Context) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("no authenticated principal")
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid user id")
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	input := &usecase.UpdateUserInput{
		Name:  req.Name,
		Email: req.Email,
	}
	if req.IsAdmin != nil {
		role := entity.RoleFromAdminFlag(*req.IsAdmin)
		input.Role = &role
	}

	user, err := h.uc.UpdateUser(c.Request().Context(), actor, userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toUserResponse(user), "User updated successfully")
}

// DeleteUser removes an account. Administrators only.
func (h *AuthHandler) DeleteUser(c echo.Context) error {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("no authenticated principal")
	}

	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid user id")
	}

	if err := h.uc.DeleteUser(c.Request().Context(), actor, userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "User deleted successfully")
}

// --- Cookie helpers ---

func (h *AuthHandler) setRefreshCookie(c echo.Context, refreshToken string) {
	c.SetCookie(&http.Cookie{
		Name:     RefreshCookieName,
		Value:    refreshToken,
		Path:     "/auth",
		MaxAge:   int(h.tokenSvc.RefreshTokenDuration().Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandler) clearRefreshCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/auth",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}
