// Package middleware contains the echo middleware chain for the HTTP delivery.
package middleware

import (
	"strings"

	"blush/internal/domain/entity"
	domainerrors "blush/internal/domain/errors"
	"blush/internal/domain/repository"
	"blush/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ContextKeyUser is the echo context key under which Authenticate stores the
// resolved principal.
const ContextKeyUser = "user"

// AuthMiddleware guards routes with JWT access-token authentication and
// role-based authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate validates the bearer access token and resolves it to a live
// account. Every failure mode (missing header, malformed, forged, expired,
// deleted account) collapses into the same 401 so callers cannot probe which
// check rejected them.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrUnauthenticated.WrapMessage("missing authorization header")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return domainerrors.ErrUnauthenticated.WrapMessage("authorization header is not a bearer token")
		}

		claims, err := m.tokenSvc.Verify(tokenString, service.TokenClassAccess)
		if err != nil {
			return domainerrors.ErrUnauthenticated.WrapMessage("access token rejected")
		}

		user, err := m.userRepo.FindByID(c.Request().Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUnauthenticated.WrapMessage("token subject no longer exists")
			}

			return errors.Wrap(err, "failed to resolve token subject")
		}

		c.Set(ContextKeyUser, user)

		return next(c)
	}
}

// RequireAdmin rejects non-administrator principals. It must be used AFTER the
// Authenticate middleware.
func (m *AuthMiddleware) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := CurrentUser(c)
		if !ok {
			return domainerrors.ErrUnauthenticated.WrapMessage("no authenticated principal")
		}

		switch user.Role {
		case entity.RoleAdmin:
			return next(c)
		case entity.RoleCustomer:
			return domainerrors.ErrForbidden.WrapMessage("administrator role required")
		default:
			return domainerrors.ErrForbidden.WrapMessage("unknown role")
		}
	}
}

// CurrentUser returns the principal Authenticate attached to the request.
func CurrentUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(ContextKeyUser).(*entity.User)

	return user, ok
}
