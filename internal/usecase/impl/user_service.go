// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "blush/internal/delivery/context"
	"blush/internal/domain/entity"
	domainerrors "blush/internal/domain/errors"
	"blush/internal/domain/repository"
	"blush/internal/domain/service"
	"blush/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager        repository.TransactionManager
	userRepo         repository.UserRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	tokenService     service.TokenService
	logger           *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	UserRepo         repository.UserRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	TokenService     service.TokenService
	Logger           *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:        params.TxManager,
		userRepo:         params.UserRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		tokenService:     params.TokenService,
		logger:           params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new customer account and starts a session for it.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	var registeredUser *entity.User
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		_, err := userRepo.FindByEmail(ctx, input.Email)
		if err == nil {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check email availability")
		}

		newUser := &entity.User{
			Name:         input.Name,
			Email:        input.Email,
			PasswordHash: hashedPassword,
			Role:         entity.RoleCustomer,
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			if errors.Is(err, repository.ErrEmailTaken) {
				// Lost a race with a concurrent registration for the same email.
				return domainerrors.ErrConflict.WrapMessage("email already registered")
			}

			return errors.Wrap(err, "failed to create user during registration")
		}

		registeredUser = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	output, err := srv.startSession(ctx, registeredUser)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Registration completed", slog.Any("userID", registeredUser.ID))

	return output, nil
}

// Login verifies credentials and starts a new session.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	srv.log(ctx).Debug("Login attempt", slog.String("email", input.Email))

	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("unknown email")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Password mismatch on login", slog.Any("userID", user.ID))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("password mismatch")
	}

	output, err := srv.startSession(ctx, user)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Login succeeded", slog.Any("userID", user.ID))

	return output, nil
}

// startSession issues a token pair for the user and records the refresh token
// hash in the session ledger.
func (srv *userService) startSession(ctx context.Context, user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, err := srv.tokenService.IssueAccessToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, err := srv.tokenService.IssueRefreshToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	session := &entity.RefreshToken{
		UserID:    user.ID,
		TokenHash: srv.tokenService.HashToken(refreshToken),
		ExpiresAt: time.Now().Add(srv.tokenService.RefreshTokenDuration()),
	}
	if err := srv.refreshTokenRepo.CreateRefreshToken(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to persist session")
	}

	return &usecase.AuthOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh exchanges a valid, unrevoked refresh token for a new access token.
//
// Validity requires both a good signature and a live ledger row: a signed token
// whose session was revoked is just as dead as a forged one, and the caller is
// told nothing beyond "unauthenticated" either way.
func (srv *userService) Refresh(ctx context.Context, refreshToken string) (*usecase.RefreshOutput, error) {
	claims, err := srv.tokenService.Verify(refreshToken, service.TokenClassRefresh)
	if err != nil {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("refresh token rejected")
	}

	session, err := srv.refreshTokenRepo.FindRefreshTokenByHash(ctx, srv.tokenService.HashToken(refreshToken))
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) || errors.Is(err, repository.ErrRefreshTokenExpired) {
			return nil, domainerrors.ErrUnauthenticated.WrapMessage("session revoked or expired")
		}

		return nil, errors.Wrap(err, "failed to look up session")
	}

	if session.UserID != claims.UserID {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("session owner mismatch")
	}

	accessToken, err := srv.tokenService.IssueAccessToken(claims.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	srv.log(ctx).Debug("Access token renewed", slog.Any("userID", claims.UserID))

	return &usecase.RefreshOutput{AccessToken: accessToken}, nil
}

// Logout revokes the session identified by the refresh token.
func (srv *userService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	err := srv.refreshTokenRepo.DeleteRefreshTokenByHash(ctx, srv.tokenService.HashToken(refreshToken))
	if err != nil {
		// The session being gone already is the outcome the caller wanted.
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to revoke session")
	}

	srv.log(ctx).Info("Session revoked")

	return nil
}

// GetUser returns the profile for userID, enforcing self-or-admin access.
func (srv *userService) GetUser(ctx context.Context, actor *entity.User, userID uuid.UUID) (*entity.User, error) {
	if !actor.CanAccessUser(userID) {
		return nil, domainerrors.ErrForbidden.WrapMessage("cannot read another user's profile")
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("no such user")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

// UpdateUser applies profile changes to userID on behalf of actor.
func (srv *userService) UpdateUser(ctx context.Context, actor *entity.User, userID uuid.UUID, input *usecase.UpdateUserInput) (*entity.User, error) {
	if !actor.CanAccessUser(userID) {
		return nil, domainerrors.ErrForbidden.WrapMessage("cannot modify another user's profile")
	}

	if input.Role != nil {
		switch actor.Role {
		case entity.RoleCustomer:
			return nil, domainerrors.ErrForbidden.WrapMessage("customers cannot change roles")
		case entity.RoleAdmin:
			// An administrator may edit their own name and email, but demoting
			// or re-promoting themselves is blocked to avoid lockouts.
			if actor.ID == userID {
				return nil, domainerrors.ErrForbidden.WrapMessage("administrators cannot change their own role")
			}
		default:
			return nil, domainerrors.ErrForbidden.WrapMessage("unknown role")
		}

		if !input.Role.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role value")
		}
	}

	var updatedUser *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("no such user")
			}

			return errors.Wrap(err, "failed to load user for update")
		}

		if input.Name != nil {
			user.Name = *input.Name
		}
		if input.Email != nil {
			user.Email = *input.Email
		}
		if input.Role != nil {
			user.Role = *input.Role
		}

		if err := userRepo.Update(ctx, user); err != nil {
			if errors.Is(err, repository.ErrEmailTaken) {
				return domainerrors.ErrConflict.WrapMessage("email already in use")
			}
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("no such user")
			}

			return errors.Wrap(err, "failed to update user")
		}

		updatedUser = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("User update failed", slog.Any("userID", userID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Info("User updated", slog.Any("userID", userID))

	return updatedUser, nil
}

// DeleteUser removes the account and every session it owns.
func (srv *userService) DeleteUser(ctx context.Context, actor *entity.User, userID uuid.UUID) error {
	switch actor.Role {
	case entity.RoleAdmin:
	case entity.RoleCustomer:
		return domainerrors.ErrForbidden.WrapMessage("customers cannot delete accounts")
	default:
		return domainerrors.ErrForbidden.WrapMessage("unknown role")
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		refreshTokenRepo := repoFactory.RefreshTokenRepo()

		if err := refreshTokenRepo.DeleteRefreshTokensByUserID(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to revoke user sessions")
		}

		if err := userRepo.Delete(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound.WrapMessage("no such user")
			}

			return errors.Wrap(err, "failed to delete user")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("User deletion failed", slog.Any("userID", userID), slog.Any("error", err))

		return err
	}

	srv.log(ctx).Info("User deleted", slog.Any("userID", userID), slog.Any("deletedBy", actor.ID))

	return nil
}
