package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/cinevault-inc/cinevault/internal/domain/user"
	vo "github.com/cinevault-inc/cinevault/internal/domain/user/valueobjects"
	"github.com/cinevault-inc/cinevault/internal/shared/authorization"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

// TokenIssuer mints signed session tokens.
type TokenIssuer interface {
	Issue(userID uint, role authorization.UserRole) (token, jti string, expiresAt time.Time, err error)
}

type LoginCommand struct {
	Email       string
	Password    string
	DeviceToken string
}

type LoginResult struct {
	User      *user.User
	Token     string
	ExpiresAt time.Time
}

type LoginUseCase struct {
	userRepo       user.Repository
	passwordHasher user.PasswordHasher
	tokenIssuer    TokenIssuer
	logger         logger.Interface
}

func NewLoginUseCase(
	userRepo user.Repository,
	hasher user.PasswordHasher,
	tokenIssuer TokenIssuer,
	logger logger.Interface,
) *LoginUseCase {
	return &LoginUseCase{
		userRepo:       userRepo,
		passwordHasher: hasher,
		tokenIssuer:    tokenIssuer,
		logger:         logger,
	}
}

// Execute authenticates the credentials and mints a session token. Every
// authentication failure surfaces as the same invalid-credentials error so
// the endpoint cannot be used to probe which emails are registered.
func (uc *LoginUseCase) Execute(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	email, err := vo.NewEmail(cmd.Email)
	if err != nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	existingUser, err := uc.userRepo.GetByEmail(ctx, email.String())
	if err != nil {
		uc.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if existingUser == nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	if err := existingUser.VerifyPassword(cmd.Password, uc.passwordHasher); err != nil {
		return nil, errors.NewInvalidCredentialsError()
	}

	if cmd.DeviceToken != "" {
		// Rebinding steals the token from any other account holding it, so
		// a shared device always pushes to whoever signed in last.
		if err := uc.userRepo.BindDeviceToken(ctx, existingUser.ID(), cmd.DeviceToken); err != nil {
			uc.logger.Warnw("failed to bind device token on login",
				"user_id", existingUser.ID(), "error", err)
		}
	}

	token, _, expiresAt, err := uc.tokenIssuer.Issue(existingUser.ID(), existingUser.Role())
	if err != nil {
		uc.logger.Errorw("failed to issue session token", "user_id", existingUser.ID(), "error", err)
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	uc.logger.Infow("user logged in", "user_id", existingUser.ID())

	return &LoginResult{
		User:      existingUser,
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
