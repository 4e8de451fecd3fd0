package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/cinevault-inc/cinevault/internal/domain/auth"
	"github.com/cinevault-inc/cinevault/internal/domain/user"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

type LogoutCommand struct {
	UserID    uint
	JTI       string
	ExpiresAt time.Time
}

type LogoutUseCase struct {
	revocationRepo auth.RevocationRepository
	userRepo       user.Repository
	logger         logger.Interface
}

func NewLogoutUseCase(
	revocationRepo auth.RevocationRepository,
	userRepo user.Repository,
	logger logger.Interface,
) *LogoutUseCase {
	return &LogoutUseCase{
		revocationRepo: revocationRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// Execute revokes the presented token instance and unbinds the caller's
// device token. Revoking an already revoked token succeeds; signing out
// twice is not an error.
func (uc *LogoutUseCase) Execute(ctx context.Context, cmd LogoutCommand) error {
	record, err := auth.NewRevokedToken(cmd.JTI, cmd.UserID, cmd.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to build revocation record: %w", err)
	}

	if err := uc.revocationRepo.Revoke(ctx, record); err != nil {
		uc.logger.Errorw("failed to revoke token", "user_id", cmd.UserID, "error", err)
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	// Stop push notifications for this device; the next login rebinds it.
	if err := uc.userRepo.ClearDeviceToken(ctx, cmd.UserID); err != nil {
		uc.logger.Warnw("failed to clear device token on logout",
			"user_id", cmd.UserID, "error", err)
	}

	uc.logger.Infow("user logged out", "user_id", cmd.UserID)
	return nil
}
