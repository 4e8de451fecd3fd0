package usecases

import (
	"context"
	"fmt"

	"github.com/cinevault-inc/cinevault/internal/domain/user"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

type UpdateDeviceTokenCommand struct {
	UserID      uint
	DeviceToken string
}

type UpdateDeviceTokenUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewUpdateDeviceTokenUseCase(userRepo user.Repository, logger logger.Interface) *UpdateDeviceTokenUseCase {
	return &UpdateDeviceTokenUseCase{userRepo: userRepo, logger: logger}
}

// Execute binds the device token to the user, taking it over from any other
// account currently holding it. An empty token unbinds instead.
func (uc *UpdateDeviceTokenUseCase) Execute(ctx context.Context, cmd UpdateDeviceTokenCommand) error {
	if cmd.UserID == 0 {
		return errors.NewValidationError("user ID is required")
	}

	if cmd.DeviceToken == "" {
		if err := uc.userRepo.ClearDeviceToken(ctx, cmd.UserID); err != nil {
			uc.logger.Errorw("failed to clear device token", "user_id", cmd.UserID, "error", err)
			return fmt.Errorf("failed to clear device token: %w", err)
		}
		return nil
	}

	if err := uc.userRepo.BindDeviceToken(ctx, cmd.UserID, cmd.DeviceToken); err != nil {
		uc.logger.Errorw("failed to bind device token", "user_id", cmd.UserID, "error", err)
		return fmt.Errorf("failed to bind device token: %w", err)
	}

	uc.logger.Infow("device token updated", "user_id", cmd.UserID)
	return nil
}
