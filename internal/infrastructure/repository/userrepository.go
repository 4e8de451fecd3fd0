package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/cinevault-inc/cinevault/internal/domain/user"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/persistence/mappers"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/persistence/models"
	"github.com/cinevault-inc/cinevault/internal/shared/db"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

// UserRepository implements the user repository interface
type UserRepository struct {
	db     *gorm.DB
	mapper mappers.UserMapper
	logger logger.Interface
}

// NewUserRepository creates a new user repository
func NewUserRepository(gormDB *gorm.DB, logger logger.Interface) user.Repository {
	return &UserRepository{
		db:     gormDB,
		mapper: mappers.NewUserMapper(),
		logger: logger,
	}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, userEntity *user.User) error {
	model := r.mapper.ToModel(userEntity)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create user in database", "error", err)
		return fmt.Errorf("failed to create user: %w", err)
	}

	if err := userEntity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set user ID: %w", err)
	}

	r.logger.Infow("user created", "id", model.ID, "email", model.Email)
	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetBySID retrieves a user by its public short ID
func (r *UserRepository) GetBySID(ctx context.Context, sid string) (*user.User, error) {
	var model models.UserModel

	if err := db.GetTxFromContext(ctx, r.db).Where("sid = ?", sid).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by SID", "sid", sid, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetByEmail retrieves a user by email. The caller is expected to pass a
// case-folded address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel

	if err := db.GetTxFromContext(ctx, r.db).Where("email = ?", email).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by email", "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// Update updates an existing user
func (r *UserRepository) Update(ctx context.Context, userEntity *user.User) error {
	model := r.mapper.ToModel(userEntity)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"email":         model.Email,
			"first_name":    model.FirstName,
			"last_name":     model.LastName,
			"mobile_number": model.MobileNumber,
			"role":          model.Role,
			"password_hash": model.PasswordHash,
			"device_token":  model.DeviceToken,
			"updated_at":    model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update user", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}

	return nil
}

// BindDeviceToken sets the device token on userID. A device token is unique
// across the whole user table, so any previous holder loses it in the same
// transaction; the unique index never observes two holders.
func (r *UserRepository) BindDeviceToken(ctx context.Context, userID uint, token string) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.UserModel{}).
			Where("device_token = ? AND id != ?", token, userID).
			Update("device_token", nil).Error; err != nil {
			return fmt.Errorf("failed to release device token from previous holder: %w", err)
		}

		result := tx.Model(&models.UserModel{}).
			Where("id = ?", userID).
			Update("device_token", token)
		if result.Error != nil {
			return fmt.Errorf("failed to bind device token: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return user.ErrUserNotFound
		}
		return nil
	})
}

// ClearDeviceToken removes the device token binding for userID
func (r *UserRepository) ClearDeviceToken(ctx context.Context, userID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.UserModel{}).
		Where("id = ?", userID).
		Update("device_token", nil).Error; err != nil {
		return fmt.Errorf("failed to clear device token: %w", err)
	}
	return nil
}

// ListWithDeviceTokens returns every user holding a bound device token
func (r *UserRepository) ListWithDeviceTokens(ctx context.Context) ([]*user.User, error) {
	var userModels []*models.UserModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("device_token IS NOT NULL").
		Find(&userModels).Error; err != nil {
		r.logger.Errorw("failed to list users with device tokens", "error", err)
		return nil, fmt.Errorf("failed to list users with device tokens: %w", err)
	}

	return r.mapper.ToEntities(userModels)
}
