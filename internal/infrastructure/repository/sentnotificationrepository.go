package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cinevault-inc/cinevault/internal/domain/notification"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/persistence/mappers"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/persistence/models"
	"github.com/cinevault-inc/cinevault/internal/shared/db"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

// SentNotificationRepository implements the notification delivery ledger
type SentNotificationRepository struct {
	db     *gorm.DB
	mapper mappers.SentNotificationMapper
	logger logger.Interface
}

// NewSentNotificationRepository creates a new sent notification repository
func NewSentNotificationRepository(gormDB *gorm.DB, logger logger.Interface) notification.Repository {
	return &SentNotificationRepository{
		db:     gormDB,
		mapper: mappers.NewSentNotificationMapper(),
		logger: logger,
	}
}

// Record inserts a ledger row. A collision on the dedupe index means the
// notification already went out; the caller gets alreadySent=true and must
// not dispatch again.
func (r *SentNotificationRepository) Record(ctx context.Context, entity *notification.SentNotification) (bool, error) {
	model := r.mapper.ToModel(entity)

	result := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(model)
	if result.Error != nil {
		r.logger.Errorw("failed to record sent notification",
			"user_id", entity.UserID(),
			"kind", entity.Kind(),
			"error", result.Error)
		return false, fmt.Errorf("failed to record sent notification: %w", result.Error)
	}

	return result.RowsAffected == 0, nil
}

// CountByUser returns the number of ledger rows for a user
func (r *SentNotificationRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64

	if err := db.GetTxFromContext(ctx, r.db).Model(&models.SentNotificationModel{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count sent notifications: %w", err)
	}

	return count, nil
}
