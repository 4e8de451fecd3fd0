package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cinevault-inc/cinevault/internal/domain/subscription"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/persistence/mappers"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/persistence/models"
	"github.com/cinevault-inc/cinevault/internal/shared/db"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

// SubscriptionRepository implements the subscription repository interface
type SubscriptionRepository struct {
	db     *gorm.DB
	mapper mappers.SubscriptionMapper
	logger logger.Interface
}

// NewSubscriptionRepository creates a new subscription repository
func NewSubscriptionRepository(gormDB *gorm.DB, logger logger.Interface) subscription.Repository {
	return &SubscriptionRepository{
		db:     gormDB,
		mapper: mappers.NewSubscriptionMapper(),
		logger: logger,
	}
}

// Create creates a new subscription row
func (r *SubscriptionRepository) Create(ctx context.Context, entity *subscription.Subscription) error {
	model := r.mapper.ToModel(entity)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create subscription", "user_id", entity.UserID(), "error", err)
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	if err := entity.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set subscription ID: %w", err)
	}

	r.logger.Infow("subscription created",
		"id", model.ID,
		"user_id", model.UserID,
		"plan", model.Plan,
		"status", model.Status)
	return nil
}

// Update persists the current state of the subscription
func (r *SubscriptionRepository) Update(ctx context.Context, entity *subscription.Subscription) error {
	model := r.mapper.ToModel(entity)

	result := db.GetTxFromContext(ctx, r.db).Model(&models.SubscriptionModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"plan":                 model.Plan,
			"status":               model.Status,
			"start_date":           model.StartDate,
			"end_date":             model.EndDate,
			"billing_customer_ref": model.BillingCustomerRef,
			"billing_payment_ref":  model.BillingPaymentRef,
			"updated_at":           model.UpdatedAt,
		})

	if result.Error != nil {
		r.logger.Errorw("failed to update subscription", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update subscription: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return subscription.ErrSubscriptionNotFound
	}

	return nil
}

// GetByUserID retrieves the user's subscription, if any
func (r *SubscriptionRepository) GetByUserID(ctx context.Context, userID uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetByUserIDForUpdate retrieves the user's subscription under a row-level
// write lock. The lock holds until the enclosing transaction commits, so
// this must run inside one.
func (r *SubscriptionRepository) GetByUserIDForUpdate(ctx context.Context, userID uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	err := db.GetTxFromContext(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription for update", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get subscription for update: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// GetByBillingCustomerRef resolves a subscription from the gateway's
// customer reference
func (r *SubscriptionRepository) GetByBillingCustomerRef(ctx context.Context, ref string) (*subscription.Subscription, error) {
	var model models.SubscriptionModel

	if err := db.GetTxFromContext(ctx, r.db).Where("billing_customer_ref = ?", ref).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by billing ref", "error", err)
		return nil, fmt.Errorf("failed to get subscription by billing ref: %w", err)
	}

	return r.mapper.ToEntity(&model)
}

// DeleteByUserID removes the user's subscription row
func (r *SubscriptionRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if err := db.GetTxFromContext(ctx, r.db).
		Where("user_id = ?", userID).
		Delete(&models.SubscriptionModel{}).Error; err != nil {
		r.logger.Errorw("failed to delete subscription", "user_id", userID, "error", err)
		return fmt.Errorf("failed to delete subscription: %w", err)
	}
	return nil
}
