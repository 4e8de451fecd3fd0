package usecases

import (
	"context"
	"fmt"

	"github.com/cinevault-inc/cinevault/internal/domain/subscription"
	"github.com/cinevault-inc/cinevault/internal/shared/biztime"
	"github.com/cinevault-inc/cinevault/internal/shared/db"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/id"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

type GetSubscriptionStatusCommand struct {
	UserID uint
}

type GetSubscriptionStatusResult struct {
	Subscription     *subscription.Subscription
	CanAccessPremium bool
}

type GetSubscriptionStatusUseCase struct {
	subscriptionRepo subscription.Repository
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewGetSubscriptionStatusUseCase(
	subscriptionRepo subscription.Repository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *GetSubscriptionStatusUseCase {
	return &GetSubscriptionStatusUseCase{
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute returns the user's subscription, collapsing it first if it is a
// canceled row whose end date has passed. Collapse replaces the row with a
// fresh free/active one; there is no background job doing this, the next
// status read performs it.
func (uc *GetSubscriptionStatusUseCase) Execute(ctx context.Context, cmd GetSubscriptionStatusCommand) (*GetSubscriptionStatusResult, error) {
	sub, err := uc.subscriptionRepo.GetByUserID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, errors.NewNotFoundError("subscription not found")
	}

	now := biztime.NowUTC()
	if sub.ShouldCollapse(now) {
		collapsed, err := uc.collapse(ctx, cmd.UserID)
		if err != nil {
			return nil, err
		}
		sub = collapsed
	}

	return &GetSubscriptionStatusResult{
		Subscription:     sub,
		CanAccessPremium: sub.CanAccessPremium(now),
	}, nil
}

func (uc *GetSubscriptionStatusUseCase) collapse(ctx context.Context, userID uint) (*subscription.Subscription, error) {
	var fresh *subscription.Subscription
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		locked, err := uc.subscriptionRepo.GetByUserIDForUpdate(txCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to lock subscription: %w", err)
		}
		if locked == nil {
			return errors.NewNotFoundError("subscription not found")
		}

		// A concurrent initiation or collapse may have replaced the row
		// between the unlocked read and the lock.
		now := biztime.NowUTC()
		if !locked.ShouldCollapse(now) {
			fresh = locked
			return nil
		}

		fresh, err = subscription.NewFreeSubscription(
			id.MustGenerateWithPrefix(id.PrefixSubscription), userID, now)
		if err != nil {
			return fmt.Errorf("failed to build free subscription: %w", err)
		}
		if err := uc.subscriptionRepo.DeleteByUserID(txCtx, userID); err != nil {
			return fmt.Errorf("failed to remove expired subscription: %w", err)
		}
		if err := uc.subscriptionRepo.Create(txCtx, fresh); err != nil {
			return fmt.Errorf("failed to create free subscription: %w", err)
		}

		uc.logger.Infow("collapsed expired subscription", "user_id", userID)
		return nil
	})
	if err != nil {
		uc.logger.Errorw("subscription collapse failed", "user_id", userID, "error", err)
		return nil, err
	}
	return fresh, nil
}
