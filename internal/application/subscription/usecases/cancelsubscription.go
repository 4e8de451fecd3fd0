package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/cinevault-inc/cinevault/internal/domain/subscription"
	"github.com/cinevault-inc/cinevault/internal/shared/biztime"
	"github.com/cinevault-inc/cinevault/internal/shared/db"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/id"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

type CancelSubscriptionCommand struct {
	UserID uint
}

type CancelSubscriptionResult struct {
	Subscription *subscription.Subscription
}

type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute schedules a downgrade: the subscription becomes canceled but its
// end date stays, so paid access runs until the period the user already
// paid for expires. The row collapses to free/active the next time it is
// observed past that date. A user with no row at all gets the default
// free/active one restored first, which then has nothing to cancel.
func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (*CancelSubscriptionResult, error) {
	var (
		sub      *subscription.Subscription
		conflict error
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		sub, err = uc.subscriptionRepo.GetByUserIDForUpdate(txCtx, cmd.UserID)
		if err != nil {
			return fmt.Errorf("failed to lock subscription: %w", err)
		}
		if sub == nil {
			sub, err = subscription.NewFreeSubscription(
				id.MustGenerateWithPrefix(id.PrefixSubscription), cmd.UserID, biztime.NowUTC())
			if err != nil {
				return fmt.Errorf("failed to build free subscription: %w", err)
			}
			if err := uc.subscriptionRepo.Create(txCtx, sub); err != nil {
				return fmt.Errorf("failed to restore free subscription: %w", err)
			}
			uc.logger.Warnw("restored missing subscription row on cancel", "user_id", cmd.UserID)
		}

		if err := sub.Cancel(biztime.NowUTC()); err != nil {
			if stderrors.Is(err, subscription.ErrNothingToCancel) {
				// Commit so a restored row survives the rejection.
				conflict = errors.NewStateConflictError(err.Error())
				return nil
			}
			return err
		}

		return uc.subscriptionRepo.Update(txCtx, sub)
	})
	if err != nil {
		uc.logger.Errorw("subscription cancellation failed", "user_id", cmd.UserID, "error", err)
		return nil, err
	}
	if conflict != nil {
		return nil, conflict
	}

	uc.logger.Infow("subscription canceled",
		"user_id", cmd.UserID, "plan", sub.Plan(), "end_date", sub.EndDate())

	return &CancelSubscriptionResult{Subscription: sub}, nil
}
