package usecases

import (
	"context"
	"fmt"

	"github.com/cinevault-inc/cinevault/internal/application/subscription/billing"
	"github.com/cinevault-inc/cinevault/internal/domain/subscription"
	"github.com/cinevault-inc/cinevault/internal/shared/biztime"
	"github.com/cinevault-inc/cinevault/internal/shared/config"
	"github.com/cinevault-inc/cinevault/internal/shared/db"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/goroutine"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

type ConfirmSubscriptionCommand struct {
	UserID uint
	// PaymentIntentRef is the client-reported intent. Optional; when set it
	// must name the intent recorded at initiation, so a caller can never
	// confirm against a foreign payment.
	PaymentIntentRef string
}

type ConfirmSubscriptionResult struct {
	Subscription *subscription.Subscription
}

type ConfirmSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	gateway          billing.Gateway
	dispatcher       EffectDispatcher
	subscriptionCfg  config.SubscriptionConfig
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewConfirmSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	gateway billing.Gateway,
	dispatcher EffectDispatcher,
	subscriptionCfg config.SubscriptionConfig,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *ConfirmSubscriptionUseCase {
	return &ConfirmSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		gateway:          gateway,
		dispatcher:       dispatcher,
		subscriptionCfg:  subscriptionCfg,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute activates a pending subscription once the gateway reports the
// payment intent as succeeded. The paid period starts at confirmation time,
// not initiation time, so a slow checkout never eats into the period the
// user paid for.
func (uc *ConfirmSubscriptionUseCase) Execute(ctx context.Context, cmd ConfirmSubscriptionCommand) (*ConfirmSubscriptionResult, error) {
	var (
		sub     *subscription.Subscription
		effects []subscription.Effect
	)
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		var err error
		sub, err = uc.subscriptionRepo.GetByUserIDForUpdate(txCtx, cmd.UserID)
		if err != nil {
			return fmt.Errorf("failed to lock subscription: %w", err)
		}
		if sub == nil {
			return errors.NewNotFoundError("subscription not found")
		}
		if sub.Status() != subscription.StatusPending {
			return errors.NewStateConflictError("no pending subscription to confirm")
		}
		if sub.BillingPaymentRef() == nil {
			return errors.NewStateConflictError("subscription has no payment intent")
		}
		if cmd.PaymentIntentRef != "" && cmd.PaymentIntentRef != *sub.BillingPaymentRef() {
			return errors.NewStateConflictError("payment intent does not match this subscription")
		}

		intent, err := uc.gateway.RetrievePaymentIntent(txCtx, *sub.BillingPaymentRef())
		if err != nil {
			return err
		}
		if intent.Status != billing.IntentStatusSucceeded {
			return errors.NewStateConflictError(
				fmt.Sprintf("payment has not succeeded (status %s)", intent.Status))
		}

		settings, err := planSettings(uc.subscriptionCfg, sub.Plan())
		if err != nil {
			return fmt.Errorf("failed to resolve plan settings: %w", err)
		}

		now := biztime.NowUTC()
		effects, err = sub.Activate(*sub.BillingPaymentRef(), now.Add(paidPeriod(settings)), now)
		if err != nil {
			return errors.NewStateConflictError(err.Error())
		}

		return uc.subscriptionRepo.Update(txCtx, sub)
	})
	if err != nil {
		uc.logger.Errorw("subscription confirmation failed", "user_id", cmd.UserID, "error", err)
		return nil, err
	}

	uc.logger.Infow("subscription confirmed",
		"user_id", cmd.UserID, "plan", sub.Plan(), "end_date", sub.EndDate())

	if uc.dispatcher != nil && len(effects) > 0 {
		goroutine.SafeGo(uc.logger, "subscription-confirm-effects", func() {
			uc.dispatcher.DispatchEffects(context.Background(), effects)
		})
	}

	return &ConfirmSubscriptionResult{Subscription: sub}, nil
}
