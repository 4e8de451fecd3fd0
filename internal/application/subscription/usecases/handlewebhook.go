package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/cinevault-inc/cinevault/internal/domain/subscription"
	"github.com/cinevault-inc/cinevault/internal/shared/biztime"
	"github.com/cinevault-inc/cinevault/internal/shared/config"
	"github.com/cinevault-inc/cinevault/internal/shared/db"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/goroutine"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

// Gateway event types the engine reacts to. Anything else is acknowledged
// and ignored so the gateway does not retry events we will never handle.
const (
	EventPaymentSucceeded = "payment_intent.succeeded"
	EventPaymentFailed    = "payment_intent.payment_failed"
	EventInvoiceFailed    = "invoice.payment_failed"
)

type HandleWebhookCommand struct {
	EventID          string
	EventType        string
	PaymentIntentRef string
	CustomerRef      string
}

type HandleWebhookUseCase struct {
	subscriptionRepo subscription.Repository
	events           EventClaimer
	dispatcher       EffectDispatcher
	subscriptionCfg  config.SubscriptionConfig
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewHandleWebhookUseCase(
	subscriptionRepo subscription.Repository,
	events EventClaimer,
	dispatcher EffectDispatcher,
	subscriptionCfg config.SubscriptionConfig,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *HandleWebhookUseCase {
	return &HandleWebhookUseCase{
		subscriptionRepo: subscriptionRepo,
		events:           events,
		dispatcher:       dispatcher,
		subscriptionCfg:  subscriptionCfg,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute applies one verified gateway event. Deliveries are deduplicated
// by event ID before any state is touched; a processing failure releases
// the claim and returns an error so the gateway's retry gets another run.
// Redelivery of an already applied event falls through the state machine's
// own idempotency and is acknowledged.
func (uc *HandleWebhookUseCase) Execute(ctx context.Context, cmd HandleWebhookCommand) error {
	if cmd.EventID == "" {
		return errors.NewValidationError("event id is required")
	}

	claimed, err := uc.events.Claim(ctx, cmd.EventID)
	if err != nil {
		// Dedupe store outage: process anyway. The transitions tolerate
		// replays, losing an event does not.
		uc.logger.Warnw("webhook dedupe claim failed, processing without it",
			"event_id", cmd.EventID, "error", err)
	} else if !claimed {
		uc.logger.Infow("duplicate webhook delivery skipped",
			"event_id", cmd.EventID, "event_type", cmd.EventType)
		return nil
	}

	var handleErr error
	switch cmd.EventType {
	case EventPaymentSucceeded:
		handleErr = uc.handlePaymentSucceeded(ctx, cmd)
	case EventPaymentFailed, EventInvoiceFailed:
		handleErr = uc.handlePaymentFailed(ctx, cmd)
	default:
		uc.logger.Infow("ignoring unhandled webhook event",
			"event_id", cmd.EventID, "event_type", cmd.EventType)
		return nil
	}

	if handleErr != nil {
		if claimed {
			if relErr := uc.events.Release(ctx, cmd.EventID); relErr != nil {
				uc.logger.Warnw("failed to release webhook claim",
					"event_id", cmd.EventID, "error", relErr)
			}
		}
		uc.logger.Errorw("webhook processing failed",
			"event_id", cmd.EventID, "event_type", cmd.EventType, "error", handleErr)
		return handleErr
	}
	return nil
}

func (uc *HandleWebhookUseCase) handlePaymentSucceeded(ctx context.Context, cmd HandleWebhookCommand) error {
	if cmd.PaymentIntentRef == "" || cmd.CustomerRef == "" {
		return errors.NewValidationError("payment event is missing billing references")
	}

	var effects []subscription.Effect
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := uc.lockByCustomerRef(txCtx, cmd.CustomerRef)
		if err != nil || sub == nil {
			return err
		}

		// An intent minted for a replaced subscription attempt may still
		// complete at the gateway. The current row only activates on its
		// own intent.
		if sub.BillingPaymentRef() == nil || *sub.BillingPaymentRef() != cmd.PaymentIntentRef {
			uc.logger.Infow("webhook intent does not match current subscription, ignoring",
				"event_id", cmd.EventID, "user_id", sub.UserID())
			return nil
		}

		settings, err := planSettings(uc.subscriptionCfg, sub.Plan())
		if err != nil {
			return fmt.Errorf("failed to resolve plan settings: %w", err)
		}

		now := biztime.NowUTC()
		effects, err = sub.Activate(cmd.PaymentIntentRef, now.Add(paidPeriod(settings)), now)
		if err != nil {
			if stderrors.Is(err, subscription.ErrNotPending) {
				// Already confirmed through the synchronous path.
				uc.logger.Infow("webhook activation skipped, subscription not pending",
					"event_id", cmd.EventID, "user_id", sub.UserID(), "status", sub.Status())
				return nil
			}
			return err
		}

		return uc.subscriptionRepo.Update(txCtx, sub)
	})
	if err != nil {
		return err
	}

	uc.dispatchAfterCommit(effects)
	return nil
}

func (uc *HandleWebhookUseCase) handlePaymentFailed(ctx context.Context, cmd HandleWebhookCommand) error {
	if cmd.CustomerRef == "" {
		return errors.NewValidationError("payment event is missing billing references")
	}

	var effects []subscription.Effect
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		sub, err := uc.lockByCustomerRef(txCtx, cmd.CustomerRef)
		if err != nil || sub == nil {
			return err
		}

		effects, err = sub.MarkPastDue(biztime.NowUTC())
		if err != nil {
			if stderrors.Is(err, subscription.ErrInvalidStatusTransition) {
				// Canceled is terminal; the scheduled downgrade stands.
				uc.logger.Infow("webhook past-due skipped, subscription canceled",
					"event_id", cmd.EventID, "user_id", sub.UserID())
				return nil
			}
			return err
		}
		if effects == nil {
			// Already past due.
			return nil
		}

		return uc.subscriptionRepo.Update(txCtx, sub)
	})
	if err != nil {
		return err
	}

	uc.dispatchAfterCommit(effects)
	return nil
}

// lockByCustomerRef resolves the subscription owning a gateway customer
// reference and re-reads it under the user's row lock. A nil subscription
// with nil error means the reference matches nothing we know, which is
// acknowledged rather than retried.
func (uc *HandleWebhookUseCase) lockByCustomerRef(ctx context.Context, customerRef string) (*subscription.Subscription, error) {
	found, err := uc.subscriptionRepo.GetByBillingCustomerRef(ctx, customerRef)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve customer reference: %w", err)
	}
	if found == nil {
		uc.logger.Warnw("webhook references unknown billing customer", "customer_ref", customerRef)
		return nil, nil
	}

	locked, err := uc.subscriptionRepo.GetByUserIDForUpdate(ctx, found.UserID())
	if err != nil {
		return nil, fmt.Errorf("failed to lock subscription: %w", err)
	}
	if locked == nil || locked.BillingCustomerRef() == nil || *locked.BillingCustomerRef() != customerRef {
		uc.logger.Infow("subscription replaced since webhook was sent", "customer_ref", customerRef)
		return nil, nil
	}
	return locked, nil
}

func (uc *HandleWebhookUseCase) dispatchAfterCommit(effects []subscription.Effect) {
	if uc.dispatcher == nil || len(effects) == 0 {
		return
	}
	goroutine.SafeGo(uc.logger, "webhook-effects", func() {
		uc.dispatcher.DispatchEffects(context.Background(), effects)
	})
}
