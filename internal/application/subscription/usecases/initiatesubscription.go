package usecases

import (
	"context"
	"fmt"

	"github.com/cinevault-inc/cinevault/internal/application/subscription/billing"
	"github.com/cinevault-inc/cinevault/internal/domain/subscription"
	"github.com/cinevault-inc/cinevault/internal/domain/user"
	"github.com/cinevault-inc/cinevault/internal/shared/biztime"
	"github.com/cinevault-inc/cinevault/internal/shared/config"
	"github.com/cinevault-inc/cinevault/internal/shared/db"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/id"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

type InitiateSubscriptionCommand struct {
	UserID uint
	Plan   string
}

type InitiateSubscriptionResult struct {
	Subscription *subscription.Subscription
	ClientSecret string
	AmountCents  int64
	Currency     string
}

type InitiateSubscriptionUseCase struct {
	subscriptionRepo subscription.Repository
	userRepo         user.Repository
	gateway          billing.Gateway
	subscriptionCfg  config.SubscriptionConfig
	txManager        *db.TransactionManager
	logger           logger.Interface
}

func NewInitiateSubscriptionUseCase(
	subscriptionRepo subscription.Repository,
	userRepo user.Repository,
	gateway billing.Gateway,
	subscriptionCfg config.SubscriptionConfig,
	txManager *db.TransactionManager,
	logger logger.Interface,
) *InitiateSubscriptionUseCase {
	return &InitiateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		userRepo:         userRepo,
		gateway:          gateway,
		subscriptionCfg:  subscriptionCfg,
		txManager:        txManager,
		logger:           logger,
	}
}

// Execute starts a subscription change. The user's current subscription
// row, whatever its plan or status, is replaced by a fresh one: free plans
// get an active row immediately with no gateway involvement, paid plans get
// a pending row carrying a new payment intent. Initiating again before
// confirming simply replaces the previous attempt. Everything runs under
// the user's row lock, and a gateway failure rolls the replacement back so
// the previous subscription survives intact.
func (uc *InitiateSubscriptionUseCase) Execute(ctx context.Context, cmd InitiateSubscriptionCommand) (*InitiateSubscriptionResult, error) {
	plan, err := subscription.ParsePlan(cmd.Plan)
	if err != nil {
		return nil, errors.NewValidationError(fmt.Sprintf("unknown plan %q", cmd.Plan))
	}
	if !plan.IsPaid() {
		return uc.initiateFree(ctx, cmd.UserID)
	}

	settings, err := planSettings(uc.subscriptionCfg, plan)
	if err != nil {
		uc.logger.Errorw("plan has no billing settings", "plan", plan, "error", err)
		return nil, errors.NewInternalError("plan is not purchasable")
	}

	subscriber, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if subscriber == nil {
		return nil, errors.NewNotFoundError("user not found")
	}

	var (
		pending *subscription.Subscription
		intent  *billing.PaymentIntent
	)
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		current, err := uc.subscriptionRepo.GetByUserIDForUpdate(txCtx, cmd.UserID)
		if err != nil {
			return fmt.Errorf("failed to lock subscription: %w", err)
		}

		customerRef := ""
		if current != nil && current.BillingCustomerRef() != nil {
			customerRef = *current.BillingCustomerRef()
		}
		if customerRef == "" {
			customer, err := uc.gateway.CreateCustomer(txCtx,
				subscriber.Email().String(),
				subscriber.FirstName().String()+" "+subscriber.LastName().String())
			if err != nil {
				return err
			}
			customerRef = customer.Ref
		}

		intent, err = uc.gateway.CreatePaymentIntent(txCtx, customerRef,
			settings.AmountCents, uc.subscriptionCfg.Currency, map[string]string{
				"user_sid": subscriber.SID(),
				"plan":     plan.String(),
			})
		if err != nil {
			return err
		}

		now := biztime.NowUTC()
		pending, err = subscription.NewPendingSubscription(
			id.MustGenerateWithPrefix(id.PrefixSubscription),
			cmd.UserID, plan, now.Add(paidPeriod(settings)), now)
		if err != nil {
			return fmt.Errorf("failed to build pending subscription: %w", err)
		}
		if err := pending.AttachBillingCustomer(customerRef); err != nil {
			return err
		}
		if err := pending.AttachPaymentIntent(intent.Ref); err != nil {
			return err
		}

		if current != nil {
			if err := uc.subscriptionRepo.DeleteByUserID(txCtx, cmd.UserID); err != nil {
				return fmt.Errorf("failed to replace subscription: %w", err)
			}
		}
		if err := uc.subscriptionRepo.Create(txCtx, pending); err != nil {
			return fmt.Errorf("failed to create pending subscription: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("subscription initiation failed",
			"user_id", cmd.UserID, "plan", plan, "error", err)
		return nil, err
	}

	uc.logger.Infow("subscription initiated",
		"user_id", cmd.UserID, "plan", plan, "payment_ref", intent.Ref)

	return &InitiateSubscriptionResult{
		Subscription: pending,
		ClientSecret: intent.ClientSecret,
		AmountCents:  settings.AmountCents,
		Currency:     uc.subscriptionCfg.Currency,
	}, nil
}

// initiateFree downgrades to the free plan: the existing row is replaced by
// a fresh free/active one with no end date and no billing references. The
// call is terminal, there is nothing to confirm and no payment artifacts to
// hand back. Repeating it converges to the same state.
func (uc *InitiateSubscriptionUseCase) initiateFree(ctx context.Context, userID uint) (*InitiateSubscriptionResult, error) {
	var fresh *subscription.Subscription
	err := uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		current, err := uc.subscriptionRepo.GetByUserIDForUpdate(txCtx, userID)
		if err != nil {
			return fmt.Errorf("failed to lock subscription: %w", err)
		}

		fresh, err = subscription.NewFreeSubscription(
			id.MustGenerateWithPrefix(id.PrefixSubscription), userID, biztime.NowUTC())
		if err != nil {
			return fmt.Errorf("failed to build free subscription: %w", err)
		}

		if current != nil {
			if err := uc.subscriptionRepo.DeleteByUserID(txCtx, userID); err != nil {
				return fmt.Errorf("failed to replace subscription: %w", err)
			}
		}
		if err := uc.subscriptionRepo.Create(txCtx, fresh); err != nil {
			return fmt.Errorf("failed to create free subscription: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("free plan initiation failed", "user_id", userID, "error", err)
		return nil, err
	}

	uc.logger.Infow("subscription initiated", "user_id", userID, "plan", subscription.PlanFree)

	return &InitiateSubscriptionResult{Subscription: fresh}, nil
}
