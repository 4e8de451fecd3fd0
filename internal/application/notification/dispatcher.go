package notification

import (
	"context"
	"fmt"

	"github.com/cinevault-inc/cinevault/internal/domain/movie"
	domainnotification "github.com/cinevault-inc/cinevault/internal/domain/notification"
	"github.com/cinevault-inc/cinevault/internal/domain/subscription"
	"github.com/cinevault-inc/cinevault/internal/domain/user"
	"github.com/cinevault-inc/cinevault/internal/shared/biztime"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

const (
	actionOpenMovie        = "open_movie"
	actionOpenSubscription = "open_subscription"
)

// Dispatcher fans out notifications for catalog and subscription events.
// Every delivery is recorded in the ledger before the send goes out, so a
// retried dispatch cannot message the same user twice for the same event.
// A crash between record and send drops that one message; we accept losing
// a notification over duplicating it.
type Dispatcher struct {
	userRepo user.Repository
	ledger   domainnotification.Repository
	push     PushSender
	whatsapp WhatsAppSender
	logger   logger.Interface
}

// NewDispatcher creates a notification dispatcher
func NewDispatcher(
	userRepo user.Repository,
	ledger domainnotification.Repository,
	push PushSender,
	whatsapp WhatsAppSender,
	logger logger.Interface,
) *Dispatcher {
	return &Dispatcher{
		userRepo: userRepo,
		ledger:   ledger,
		push:     push,
		whatsapp: whatsapp,
		logger:   logger,
	}
}

// NotifyNewMovie pushes a catalog announcement to every user with a bound
// device token. Send failures are logged per user and do not stop the
// fan-out.
func (d *Dispatcher) NotifyNewMovie(ctx context.Context, m *movie.Movie) {
	holders, err := d.userRepo.ListWithDeviceTokens(ctx)
	if err != nil {
		d.logger.Errorw("failed to load device token holders for movie fan-out",
			"movie_id", m.ID(), "error", err)
		return
	}

	movieID := m.ID()
	title := "New on CineVault: " + m.Title()
	body := fmt.Sprintf("%s is now streaming on %s.", m.Title(), m.Attributes().StreamingPlatform)

	sent := 0
	for _, holder := range holders {
		token := holder.DeviceToken()
		if token == nil {
			continue
		}

		entry, err := domainnotification.NewSentNotification(
			holder.ID(), &movieID,
			domainnotification.KindNewMovie, domainnotification.ChannelPush,
			actionOpenMovie, biztime.NowUTC(),
		)
		if err != nil {
			d.logger.Errorw("failed to build ledger entry", "user_id", holder.ID(), "error", err)
			continue
		}

		alreadySent, err := d.ledger.Record(ctx, entry)
		if err != nil {
			d.logger.Errorw("failed to record movie notification",
				"user_id", holder.ID(), "movie_id", movieID, "error", err)
			continue
		}
		if alreadySent {
			continue
		}

		if err := d.push.Send(ctx, *token, title, body, map[string]string{
			"action":    actionOpenMovie,
			"movie_sid": m.SID(),
		}); err != nil {
			d.logger.Warnw("failed to push movie notification",
				"user_id", holder.ID(), "movie_id", movieID, "error", err)
			continue
		}
		sent++
	}

	d.logger.Infow("movie fan-out complete",
		"movie_id", movieID, "recipients", len(holders), "sent", sent)
}

// NotifyOptIn sends the WhatsApp opt-in greeting after registration. Best
// effort: a delivery failure never surfaces to the registering user.
func (d *Dispatcher) NotifyOptIn(ctx context.Context, u *user.User) {
	if d.whatsapp == nil || u.MobileNumber() == nil {
		return
	}

	entry, err := domainnotification.NewSentNotification(
		u.ID(), nil,
		domainnotification.KindWhatsAppOptIn, domainnotification.ChannelWhatsApp,
		actionOpenSubscription, biztime.NowUTC(),
	)
	if err != nil {
		d.logger.Errorw("failed to build opt-in ledger entry", "user_id", u.ID(), "error", err)
		return
	}
	if _, err := d.ledger.Record(ctx, entry); err != nil {
		d.logger.Errorw("failed to record opt-in notification", "user_id", u.ID(), "error", err)
	}

	body := fmt.Sprintf("Welcome to CineVault, %s! Reply STOP to opt out of WhatsApp updates.", u.FirstName().String())
	if err := d.whatsapp.Send(ctx, u.MobileNumber().String(), body); err != nil {
		d.logger.Warnw("failed to send opt-in message", "user_id", u.ID(), "error", err)
	}
}

// DispatchEffects delivers the messages requested by subscription state
// transitions. Called after the owning transaction commits.
func (d *Dispatcher) DispatchEffects(ctx context.Context, effects []subscription.Effect) {
	for _, effect := range effects {
		switch effect.Kind {
		case subscription.EffectNotifyActivated:
			d.notifySubscriptionEvent(ctx, effect.UserID,
				domainnotification.KindSubscriptionActivated,
				"Subscription activated",
				fmt.Sprintf("Your %s plan is now active. Enjoy!", effect.Plan))
		case subscription.EffectNotifyPaymentFailed:
			d.notifySubscriptionEvent(ctx, effect.UserID,
				domainnotification.KindPaymentFailed,
				"Payment failed",
				fmt.Sprintf("We could not collect payment for your %s plan. Please update your payment method.", effect.Plan))
		default:
			d.logger.Warnw("unknown subscription effect", "kind", effect.Kind, "user_id", effect.UserID)
		}
	}
}

func (d *Dispatcher) notifySubscriptionEvent(ctx context.Context, userID uint, kind domainnotification.Kind, title, body string) {
	u, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		d.logger.Errorw("failed to load user for notification", "user_id", userID, "error", err)
		return
	}
	if u == nil {
		d.logger.Warnw("notification target user not found", "user_id", userID)
		return
	}

	if token := u.DeviceToken(); token != nil {
		entry, err := domainnotification.NewSentNotification(
			userID, nil, kind, domainnotification.ChannelPush,
			actionOpenSubscription, biztime.NowUTC(),
		)
		if err == nil {
			if _, recErr := d.ledger.Record(ctx, entry); recErr != nil {
				d.logger.Errorw("failed to record push notification", "user_id", userID, "error", recErr)
			}
		}
		if err := d.push.Send(ctx, *token, title, body, map[string]string{"action": actionOpenSubscription}); err != nil {
			d.logger.Warnw("failed to push subscription notification",
				"user_id", userID, "kind", kind, "error", err)
		}
	}

	if d.whatsapp != nil && u.MobileNumber() != nil {
		entry, err := domainnotification.NewSentNotification(
			userID, nil, kind, domainnotification.ChannelWhatsApp,
			actionOpenSubscription, biztime.NowUTC(),
		)
		if err == nil {
			if _, recErr := d.ledger.Record(ctx, entry); recErr != nil {
				d.logger.Errorw("failed to record whatsapp notification", "user_id", userID, "error", recErr)
			}
		}
		if err := d.whatsapp.Send(ctx, u.MobileNumber().String(), body); err != nil {
			d.logger.Warnw("failed to send whatsapp notification",
				"user_id", userID, "kind", kind, "error", err)
		}
	}
}
