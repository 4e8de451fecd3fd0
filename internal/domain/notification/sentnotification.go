// Package notification holds the delivery-ledger domain for outbound push and
// WhatsApp messages. The ledger's composite uniqueness (user, movie, kind,
// channel, action) deduplicates best-effort sends across retries and restarts.
package notification

import (
	"fmt"
	"time"
)

// Channel identifies the delivery transport.
type Channel string

const (
	ChannelPush     Channel = "push"
	ChannelWhatsApp Channel = "whatsapp"
)

// Kind categorizes what the notification is about.
type Kind string

const (
	KindNewMovie              Kind = "new_movie"
	KindSubscriptionActivated Kind = "subscription_activated"
	KindPaymentFailed         Kind = "payment_failed"
	KindWhatsAppOptIn         Kind = "whatsapp_opt_in"
)

// SentNotification records one delivered (or attempted) message.
type SentNotification struct {
	id      uint
	userID  uint
	movieID *uint
	kind    Kind
	channel Channel
	action  string
	sentAt  time.Time
}

// NewSentNotification creates a ledger entry for an outbound message
func NewSentNotification(userID uint, movieID *uint, kind Kind, channel Channel, action string, sentAt time.Time) (*SentNotification, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if kind == "" || channel == "" || action == "" {
		return nil, fmt.Errorf("kind, channel and action are required")
	}
	return &SentNotification{
		userID:  userID,
		movieID: movieID,
		kind:    kind,
		channel: channel,
		action:  action,
		sentAt:  sentAt,
	}, nil
}

// ReconstructSentNotification reconstructs a ledger entry from persistence
func ReconstructSentNotification(id, userID uint, movieID *uint, kind Kind, channel Channel, action string, sentAt time.Time) *SentNotification {
	return &SentNotification{
		id:      id,
		userID:  userID,
		movieID: movieID,
		kind:    kind,
		channel: channel,
		action:  action,
		sentAt:  sentAt,
	}
}

func (n *SentNotification) ID() uint          { return n.id }
func (n *SentNotification) UserID() uint      { return n.userID }
func (n *SentNotification) MovieID() *uint    { return n.movieID }
func (n *SentNotification) Kind() Kind        { return n.kind }
func (n *SentNotification) Channel() Channel  { return n.channel }
func (n *SentNotification) Action() string    { return n.action }
func (n *SentNotification) SentAt() time.Time { return n.sentAt }
