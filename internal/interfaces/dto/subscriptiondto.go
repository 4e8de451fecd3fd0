package dto

import (
	"time"

	"github.com/cinevault-inc/cinevault/internal/domain/subscription"
)

// InitiateSubscriptionRequest is the HTTP payload for starting a paid plan.
type InitiateSubscriptionRequest struct {
	Plan string `json:"plan" binding:"required"`
}

// ConfirmSubscriptionRequest optionally echoes the payment intent the
// client completed, which is then required to match the recorded one.
type ConfirmSubscriptionRequest struct {
	PaymentIntentID string `json:"payment_intent_id"`
}

// SubscriptionResponse is the public representation of a subscription.
type SubscriptionResponse struct {
	ID        string     `json:"id"`
	Plan      string     `json:"plan"`
	Status    string     `json:"status"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

func NewSubscriptionResponse(s *subscription.Subscription) SubscriptionResponse {
	return SubscriptionResponse{
		ID:        s.SID(),
		Plan:      s.Plan().String(),
		Status:    s.Status().String(),
		StartDate: s.StartDate(),
		EndDate:   s.EndDate(),
	}
}

// InitiateSubscriptionResponse returns the new subscription together with
// what the client needs to complete payment. The payment fields are absent
// for the free plan, which activates without a purchase.
type InitiateSubscriptionResponse struct {
	Subscription SubscriptionResponse `json:"subscription"`
	ClientSecret string               `json:"client_secret,omitempty"`
	AmountCents  int64                `json:"amount_cents,omitempty"`
	Currency     string               `json:"currency,omitempty"`
}

// SubscriptionStatusResponse adds the entitlement answer to the
// subscription snapshot.
type SubscriptionStatusResponse struct {
	Subscription     SubscriptionResponse `json:"subscription"`
	CanAccessPremium bool                 `json:"can_access_premium"`
}
