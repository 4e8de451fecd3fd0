package subscription

import "context"

// Repository defines persistence operations for the subscription aggregate.
//
// Transitions (confirm, webhook, cancel, collapse) must serialize per user:
// implementations expose GetByUserIDForUpdate, which takes a row-level lock
// valid for the duration of the surrounding transaction, so a webhook racing
// a user-initiated cancel cannot interleave.
type Repository interface {
	Create(ctx context.Context, s *Subscription) error
	Update(ctx context.Context, s *Subscription) error
	GetByUserID(ctx context.Context, userID uint) (*Subscription, error)

	// GetByUserIDForUpdate locks the user's subscription row until the
	// enclosing transaction commits. Must be called inside a transaction.
	GetByUserIDForUpdate(ctx context.Context, userID uint) (*Subscription, error)

	// GetByBillingCustomerRef resolves a subscription from the gateway's
	// customer reference, used by invoice webhooks that do not carry our
	// user ID.
	GetByBillingCustomerRef(ctx context.Context, ref string) (*Subscription, error)

	// DeleteByUserID removes the user's subscription row. Used by the
	// replace-not-merge initiation flow and by collapse.
	DeleteByUserID(ctx context.Context, userID uint) error
}
