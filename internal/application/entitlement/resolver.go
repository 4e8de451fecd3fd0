// Package entitlement answers whether a user may see premium catalog
// content. The check is read-only: an expired canceled row still answers
// false here and is collapsed later by the status endpoint, not by every
// catalog request.
package entitlement

import (
	"context"
	"fmt"

	"github.com/cinevault-inc/cinevault/internal/domain/subscription"
	"github.com/cinevault-inc/cinevault/internal/shared/biztime"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

type Resolver struct {
	subscriptionRepo subscription.Repository
	logger           logger.Interface
}

func NewResolver(subscriptionRepo subscription.Repository, logger logger.Interface) *Resolver {
	return &Resolver{subscriptionRepo: subscriptionRepo, logger: logger}
}

// CanAccessPremium reports whether the user's subscription currently
// entitles them to premium content: a paid-tier plan that is active, or
// canceled with its end date still in the future.
func (r *Resolver) CanAccessPremium(ctx context.Context, userID uint) (bool, error) {
	sub, err := r.subscriptionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		// Registration always creates a row; a missing one means the user
		// was provisioned outside the normal flow. Treat as free.
		r.logger.Warnw("user has no subscription row", "user_id", userID)
		return false, nil
	}
	return sub.CanAccessPremium(biztime.NowUTC()), nil
}
