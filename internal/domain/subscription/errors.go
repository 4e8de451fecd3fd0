package subscription

import "errors"

var (
	ErrSubscriptionNotFound    = errors.New("subscription not found")
	ErrInvalidPlan             = errors.New("invalid plan")
	ErrNotPending              = errors.New("subscription is not pending")
	ErrNothingToCancel         = errors.New("subscription is not active or past due")
	ErrMissingBillingReference = errors.New("paid subscription requires billing references")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
