package subscription

import (
	"fmt"
	"time"
)

// Subscription represents the subscription aggregate root. Exactly one row
// exists per user at all times after registration; plan changes replace the
// row rather than mutating it in place (billing history lives in the gateway).
type Subscription struct {
	id                 uint
	sid                string
	userID             uint
	plan               Plan
	status             Status
	startDate          time.Time
	endDate            *time.Time
	billingCustomerRef *string
	billingPaymentRef  *string
	createdAt          time.Time
	updatedAt          time.Time
}

// NewFreeSubscription creates the default free/active subscription.
// The free plan carries no end date and no billing references.
func NewFreeSubscription(sid string, userID uint, now time.Time) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	return &Subscription{
		sid:       sid,
		userID:    userID,
		plan:      PlanFree,
		status:    StatusActive,
		startDate: now,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// NewPendingSubscription creates a paid subscription awaiting payment
// confirmation. The end date is provisional; Activate replaces it with the
// authoritative one computed at confirmation time.
func NewPendingSubscription(sid string, userID uint, plan Plan, provisionalEnd time.Time, now time.Time) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !plan.IsPaid() {
		return nil, fmt.Errorf("%w: pending subscriptions are for paid plans, got %s", ErrInvalidPlan, plan)
	}
	end := provisionalEnd
	return &Subscription{
		sid:       sid,
		userID:    userID,
		plan:      plan,
		status:    StatusPending,
		startDate: now,
		endDate:   &end,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructSubscription reconstructs a subscription from persistence
func ReconstructSubscription(
	id uint,
	sid string,
	userID uint,
	plan Plan,
	status Status,
	startDate time.Time,
	endDate *time.Time,
	billingCustomerRef, billingPaymentRef *string,
	createdAt, updatedAt time.Time,
) (*Subscription, error) {
	if id == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if !validPlans[plan] {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPlan, plan)
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid subscription status: %s", status)
	}

	return &Subscription{
		id:                 id,
		sid:                sid,
		userID:             userID,
		plan:               plan,
		status:             status,
		startDate:          startDate,
		endDate:            endDate,
		billingCustomerRef: billingCustomerRef,
		billingPaymentRef:  billingPaymentRef,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}, nil
}

func (s *Subscription) ID() uint                    { return s.id }
func (s *Subscription) SID() string                 { return s.sid }
func (s *Subscription) UserID() uint                { return s.userID }
func (s *Subscription) Plan() Plan                  { return s.plan }
func (s *Subscription) Status() Status              { return s.status }
func (s *Subscription) StartDate() time.Time        { return s.startDate }
func (s *Subscription) EndDate() *time.Time         { return s.endDate }
func (s *Subscription) BillingCustomerRef() *string { return s.billingCustomerRef }
func (s *Subscription) BillingPaymentRef() *string  { return s.billingPaymentRef }
func (s *Subscription) CreatedAt() time.Time        { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time        { return s.updatedAt }

// SetID sets the subscription ID (only for persistence layer use)
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// AttachBillingCustomer stores the gateway customer reference created during
// initiation.
func (s *Subscription) AttachBillingCustomer(ref string) error {
	if ref == "" {
		return fmt.Errorf("billing customer reference cannot be empty")
	}
	s.billingCustomerRef = &ref
	s.updatedAt = time.Now().UTC()
	return nil
}

// AttachPaymentIntent stores the gateway payment intent reference created
// during initiation, so confirmation can look up the intent it must verify.
func (s *Subscription) AttachPaymentIntent(ref string) error {
	if ref == "" {
		return fmt.Errorf("billing payment reference cannot be empty")
	}
	s.billingPaymentRef = &ref
	s.updatedAt = time.Now().UTC()
	return nil
}

// Activate transitions a pending subscription to active after the gateway
// reports a succeeded payment. The end date becomes now plus the plan's
// configured duration; the payment reference is retained for reconciliation.
func (s *Subscription) Activate(paymentRef string, endDate time.Time, now time.Time) ([]Effect, error) {
	if s.status != StatusPending {
		return nil, fmt.Errorf("%w: status is %s", ErrNotPending, s.status)
	}
	if paymentRef == "" {
		return nil, ErrMissingBillingReference
	}
	if s.billingCustomerRef == nil {
		return nil, ErrMissingBillingReference
	}

	s.status = StatusActive
	s.billingPaymentRef = &paymentRef
	s.endDate = &endDate
	s.updatedAt = now

	return []Effect{{Kind: EffectNotifyActivated, UserID: s.userID, Plan: s.plan}}, nil
}

// MarkPastDue records a gateway-reported payment failure. A canceled
// subscription is terminal until collapse and is never overwritten.
func (s *Subscription) MarkPastDue(now time.Time) ([]Effect, error) {
	if s.status == StatusCanceled {
		return nil, fmt.Errorf("%w: canceled is terminal", ErrInvalidStatusTransition)
	}
	if s.status == StatusPastDue {
		return nil, nil
	}

	s.status = StatusPastDue
	s.updatedAt = now

	return []Effect{{Kind: EffectNotifyPaymentFailed, UserID: s.userID, Plan: s.plan}}, nil
}

// Cancel schedules a downgrade: status becomes canceled but the end date is
// untouched, so access continues until the period the user already paid for
// runs out. The free plan has no paid engagement to cancel.
func (s *Subscription) Cancel(now time.Time) error {
	if !s.plan.IsPaid() {
		return fmt.Errorf("%w: the %s plan carries no paid period", ErrNothingToCancel, s.plan)
	}
	if s.status != StatusActive && s.status != StatusPastDue {
		return fmt.Errorf("%w: status is %s", ErrNothingToCancel, s.status)
	}

	s.status = StatusCanceled
	s.updatedAt = now
	return nil
}

// ShouldCollapse reports whether this row is a canceled subscription whose
// end date has passed. Such a row is destroyed and replaced by a fresh
// free/active one the next time it is observed; there is no background timer.
func (s *Subscription) ShouldCollapse(now time.Time) bool {
	return s.status == StatusCanceled && s.endDate != nil && !s.endDate.After(now)
}

// CanAccessPremium answers the premium-content entitlement: a paid-tier plan
// that is either active, or canceled with an end date still strictly in the
// future (the grace period).
func (s *Subscription) CanAccessPremium(now time.Time) bool {
	if !s.plan.IsPremiumTier() {
		return false
	}
	switch s.status {
	case StatusActive:
		return true
	case StatusCanceled:
		return s.endDate != nil && s.endDate.After(now)
	default:
		return false
	}
}
