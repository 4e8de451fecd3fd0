package subscription

// EffectKind names a side effect that a state transition asks its caller to
// perform. Transitions return effects instead of dispatching notifications
// themselves, so notification sends are explicit and testable rather than
// hidden persistence callbacks.
type EffectKind string

const (
	// EffectNotifyActivated asks the caller to notify the user that their
	// paid plan is now active.
	EffectNotifyActivated EffectKind = "notify_subscription_activated"
	// EffectNotifyPaymentFailed asks the caller to notify the user that a
	// payment failed and the subscription is past due.
	EffectNotifyPaymentFailed EffectKind = "notify_payment_failed"
)

// Effect carries an effect kind plus the subscription snapshot the
// notification should describe.
type Effect struct {
	Kind   EffectKind
	UserID uint
	Plan   Plan
}
