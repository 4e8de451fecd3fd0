// Package usecases implements the subscription lifecycle: initiation,
// confirmation, cancellation, status with lazy collapse, and gateway
// webhook handling. Every transition runs under the user's row lock.
package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/cinevault-inc/cinevault/internal/domain/subscription"
	"github.com/cinevault-inc/cinevault/internal/shared/config"
)

// EventClaimer deduplicates webhook deliveries by event ID. Claim returns
// false when another delivery of the same event already claimed it; Release
// frees the claim after a processing failure so the gateway's retry can run.
type EventClaimer interface {
	Claim(ctx context.Context, eventID string) (bool, error)
	Release(ctx context.Context, eventID string) error
}

// EffectDispatcher performs the notification side effects a transition
// returned. Invoked after the owning transaction commits.
type EffectDispatcher interface {
	DispatchEffects(ctx context.Context, effects []subscription.Effect)
}

func planSettings(cfg config.SubscriptionConfig, plan subscription.Plan) (config.PlanConfig, error) {
	settings, ok := cfg.Plans[plan.String()]
	if !ok {
		return config.PlanConfig{}, fmt.Errorf("no billing settings configured for plan %s", plan)
	}
	return settings, nil
}

func paidPeriod(settings config.PlanConfig) time.Duration {
	return time.Duration(settings.DurationDays) * 24 * time.Hour
}
