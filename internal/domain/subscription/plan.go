package subscription

import "fmt"

// Plan identifies the subscription tier.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanBasic   Plan = "basic"
	PlanPremium Plan = "premium"
)

var validPlans = map[Plan]bool{
	PlanFree:    true,
	PlanBasic:   true,
	PlanPremium: true,
}

// ParsePlan validates a plan slug coming from a request.
func ParsePlan(s string) (Plan, error) {
	p := Plan(s)
	if !validPlans[p] {
		return "", fmt.Errorf("%w: %s", ErrInvalidPlan, s)
	}
	return p, nil
}

func (p Plan) String() string {
	return string(p)
}

// IsPaid reports whether the plan requires payment through the billing gateway.
func (p Plan) IsPaid() bool {
	return p == PlanBasic || p == PlanPremium
}

// IsPremiumTier reports whether the plan grants premium-catalog access.
// Both paid tiers do; the free tier never does.
func (p Plan) IsPremiumTier() bool {
	return p.IsPaid()
}
