// Package billing defines the outbound port to the payment gateway.
// The engine only ever talks to this interface; the HTTP implementation
// lives in infrastructure.
package billing

import "context"

// Payment intent statuses as reported by the gateway. Only a succeeded
// intent may activate a subscription.
const (
	IntentStatusRequiresPayment = "requires_payment_method"
	IntentStatusProcessing      = "processing"
	IntentStatusSucceeded       = "succeeded"
	IntentStatusCanceled        = "canceled"
)

// Customer is the gateway-side counterpart of one of our users.
type Customer struct {
	Ref string
}

// PaymentIntent is a single charge attempt at the gateway.
type PaymentIntent struct {
	Ref          string
	ClientSecret string
	Status       string
	AmountCents  int64
	Currency     string
}

// Gateway abstracts the payment provider. Implementations translate
// transport failures into transient gateway errors and provider rejections
// into permanent ones.
type Gateway interface {
	CreateCustomer(ctx context.Context, email, name string) (*Customer, error)
	CreatePaymentIntent(ctx context.Context, customerRef string, amountCents int64, currency string, metadata map[string]string) (*PaymentIntent, error)
	RetrievePaymentIntent(ctx context.Context, ref string) (*PaymentIntent, error)
}

// WebhookVerifier authenticates inbound gateway events before any state
// transition runs on their behalf.
type WebhookVerifier interface {
	VerifySignature(payload []byte, sigHeader string) error
}
