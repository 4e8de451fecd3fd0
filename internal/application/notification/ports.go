// Package notification dispatches user-facing messages produced by catalog
// and subscription events, deduplicated through the delivery ledger.
package notification

import "context"

// PushSender delivers a push message to one device.
type PushSender interface {
	Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}

// WhatsAppSender delivers a WhatsApp text message to one phone number.
type WhatsAppSender interface {
	Send(ctx context.Context, to, body string) error
}
