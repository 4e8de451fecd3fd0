package dto

import (
	"encoding/json"

	"github.com/cinevault-inc/cinevault/internal/application/subscription/usecases"
)

// WebhookEvent is the gateway's event envelope. Only the identifiers the
// engine keys off are decoded; everything else in the payload is ignored.
type WebhookEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string `json:"id"`
			Customer string `json:"customer"`
		} `json:"object"`
	} `json:"data"`
}

// ParseWebhookEvent decodes a verified webhook body.
func ParseWebhookEvent(payload []byte) (*WebhookEvent, error) {
	var event WebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (e *WebhookEvent) ToCommand() usecases.HandleWebhookCommand {
	return usecases.HandleWebhookCommand{
		EventID:          e.ID,
		EventType:        e.Type,
		PaymentIntentRef: e.Data.Object.ID,
		CustomerRef:      e.Data.Object.Customer,
	}
}
