// Package notification implements the outbound push and WhatsApp senders
// over their providers' HTTP APIs.
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appnotification "github.com/cinevault-inc/cinevault/internal/application/notification"
	"github.com/cinevault-inc/cinevault/internal/shared/config"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

const (
	defaultRequestTimeout = 10 * time.Second
	// Maximum response body size kept for error diagnostics (64KB)
	maxResponseSize = 64 << 10
)

// PushClient sends device push messages through the push provider's
// legacy HTTP endpoint.
type PushClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     logger.Interface
}

// NewPushClient creates a push sender
func NewPushClient(cfg *config.NotificationConfig, logger logger.Interface) *PushClient {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &PushClient{
		endpoint: cfg.PushEndpoint,
		apiKey:   cfg.PushAPIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

var _ appnotification.PushSender = (*PushClient)(nil)

type pushRequest struct {
	To           string            `json:"to"`
	Notification pushNotification  `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type pushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Send delivers one push message to the given device token
func (c *PushClient) Send(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	payload, err := json.Marshal(pushRequest{
		To:           deviceToken,
		Notification: pushNotification{Title: title, Body: body},
		Data:         data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		c.logger.Warnw("push provider rejected message",
			"status", resp.StatusCode,
			"response", string(responseBody))
		return fmt.Errorf("push provider returned status %d", resp.StatusCode)
	}

	return nil
}
