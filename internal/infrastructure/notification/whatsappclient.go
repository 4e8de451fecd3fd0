package notification

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	appnotification "github.com/cinevault-inc/cinevault/internal/application/notification"
	"github.com/cinevault-inc/cinevault/internal/shared/config"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

// WhatsAppClient sends WhatsApp text messages through the messaging
// provider's REST API with account-SID basic auth.
type WhatsAppClient struct {
	endpoint   string
	accountSID string
	authToken  string
	from       string
	httpClient *http.Client
	logger     logger.Interface
}

// NewWhatsAppClient creates a WhatsApp sender
func NewWhatsAppClient(cfg *config.NotificationConfig, logger logger.Interface) *WhatsAppClient {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &WhatsAppClient{
		endpoint:   strings.TrimRight(cfg.WhatsAppEndpoint, "/"),
		accountSID: cfg.WhatsAppSID,
		authToken:  cfg.WhatsAppToken,
		from:       cfg.WhatsAppFrom,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

var _ appnotification.WhatsAppSender = (*WhatsAppClient)(nil)

// Send delivers one WhatsApp message. The recipient must be an E.164
// phone number.
func (c *WhatsAppClient) Send(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("From", "whatsapp:"+c.from)
	form.Set("To", "whatsapp:"+to)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", c.endpoint, url.PathEscape(c.accountSID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
		c.logger.Warnw("whatsapp provider rejected message",
			"status", resp.StatusCode,
			"response", string(responseBody))
		return fmt.Errorf("whatsapp provider returned status %d", resp.StatusCode)
	}

	return nil
}
