// Package billing implements the payment gateway port over the provider's
// HTTP API.
package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	appbilling "github.com/cinevault-inc/cinevault/internal/application/subscription/billing"
	"github.com/cinevault-inc/cinevault/internal/shared/config"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
)

const (
	defaultRequestTimeout = 10 * time.Second
	// Maximum response body size for gateway API responses (256KB)
	maxResponseSize = 256 << 10
)

// Client talks to the payment provider's REST API with form-encoded
// requests and a bearer API key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Interface
}

// NewClient creates a new gateway client
func NewClient(cfg *config.BillingConfig, logger logger.Interface) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

var _ appbilling.Gateway = (*Client)(nil)

type customerResponse struct {
	ID string `json:"id"`
}

type paymentIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCustomer registers the user with the gateway and returns its
// customer reference.
func (c *Client) CreateCustomer(ctx context.Context, email, name string) (*appbilling.Customer, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("name", name)

	var resp customerResponse
	if err := c.do(ctx, http.MethodPost, "/v1/customers", form, &resp); err != nil {
		return nil, err
	}

	c.logger.Infow("gateway customer created", "customer_ref", resp.ID)
	return &appbilling.Customer{Ref: resp.ID}, nil
}

// CreatePaymentIntent opens a charge attempt against the customer.
func (c *Client) CreatePaymentIntent(ctx context.Context, customerRef string, amountCents int64, currency string, metadata map[string]string) (*appbilling.PaymentIntent, error) {
	form := url.Values{}
	form.Set("customer", customerRef)
	form.Set("amount", strconv.FormatInt(amountCents, 10))
	form.Set("currency", currency)
	for k, v := range metadata {
		form.Set(fmt.Sprintf("metadata[%s]", k), v)
	}

	var resp paymentIntentResponse
	if err := c.do(ctx, http.MethodPost, "/v1/payment_intents", form, &resp); err != nil {
		return nil, err
	}

	c.logger.Infow("payment intent created",
		"payment_ref", resp.ID,
		"amount_cents", resp.Amount,
		"currency", resp.Currency)
	return intentFromResponse(&resp), nil
}

// RetrievePaymentIntent fetches the current state of a charge attempt.
// Confirmation reads the status from here, never from the client.
func (c *Client) RetrievePaymentIntent(ctx context.Context, ref string) (*appbilling.PaymentIntent, error) {
	var resp paymentIntentResponse
	if err := c.do(ctx, http.MethodGet, "/v1/payment_intents/"+url.PathEscape(ref), nil, &resp); err != nil {
		return nil, err
	}
	return intentFromResponse(&resp), nil
}

func intentFromResponse(resp *paymentIntentResponse) *appbilling.PaymentIntent {
	return &appbilling.PaymentIntent{
		Ref:          resp.ID,
		ClientSecret: resp.ClientSecret,
		Status:       resp.Status,
		AmountCents:  resp.Amount,
		Currency:     resp.Currency,
	}
}

// do issues one API request. Transport failures surface as transient
// gateway errors, provider rejections as permanent ones.
func (c *Client) do(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build gateway request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorw("gateway request failed", "path", path, "error", err)
		return errors.NewGatewayError("payment gateway unreachable", true)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return errors.NewGatewayError("failed to read gateway response", true)
	}

	if resp.StatusCode >= 500 {
		c.logger.Errorw("gateway server error", "path", path, "status", resp.StatusCode)
		return errors.NewGatewayError("payment gateway error", true)
	}
	if resp.StatusCode >= 400 {
		var apiErr errorResponse
		message := "payment gateway rejected the request"
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error.Message != "" {
			message = apiErr.Error.Message
		}
		c.logger.Warnw("gateway rejected request",
			"path", path,
			"status", resp.StatusCode,
			"type", apiErr.Error.Type)
		return errors.NewGatewayError(message, false)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return errors.NewGatewayError("malformed gateway response", true)
	}
	return nil
}
