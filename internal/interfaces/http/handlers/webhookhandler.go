package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinevault-inc/cinevault/internal/application/subscription/billing"
	"github.com/cinevault-inc/cinevault/internal/interfaces/dto"
	"github.com/cinevault-inc/cinevault/internal/shared/constants"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
	"github.com/cinevault-inc/cinevault/internal/shared/utils"
)

// maxWebhookBody bounds the payload we are willing to buffer for signature
// verification.
const maxWebhookBody = 1 << 20

// WebhookHandler receives billing gateway events. The route is
// unauthenticated; the signature header is the only trust anchor, so
// verification happens before the body is even parsed.
type WebhookHandler struct {
	verifier  billing.WebhookVerifier
	webhookUC handleWebhookUseCase
	logger    logger.Interface
}

func NewWebhookHandler(
	verifier billing.WebhookVerifier,
	webhookUC handleWebhookUseCase,
	log logger.Interface,
) *WebhookHandler {
	return &WebhookHandler{
		verifier:  verifier,
		webhookUC: webhookUC,
		logger:    log,
	}
}

// HandleBillingEvent handles POST /webhooks/billing
func (h *WebhookHandler) HandleBillingEvent(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookBody))
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("failed to read request body"))
		return
	}

	signature := c.GetHeader(constants.HeaderBillingSignature)
	if err := h.verifier.VerifySignature(payload, signature); err != nil {
		h.logger.Warnw("webhook signature rejected", "client_ip", c.ClientIP(), "error", err)
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("invalid webhook signature"))
		return
	}

	event, err := dto.ParseWebhookEvent(payload)
	if err != nil {
		utils.ErrorResponseWithError(c, errors.NewBadRequestError("malformed event payload"))
		return
	}

	if err := h.webhookUC.Execute(c.Request.Context(), event.ToCommand()); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"received": true})
}
