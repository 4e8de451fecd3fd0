package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinevault-inc/cinevault/internal/application/subscription/usecases"
	"github.com/cinevault-inc/cinevault/internal/interfaces/dto"
	"github.com/cinevault-inc/cinevault/internal/shared/constants"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
	"github.com/cinevault-inc/cinevault/internal/shared/utils"
)

// SubscriptionHandler handles the subscription lifecycle endpoints
type SubscriptionHandler struct {
	initiateUC initiateSubscriptionUseCase
	confirmUC  confirmSubscriptionUseCase
	cancelUC   cancelSubscriptionUseCase
	statusUC   getSubscriptionStatusUseCase
	logger     logger.Interface
}

func NewSubscriptionHandler(
	initiateUC initiateSubscriptionUseCase,
	confirmUC confirmSubscriptionUseCase,
	cancelUC cancelSubscriptionUseCase,
	statusUC getSubscriptionStatusUseCase,
	log logger.Interface,
) *SubscriptionHandler {
	return &SubscriptionHandler{
		initiateUC: initiateUC,
		confirmUC:  confirmUC,
		cancelUC:   cancelUC,
		statusUC:   statusUC,
		logger:     log,
	}
}

// Initiate handles POST /subscriptions
//
//	@Summary	Start a plan change
//	@Tags		subscriptions
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		plan	body		dto.InitiateSubscriptionRequest	true	"Plan to switch to"
//	@Success	201		{object}	utils.APIResponse				"New subscription, with a client secret for paid plans"
//	@Failure	400		{object}	utils.APIResponse				"Unknown plan"
//	@Failure	502		{object}	utils.APIResponse				"Payment gateway unavailable"
//	@Router		/subscriptions [post]
func (h *SubscriptionHandler) Initiate(c *gin.Context) {
	var req dto.InitiateSubscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.initiateUC.Execute(c.Request.Context(), usecases.InitiateSubscriptionCommand{
		UserID: c.GetUint(constants.ContextKeyUserID),
		Plan:   req.Plan,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.InitiateSubscriptionResponse{
		Subscription: dto.NewSubscriptionResponse(result.Subscription),
		ClientSecret: result.ClientSecret,
		AmountCents:  result.AmountCents,
		Currency:     result.Currency,
	}, "Subscription initiated")
}

// Confirm handles POST /subscriptions/confirm
//
//	@Summary	Confirm a pending subscription after payment
//	@Tags		subscriptions
//	@Accept		json
//	@Produce	json
//	@Security	Bearer
//	@Param		confirmation	body		dto.ConfirmSubscriptionRequest	false	"Payment intent echo"
//	@Success	200				{object}	utils.APIResponse				"Activated subscription"
//	@Failure	409				{object}	utils.APIResponse				"No pending subscription or payment not completed"
//	@Router		/subscriptions/confirm [post]
func (h *SubscriptionHandler) Confirm(c *gin.Context) {
	// The body is optional; clients that echo the payment intent back get it
	// checked against the one recorded at initiation.
	var req dto.ConfirmSubscriptionRequest
	if c.Request.Body != nil && c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
			return
		}
	}

	result, err := h.confirmUC.Execute(c.Request.Context(), usecases.ConfirmSubscriptionCommand{
		UserID:           c.GetUint(constants.ContextKeyUserID),
		PaymentIntentRef: req.PaymentIntentID,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription activated",
		dto.NewSubscriptionResponse(result.Subscription))
}

// Cancel handles POST /subscriptions/cancel. Access continues until the
// already paid period runs out.
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	result, err := h.cancelUC.Execute(c.Request.Context(), usecases.CancelSubscriptionCommand{
		UserID: c.GetUint(constants.ContextKeyUserID),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Subscription canceled",
		dto.NewSubscriptionResponse(result.Subscription))
}

// Status handles GET /subscriptions/status
func (h *SubscriptionHandler) Status(c *gin.Context) {
	result, err := h.statusUC.Execute(c.Request.Context(), usecases.GetSubscriptionStatusCommand{
		UserID: c.GetUint(constants.ContextKeyUserID),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.SubscriptionStatusResponse{
		Subscription:     dto.NewSubscriptionResponse(result.Subscription),
		CanAccessPremium: result.CanAccessPremium,
	})
}
