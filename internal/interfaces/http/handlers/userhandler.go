package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cinevault-inc/cinevault/internal/application/user/usecases"
	"github.com/cinevault-inc/cinevault/internal/domain/user"
	"github.com/cinevault-inc/cinevault/internal/interfaces/dto"
	"github.com/cinevault-inc/cinevault/internal/shared/constants"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
	"github.com/cinevault-inc/cinevault/internal/shared/utils"
)

// UserHandler handles registration and profile endpoints
type UserHandler struct {
	registerUC          registerUserUseCase
	updateDeviceTokenUC updateDeviceTokenUseCase
	logger              logger.Interface
}

func NewUserHandler(
	registerUC registerUserUseCase,
	updateDeviceTokenUC updateDeviceTokenUseCase,
	log logger.Interface,
) *UserHandler {
	return &UserHandler{
		registerUC:          registerUC,
		updateDeviceTokenUC: updateDeviceTokenUC,
		logger:              log,
	}
}

// Register handles POST /users
//
//	@Summary	Register a new account
//	@Tags		users
//	@Accept		json
//	@Produce	json
//	@Param		user	body		dto.RegisterUserRequest	true	"Registration data"
//	@Success	201		{object}	utils.APIResponse		"Account with session token"
//	@Failure	400		{object}	utils.APIResponse		"Validation error"
//	@Failure	409		{object}	utils.APIResponse		"Email already registered"
//	@Router		/users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.registerUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, dto.AuthResponse{
		User:      dto.NewUserResponse(result.User),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	}, "Account created successfully")
}

// Me handles GET /users/me
func (h *UserHandler) Me(c *gin.Context) {
	currentUser := CurrentUser(c)
	if currentUser == nil {
		utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("authentication required"))
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", dto.NewUserResponse(currentUser))
}

// UpdateDeviceToken handles PATCH /users/device-token
func (h *UserHandler) UpdateDeviceToken(c *gin.Context) {
	var req dto.UpdateDeviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	err := h.updateDeviceTokenUC.Execute(c.Request.Context(), usecases.UpdateDeviceTokenCommand{
		UserID:      c.GetUint(constants.ContextKeyUserID),
		DeviceToken: req.DeviceToken,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Device token updated", nil)
}

// CurrentUser returns the identity loaded by the auth middleware, or nil.
func CurrentUser(c *gin.Context) *user.User {
	value, exists := c.Get(constants.ContextKeyCurrentUser)
	if !exists {
		return nil
	}
	currentUser, ok := value.(*user.User)
	if !ok {
		return nil
	}
	return currentUser
}
