package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/cinevault-inc/cinevault/internal/application/auth/usecases"
	"github.com/cinevault-inc/cinevault/internal/interfaces/dto"
	"github.com/cinevault-inc/cinevault/internal/shared/constants"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
	"github.com/cinevault-inc/cinevault/internal/shared/utils"
)

// AuthHandler handles session endpoints
type AuthHandler struct {
	loginUC  loginUseCase
	logoutUC logoutUseCase
	logger   logger.Interface
}

func NewAuthHandler(loginUC loginUseCase, logoutUC logoutUseCase, log logger.Interface) *AuthHandler {
	return &AuthHandler{
		loginUC:  loginUC,
		logoutUC: logoutUC,
		logger:   log,
	}
}

// Login handles POST /auth/login
//
//	@Summary	Sign in with email and password
//	@Tags		auth
//	@Accept		json
//	@Produce	json
//	@Param		credentials	body		dto.LoginRequest	true	"Credentials"
//	@Success	200			{object}	utils.APIResponse	"Signed session token"
//	@Failure	401			{object}	utils.APIResponse	"Invalid credentials"
//	@Router		/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	result, err := h.loginUC.Execute(c.Request.Context(), req.ToCommand())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", dto.AuthResponse{
		User:      dto.NewUserResponse(result.User),
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt,
	})
}

// Logout handles POST /auth/logout. Signing out a dead session (absent,
// expired, malformed, or previously revoked token) succeeds; the token is
// only revoked when it still decodes cleanly.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := c.GetUint(constants.ContextKeyUserID)
	jti := c.GetString(constants.ContextKeyTokenID)
	expiresAt, _ := c.Get(constants.ContextKeyTokenExpiry)

	expiry, ok := expiresAt.(time.Time)
	if !ok || userID == 0 || jti == "" {
		// Nothing decodable to revoke; the session is already dead.
		utils.SuccessResponse(c, http.StatusOK, "Signed out successfully", nil)
		return
	}

	err := h.logoutUC.Execute(c.Request.Context(), usecases.LogoutCommand{
		UserID:    userID,
		JTI:       jti,
		ExpiresAt: expiry,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "Signed out successfully", nil)
}
