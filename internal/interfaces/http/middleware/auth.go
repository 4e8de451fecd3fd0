package middleware

import (
	stderrors "errors"
	"strings"

	"github.com/gin-gonic/gin"

	domainauth "github.com/cinevault-inc/cinevault/internal/domain/auth"
	"github.com/cinevault-inc/cinevault/internal/domain/user"
	"github.com/cinevault-inc/cinevault/internal/infrastructure/auth"
	"github.com/cinevault-inc/cinevault/internal/shared/constants"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/logger"
	"github.com/cinevault-inc/cinevault/internal/shared/utils"
)

// AuthMiddleware authenticates requests: bearer extraction, token decode,
// revocation check, then identity load. The loaded user is placed in the gin
// context so handlers never re-fetch it.
type AuthMiddleware struct {
	jwtService     *auth.JWTService
	revocationRepo domainauth.RevocationRepository
	userRepo       user.Repository
	logger         logger.Interface
}

func NewAuthMiddleware(
	jwtService *auth.JWTService,
	revocationRepo domainauth.RevocationRepository,
	userRepo user.Repository,
	logger logger.Interface,
) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:     jwtService,
		revocationRepo: revocationRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("missing bearer token"))
			c.Abort()
			return
		}

		claims, err := m.jwtService.Decode(token)
		if err != nil {
			switch {
			case stderrors.Is(err, auth.ErrTokenExpired):
				utils.ErrorResponseWithError(c, errors.NewTokenExpiredError())
			case stderrors.Is(err, auth.ErrTokenIncomplete):
				utils.ErrorResponseWithError(c, errors.NewTokenMalformedError())
			default:
				utils.ErrorResponseWithError(c, errors.NewTokenInvalidError())
			}
			c.Abort()
			return
		}

		revoked, err := m.revocationRepo.IsRevoked(c.Request.Context(), claims.ID, claims.UserID)
		if err != nil {
			m.logger.Errorw("revocation check failed", "jti", claims.ID, "error", err)
			utils.ErrorResponseWithError(c, errors.NewInternalError("failed to verify token"))
			c.Abort()
			return
		}
		if revoked {
			utils.ErrorResponseWithError(c, errors.NewTokenRevokedError())
			c.Abort()
			return
		}

		currentUser, err := m.userRepo.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			m.logger.Errorw("failed to load user for token", "user_id", claims.UserID, "error", err)
			utils.ErrorResponseWithError(c, errors.NewInternalError("failed to load user"))
			c.Abort()
			return
		}
		if currentUser == nil {
			// Token outlived the account.
			utils.ErrorResponseWithError(c, errors.NewTokenInvalidError("user no longer exists"))
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyUserRole, string(currentUser.Role()))
		c.Set(constants.ContextKeyCurrentUser, currentUser)
		c.Set(constants.ContextKeyTokenID, claims.ID)
		c.Set(constants.ContextKeyTokenExpiry, claims.ExpiresAt.Time)

		c.Next()
	}
}

// OptionalAuth decodes the bearer token when one is presented and valid,
// placing the session claims in the gin context, and passes the request
// through either way. It skips the revocation and identity checks, so it
// suits endpoints that must accept a dead session, like sign-out.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := m.jwtService.Decode(token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.UserID)
		c.Set(constants.ContextKeyTokenID, claims.ID)
		c.Set(constants.ContextKeyTokenExpiry, claims.ExpiresAt.Time)

		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}
