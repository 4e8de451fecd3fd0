package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/cinevault-inc/cinevault/internal/shared/authorization"
	"github.com/cinevault-inc/cinevault/internal/shared/constants"
	"github.com/cinevault-inc/cinevault/internal/shared/errors"
	"github.com/cinevault-inc/cinevault/internal/shared/utils"
)

// RequireCatalogManager restricts a route to roles that may modify the
// movie catalog. Must run after RequireAuth.
func RequireCatalogManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := authorization.UserRole(c.GetString(constants.ContextKeyUserRole))
		if !role.CanManageCatalog() {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("supervisor role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}
