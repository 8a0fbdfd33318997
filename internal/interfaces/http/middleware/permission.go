package middleware

import (
	"net/http"

	"github.com/erp/pdv/internal/domain/identity"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// RequirePermission admits the request if the operator's role grants any of
// perms. It must run after SessionAuth.
func RequirePermission(perms ...identity.Permission) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok || session.UserID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponseWithRequestID(shared.CodeUnauthorized, "Authentication required", getRequestID(c)))
			return
		}
		for _, perm := range perms {
			if session.Can(perm) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden,
			dto.NewErrorResponseWithRequestID(shared.CodeForbidden, "Your role cannot access this area", getRequestID(c)))
	}
}
